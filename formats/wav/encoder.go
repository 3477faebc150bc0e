// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/go-audio/wav"

	"github.com/ik5/audmix/formats/internal/pcmint"
	"github.com/ik5/audmix/pcm"
)

// Encoder streams integer PCM frames into a WAV container. The header sizes
// are patched on Close, which is why the destination must be seekable.
// Close does not close the destination.
type Encoder struct {
	*pcmint.Sink
}

// NewEncoder accepts U8, S16LE, S24LE and S32LE specs. Use WriteWAV for
// Float32LE.
func NewEncoder(w io.WriteSeeker, spec pcm.Spec) (*Encoder, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	bitDepth, ok := pcmint.BitDepth(spec.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, spec.Format)
	}

	sink, err := pcmint.NewSink(wav.NewEncoder(w, spec.Rate, bitDepth, spec.Channels, formatPCM), spec)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &Encoder{Sink: sink}, nil
}
