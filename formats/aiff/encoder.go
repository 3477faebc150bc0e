// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audmix/formats/internal/pcmint"
	"github.com/ik5/audmix/pcm"
)

// Encoder writes S16LE, S24LE or S32LE frames as big-endian AIFF samples.
// Close patches the chunk sizes and leaves the destination open.
type Encoder struct {
	*pcmint.Sink
}

func NewEncoder(w io.WriteSeeker, spec pcm.Spec) (*Encoder, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	bitDepth, ok := pcmint.BitDepth(spec.Format)
	if !ok || bitDepth == 8 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, spec.Format)
	}

	sink, err := pcmint.NewSink(aiff.NewEncoder(w, spec.Rate, bitDepth, spec.Channels), spec)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &Encoder{Sink: sink}, nil
}
