// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/internal/pcmint"
	"github.com/ik5/audmix/pcm"
)

// supportedDepth reports whether samples of bitDepth are handed out in an
// engine format. 8-bit AIFF data is signed, which no engine format holds
// verbatim, so it is rejected.
func supportedDepth(bitDepth int) (pcm.Format, bool) {
	if bitDepth == 8 {
		return pcm.Invalid, false
	}

	return pcmint.Format(bitDepth)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	f, ok := supportedDepth(int(dec.BitDepth))
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	spec := pcm.Spec{Format: f, Channels: format.NumChannels, Rate: format.SampleRate}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedAiffLayout, err)
	}

	src, err := pcmint.NewSource(dec, spec)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return src, nil
}
