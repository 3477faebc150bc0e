// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/pcm"
)

// NewRegistry returns a registry holding every container decoder, keyed by
// file extension without the dot.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})

	return r
}

// ReadInt16 is a convenience function that maps src onto channels channels,
// converts it to signed 16-bit and collects every sample. The rate is left
// untouched.
//
// bufferSize is the read size in frames; larger buffers mean fewer calls
// into the decoder.
//
// Example:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	mono, err := audmix.ReadInt16(src, 1, 4096)
func ReadInt16(src audio.Source, channels, bufferSize int) ([]int16, error) {
	mapped, err := audio.NewChannelMapper(src, channels)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	s16, err := audio.NewConverter(mapped, pcm.S16LE)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	spec := s16.Spec()
	buf := make([]byte, max(bufferSize, 1)*spec.FrameSize())

	// start with about a second and grow as needed
	out := make([]int16, 0, spec.Rate*channels)

	for empty := 0; ; {
		n, err := s16.Read(buf)
		for i := 0; i+1 < n; i += 2 {
			out = append(out, int16(binary.LittleEndian.Uint16(buf[i:])))
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		if n > 0 {
			empty = 0

			continue
		}

		empty++
		if empty >= audio.MaxEmptyReads {
			return nil, fmt.Errorf("read int16: %w", io.ErrNoProgress)
		}
	}

	return out, nil
}
