// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/pcm"
)

// go-mp3 always produces interleaved stereo int16 little-endian samples.
const channels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  mp3Reader
	spec pcm.Spec
}

func (s *source) Spec() pcm.Spec { return s.spec }
func (s *source) Close() error   { return nil }

func (s *source) Read(dst []byte) (int, error) {
	fs := s.spec.FrameSize()
	want := len(dst) - len(dst)%fs
	if want == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:want])

	// complete a frame the decoder split across reads
	if rem := n % fs; rem != 0 && err == nil {
		var m int
		m, err = io.ReadFull(s.dec, dst[n:n+fs-rem])
		n += m
	}
	n -= n % fs

	if err == nil {
		return n, nil
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		if n > 0 {
			return n, nil
		}

		return 0, io.EOF
	}

	return n, fmt.Errorf("decoding mp3: %w", err)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	spec := pcm.Spec{Format: pcm.S16LE, Channels: channels, Rate: dec.SampleRate()}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{dec: dec, spec: spec}, nil
}
