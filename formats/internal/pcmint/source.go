// SPDX-License-Identifier: EPL-2.0

package pcmint

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmix/pcm"
)

var (
	ErrBitDepth = errors.New("no engine format for bit depth")
	ErrClosed   = errors.New("encoder is closed")
)

// Reader is the PCMBuffer half of the go-audio wav and aiff decoders.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source turns a Reader into frame aligned engine bytes.
type Source struct {
	dec      Reader
	spec     pcm.Spec
	bitDepth int
	intBuf   *goaudio.IntBuffer
}

func NewSource(dec Reader, spec pcm.Spec) (*Source, error) {
	bitDepth, ok := BitDepth(spec.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBitDepth, spec.Format)
	}

	return &Source{dec: dec, spec: spec, bitDepth: bitDepth}, nil
}

func (s *Source) Spec() pcm.Spec { return s.spec }
func (s *Source) Close() error   { return nil }

func (s *Source) Read(dst []byte) (int, error) {
	frames := len(dst) / s.spec.FrameSize()
	if frames == 0 {
		return 0, nil
	}

	samples := frames * s.spec.Channels
	if s.intBuf == nil || cap(s.intBuf.Data) < samples {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, samples),
			Format:         &goaudio.Format{NumChannels: s.spec.Channels, SampleRate: s.spec.Rate},
			SourceBitDepth: s.bitDepth,
		}
	}
	s.intBuf.Data = s.intBuf.Data[:samples]

	n, err := s.dec.PCMBuffer(s.intBuf)
	// a trailing partial frame is dropped
	n -= n % s.spec.Channels
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("reading samples: %w", err)
		}

		return 0, io.EOF
	}

	return Put(dst, s.bitDepth, s.intBuf.Data[:n]), nil
}
