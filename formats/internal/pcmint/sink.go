// SPDX-License-Identifier: EPL-2.0

package pcmint

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audmix/pcm"
)

// Writer is the shared surface of the go-audio wav and aiff encoders.
type Writer interface {
	Write(buf *goaudio.IntBuffer) error
	Close() error
}

// Sink feeds frame aligned engine bytes to a Writer.
type Sink struct {
	enc      Writer
	spec     pcm.Spec
	bitDepth int
	buf      *goaudio.IntBuffer
	closed   bool
}

func NewSink(enc Writer, spec pcm.Spec) (*Sink, error) {
	bitDepth, ok := BitDepth(spec.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBitDepth, spec.Format)
	}

	return &Sink{
		enc:      enc,
		spec:     spec,
		bitDepth: bitDepth,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: spec.Channels, SampleRate: spec.Rate},
			SourceBitDepth: bitDepth,
		},
	}, nil
}

func (s *Sink) Spec() pcm.Spec { return s.spec }

// Write appends whole frames of p.
func (s *Sink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}

	if !s.spec.Aligned(len(p)) {
		return 0, fmt.Errorf("%w: %d bytes for %s", pcm.ErrUnaligned, len(p), s.spec)
	}

	samples := len(p) / s.spec.SampleSize()
	if samples == 0 {
		return 0, nil
	}

	if cap(s.buf.Data) < samples {
		s.buf.Data = make([]int, samples)
	}
	s.buf.Data = s.buf.Data[:samples]
	Get(s.buf.Data, s.bitDepth, p)

	if err := s.enc.Write(s.buf); err != nil {
		return 0, fmt.Errorf("writing samples: %w", err)
	}

	return len(p), nil
}

// ReadFrom drains src, which must deliver frames in the sink's spec.
func (s *Sink) ReadFrom(src io.Reader) (int64, error) {
	buf := make([]byte, s.spec.FrameSize()*4096)

	var total int64
	for {
		n, err := src.Read(buf)
		if n > 0 {
			w, werr := s.Write(buf[:n])
			total += int64(w)
			if werr != nil {
				return total, werr
			}
		}

		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("%w", err)
		}
	}
}

// Close finalises the container. It does not close the underlying file.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.enc.Close(); err != nil {
		return fmt.Errorf("closing encoder: %w", err)
	}

	return nil
}
