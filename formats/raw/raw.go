// SPDX-License-Identifier: EPL-2.0

// Package raw reads and writes headerless PCM. The byte layout is not
// self-describing, so both directions take the pcm.Spec from the caller.
package raw

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/pcm"
)

var ErrWriterClosed = errors.New("raw writer is closed")

// Decoder interprets its input as interleaved frames in Spec.
type Decoder struct {
	Spec pcm.Spec
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	if err := d.Spec.Validate(); err != nil {
		return nil, fmt.Errorf("raw input: %w", err)
	}

	return &source{r: r, spec: d.Spec}, nil
}

type source struct {
	r    io.Reader
	spec pcm.Spec
	done bool
}

func (s *source) Spec() pcm.Spec { return s.spec }

// Close closes the underlying reader when it is an io.Closer.
func (s *source) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func (s *source) Read(dst []byte) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	fs := s.spec.FrameSize()
	want := len(dst) - len(dst)%fs
	if want == 0 {
		return 0, nil
	}

	n, err := io.ReadFull(s.r, dst[:want])
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		// a trailing partial frame is dropped
		s.done = true
		n -= n % fs
		if n == 0 {
			return 0, io.EOF
		}

		return n, nil
	default:
		return 0, fmt.Errorf("reading raw input: %w", err)
	}
}

// Writer stores whole frames verbatim.
type Writer struct {
	w      io.Writer
	spec   pcm.Spec
	closed bool
}

func NewWriter(w io.Writer, spec pcm.Spec) (*Writer, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("raw output: %w", err)
	}

	return &Writer{w: w, spec: spec}, nil
}

func (w *Writer) Spec() pcm.Spec { return w.spec }

func (w *Writer) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}

	if !w.spec.Aligned(len(p)) {
		return 0, fmt.Errorf("%w: %d bytes for %s", pcm.ErrUnaligned, len(p), w.spec)
	}

	n, err := w.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// Close marks the writer finished. The destination is left open.
func (w *Writer) Close() error {
	w.closed = true

	return nil
}
