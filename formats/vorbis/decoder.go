// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/pcm"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of interleaved values, not frames.
	Read([]float32) (int, error)
}

type source struct {
	dec   oggReader
	spec  pcm.Spec
	codec *pcm.Codec
	buf   []float32
	// values decoded past the last whole frame, carried to the next Read
	pending int
}

func (s *source) Spec() pcm.Spec { return s.spec }
func (s *source) Close() error   { return nil }

func (s *source) Read(dst []byte) (int, error) {
	frames := len(dst) / s.spec.FrameSize()
	if frames == 0 {
		return 0, nil
	}

	want := frames * s.spec.Channels
	if cap(s.buf) < want {
		grown := make([]float32, want)
		copy(grown, s.buf[:s.pending])
		s.buf = grown
	}
	s.buf = s.buf[:want]

	n, err := s.dec.Read(s.buf[s.pending:])
	n += s.pending

	whole := n - n%s.spec.Channels
	for i, v := range s.buf[:whole] {
		s.codec.EncodeFloat(dst[i*4:i*4+4], v)
	}

	s.pending = copy(s.buf, s.buf[whole:n])

	if whole > 0 {
		return whole * 4, nil
	}

	if err == io.EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, fmt.Errorf("decoding vorbis: %w", err)
	}

	return 0, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	spec := pcm.Spec{Format: pcm.Float32LE, Channels: dec.Channels(), Rate: dec.SampleRate()}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec, spec), nil
}

func newSource(dec oggReader, spec pcm.Spec) *source {
	return &source{
		dec:   dec,
		spec:  spec,
		codec: pcm.Lookup(pcm.Float32LE),
		buf:   make([]float32, 0, 4096),
	}
}
