// SPDX-License-Identifier: EPL-2.0

// Package meter measures per-channel peak and RMS levels of PCM buffers.
package meter

import (
	"fmt"
	"math"

	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"

	"github.com/ik5/audmix/pcm"
)

// Level of one channel relative to full scale, both in [0, 1] for integer
// formats. Float data above full scale reports above 1.
type Level struct {
	Peak float64
	RMS  float64
}

// PeakDB is the peak in dBFS, -Inf for digital silence.
func (l Level) PeakDB() float64 { return toDB(l.Peak) }

// RMSDB is the RMS level in dBFS, -Inf for digital silence.
func (l Level) RMSDB() float64 { return toDB(l.RMS) }

func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v)
}

// Meter accumulates levels over consecutive buffers of one spec.
type Meter struct {
	spec   pcm.Spec
	codec  *pcm.Codec
	scale  float64
	peak   []float64
	sumSq  []float64
	frames int64
	ch     []float64
}

func New(spec pcm.Spec) (*Meter, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("meter: %w", err)
	}

	c := pcm.Lookup(spec.Format)

	scale := 1.0
	if !c.IsFloat() {
		scale = -1 / float64(c.Min)
	}

	return &Meter{
		spec:  spec,
		codec: c,
		scale: scale,
		peak:  make([]float64, spec.Channels),
		sumSq: make([]float64, spec.Channels),
	}, nil
}

// Write feeds whole frames to the meter. It never retains buf.
func (m *Meter) Write(buf []byte) (int, error) {
	if !m.spec.Aligned(len(buf)) {
		return 0, fmt.Errorf("%w: %d bytes for %s", pcm.ErrUnaligned, len(buf), m.spec)
	}

	frames := len(buf) / m.spec.FrameSize()
	if frames == 0 {
		return 0, nil
	}

	if cap(m.ch) < frames {
		m.ch = make([]float64, frames)
	}
	m.ch = m.ch[:frames]

	w := m.codec.Width
	fs := m.spec.FrameSize()

	for ch := range m.spec.Channels {
		for f := range frames {
			at := f*fs + ch*w
			m.ch[f] = m.sample(buf[at : at+w])
		}

		peak := max(math.Abs(floats.Max(m.ch)), math.Abs(floats.Min(m.ch)))
		m.peak[ch] = max(m.peak[ch], peak)
		m.sumSq[ch] += f64.DotProductUnsafe(m.ch, m.ch)
	}

	m.frames += int64(frames)

	return len(buf), nil
}

func (m *Meter) sample(b []byte) float64 {
	if m.codec.IsFloat() {
		return float64(m.codec.DecodeFloat(b))
	}

	return float64(m.codec.DecodeInt(b)) * m.scale
}

// Frames is the number of frames measured since the last Reset.
func (m *Meter) Frames() int64 { return m.frames }

// Levels reports one Level per channel.
func (m *Meter) Levels() []Level {
	out := make([]Level, m.spec.Channels)
	if m.frames == 0 {
		return out
	}

	for ch := range out {
		out[ch] = Level{
			Peak: m.peak[ch],
			RMS:  math.Sqrt(m.sumSq[ch] / float64(m.frames)),
		}
	}

	return out
}

func (m *Meter) Reset() {
	clear(m.peak)
	clear(m.sumSq)
	m.frames = 0
}

// Measure is the levels of a single buffer.
func Measure(buf []byte, spec pcm.Spec) ([]Level, error) {
	m, err := New(spec)
	if err != nil {
		return nil, err
	}

	if _, err := m.Write(buf); err != nil {
		return nil, err
	}

	return m.Levels(), nil
}
