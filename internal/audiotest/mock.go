// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audmix/pcm"
)

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	spec        pcm.Spec
	totalFrames int // Total frames to generate
	generated   int // Frames generated so far
	waveform    func(frame int, channel int) float32
	closed      bool

	sample [4]byte
}

// NewMockSource creates a new mock audio source.
// waveform returns values in [-1, 1] which are encoded into spec.Format.
func NewMockSource(spec pcm.Spec, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		spec:        spec,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(spec pcm.Spec, totalFrames int) *MockSource {
	return NewMockSource(spec, totalFrames, func(int, int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(spec pcm.Spec, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(spec, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(spec.Rate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(spec pcm.Spec, totalFrames int, value float32) *MockSource {
	return NewMockSource(spec, totalFrames, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) Spec() pcm.Spec { return m.spec }
func (m *MockSource) Closed() bool   { return m.closed }

func (m *MockSource) Close() error {
	m.closed = true

	return nil
}

// Reset resets the generated frame counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) Read(dst []byte) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	fs := m.spec.FrameSize()
	w := m.spec.SampleSize()
	f32 := pcm.Lookup(pcm.Float32LE)

	framesToWrite := min(len(dst)/fs, m.totalFrames-m.generated)

	for frame := range framesToWrite {
		for ch := range m.spec.Channels {
			f32.EncodeFloat(m.sample[:], m.waveform(m.generated+frame, ch))

			at := frame*fs + ch*w
			pcm.Convert(dst[at:at+w], m.spec.Format, m.sample[:], pcm.Float32LE)
		}
	}

	m.generated += framesToWrite
	n := framesToWrite * fs

	if m.generated >= m.totalFrames {
		return n, io.EOF
	}

	return n, nil
}

// BytesSource replays a fixed buffer, at most chunk bytes per Read when chunk
// is positive.
type BytesSource struct {
	spec  pcm.Spec
	data  []byte
	chunk int
	err   error
}

func NewBytesSource(spec pcm.Spec, data []byte, chunk int) *BytesSource {
	return &BytesSource{spec: spec, data: data, chunk: chunk}
}

// NewFailingSource returns err from the first Read.
func NewFailingSource(spec pcm.Spec, err error) *BytesSource {
	return &BytesSource{spec: spec, err: err}
}

func (b *BytesSource) Spec() pcm.Spec { return b.spec }
func (b *BytesSource) Close() error   { return nil }

func (b *BytesSource) Read(dst []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}

	if len(b.data) == 0 {
		return 0, io.EOF
	}

	n := len(dst)
	if b.chunk > 0 {
		n = min(n, b.chunk)
	}

	n = copy(dst[:n], b.data)
	b.data = b.data[n:]

	return n, nil
}
