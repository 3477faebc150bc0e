// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audmix/pcm"
)

func TestWriteWAV_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		spec      pcm.Spec
		tag       uint16
		byteRate  uint32
		align     uint16
		bits      uint16
		dataBytes int
	}{
		{"u8 mono", pcm.Spec{Format: pcm.U8, Channels: 1, Rate: 8000}, formatPCM, 8000, 1, 8, 10},
		{"s16 stereo", pcm.Spec{Format: pcm.S16LE, Channels: 2, Rate: 44100}, formatPCM, 176400, 4, 16, 40},
		{"s24 stereo", pcm.Spec{Format: pcm.S24LE, Channels: 2, Rate: 48000}, formatPCM, 288000, 6, 24, 12},
		{"float mono", pcm.Spec{Format: pcm.Float32LE, Channels: 1, Rate: 16000}, formatFloat, 64000, 4, 32, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := new(bytes.Buffer)
			require.NoError(t, WriteWAV(buf, tt.spec, make([]byte, tt.dataBytes)))

			data := buf.Bytes()
			require.Len(t, data, headerSize+tt.dataBytes)

			assert.Equal(t, "RIFF", string(data[0:4]))
			assert.Equal(t, uint32(36+tt.dataBytes), binary.LittleEndian.Uint32(data[4:8]))
			assert.Equal(t, "WAVE", string(data[8:12]))
			assert.Equal(t, "fmt ", string(data[12:16]))
			assert.Equal(t, tt.tag, binary.LittleEndian.Uint16(data[20:22]))
			assert.Equal(t, uint16(tt.spec.Channels), binary.LittleEndian.Uint16(data[22:24]))
			assert.Equal(t, uint32(tt.spec.Rate), binary.LittleEndian.Uint32(data[24:28]))
			assert.Equal(t, tt.byteRate, binary.LittleEndian.Uint32(data[28:32]))
			assert.Equal(t, tt.align, binary.LittleEndian.Uint16(data[32:34]))
			assert.Equal(t, tt.bits, binary.LittleEndian.Uint16(data[34:36]))
			assert.Equal(t, "data", string(data[36:40]))
			assert.Equal(t, uint32(tt.dataBytes), binary.LittleEndian.Uint32(data[40:44]))
		})
	}
}

func TestWriteWAV_Rejects(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)

	err := WriteWAV(buf, pcm.Spec{Format: pcm.S16BE, Channels: 1, Rate: 8000}, nil)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	err = WriteWAV(buf, pcm.Spec{Format: pcm.S16LE, Channels: 2, Rate: 8000}, make([]byte, 3))
	require.ErrorIs(t, err, pcm.ErrUnaligned)

	err = WriteWAV(buf, pcm.Spec{Format: pcm.S16LE, Channels: 1, Rate: 0}, nil)
	require.ErrorIs(t, err, pcm.ErrInvalidRate)

	assert.Zero(t, buf.Len(), "nothing is written on validation failure")
}

func TestWriteWAV_RoundTrip(t *testing.T) {
	t.Parallel()

	spec := pcm.Spec{Format: pcm.S16LE, Channels: 2, Rate: 22050}
	data := s16(-1000, -500, 0, 500, 1000, 32767)

	buf := new(bytes.Buffer)
	require.NoError(t, WriteWAV(buf, spec, data))

	src, err := Decoder{}.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, spec, src.Spec())
	assert.Equal(t, data, readAll(t, src))
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("disk full")
	}
	w.after--

	return len(p), nil
}

func TestWriteWAV_WriterError(t *testing.T) {
	t.Parallel()

	spec := pcm.Spec{Format: pcm.S16LE, Channels: 1, Rate: 8000}

	require.Error(t, WriteWAV(&failingWriter{after: 0}, spec, s16(1)))
	require.Error(t, WriteWAV(&failingWriter{after: 1}, spec, s16(1)))
	require.NoError(t, WriteWAV(&failingWriter{after: 1}, spec, nil))
}

func TestWriteWAV16_MatchesWriteWAV(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 20000)
	for i := range samples {
		samples[i] = int16(i*7 - 30000)
	}

	a := new(bytes.Buffer)
	require.NoError(t, WriteWAV16(a, 16000, samples))

	b := new(bytes.Buffer)
	require.NoError(t, WriteWAV(b, pcm.Spec{Format: pcm.S16LE, Channels: 1, Rate: 16000}, s16(samples...)))

	assert.Equal(t, b.Bytes(), a.Bytes())
}

func TestWriteWAV16_EmptySamples(t *testing.T) {
	t.Parallel()

	buf := new(bytes.Buffer)
	require.NoError(t, WriteWAV16(buf, 8000, nil))
	assert.Equal(t, headerSize, buf.Len())
}

func TestWriteWAV16_ChunkWriteError(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 3*8192)
	err := WriteWAV16(&failingWriter{after: 2}, 8000, samples)
	require.Error(t, err)
}

func BenchmarkWriteWAV16(b *testing.B) {
	samples := make([]int16, 48000)
	for i := range samples {
		samples[i] = int16(i % 1000)
	}

	buf := new(bytes.Buffer)
	b.ReportAllocs()

	for b.Loop() {
		buf.Reset()
		_ = WriteWAV16(buf, 48000, samples)
	}
}
