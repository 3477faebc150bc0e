// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audmix/pcm"
)

// createWAVFile builds a WAV file around raw little-endian sample data,
// optionally preceded by an extra chunk.
func createWAVFile(tag uint16, sampleRate, channels, bitsPerSample int, data []byte, extra ...[]byte) []byte {
	buf := new(bytes.Buffer)

	blockAlign := uint16(channels * bitsPerSample / 8)
	byteRate := uint32(sampleRate) * uint32(blockAlign)

	body := new(bytes.Buffer)
	for _, e := range extra {
		body.Write(e)
	}

	// fmt chunk
	body.WriteString("fmt ")
	binary.Write(body, binary.LittleEndian, uint32(16))
	binary.Write(body, binary.LittleEndian, tag)
	binary.Write(body, binary.LittleEndian, uint16(channels))
	binary.Write(body, binary.LittleEndian, uint32(sampleRate))
	binary.Write(body, binary.LittleEndian, byteRate)
	binary.Write(body, binary.LittleEndian, blockAlign)
	binary.Write(body, binary.LittleEndian, uint16(bitsPerSample))

	// data chunk
	body.WriteString("data")
	binary.Write(body, binary.LittleEndian, uint32(len(data)))
	body.Write(data)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(4+body.Len()))
	buf.WriteString("WAVE")
	buf.Write(body.Bytes())

	return buf.Bytes()
}

func s16(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*2)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}

	return out
}

// readAll drains src with a small frame-aligned buffer.
func readAll(t *testing.T, src interface {
	Spec() pcm.Spec
	Read([]byte) (int, error)
}) []byte {
	t.Helper()

	var out []byte
	buf := make([]byte, src.Spec().FrameSize()*3)
	for range 10000 {
		n, err := src.Read(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			return out
		}
		require.NoError(t, err)
	}

	t.Fatal("source never reached EOF")

	return nil
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		bits     int
		channels int
		data     []byte
		want     pcm.Format
	}{
		{"u8 mono", 8, 1, []byte{0x00, 0x80, 0xff, 0x7f}, pcm.U8},
		{"s16 mono", 16, 1, s16(0, 100, 200, -100, -200, 0), pcm.S16LE},
		{"s16 stereo", 16, 2, s16(1, -1, 2, -2), pcm.S16LE},
		{"s24 mono", 24, 1, []byte{0x56, 0x34, 0x12, 0xfe, 0xff, 0xff}, pcm.S24LE},
		{"s32 stereo", 32, 2, []byte{1, 0, 0, 0, 0, 0, 0, 0x80, 0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0}, pcm.S32LE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wavData := createWAVFile(formatPCM, 8000, tt.channels, tt.bits, tt.data)

			src, err := Decoder{}.Decode(bytes.NewReader(wavData))
			require.NoError(t, err)
			defer src.Close()

			assert.Equal(t, pcm.Spec{Format: tt.want, Channels: tt.channels, Rate: 8000}, src.Spec())
			// little-endian WAV payloads are already in the engine layout
			assert.Equal(t, tt.data, readAll(t, src))
		})
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("This is not a WAV file at all, just some text.")))
	require.ErrorIs(t, err, ErrNotWavFile)
}

func TestDecoder_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader(nil))
	require.Error(t, err)
}

func TestDecoder_FloatEncodingRejected(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(formatFloat, 8000, 1, 32, make([]byte, 16))

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	require.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestDecoder_OddBitDepthRejected(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(formatPCM, 8000, 1, 12, make([]byte, 16))

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	require.Error(t, err)
}

func TestDecoder_WithUnknownChunks(t *testing.T) {
	t.Parallel()

	list := new(bytes.Buffer)
	list.WriteString("LIST")
	binary.Write(list, binary.LittleEndian, uint32(4))
	list.WriteString("INFO")

	data := s16(100, 200, 300, 400)
	wavData := createWAVFile(formatPCM, 16000, 2, 16, data, list.Bytes())

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	require.NoError(t, err)
	assert.Equal(t, 16000, src.Spec().Rate)
	assert.Equal(t, data, readAll(t, src))
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	data := s16(1, 2, 3, 4)
	wavData := createWAVFile(formatPCM, 8000, 1, 16, data)

	// io.MultiReader hides the Seek method of bytes.Reader
	src, err := Decoder{}.Decode(io.MultiReader(bytes.NewReader(wavData)))
	require.NoError(t, err)
	assert.Equal(t, data, readAll(t, src))
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 16000, 22050, 44100, 48000, 96000} {
		wavData := createWAVFile(formatPCM, rate, 1, 16, s16(1, 2, 3))

		src, err := Decoder{}.Decode(bytes.NewReader(wavData))
		require.NoError(t, err, "rate %d", rate)
		assert.Equal(t, rate, src.Spec().Rate)
	}
}

func TestErrors_Distinct(t *testing.T) {
	t.Parallel()

	all := []error{
		ErrNotWavFile, ErrUnsupportedWavLayout, ErrUnsupportedEncoding,
		ErrUnsupportedBitDepth, ErrUnsupportedFormat, ErrEncoderClosed,
	}

	for i, a := range all {
		require.Error(t, a)
		assert.NotEmpty(t, a.Error())
		for j, b := range all {
			if i != j {
				assert.NotErrorIs(t, a, b)
			}
		}
	}
}

func BenchmarkSource_Read(b *testing.B) {
	data := make([]byte, 2*2*48000)
	wavData := createWAVFile(formatPCM, 48000, 2, 16, data)
	buf := make([]byte, 4096)

	b.ReportAllocs()

	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(wavData))
		if err != nil {
			b.Fatal(err)
		}

		for {
			if _, err := src.Read(buf); err != nil {
				break
			}
		}
	}
}
