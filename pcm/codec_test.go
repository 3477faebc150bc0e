// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_ByteRoundTrip(t *testing.T) {
	t.Parallel()

	// Every code of the one byte formats survives decode then encode. µ-law
	// has two zero codes, 0x7F decodes to the same value as 0xFF.
	for _, f := range []Format{U8, ALaw, ULaw} {
		c := Lookup(f)
		out := make([]byte, 1)

		for code := range 256 {
			if f == ULaw && code == 0x7F {
				continue
			}

			c.EncodeInt(out, c.DecodeInt([]byte{byte(code)}))
			assert.Equal(t, byte(code), out[0], "%s code %#02x", f, code)
		}
	}
}

func TestCodec_S16RoundTrip(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{S16LE, S16BE} {
		c := Lookup(f)
		buf := make([]byte, 2)

		for v := int32(math.MinInt16); v <= math.MaxInt16; v++ {
			c.EncodeInt(buf, v)
			require.Equal(t, v, c.DecodeInt(buf), "%s %d", f, v)
		}
	}
}

func TestCodec_WideRoundTrip(t *testing.T) {
	t.Parallel()

	values := []int32{math.MinInt32, -0x12345600, -256, 0, 256, 0x7FFFFF00, 0x40000000}

	for _, f := range []Format{S24LE, S24BE, S24In32LE, S24In32BE, S32LE, S32BE} {
		c := Lookup(f)
		buf := make([]byte, c.Width)

		for _, v := range values {
			c.EncodeInt(buf, v)
			assert.Equal(t, v, c.DecodeInt(buf), "%s %#x", f, v)
		}
	}

	c := Lookup(S32LE)
	buf := make([]byte, 4)
	c.EncodeInt(buf, math.MaxInt32)
	assert.Equal(t, int32(math.MaxInt32), c.DecodeInt(buf))
}

func TestCodec_S24Layout(t *testing.T) {
	t.Parallel()

	le := make([]byte, 3)
	Lookup(S24LE).EncodeInt(le, -2<<8)
	assert.Equal(t, []byte{0xFE, 0xFF, 0xFF}, le)
	assert.Equal(t, int32(0x123456<<8), Lookup(S24LE).DecodeInt([]byte{0x56, 0x34, 0x12}))

	be := make([]byte, 3)
	Lookup(S24BE).EncodeInt(be, 0x123456<<8|0xFF)
	assert.Equal(t, []byte{0x12, 0x34, 0x56}, be, "low byte truncated")

	word := make([]byte, 4)
	Lookup(S24In32LE).EncodeInt(word, -1<<8)
	assert.Equal(t, uint32(0x00FFFFFF), binary.LittleEndian.Uint32(word), "high byte written as zero")
	assert.Equal(t, int32(-1<<8), Lookup(S24In32LE).DecodeInt([]byte{0xFF, 0xFF, 0xFF, 0x00}))
	assert.Equal(t, int32(-1<<8), Lookup(S24In32LE).DecodeInt([]byte{0xFF, 0xFF, 0xFF, 0xFF}), "high byte ignored")

	Lookup(S24In32BE).EncodeInt(word, 0x123456<<8)
	assert.Equal(t, []byte{0x00, 0x12, 0x34, 0x56}, word)
}

func TestCodec_U8(t *testing.T) {
	t.Parallel()

	c := Lookup(U8)
	assert.Equal(t, int32(-0x8000), c.DecodeInt([]byte{0x00}))
	assert.Equal(t, int32(0), c.DecodeInt([]byte{0x80}))
	assert.Equal(t, int32(0x7F00), c.DecodeInt([]byte{0xFF}))

	out := make([]byte, 1)
	c.EncodeInt(out, 0x7FFF)
	assert.Equal(t, byte(0xFF), out[0])
	c.EncodeInt(out, -0x10000)
	assert.Equal(t, byte(0x00), out[0], "saturates below range")
	c.EncodeInt(out, 0x10000)
	assert.Equal(t, byte(0xFF), out[0], "saturates above range")
}

func TestCodec_FloatIsNotClipped(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{Float32LE, Float32BE} {
		c := Lookup(f)
		buf := make([]byte, 4)

		for _, v := range []float32{0, -1, 1, 2.5, -7.25, math.MaxFloat32} {
			c.EncodeFloat(buf, v)
			assert.Equal(t, v, c.DecodeFloat(buf), "%s %v", f, v)
		}
	}

	buf := make([]byte, 4)
	Lookup(Float32BE).EncodeFloat(buf, 1)
	assert.Equal(t, []byte{0x3F, 0x80, 0x00, 0x00}, buf)
	Lookup(Float32LE).EncodeFloat(buf, 1)
	assert.Equal(t, []byte{0x00, 0x00, 0x80, 0x3F}, buf)
}

func TestCodec_Saturate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int32(math.MaxInt16), Lookup(S16LE).Saturate(1<<20))
	assert.Equal(t, int32(math.MinInt16), Lookup(ULaw).Saturate(-1<<20))
	assert.Equal(t, int32(math.MaxInt32), Lookup(S24LE).Saturate(1<<40))
	assert.Equal(t, int32(math.MinInt32), Lookup(S32BE).Saturate(-1<<40))
	assert.Equal(t, int32(1234), Lookup(S32BE).Saturate(1234))
}

func TestCodec_KindsHaveMatchingFunctions(t *testing.T) {
	t.Parallel()

	for _, f := range Formats() {
		c := Lookup(f)
		if c.IsFloat() {
			assert.NotNil(t, c.DecodeFloat, f.String())
			assert.NotNil(t, c.EncodeFloat, f.String())
			assert.Nil(t, c.DecodeInt, f.String())
		} else {
			assert.NotNil(t, c.DecodeInt, f.String())
			assert.NotNil(t, c.EncodeInt, f.String())
			assert.Nil(t, c.DecodeFloat, f.String())
			assert.Less(t, c.Min, c.Max)
		}
	}
}

func BenchmarkCodec_DecodeEncodeS16LE(b *testing.B) {
	c := Lookup(S16LE)
	buf := make([]byte, 4096)

	b.ReportAllocs()
	b.SetBytes(int64(len(buf)))

	for b.Loop() {
		for i := 0; i < len(buf); i += 2 {
			c.EncodeInt(buf[i:], c.DecodeInt(buf[i:])+1)
		}
	}
}
