// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestG711_KnownCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		decode func(byte) int16
		code   byte
		want   int16
	}{
		{"alaw silence", aLawToLinear, 0xD5, 8},
		{"alaw negative silence", aLawToLinear, 0x55, -8},
		{"alaw max", aLawToLinear, 0xAA, 32256},
		{"alaw min", aLawToLinear, 0x2A, -32256},
		{"ulaw silence", muLawToLinear, 0xFF, 0},
		{"ulaw negative zero", muLawToLinear, 0x7F, 0},
		{"ulaw max", muLawToLinear, 0x80, 32124},
		{"ulaw min", muLawToLinear, 0x00, -32124},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.decode(tt.code))
		})
	}
}

func TestG711_EncodeIsMonotonic(t *testing.T) {
	t.Parallel()

	for _, f := range []Format{ALaw, ULaw} {
		c := Lookup(f)
		buf := make([]byte, 1)
		prev := int32(math.MinInt32)

		for v := int32(math.MinInt16); v <= math.MaxInt16; v += 7 {
			c.EncodeInt(buf, v)
			got := c.DecodeInt(buf)

			assert.GreaterOrEqual(t, got, prev, "%s at %d", f, v)
			prev = got
		}
	}
}

func TestG711_ClipsSilently(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 1)

	Lookup(ULaw).EncodeInt(buf, 1<<20)
	assert.Equal(t, byte(0x80), buf[0])

	Lookup(ULaw).EncodeInt(buf, -1<<20)
	assert.Equal(t, byte(0x00), buf[0])

	Lookup(ALaw).EncodeInt(buf, 1<<20)
	assert.Equal(t, byte(0xAA), buf[0])

	Lookup(ALaw).EncodeInt(buf, -1<<20)
	assert.Equal(t, byte(0x2A), buf[0])
}
