// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"math"

	"github.com/ik5/audmix/utils"
)

const floatScale = 1 << 31

// Convert re-encodes the samples of src in dstFormat into dst and returns the
// number of samples written. Integer formats pivot through a left-justified
// int32, so narrowing truncates; float formats are scaled by 2^31. Float to
// integer clamps to [-1, 1] first.
//
// Convert panics when src is not a whole number of samples or when dst is too
// short to hold the result.
func Convert(dst []byte, dstFormat Format, src []byte, srcFormat Format) int {
	in, out := Lookup(srcFormat), Lookup(dstFormat)

	if len(src)%in.Width != 0 {
		panic(fmt.Errorf("%w: %d bytes of %s", ErrUnaligned, len(src), srcFormat))
	}

	n := len(src) / in.Width
	if len(dst) < n*out.Width {
		panic(fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n*out.Width, len(dst)))
	}

	if srcFormat == dstFormat {
		copy(dst, src[:n*in.Width])

		return n
	}

	for i := range n {
		s := src[i*in.Width : (i+1)*in.Width]
		d := dst[i*out.Width : (i+1)*out.Width]

		switch {
		case in.IsFloat() && out.IsFloat():
			out.EncodeFloat(d, in.DecodeFloat(s))
		case out.IsFloat():
			out.EncodeFloat(d, float32(float64(widen(in, in.DecodeInt(s)))/floatScale))
		case in.IsFloat():
			out.EncodeInt(d, narrow(out, floatToInt32(in.DecodeFloat(s))))
		default:
			out.EncodeInt(d, narrow(out, widen(in, in.DecodeInt(s))))
		}
	}

	return n
}

// widen moves a canonical value to the int32 pivot.
func widen(c *Codec, v int32) int32 {
	if c.Kind == KindInt16 {
		return v << 16
	}

	return v
}

// narrow moves an int32 pivot value to the canonical range of c.
func narrow(c *Codec, v int32) int32 {
	if c.Kind == KindInt16 {
		return v >> 16
	}

	return v
}

func floatToInt32(f float32) int32 {
	v := utils.Clamp(float64(f), -1, 1)
	if math.IsNaN(v) {
		return 0
	}

	return utils.SaturateInt32(int64(math.Round(v * floatScale)))
}
