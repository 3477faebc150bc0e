// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"cmp"
	"math"
)

// Clamp limits v to the closed range [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}

	return v
}

// SaturateInt16 clips a wide accumulator to the int16 range instead of wrapping.
func SaturateInt16(v int64) int16 {
	return int16(Clamp(v, math.MinInt16, math.MaxInt16))
}

// SaturateInt32 clips a wide accumulator to the int32 range instead of wrapping.
func SaturateInt32(v int64) int32 {
	return int32(Clamp(v, math.MinInt32, math.MaxInt32))
}
