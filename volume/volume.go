// SPDX-License-Identifier: EPL-2.0

package volume

import (
	"fmt"
	"math"
)

// Volume is a software gain value. The zero value is Muted.
type Volume uint32

const (
	Muted   Volume = 0
	Norm    Volume = 0x10000
	Max     Volume = math.MaxUint32 / 2
	Invalid Volume = math.MaxUint32
)

func clampVolume(v uint64) Volume {
	if v > uint64(Max) {
		return Max
	}

	return Volume(v)
}

// FromLinear maps a linear amplitude factor onto the cubic volume curve.
// Anything at or below zero is Muted and 1.0 is exactly Norm.
func FromLinear(l float64) Volume {
	if l <= 0 || math.IsNaN(l) {
		return Muted
	}

	v := math.Round(math.Cbrt(l) * float64(Norm))
	if v >= float64(Max) {
		return Max
	}

	return Volume(v)
}

// FromDB converts a decibel gain. Negative infinity is Muted.
func FromDB(db float64) Volume {
	if math.IsInf(db, -1) {
		return Muted
	}

	return FromLinear(math.Pow(10, db/20))
}

func (v Volume) Valid() bool { return v <= Max }

// Linear is the amplitude factor of v.
func (v Volume) Linear() float64 {
	switch {
	case v == Muted:
		return 0
	case v == Norm:
		return 1
	}

	f := float64(v) / float64(Norm)

	return f * f * f
}

// Fixed is the linear factor in 16.16 fixed point.
func (v Volume) Fixed() int32 { return FixedFromLinear(v.Linear()) }

// FixedFromLinear converts a linear factor to 16.16 fixed point, rounding half
// to even and saturating to the int32 range.
func FixedFromLinear(l float64) int32 {
	f := math.RoundToEven(l * 0x10000)

	switch {
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= 0 || math.IsNaN(f):
		return 0
	}

	return int32(f)
}

// Float32 is the linear factor as applied to float samples.
func (v Volume) Float32() float32 {
	return float32(v.Linear())
}

// DB is the gain in decibels, negative infinity for Muted.
func (v Volume) DB() float64 {
	if v == Muted {
		return math.Inf(-1)
	}

	return 20 * math.Log10(v.Linear())
}

// Multiply combines two gains, Multiply(Norm, v) == v.
func Multiply(a, b Volume) Volume {
	return clampVolume((uint64(a)*uint64(b) + uint64(Norm)/2) / uint64(Norm))
}

// Divide is the inverse of Multiply. Dividing by Muted gives Muted.
func Divide(a, b Volume) Volume {
	if b == Muted {
		return Muted
	}

	return clampVolume((uint64(a)*uint64(Norm) + uint64(b)/2) / uint64(b))
}

// String formats v as a percentage of Norm.
func (v Volume) String() string {
	if !v.Valid() {
		return "(invalid)"
	}

	return fmt.Sprintf("%d%%", (uint64(v)*100+uint64(Norm)/2)/uint64(Norm))
}

func (v Volume) DBString() string {
	if !v.Valid() {
		return "(invalid)"
	}

	db := v.DB()
	if math.IsInf(db, -1) {
		return "-inf dB"
	}

	return fmt.Sprintf("%0.2f dB", db)
}
