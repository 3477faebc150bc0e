// SPDX-License-Identifier: EPL-2.0

package volume

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ik5/audmix/pcm"
)

// ChannelVolume is a gain per interleaved channel. Its length must match the
// channel count of any buffer it is applied to.
type ChannelVolume []Volume

// Uniform returns n channels all set to v.
func Uniform(n int, v Volume) ChannelVolume {
	cv := make(ChannelVolume, n)
	for i := range cv {
		cv[i] = v
	}

	return cv
}

// Reset returns n channels at unity gain.
func Reset(n int) ChannelVolume { return Uniform(n, Norm) }

// Mute returns n muted channels.
func Mute(n int) ChannelVolume { return Uniform(n, Muted) }

// FromLinearValues builds a vector from one linear factor per channel.
func FromLinearValues(l ...float64) ChannelVolume {
	cv := make(ChannelVolume, len(l))
	for i, f := range l {
		cv[i] = FromLinear(f)
	}

	return cv
}

func (cv ChannelVolume) Channels() int { return len(cv) }

// Valid reports whether the vector has a usable channel count and every
// entry is within range.
func (cv ChannelVolume) Valid() bool {
	if len(cv) < 1 || len(cv) > pcm.MaxChannels {
		return false
	}

	for _, v := range cv {
		if !v.Valid() {
			return false
		}
	}

	return true
}

func (cv ChannelVolume) all(v Volume) bool {
	for _, c := range cv {
		if c != v {
			return false
		}
	}

	return len(cv) > 0
}

// IsNorm reports whether every channel is at unity gain.
func (cv ChannelVolume) IsNorm() bool { return cv.all(Norm) }

// IsMuted reports whether every channel is muted.
func (cv ChannelVolume) IsMuted() bool { return cv.all(Muted) }

func (cv ChannelVolume) Avg() Volume {
	if len(cv) == 0 {
		return Muted
	}

	var sum uint64
	for _, v := range cv {
		sum += uint64(v)
	}

	return Volume(sum / uint64(len(cv)))
}

func (cv ChannelVolume) Max() Volume {
	if len(cv) == 0 {
		return Muted
	}

	return slices.Max(cv)
}

func (cv ChannelVolume) Min() Volume {
	if len(cv) == 0 {
		return Muted
	}

	return slices.Min(cv)
}

// Scale returns a copy whose loudest channel is peak, keeping the balance
// between channels. A fully muted vector becomes uniform at peak.
func (cv ChannelVolume) Scale(peak Volume) ChannelVolume {
	out := make(ChannelVolume, len(cv))

	t := cv.Max()
	if t == Muted {
		for i := range out {
			out[i] = peak
		}

		return out
	}

	for i, v := range cv {
		out[i] = clampVolume(uint64(v) * uint64(peak) / uint64(t))
	}

	return out
}

// Multiply combines two vectors channel by channel.
func (cv ChannelVolume) Multiply(o ChannelVolume) ChannelVolume {
	if len(cv) != len(o) {
		panic(fmt.Errorf("%w: %d and %d", ErrChannelMismatch, len(cv), len(o)))
	}

	out := make(ChannelVolume, len(cv))
	for i := range cv {
		out[i] = Multiply(cv[i], o[i])
	}

	return out
}

func (cv ChannelVolume) Equal(o ChannelVolume) bool { return slices.Equal(cv, o) }

func (cv ChannelVolume) String() string {
	var b strings.Builder

	for i, v := range cv {
		if i > 0 {
			b.WriteByte(' ')
		}

		fmt.Fprintf(&b, "%d: %s", i, v)
	}

	return b.String()
}
