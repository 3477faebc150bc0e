// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"fmt"
	"time"
)

const (
	MaxChannels = 32
	MaxRate     = 384000
)

// Spec describes a PCM stream: sample format, interleaved channel count and
// sample rate in Hz.
type Spec struct {
	Format   Format
	Channels int
	Rate     int
}

func (s Spec) Validate() error {
	if !s.Format.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFormat, s.Format)
	}

	if s.Channels < 1 || s.Channels > MaxChannels {
		return fmt.Errorf("%w: %d", ErrInvalidChannels, s.Channels)
	}

	if s.Rate < 1 || s.Rate > MaxRate {
		return fmt.Errorf("%w: %d", ErrInvalidRate, s.Rate)
	}

	return nil
}

func (s Spec) Valid() bool { return s.Validate() == nil }

func (s Spec) SampleSize() int { return s.Format.SampleSize() }

// FrameSize is the size of one sample of every channel in bytes.
func (s Spec) FrameSize() int { return s.Format.SampleSize() * s.Channels }

func (s Spec) BytesPerSecond() int { return s.FrameSize() * s.Rate }

// Aligned reports whether n bytes hold a whole number of frames.
func (s Spec) Aligned(n int) bool {
	fs := s.FrameSize()

	return fs > 0 && n%fs == 0
}

// BytesToDuration is the play time of n bytes. Partial frames are ignored.
func (s Spec) BytesToDuration(n int) time.Duration {
	fs := s.FrameSize()
	if fs == 0 || s.Rate == 0 {
		return 0
	}

	frames := int64(n / fs)

	return time.Duration(frames * int64(time.Second) / int64(s.Rate))
}

// DurationToBytes is the frame aligned byte count covering d, rounding down.
func (s Spec) DurationToBytes(d time.Duration) int {
	if d <= 0 {
		return 0
	}

	frames := int64(d) * int64(s.Rate) / int64(time.Second)

	return int(frames) * s.FrameSize()
}

func (s Spec) Equal(o Spec) bool {
	return s.Format == o.Format && s.Channels == o.Channels && s.Rate == o.Rate
}

func (s Spec) String() string {
	return fmt.Sprintf("%s %dch %dHz", s.Format, s.Channels, s.Rate)
}
