// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpec_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec Spec
		want error
	}{
		{"valid", Spec{S16LE, 2, 44100}, nil},
		{"max channels", Spec{U8, MaxChannels, 8000}, nil},
		{"max rate", Spec{Float32BE, 1, MaxRate}, nil},
		{"invalid format", Spec{Invalid, 2, 44100}, ErrInvalidFormat},
		{"zero channels", Spec{S16LE, 0, 44100}, ErrInvalidChannels},
		{"too many channels", Spec{S16LE, MaxChannels + 1, 44100}, ErrInvalidChannels},
		{"zero rate", Spec{S16LE, 2, 0}, ErrInvalidRate},
		{"rate too high", Spec{S16LE, 2, MaxRate + 1}, ErrInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.spec.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				assert.True(t, tt.spec.Valid())

				return
			}

			assert.ErrorIs(t, err, tt.want)
			assert.False(t, tt.spec.Valid())
		})
	}
}

func TestSpec_Sizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec      Spec
		frame     int
		perSecond int
	}{
		{Spec{U8, 1, 44100}, 1, 44100},
		{Spec{S16LE, 2, 44100}, 4, 176400},
		{Spec{S24BE, 2, 48000}, 6, 288000},
		{Spec{S24In32LE, 6, 48000}, 24, 1152000},
		{Spec{Float32LE, 2, 96000}, 8, 768000},
	}

	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.frame, tt.spec.FrameSize())
			assert.Equal(t, tt.perSecond, tt.spec.BytesPerSecond())
			assert.Equal(t, tt.spec.Format.SampleSize(), tt.spec.SampleSize())
			assert.True(t, tt.spec.Aligned(tt.frame*10))
			assert.Equal(t, tt.frame == 1, tt.spec.Aligned(tt.frame*10+1))
		})
	}
}

func TestSpec_Durations(t *testing.T) {
	t.Parallel()

	s := Spec{S16LE, 2, 44100}

	assert.Equal(t, time.Second, s.BytesToDuration(176400))
	assert.Equal(t, time.Second, s.BytesToDuration(176403), "partial frame ignored")
	assert.Equal(t, 176400, s.DurationToBytes(time.Second))
	assert.Equal(t, 4408, s.DurationToBytes(25*time.Millisecond), "rounded down to a frame")
	assert.Zero(t, s.DurationToBytes(-time.Second))
	assert.Zero(t, Spec{}.BytesToDuration(100))
}

func TestSpec_StringAndEqual(t *testing.T) {
	t.Parallel()

	a := Spec{S16LE, 2, 44100}
	assert.Equal(t, "s16le 2ch 44100Hz", a.String())
	assert.True(t, a.Equal(Spec{S16LE, 2, 44100}))
	assert.False(t, a.Equal(Spec{S16BE, 2, 44100}))
	assert.False(t, a.Equal(Spec{S16LE, 1, 44100}))
	assert.False(t, a.Equal(Spec{S16LE, 2, 48000}))
}
