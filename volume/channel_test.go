// SPDX-License-Identifier: EPL-2.0

package volume

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelVolume_Constructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ChannelVolume{Norm, Norm}, Reset(2))
	assert.Equal(t, ChannelVolume{Muted, Muted, Muted}, Mute(3))
	assert.Equal(t, ChannelVolume{63274}, Uniform(1, 63274))
	assert.Equal(t, ChannelVolume{Norm, Muted, 63274}, FromLinearValues(1, 0, 0.9))
	assert.Empty(t, Reset(0))
}

func TestChannelVolume_Predicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cv    ChannelVolume
		valid bool
		norm  bool
		muted bool
	}{
		{"empty", nil, false, false, false},
		{"norm", Reset(2), true, true, false},
		{"muted", Mute(2), true, false, true},
		{"mixed", ChannelVolume{Norm, Muted}, true, false, false},
		{"invalid entry", ChannelVolume{Norm, Invalid}, false, false, false},
		{"too many channels", Reset(33), false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.valid, tt.cv.Valid())
			assert.Equal(t, tt.norm, tt.cv.IsNorm())
			assert.Equal(t, tt.muted, tt.cv.IsMuted())
		})
	}
}

func TestChannelVolume_Aggregates(t *testing.T) {
	t.Parallel()

	cv := ChannelVolume{Norm, Norm / 2, 3 * Norm}

	assert.Equal(t, 3, cv.Channels())
	assert.Equal(t, Volume(0x18000), cv.Avg())
	assert.Equal(t, 3*Norm, cv.Max())
	assert.Equal(t, Norm/2, cv.Min())

	var empty ChannelVolume
	assert.Equal(t, Muted, empty.Avg())
	assert.Equal(t, Muted, empty.Max())
	assert.Equal(t, Muted, empty.Min())
}

func TestChannelVolume_Scale(t *testing.T) {
	t.Parallel()

	cv := ChannelVolume{Norm, Norm / 2}

	got := cv.Scale(Norm / 2)
	assert.Equal(t, ChannelVolume{Norm / 2, Norm / 4}, got)
	assert.Equal(t, ChannelVolume{Norm, Norm / 2}, cv, "receiver untouched")

	assert.Equal(t, ChannelVolume{Norm, Norm}, Mute(2).Scale(Norm))
}

func TestChannelVolume_Multiply(t *testing.T) {
	t.Parallel()

	a := ChannelVolume{Norm, 63274, Muted}
	b := ChannelVolume{63274, Norm, Norm}

	assert.Equal(t, ChannelVolume{63274, 63274, Muted}, a.Multiply(b))

	defer func() {
		r := recover()
		require.NotNil(t, r)
		assert.True(t, errors.Is(r.(error), ErrChannelMismatch))
	}()

	a.Multiply(Reset(2))
}

func TestChannelVolume_EqualAndString(t *testing.T) {
	t.Parallel()

	assert.True(t, Reset(2).Equal(ChannelVolume{Norm, Norm}))
	assert.False(t, Reset(2).Equal(Reset(1)))
	assert.Equal(t, "0: 100% 1: 50%", ChannelVolume{Norm, Norm / 2}.String())
}
