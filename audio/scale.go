// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audmix/memblock"
	"github.com/ik5/audmix/pcm"
	"github.com/ik5/audmix/volume"
)

// checkBuffer panics unless buf holds whole frames of spec and vol has one
// entry per channel.
func checkBuffer(buf []byte, spec pcm.Spec, vol volume.ChannelVolume) {
	if err := spec.Validate(); err != nil {
		panic(err)
	}

	if len(buf)%spec.FrameSize() != 0 {
		panic(fmt.Errorf("%w: %d bytes with %d byte frames", pcm.ErrUnaligned, len(buf), spec.FrameSize()))
	}

	if len(vol) != spec.Channels {
		panic(fmt.Errorf("%w: %d volumes for %d channels", ErrChannelMismatch, len(vol), spec.Channels))
	}
}

// ApplyVolume scales every sample of buf in place by the volume of its
// channel. Integer formats use 16.16 fixed-point factors and saturate, float
// formats multiply by the linear factor and are not clipped. Muted channels
// become silence.
//
// The caller must hold exclusive write access to buf. ApplyVolume panics if
// buf is not frame aligned or vol does not match the channel count.
func ApplyVolume(buf []byte, spec pcm.Spec, vol volume.ChannelVolume) {
	checkBuffer(buf, spec, vol)

	switch {
	case vol.IsNorm():
		return
	case vol.IsMuted():
		pcm.FillSilence(buf, spec.Format)

		return
	}

	c := pcm.Lookup(spec.Format)
	w := c.Width
	frames := len(buf) / spec.FrameSize()

	if c.IsFloat() {
		factors := make([]float32, spec.Channels)
		for i, v := range vol {
			factors[i] = v.Float32()
		}

		for f, off := 0, 0; f < frames; f++ {
			for ch := range spec.Channels {
				s := buf[off : off+w]
				// a muted channel is written as silence so -0 and NaN never appear
				if vol[ch] == volume.Muted {
					c.EncodeFloat(s, 0)
				} else {
					c.EncodeFloat(s, c.DecodeFloat(s)*factors[ch])
				}
				off += w
			}
		}

		return
	}

	factors := make([]int64, spec.Channels)
	for i, v := range vol {
		factors[i] = int64(v.Fixed())
	}

	for f, off := 0, 0; f < frames; f++ {
		for ch := range spec.Channels {
			s := buf[off : off+w]
			c.EncodeInt(s, c.Saturate((int64(c.DecodeInt(s))*factors[ch])>>16))
			off += w
		}
	}
}

// ApplyVolumeChunk is ApplyVolume over a chunk the caller made writable.
func ApplyVolumeChunk(w memblock.Writable, spec pcm.Spec, vol volume.ChannelVolume) {
	ApplyVolume(w.Bytes(), spec, vol)
}
