// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/audmix/memblock"
	"github.com/ik5/audmix/pcm"
	"github.com/ik5/audmix/utils"
	"github.com/ik5/audmix/volume"
)

// MixInput is one stream taking part in a mix.
type MixInput struct {
	Chunk  memblock.Chunk
	Volume volume.ChannelVolume

	// ChannelMap, when set, makes output channel c read channel ChannelMap[c]
	// of this stream. The volume of the source channel applies.
	ChannelMap []int

	// Spec, when set, must equal the destination spec.
	Spec pcm.Spec
}

type mixOptions struct {
	master volume.ChannelVolume
	mute   bool
}

type MixOption func(*mixOptions)

// WithMasterVolume scales every stream by an additional per-channel volume.
func WithMasterVolume(cv volume.ChannelVolume) MixOption {
	return func(o *mixOptions) {
		o.master = cv
	}
}

// WithMute silences the whole mix.
func WithMute(mute bool) MixOption {
	return func(o *mixOptions) {
		o.mute = mute
	}
}

// mixStream is a validated input with per-output-channel factors resolved.
type mixStream struct {
	data   []byte
	source []int
	fixed  []int64
	linear []float32
}

// Mix overwrites dst with the saturated sum of every input scaled by its
// volume. Inputs are summed in order; an input shorter than dst contributes
// silence once it runs out. With no inputs or a muted master, dst is filled
// with silence.
//
// Mix panics when dst or an input is not frame aligned, when a volume, master
// volume or channel map does not match the channel count, or when an input
// declares a different spec.
func Mix(dst []byte, spec pcm.Spec, inputs []MixInput, opts ...MixOption) {
	var o mixOptions
	for _, opt := range opts {
		opt(&o)
	}

	master := o.master
	if master == nil {
		master = volume.Reset(spec.Channels)
	}

	checkBuffer(dst, spec, master)

	if o.mute || len(inputs) == 0 || master.IsMuted() {
		pcm.FillSilence(dst, spec.Format)

		return
	}

	c := pcm.Lookup(spec.Format)
	streams := prepareStreams(c, spec, inputs, master)

	if c.IsFloat() {
		mixFloat(dst, spec, c, streams)
	} else {
		mixInt(dst, spec, c, streams)
	}
}

// MixChunk is Mix into a chunk the caller made writable.
func MixChunk(dst memblock.Writable, spec pcm.Spec, inputs []MixInput, opts ...MixOption) {
	Mix(dst.Bytes(), spec, inputs, opts...)
}

func prepareStreams(c *pcm.Codec, spec pcm.Spec, inputs []MixInput, master volume.ChannelVolume) []mixStream {
	streams := make([]mixStream, len(inputs))

	for i, in := range inputs {
		if in.Spec != (pcm.Spec{}) && !in.Spec.Equal(spec) {
			panic(fmt.Errorf("%w: input %d is %s, destination is %s", ErrSpecMismatch, i, in.Spec, spec))
		}

		data := in.Chunk.Bytes()
		checkBuffer(data, spec, in.Volume)

		s := mixStream{data: data, source: make([]int, spec.Channels)}

		for ch := range s.source {
			s.source[ch] = ch
		}

		if in.ChannelMap != nil {
			if len(in.ChannelMap) != spec.Channels {
				panic(fmt.Errorf("%w: input %d maps %d of %d channels", ErrInvalidChannelMap, i, len(in.ChannelMap), spec.Channels))
			}

			for ch, from := range in.ChannelMap {
				if from < 0 || from >= spec.Channels {
					panic(fmt.Errorf("%w: input %d channel %d reads %d", ErrInvalidChannelMap, i, ch, from))
				}

				s.source[ch] = from
			}
		}

		if c.IsFloat() {
			s.linear = make([]float32, spec.Channels)
		} else {
			s.fixed = make([]int64, spec.Channels)
		}

		for ch, from := range s.source {
			l := in.Volume[from].Linear() * master[ch].Linear()

			if c.IsFloat() {
				s.linear[ch] = float32(l)
			} else {
				s.fixed[ch] = int64(volume.FixedFromLinear(l))
			}
		}

		streams[i] = s
	}

	return streams
}

func mixInt(dst []byte, spec pcm.Spec, c *pcm.Codec, streams []mixStream) {
	w := c.Width
	fs := spec.FrameSize()

	for off := 0; off < len(dst); off += fs {
		for ch := range spec.Channels {
			var sum int64

			for i := range streams {
				s := &streams[i]
				if off >= len(s.data) {
					continue
				}

				at := off + s.source[ch]*w
				sum += (int64(c.DecodeInt(s.data[at:at+w])) * s.fixed[ch]) >> 16
			}

			at := off + ch*w
			c.EncodeInt(dst[at:at+w], c.Saturate(sum))
		}
	}
}

func mixFloat(dst []byte, spec pcm.Spec, c *pcm.Codec, streams []mixStream) {
	w := c.Width
	fs := spec.FrameSize()

	for off := 0; off < len(dst); off += fs {
		for ch := range spec.Channels {
			var sum float64

			for i := range streams {
				s := &streams[i]
				if off >= len(s.data) || s.linear[ch] == 0 {
					continue
				}

				at := off + s.source[ch]*w
				sum += float64(c.DecodeFloat(s.data[at:at+w]) * s.linear[ch])
			}

			at := off + ch*w
			c.EncodeFloat(dst[at:at+w], float32(utils.Clamp(sum, -math.MaxFloat32, math.MaxFloat32)))
		}
	}
}
