// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/internal/audiotest"
	"github.com/ik5/audmix/memblock"
	"github.com/ik5/audmix/pcm"
	"github.com/ik5/audmix/volume"
)

// Example_applyVolume scales a shared buffer after making it writable.
func Example_applyVolume() {
	pool := memblock.NewPool()
	spec := pcm.Spec{Format: pcm.U8, Channels: 1, Rate: 44100}

	shared := memblock.NewChunk(memblock.NewUser([]byte{0x00, 0xff, 0x9f, 0x3f}, true))
	w := shared.MakeWritable(pool)

	audio.ApplyVolumeChunk(w, spec, volume.ChannelVolume{volume.FromLinear(0.9)})

	fmt.Printf("% x\n", w.Bytes())
	// Output: 0c f2 9b 45
}

// Example_mix sums two streams with their own volumes.
func Example_mix() {
	spec := pcm.Spec{Format: pcm.S16LE, Channels: 1, Rate: 8000}

	a := memblock.NewChunk(memblock.NewUser([]byte{0x00, 0x40, 0x00, 0x40}, true))
	b := memblock.NewChunk(memblock.NewUser([]byte{0x00, 0x40}, true))

	dst := make([]byte, 4)
	audio.Mix(dst, spec, []audio.MixInput{
		{Chunk: a, Volume: volume.Reset(1)},
		{Chunk: b, Volume: volume.FromLinearValues(0.5)},
	})

	fmt.Printf("% x\n", dst)
	// Output: 00 60 00 40
}

// Example_channelMapper downmixes a stereo source to mono.
func Example_channelMapper() {
	spec := pcm.Spec{Format: pcm.S16LE, Channels: 2, Rate: 16000}
	source := audiotest.NewConstantSource(spec, 16000, 0.25)

	mono, err := audio.NewChannelMapper(source, 1)
	if err != nil {
		panic(err)
	}

	chunk, err := audio.ReadAll(memblock.NewPool(), mono)
	if err != nil {
		panic(err)
	}

	fmt.Println(mono.Spec())
	fmt.Println(mono.Spec().BytesToDuration(chunk.Length))
	// Output:
	// s16le 1ch 16000Hz
	// 1s
}
