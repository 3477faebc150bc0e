// SPDX-License-Identifier: EPL-2.0

// Package audmix converts, scales and mixes interleaved PCM audio.
//
// The engine works on byte buffers described by a pcm.Spec: a sample format,
// a channel count and a rate. Every format of the engine can be converted to
// every other one, scaled by a per-channel volume and summed with other
// streams of the same spec.
//
// # Packages
//
//   - pcm: sample formats, specs, silence and format conversion
//   - volume: software volumes with a cubic curve and 16.16 fixed-point factors
//   - memblock: reference counted blocks, chunks and a pool
//   - audio: sources, channel mapping, conversion, volume scaling and mixing
//   - formats/*: WAV, AIFF, MP3, Ogg Vorbis and raw PCM decoders plus WAV,
//     AIFF and raw writers
//
// # Quick Start
//
// Mixing two S16LE buffers in place:
//
//	spec := pcm.Spec{Format: pcm.S16LE, Channels: 2, Rate: 48000}
//	audio.Mix(dst, spec, []audio.MixInput{
//		{Chunk: memblock.NewChunk(memblock.NewUser(a, true)), Volume: volume.Reset(2)},
//		{Chunk: memblock.NewChunk(memblock.NewUser(b, true)), Volume: volume.Uniform(2, volume.FromDB(-6))},
//	})
//
// Decoding a file to mono 16-bit samples:
//
//	dec, _ := audmix.NewRegistry().Get("wav")
//	src, _ := dec.Decode(file)
//	samples, err := audmix.ReadInt16(src, 1, 4096)
//
// # Sources
//
// Decoders return an audio.Source producing whole frames. Sources compose:
//
//	mapped, _ := audio.NewChannelMapper(src, 2)
//	s32, _ := audio.NewConverter(mapped, pcm.S32LE)
//	chunk, err := audio.ReadAll(pool, s32)
//
// The cmd/audmix tool runs a whole mix job described in YAML.
package audmix
