// SPDX-License-Identifier: EPL-2.0

// Package audio provides the volume scaler and the mixer.
//
// Both work on raw interleaved PCM described by a pcm.Spec:
//   - ApplyVolume scales a buffer in place, one volume per channel
//   - Mix sums several volumed streams into a destination buffer
//
// # Volume Scaling
//
// Integer formats are scaled with 16.16 fixed-point factors and saturated
// before encoding, float formats are multiplied by the linear factor and never
// clipped. Unity volume leaves the buffer untouched and a muted vector writes
// the silence pattern of the format:
//
//	w := chunk.MakeWritable(pool)
//	audio.ApplyVolumeChunk(w, spec, volume.ChannelVolume{volume.FromLinear(0.9)})
//
// # Mixing
//
// Mix overwrites the destination with the sum of its inputs. Each sample is
// decoded, scaled by the volume of its stream, accumulated in 64 bits and
// saturated once per output sample:
//
//	audio.Mix(dst, spec, []audio.MixInput{
//	    {Chunk: music, Volume: volume.Reset(2)},
//	    {Chunk: voice, Volume: volume.FromLinearValues(0.8, 0.8)},
//	}, audio.WithMasterVolume(master))
//
// Inputs are visited in ascending order. An input shorter than the
// destination contributes silence once exhausted.
//
// # Failure Model
//
// Unaligned buffers, volume vectors of the wrong length, bad channel maps and
// inputs declaring a different spec are programming errors; ApplyVolume and
// Mix panic with an error wrapping ErrChannelMismatch, ErrInvalidChannelMap,
// ErrSpecMismatch or pcm.ErrUnaligned. Overflow is not an error, it saturates.
//
// # Sources
//
// File inputs reach the mixer as a Source, a byte stream of whole frames.
// Decoders are looked up through a Registry; ChannelMapper and Converter
// adapt the channel count and sample format, and ReadAll drains a source into
// a pool block:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	dec, _ := registry.Get("wav")
//	src, _ := dec.Decode(file)
//	chunk, err := audio.ReadAll(pool, src)
package audio
