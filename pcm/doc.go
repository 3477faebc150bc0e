// SPDX-License-Identifier: EPL-2.0

// Package pcm is the format registry of the mixing engine.
//
// It enumerates the supported PCM sample encodings and, for each, the sample
// width and the decode/encode pair to and from a canonical intermediate value:
//
//   - KindInt16: U8, ALaw, ULaw, S16LE, S16BE, held in an int32 within the int16 range
//   - KindInt32: S24LE, S24BE, S24In32LE, S24In32BE, S32LE, S32BE, left-justified int32
//   - KindFloat32: Float32LE, Float32BE
//
// # Sample Spec
//
// A Spec couples a format with a channel count and a rate:
//
//	spec := pcm.Spec{Format: pcm.S16LE, Channels: 2, Rate: 44100}
//	spec.FrameSize()      // 4
//	spec.BytesPerSecond() // 176400
//
// Any buffer handed to the engine must be an exact multiple of the frame size.
//
// # Codecs
//
// Codecs are looked up from a table indexed by Format:
//
//	c := pcm.Lookup(pcm.S24LE)
//	v := c.DecodeInt(buf[0:3]) // sign-extended, left-justified int32
//	c.EncodeInt(buf[0:3], v)   // truncates the low 8 bits
//
// Decoding and re-encoding any value representable in a format gives back the
// same bytes. Narrowing conversions truncate (integers) or compand (A-law,
// µ-law); nothing is dithered. Float formats are never clipped by the codec.
//
// # Failure Model
//
// Passing an invalid format to Lookup or an unaligned buffer to Convert is a
// programming error and panics with an error wrapping one of the package's
// sentinel errors.
package pcm
