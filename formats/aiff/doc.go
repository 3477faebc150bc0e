// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding and
// encoding on top of github.com/go-audio/aiff.
//
// AIFF stores big-endian samples; the decoder hands them out as the
// little-endian engine formats pcm.S16LE, pcm.S24LE and pcm.S32LE for 16,
// 24 and 32-bit files. 8-bit files are rejected with ErrUnsupportedBitDepth.
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not AIFF
//	}
//
// Encoder is the reverse path and, like the WAV encoder, needs an
// io.WriteSeeker.
package aiff
