// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always renders two channels, so every source has the spec
// pcm.S16LE, 2 channels, at the stream's sample rate. Mono files come out
// with both channels equal; audio.NewChannelMapper folds them back:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	mono, err := audio.NewChannelMapper(src, 1)
//
// Frames the decoder splits across reads are completed before being handed
// out, and a trailing half frame at the end of the stream is dropped.
package mp3
