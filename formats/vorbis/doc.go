// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files with github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to floating point, so sources are pcm.Float32LE at the
// stream's channel count and rate. Convert them with audio.NewConverter
// when an integer format is needed:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	s16, err := audio.NewConverter(src, pcm.S16LE)
package vorbis
