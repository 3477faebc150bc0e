// SPDX-License-Identifier: EPL-2.0

// Package pcmint moves integer samples between the go-audio IntBuffer
// representation used by container libraries and engine byte layouts.
//
// go-audio hands out one int per sample at the file's bit depth: 8-bit
// values are unsigned (0..255), wider ones are signed and right-justified.
package pcmint

import "github.com/ik5/audmix/pcm"

// Format returns the layout samples of bitDepth are delivered in.
func Format(bitDepth int) (pcm.Format, bool) {
	switch bitDepth {
	case 8:
		return pcm.U8, true
	case 16:
		return pcm.S16LE, true
	case 24:
		return pcm.S24LE, true
	case 32:
		return pcm.S32LE, true
	}

	return pcm.Invalid, false
}

// Put encodes src into dst and returns the number of bytes written. dst must
// hold len(src) samples of the bit depth's format.
func Put(dst []byte, bitDepth int, src []int) int {
	f, ok := Format(bitDepth)
	if !ok {
		return 0
	}

	c := pcm.Lookup(f)
	for i, v := range src {
		c.EncodeInt(dst[i*c.Width:(i+1)*c.Width], toCanonical(bitDepth, v))
	}

	return len(src) * c.Width
}

// Get decodes whole samples of src into dst and returns how many were
// written.
func Get(dst []int, bitDepth int, src []byte) int {
	f, ok := Format(bitDepth)
	if !ok {
		return 0
	}

	c := pcm.Lookup(f)
	n := min(len(dst), len(src)/c.Width)
	for i := range n {
		dst[i] = fromCanonical(bitDepth, c.DecodeInt(src[i*c.Width:(i+1)*c.Width]))
	}

	return n
}

func toCanonical(bitDepth, v int) int32 {
	switch bitDepth {
	case 8:
		return int32(v-0x80) << 8
	case 24:
		return int32(v) << 8
	}

	return int32(v)
}

func fromCanonical(bitDepth int, v int32) int {
	switch bitDepth {
	case 8:
		return int(v>>8) + 0x80
	case 24:
		return int(v >> 8)
	}

	return int(v)
}

// BitDepth is the inverse of Format.
func BitDepth(f pcm.Format) (int, bool) {
	switch f {
	case pcm.U8:
		return 8, true
	case pcm.S16LE:
		return 16, true
	case pcm.S24LE:
		return 24, true
	case pcm.S32LE:
		return 32, true
	}

	return 0, false
}
