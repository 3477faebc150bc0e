// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/ik5/audmix/utils"
)

// Codec converts between the raw bytes of one sample and its canonical
// intermediate value. Integer kinds use DecodeInt/EncodeInt, the float kind
// uses DecodeFloat/EncodeFloat; the other pair is nil.
type Codec struct {
	Format Format
	Width  int
	Kind   Kind

	// Min and Max bound the canonical value of integer kinds.
	Min, Max int32

	// Silence is the byte pattern of zero amplitude.
	Silence byte

	DecodeInt   func(b []byte) int32
	EncodeInt   func(b []byte, v int32)
	DecodeFloat func(b []byte) float32
	EncodeFloat func(b []byte, v float32)
}

var codecs = [formatMax]Codec{
	U8: {
		Format: U8, Width: 1, Kind: KindInt16,
		Min: math.MinInt16, Max: math.MaxInt16, Silence: 0x80,
		DecodeInt: decodeU8, EncodeInt: encodeU8,
	},
	ALaw: {
		Format: ALaw, Width: 1, Kind: KindInt16,
		Min: math.MinInt16, Max: math.MaxInt16, Silence: 0xD5,
		DecodeInt: decodeALaw, EncodeInt: encodeALaw,
	},
	ULaw: {
		Format: ULaw, Width: 1, Kind: KindInt16,
		Min: math.MinInt16, Max: math.MaxInt16, Silence: 0xFF,
		DecodeInt: decodeULaw, EncodeInt: encodeULaw,
	},
	S16LE: {
		Format: S16LE, Width: 2, Kind: KindInt16,
		Min: math.MinInt16, Max: math.MaxInt16,
		DecodeInt: decodeS16(binary.LittleEndian), EncodeInt: encodeS16(binary.LittleEndian),
	},
	S16BE: {
		Format: S16BE, Width: 2, Kind: KindInt16,
		Min: math.MinInt16, Max: math.MaxInt16,
		DecodeInt: decodeS16(binary.BigEndian), EncodeInt: encodeS16(binary.BigEndian),
	},
	Float32LE: {
		Format: Float32LE, Width: 4, Kind: KindFloat32,
		DecodeFloat: decodeFloat32(binary.LittleEndian), EncodeFloat: encodeFloat32(binary.LittleEndian),
	},
	Float32BE: {
		Format: Float32BE, Width: 4, Kind: KindFloat32,
		DecodeFloat: decodeFloat32(binary.BigEndian), EncodeFloat: encodeFloat32(binary.BigEndian),
	},
	S32LE: {
		Format: S32LE, Width: 4, Kind: KindInt32,
		Min: math.MinInt32, Max: math.MaxInt32,
		DecodeInt: decodeS32(binary.LittleEndian), EncodeInt: encodeS32(binary.LittleEndian),
	},
	S32BE: {
		Format: S32BE, Width: 4, Kind: KindInt32,
		Min: math.MinInt32, Max: math.MaxInt32,
		DecodeInt: decodeS32(binary.BigEndian), EncodeInt: encodeS32(binary.BigEndian),
	},
	S24LE: {
		Format: S24LE, Width: 3, Kind: KindInt32,
		Min: math.MinInt32, Max: math.MaxInt32,
		DecodeInt: decodeS24LE, EncodeInt: encodeS24LE,
	},
	S24BE: {
		Format: S24BE, Width: 3, Kind: KindInt32,
		Min: math.MinInt32, Max: math.MaxInt32,
		DecodeInt: decodeS24BE, EncodeInt: encodeS24BE,
	},
	S24In32LE: {
		Format: S24In32LE, Width: 4, Kind: KindInt32,
		Min: math.MinInt32, Max: math.MaxInt32,
		DecodeInt: decodeS24In32(binary.LittleEndian), EncodeInt: encodeS24In32(binary.LittleEndian),
	},
	S24In32BE: {
		Format: S24In32BE, Width: 4, Kind: KindInt32,
		Min: math.MinInt32, Max: math.MaxInt32,
		DecodeInt: decodeS24In32(binary.BigEndian), EncodeInt: encodeS24In32(binary.BigEndian),
	},
}

// Lookup returns the codec of f. An invalid format is a programming error.
func Lookup(f Format) *Codec {
	if !f.Valid() {
		panic(fmt.Errorf("%w: %d", ErrInvalidFormat, f))
	}

	return &codecs[f]
}

func (c *Codec) IsFloat() bool { return c.Kind == KindFloat32 }

// Saturate clips a wide integer accumulator to the canonical range.
func (c *Codec) Saturate(v int64) int32 {
	return int32(utils.Clamp(v, int64(c.Min), int64(c.Max)))
}

func decodeU8(b []byte) int32 {
	return (int32(b[0]) - 0x80) << 8
}

func encodeU8(b []byte, v int32) {
	b[0] = byte(utils.Clamp(v>>8, -0x80, 0x7F) + 0x80)
}

func decodeALaw(b []byte) int32 {
	return int32(aLawToLinear(b[0]))
}

func encodeALaw(b []byte, v int32) {
	b[0] = linearToALaw(int16(utils.Clamp(v, math.MinInt16, math.MaxInt16) >> 3))
}

func decodeULaw(b []byte) int32 {
	return int32(muLawToLinear(b[0]))
}

func encodeULaw(b []byte, v int32) {
	b[0] = linearToMuLaw(int16(utils.Clamp(v, math.MinInt16, math.MaxInt16) >> 2))
}

func decodeS16(order binary.ByteOrder) func([]byte) int32 {
	return func(b []byte) int32 {
		return int32(int16(order.Uint16(b)))
	}
}

func encodeS16(order binary.ByteOrder) func([]byte, int32) {
	return func(b []byte, v int32) {
		order.PutUint16(b, uint16(utils.SaturateInt16(int64(v))))
	}
}

func decodeS32(order binary.ByteOrder) func([]byte) int32 {
	return func(b []byte) int32 {
		return int32(order.Uint32(b))
	}
}

func encodeS32(order binary.ByteOrder) func([]byte, int32) {
	return func(b []byte, v int32) {
		order.PutUint32(b, uint32(v))
	}
}

// 24-bit samples are widened to a left-justified int32 so that they share
// the int32 saturation range; encoding drops the low 8 bits.

func decodeS24LE(b []byte) int32 {
	return int32(uint32(b[0])<<8 | uint32(b[1])<<16 | uint32(b[2])<<24)
}

func encodeS24LE(b []byte, v int32) {
	u := uint32(v) >> 8
	b[0] = byte(u)
	b[1] = byte(u >> 8)
	b[2] = byte(u >> 16)
}

func decodeS24BE(b []byte) int32 {
	return int32(uint32(b[2])<<8 | uint32(b[1])<<16 | uint32(b[0])<<24)
}

func encodeS24BE(b []byte, v int32) {
	u := uint32(v) >> 8
	b[0] = byte(u >> 16)
	b[1] = byte(u >> 8)
	b[2] = byte(u)
}

// The 24 significant bits of S24In32 sit in the low-order bits of the word.
// The high byte is ignored on decode and written as zero on encode.

func decodeS24In32(order binary.ByteOrder) func([]byte) int32 {
	return func(b []byte) int32 {
		return int32(order.Uint32(b) << 8)
	}
}

func encodeS24In32(order binary.ByteOrder) func([]byte, int32) {
	return func(b []byte, v int32) {
		order.PutUint32(b, uint32(v)>>8)
	}
}

func decodeFloat32(order binary.ByteOrder) func([]byte) float32 {
	return func(b []byte) float32 {
		return math.Float32frombits(order.Uint32(b))
	}
}

func encodeFloat32(order binary.ByteOrder) func([]byte, float32) {
	return func(b []byte, v float32) {
		order.PutUint32(b, math.Float32bits(v))
	}
}
