// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Format is a PCM sample encoding.
type Format uint8

const (
	Invalid Format = iota
	U8
	ALaw
	ULaw
	S16LE
	S16BE
	Float32LE
	Float32BE
	S32LE
	S32BE
	S24LE
	S24BE
	S24In32LE
	S24In32BE

	formatMax
)

// Kind is the type of the canonical intermediate value of a format.
type Kind uint8

const (
	KindInt16 Kind = iota + 1
	KindInt32
	KindFloat32
)

func (k Kind) String() string {
	switch k {
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float32"
	default:
		return "invalid"
	}
}

var formatNames = [formatMax]string{
	Invalid:   "invalid",
	U8:        "u8",
	ALaw:      "aLaw",
	ULaw:      "uLaw",
	S16LE:     "s16le",
	S16BE:     "s16be",
	Float32LE: "float32le",
	Float32BE: "float32be",
	S32LE:     "s32le",
	S32BE:     "s32be",
	S24LE:     "s24le",
	S24BE:     "s24be",
	S24In32LE: "s24-32le",
	S24In32BE: "s24-32be",
}

// endianPairs maps a base name to its {little, big} endian variants.
var endianPairs = map[string][2]Format{
	"s16":     {S16LE, S16BE},
	"s24":     {S24LE, S24BE},
	"s32":     {S32LE, S32BE},
	"float32": {Float32LE, Float32BE},
	"s24-32":  {S24In32LE, S24In32BE},
}

var hostLittleEndian = func() bool {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)

	return b[0] == 1
}()

// Formats returns every valid format in table order.
func Formats() []Format {
	out := make([]Format, 0, formatMax-1)
	for f := U8; f < formatMax; f++ {
		out = append(out, f)
	}

	return out
}

func (f Format) Valid() bool { return f > Invalid && f < formatMax }

func (f Format) String() string {
	if f >= formatMax {
		return formatNames[Invalid]
	}

	return formatNames[f]
}

// SampleSize is the width of one sample in bytes, or 0 for an invalid format.
func (f Format) SampleSize() int {
	if !f.Valid() {
		return 0
	}

	return codecs[f].Width
}

// Kind reports the canonical intermediate type, or 0 for an invalid format.
func (f Format) Kind() Kind {
	if !f.Valid() {
		return 0
	}

	return codecs[f].Kind
}

func (f Format) IsLittleEndian() bool {
	switch f {
	case S16LE, S24LE, S24In32LE, S32LE, Float32LE:
		return true
	}

	return false
}

func (f Format) IsBigEndian() bool {
	switch f {
	case S16BE, S24BE, S24In32BE, S32BE, Float32BE:
		return true
	}

	return false
}

// IsNative reports whether the format can be read without a byte swap on
// this host. Single byte formats are always native.
func (f Format) IsNative() bool {
	if hostLittleEndian {
		return !f.IsBigEndian()
	}

	return !f.IsLittleEndian()
}

// ParseFormat resolves a format name. Besides the names returned by String it
// accepts bare widths ("16"), "ne"/"re" suffixes resolved against the host
// byte order and the usual companding aliases.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))

	switch n {
	case "u8", "8":
		return U8, nil
	case "alaw", "a-law":
		return ALaw, nil
	case "ulaw", "u-law", "mulaw", "mu-law":
		return ULaw, nil
	case "16":
		n = "s16"
	case "24":
		n = "s24"
	case "32":
		n = "s32"
	case "float":
		n = "float32"
	}

	n = strings.Replace(n, "s24in32", "s24-32", 1)

	native, reverse := 0, 1
	if !hostLittleEndian {
		native, reverse = 1, 0
	}

	for base, pair := range endianPairs {
		switch n {
		case base, base + "ne":
			return pair[native], nil
		case base + "re":
			return pair[reverse], nil
		case base + "le":
			return pair[0], nil
		case base + "be":
			return pair[1], nil
		}
	}

	return Invalid, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// UnmarshalText lets formats be read from configuration files.
func (f *Format) UnmarshalText(text []byte) error {
	v, err := ParseFormat(string(text))
	if err != nil {
		return err
	}

	*f = v

	return nil
}

func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, f)
	}

	return []byte(f.String()), nil
}
