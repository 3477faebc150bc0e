// SPDX-License-Identifier: EPL-2.0

package pcm

// SilenceByte is the byte pattern of zero amplitude. It is the midpoint code
// for U8 and the companded formats, zero otherwise.
func SilenceByte(f Format) byte {
	return Lookup(f).Silence
}

// FillSilence overwrites buf with the silence pattern of f.
func FillSilence(buf []byte, f Format) {
	s := SilenceByte(f)
	if s == 0 {
		clear(buf)

		return
	}

	for i := range buf {
		buf[i] = s
	}
}

// IsSilence reports whether every byte of buf is the silence pattern of f.
func IsSilence(buf []byte, f Format) bool {
	s := SilenceByte(f)
	for _, b := range buf {
		if b != s {
			return false
		}
	}

	return true
}
