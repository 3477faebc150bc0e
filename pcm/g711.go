// SPDX-License-Identifier: EPL-2.0

package pcm

// ITU-T G.711 companding. The encoders take the already narrowed linear value:
// 13 bits for A-law, 14 bits for µ-law. The decoders expand to the 16-bit
// canonical range.

const (
	muLawBias = 0x84
	muLawClip = 8159

	signBit   = 0x80
	quantMask = 0x0F
	segMask   = 0x70
	segShift  = 4
)

var (
	aLawSegmentEnd  = [8]int{0x1F, 0x3F, 0x7F, 0xFF, 0x1FF, 0x3FF, 0x7FF, 0xFFF}
	muLawSegmentEnd = [8]int{0x3F, 0x7F, 0xFF, 0x1FF, 0x3FF, 0x7FF, 0xFFF, 0x1FFF}
)

func searchSegment(value int, table [8]int) int {
	for i, end := range table {
		if value <= end {
			return i
		}
	}

	return len(table)
}

func aLawToLinear(code byte) int16 {
	v := code ^ 0x55
	t := int(v&quantMask) << 4

	switch seg := (v & segMask) >> segShift; seg {
	case 0:
		t += 8
	case 1:
		t += 0x108
	default:
		t += 0x108
		t <<= seg - 1
	}

	if v&signBit == 0 {
		t = -t
	}

	return int16(t)
}

func linearToALaw(pcm13 int16) byte {
	v := int(pcm13)
	mask := byte(0xD5)

	if v < 0 {
		v = -v - 1
		mask = 0x55
	}

	seg := searchSegment(v, aLawSegmentEnd)
	if seg >= len(aLawSegmentEnd) {
		return 0x7F ^ mask
	}

	code := byte(seg << segShift)
	if seg < 2 {
		code |= byte(v>>1) & quantMask
	} else {
		code |= byte(v>>seg) & quantMask
	}

	return code ^ mask
}

func muLawToLinear(code byte) int16 {
	v := ^code
	t := (int(v&quantMask) << 3) + muLawBias
	t <<= (v & segMask) >> segShift

	if v&signBit != 0 {
		return int16(muLawBias - t)
	}

	return int16(t - muLawBias)
}

func linearToMuLaw(pcm14 int16) byte {
	v := int(pcm14)
	mask := byte(0xFF)

	if v < 0 {
		v = -v
		mask = 0x7F
	}

	v = min(v, muLawClip)
	v += muLawBias >> 2

	seg := searchSegment(v, muLawSegmentEnd)
	if seg >= len(muLawSegmentEnd) {
		return 0x7F ^ mask
	}

	code := byte(seg<<segShift) | byte(v>>(seg+1))&quantMask

	return code ^ mask
}
