// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audmix/pcm"
)

const (
	headerSize  = 44
	formatFloat = 3
)

// formatTag returns the WAVE format tag able to hold f verbatim.
func formatTag(f pcm.Format) (uint16, bool) {
	switch f {
	case pcm.U8, pcm.S16LE, pcm.S24LE, pcm.S32LE:
		return formatPCM, true
	case pcm.Float32LE:
		return formatFloat, true
	}

	return 0, false
}

func header(spec pcm.Spec, dataSize int) ([]byte, error) {
	tag, ok := formatTag(spec.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, spec.Format)
	}

	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	h := make([]byte, headerSize)

	// RIFF header (12 bytes)
	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], uint32(36+dataSize))
	copy(h[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], tag)
	binary.LittleEndian.PutUint16(h[22:24], uint16(spec.Channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(spec.Rate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(spec.BytesPerSecond()))
	binary.LittleEndian.PutUint16(h[32:34], uint16(spec.FrameSize()))
	binary.LittleEndian.PutUint16(h[34:36], uint16(spec.SampleSize()*8))

	// data chunk header (8 bytes)
	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], uint32(dataSize))

	return h, nil
}

// WriteWAV writes data, interleaved frames in spec, as a canonical WAV file.
// Unlike Encoder it needs no seeking, so it suits pipes and buffers. Float32LE
// is stored with the IEEE float format tag.
func WriteWAV(w io.Writer, spec pcm.Spec, data []byte) error {
	h, err := header(spec, len(data))
	if err != nil {
		return err
	}

	if !spec.Aligned(len(data)) {
		return fmt.Errorf("%w: %d bytes for %s", pcm.ErrUnaligned, len(data), spec)
	}

	if _, err := w.Write(h); err != nil {
		return fmt.Errorf("%w", err)
	}

	if len(data) == 0 {
		return nil
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	spec := pcm.Spec{Format: pcm.S16LE, Channels: 1, Rate: sampleRate}

	h, err := header(spec, len(samples)*2)
	if err != nil {
		return err
	}

	if _, err := w.Write(h); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkSize = 8192
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, 0, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))

		buf = buf[:0]
		for _, s := range samples[i:end] {
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
