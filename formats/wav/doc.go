// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files as engine byte streams.
//
// Decoding is done by github.com/go-audio/wav. Integer PCM of 8, 16, 24
// and 32 bits is delivered as pcm.U8, pcm.S16LE, pcm.S24LE and pcm.S32LE,
// so the bytes handed out by the source are exactly the frames stored in
// the file's data chunk:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	spec := src.Spec()
//	buf := make([]byte, spec.FrameSize()*1024)
//	n, err := src.Read(buf)
//
// # Writing
//
// Encoder writes the same four integer formats through go-audio and needs
// an io.WriteSeeker, since the header sizes are patched on Close.
// WriteWAV writes a complete file in one go to any io.Writer, including
// Float32LE data; WriteWAV16 is the mono int16 shortcut.
//
// # Errors
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedEncoding: the format tag is not integer PCM
//   - ErrUnsupportedBitDepth: the bit depth has no engine format
//   - ErrUnsupportedFormat: the spec cannot be stored in a WAV file
package wav
