// SPDX-License-Identifier: EPL-2.0

package mp3_test

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/memblock"
)

// ExampleDecoder_Decode decodes an MP3 file to mono S16LE and stores it as WAV.
func ExampleDecoder_Decode() {
	f, err := os.Open("input.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}
	defer src.Close()

	// always stereo S16LE
	fmt.Println(src.Spec())

	mono, err := audio.NewChannelMapper(src, 1)
	if err != nil {
		log.Fatal(err)
	}

	chunk, err := audio.ReadAll(memblock.NewPool(), mono)
	if err != nil {
		log.Fatal(err)
	}
	defer chunk.Block.Unref()

	out, err := os.Create("output.wav")
	if err != nil {
		log.Fatal(err)
	}
	defer out.Close()

	if err := wav.WriteWAV(out, mono.Spec(), chunk.Bytes()); err != nil {
		log.Fatal(err)
	}
}

// ExampleDecoder_Decode_streaming reads a stream period by period.
func ExampleDecoder_Decode_streaming() {
	f, err := os.Open("stream.mp3")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	src, err := mp3.Decoder{}.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	buf := make([]byte, 1024*src.Spec().FrameSize())
	total := 0

	for {
		n, err := src.Read(buf)
		total += n

		if err != nil {
			break
		}
	}

	fmt.Println(src.Spec().BytesToDuration(total))
}

func ExampleDecoder_Decode_errorHandling() {
	_, err := mp3.Decoder{}.Decode(bytes.NewReader(nil))
	if err != nil {
		fmt.Println("not an MP3 stream")
	}
	// Output:
	// not an MP3 stream
}
