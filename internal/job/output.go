// SPDX-License-Identifier: EPL-2.0

package job

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/raw"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/pcm"
)

// floatWAV buffers the whole mix, since the go-audio encoder only takes
// integer samples and WriteWAV needs the data size up front.
type floatWAV struct {
	w    io.Writer
	spec pcm.Spec
	buf  bytes.Buffer
}

func (f *floatWAV) Write(p []byte) (int, error) { return f.buf.Write(p) }

func (f *floatWAV) Close() error {
	return wav.WriteWAV(f.w, f.spec, f.buf.Bytes())
}

// newOutput picks the container from the extension of f. Anything that is
// not WAV or AIFF is written as raw samples. Closing the result flushes the
// container but leaves f open.
func newOutput(f *os.File, spec pcm.Spec) (io.WriteCloser, error) {
	switch strings.ToLower(filepath.Ext(f.Name())) {
	case ".wav":
		if spec.Format == pcm.Float32LE {
			return &floatWAV{w: f, spec: spec}, nil
		}

		enc, err := wav.NewEncoder(f, spec)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", f.Name(), err)
		}

		return enc, nil
	case ".aiff", ".aif":
		enc, err := aiff.NewEncoder(f, spec)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", f.Name(), err)
		}

		return enc, nil
	}

	w, err := raw.NewWriter(f, spec)
	if err != nil {
		return nil, fmt.Errorf("output %s: %w", f.Name(), err)
	}

	return w, nil
}
