// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audmix/pcm"
)

// Converter re-encodes a Source into another sample format.
type Converter struct {
	src  Source
	spec pcm.Spec
	tmp  []byte
}

// NewConverter wraps src so that it yields samples in format. A source that
// is already in that format is returned as is.
func NewConverter(src Source, format pcm.Format) (Source, error) {
	spec := src.Spec()
	if spec.Format == format {
		return src, nil
	}

	spec.Format = format
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("converter: %w", err)
	}

	return &Converter{src: src, spec: spec}, nil
}

func (c *Converter) Spec() pcm.Spec { return c.spec }

func (c *Converter) Close() error {
	err := c.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (c *Converter) Read(dst []byte) (int, error) {
	if len(dst)%c.spec.FrameSize() != 0 {
		return 0, fmt.Errorf("%w: %d bytes with %d byte frames", ErrInvalidDstSize, len(dst), c.spec.FrameSize())
	}

	frames := len(dst) / c.spec.FrameSize()
	if frames == 0 {
		return 0, nil
	}

	in := c.src.Spec()
	needed := frames * in.FrameSize()

	if cap(c.tmp) < needed {
		c.tmp = make([]byte, needed)
	}

	c.tmp = c.tmp[:needed]

	n, err := c.src.Read(c.tmp)
	if n == 0 {
		return 0, err
	}

	n -= n % in.FrameSize()
	samples := pcm.Convert(dst, c.spec.Format, c.tmp[:n], in.Format)

	return samples * c.spec.Format.SampleSize(), err
}
