// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audmix/pcm"
)

// ChannelMapper changes the channel count of a Source. Output channel o is
// fed by every source channel c with c%out == o when downmixing, averaged,
// and by source channel o%in when upmixing.
type ChannelMapper struct {
	src   Source
	spec  pcm.Spec
	codec *pcm.Codec
	tmp   []byte
}

// NewChannelMapper wraps src so that it yields channels channels. A source
// that already has that many channels is returned as is.
func NewChannelMapper(src Source, channels int) (Source, error) {
	spec := src.Spec()
	if spec.Channels == channels {
		return src, nil
	}

	spec.Channels = channels
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("channel mapper: %w", err)
	}

	return &ChannelMapper{
		src:   src,
		spec:  spec,
		codec: pcm.Lookup(spec.Format),
		tmp:   make([]byte, 0, 4096),
	}, nil
}

func (m *ChannelMapper) Spec() pcm.Spec { return m.spec }

func (m *ChannelMapper) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMapper) Read(dst []byte) (int, error) {
	if len(dst)%m.spec.FrameSize() != 0 {
		return 0, fmt.Errorf("%w: %d bytes with %d byte frames", ErrInvalidDstSize, len(dst), m.spec.FrameSize())
	}

	frames := len(dst) / m.spec.FrameSize()
	if frames == 0 {
		return 0, nil
	}

	in := m.src.Spec()
	inFrame := in.FrameSize()
	needed := frames * inFrame

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < needed {
		m.tmp = make([]byte, needed)
	}

	m.tmp = m.tmp[:needed]

	n, err := m.src.Read(m.tmp)
	if n == 0 {
		return 0, err
	}

	frames = n / inFrame
	w := m.codec.Width
	out := m.spec.Channels

	for f := range frames {
		src := m.tmp[f*inFrame : (f+1)*inFrame]
		dstFrame := dst[f*m.spec.FrameSize() : (f+1)*m.spec.FrameSize()]

		for o := range out {
			d := dstFrame[o*w : (o+1)*w]

			if in.Channels < out {
				copy(d, src[(o%in.Channels)*w:])

				continue
			}

			m.average(d, src, o, in.Channels, out)
		}
	}

	return frames * m.spec.FrameSize(), err
}

// average writes the mean of source channels o, o+out, o+2*out ... into d.
func (m *ChannelMapper) average(d, frame []byte, o, in, out int) {
	c := m.codec
	w := c.Width

	if c.IsFloat() {
		var sum float64
		count := 0

		for ch := o; ch < in; ch += out {
			sum += float64(c.DecodeFloat(frame[ch*w:]))
			count++
		}

		c.EncodeFloat(d, float32(sum/float64(count)))

		return
	}

	var sum int64
	count := int64(0)

	for ch := o; ch < in; ch += out {
		sum += int64(c.DecodeInt(frame[ch*w:]))
		count++
	}

	c.EncodeInt(d, c.Saturate(sum/count))
}
