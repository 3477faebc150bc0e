// SPDX-License-Identifier: EPL-2.0

// Package playback streams mixed PCM to the default audio device via oto.
package playback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/pcm"
)

var ErrUnsupportedFormat = errors.New("no device format for sample format")

// pollInterval is how often Play checks whether the device drained.
const pollInterval = 10 * time.Millisecond

type player interface {
	Play()
	IsPlaying() bool
	Close() error
}

type device interface {
	NewPlayer(r io.Reader) player
}

type otoDevice struct {
	ctx *oto.Context
}

func (d otoDevice) NewPlayer(r io.Reader) player { return d.ctx.NewPlayer(r) }

// Sink plays sources whose spec matches the device configuration. oto allows
// a single context per process, so only one Sink may be opened.
type Sink struct {
	dev  device
	spec pcm.Spec
}

// DeviceFormat is the format the device is opened with for a mix in f.
// Formats oto cannot take natively are played as S16LE.
func DeviceFormat(f pcm.Format) pcm.Format {
	switch f {
	case pcm.U8, pcm.S16LE, pcm.Float32LE:
		return f
	}

	return pcm.S16LE
}

func otoFormat(f pcm.Format) (oto.Format, error) {
	switch f {
	case pcm.U8:
		return oto.FormatUnsignedInt8, nil
	case pcm.S16LE:
		return oto.FormatSignedInt16LE, nil
	case pcm.Float32LE:
		return oto.FormatFloat32LE, nil
	}

	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// Open initialises the device for spec, converting the format through
// DeviceFormat.
func Open(spec pcm.Spec) (*Sink, error) {
	spec.Format = DeviceFormat(spec.Format)
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}

	f, err := otoFormat(spec.Format)
	if err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   spec.Rate,
		ChannelCount: spec.Channels,
		Format:       f,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-ready

	return &Sink{dev: otoDevice{ctx: ctx}, spec: spec}, nil
}

func (s *Sink) Spec() pcm.Spec { return s.spec }

// Play blocks until src is drained by the device or ctx is done. A source in
// another format is converted; channel count and rate must match.
func (s *Sink) Play(ctx context.Context, src audio.Source) error {
	in := src.Spec()
	if in.Channels != s.spec.Channels || in.Rate != s.spec.Rate {
		return fmt.Errorf("%w: playing %s on %s", audio.ErrSpecMismatch, in, s.spec)
	}

	conv, err := audio.NewConverter(src, s.spec.Format)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	p := s.dev.NewPlayer(eofReader{conv})
	defer p.Close()

	p.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w", ctx.Err())
		case <-ticker.C:
		}
	}

	return nil
}

// eofReader hides the n > 0 with io.EOF case, which oto players treat as
// the end without consuming the bytes.
type eofReader struct {
	src audio.Source
}

func (r eofReader) Read(p []byte) (int, error) {
	n, err := r.src.Read(p)
	if n > 0 && errors.Is(err, io.EOF) {
		return n, nil
	}

	return n, err
}
