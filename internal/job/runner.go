// SPDX-License-Identifier: EPL-2.0

// Package job runs a configured mix: decode every input, bring it to the
// output spec, mix period by period and write or play the result.
package job

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/raw"
	"github.com/ik5/audmix/internal/config"
	"github.com/ik5/audmix/internal/meter"
	"github.com/ik5/audmix/internal/playback"
	"github.com/ik5/audmix/memblock"
	"github.com/ik5/audmix/pcm"
	"github.com/ik5/audmix/volume"
)

// Player plays a finished mix.
type Player interface {
	Play(ctx context.Context, src audio.Source) error
}

// OpenPlayer opens a Player for spec.
type OpenPlayer func(spec pcm.Spec) (Player, error)

func openDevice(spec pcm.Spec) (Player, error) {
	return playback.Open(spec)
}

// Result summarizes a finished run.
type Result struct {
	Spec   pcm.Spec
	Frames int
	Levels []meter.Level
}

// Runner executes mix jobs. It is not safe for concurrent use.
type Runner struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *audio.Registry
	pool     *memblock.Pool
	cache    *lru.Cache[string, memblock.Chunk]
	out      pcm.Spec
	master   volume.ChannelVolume
	open     OpenPlayer
}

// NewRunnerParams holds dependencies for NewRunner.
type NewRunnerParams struct {
	fx.In
	Cfg    *config.Config
	Logger *zap.Logger
	Pool   *memblock.Pool `optional:"true"`
	Open   OpenPlayer     `optional:"true"`
}

func NewRunner(params NewRunnerParams) (*Runner, error) {
	out, err := params.Cfg.Output.Spec()
	if err != nil {
		return nil, err
	}

	master, err := params.Cfg.Master.ChannelVolume(out.Channels)
	if err != nil {
		return nil, err
	}

	// the cache holds one reference on every decoded block
	cache, err := lru.NewWithEvict(params.Cfg.CacheSize, func(_ string, c memblock.Chunk) {
		c.Block.Unref()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create decode cache: %w", err)
	}

	pool := params.Pool
	if pool == nil {
		pool = memblock.NewPool()
	}

	open := params.Open
	if open == nil {
		open = openDevice
	}

	return &Runner{
		cfg:      params.Cfg,
		logger:   params.Logger.Named("job"),
		registry: audmix.NewRegistry(),
		pool:     pool,
		cache:    cache,
		out:      out,
		master:   master,
		open:     open,
	}, nil
}

func (r *Runner) Pool() *memblock.Pool { return r.pool }

// Close drops every cached input.
func (r *Runner) Close() {
	r.cache.Purge()
}

type stream struct {
	chunk memblock.Chunk
	vol   volume.ChannelVolume
	cmap  []int
}

// Run mixes every configured input. ctx is checked between periods.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	streams := make([]stream, 0, len(r.cfg.Inputs))
	defer func() {
		for _, s := range streams {
			s.chunk.Block.Unref()
		}
	}()

	total := 0

	for i, in := range r.cfg.Inputs {
		vol, err := in.MixVolume(r.out.Channels)
		if err != nil {
			return Result{}, fmt.Errorf("input %d (%s): %w", i, in.Path, err)
		}

		c, err := r.load(in)
		if err != nil {
			return Result{}, fmt.Errorf("input %d (%s): %w", i, in.Path, err)
		}

		streams = append(streams, stream{chunk: c, vol: vol, cmap: in.ChannelMap})
		total = max(total, c.Length)
	}

	if total == 0 {
		return Result{}, ErrEmptyMix
	}

	m, err := meter.New(r.out)
	if err != nil {
		return Result{}, fmt.Errorf("%w", err)
	}

	var (
		dst  io.WriteCloser
		file *os.File
		kept bytes.Buffer
	)

	if r.cfg.Output.Path != "" {
		file, err = os.Create(r.cfg.Output.Path)
		if err != nil {
			return Result{}, fmt.Errorf("creating output: %w", err)
		}
		defer func() { _ = file.Close() }()

		dst, err = newOutput(file, r.out)
		if err != nil {
			return Result{}, err
		}
	}

	if err := r.mix(ctx, streams, total, m, dst, &kept); err != nil {
		return Result{}, err
	}

	if dst != nil {
		if err := dst.Close(); err != nil {
			return Result{}, fmt.Errorf("finishing output: %w", err)
		}

		if err := file.Close(); err != nil {
			return Result{}, fmt.Errorf("closing output: %w", err)
		}
	}

	res := Result{Spec: r.out, Frames: total / r.out.FrameSize(), Levels: m.Levels()}
	r.logResult(res)

	if r.cfg.Output.Play {
		if err := r.play(ctx, kept.Bytes()); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (r *Runner) mix(ctx context.Context, streams []stream, total int, m *meter.Meter, dst io.Writer, kept *bytes.Buffer) error {
	period := r.cfg.PeriodFrames * r.out.FrameSize()
	inputs := make([]audio.MixInput, 0, len(streams))

	for off := 0; off < total; off += period {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("mix interrupted: %w", err)
		}

		n := min(period, total-off)

		inputs = inputs[:0]
		for _, s := range streams {
			if off >= s.chunk.Length {
				continue
			}

			inputs = append(inputs, audio.MixInput{
				Chunk:      s.chunk.Slice(off, min(n, s.chunk.Length-off)),
				Volume:     s.vol,
				ChannelMap: s.cmap,
				Spec:       r.out,
			})
		}

		w := r.pool.AllocWritable(n)
		audio.MixChunk(w, r.out, inputs, audio.WithMasterVolume(r.master), audio.WithMute(r.cfg.Master.Mute))

		err := r.emit(w.Bytes(), m, dst, kept)
		w.Chunk().Block.Unref()

		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) emit(p []byte, m *meter.Meter, dst io.Writer, kept *bytes.Buffer) error {
	if _, err := m.Write(p); err != nil {
		return fmt.Errorf("%w", err)
	}

	if dst != nil {
		if _, err := dst.Write(p); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if r.cfg.Output.Play {
		kept.Write(p)
	}

	return nil
}

func (r *Runner) play(ctx context.Context, data []byte) error {
	p, err := r.open(r.out)
	if err != nil {
		return fmt.Errorf("opening playback: %w", err)
	}

	src, err := raw.Decoder{Spec: r.out}.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	defer src.Close()

	r.logger.Info("playing mix", zap.Stringer("spec", r.out), zap.Duration("duration", r.out.BytesToDuration(len(data))))

	if err := p.Play(ctx, src); err != nil {
		return fmt.Errorf("playback: %w", err)
	}

	return nil
}

// load returns in decoded to the output spec with pre-gain applied. The
// caller owns one reference on the returned chunk.
func (r *Runner) load(in config.InputConfig) (memblock.Chunk, error) {
	key := r.cacheKey(in)

	c, ok := r.cache.Get(key)
	if ok {
		c.Block.Ref()
		r.logger.Debug("input cache hit", zap.String("path", in.Path))
	} else {
		var err error

		c, err = r.decode(in)
		if err != nil {
			return memblock.Chunk{}, err
		}

		c.Block.Ref()
		r.cache.Add(key, c)
	}

	gain := in.PreGain()
	if gain == volume.Norm {
		return c, nil
	}

	// shared with the cache, so this copies
	w := c.MakeWritable(r.pool)
	audio.ApplyVolumeChunk(w, r.out, volume.Uniform(r.out.Channels, gain))

	return w.Chunk(), nil
}

func (r *Runner) cacheKey(in config.InputConfig) string {
	key := in.Path + "|" + r.out.String()
	if in.IsRaw() {
		key += "|" + in.Format + fmt.Sprintf("|%d|%d", in.Channels, in.Rate)
	}

	return key
}

func (r *Runner) decoder(in config.InputConfig) (audio.Decoder, error) {
	if in.IsRaw() {
		spec, err := in.RawSpec()
		if err != nil {
			return nil, err
		}

		return raw.Decoder{Spec: spec}, nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(in.Path), "."))

	d, ok := r.registry.Get(ext)
	if !ok {
		return nil, fmt.Errorf("%w: extension %q", ErrUnknownFormat, ext)
	}

	return d, nil
}

func (r *Runner) decode(in config.InputConfig) (memblock.Chunk, error) {
	d, err := r.decoder(in)
	if err != nil {
		return memblock.Chunk{}, err
	}

	f, err := os.Open(in.Path)
	if err != nil {
		return memblock.Chunk{}, fmt.Errorf("%w", err)
	}
	defer func() { _ = f.Close() }()

	src, err := d.Decode(f)
	if err != nil {
		return memblock.Chunk{}, fmt.Errorf("%w", err)
	}

	spec := src.Spec()
	if spec.Rate != r.out.Rate {
		_ = src.Close()

		return memblock.Chunk{}, fmt.Errorf("%w: %d Hz, want %d Hz", ErrRateMismatch, spec.Rate, r.out.Rate)
	}

	mapped, err := audio.NewChannelMapper(src, r.out.Channels)
	if err != nil {
		_ = src.Close()

		return memblock.Chunk{}, fmt.Errorf("%w", err)
	}

	conv, err := audio.NewConverter(mapped, r.out.Format)
	if err != nil {
		_ = mapped.Close()

		return memblock.Chunk{}, fmt.Errorf("%w", err)
	}

	c, err := audio.ReadAll(r.pool, conv)
	closeErr := conv.Close()

	if err != nil {
		return memblock.Chunk{}, fmt.Errorf("%w", err)
	}

	if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
		c.Block.Unref()

		return memblock.Chunk{}, fmt.Errorf("%w", closeErr)
	}

	r.logger.Info("input decoded",
		zap.String("path", in.Path),
		zap.Stringer("spec", spec),
		zap.Int("frames", c.Length/r.out.FrameSize()),
	)

	return c, nil
}

func (r *Runner) logResult(res Result) {
	fields := []zap.Field{
		zap.Stringer("spec", res.Spec),
		zap.Int("frames", res.Frames),
		zap.Duration("duration", res.Spec.BytesToDuration(res.Frames*res.Spec.FrameSize())),
	}

	for ch, l := range res.Levels {
		fields = append(fields, zap.Float64(fmt.Sprintf("ch%d_peak_db", ch), l.PeakDB()))
		fields = append(fields, zap.Float64(fmt.Sprintf("ch%d_rms_db", ch), l.RMSDB()))
	}

	r.logger.Info("mix finished", fields...)

	st := r.pool.Stats()
	r.logger.Debug("pool usage",
		zap.Int64("allocated", st.Allocated),
		zap.Int64("total", st.Total),
		zap.Int64("total_bytes", st.TotalBytes),
	)
}
