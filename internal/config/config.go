// SPDX-License-Identifier: EPL-2.0

// Package config describes a mix job as read from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audmix/pcm"
	"github.com/ik5/audmix/volume"
)

const (
	DefaultLogLevel     = "info"
	DefaultPeriodFrames = 4096
	DefaultCacheSize    = 16
	DefaultFormat       = "s16le"
	DefaultChannels     = 2
	DefaultRate         = 44100
)

var (
	ErrNoInputs       = errors.New("no inputs configured")
	ErrNoOutput       = errors.New("output path or playback required")
	ErrInvalidOutput  = errors.New("invalid output")
	ErrInvalidInput   = errors.New("invalid input")
	ErrVolumeConflict = errors.New("volume and volume_db are mutually exclusive")
	ErrInvalidVolume  = errors.New("invalid volume")
	ErrLogLevel       = errors.New("unknown log level")
)

// OutputConfig is the destination of the mix.
type OutputConfig struct {
	Path     string `yaml:"path"`
	Format   string `yaml:"format"`
	Channels int    `yaml:"channels"`
	Rate     int    `yaml:"rate"`
	Play     bool   `yaml:"play"`
}

// MasterConfig scales the whole mix.
type MasterConfig struct {
	Volume   *float64 `yaml:"volume"`
	VolumeDB *float64 `yaml:"volume_db"`
	Mute     bool     `yaml:"mute"`
}

// InputConfig is one stream. Format, Channels and Rate describe raw
// (headerless) input only; container formats carry their own.
type InputConfig struct {
	Path           string    `yaml:"path"`
	Format         string    `yaml:"format"`
	Channels       int       `yaml:"channels"`
	Rate           int       `yaml:"rate"`
	Volume         *float64  `yaml:"volume"`
	ChannelVolumes []float64 `yaml:"channel_volumes"`
	GainDB         float64   `yaml:"gain_db"`
	ChannelMap     []int     `yaml:"channel_map"`
}

// Config stores the mix job.
type Config struct {
	LogLevel     string        `yaml:"log_level"`
	PeriodFrames int           `yaml:"period_frames"`
	CacheSize    int           `yaml:"cache_size"`
	Output       OutputConfig  `yaml:"output"`
	Master       MasterConfig  `yaml:"master"`
	Inputs       []InputConfig `yaml:"inputs"`
}

// Load reads, defaults and validates the job at filePath.
func Load(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return Parse(data)
}

// Parse is Load for an in-memory document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills unset scalar fields.
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.PeriodFrames == 0 {
		c.PeriodFrames = DefaultPeriodFrames
	}
	if c.CacheSize == 0 {
		c.CacheSize = DefaultCacheSize
	}
	if c.Output.Format == "" {
		c.Output.Format = DefaultFormat
	}
	if c.Output.Channels == 0 {
		c.Output.Channels = DefaultChannels
	}
	if c.Output.Rate == 0 {
		c.Output.Rate = DefaultRate
	}
}

// Validate checks the whole job and reports every problem found.
func (c *Config) Validate() error {
	var errs []error

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrLogLevel, c.LogLevel))
	}

	if c.PeriodFrames < 1 {
		errs = append(errs, fmt.Errorf("%w: period_frames %d", ErrInvalidOutput, c.PeriodFrames))
	}
	if c.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("%w: cache_size %d", ErrInvalidOutput, c.CacheSize))
	}

	out, err := c.Output.Spec()
	if err != nil {
		errs = append(errs, err)
	}

	if c.Output.Path == "" && !c.Output.Play {
		errs = append(errs, ErrNoOutput)
	}

	if _, err := c.Master.ChannelVolume(max(out.Channels, 1)); err != nil {
		errs = append(errs, err)
	}

	if len(c.Inputs) == 0 {
		errs = append(errs, ErrNoInputs)
	}

	for i, in := range c.Inputs {
		if err := in.validate(out.Channels); err != nil {
			errs = append(errs, fmt.Errorf("input %d (%s): %w", i, in.Path, err))
		}
	}

	return errors.Join(errs...)
}

// Spec is the output stream layout.
func (o OutputConfig) Spec() (pcm.Spec, error) {
	f, err := pcm.ParseFormat(o.Format)
	if err != nil {
		return pcm.Spec{}, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}

	spec := pcm.Spec{Format: f, Channels: o.Channels, Rate: o.Rate}
	if err := spec.Validate(); err != nil {
		return pcm.Spec{}, fmt.Errorf("%w: %w", ErrInvalidOutput, err)
	}

	return spec, nil
}

// ChannelVolume resolves the master level for channels channels.
func (m MasterConfig) ChannelVolume(channels int) (volume.ChannelVolume, error) {
	v := volume.Norm

	switch {
	case m.Volume != nil && m.VolumeDB != nil:
		return nil, ErrVolumeConflict
	case m.Volume != nil:
		if err := checkLinear(*m.Volume); err != nil {
			return nil, fmt.Errorf("master: %w", err)
		}
		v = volume.FromLinear(*m.Volume)
	case m.VolumeDB != nil:
		if math.IsNaN(*m.VolumeDB) {
			return nil, fmt.Errorf("master: %w: volume_db NaN", ErrInvalidVolume)
		}
		v = volume.FromDB(*m.VolumeDB)
	}

	return volume.Uniform(channels, v), nil
}

// IsRaw reports whether the input is headerless PCM.
func (i InputConfig) IsRaw() bool { return i.Format != "" }

// RawSpec is the layout of raw input.
func (i InputConfig) RawSpec() (pcm.Spec, error) {
	f, err := pcm.ParseFormat(i.Format)
	if err != nil {
		return pcm.Spec{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	spec := pcm.Spec{Format: f, Channels: i.Channels, Rate: i.Rate}
	if err := spec.Validate(); err != nil {
		return pcm.Spec{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return spec, nil
}

// MixVolume is the per-channel mix level for an input mapped onto channels
// channels. Volume scales every entry of ChannelVolumes; either defaults to
// unity.
func (i InputConfig) MixVolume(channels int) (volume.ChannelVolume, error) {
	scale := 1.0
	if i.Volume != nil {
		if err := checkLinear(*i.Volume); err != nil {
			return nil, err
		}
		scale = *i.Volume
	}

	if len(i.ChannelVolumes) == 0 {
		return volume.Uniform(channels, volume.FromLinear(scale)), nil
	}

	if len(i.ChannelVolumes) != channels {
		return nil, fmt.Errorf("%w: %d channel volumes for %d channels", ErrInvalidVolume, len(i.ChannelVolumes), channels)
	}

	cv := make(volume.ChannelVolume, channels)
	for ch, l := range i.ChannelVolumes {
		if err := checkLinear(l); err != nil {
			return nil, err
		}
		cv[ch] = volume.FromLinear(l * scale)
	}

	return cv, nil
}

// PreGain is the volume applied to the decoded input before mixing.
func (i InputConfig) PreGain() volume.Volume {
	return volume.FromDB(i.GainDB)
}

func (i InputConfig) validate(outChannels int) error {
	if i.Path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidInput)
	}

	if i.IsRaw() {
		if _, err := i.RawSpec(); err != nil {
			return err
		}
	}

	if math.IsNaN(i.GainDB) || math.IsInf(i.GainDB, 1) {
		return fmt.Errorf("%w: gain_db %v", ErrInvalidVolume, i.GainDB)
	}

	if outChannels < 1 {
		return nil
	}

	if _, err := i.MixVolume(outChannels); err != nil {
		return err
	}

	if i.ChannelMap != nil {
		if len(i.ChannelMap) != outChannels {
			return fmt.Errorf("%w: channel_map has %d entries for %d channels", ErrInvalidInput, len(i.ChannelMap), outChannels)
		}

		for ch, from := range i.ChannelMap {
			if from < 0 || from >= outChannels {
				return fmt.Errorf("%w: channel_map[%d] = %d", ErrInvalidInput, ch, from)
			}
		}
	}

	return nil
}

func checkLinear(l float64) error {
	if math.IsNaN(l) || l < 0 || math.IsInf(l, 1) {
		return fmt.Errorf("%w: %v", ErrInvalidVolume, l)
	}

	return nil
}
