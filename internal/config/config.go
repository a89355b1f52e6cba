// Package config loads runtime settings from defaults, ORRERY_* environment
// variables and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	minFPS = 1
	maxFPS = 240
)

// Config holds all runtime settings.
type Config struct {
	FPS      int    `env:"ORRERY_FPS"`
	LogLevel string `env:"ORRERY_LOG_LEVEL"`
	LogFile  string `env:"ORRERY_LOG_FILE"`
	Seed     int64  `env:"ORRERY_SEED"` // 0 picks a time-based seed

	StartPaused bool    `env:"ORRERY_PAUSED"`
	LightMode   bool    `env:"ORRERY_LIGHT"`
	Damping     float64 `env:"ORRERY_DAMPING"`

	// Tooltip offset from the pointer in surface pixels
	TooltipOffsetX float64 `env:"ORRERY_TOOLTIP_OFFSET_X"`
	TooltipOffsetY float64 `env:"ORRERY_TOOLTIP_OFFSET_Y"`

	// Headless modes
	Summary  bool
	Snapshot bool
	Frames   int
	Width    int
	Height   int
}

// DefaultConfig returns the settings used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		FPS:            60,
		LogLevel:       "info",
		Damping:        0.05,
		TooltipOffsetX: 2,
		TooltipOffsetY: 2,
		Frames:         0,
		Width:          120,
		Height:         60,
	}
}

// FrameInterval returns the delay between animation frames.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Headless reports whether a non-interactive mode was requested.
func (c Config) Headless() bool {
	return c.Summary || c.Snapshot
}

// Load builds the configuration from defaults, environment and args.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fs := newFlagSet(&cfg)
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("parse flags: %w", err)
	}

	// Clamp frame rate
	if cfg.FPS < minFPS {
		cfg.FPS = minFPS
	} else if cfg.FPS > maxFPS {
		cfg.FPS = maxFPS
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newFlagSet binds command-line flags to cfg, using its current values as
// defaults.
func newFlagSet(cfg *Config) *flag.FlagSet {
	fs := flag.NewFlagSet("ls-orrery", flag.ContinueOnError)
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "Animation frames per second")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for stars and planet angles (0 = time based)")
	fs.BoolVar(&cfg.StartPaused, "paused", cfg.StartPaused, "Start with the animation paused")
	fs.BoolVar(&cfg.LightMode, "light", cfg.LightMode, "Start in light mode")
	fs.Float64Var(&cfg.Damping, "damping", cfg.Damping, "Camera damping factor (0-1]")
	fs.Float64Var(&cfg.TooltipOffsetX, "tooltip-offset-x", cfg.TooltipOffsetX, "Tooltip offset right of the pointer, in surface pixels (one per cell column)")
	fs.Float64Var(&cfg.TooltipOffsetY, "tooltip-offset-y", cfg.TooltipOffsetY, "Tooltip offset below the pointer, in surface pixels (two per cell row)")
	fs.BoolVar(&cfg.Summary, "summary", cfg.Summary, "Print planet positions instead of starting the TUI")
	fs.BoolVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "Print one rendered frame as plain text")
	fs.IntVar(&cfg.Frames, "frames", cfg.Frames, "Frames to advance before a headless print")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Headless surface width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Headless surface height in pixels")
	return fs
}

// Validate checks settings that cannot be clamped.
func (c Config) Validate() error {
	var errs []error
	if c.Damping <= 0 || c.Damping > 1 {
		errs = append(errs, fmt.Errorf("damping %v outside (0, 1]", c.Damping))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames %d is negative", c.Frames))
	}
	if c.Snapshot && (c.Width <= 0 || c.Height <= 0) {
		errs = append(errs, fmt.Errorf("snapshot size %dx%d must be positive", c.Width, c.Height))
	}
	return errors.Join(errs...)
}
