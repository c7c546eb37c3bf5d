package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"

	keyframe "github.com/tphakala/go-keyframe-reducer"
)

// Config is the keyreduce configuration file.
type Config struct {
	Reduce  ReduceConfig  `toml:"reduce"`
	Logging LoggingConfig `toml:"logging"`
}

// ReduceConfig controls conversion and reduction.
type ReduceConfig struct {
	Mode      string  `toml:"mode"`       // smooth, linear or constant
	Tolerance float64 `toml:"tolerance"`  // absolute value error
	KeySize   int     `toml:"key_size"`   // 16, 20, 28 or 32
	Parallel  bool    `toml:"parallel"`   // fan out across animations
	BlockSize int     `toml:"block_size"` // animations per task
	Workers   int     `toml:"workers"`    // 0 = GOMAXPROCS
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `toml:"level"`  // trace, debug, info, warn, error
	Format string `toml:"format"` // console or json
}

const (
	defaultMode      = "smooth"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Reduce: ReduceConfig{
			Mode:      defaultMode,
			Tolerance: keyframe.DefaultTolerance,
			KeySize:   keyframe.KeySizeEditorWeighted,
			Parallel:  true,
			BlockSize: keyframe.DefaultBlockSize,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// loadConfig reads path over the defaults. An empty path or a missing file
// yields the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("open config: %w", err)
		default:
			defer file.Close()
			decoder := toml.NewDecoder(file)
			decoder.DisallowUnknownFields()
			if err := decoder.Decode(&cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Reduce.Mode = strings.ToLower(strings.TrimSpace(c.Reduce.Mode))
	if c.Reduce.Mode == "" {
		c.Reduce.Mode = defaultMode
	}
	if c.Reduce.BlockSize == 0 {
		c.Reduce.BlockSize = keyframe.DefaultBlockSize
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := keyframe.ParseInterpolationMode(c.Reduce.Mode); err != nil {
		return fmt.Errorf("reduce.mode: %w", err)
	}
	if c.Reduce.Tolerance < 0 {
		return fmt.Errorf("reduce.tolerance: must not be negative, got %v", c.Reduce.Tolerance)
	}
	if _, ok := keyframe.LayoutForSize(c.Reduce.KeySize); !ok {
		return fmt.Errorf("reduce.key_size: %w: %d", keyframe.ErrUnknownLayout, c.Reduce.KeySize)
	}
	if c.Reduce.BlockSize < 0 {
		return fmt.Errorf("reduce.block_size: must not be negative, got %d", c.Reduce.BlockSize)
	}
	if c.Reduce.Workers < 0 {
		return fmt.Errorf("reduce.workers: must not be negative, got %d", c.Reduce.Workers)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// processorConfig builds the library configuration.
func (c *Config) processorConfig(log logr.Logger) *keyframe.Config {
	return &keyframe.Config{
		KeySize:        c.Reduce.KeySize,
		BlockSize:      c.Reduce.BlockSize,
		EnableParallel: c.Reduce.Parallel,
		Workers:        c.Reduce.Workers,
		Logger:         log,
	}
}

// mode returns the validated interpolation mode.
func (c *Config) mode() keyframe.InterpolationMode {
	m, _ := keyframe.ParseInterpolationMode(c.Reduce.Mode)
	return m
}
