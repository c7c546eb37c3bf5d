package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	keyframe "github.com/tphakala/go-keyframe-reducer"
)

// outputOptions selects where processed clips go.
type outputOptions struct {
	out    string // YAML result path
	rawDir string // directory for raw key records
}

// process converts and reduces clip, prints the report to w and writes the
// requested outputs.
func process(w io.Writer, cfg *Config, logger *zap.Logger, clip *keyframe.Clip, opts outputOptions) error {
	p, err := keyframe.New(cfg.processorConfig(libraryLogger(logger)))
	if err != nil {
		return fmt.Errorf("create processor: %w", err)
	}

	mode := cfg.mode()
	tolerance := float32(cfg.Reduce.Tolerance)
	runID := uuid.NewString()
	logger = logger.With(zap.String("run_id", runID))

	start := time.Now()
	p.ConvertClip(clip, mode)
	converted := clip.NumKeys()
	p.ReduceClip(clip, tolerance)
	elapsed := time.Since(start)

	logger.Info("processed clip",
		zap.String("clip", clip.Name),
		zap.String("mode", mode.String()),
		zap.Float32("tolerance", tolerance),
		zap.String("layout", p.Layout().Name()),
		zap.Int("keys_before", converted),
		zap.Int("keys_after", clip.NumKeys()),
		zap.Duration("elapsed", elapsed),
	)

	if _, err := fmt.Fprintln(w, reportTable(clip)); err != nil {
		return err
	}

	if opts.out != "" {
		if err := writeResultYAML(opts.out, newResultDoc(runID, clip, mode, tolerance, p.Layout())); err != nil {
			return err
		}
		logger.Info("wrote result", zap.String("path", opts.out))
	}

	if opts.rawDir != "" {
		n, err := writeRawChannels(opts.rawDir, clip)
		if err != nil {
			return err
		}
		logger.Info("wrote raw channels", zap.String("dir", opts.rawDir), zap.Int("files", n))
	}
	return nil
}

// writeRawChannels writes every channel's key records to its own file in
// dir and returns the number of files written.
func writeRawChannels(dir string, clip *keyframe.Clip) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("create raw directory %q: %w", dir, err)
	}

	files := 0
	for ai, a := range clip.Animations {
		for _, c := range a.Curves {
			for i := range c.NumElements() {
				buf := make([]byte, c.ByteSize(i))
				if _, err := c.CopyKeys(i, buf); err != nil {
					return files, err
				}

				name := rawFileName(ai, a.Name, c.Name, i)
				if err := os.WriteFile(filepath.Join(dir, name), buf, 0o644); err != nil {
					return files, fmt.Errorf("write raw channel: %w", err)
				}
				files++
			}
		}
	}
	return files, nil
}

// rawFileName names one raw channel file.
func rawFileName(animation int, animName, curveName string, channel int) string {
	return fmt.Sprintf("%03d_%s_%s_%d.keys", animation, sanitize(animName), sanitize(curveName), channel)
}

func sanitize(s string) string {
	if s == "" {
		return "unnamed"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
