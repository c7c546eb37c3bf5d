package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tphakala/simd/cpu"
	"go.uber.org/zap"
)

// reduceFlags are the per-run overrides of the [reduce] section.
type reduceFlags struct {
	mode      string
	tolerance float64
	keySize   int
	parallel  bool
	out       string
	rawDir    string
}

func (f *reduceFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.mode, "mode", "m", defaultMode, "Target interpolation: smooth, linear or constant")
	flags.Float64VarP(&f.tolerance, "tolerance", "t", 0, "Absolute value tolerance for key removal")
	flags.IntVar(&f.keySize, "key-size", 0, "Key record size in bytes: 16, 20, 28 or 32")
	flags.BoolVar(&f.parallel, "parallel", true, "Process animations in parallel")
	flags.StringVarP(&f.out, "out", "o", "", "Write the reduced clip as YAML to this path")
	flags.StringVar(&f.rawDir, "raw-dir", "", "Write raw key records per channel into this directory")
}

// apply overrides cfg with the flags the user set.
func (f *reduceFlags) apply(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Reduce.Mode = f.mode
	}
	if flags.Changed("tolerance") {
		cfg.Reduce.Tolerance = f.tolerance
	}
	if flags.Changed("key-size") {
		cfg.Reduce.KeySize = f.keySize
	}
	if flags.Changed("parallel") {
		cfg.Reduce.Parallel = f.parallel
	}
	cfg.normalize()
	return cfg.Validate()
}

func (f *reduceFlags) outputs() outputOptions {
	return outputOptions{out: f.out, rawDir: f.rawDir}
}

func newReduceCommand(ctx *commandContext) *cobra.Command {
	var flags reduceFlags

	cmd := &cobra.Command{
		Use:   "reduce [flags] <clip.yaml>",
		Short: "Convert and reduce a clip described in YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := prepare(ctx, cmd, &flags)
			if err != nil {
				return err
			}

			clip, err := loadClipYAML(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded clip", zap.String("path", args[0]), zap.Int("animations", len(clip.Animations)))

			return process(cmd.OutOrStdout(), cfg, logger, clip, flags.outputs())
		},
	}
	flags.register(cmd)
	return cmd
}

func newWAVCommand(ctx *commandContext) *cobra.Command {
	var flags reduceFlags
	var stride int

	cmd := &cobra.Command{
		Use:   "wav [flags] <input.wav>",
		Short: "Import WAV channels as float curves and reduce them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := prepare(ctx, cmd, &flags)
			if err != nil {
				return err
			}

			clip, info, err := loadWAVClip(args[0], stride)
			if err != nil {
				return err
			}
			logger.Info("imported WAV",
				zap.String("path", args[0]),
				zap.Int("rate", info.rate),
				zap.Int("channels", info.channels),
				zap.Int("bit_depth", info.bitDepth),
				zap.Int("stride", stride),
			)

			return process(cmd.OutOrStdout(), cfg, logger, clip, flags.outputs())
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&stride, "stride", 1, "Keep every n-th frame")
	return cmd
}

func newLayoutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List supported key layouts and SIMD capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(w, layoutTable()); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, "SIMD: %s\n", cpu.Info())
			return err
		},
	}
}

// prepare applies the command flags and builds the logger.
func prepare(ctx *commandContext, cmd *cobra.Command, flags *reduceFlags) (*Config, *zap.Logger, error) {
	cfg, err := ctx.ensureConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := flags.apply(cmd, cfg); err != nil {
		return nil, nil, err
	}
	logger, err := ctx.ensureLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
