package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// commandContext carries state shared by every subcommand.
type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	config *Config
	logger *zap.Logger
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

// ensureConfig loads the configuration once and applies the persistent
// logging flags.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*Config, error) {
	if c.config != nil {
		return c.config, nil
	}

	cfg, err := loadConfig(*c.configFlag)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = *c.logLevelFlag
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = *c.logFormatFlag
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c.config = cfg
	return cfg, nil
}

// ensureLogger builds the logger from the loaded configuration.
func (c *commandContext) ensureLogger(cmd *cobra.Command) (*zap.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}

// close flushes the logger.
func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}
