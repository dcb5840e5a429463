package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/auditronaut/internal/config"
	"github.com/bryanwahyu/auditronaut/internal/logging"
)

const (
	configFlag    = "config"
	logLevelFlag  = "log-level"
	configEnv     = "CONFIG_PATH"
	defaultConfig = "config.yaml"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "auditronaut",
		Short:         "Evidence-driven compliance audit assistant",
		Long:          "auditronaut checks uploaded evidence against compliance checklists with an LLM, scores the run and renders reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, configFlag, "", "path to config.yaml (default $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, logLevelFlag, "", "override the configured log level")

	root.AddCommand(newServeCommand(a), newMigrateCommand(a), newChecklistCommand(a))
	return root
}

// init loads config then builds the logger. A missing default config file
// falls back to built-in defaults; an explicit path must exist.
func (a *app) init() error {
	path := a.configPath
	explicit := path != ""
	if !explicit {
		if v := os.Getenv(configEnv); v != "" {
			path, explicit = v, true
		} else {
			path = defaultConfig
		}
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !explicit:
		cfg = config.Default()
	default:
		return fmt.Errorf("unable to load configuration: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("unable to create logger: %w", err)
	}
	a.cfg, a.logger = cfg, logger
	logger.Debug("configuration initialized", zap.String("config_file", path), zap.String("driver", cfg.Database.Driver))
	return nil
}
