package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rickgao/fpl-data/internal/config"
	"github.com/rickgao/fpl-data/internal/pipeline"
	"github.com/rickgao/fpl-data/internal/version"
)

var (
	configPath   string
	forceRefresh bool
	logLevel     string
	logFormat    string
	cacheDir     string
)

var rootCmd = &cobra.Command{
	Use:           "fplpipe",
	Short:         "Fantasy football data pipeline",
	Long:          "Fetch player histories and analytics, fold them into master datasets and cache the results per season.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command until it completes or a signal arrives.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "path to YAML config (defaults apply when empty)")
	pf.BoolVar(&forceRefresh, "force-refresh", false, "rebuild artifacts even when cached")
	pf.StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "", "override log format (text, json)")
	pf.StringVar(&cacheDir, "cache-dir", "", "override cache directory")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(leagueCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.LoadWithDefaults(configPath)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("force-refresh") {
		cfg.Pipeline.ForceRefresh = forceRefresh
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if cacheDir != "" {
		cfg.Cache.Dir = cacheDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// setup loads config, installs the logger and builds a Runtime.
func setup(cmd *cobra.Command, opts ...pipeline.Option) (*pipeline.Runtime, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	logger.Debug("starting fplpipe", append(version.Fields(), "command", cmd.Name(), "config", configPath)...)

	return pipeline.New(cfg, logger, opts...)
}
