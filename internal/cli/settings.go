package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wp2csv/wp2csv/internal/catalog"
	"github.com/wp2csv/wp2csv/internal/config"
	"github.com/wp2csv/wp2csv/internal/sanitize"
	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// resolveSettings merges defaults, the settings file and flags, in that order
// of increasing precedence.
func resolveSettings(cmd *cobra.Command, opts *options) (config.Settings, error) {
	settings := config.DefaultSettings()

	fileCfg, err := loadFileConfig(opts.configPath)
	if err != nil {
		return settings, err
	}
	if err := settings.ApplyFile(fileCfg); err != nil {
		return settings, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		settings.Output = opts.output
	}
	if flags.Changed("datasets") {
		settings.Datasets = opts.datasets
	}
	if flags.Changed("content-format") {
		settings.ContentFormat = opts.contentFormat
	}
	if flags.Changed("connect-retries") {
		if opts.connectRetries < 0 {
			return settings, fmt.Errorf("--connect-retries cannot be negative: %w", wp2csv.ErrInvalidConfig)
		}
		settings.ConnectRetries = opts.connectRetries
	}
	if flags.Changed("timeout") {
		if opts.timeout < 0 {
			return settings, fmt.Errorf("--timeout cannot be negative: %w", wp2csv.ErrInvalidConfig)
		}
		settings.Timeout = opts.timeout
	}
	return settings, nil
}

func loadFileConfig(path string) (*config.FileConfig, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrConfigNotFound) {
		return nil, nil
	}
	return cfg, err
}

// exportPlan is the validated input of an export or probe run.
type exportPlan struct {
	settings config.Settings
	catalog  *catalog.Catalog
	format   sanitize.Format
}

func planRun(cmd *cobra.Command, opts *options) (*exportPlan, error) {
	settings, err := resolveSettings(cmd, opts)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Default().Select(settings.Datasets)
	if err != nil {
		return nil, err
	}
	format, err := sanitize.ParseFormat(settings.ContentFormat)
	if err != nil {
		return nil, err
	}
	return &exportPlan{settings: settings, catalog: cat, format: format}, nil
}

// resolveConnection reads credentials from the environment after loading
// .env files. A port from the settings file applies only when DB_PORT is unset.
func resolveConnection(opts *options, settings config.Settings) (*wp2csv.ConnectionConfig, error) {
	if err := config.LoadEnvFiles(opts.envFiles...); err != nil {
		return nil, err
	}
	connCfg, err := config.FromEnvironment()
	if err != nil {
		return nil, err
	}
	if _, set := os.LookupEnv(wp2csv.EnvPort); !set && settings.Port != 0 {
		connCfg.Port = settings.Port
	}
	return connCfg, nil
}

// runContext returns a context bounded by timeout (none when zero) and
// cancelled on SIGINT or SIGTERM.
func runContext(cmd *cobra.Command, timeout time.Duration) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(cmd.Context(), timeout)
	} else {
		ctx, cancel = context.WithCancel(cmd.Context())
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(cmd.ErrOrStderr(), "\n[INTERRUPT] Received interrupt signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
