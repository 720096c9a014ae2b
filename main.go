package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sip-planner/config"
)

const (
	appName = "sip-planner"
	version = "v0.4.0"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	var configPath string

	rootCmd := &cobra.Command{
		Use:     appName,
		Short:   "Lumpsum and SIP growth simulator",
		Version: version,
		Long: `sip-planner simulates a lumpsum plus a monthly SIP with an optional annual
step-up, compounded monthly at a fixed expected return.

Run 'sip-planner simulate' for a one-off projection or 'sip-planner serve'
to expose the JSON API.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the YAML config (default $CONFIG_PATH or "+config.DefaultPath+")")

	loadConfig := func() (*config.Config, error) {
		path := configPath
		if path == "" {
			path = os.Getenv("CONFIG_PATH")
		}
		if path == "" {
			path = config.DefaultPath
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("config validation: %w", err)
		}
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zerolog.SetGlobalLevel(level)
		return cfg, nil
	}

	rootCmd.AddCommand(
		newServeCmd(loadConfig),
		newSimulateCmd(loadConfig),
		newCompareCmd(loadConfig),
		newGoalCmd(loadConfig),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
