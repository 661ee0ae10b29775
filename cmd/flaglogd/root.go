package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/config"
)

var flagEnv string

var rootCmd = &cobra.Command{
	Use:   "flaglogd",
	Short: "Flag-driven logging daemon",
	Long: `flaglogd runs a flag client lifecycle and a logger whose threshold is
evaluated from a feature flag on every call. The HTTP surface stays in a
loading state until the flag client is ready.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", "", "Configuration environment, overrides FL_ENV")
}

// Execute runs the root command and returns the exit code
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// loadConfig loads and validates configuration for the selected environment
func loadConfig() (*config.Config, error) {
	if flagEnv != "" {
		if err := os.Setenv(config.EnvPrefix+"_ENV", flagEnv); err != nil {
			return nil, fmt.Errorf("setting environment: %w", err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
