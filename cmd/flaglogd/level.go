package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/usecase/loglevel"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/time"
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Inspect or seed the persisted SDK log level",
	Long: `The persisted SDK log level is the level a newly created flag client
starts with. It is updated whenever the SDK log level flag delivers a valid
value; these commands read or seed it directly.`,
}

var levelGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the SDK log level the next client will be created with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLevelStore(cmd.Context(), func(store persistence.LevelStore) error {
			return runLevelGet(cmd.Context(), cmd.OutOrStdout(), store)
		})
	},
}

var levelSetCmd = &cobra.Command{
	Use:       "set <level>",
	Short:     "Persist an SDK log level (error, warn, info or debug)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"error", "warn", "info", "debug"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withLevelStore(cmd.Context(), func(store persistence.LevelStore) error {
			return runLevelSet(cmd.Context(), cmd.OutOrStdout(), store, args[0])
		})
	},
}

func init() {
	levelCmd.AddCommand(levelGetCmd, levelSetCmd)
	rootCmd.AddCommand(levelCmd)
}

// withLevelStore opens the configured store for the duration of fn
func withLevelStore(ctx context.Context, fn func(store persistence.LevelStore) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	appLogger, err := newAppLogger(cfg)
	if err != nil {
		return err
	}

	store, closeStore, err := newLevelStore(ctx, cfg, timeprovider.NewRealTimeProvider(), appLogger)
	if err != nil {
		return fmt.Errorf("failed to open level store: %w", err)
	}
	defer func() { _ = closeStore() }()

	return fn(store)
}

func runLevelGet(ctx context.Context, out io.Writer, store persistence.LevelStore) error {
	level := loglevel.NewLevelPersistence(store, logger.NewNoopLogger()).Load(ctx)
	_, err := fmt.Fprintln(out, level.String())
	return err
}

func runLevelSet(ctx context.Context, out io.Writer, store persistence.LevelStore, value string) error {
	if !entity.IsValidRemoteLevel(value) {
		return fmt.Errorf("invalid SDK log level %q, must be one of: error, warn, info, debug", value)
	}

	if _, err := loglevel.NewLevelPersistence(store, logger.NewNoopLogger()).Save(ctx, value); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "SDK log level set to %s\n", value)
	return err
}
