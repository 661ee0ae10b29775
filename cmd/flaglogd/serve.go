package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/amirhossein-jamali/flag-logger/internal/domain/entity"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/usecase/lifecycle"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/usecase/logging"
	"github.com/amirhossein-jamali/flag-logger/internal/domain/usecase/loglevel"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/api/routes"
	timeprovider "github.com/amirhossein-jamali/flag-logger/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/binding"
	"github.com/amirhossein-jamali/flag-logger/internal/infrastructure/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the flag client lifecycle and the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config) error {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := newAppLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = appLogger.Flush() }()

	tp := timeprovider.NewRealTimeProvider()

	store, closeStore, err := newLevelStore(ctx, cfg, tp, appLogger)
	if err != nil {
		return fmt.Errorf("failed to open level store: %w", err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			appLogger.Warn("Failed to close level store", map[string]any{"error": err.Error()})
		}
	}()

	sink, err := newSink(cfg, tp)
	if err != nil {
		return err
	}

	flagLogger, err := logging.NewLogger(logging.Config{
		ConsoleLogFlagKey: cfg.Flags.ConsoleLogFlagKey,
		SDKLogFlagKey:     cfg.Flags.SDKLogFlagKey,
	}, sink)
	if err != nil {
		return err
	}

	mode, err := entity.ParseReactionMode(cfg.Flags.Mode)
	if err != nil {
		return err
	}

	hooks := binding.NewLoggerBinding(flagLogger, func(value any) {
		_, valid := entity.ParseRemoteLevel(value)
		appLogger.Info("SDK log level flag changed", map[string]any{
			"value": value,
			"valid": valid,
		})
	}, appLogger).Hooks(lifecycle.Hooks{})

	lc := lifecycle.New(lifecycle.Options{
		ClientID:       cfg.Flags.ClientID,
		ContextFactory: contextFactory(cfg),
		Factory:        newFactory(cfg, appLogger),
		SDKLogFlagKey:  cfg.Flags.SDKLogFlagKey,
		Mode:           mode,
		InitTimeout:    cfg.Flags.InitTimeout,
		Hooks:          hooks,
	}, loglevel.NewLevelPersistence(store, appLogger), tp, appLogger)

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, tp)
	routes.SetupRoutes(router, lc,
		handler.NewLifecycleHandler(lc),
		handler.NewLogHandler(flagLogger, appLogger),
	)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := lc.Start(gctx); err != nil {
			// the gate reports the failure; keep serving /health and /lifecycle
			return nil
		}
		if _, err := lc.Wait(gctx); err != nil {
			return nil
		}
		flagLogger.Info("Flag client ready", map[string]any{
			"client_id": cfg.Flags.ClientID,
			"sdk_level": lc.Level().String(),
		})
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Server forced to shutdown", map[string]any{
				"error": err.Error(),
			})
		}
		if err := lc.Stop(shutdownCtx); err != nil {
			appLogger.Warn("Flag client lifecycle did not stop cleanly", map[string]any{
				"error": err.Error(),
			})
		}
		return nil
	})

	err = g.Wait()
	appLogger.Info("Server exited", nil)
	return err
}
