// Package main is the entry point for the example service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/http"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/http/handlers"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/adapters/persistence/gormdb"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/app"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/config"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/logging"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/telemetry"
	"github.com/juaoantonio/clean-arch-ddd-template/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "service",
		Short:         "Example service built on the DDD kernel",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("profile", "p", "",
		"configuration profile loaded from configs/<profile>.yaml (default $APP_ENVIRONMENT or local)")

	// A bare invocation serves, like "service serve".
	serveCmd := newServeCmd()
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(serveCmd, newMigrateCmd(), newVersionCmd())

	return rootCmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			return serve(cmd.Context(), cfg, logger)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the example table (postgres and sqlite only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			return migrate(cfg, logger)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("version=%s commit=%s built=%s\n", Version, Commit, BuildTime)
		},
	}
}

// setup loads and validates the configuration and installs the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	profile, err := cmd.Flags().GetString("profile")
	if err != nil {
		return nil, nil, fmt.Errorf("reading profile flag: %w", err)
	}

	if profile == "" {
		profile = os.Getenv("APP_ENVIRONMENT")
	}

	if profile == "" {
		profile = "local"
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Debug("configuration loaded",
		slog.String("profile", profile),
		slog.Any("database", cfg.Database),
		slog.Any("redis", cfg.Redis),
		slog.Any("events", cfg.Events),
	)

	return cfg, logger, nil
}

func migrate(cfg *config.Config, logger *slog.Logger) error {
	if cfg.Database.Vendor != config.VendorPostgres && cfg.Database.Vendor != config.VendorSQLite {
		logger.Info("nothing to migrate", slog.String("vendor", cfg.Database.Vendor))
		return nil
	}

	db, err := gormdb.Open(&cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	defer func() {
		if closeErr := gormdb.Close(db); closeErr != nil {
			logger.Error("closing database", slog.Any("error", closeErr))
		}
	}()

	if err := gormdb.Migrate(db); err != nil {
		return err
	}

	logger.Info("migration complete", slog.String("vendor", cfg.Database.Vendor))

	return nil
}

func serve(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("vendor", cfg.Database.Vendor),
	)

	telProvider, err := telemetry.New(ctx, telemetry.ConfigFrom(cfg))
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.Background()); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	healthRegistry := ports.NewHealthRegistry()

	repo, err := buildRepository(ctx, cfg, logger, healthRegistry)
	if err != nil {
		return err
	}

	defer repo.close()

	publisher, err := buildPublisher(cfg, logger, healthRegistry)
	if err != nil {
		return err
	}

	defer publisher.close()

	exampleService := app.NewExampleService(app.ExampleServiceConfig{
		Repository: repo.repository,
		Publisher:  publisher.publisher,
		Metrics:    app.NewMetrics(registry),
		Logger:     logger,
	})

	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:         logger,
		AuthConfig:     &cfg.Auth,
		AppConfig:      &cfg.App,
		HealthHandler:  handlers.NewHealthHandler(healthRegistry, buildInfo, registry),
		ExampleHandler: handlers.NewExampleHandler(exampleService),
		Timeout:        http.DefaultRequestTimeout,
	})

	serverErr, err := server.Start()
	if err != nil {
		return err
	}

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
