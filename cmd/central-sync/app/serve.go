package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/mvnpm/central-sync-server/internal/api"
	"github.com/mvnpm/central-sync-server/internal/central"
	"github.com/mvnpm/central-sync-server/internal/config"
	"github.com/mvnpm/central-sync-server/internal/db"
	"github.com/mvnpm/central-sync-server/internal/npm"
	"github.com/mvnpm/central-sync-server/internal/storage"
	pipeline "github.com/mvnpm/central-sync-server/internal/sync"
	"github.com/mvnpm/central-sync-server/internal/sync/scheduler"
	"github.com/mvnpm/central-sync-server/internal/sync/state"
	"github.com/mvnpm/central-sync-server/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sync server",
	Long: `Start the sync pipeline and its operational API.

The server requires a configuration file (--config) that specifies:
- The local artifact repository root
- The npm registry and Maven Central endpoints
- The optional Postgres ledger (in-memory fallback when absent)
- Queue timer and discovery schedule settings`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 10 * time.Second
	serverReadTimeout      = 10 * time.Second
	// Must be > serverRequestTimeout to let the middleware handle the timeout
	serverWriteTimeout = 15 * time.Second
	serverIdleTimeout  = 60 * time.Second
)

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides config)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		panic(err)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		panic(err)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configPath := viper.GetString("config")
	cfg, err := config.Load(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	address := viper.GetString("address")
	if address == "" {
		address = cfg.Server.Address
	}

	slog.Info("Starting sync server",
		"address", address,
		"storage_root", cfg.Storage.Root,
		"database", cfg.Database != nil)

	// Durable ledger when a database is configured, in-memory otherwise
	var pool *pgxpool.Pool
	if cfg.Database != nil {
		pool, err = db.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()
	}

	store, err := state.NewItemStore(cfg, pool)
	if err != nil {
		return fmt.Errorf("failed to create item store: %w", err)
	}

	registry := npm.NewRegistryClient(cfg.Npm.BaseURL, npm.WithMaxRetries(cfg.Npm.MaxRetries))
	centralFacade := central.NewClient(cfg.Central.RepoBaseURL, cfg.Central.APIBaseURL)
	bundler := central.NewLocalBundler(cfg.Storage.Root)
	files := storage.NewLocalFileStore(cfg.Storage.Root)

	orchestrator := pipeline.NewOrchestrator(store, registry, centralFacade, bundler)

	metrics, err := telemetry.NewPipelineMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	sched := scheduler.New(orchestrator, centralFacade, files,
		scheduler.WithQueueInterval(cfg.QueueInterval()),
		scheduler.WithDiscoveryCron(cfg.Scheduler.DiscoveryCron),
		scheduler.WithMetrics(metrics),
	)

	router := api.NewServer(sched, store,
		api.WithMiddlewares(
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			api.LoggingMiddleware,
		),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("Server listening", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		slog.Info("Shutting down server...")

		sched.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	slog.Info("Server shutdown complete")
	return nil
}
