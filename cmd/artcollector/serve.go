package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logpkg "github.com/kailas-cloud/artcollector/internal/logger"
	"github.com/kailas-cloud/artcollector/internal/metrics"
	"github.com/kailas-cloud/artcollector/internal/state"
	chiTransport "github.com/kailas-cloud/artcollector/internal/transport/chi"
	healthuc "github.com/kailas-cloud/artcollector/internal/usecase/health"
	searchuc "github.com/kailas-cloud/artcollector/internal/usecase/search"
	"github.com/kailas-cloud/artcollector/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().Int("port", 0, "HTTP port (overrides config)")
	_ = viper.BindPFlag("port", rootCmd.PersistentFlags().Lookup("port"))
	serveCmd.Flags().Bool("probe-catalog", false, "include the catalog in /health (spends quota)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, env, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting artcollector",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog", cfg.Catalog.BaseURL),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Int64("daily_quota", cfg.Catalog.DailyQuota),
	)

	ctx := context.Background()
	d, err := buildDeps(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to build dependencies", zap.Error(err))
		return err
	}
	defer d.Close()

	// Probing the catalog costs a request per health check, so it is opt-in.
	var catalogChecker healthuc.CatalogChecker
	if probe, _ := cmd.Flags().GetBool("probe-catalog"); probe {
		catalogChecker = d.catalog
	}

	searchSvc := searchuc.New(d.options, d.catalog, logger)
	healthSvc := healthuc.New(d.store, catalogChecker)
	sessions := state.NewRegistry(time.Duration(cfg.Session.IdleTTLSec) * time.Second)

	server := chiTransport.NewServer(searchSvc, d.usage, healthSvc, sessions, chiTransport.Options{
		Title:        "Art Collector",
		CookieName:   cfg.Session.CookieName,
		CookieSecure: cfg.Session.Secure,
		CookieMaxAge: time.Duration(cfg.Session.IdleTTLSec) * time.Second,
		APIKeys:      cfg.Auth.APIKeys,
	}, logger)

	r := chi.NewRouter()
	r.Use(recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-quit:
		logger.Info("Received shutdown signal")
	case err := <-serveErr:
		logger.Error("HTTP server error", zap.Error(err))
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
