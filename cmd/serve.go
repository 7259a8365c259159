package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"nexus-service/internal/handler"
	"nexus-service/internal/middleware"
	"nexus-service/internal/service"
	"nexus-service/internal/store"
	"nexus-service/pkg/database"
	"nexus-service/pkg/jwtutil"
	"nexus-service/pkg/logger"
	"nexus-service/pkg/textgen"
	"nexus-service/prometheus"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	limiterCleanupSpec = "@every 10m"
	limiterIdleTimeout = 30 * time.Minute
)

func newServeCommand() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), skipMigrate)
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run schema migration on startup")
	return cmd
}

func serve(parent context.Context, skipMigrate bool) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("Starting nexus service...", cfg.LogConfig()...)

	// Initialize database
	db, err := database.Open(&cfg.DB)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	if !skipMigrate {
		if err := database.Migrate(db, log); err != nil {
			return err
		}
	}
	log.Info("Database connection established")

	tokens, err := jwtutil.NewJWTUtil(&cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT: %w", err)
	}

	generator := textgen.New(cfg.LLM)
	if _, ok := generator.(textgen.Noop); ok {
		log.Warn("LLM_API_KEY not set, nudges will use the static message")
	}

	stores := store.New(db)
	auth := service.NewAuthService(stores.Users, tokens, 0, log.Named("auth"))
	dashboard := service.NewDashboardService(stores)
	nudges := service.NewNudgeService(stores, dashboard, generator, cfg.LLM.Timeout, log.Named("nudge"))

	limiter := middleware.NewRateLimiter(cfg.Nudge.RatePerMinute, cfg.Nudge.Burst)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(limiterCleanupSpec, func() {
		removed := limiter.Cleanup(limiterIdleTimeout)
		log.Debug("Cleaned up idle rate limiters", zap.Int("removed", removed), zap.Int("remaining", limiter.Len()))
	}); err != nil {
		return fmt.Errorf("failed to schedule limiter cleanup: %w", err)
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
	}()

	// Initialize Echo framework
	e := echo.New()
	e.HideBanner = true

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(middleware.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(prometheus.GetPrometheusHandler()))
	handler.New(db, stores, auth, dashboard, nudges).Register(e, limiter.Middleware)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server failed", zap.Error(err))
			return err
		}
	case <-ctx.Done():
		log.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}
	log.Info("Server stopped")
	return nil
}
