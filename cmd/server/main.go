package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/quizhub/class-notifier/internal/api"
	"github.com/quizhub/class-notifier/internal/attachment"
	"github.com/quizhub/class-notifier/internal/config"
	"github.com/quizhub/class-notifier/internal/db"
	"github.com/quizhub/class-notifier/internal/dispatch"
	"github.com/quizhub/class-notifier/internal/mailer"
	"github.com/quizhub/class-notifier/internal/metrics"
	"github.com/quizhub/class-notifier/internal/roster"
	"github.com/quizhub/class-notifier/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// ---- database ----
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations applied")

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	resolver := roster.NewPgResolver(pool, cfg.StoreTimeout)
	admitter := attachment.NewAdmitter(cfg.MaxAttachmentBytes)
	transport := mailer.NewSMTPTransport(
		cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.SenderName)

	onSent, onFailed := m.EngineHooks()
	engine := dispatch.NewEngine(
		transport,
		func() dispatch.Pacer { return dispatch.NewIntervalPacer(cfg.PacingInterval) },
		cfg.SendTimeout,
		logger,
		dispatch.Hooks{OnSent: onSent, OnFailed: onFailed},
	)

	svc := service.NewNotifyService(
		cfg.SenderAddress(), cfg.SenderName,
		resolver, admitter, engine, logger,
		m.ObserveBatchSize,
	)

	// ---- HTTP server ----
	router := api.NewRouter(svc, reg, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	// In-flight dispatch loops run on request goroutines; Shutdown waits for
	// them up to the configured timeout, and each loop also checks its
	// request context between recipients.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped cleanly")
}
