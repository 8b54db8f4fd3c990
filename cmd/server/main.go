package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/contactsite/backend/internal/config"
	"github.com/contactsite/backend/internal/handler"
	"github.com/contactsite/backend/internal/logging"
	"github.com/contactsite/backend/internal/repository"
	"github.com/contactsite/backend/internal/service"
	"github.com/contactsite/backend/internal/telemetry"
	"github.com/contactsite/backend/web"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load config failed", "error", err)
	}

	logCloser, err := logging.Setup(logging.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		logging.Fatal("logging setup failed", "error", err)
	}
	defer logCloser.Close()

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
		shutdownTracing = func(context.Context) error { return nil }
	}

	// A store that cannot be reached is logged and the server keeps running;
	// contact endpoints answer 500 until the store comes back.
	store, err := repository.Open(ctx, cfg.StoreURI())
	if err != nil {
		slog.Error("store connection failed, running degraded", "backend", store.Backend, "error", err)
	} else {
		slog.Info("store connected", "backend", store.Backend)
	}
	if cfg.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			slog.Error("store migration failed", "backend", store.Backend, "error", err)
		}
	}

	if cfg.StaticDir != "" {
		slog.Info("serving static files from disk", "dir", cfg.StaticDir)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Contacts:      service.NewContactService(store.Contacts),
		DB:            store.DB,
		Assets:        web.Assets(cfg.StaticDir),
		AllowedOrigin: cfg.CORSOrigin,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      otelhttp.NewHandler(router, "http.server"),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		slog.Info("server listening", "addr", "http://localhost"+server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		slog.Warn("store close error", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Warn("tracing shutdown error", "error", err)
	}
}
