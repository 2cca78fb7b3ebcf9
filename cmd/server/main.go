package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/pubtools/gptsampler/internal/api"
	"github.com/pubtools/gptsampler/internal/codegen"
	"github.com/pubtools/gptsampler/internal/config"
	"github.com/pubtools/gptsampler/internal/db"
	"github.com/pubtools/gptsampler/internal/middleware"
	"github.com/pubtools/gptsampler/internal/observability"
	"github.com/pubtools/gptsampler/internal/presets"
	"github.com/pubtools/gptsampler/internal/ui"
)

func main() {
	cfg := config.Load()

	logger, err := observability.InitLoggerWithService(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg config.Config) error {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.OTLPEndpoint, cfg.TracingSampleRate)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown()
	}

	// Share links are optional; the generator works without Redis.
	var store *db.RedisStore
	if cfg.ShareEnabled {
		var err error
		store, err = db.InitRedis(cfg.RedisAddr)
		if err != nil {
			return fmt.Errorf("failed to connect redis: %w", err)
		}
		defer store.Close()
	} else {
		logger.Info("share links disabled")
	}

	presetStore, err := presets.NewStore(cfg.PresetsPath, logger)
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	if cfg.WatchPresets && cfg.PresetsPath != "" {
		if err := presetStore.Watch(ctx); err != nil {
			return fmt.Errorf("watch presets: %w", err)
		}
	}

	renderer, err := ui.NewRenderer()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	metricsRegistry := observability.NewPrometheusRegistry()
	generator := codegen.NewService(logger)

	srvDeps := api.NewServer(logger, store, presetStore, generator, renderer, metricsRegistry, cfg)

	r := mux.NewRouter()
	r.HandleFunc("/", srvDeps.IndexHandler).Methods("GET")
	r.HandleFunc("/api/sample", srvDeps.GenerateHandler).Methods("POST")
	r.HandleFunc("/api/validate", srvDeps.ValidateHandler).Methods("POST")
	r.HandleFunc("/api/config", srvDeps.DecodeConfigHandler).Methods("GET")
	r.HandleFunc("/api/presets", srvDeps.PresetsHandler).Methods("GET")
	r.HandleFunc("/api/share", srvDeps.CreateShareHandler).Methods("POST")
	r.HandleFunc("/s/{id}", srvDeps.ResolveShareHandler).Methods("GET")
	r.HandleFunc("/health", srvDeps.HealthHandler).Methods("GET")
	r.HandleFunc("/reload", srvDeps.ReloadHandler).Methods("POST")

	r.Handle("/metrics", promhttp.Handler())

	var handler http.Handler = r
	handler = middleware.WithTraceLogger(logger)(handler)
	handler = middleware.WithRequestID()(handler)
	if cfg.TracingEnabled {
		handler = otelhttp.NewHandler(handler, "http.server")
	}

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("Sample generator running", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
