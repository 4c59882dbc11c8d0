package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/t0sssik/gsd-ci-cd/internal/app"
	"github.com/t0sssik/gsd-ci-cd/internal/config"
	"github.com/t0sssik/gsd-ci-cd/internal/domain"
	"github.com/t0sssik/gsd-ci-cd/internal/logging"
	"github.com/t0sssik/gsd-ci-cd/internal/memory"
	"github.com/t0sssik/gsd-ci-cd/internal/redis"
	"github.com/t0sssik/gsd-ci-cd/internal/server"
	"github.com/t0sssik/gsd-ci-cd/internal/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupStore selects the storage backend: Redis when REDIS_URL is set,
// otherwise the in-memory store.
func setupStore(cfg *config.Config) (domain.Store, func()) {
	if cfg.RedisURL == "" {
		slog.Info("Using in-memory storage")
		return memory.NewStore(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	slog.Info("Using Redis storage")
	return redis.NewStore(client), func() { _ = client.Close() }
}

func runGracefulShutdown(srv *server.Server, timeout time.Duration) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	cfg := setupConfig()

	// Initialize structured logging
	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Version)

	store, closeStore := setupStore(cfg)
	defer closeStore()

	svc := app.NewService(store, clockwork.NewRealClock())
	srv := server.NewServer(cfg, svc, store)

	done := runGracefulShutdown(srv, cfg.ShutdownTimeout)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
