package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaultpass/passforge/internal/config"
	"github.com/vaultpass/passforge/internal/crypto"
	"github.com/vaultpass/passforge/internal/handler"
	"github.com/vaultpass/passforge/internal/logger"
	"github.com/vaultpass/passforge/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New("passforge", cfg.Env, cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hasher := crypto.NewHasher(crypto.HashParams{
		Memory:      cfg.HashMemory,
		Iterations:  cfg.HashIterations,
		Parallelism: cfg.HashParallelism,
	})
	genService := service.NewGeneratorService(
		service.Limits{MaxBatch: cfg.MaxBatch, MaxAttempts: cfg.MaxAttempts},
		hasher,
		service.WithLogger(log),
	)

	router := handler.NewRouter(ctx, handler.RouterConfig{
		Generator:    handler.NewGeneratorHandler(genService, log),
		Logger:       log,
		JWTSecret:    cfg.JWTSecret,
		AuthRequired: cfg.AuthRequired,
		RateLimitRPS: cfg.RateLimitRPS,
		RateBurst:    cfg.RateLimitBurst,
		TrustProxy:   cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "auth_required", cfg.AuthRequired)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
