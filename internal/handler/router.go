package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/vaultpass/passforge/internal/middleware"
)

// RouterConfig wires the API routes.
type RouterConfig struct {
	Generator    *GeneratorHandler
	Logger       *slog.Logger
	JWTSecret    string
	AuthRequired bool
	RateLimitRPS float64
	RateBurst    int

	// TrustProxy takes the client IP from X-Forwarded-For / X-Real-IP. Enable it
	// only behind a proxy that overwrites those headers.
	TrustProxy bool
}

// NewRouter builds the HTTP API. ctx bounds background work such as rate
// limiter cleanup.
func NewRouter(ctx context.Context, cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := chi.NewRouter()
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthRequired {
			r.Use(middleware.JWTAuth(cfg.JWTSecret))
		} else {
			r.Use(middleware.OptionalJWTAuth(cfg.JWTSecret))
		}
		r.Use(middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateBurst))

		r.Post("/generate", cfg.Generator.HandleGenerate)
		r.Post("/generate/batch", cfg.Generator.HandleGenerateBatch)
		r.Post("/validate", cfg.Generator.HandleValidate)
		r.Post("/verify", cfg.Generator.HandleVerify)
	})

	return r
}
