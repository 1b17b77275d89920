package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const devJWTSecret = "dev-secret-change-in-production"

var ErrInsecureSecret = errors.New("JWT_SECRET must be set in production when AUTH_REQUIRED is enabled")

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFormat is "json" or "text". Empty picks by environment.
	LogFormat string `env:"LOG_FORMAT"`

	JWTSecret    string        `env:"JWT_SECRET" envDefault:"dev-secret-change-in-production"`
	JWTExpiry    time.Duration `env:"JWT_EXPIRY" envDefault:"720h"`
	AuthRequired bool          `env:"AUTH_REQUIRED" envDefault:"false"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// TrustProxy keys rate limits on forwarded client IPs instead of the peer address.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	// MaxBatch caps the count accepted by the batch endpoint.
	MaxBatch int `env:"MAX_BATCH" envDefault:"100"`
	// MaxAttempts caps the attempt budget a request may ask for.
	MaxAttempts int `env:"MAX_ATTEMPTS" envDefault:"10000"`

	HashMemory      uint32 `env:"HASH_MEMORY" envDefault:"65536"`
	HashIterations  uint32 `env:"HASH_ITERATIONS" envDefault:"3"`
	HashParallelism uint8  `env:"HASH_PARALLELISM" envDefault:"2"`
}

// Load reads an optional .env file and parses the environment into a Config.
func Load() (Config, error) {
	// A missing .env file is expected outside local development.
	_ = godotenv.Load()
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in the production environment.
func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func (c Config) validate() error {
	if c.IsProduction() && c.AuthRequired && c.JWTSecret == devJWTSecret {
		return ErrInsecureSecret
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit must be positive, got rps=%v burst=%d", c.RateLimitRPS, c.RateLimitBurst)
	}
	if c.MaxBatch < 1 {
		return fmt.Errorf("MAX_BATCH must be at least 1, got %d", c.MaxBatch)
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("MAX_ATTEMPTS must be at least 1, got %d", c.MaxAttempts)
	}
	return nil
}
