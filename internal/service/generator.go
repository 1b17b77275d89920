package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vaultpass/passforge/internal/crypto"
	"github.com/vaultpass/passforge/internal/model"
)

var (
	ErrCountRequired    = errors.New("count must be at least 1")
	ErrBatchTooLarge    = errors.New("count exceeds the batch limit")
	ErrPasswordRequired = errors.New("password is required")
	ErrHashRequired     = errors.New("hash is required")
)

// Limits bound what a single request may ask for.
type Limits struct {
	MaxBatch    int
	MaxAttempts int
}

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	limits Limits
	hasher *crypto.Hasher
	src    crypto.Source
	logger *slog.Logger
}

// Option configures a GeneratorService.
type Option func(*GeneratorService)

// WithSource sets the randomness source shared by every request.
func WithSource(src crypto.Source) Option {
	return func(s *GeneratorService) { s.src = src }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *GeneratorService) { s.logger = l }
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(limits Limits, hasher *crypto.Hasher, opts ...Option) *GeneratorService {
	if limits.MaxBatch < 1 {
		limits.MaxBatch = 1
	}
	if limits.MaxAttempts < 1 {
		limits.MaxAttempts = crypto.DefaultMaxAttempts
	}
	if hasher == nil {
		hasher = crypto.NewHasher(crypto.DefaultHashParams())
	}
	s := &GeneratorService{
		limits: limits,
		hasher: hasher,
		src:    crypto.CryptoSource{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate produces a password based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	password, err := s.generator(req.Rules).Next()
	if err != nil {
		return model.GenerateResponse{}, err
	}

	resp := model.GenerateResponse{
		Password: password,
		Length:   len(password),
	}
	if req.Hash {
		if resp.Hash, err = s.hash(password); err != nil {
			return model.GenerateResponse{}, err
		}
	}
	return resp, nil
}

// GenerateBatch produces req.Count independent passwords. A configuration
// error fails the whole batch; an exhausted generation only fails its own item.
func (s *GeneratorService) GenerateBatch(req model.BatchRequest) (model.BatchResponse, error) {
	if req.Count < 1 {
		return model.BatchResponse{}, ErrCountRequired
	}
	if req.Count > s.limits.MaxBatch {
		return model.BatchResponse{}, fmt.Errorf("%w (max %d)", ErrBatchTooLarge, s.limits.MaxBatch)
	}

	results := s.generator(req.Rules).NextGroup(req.Count)

	resp := model.BatchResponse{Passwords: make([]model.BatchItem, len(results))}
	for i, r := range results {
		if r.Err != nil {
			if !errors.Is(r.Err, crypto.ErrExhausted) {
				return model.BatchResponse{}, r.Err
			}
			resp.Passwords[i].Error = r.Err.Error()
			resp.Failed++
			continue
		}

		resp.Passwords[i].Password = r.Password
		if req.Hash {
			h, err := s.hash(r.Password)
			if err != nil {
				return model.BatchResponse{}, err
			}
			resp.Passwords[i].Hash = h
		}
	}

	if resp.Failed > 0 {
		s.logger.Warn("batch generation partially failed", "count", req.Count, "failed", resp.Failed)
	}
	return resp, nil
}

// Validate checks a password against the request rules.
func (s *GeneratorService) Validate(req model.ValidateRequest) model.ValidateResponse {
	report := crypto.Inspect(s.settings(req.Rules), req.Password)

	missing := make([]string, len(report.Missing))
	for i, c := range report.Missing {
		missing[i] = c.String()
	}

	return model.ValidateResponse{
		Valid:    report.Valid(),
		Length:   report.Length,
		LengthOK: report.LengthOK,
		Missing:  missing,
	}
}

// Verify checks a password against an Argon2id hash produced by Generate.
func (s *GeneratorService) Verify(req model.VerifyRequest) (model.VerifyResponse, error) {
	if req.Password == "" {
		return model.VerifyResponse{}, ErrPasswordRequired
	}
	if req.Hash == "" {
		return model.VerifyResponse{}, ErrHashRequired
	}

	match, err := s.hasher.Verify(req.Password, req.Hash)
	if err != nil {
		return model.VerifyResponse{}, err
	}
	return model.VerifyResponse{Match: match}, nil
}

func (s *GeneratorService) generator(r model.Rules) *crypto.Generator {
	return crypto.NewGenerator(s.settings(r), crypto.WithSource(s.src), crypto.WithLogger(s.logger))
}

// settings maps request rules onto crypto.Settings. Every category defaults to
// enabled and the standard length bounds apply unless overridden.
func (s *GeneratorService) settings(r model.Rules) crypto.Settings {
	length := r.Length
	if length == 0 {
		length = crypto.DefaultLength
	}

	attempts := r.MaxAttempts
	if attempts == 0 || attempts > s.limits.MaxAttempts {
		attempts = s.limits.MaxAttempts
	}

	minLen, maxLen := crypto.MinLength, crypto.MaxLength
	if r.MinLength != 0 {
		minLen = r.MinLength
	}
	if r.MaxLength != 0 {
		maxLen = min(r.MaxLength, crypto.UnrestrictedMaxLength)
	}

	settings := crypto.CustomSettings(false, false, false, false, length, attempts).
		WithBounds(minLen, maxLen)

	if boolOrDefault(r.Lowercase, true) {
		settings = settings.IncludeLowercase()
	}
	if boolOrDefault(r.Uppercase, true) {
		settings = settings.IncludeUppercase()
	}
	if boolOrDefault(r.Numeric, true) {
		settings = settings.IncludeNumeric()
	}
	if boolOrDefault(r.Special, true) {
		settings = settings.IncludeSpecial()
	}
	return settings
}

func (s *GeneratorService) hash(password string) (string, error) {
	h, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return h, nil
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
