package crypto

import (
	"io"
	"log/slog"
)

// Generator produces passwords that satisfy its Settings.
// It is safe for concurrent use when its Source is.
type Generator struct {
	settings Settings
	src      Source
	logger   *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSource replaces the default crypto/rand source.
func WithSource(src Source) GeneratorOption {
	return func(g *Generator) {
		if src != nil {
			g.src = src
		}
	}
}

// WithLogger sets the logger used for exhaustion and configuration diagnostics.
func WithLogger(l *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator creates a Generator for the given settings.
func NewGenerator(s Settings, opts ...GeneratorOption) *Generator {
	g := &Generator{
		settings: s,
		src:      CryptoSource{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Settings returns the rules the generator enforces.
func (g *Generator) Settings() Settings {
	return g.settings
}

// Result is one entry of a NextGroup batch.
type Result struct {
	Password string
	Err      error
}

// Next generates candidates until one passes validation or the attempt budget
// is spent. The length bounds are checked before anything is generated.
func (g *Generator) Next() (string, error) {
	s := g.settings

	if s.Length < s.MinLength || s.Length > s.MaxLength {
		g.logger.Debug("requested length out of bounds",
			"length", s.Length, "min", s.MinLength, "max", s.MaxLength)
		return "", &LengthError{Length: s.Length, Min: s.MinLength, Max: s.MaxLength}
	}
	if s.Charset() == "" {
		return "", ErrNoCategories
	}
	if s.MaxAttempts < 1 {
		return "", ErrInvalidAttempts
	}

	var (
		candidate string
		attempts  int
		valid     bool
	)
	for !valid && attempts < s.MaxAttempts {
		var err error
		candidate, err = Candidate(s, g.src)
		if err != nil {
			return "", err
		}
		attempts++
		valid = Validate(s, candidate)
	}

	if !valid {
		g.logger.Warn("password generation exhausted",
			"attempts", attempts, "length", s.Length, "categories", len(s.Categories()))
		return "", &ExhaustedError{Attempts: attempts}
	}
	return candidate, nil
}

// NextGroup calls Next n times and returns the results in call order.
// Results are independent; duplicates are possible.
func (g *Generator) NextGroup(n int) []Result {
	if n <= 0 {
		return []Result{}
	}
	results := make([]Result, n)
	for i := range results {
		results[i].Password, results[i].Err = g.Next()
	}
	return results
}

// Candidate draws one string of s.Length characters from the shuffled charset of s.
// It never places three identical characters in a row, but does not check
// category coverage.
func Candidate(s Settings, src Source) (string, error) {
	if s.Length < 0 {
		return "", &LengthError{Length: s.Length, Min: 0, Max: s.MaxLength}
	}
	pool := []byte(s.Charset())
	if len(pool) == 0 {
		return "", ErrNoCategories
	}
	if err := shuffle(pool, src); err != nil {
		return "", err
	}

	out := make([]byte, s.Length)
	for i := 0; i < len(out); i++ {
		idx, err := src.IntN(len(pool))
		if err != nil {
			return "", err
		}
		out[i] = pool[idx]
		if i >= 2 && out[i] == out[i-1] && out[i] == out[i-2] {
			i--
		}
	}
	return string(out), nil
}
