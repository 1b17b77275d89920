package main

import (
	"bytes"
	"flag"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultpass/passforge/internal/crypto"
)

func parse(t *testing.T, args ...string) Config {
	t.Helper()
	fs := flag.NewFlagSet("passgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg, err := ParseFlags(fs, args)
	require.NoError(t, err)
	return cfg
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg := parse(t)

	assert.Equal(t, 16, cfg.Length)
	assert.Equal(t, 1, cfg.Count)
	assert.True(t, cfg.Lowercase && cfg.Uppercase && cfg.Numeric && cfg.Special)
	assert.Equal(t, crypto.DefaultMaxAttempts, cfg.MaxAttempts)
	assert.False(t, cfg.Seeded)

	s := cfg.Settings()
	assert.Equal(t, crypto.DefaultSettings().Charset(), s.Charset())
	assert.Equal(t, crypto.MinLength, s.MinLength)
	assert.Equal(t, crypto.MaxLength, s.MaxLength)
}

func TestParseFlagsCustom(t *testing.T) {
	cfg := parse(t, "-length", "20", "-count", "3", "-special=false", "-upper=false", "-seed", "0")

	assert.Equal(t, 20, cfg.Length)
	assert.Equal(t, 3, cfg.Count)
	assert.True(t, cfg.Seeded, "an explicit zero seed still selects the seeded source")
	assert.Equal(t, []crypto.Category{crypto.Lowercase, crypto.Numeric}, cfg.Settings().Categories())
}

func TestParseFlagsInvalid(t *testing.T) {
	fs := flag.NewFlagSet("passgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	_, err := ParseFlags(fs, []string{"-length", "many"})
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(parse(t, "-count", "4", "-seed", "9"), &stdout, &stderr)

	require.Zero(t, code, stderr.String())
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Len(t, line, 16)
		assert.True(t, crypto.Validate(crypto.DefaultSettings(), line))
	}
}

func TestRunSeededIsReproducible(t *testing.T) {
	var a, b bytes.Buffer
	Run(parse(t, "-count", "2", "-seed", "5"), &a, io.Discard)
	Run(parse(t, "-count", "2", "-seed", "5"), &b, io.Discard)

	assert.Equal(t, a.String(), b.String())
}

func TestRunHash(t *testing.T) {
	var stdout bytes.Buffer
	code := Run(parse(t, "-hash", "-seed", "1"), &stdout, io.Discard)

	require.Zero(t, code)
	fields := strings.Split(strings.TrimSpace(stdout.String()), "\t")
	require.Len(t, fields, 2)
	assert.True(t, strings.HasPrefix(fields[1], "$argon2id$"))
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"length out of bounds", []string{"-length", "3"}, 2, "between 8 and 128"},
		{"no categories", []string{"-lower=false", "-upper=false", "-numeric=false", "-special=false"}, 2, "category"},
		{"exhausted", []string{"-length", "2", "-min", "1", "-attempts", "3", "-count", "2"}, 1, "after 3 attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := Run(parse(t, tt.args...), &stdout, &stderr)

			assert.Equal(t, tt.wantCode, code)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), tt.wantErr)
		})
	}
}
