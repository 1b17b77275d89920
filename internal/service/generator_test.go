package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultpass/passforge/internal/crypto"
	"github.com/vaultpass/passforge/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func newTestGeneratorService() *GeneratorService {
	return NewGeneratorService(
		Limits{MaxBatch: 10, MaxAttempts: 500},
		crypto.NewHasher(crypto.HashParams{Memory: 1024, Iterations: 1, Parallelism: 1}),
		WithSource(crypto.NewSeededSource(99)),
	)
}

func TestGenerate_Defaults(t *testing.T) {
	svc := newTestGeneratorService()

	resp, err := svc.Generate(model.GenerateRequest{})
	require.NoError(t, err)

	assert.Equal(t, 16, resp.Length)
	assert.Len(t, resp.Password, 16)
	assert.Empty(t, resp.Hash)
	assert.True(t, crypto.Validate(crypto.DefaultSettings(), resp.Password))
}

func TestGenerate_CustomOptions(t *testing.T) {
	svc := newTestGeneratorService()

	resp, err := svc.Generate(model.GenerateRequest{Rules: model.Rules{
		Length:    32,
		Lowercase: boolPtr(true),
		Uppercase: boolPtr(true),
		Numeric:   boolPtr(false),
		Special:   boolPtr(false),
	}})
	require.NoError(t, err)

	assert.Equal(t, 32, resp.Length)
	for _, c := range resp.Password {
		assert.True(t, (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'),
			"unexpected character %q in password with only uppercase+lowercase", c)
	}
}

func TestGenerate_WithHash(t *testing.T) {
	svc := newTestGeneratorService()

	resp, err := svc.Generate(model.GenerateRequest{Hash: true})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.Hash, "$argon2id$"))

	verified, err := svc.Verify(model.VerifyRequest{Password: resp.Password, Hash: resp.Hash})
	require.NoError(t, err)
	assert.True(t, verified.Match)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rules   model.Rules
		wantErr error
	}{
		{"length too short", model.Rules{Length: 3}, crypto.ErrInvalidLength},
		{"length too long", model.Rules{Length: 200}, crypto.ErrInvalidLength},
		{"custom bounds", model.Rules{Length: 12, MinLength: 14, MaxLength: 20}, crypto.ErrInvalidLength},
		{"max length capped", model.Rules{Length: 5000, MaxLength: 100000}, crypto.ErrInvalidLength},
		{"negative attempts", model.Rules{MaxAttempts: -1}, crypto.ErrInvalidAttempts},
		{"no categories", model.Rules{
			Lowercase: boolPtr(false),
			Uppercase: boolPtr(false),
			Numeric:   boolPtr(false),
			Special:   boolPtr(false),
		}, crypto.ErrNoCategories},
		{"unsatisfiable", model.Rules{Length: 2, MinLength: 1, MaxAttempts: 3}, crypto.ErrExhausted},
	}

	svc := newTestGeneratorService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Generate(model.GenerateRequest{Rules: tt.rules})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, resp.Password)
		})
	}
}

func TestSettings_ClampsAttempts(t *testing.T) {
	svc := newTestGeneratorService()

	assert.Equal(t, 500, svc.settings(model.Rules{}).MaxAttempts)
	assert.Equal(t, 500, svc.settings(model.Rules{MaxAttempts: 1 << 20}).MaxAttempts)
	assert.Equal(t, 7, svc.settings(model.Rules{MaxAttempts: 7}).MaxAttempts)
}

func TestGenerateBatch(t *testing.T) {
	svc := newTestGeneratorService()

	resp, err := svc.GenerateBatch(model.BatchRequest{Count: 5, Hash: true})
	require.NoError(t, err)

	require.Len(t, resp.Passwords, 5)
	assert.Zero(t, resp.Failed)
	for _, item := range resp.Passwords {
		assert.Empty(t, item.Error)
		assert.Len(t, item.Password, 16)
		assert.NotEmpty(t, item.Hash)
	}
}

func TestGenerateBatch_ExhaustedItems(t *testing.T) {
	svc := newTestGeneratorService()

	resp, err := svc.GenerateBatch(model.BatchRequest{
		Rules: model.Rules{Length: 2, MinLength: 1, MaxAttempts: 2},
		Count: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Failed)
	for _, item := range resp.Passwords {
		assert.Empty(t, item.Password)
		assert.Contains(t, item.Error, "after 2 attempts")
	}
}

func TestGenerateBatch_Errors(t *testing.T) {
	svc := newTestGeneratorService()

	_, err := svc.GenerateBatch(model.BatchRequest{Count: 0})
	assert.ErrorIs(t, err, ErrCountRequired)

	_, err = svc.GenerateBatch(model.BatchRequest{Count: 11})
	assert.ErrorIs(t, err, ErrBatchTooLarge)

	_, err = svc.GenerateBatch(model.BatchRequest{Rules: model.Rules{Length: 3}, Count: 2})
	assert.ErrorIs(t, err, crypto.ErrInvalidLength)
}

func TestValidate(t *testing.T) {
	svc := newTestGeneratorService()

	resp := svc.Validate(model.ValidateRequest{Password: "abcdefgh12"})
	assert.False(t, resp.Valid)
	assert.True(t, resp.LengthOK)
	assert.Equal(t, 10, resp.Length)
	assert.Equal(t, []string{"uppercase", "special"}, resp.Missing)

	resp = svc.Validate(model.ValidateRequest{
		Password: "abcdefgh12",
		Rules:    model.Rules{Uppercase: boolPtr(false), Special: boolPtr(false)},
	})
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Missing)
	assert.NotNil(t, resp.Missing)

	resp = svc.Validate(model.ValidateRequest{Password: "aB3!"})
	assert.False(t, resp.Valid)
	assert.False(t, resp.LengthOK)
}

func TestVerify_Errors(t *testing.T) {
	svc := newTestGeneratorService()

	_, err := svc.Verify(model.VerifyRequest{Hash: "x"})
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = svc.Verify(model.VerifyRequest{Password: "x"})
	assert.ErrorIs(t, err, ErrHashRequired)

	_, err = svc.Verify(model.VerifyRequest{Password: "x", Hash: "not-a-hash"})
	assert.ErrorIs(t, err, crypto.ErrInvalidHashFormat)

	// Costs above the service's own hasher are refused before any key derivation.
	_, err = svc.Verify(model.VerifyRequest{Password: "x", Hash: "$argon2id$v=19$m=65536,t=60,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2U"})
	assert.ErrorIs(t, err, crypto.ErrInvalidHashFormat)
}
