package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, DefaultLength, s.Length)
	assert.Equal(t, MinLength, s.MinLength)
	assert.Equal(t, MaxLength, s.MaxLength)
	assert.Equal(t, DefaultMaxAttempts, s.MaxAttempts)
	assert.Equal(t, []Category{Lowercase, Uppercase, Numeric, Special}, s.Categories())
	assert.Equal(t, lowercaseChars+uppercaseChars+numericChars+specialChars, s.Charset())
	assert.Len(t, s.Charset(), 70)
}

func TestSettingsWithLength(t *testing.T) {
	s := SettingsWithLength(42)

	assert.Equal(t, 42, s.Length)
	assert.Equal(t, MinLength, s.MinLength)
	assert.Equal(t, MaxLength, s.MaxLength)
	assert.Len(t, s.Categories(), 4)
}

func TestCustomSettingsBounds(t *testing.T) {
	s := CustomSettings(true, false, true, false, 5, 20)

	assert.Equal(t, 5, s.Length)
	assert.Equal(t, 5, s.MinLength)
	assert.Equal(t, UnrestrictedMaxLength, s.MaxLength)
	assert.Equal(t, 20, s.MaxAttempts)
	assert.Equal(t, lowercaseChars+numericChars, s.Charset())
	assert.True(t, s.Has(Lowercase))
	assert.False(t, s.Has(Uppercase))
}

func TestIncludeIsAdditiveAndCopyOnWrite(t *testing.T) {
	empty := CustomSettings(false, false, false, false, 12, 10)
	require.Empty(t, empty.Charset())
	require.Empty(t, empty.Categories())

	withNumeric := empty.IncludeNumeric()
	assert.Equal(t, numericChars, withNumeric.Charset())
	assert.Empty(t, empty.Charset(), "original settings must not change")

	again := withNumeric.IncludeNumeric()
	assert.Equal(t, withNumeric, again)

	all := withNumeric.IncludeSpecial().IncludeUppercase().IncludeLowercase()
	assert.Equal(t, lowercaseChars+uppercaseChars+numericChars+specialChars, all.Charset(),
		"charset order is canonical regardless of include order")
}

func TestModifiersReturnCopies(t *testing.T) {
	base := DefaultSettings()

	longer := base.WithLength(64)
	bounded := base.WithBounds(1, 4)
	fewer := base.WithMaxAttempts(3)

	assert.Equal(t, DefaultLength, base.Length)
	assert.Equal(t, 64, longer.Length)
	assert.Equal(t, 1, bounded.MinLength)
	assert.Equal(t, 4, bounded.MaxLength)
	assert.Equal(t, 3, fewer.MaxAttempts)
	assert.Equal(t, base.Charset(), longer.Charset())
}

func TestCategory(t *testing.T) {
	tests := []struct {
		cat   Category
		name  string
		chars string
	}{
		{Lowercase, "lowercase", lowercaseChars},
		{Uppercase, "uppercase", uppercaseChars},
		{Numeric, "numeric", numericChars},
		{Special, "special", `!#$%&*@\`},
		{Category(9), "unknown", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.cat.String())
			assert.Equal(t, tt.chars, tt.cat.Chars())
		})
	}

	assert.False(t, DefaultSettings().Has(Category(9)))
}
