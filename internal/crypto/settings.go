package crypto

import "strings"

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numericChars   = "0123456789"
	specialChars   = `!#$%&*@\`

	// MinLength and MaxLength are the standard bounds applied by DefaultSettings
	// and SettingsWithLength.
	MinLength = 8
	MaxLength = 128

	// UnrestrictedMaxLength is the upper bound used by CustomSettings.
	UnrestrictedMaxLength = 4096

	DefaultLength      = 16
	DefaultMaxAttempts = 10000
)

// Category is a character class that may be required in a password.
type Category int

const (
	Lowercase Category = iota
	Uppercase
	Numeric
	Special
)

var categoryNames = [...]string{"lowercase", "uppercase", "numeric", "special"}

func (c Category) String() string {
	if c < Lowercase || c > Special {
		return "unknown"
	}
	return categoryNames[c]
}

// Chars returns the ASCII characters belonging to the category.
func (c Category) Chars() string {
	switch c {
	case Lowercase:
		return lowercaseChars
	case Uppercase:
		return uppercaseChars
	case Numeric:
		return numericChars
	case Special:
		return specialChars
	}
	return ""
}

// Settings describes the composition rules shared by generation and validation.
// It is a value: every modifier returns an updated copy, so a Settings can be
// shared between goroutines freely.
type Settings struct {
	Length      int
	MinLength   int
	MaxLength   int
	MaxAttempts int

	enabled [4]bool
	charset string
}

// DefaultSettings enables every category with a length of 16 and the standard bounds.
func DefaultSettings() Settings {
	return SettingsWithLength(DefaultLength)
}

// SettingsWithLength is DefaultSettings with the given requested length.
func SettingsWithLength(length int) Settings {
	s := Settings{
		Length:      length,
		MinLength:   MinLength,
		MaxLength:   MaxLength,
		MaxAttempts: DefaultMaxAttempts,
		enabled:     [4]bool{true, true, true, true},
	}
	s.charset = s.buildCharset()
	return s
}

// CustomSettings builds settings from explicit category flags. The length bounds
// are unrestricted relative to the requested length: the minimum is the length
// itself and the maximum is UnrestrictedMaxLength.
func CustomSettings(lower, upper, numeric, special bool, length, maxAttempts int) Settings {
	s := Settings{
		Length:      length,
		MinLength:   length,
		MaxLength:   UnrestrictedMaxLength,
		MaxAttempts: maxAttempts,
		enabled:     [4]bool{lower, upper, numeric, special},
	}
	s.charset = s.buildCharset()
	return s
}

// IncludeLowercase, IncludeUppercase, IncludeNumeric and IncludeSpecial return
// a copy with that category enabled.
func (s Settings) IncludeLowercase() Settings { return s.include(Lowercase) }
func (s Settings) IncludeUppercase() Settings { return s.include(Uppercase) }
func (s Settings) IncludeNumeric() Settings { return s.include(Numeric) }
func (s Settings) IncludeSpecial() Settings { return s.include(Special) }

// include enables c. Categories can only be added, never removed.
func (s Settings) include(c Category) Settings {
	s.enabled[c] = true
	s.charset = s.buildCharset()
	return s
}

// WithLength returns a copy with the requested password length.
func (s Settings) WithLength(n int) Settings {
	s.Length = n
	return s
}

// WithBounds returns a copy with custom minimum and maximum lengths.
func (s Settings) WithBounds(minLen, maxLen int) Settings {
	s.MinLength = minLen
	s.MaxLength = maxLen
	return s
}

// WithMaxAttempts returns a copy with a different generation attempt budget.
func (s Settings) WithMaxAttempts(n int) Settings {
	s.MaxAttempts = n
	return s
}

// Has reports whether category c is enabled.
func (s Settings) Has(c Category) bool {
	if c < Lowercase || c > Special {
		return false
	}
	return s.enabled[c]
}

// Categories returns the enabled categories in canonical order.
func (s Settings) Categories() []Category {
	var out []Category
	for c := Lowercase; c <= Special; c++ {
		if s.enabled[c] {
			out = append(out, c)
		}
	}
	return out
}

// Charset returns the concatenation of every enabled category's characters.
func (s Settings) Charset() string {
	return s.charset
}

func (s Settings) buildCharset() string {
	var b strings.Builder
	for _, c := range s.Categories() {
		b.WriteString(c.Chars())
	}
	return b.String()
}
