package crypto

import (
	"regexp"
	"unicode/utf8"
)

var categoryPatterns = [...]*regexp.Regexp{
	Lowercase: regexp.MustCompile(`[a-z]`),
	Uppercase: regexp.MustCompile(`[A-Z]`),
	Numeric:   regexp.MustCompile(`[0-9]`),
	Special:   regexp.MustCompile(`[!#$%&*@\\]`),
}

// Report is the outcome of checking a candidate against Settings.
type Report struct {
	Length   int
	LengthOK bool
	Missing  []Category
}

// Valid reports whether the candidate satisfied every rule.
func (r Report) Valid() bool {
	return r.LengthOK && len(r.Missing) == 0
}

// Inspect checks candidate against the enabled categories and the length bounds
// of s. Disabled categories are not checked.
func Inspect(s Settings, candidate string) Report {
	n := utf8.RuneCountInString(candidate)
	r := Report{
		Length:   n,
		LengthOK: n >= s.MinLength && n <= s.MaxLength,
	}
	for _, c := range s.Categories() {
		if !categoryPatterns[c].MatchString(candidate) {
			r.Missing = append(r.Missing, c)
		}
	}
	return r
}

// Validate reports whether candidate satisfies s.
func Validate(s Settings, candidate string) bool {
	return Inspect(s, candidate).Valid()
}
