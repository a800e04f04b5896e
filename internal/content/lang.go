// Package content loads and validates the per-language JSON documents that back the site and the CV.
package content

import (
	"fmt"
	"strings"
)

// Lang is a supported content language.
type Lang string

// Supported languages.
const (
	English Lang = "en"
	French  Lang = "fr"

	// DefaultLang is served when a requested language has no content.
	DefaultLang = English
)

// SupportedLangs returns every supported language in generation order.
func SupportedLangs() []Lang {
	return []Lang{English, French}
}

// ParseLang converts a language code into a Lang.
// The match is case-insensitive; anything outside the closed set is an error.
func ParseLang(s string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case French:
		return French, nil
	}
	return "", &UnsupportedLangError{Code: s}
}

// Valid reports whether l is one of the supported languages.
func (l Lang) Valid() bool {
	return l == English || l == French
}

func (l Lang) String() string {
	return string(l)
}

// UnsupportedLangError is returned when a language code is outside the supported set.
type UnsupportedLangError struct {
	Code string
}

func (e *UnsupportedLangError) Error() string {
	return fmt.Sprintf("unsupported language %q (expected one of: en, fr)", e.Code)
}
