// Package locale expands a base Result into locale-translated variants.
// The expander owns the set of target locales and the locale→name
// mapping; the translation itself is delegated to a Translator.
package locale

import (
	"fmt"

	"beacon/internal/report"
)

// DefaultLocales is the fixed set of locale variants produced alongside
// the base report.
var DefaultLocales = []string{"es", "ja", "ar"}

// Translator produces a translated copy of a Result for a locale tag.
// Supported tags are a programming-time constant; passing an
// unsupported tag is a precondition violation and fails the expansion.
type Translator interface {
	Translate(r *report.Result, localeTag string) (*report.Result, error)
}

// Variant is one locale-translated copy, named for downstream output
// paths.
type Variant struct {
	Locale string
	Name   string
	Result *report.Result
}

// Expand produces one translated deep copy of base per locale tag. The
// base Result is cloned before each translation and never mutated.
// Translation failures propagate unmodified.
func Expand(base *report.Result, locales []string, tr Translator) ([]Variant, error) {
	variants := make([]Variant, 0, len(locales))
	for _, tag := range locales {
		translated, err := tr.Translate(base.Clone(), tag)
		if err != nil {
			return nil, fmt.Errorf("locale: translate %q: %w", tag, err)
		}
		variants = append(variants, Variant{Locale: tag, Name: tag, Result: translated})
	}
	return variants, nil
}
