package services

import (
	"strings"

	"dataguardian/pkg/logger"
)

// turkishFold maps the Turkish-specific letters onto their unaccented
// base letters so keyword matching is diacritic-insensitive.
var turkishFold = strings.NewReplacer(
	"ç", "c", "ğ", "g", "ı", "i", "ö", "o", "ş", "s", "ü", "u",
	"Ç", "c", "Ğ", "g", "İ", "i", "Ö", "o", "Ş", "s", "Ü", "u",
)

// normalizeText lower-cases text and simplifies Turkish characters.
// Empty input yields empty output.
func normalizeText(text string) string {
	return strings.ToLower(turkishFold.Replace(text))
}

// Normalizer canonicalizes free text for consistent keyword matching
type Normalizer struct {
	logger *logger.Logger
}

// NewNormalizer creates a new Normalizer
func NewNormalizer(log *logger.Logger) *Normalizer {
	return &Normalizer{
		logger: log.WithComponent("normalizer"),
	}
}

// Normalize canonicalizes a piece of free text
func (n *Normalizer) Normalize(text string) string {
	return normalizeText(text)
}

// NameTokens splits a full name into normalized tokens of at least three
// characters, the unit the username-similarity rule matches against.
func (n *Normalizer) NameTokens(fullName string) []string {
	var tokens []string
	for _, t := range strings.Fields(normalizeText(fullName)) {
		if len(t) >= 3 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
