// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)

	// Decomposes characters and strips combining marks, so "Beyoncé" and
	// "Beyonce" slug identically.
	deaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slug converts free text to a canonical dash-separated key. Song identity
// is a slug over artist + title, so two metadata reports of the same song
// must produce the same slug.
//
// Normalization rules:
//  1. Fold diacritics to their base characters
//  2. Trim whitespace and lowercase
//  3. Replace spaces, underscores, and slashes with dashes
//  4. Remove non-alphanumeric characters (except dashes)
//  5. Collapse multiple dashes, trim leading/trailing dashes
//
// Examples:
//
//	"Daft Punk One More Time" → "daft-punk-one-more-time"
//	"Beyoncé"                 → "beyonce"
//	"  multi   word "         → "multi-word"
func Slug(input string) string {
	s, _, err := transform.String(deaccenter, input)
	if err != nil {
		s = input
	}

	s = strings.ToLower(strings.TrimSpace(s))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
