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
	nonWordRe    = regexp.MustCompile(`[\W_]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// StripDiacritics removes combining marks: "Araranguá" -> "Ararangua",
// "ç" -> "c".
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Squeeze trims and collapses internal whitespace runs to single spaces.
func Squeeze(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}

// NormalizeKey folds a string for accent/case-insensitive comparison:
// diacritics stripped, punctuation collapsed to spaces, lowercased.
func NormalizeKey(s string) string {
	s = StripDiacritics(s)
	s = nonWordRe.ReplaceAllString(s, " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// Clip truncates to at most n runes.
func Clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
