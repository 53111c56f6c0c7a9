// Package textnorm canonicalizes strings for matching.
//
// Every component that compares user input against record text (the tag
// classifier, the search index and the exact-name re-ranking in the query
// engine) goes through Normalize, so an accented Portuguese term and its
// unaccented spelling always land on the same key.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, strips combining diacritical marks and trims
// surrounding whitespace. It is idempotent and never fails: if the Unicode
// transform reports an error the result degrades to a trimmed lowercase copy.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Lowercase first: some uppercase letters (e.g. U+0130) lowercase into a
	// base letter plus a combining mark, which the fold below must still see.
	lower := strings.ToLower(s)

	folded, _, err := transform.String(foldChain(), lower)
	if err != nil {
		return strings.TrimSpace(lower)
	}
	return strings.TrimSpace(folded)
}

// foldChain returns a fresh transformer; transform.Chain values carry state and
// must not be shared between goroutines.
func foldChain() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Key normalizes s and collapses internal runs of whitespace to one space.
// Used for dictionary lookups where "descanso   curto" and "Descanso Curto"
// must resolve to the same entry.
func Key(s string) string {
	return strings.Join(strings.Fields(Normalize(s)), " ")
}

// Tokens splits normalized text into letter/digit runs. Everything else
// (punctuation, hyphens, markup) acts as a separator.
func Tokens(s string) []string {
	return strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ContainsAll reports whether every token appears somewhere in text.
// Both arguments are expected to be normalized already.
func ContainsAll(text string, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !strings.Contains(text, tok) {
			return false
		}
	}
	return true
}
