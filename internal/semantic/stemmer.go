package semantic

import (
	"strings"

	"github.com/surgebase/porter2"
)

// Stemmer reduces English words to porter2 stems. Words shorter than
// minLength and excluded words pass through unchanged.
type Stemmer struct {
	minLength  int
	exclusions map[string]bool
}

// NewStemmer creates a stemmer. A negative minLength falls back to 3.
func NewStemmer(minLength int, exclusions ...string) *Stemmer {
	if minLength < 0 {
		minLength = 3
	}
	ex := make(map[string]bool, len(exclusions))
	for _, w := range exclusions {
		ex[strings.ToLower(w)] = true
	}
	return &Stemmer{minLength: minLength, exclusions: ex}
}

// Stem returns the stem of word.
func (s *Stemmer) Stem(word string) string {
	if len(word) < s.minLength || s.exclusions[strings.ToLower(word)] {
		return word
	}
	return porter2.Stem(word)
}

// StemAll stems each word, dropping duplicate stems but keeping first-seen order.
func (s *Stemmer) StemAll(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		st := s.Stem(w)
		if st == "" || seen[st] {
			continue
		}
		seen[st] = true
		out = append(out, st)
	}
	return out
}

// SameStem reports whether a and b reduce to the same stem.
func (s *Stemmer) SameStem(a, b string) bool {
	return s.Stem(a) == s.Stem(b)
}
