package semantic

import (
	"fmt"
	"sort"

	"github.com/hbollon/go-edlib"
)

// Supported similarity algorithms.
const (
	AlgorithmJaroWinkler = "jaro-winkler"
	AlgorithmLevenshtein = "levenshtein"
)

// FuzzyMatcher scores string similarity in [0, 1].
type FuzzyMatcher struct {
	threshold float64
	algorithm string
}

// NewFuzzyMatcher creates a matcher. Out of range thresholds fall back to 0.80
// and an empty algorithm to Jaro-Winkler.
func NewFuzzyMatcher(threshold float64, algorithm string) *FuzzyMatcher {
	if threshold < 0 || threshold > 1 {
		threshold = 0.80
	}
	if algorithm == "" {
		algorithm = AlgorithmJaroWinkler
	}
	return &FuzzyMatcher{threshold: threshold, algorithm: algorithm}
}

// Threshold returns the minimum similarity for Match.
func (fm *FuzzyMatcher) Threshold() float64 { return fm.threshold }

// Algorithm returns the configured algorithm name.
func (fm *FuzzyMatcher) Algorithm() string { return fm.algorithm }

// Match reports whether a and b are at least Threshold similar.
func (fm *FuzzyMatcher) Match(a, b string) bool {
	return fm.Similarity(a, b) >= fm.threshold
}

// Similarity returns the similarity score between two strings.
func (fm *FuzzyMatcher) Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	algo := edlib.JaroWinkler
	if fm.algorithm == AlgorithmLevenshtein {
		algo = edlib.Levenshtein
	}

	// StringsSimilarity normalizes both metrics into [0, 1].
	score, err := edlib.StringsSimilarity(a, b, algo)
	if err != nil {
		return 0.0
	}
	return float64(score)
}

// FuzzyMatch is a candidate with its similarity to the target.
type FuzzyMatch struct {
	Term       string
	Similarity float64
}

// FindMatches returns the candidates at or above Threshold, best first.
// Equal scores keep candidate order.
func (fm *FuzzyMatcher) FindMatches(target string, candidates []string) []FuzzyMatch {
	var matches []FuzzyMatch
	for _, c := range candidates {
		if sim := fm.Similarity(target, c); sim >= fm.threshold {
			matches = append(matches, FuzzyMatch{Term: c, Similarity: sim})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

// ValidateConfig checks the threshold and algorithm.
func (fm *FuzzyMatcher) ValidateConfig() error {
	if fm.threshold < 0 || fm.threshold > 1 {
		return fmt.Errorf("invalid threshold: %.2f (must be 0-1)", fm.threshold)
	}
	switch fm.algorithm {
	case AlgorithmJaroWinkler, AlgorithmLevenshtein:
		return nil
	}
	return fmt.Errorf("invalid algorithm: %s (must be %s or %s)", fm.algorithm, AlgorithmJaroWinkler, AlgorithmLevenshtein)
}
