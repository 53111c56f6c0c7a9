package semantic

import "testing"

func TestNewFuzzyMatcherDefaults(t *testing.T) {
	fm := NewFuzzyMatcher(1.5, "")
	if fm.Threshold() != 0.80 {
		t.Errorf("Expected fallback threshold 0.80, got %.2f", fm.Threshold())
	}
	if fm.Algorithm() != AlgorithmJaroWinkler {
		t.Errorf("Expected jaro-winkler, got %s", fm.Algorithm())
	}
	if err := fm.ValidateConfig(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

func TestFuzzyMatcherInvalidAlgorithm(t *testing.T) {
	fm := NewFuzzyMatcher(0.8, "soundex")
	if err := fm.ValidateConfig(); err == nil {
		t.Error("Expected validation error for unknown algorithm")
	}
}

func TestSimilarityBounds(t *testing.T) {
	for _, algo := range []string{AlgorithmJaroWinkler, AlgorithmLevenshtein} {
		fm := NewFuzzyMatcher(0.8, algo)

		if got := fm.Similarity("fireball", "fireball"); got != 1.0 {
			t.Errorf("%s: identical strings should score 1.0, got %.3f", algo, got)
		}
		if got := fm.Similarity("", "fireball"); got != 0.0 {
			t.Errorf("%s: empty string should score 0.0, got %.3f", algo, got)
		}
		near := fm.Similarity("fireball", "firebal")
		far := fm.Similarity("fireball", "shield")
		if near <= far {
			t.Errorf("%s: typo should score above unrelated word (%.3f <= %.3f)", algo, near, far)
		}
	}
}

func TestFindMatchesOrdered(t *testing.T) {
	fm := NewFuzzyMatcher(0.75, AlgorithmJaroWinkler)
	got := fm.FindMatches("fireball", []string{"shield", "fire bolt", "fireball", "firebal"})

	if len(got) < 2 {
		t.Fatalf("Expected at least two matches, got %v", got)
	}
	if got[0].Term != "fireball" {
		t.Errorf("Expected exact match first, got %s", got[0].Term)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Similarity > got[i-1].Similarity {
			t.Errorf("Matches not sorted at %d: %v", i, got)
		}
	}
	for _, m := range got {
		if m.Term == "shield" {
			t.Error("Unrelated candidate should be below threshold")
		}
	}
}
