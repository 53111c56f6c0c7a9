package query

import (
	"sort"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/semantic"
	"github.com/standardbeagle/grimoire/internal/textnorm"
)

// SuggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const SuggestThreshold = 0.78

// Suggestion is a "did you mean" candidate.
type Suggestion struct {
	Key   string             `json:"key"`
	Name  catalog.LangString `json:"name"`
	Score float64            `json:"score"`
}

// Suggest returns up to n records of kind whose names resemble q, best first.
// It is meant for empty result pages.
func Suggest(records []catalog.Record, kind catalog.Kind, q string, n int) []Suggestion {
	needle := textnorm.Key(q)
	if needle == "" || n <= 0 {
		return nil
	}

	fm := semantic.NewFuzzyMatcher(SuggestThreshold, semantic.AlgorithmJaroWinkler)

	var out []Suggestion
	for _, r := range records {
		if kind != "" && r.Kind() != kind {
			continue
		}
		name := r.DisplayName()
		best := 0.0
		for _, candidate := range []string{name.PT, name.EN} {
			if k := textnorm.Key(candidate); k != "" {
				if sim := fm.Similarity(needle, k); sim > best {
					best = sim
				}
			}
		}
		if best >= fm.Threshold() {
			out = append(out, Suggestion{Key: r.Key(), Name: name, Score: best})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Key < out[j].Key
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
