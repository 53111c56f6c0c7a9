// Package semantic holds the approximate-matching helpers shared by the index,
// the query engine and the session layer.
//
// FuzzyMatcher wraps go-edlib similarity metrics for "did you mean" style
// suggestions. Stemmer reduces English words to porter2 stems so that the
// index can match "healing" against "heals". LRUCache is a small bounded
// cache used to memoize derived results.
package semantic
