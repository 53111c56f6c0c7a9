// Package index builds the full-text search index over the catalog.
//
// One in-memory bleve index holds both record kinds; callers partition hits
// by Kind afterwards. The index is immutable once built: a new record set
// means a new Index.
package index

import (
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/debug"
	gerrors "github.com/standardbeagle/grimoire/internal/errors"
	"github.com/standardbeagle/grimoire/internal/semantic"
	"github.com/standardbeagle/grimoire/internal/textnorm"
)

// Boost multipliers applied to the per-field weight for looser match kinds.
const (
	prefixFactor = 0.5
	fuzzyFactor  = 0.3
	stemFactor   = 0.5
)

// DefaultFuzziness tolerates roughly one edit per five characters.
const DefaultFuzziness = 0.2

// maxEdits is the largest edit distance bleve's fuzzy query supports.
const maxEdits = 2

// Weights are the per-field boosts. Their ordering is a contract:
// NamePT > NameEN > BodyPT, BodyEN > Classes, Keywords.
type Weights struct {
	NamePT   float64 `toml:"name_pt"`
	NameEN   float64 `toml:"name_en"`
	BodyPT   float64 `toml:"body_pt"`
	BodyEN   float64 `toml:"body_en"`
	Classes  float64 `toml:"classes"`
	Keywords float64 `toml:"keywords"`
}

// DefaultWeights returns the stock field boosts.
func DefaultWeights() Weights {
	return Weights{NamePT: 4, NameEN: 3, BodyPT: 2, BodyEN: 2, Classes: 1, Keywords: 1}
}

// Validate reports a boost set that breaks the field ordering.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"name_pt": w.NamePT, "name_en": w.NameEN, "body_pt": w.BodyPT,
		"body_en": w.BodyEN, "classes": w.Classes, "keywords": w.Keywords,
	} {
		if v <= 0 {
			return fmt.Errorf("boost %s must be positive, got %g", name, v)
		}
	}
	if w.NamePT <= w.NameEN {
		return fmt.Errorf("boost name_pt (%g) must exceed name_en (%g)", w.NamePT, w.NameEN)
	}
	if w.NameEN <= math.Max(w.BodyPT, w.BodyEN) {
		return fmt.Errorf("boost name_en (%g) must exceed body boosts (%g, %g)", w.NameEN, w.BodyPT, w.BodyEN)
	}
	if math.Min(w.BodyPT, w.BodyEN) <= math.Max(w.Classes, w.Keywords) {
		return fmt.Errorf("body boosts (%g, %g) must exceed classes/keywords (%g, %g)", w.BodyPT, w.BodyEN, w.Classes, w.Keywords)
	}
	return nil
}

func (w Weights) fields() []fieldBoost {
	return []fieldBoost{
		{fieldNamePT, w.NamePT},
		{fieldNameEN, w.NameEN},
		{fieldBodyPT, w.BodyPT},
		{fieldBodyEN, w.BodyEN},
		{fieldClasses, w.Classes},
		{fieldKeywords, w.Keywords},
	}
}

type fieldBoost struct {
	field string
	boost float64
}

// Options configures matching.
type Options struct {
	Weights Weights
	// Fuzzy is the edit-distance factor per character; 0 disables fuzzy matching.
	Fuzzy  float64
	Prefix bool
}

// DefaultOptions returns prefix matching, fuzziness 0.2 and the stock weights.
func DefaultOptions() Options {
	return Options{Weights: DefaultWeights(), Fuzzy: DefaultFuzziness, Prefix: true}
}

// Fuzziness returns the edit distance tolerated for term.
func Fuzziness(term string, factor float64) int {
	if factor <= 0 {
		return 0
	}
	n := int(math.Round(float64(utf8.RuneCountInString(term)) * factor))
	if n > maxEdits {
		return maxEdits
	}
	return n
}

// Hit is one index match.
type Hit struct {
	Key   string
	Kind  catalog.Kind
	ID    string
	Score float64
}

// Index is an immutable searchable view of one record set.
type Index struct {
	bleve   bleve.Index
	docs    []Document
	byKey   map[string]int
	opts    Options
	stemmer *semantic.Stemmer
}

// Build indexes docs. Duplicate keys keep the first document.
func Build(docs []Document, opts Options) (*Index, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, gerrors.NewIndexError("build", err)
	}

	bi, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, gerrors.NewIndexError("create", err)
	}

	ix := &Index{
		bleve:   bi,
		docs:    make([]Document, 0, len(docs)),
		byKey:   make(map[string]int, len(docs)),
		opts:    opts,
		stemmer: semantic.NewStemmer(3),
	}

	batch := bi.NewBatch()
	for _, d := range docs {
		if _, dup := ix.byKey[d.Key]; dup {
			debug.LogIndex("skipping duplicate document %s\n", d.Key)
			continue
		}
		ix.byKey[d.Key] = len(ix.docs)
		ix.docs = append(ix.docs, d)
		if err := batch.Index(d.Key, d.fields()); err != nil {
			_ = bi.Close()
			return nil, gerrors.NewIndexError("index "+d.Key, err)
		}
	}
	if err := bi.Batch(batch); err != nil {
		_ = bi.Close()
		return nil, gerrors.NewIndexError("batch", err)
	}

	debug.Event("INDEX").Int("documents", len(ix.docs)).Float64("fuzzy", opts.Fuzzy).Bool("prefix", opts.Prefix).Msg("index built")
	return ix, nil
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int { return len(ix.docs) }

// Documents returns the indexed documents in build order.
func (ix *Index) Documents() []Document {
	out := make([]Document, len(ix.docs))
	copy(out, ix.docs)
	return out
}

// Document looks a document up by composite key.
func (ix *Index) Document(key string) (Document, bool) {
	i, ok := ix.byKey[key]
	if !ok {
		return Document{}, false
	}
	return ix.docs[i], true
}

// Options returns the matching options the index was built with.
func (ix *Index) Options() Options { return ix.opts }

// Close releases the underlying bleve index.
func (ix *Index) Close() error {
	if ix == nil || ix.bleve == nil {
		return nil
	}
	return ix.bleve.Close()
}

// Search runs text against the index.
func (ix *Index) Search(text string) ([]Hit, error) {
	return ix.SearchContext(context.Background(), text)
}

// SearchContext returns every document matching any token of text, best score
// first. A query without tokens matches nothing.
func (ix *Index) SearchContext(ctx context.Context, text string) ([]Hit, error) {
	tokens := textnorm.Tokens(text)
	if len(tokens) == 0 || len(ix.docs) == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(ix.buildQuery(tokens), len(ix.docs), 0, false)
	res, err := ix.bleve.SearchInContext(ctx, req)
	if err != nil {
		return nil, gerrors.NewSearchError(text, err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		d, ok := ix.Document(h.ID)
		if !ok {
			continue
		}
		hits = append(hits, Hit{Key: d.Key, Kind: d.Kind, ID: d.ID, Score: h.Score})
	}
	debug.LogSearch("index query %q: %d hits of %d\n", text, len(hits), res.Total)
	return hits, nil
}

// buildQuery ORs, for every token and field, an exact term query at full
// boost with cheaper prefix and fuzzy variants.
func (ix *Index) buildQuery(tokens []string) query.Query {
	var clauses []query.Query
	for _, tok := range tokens {
		edits := Fuzziness(tok, ix.opts.Fuzzy)
		for _, fb := range ix.opts.Weights.fields() {
			tq := bleve.NewTermQuery(tok)
			tq.SetField(fb.field)
			tq.SetBoost(fb.boost)
			clauses = append(clauses, tq)

			if ix.opts.Prefix {
				pq := bleve.NewPrefixQuery(tok)
				pq.SetField(fb.field)
				pq.SetBoost(fb.boost * prefixFactor)
				clauses = append(clauses, pq)
			}
			if edits > 0 {
				fq := bleve.NewFuzzyQuery(tok)
				fq.SetField(fb.field)
				fq.SetFuzziness(edits)
				fq.SetBoost(fb.boost * fuzzyFactor)
				clauses = append(clauses, fq)
			}
		}

		if stem := ix.stemmer.Stem(tok); stem != tok {
			sq := bleve.NewTermQuery(stem)
			sq.SetField(fieldKeywords)
			sq.SetBoost(ix.opts.Weights.Keywords * stemFactor)
			clauses = append(clauses, sq)
		}
	}
	return bleve.NewDisjunctionQuery(clauses...)
}
