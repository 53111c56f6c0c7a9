// Package session owns the current catalog snapshot: the loaded records and
// the structures derived from them (tag assignment and search index).
//
// Derived structures are rebuilt only when the record set's content
// fingerprint changes. Searches run against whichever snapshot is current;
// a reload swaps the snapshot atomically and the most recently started load
// wins.
package session

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/grimoire/internal/catalog"
	"github.com/standardbeagle/grimoire/internal/debug"
	"github.com/standardbeagle/grimoire/internal/index"
	"github.com/standardbeagle/grimoire/internal/query"
	"github.com/standardbeagle/grimoire/internal/semantic"
	"github.com/standardbeagle/grimoire/internal/tags"
)

const resultCacheSize = 256

// Snapshot is one immutable generation of the catalog.
type Snapshot struct {
	Spells      []*catalog.Spell
	Features    []*catalog.Feature
	Records     []catalog.Record
	Assignment  tags.Assignment
	Index       *index.Index
	Fingerprint uint64
	LoadedAt    time.Time

	byKey map[string]catalog.Record
}

// Record looks a record up by composite key.
func (s *Snapshot) Record(key string) (catalog.Record, bool) {
	r, ok := s.byKey[key]
	return r, ok
}

// Catalog is safe for concurrent use.
type Catalog struct {
	opts    index.Options
	stemmer *semantic.Stemmer

	mu      sync.RWMutex
	snap    *Snapshot
	applied uint64

	seq   atomic.Uint64
	cache *semantic.LRUCache[uint64, query.Result]
}

// New creates an empty catalog whose indexes use opts.
func New(opts index.Options) *Catalog {
	return &Catalog{
		opts:    opts,
		stemmer: semantic.NewStemmer(3),
		cache:   semantic.NewLRUCache[uint64, query.Result](resultCacheSize),
		snap:    emptySnapshot(),
	}
}

func emptySnapshot() *Snapshot {
	return &Snapshot{Assignment: tags.Assignment{}, byKey: map[string]catalog.Record{}}
}

// Fingerprint hashes the canonical JSON form of a record set.
func Fingerprint(spells []*catalog.Spell, features []*catalog.Feature) (uint64, error) {
	d := xxhash.New()
	enc := json.NewEncoder(d)
	if err := enc.Encode(spells); err != nil {
		return 0, fmt.Errorf("fingerprint spells: %w", err)
	}
	if err := enc.Encode(features); err != nil {
		return 0, fmt.Errorf("fingerprint features: %w", err)
	}
	return d.Sum64(), nil
}

// Load installs a new record set. It reports false without rebuilding when
// the content is unchanged, or when a later Load already won the swap.
func (c *Catalog) Load(spells []*catalog.Spell, features []*catalog.Feature) (bool, error) {
	gen := c.seq.Add(1)

	fp, err := Fingerprint(spells, features)
	if err != nil {
		return false, err
	}

	c.mu.RLock()
	same := c.snap.Index != nil && c.snap.Fingerprint == fp
	c.mu.RUnlock()
	if same {
		debug.LogLoad("record set unchanged (%016x), keeping snapshot\n", fp)
		return false, nil
	}

	snap, err := c.build(spells, features, fp)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	if gen < c.applied {
		c.mu.Unlock()
		_ = snap.Index.Close()
		debug.LogLoad("discarding superseded load %d\n", gen)
		return false, nil
	}
	old := c.snap
	c.snap = snap
	c.applied = gen
	c.cache.Clear()
	c.mu.Unlock()

	if old.Index != nil {
		_ = old.Index.Close()
	}

	debug.Event("LOAD").
		Int("spells", len(spells)).
		Int("features", len(features)).
		Str("fingerprint", fmt.Sprintf("%016x", fp)).
		Msg("snapshot swapped")
	return true, nil
}

func (c *Catalog) build(spells []*catalog.Spell, features []*catalog.Feature, fp uint64) (*Snapshot, error) {
	records := append(catalog.Records(spells), catalog.Records(features)...)
	assignment := tags.BuildAssignment(records)

	ix, err := index.Build(index.ToDocuments(records, assignment, c.stemmer), c.opts)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]catalog.Record, len(records))
	for _, r := range records {
		byKey[r.Key()] = r
	}

	return &Snapshot{
		Spells:      spells,
		Features:    features,
		Records:     records,
		Assignment:  assignment,
		Index:       ix,
		Fingerprint: fp,
		LoadedAt:    time.Now(),
		byKey:       byKey,
	}, nil
}

// Snapshot returns the current generation. Treat it as read-only.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Search runs f against the current snapshot, memoizing results per filter.
func (c *Catalog) Search(f query.Filter) query.Result {
	key, keyErr := filterKey(f)

	c.mu.RLock()
	defer c.mu.RUnlock()

	if keyErr == nil {
		if res, ok := c.cache.Get(key); ok {
			return res
		}
	}

	var searcher query.Searcher
	if c.snap.Index != nil {
		searcher = c.snap.Index
	}
	res := query.Search(c.snap.Records, searcher, c.snap.Assignment, f)
	if keyErr == nil {
		c.cache.Set(key, res)
	}
	return res
}

func filterKey(f query.Filter) (uint64, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}

// Facets returns the facet values of kind in the current snapshot.
func (c *Catalog) Facets(kind catalog.Kind) query.Facets {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query.ComputeFacets(c.snap.Records, c.snap.Assignment, kind)
}

// PruneState drops selections of st that the current snapshot cannot satisfy.
func (c *Catalog) PruneState(st *query.State) bool {
	return st.Prune(c.Facets(st.Filter().Kind))
}

// Suggest proposes record names close to q.
func (c *Catalog) Suggest(kind catalog.Kind, q string, n int) []query.Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query.Suggest(c.snap.Records, kind, q, n)
}

// Tags returns the record and its derived tags for a composite key.
func (c *Catalog) Tags(key string) (catalog.Record, []tags.TagKey, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.snap.Record(key)
	if !ok {
		return nil, nil, false
	}
	return r, c.snap.Assignment[key], true
}

// TagCounts returns how many records of kind (all kinds when empty) carry
// each tag.
func (c *Catalog) TagCounts(kind catalog.Kind) map[tags.TagKey]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := make(map[tags.TagKey]int)
	for _, r := range c.snap.Records {
		if kind != "" && r.Kind() != kind {
			continue
		}
		for _, t := range c.snap.Assignment[r.Key()] {
			counts[t]++
		}
	}
	return counts
}

// Len returns the number of records in the current snapshot.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snap.Records)
}

// Close releases the current index.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.snap
	c.snap = emptySnapshot()
	c.cache.Clear()
	return old.Index.Close()
}
