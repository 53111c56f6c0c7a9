// Package pack keeps the user's selection of spells and features.
package pack

import (
	"sync"

	"github.com/standardbeagle/grimoire/internal/catalog"
)

// Item identifies one selected record.
type Item struct {
	Kind catalog.Kind `json:"kind"`
	ID   string       `json:"id"`
}

// Key returns the composite record key of the item.
func (it Item) Key() string { return catalog.Key(it.Kind, it.ID) }

// ItemOf builds the item that selects r.
func ItemOf(r catalog.Record) Item {
	return Item{Kind: r.Kind(), ID: r.RecordID()}
}

// Store is an ordered, duplicate-free selection. The zero value is not
// usable; call New.
type Store struct {
	mu    sync.RWMutex
	items []Item
	index map[Item]bool
}

// New returns an empty store.
func New() *Store {
	return &Store{index: make(map[Item]bool)}
}

// Add appends it unless it is already selected. It reports whether the store
// changed.
func (s *Store) Add(it Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index[it] {
		return false
	}
	s.index[it] = true
	s.items = append(s.items, it)
	return true
}

// Remove drops it, keeping the order of the rest.
func (s *Store) Remove(it Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.index[it] {
		return false
	}
	delete(s.index, it)
	for i, cur := range s.items {
		if cur == it {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return true
}

// Toggle adds it when absent and removes it otherwise. It reports whether it
// is selected afterwards.
func (s *Store) Toggle(it Item) bool {
	if s.Remove(it) {
		return false
	}
	s.Add(it)
	return true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.index = make(map[Item]bool)
}

func (s *Store) IsSelected(it Item) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index[it]
}

// Items returns the selection in insertion order.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Resolve maps the selection onto the given records, in selection order.
// Items whose record no longer exists are skipped.
func (s *Store) Resolve(spells []*catalog.Spell, features []*catalog.Feature) []catalog.Record {
	byKey := make(map[string]catalog.Record, len(spells)+len(features))
	for _, sp := range spells {
		byKey[sp.Key()] = sp
	}
	for _, f := range features {
		byKey[f.Key()] = f
	}

	items := s.Items()
	out := make([]catalog.Record, 0, len(items))
	for _, it := range items {
		if r, ok := byKey[it.Key()]; ok {
			out = append(out, r)
		}
	}
	return out
}
