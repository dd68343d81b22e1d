package resolver

import (
	"sort"
	"sync"

	"ui_mapping/domain/entities"
)

// Store holds normalized element records grouped by feature context.
// Records are immutable once loaded; Load replaces a whole scope, so
// concurrent readers never observe a partially updated one.
type Store struct {
	mu     sync.RWMutex
	scopes map[string][]entities.ElementRecord
}

// NewStore - creates an empty record store
func NewStore() *Store {
	return &Store{
		scopes: make(map[string][]entities.ElementRecord),
	}
}

// Load - replaces all records of a feature scope. Reloading the same scope
// overwrites prior entries, never appends. Duplicate identifiers within
// the batch are dropped, first occurrence wins. An empty batch still
// registers the scope as loaded.
func (s *Store) Load(featureContext string, records []entities.ElementRecord) {
	deduped := make([]entities.ElementRecord, 0, len(records))
	seen := make(map[string]bool, len(records))
	for _, rec := range records {
		if seen[rec.Identifier] {
			continue
		}
		seen[rec.Identifier] = true
		deduped = append(deduped, rec)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes[featureContext] = deduped
}

// Query - returns the records visible to one resolution call. With a
// feature context only that scope is returned; with an empty context the
// full global set is returned in deterministic scope order. The result is
// a copy, safe to keep across a subsequent Load.
func (s *Store) Query(featureContext string) []entities.ElementRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if featureContext != "" {
		scope := s.scopes[featureContext]
		out := make([]entities.ElementRecord, len(scope))
		copy(out, scope)
		return out
	}

	names := make([]string, 0, len(s.scopes))
	for name := range s.scopes {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []entities.ElementRecord
	for _, name := range names {
		out = append(out, s.scopes[name]...)
	}
	return out
}

// Loaded - reports whether any scope has been loaded, even an empty one
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scopes) > 0
}

// Contexts - returns the loaded feature contexts in sorted order
func (s *Store) Contexts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.scopes))
	for name := range s.scopes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
