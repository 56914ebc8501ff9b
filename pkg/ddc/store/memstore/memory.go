package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/ddc/pkg/ddc/catalog"
	"github.com/cognicore/ddc/pkg/ddc/internalerr"
	"github.com/cognicore/ddc/pkg/ddc/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu      sync.RWMutex
	nodes   []store.Node
	queries []store.QueryRecord
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// ReplaceCatalog discards the stored catalog and saves roots in its place.
func (s *Store) ReplaceCatalog(ctx context.Context, roots []*catalog.Entry) error {
	nodes := store.Flatten(roots)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = nodes
	return nil
}

// LoadCatalog rebuilds the stored catalog as a fresh tree.
func (s *Store) LoadCatalog(ctx context.Context) (*catalog.Tree, error) {
	s.mu.RLock()
	nodes := append([]store.Node(nil), s.nodes...)
	s.mu.RUnlock()

	if len(nodes) == 0 {
		return nil, internalerr.ErrNotFound
	}
	roots, err := store.Build(nodes)
	if err != nil {
		return nil, err
	}
	return catalog.New(roots)
}

// RecordQuery appends q to the history.
func (s *Store) RecordQuery(ctx context.Context, q store.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	return nil
}

// RecentQueries returns up to k queries, newest first.
func (s *Store) RecentQueries(ctx context.Context, k int) ([]store.QueryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if k <= 0 {
		k = 10
	}

	out := append([]store.QueryRecord(nil), s.queries...)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].At.Equal(out[j].At) {
			return out[i].At.After(out[j].At)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}
