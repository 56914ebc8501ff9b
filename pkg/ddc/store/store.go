package store

import (
	"context"
	"time"

	"github.com/cognicore/ddc/pkg/ddc/catalog"
)

// Store persists a catalog snapshot and the history of queries run against it
type Store interface {
	Close() error

	// Catalog
	ReplaceCatalog(ctx context.Context, roots []*catalog.Entry) error
	// LoadCatalog returns internalerr.ErrNotFound when no catalog has been
	// stored yet.
	LoadCatalog(ctx context.Context) (*catalog.Tree, error)

	// Query history
	RecordQuery(ctx context.Context, q QueryRecord) error
	RecentQueries(ctx context.Context, k int) ([]QueryRecord, error)
}

// Query kinds
const (
	KindRetrieve = "retrieve"
	KindSearch   = "search"
)

// QueryRecord describes one executed query
type QueryRecord struct {
	ID    string // ULID, sortable by time
	Kind  string // KindRetrieve or KindSearch
	Input string
	Hits  int
	At    time.Time
}

// Node is a flattened catalog entry as stored in a table
type Node struct {
	ID          string
	ParentID    string // empty for main classes
	Position    int
	Number      string
	Description string
}

// Flatten lists every entry of the forest in depth-first display order.
func Flatten(roots []*catalog.Entry) []Node {
	var nodes []Node
	var walk func(entries []*catalog.Entry, parent string)
	walk = func(entries []*catalog.Entry, parent string) {
		for i, e := range entries {
			nodes = append(nodes, Node{
				ID:          e.ID,
				ParentID:    parent,
				Position:    i,
				Number:      e.Number,
				Description: e.Description,
			})
			walk(e.Children, e.ID)
		}
	}
	walk(roots, "")
	return nodes
}

// Build reassembles the main classes from nodes. Within one parent, children
// are ordered by Position. A node whose parent is missing yields an
// *OrphanError.
func Build(nodes []Node) ([]*catalog.Entry, error) {
	byID := make(map[string]*catalog.Entry, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = &catalog.Entry{
			ID:          n.ID,
			Number:      n.Number,
			Description: n.Description,
		}
	}

	sorted := make([]Node, len(nodes))
	copy(sorted, nodes)
	sortNodes(sorted)

	var roots []*catalog.Entry
	for _, n := range sorted {
		e := byID[n.ID]
		if n.ParentID == "" {
			roots = append(roots, e)
			continue
		}
		parent, ok := byID[n.ParentID]
		if !ok {
			return nil, &OrphanError{ID: n.ID, ParentID: n.ParentID}
		}
		parent.Children = append(parent.Children, e)
	}
	return roots, nil
}
