package ddc

import (
	"go.uber.org/zap"

	"github.com/cognicore/ddc/pkg/ddc/catalog"
	"github.com/cognicore/ddc/pkg/ddc/pattern"
	"github.com/cognicore/ddc/pkg/ddc/results"
	"github.com/cognicore/ddc/pkg/ddc/retrieve"
	"github.com/cognicore/ddc/pkg/ddc/search"
)

// DDC answers prefix and free-text queries against a Dewey Decimal catalog.
// It keeps no state between calls and is safe for concurrent use.
type DDC struct {
	tree   *catalog.Tree
	proc   *results.Processor
	logger *zap.Logger
}

// Options configures a DDC instance
type Options struct {
	// Tree is the catalog to query; nil means an empty catalog.
	Tree *catalog.Tree
	// Reserved lists descriptions of blank slots; nil uses
	// results.DefaultReserved.
	Reserved []string
	Logger   *zap.Logger
}

// New creates a DDC over the given catalog tree
func New(opts Options) *DDC {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tree := opts.Tree
	if tree == nil {
		tree = catalog.Empty()
	}
	return &DDC{
		tree:   tree,
		proc:   results.NewProcessor(opts.Reserved),
		logger: logger,
	}
}

// Tree returns the catalog the instance queries.
func (d *DDC) Tree() *catalog.Tree {
	return d.tree
}

// Retrieve returns the classes at one level of the hierarchy. "xxx" lists
// the main classes, "1xx" the divisions of class 100, "11x" the sections of
// division 110, and a complete number such as "641" its subdivisions.
//
// In each row the last record is the result and the records before it are
// the headings above it that differ from the previous row. An invalid
// pattern yields a *pattern.InvalidPatternError; a valid pattern that
// matches nothing yields an empty, non-nil slice.
func (d *DDC) Retrieve(p string) ([]results.Row, error) {
	resolved, err := pattern.Resolve(p)
	if err != nil {
		d.logger.Debug("retrieve", zap.String("pattern", p), zap.Error(err))
		return nil, err
	}

	rows := d.proc.Process(retrieve.Retrieve(d.tree, resolved))
	d.logger.Debug("retrieve",
		zap.String("pattern", p),
		zap.Int("depth", resolved.Depth()),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// Search returns every entry whose description or number contains term,
// ignoring case. Rows are shaped as in Retrieve. ok is false when term is
// empty or nothing matched.
func (d *DDC) Search(term string) (rows []results.Row, ok bool) {
	if term == "" {
		return nil, false
	}

	rows = d.proc.Process(search.Search(d.tree.Roots(), term))
	d.logger.Debug("search", zap.String("term", term), zap.Int("rows", len(rows)))
	if len(rows) == 0 {
		return nil, false
	}
	return rows, true
}
