package catalog

import (
	"fmt"
	"strings"

	"github.com/cognicore/ddc/pkg/ddc/internalerr"
)

// Unassigned is the description of a reserved, unused slot in the catalog.
const Unassigned = "Unassigned"

// Entry is one class of the catalog
type Entry struct {
	ID          string   `json:"id" yaml:"id"`
	Number      string   `json:"number" yaml:"number"`
	Description string   `json:"description" yaml:"description"`
	Children    []*Entry `json:"subordinates,omitempty" yaml:"subordinates,omitempty"`
}

// Record returns a copy of the entry without its children.
func (e *Entry) Record() Record {
	return Record{
		ID:          e.ID,
		Number:      e.Number,
		Description: e.Description,
	}
}

// HasChildren reports whether the entry has any subordinate classes.
func (e *Entry) HasChildren() bool {
	return len(e.Children) > 0
}

// Record is the display-safe form of an Entry
type Record struct {
	ID          string `json:"id" yaml:"id"`
	Number      string `json:"number" yaml:"number"`
	Description string `json:"description" yaml:"description"`
}

// Tree is the immutable catalog hierarchy. Nothing in this module mutates
// a Tree after New returns, so it can be shared by concurrent queries.
type Tree struct {
	roots []*Entry
	byID  map[string]*Entry
}

// New builds a Tree from the ordered main classes.
func New(roots []*Entry) (*Tree, error) {
	t := &Tree{
		roots: roots,
		byID:  make(map[string]*Entry),
	}
	if err := t.index(roots, 0); err != nil {
		return nil, err
	}
	return t, nil
}

// Empty returns a Tree with no entries.
func Empty() *Tree {
	return &Tree{byID: map[string]*Entry{}}
}

// maxDepth bounds index recursion so a cyclic input fails instead of
// overflowing the stack.
const maxDepth = 64

func (t *Tree) index(entries []*Entry, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d levels", internalerr.ErrInvalidCatalog, maxDepth)
	}
	for _, e := range entries {
		if e == nil {
			return fmt.Errorf("%w: nil entry", internalerr.ErrInvalidCatalog)
		}
		if e.ID == "" {
			return fmt.Errorf("%w: entry %q has no id", internalerr.ErrInvalidCatalog, e.Number)
		}
		if _, dup := t.byID[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", internalerr.ErrInvalidCatalog, e.ID)
		}
		t.byID[e.ID] = e
		if err := t.index(e.Children, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Roots returns the main classes in display order.
func (t *Tree) Roots() []*Entry {
	return t.roots
}

// Lookup returns the entry with the given id.
func (t *Tree) Lookup(id string) (*Entry, bool) {
	e, ok := t.byID[id]
	return e, ok
}

// Len returns the number of entries in the tree.
func (t *Tree) Len() int {
	return len(t.byID)
}

// Level infers the depth of a class from its id: "1xx" is 0, "11x" is 1,
// "110" is 2 and subdivisions such as "641.5" are 3.
func Level(id string) int {
	if i := strings.IndexByte(id, 'x'); i >= 0 {
		if i == 0 {
			return 0
		}
		return i - 1
	}
	if strings.Contains(id, ".") {
		return 3
	}
	return 2
}
