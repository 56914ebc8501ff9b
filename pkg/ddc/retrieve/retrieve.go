// Package retrieve lists the classes at one level of the catalog that fall
// under a digit prefix.
package retrieve

import (
	"github.com/cognicore/ddc/pkg/ddc/catalog"
	"github.com/cognicore/ddc/pkg/ddc/pattern"
	"github.com/cognicore/ddc/pkg/ddc/results"
)

// Retrieve walks the tree one level per pattern digit and returns a path for
// every entry at the pattern's depth. For a complete pattern such as "641"
// the paths end in the subdivisions of that class.
func Retrieve(tree *catalog.Tree, p pattern.Pattern) []results.Path {
	out := []results.Path{}
	descend(tree.Roots(), p, 0, nil, &out)
	return out
}

func descend(entries []*catalog.Entry, p pattern.Pattern, level int, prefix results.Path, out *[]results.Path) {
	for _, e := range entries {
		// full slice expression so siblings never share a backing array
		path := append(prefix[:len(prefix):len(prefix)], e)

		if level == p.Depth() {
			*out = append(*out, path)
			continue
		}
		if !digitMatches(e, p, level) {
			continue
		}
		descend(e.Children, p, level+1, path, out)
	}
}

func digitMatches(e *catalog.Entry, p pattern.Pattern, level int) bool {
	return len(e.Number) > level && e.Number[level] == p.Digit(level)
}
