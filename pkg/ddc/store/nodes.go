package store

import (
	"fmt"
	"sort"

	"github.com/cognicore/ddc/pkg/ddc/internalerr"
)

// OrphanError reports a stored entry whose parent is missing
type OrphanError struct {
	ID       string
	ParentID string
}

func (e *OrphanError) Error() string {
	return fmt.Sprintf("entry %q refers to missing parent %q", e.ID, e.ParentID)
}

func (e *OrphanError) Unwrap() error {
	return internalerr.ErrInvalidCatalog
}

func sortNodes(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].ParentID != nodes[j].ParentID {
			return nodes[i].ParentID < nodes[j].ParentID
		}
		return nodes[i].Position < nodes[j].Position
	})
}
