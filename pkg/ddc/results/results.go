package results

import (
	"github.com/cognicore/ddc/pkg/ddc/catalog"
)

// Path is a raw result row: the ancestors of a match, root first, followed
// by the match itself.
type Path []*catalog.Entry

// Last returns the terminal entry of the path, or nil when it is empty.
func (p Path) Last() *catalog.Entry {
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}

// Row is a processed result row ready for display.
type Row []catalog.Record

// DefaultReserved lists the descriptions that mark blank catalog slots.
var DefaultReserved = []string{"", catalog.Unassigned}

// Processor turns raw paths into display rows
type Processor struct {
	reserved map[string]struct{}
}

// NewProcessor creates a Processor that drops rows ending in one of the
// reserved descriptions. A nil slice selects DefaultReserved.
func NewProcessor(reserved []string) *Processor {
	if reserved == nil {
		reserved = DefaultReserved
	}
	set := make(map[string]struct{}, len(reserved))
	for _, r := range reserved {
		set[r] = struct{}{}
	}
	return &Processor{reserved: set}
}

// Process runs header deduplication, blank removal and trimming, in that
// order. The returned slice is never nil.
func (p *Processor) Process(paths []Path) []Row {
	return Trim(p.RemoveBlank(DedupHeaders(paths)))
}

// DedupHeaders keeps the first path unchanged and removes from every later
// path each entry whose id also appears in the path just before it. The
// comparison is against the previous path as it was before deduplication.
func DedupHeaders(paths []Path) []Path {
	if len(paths) == 0 {
		return []Path{}
	}

	out := make([]Path, 0, len(paths))
	out = append(out, paths[0])

	for i := 1; i < len(paths); i++ {
		prev := make(map[string]struct{}, len(paths[i-1]))
		for _, e := range paths[i-1] {
			prev[e.ID] = struct{}{}
		}

		filtered := make(Path, 0, len(paths[i]))
		for _, e := range paths[i] {
			if _, seen := prev[e.ID]; seen {
				continue
			}
			filtered = append(filtered, e)
		}
		out = append(out, filtered)
	}
	return out
}

// RemoveBlank drops paths whose terminal entry is reserved. Paths left with
// no entries at all are dropped too.
func (p *Processor) RemoveBlank(paths []Path) []Path {
	out := make([]Path, 0, len(paths))
	for _, path := range paths {
		last := path.Last()
		if last == nil {
			continue
		}
		if _, blank := p.reserved[last.Description]; blank {
			continue
		}
		out = append(out, path)
	}
	return out
}

// Trim copies every entry into a Record, leaving children behind.
func Trim(paths []Path) []Row {
	rows := make([]Row, len(paths))
	for i, path := range paths {
		row := make(Row, len(path))
		for j, e := range path {
			row[j] = e.Record()
		}
		rows[i] = row
	}
	return rows
}
