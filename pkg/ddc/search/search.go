package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/ddc/pkg/ddc/catalog"
	"github.com/cognicore/ddc/pkg/ddc/results"
)

// Matcher tests entries against a search term, ignoring case.
type Matcher struct {
	term string
	fold cases.Caser
}

// NewMatcher creates a Matcher for term. The zero-length term matches
// nothing.
func NewMatcher(term string) *Matcher {
	m := &Matcher{fold: cases.Fold()}
	m.term = m.normalize(term)
	return m
}

func (m *Matcher) normalize(s string) string {
	return m.fold.String(norm.NFC.String(s))
}

// Match reports whether the entry's description or number contains the term.
func (m *Matcher) Match(e *catalog.Entry) bool {
	if m.term == "" {
		return false
	}
	return strings.Contains(m.normalize(e.Description), m.term) ||
		strings.Contains(m.normalize(e.Number), m.term)
}

// Search returns a path for every entry under entries that matches term,
// at any depth. A matching entry comes before the matches among its
// descendants; otherwise display order is kept.
func Search(entries []*catalog.Entry, term string) []results.Path {
	m := NewMatcher(term)
	if m.term == "" {
		return nil
	}
	return walk(entries, m)
}

func walk(entries []*catalog.Entry, m *Matcher) []results.Path {
	var out []results.Path
	for _, e := range entries {
		if m.Match(e) {
			out = append(out, results.Path{e})
		}
		if !e.HasChildren() {
			continue
		}
		for _, sub := range walk(e.Children, m) {
			path := make(results.Path, 0, len(sub)+1)
			path = append(path, e)
			out = append(out, append(path, sub...))
		}
	}
	return out
}
