package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/ddc/pkg/ddc/catalog"
	"github.com/cognicore/ddc/pkg/ddc/results"
)

func loadTree(t *testing.T) *catalog.Tree {
	t.Helper()
	tree, err := catalog.Load("../../../testdata/ddc.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tree
}

func pathIDs(paths []results.Path) [][]string {
	out := make([][]string, len(paths))
	for i, p := range paths {
		for _, e := range p {
			out[i] = append(out[i], e.ID)
		}
	}
	return out
}

func TestMatcher(t *testing.T) {
	e := &catalog.Entry{ID: "641.5", Number: "641.5", Description: "Cooking, recipes"}

	tests := []struct {
		term string
		want bool
	}{
		{"recipes", true},
		{"RECIPES", true},
		{"Cooking, R", true},
		{"641", true},
		{"41.5", true},
		{"642", false},
		{"baking", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := NewMatcher(tt.term).Match(e); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.term, got, tt.want)
		}
	}
}

func TestMatcherUnicodeFold(t *testing.T) {
	e := &catalog.Entry{ID: "914", Number: "914", Description: "Straße nach Café"}

	for _, term := range []string{"STRASSE", "café", "CAFÉ", "Café"} {
		if !NewMatcher(term).Match(e) {
			t.Errorf("Match(%q) should succeed", term)
		}
	}
}

func TestSearchPrependsAncestors(t *testing.T) {
	tree := loadTree(t)
	paths := Search(tree.Roots(), "recipes")

	want := [][]string{{"6xx", "64x", "641", "641.5"}}
	if diff := cmp.Diff(want, pathIDs(paths)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchMatchBeforeDescendants(t *testing.T) {
	tree := loadTree(t)
	paths := Search(tree.Roots(), "641")

	got := pathIDs(paths)
	if len(got) != 9 {
		t.Fatalf("expected 641 and its 8 subdivisions, got %d rows: %v", len(got), got)
	}
	if diff := cmp.Diff([]string{"6xx", "64x", "641"}, got[0]); diff != "" {
		t.Errorf("first row mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"6xx", "64x", "641", "641.1"}, got[1]); diff != "" {
		t.Errorf("second row mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchDisplayOrder(t *testing.T) {
	tree := loadTree(t)
	paths := Search(tree.Roots(), "philosophy")

	want := [][]string{
		{"1xx"},
		{"1xx", "10x"},
		{"1xx", "18x"},
		{"1xx", "19x"},
	}
	if diff := cmp.Diff(want, pathIDs(paths)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchScope(t *testing.T) {
	tree := loadTree(t)
	div, ok := tree.Lookup("11x")
	if !ok {
		t.Fatal("11x not found")
	}

	paths := Search(div.Children, "o")
	for _, p := range paths {
		if len(p) != 1 {
			t.Errorf("paths inside a leaf scope should have length 1, got %v", pathIDs([]results.Path{p}))
		}
	}
	if len(paths) == 0 {
		t.Error("expected matches for \"o\" under 11x")
	}
}

func TestSearchEmptyTerm(t *testing.T) {
	tree := loadTree(t)
	if got := Search(tree.Roots(), ""); got != nil {
		t.Errorf("empty term should return nil, got %d rows", len(got))
	}
}

func TestSearchNoMatch(t *testing.T) {
	tree := loadTree(t)
	if got := Search(tree.Roots(), "no-such-substring-xyz"); len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}
