package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/ddc/pkg/ddc/internalerr"
	"github.com/cognicore/ddc/pkg/ddc/results"
)

const testCatalog = "../../testdata/ddc.json"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestRetrieveText(t *testing.T) {
	out, err := run(t, "retrieve", "11x", "--catalog", testCatalog)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	for _, want := range []string{"Philosophy and Psychology", "Ontology", "Number and quantity"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "Metaphysics") != 2 {
		t.Errorf("expected the 11x header and 110 once each:\n%s", out)
	}
}

func TestSearchJSON(t *testing.T) {
	out, err := run(t, "search", "recipes", "--catalog", testCatalog, "--format", "json")
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	var rows []results.Row
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(rows) != 1 || len(rows[0]) != 4 {
		t.Fatalf("unexpected rows %+v", rows)
	}
	if rows[0][3].ID != "641.5" {
		t.Errorf("match = %+v", rows[0][3])
	}
	if strings.Contains(out, "subordinates") {
		t.Error("output should not include children")
	}
}

func TestSearchNoResults(t *testing.T) {
	out, err := run(t, "search", "no-such-substring-xyz", "--catalog", testCatalog)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.Contains(out, "No results found.") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestSearchHTML(t *testing.T) {
	out, err := run(t, "search", "ontology", "--catalog", testCatalog, "-f", "html")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if !strings.HasPrefix(out, "<table") || !strings.Contains(out, "Ontology") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRetrieveInvalidPattern(t *testing.T) {
	_, err := run(t, "retrieve", "1x1", "--catalog", testCatalog)
	if !errors.Is(err, internalerr.ErrInvalidPattern) {
		t.Errorf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := run(t, "retrieve", "xxx", "--catalog", testCatalog, "--format", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNoCatalog(t *testing.T) {
	if _, err := run(t, "retrieve", "xxx"); err == nil {
		t.Error("expected error without --catalog or --db")
	}
}

func TestImportThenQueryDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ddc.db")

	out, err := run(t, "import", "--catalog", testCatalog, "--db", dbPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.HasPrefix(out, "Imported ") {
		t.Errorf("unexpected import output %q", out)
	}

	out, err = run(t, "retrieve", "641", "--db", dbPath)
	if err != nil {
		t.Fatalf("retrieve from db: %v", err)
	}
	if !strings.Contains(out, "Cooking, recipes") {
		t.Errorf("retrieve output missing 641.5:\n%s", out)
	}

	if _, err := run(t, "search", "time", "--db", dbPath); err != nil {
		t.Fatalf("search from db: %v", err)
	}

	out, err = run(t, "history", "--db", dbPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 history lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], `"time"`) || !strings.Contains(lines[1], `"641"`) {
		t.Errorf("history should list newest first:\n%s", out)
	}
}

func TestImportNeedsDB(t *testing.T) {
	if _, err := run(t, "import", "--catalog", testCatalog); err == nil {
		t.Error("import without --db should fail")
	}
}

func TestHistoryNeedsDB(t *testing.T) {
	if _, err := run(t, "history"); err == nil {
		t.Error("history without --db should fail")
	}
}

func TestShell(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader("11x\n\n/recipes\nsearch ontology\nzzzz-nothing\n"))
	cmd.SetArgs([]string{"shell", "--catalog", testCatalog, "--log-level", "error"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("shell: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Number and quantity", "Cooking, recipes", "Ontology", "No results found."} {
		if !strings.Contains(got, want) {
			t.Errorf("shell output missing %q:\n%s", want, got)
		}
	}
}
