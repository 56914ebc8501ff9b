package render

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/cognicore/ddc/pkg/ddc/results"
)

var sampleRows = []results.Row{
	{
		{ID: "1xx", Number: "100", Description: "Philosophy and Psychology"},
		{ID: "11x", Number: "110", Description: "Metaphysics"},
		{ID: "110", Number: "110", Description: "Metaphysics"},
	},
	{{ID: "111", Number: "111", Description: "Ontology"}},
	{{ID: "641.5", Number: "641.5", Description: "Cooking, recipes & <menus>"}},
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, sampleRows); err != nil {
		t.Fatalf("Text: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"100     Philosophy and Psychology",
		"  110     Metaphysics",
		"    110     Metaphysics",
		"    111     Ontology",
		"      641.5   Cooking, recipes & <menus>",
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(lines), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Text(&buf, nil); err != nil {
		t.Fatalf("Text: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := HTML(&buf, sampleRows); err != nil {
		t.Fatalf("HTML: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, `<table class="ddc"><tbody>`) {
		t.Errorf("unexpected prefix: %s", out)
	}
	if !strings.Contains(out, "Cooking, recipes &amp; &lt;menus&gt;") {
		t.Errorf("description should be escaped: %s", out)
	}

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var classes []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			for _, a := range n.Attr {
				if a.Key == "class" {
					classes = append(classes, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	want := []string{"header", "header", "match", "match", "match"}
	if strings.Join(classes, ",") != strings.Join(want, ",") {
		t.Errorf("row classes = %v, want %v", classes, want)
	}
}
