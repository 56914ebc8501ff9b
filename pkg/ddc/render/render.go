// Package render writes processed result rows for people to read.
package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/cognicore/ddc/pkg/ddc/catalog"
	"github.com/cognicore/ddc/pkg/ddc/results"
)

// Text writes one line per record, indented by the class level.
func Text(w io.Writer, rows []results.Row) error {
	for _, row := range rows {
		for _, rec := range row {
			indent := strings.Repeat("  ", catalog.Level(rec.ID))
			if _, err := fmt.Fprintf(w, "%s%-7s %s\n", indent, rec.Number, rec.Description); err != nil {
				return err
			}
		}
	}
	return nil
}

// HTML writes the rows as a table. Heading records get class "header", the
// last record of each row gets class "match".
func HTML(w io.Writer, rows []results.Row) error {
	table := element(atom.Table, html.Attribute{Key: "class", Val: "ddc"})
	tbody := element(atom.Tbody)
	table.AppendChild(tbody)

	for _, row := range rows {
		for i, rec := range row {
			class := "header"
			if i == len(row)-1 {
				class = "match"
			}
			tr := element(atom.Tr,
				html.Attribute{Key: "class", Val: class},
				html.Attribute{Key: "data-id", Val: rec.ID},
				html.Attribute{Key: "data-level", Val: fmt.Sprint(catalog.Level(rec.ID))},
			)
			tr.AppendChild(cell(rec.Number))
			tr.AppendChild(cell(rec.Description))
			tbody.AppendChild(tr)
		}
	}

	if err := html.Render(w, table); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func cell(text string) *html.Node {
	td := element(atom.Td)
	td.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return td
}
