package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/ddc/pkg/ddc/history"
	"github.com/cognicore/ddc/pkg/ddc/pattern"
	"github.com/cognicore/ddc/pkg/ddc/results"
	"github.com/cognicore/ddc/pkg/ddc/store"
)

// runShell reads queries from r until EOF. A line that is a valid pattern
// is retrieved, "/term" or "search term" searches, anything else is
// searched as typed.
func runShell(ctx context.Context, r io.Reader, w io.Writer, opts *options) error {
	e, err := buildEnv(ctx, opts, true)
	if err != nil {
		return err
	}
	defer e.close()

	var rec *history.Recorder
	if e.store != nil {
		rec = history.New(e.store)
	}

	fmt.Fprintln(w, "Dewey Decimal catalog")
	fmt.Fprintln(w, "Type a pattern (xxx, 1xx, 11x, 641) or search text (Ctrl+D to exit):")
	fmt.Fprintln(w)

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		kind, input := store.KindSearch, line
		switch {
		case strings.HasPrefix(line, "/"):
			input = strings.TrimSpace(line[1:])
		case strings.HasPrefix(line, "search "):
			input = strings.TrimSpace(strings.TrimPrefix(line, "search "))
		default:
			if _, perr := pattern.Resolve(line); perr == nil {
				kind = store.KindRetrieve
			}
		}

		var rows []results.Row
		if kind == store.KindRetrieve {
			// the pattern was checked above
			rows, _ = e.engine.Retrieve(input)
		} else {
			rows, _ = e.engine.Search(input)
		}

		if rec != nil {
			if _, err := rec.Record(ctx, kind, input, len(rows)); err != nil {
				e.logger.Warn("record query", zap.Error(err))
			}
		}

		if len(rows) == 0 {
			fmt.Fprintln(w, "No results found.")
			continue
		}
		if err := write(w, opts.format, rows); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)

	return scanner.Err()
}
