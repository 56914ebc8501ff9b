package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cognicore/ddc/internal/logging"
	"github.com/cognicore/ddc/pkg/ddc"
	"github.com/cognicore/ddc/pkg/ddc/catalog"
	"github.com/cognicore/ddc/pkg/ddc/config"
	"github.com/cognicore/ddc/pkg/ddc/history"
	"github.com/cognicore/ddc/pkg/ddc/render"
	"github.com/cognicore/ddc/pkg/ddc/results"
	"github.com/cognicore/ddc/pkg/ddc/store"
	"github.com/cognicore/ddc/pkg/ddc/store/sqlite"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	catalogPath string
	dbPath      string
	logLevel    string
	format      string
	limit       int

	logger *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "ddc",
		Short:         "Browse and search a Dewey Decimal catalog",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case "text", "html", "json":
			default:
				return fmt.Errorf("unknown format %q", opts.format)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (YAML)")
	root.PersistentFlags().StringVar(&opts.catalogPath, "catalog", "", "Catalog data file (JSON or YAML)")
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite database path")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "Output format (text, html, json)")

	retrieveCmd := &cobra.Command{
		Use:   "retrieve PATTERN",
		Short: "List the classes under a number such as xxx, 1xx, 11x or 641",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd.OutOrStdout(), opts, store.KindRetrieve, args[0])
		},
	}

	searchCmd := &cobra.Command{
		Use:   "search TERM",
		Short: "Find classes whose description or number contains TERM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd.Context(), cmd.OutOrStdout(), opts, store.KindSearch, args[0])
		},
	}

	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Copy the catalog data file into the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}
	historyCmd.Flags().IntVarP(&opts.limit, "limit", "n", 10, "Number of queries to show")

	shellCmd := &cobra.Command{
		Use:   "shell",
		Short: "Query the catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	root.AddCommand(retrieveCmd, searchCmd, importCmd, historyCmd, shellCmd)
	return root
}

// env is everything a subcommand needs, built from flags and config.
type env struct {
	cfg    *config.Config
	tree   *catalog.Tree
	engine *ddc.DDC
	store  store.Store
	logger *zap.Logger
}

func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
}

// buildEnv loads configuration, opens the database when one is configured
// and builds the query engine. needTree is false for commands that do not
// query the catalog.
func buildEnv(ctx context.Context, opts *options, needTree bool) (*env, error) {
	loader := &config.Loader{
		ConfigPath:  opts.configPath,
		CatalogPath: opts.catalogPath,
		DBPath:      opts.dbPath,
		LogLevel:    opts.logLevel,
	}
	comp, err := loader.Load()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(comp.Config.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	opts.logger = logger

	e := &env{cfg: comp.Config, tree: comp.Tree, logger: logger}
	if comp.Config.DB != "" {
		st, err := sqlite.OpenSQLite(ctx, comp.Config.DB)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		e.store = st
	}

	if !needTree {
		return e, nil
	}

	tree := e.tree
	if tree == nil {
		if e.store == nil {
			e.close()
			return nil, errors.New("no catalog: set --catalog or --db")
		}
		tree, err = e.store.LoadCatalog(ctx)
		if err != nil {
			e.close()
			return nil, fmt.Errorf("load catalog from database: %w", err)
		}
	}
	logger.Debug("catalog ready", zap.Int("entries", tree.Len()))

	e.engine = ddc.New(ddc.Options{
		Tree:     tree,
		Reserved: comp.Config.ReservedLabels,
		Logger:   logger,
	})
	return e, nil
}

func runQuery(ctx context.Context, w io.Writer, opts *options, kind, input string) error {
	e, err := buildEnv(ctx, opts, true)
	if err != nil {
		return err
	}
	defer e.close()

	var rows []results.Row
	switch kind {
	case store.KindRetrieve:
		rows, err = e.engine.Retrieve(input)
		if err != nil {
			return err
		}
	case store.KindSearch:
		rows, _ = e.engine.Search(input)
	}

	if e.store != nil {
		if _, err := history.New(e.store).Record(ctx, kind, input, len(rows)); err != nil {
			e.logger.Warn("record query", zap.Error(err))
		}
	}

	if len(rows) == 0 && opts.format == "text" {
		fmt.Fprintln(w, "No results found.")
		return nil
	}
	return write(w, opts.format, rows)
}

func write(w io.Writer, format string, rows []results.Row) error {
	switch format {
	case "html":
		return render.HTML(w, rows)
	case "json":
		if rows == nil {
			rows = []results.Row{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	default:
		return render.Text(w, rows)
	}
}

func runImport(ctx context.Context, w io.Writer, opts *options) error {
	e, err := buildEnv(ctx, opts, false)
	if err != nil {
		return err
	}
	defer e.close()

	if e.store == nil {
		return errors.New("import needs --db")
	}
	if e.tree == nil {
		return errors.New("import needs --catalog")
	}

	if err := e.store.ReplaceCatalog(ctx, e.tree.Roots()); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}

	e.logger.Info("catalog imported",
		zap.String("from", e.cfg.Catalog),
		zap.String("db", e.cfg.DB),
		zap.Int("entries", e.tree.Len()))
	fmt.Fprintf(w, "Imported %d entries\n", e.tree.Len())
	return nil
}

func runHistory(ctx context.Context, w io.Writer, opts *options) error {
	e, err := buildEnv(ctx, opts, false)
	if err != nil {
		return err
	}
	defer e.close()

	if e.store == nil {
		return errors.New("history needs --db")
	}

	recent, err := history.New(e.store).Recent(ctx, opts.limit)
	if err != nil {
		return err
	}
	for _, q := range recent {
		fmt.Fprintf(w, "%s  %-8s %-24q %d\n", q.At.Local().Format("2006-01-02 15:04:05"), q.Kind, q.Input, q.Hits)
	}
	return nil
}
