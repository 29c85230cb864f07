package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sqlcore/sqlcore/internal/analyzer"
	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/catalog/litecatalog"
	"github.com/sqlcore/sqlcore/internal/catalog/pgcatalog"
	"github.com/sqlcore/sqlcore/internal/config"
	"github.com/sqlcore/sqlcore/internal/ddl"
	"github.com/sqlcore/sqlcore/internal/untyped"
)

var (
	analyzeEnvironment string
	analyzeTimeout     time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [sql]",
	Short: "Analyze a SQL statement against a catalog snapshot",
	Long: `Analyze parses a single SQL statement and validates it against a
catalog snapshot loaded from the given environment: resolving table and
column references, rejecting references to objects that don't exist, and
lowering the statement into its untyped intermediate form (for DML) or
its schema-change intent (for DDL).`,
	Example: `  # Analyze a SELECT against the "local" environment's database
  sqlcore analyze "select id, name from users" --environment local

  # Analyze a CREATE TABLE statement
  sqlcore analyze "create table orders (id integer, total bigint)"`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeEnvironment, "environment", "", "Named environment to load the catalog from (default: sqlcore.toml's default, else \"local\")")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 10*time.Second, "Timeout for the catalog-loading connection")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	sql := args[0]

	cat, err := loadCatalogForEnvironment(analyzeEnvironment, analyzeTimeout)
	if err != nil {
		log.Fatalf("sqlcore: loading catalog: %v", err)
	}

	result, err := analyzer.Analyze(sql, cat)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}

	printAnalysis(result)
}

// printAnalysis renders a QueryAnalysis as text rather than JSON: the
// untyped trees' leaf types (definition.FullTableName, definition.ColumnDef)
// keep their fields unexported and expose only String()/accessors, so a
// blind json.Marshal over them would silently render as "{}".
func printAnalysis(result analyzer.QueryAnalysis) {
	switch result.Kind {
	case analyzer.AnalysisWrite:
		fmt.Println(renderWrite(result.Write))
	case analyzer.AnalysisRead:
		fmt.Println(renderRead(result.Read))
	case analyzer.AnalysisDataDefinition:
		op := ddl.NewPlanner().Plan(*result.DataDefinition)
		fmt.Print(renderPlan(op))
	}
}

func renderWrite(w *untyped.UntypedWrite) string {
	switch w.Kind {
	case untyped.WriteInsert:
		var rows []string
		for _, row := range w.Insert.Values {
			var cells []string
			for _, cell := range row {
				if cell == nil {
					cells = append(cells, "DEFAULT")
					continue
				}
				cells = append(cells, cell.String())
			}
			rows = append(rows, "("+strings.Join(cells, ", ")+")")
		}
		return fmt.Sprintf("insert into %s values %s", w.Insert.FullTableName, strings.Join(rows, ", "))
	case untyped.WriteUpdate:
		var sets []string
		for i, name := range w.Update.ColumnNames {
			sets = append(sets, fmt.Sprintf("%s = %s", name, w.Update.Assignments[i]))
		}
		return fmt.Sprintf("update %s set %s", w.Update.FullTableName, strings.Join(sets, ", "))
	case untyped.WriteDelete:
		return fmt.Sprintf("delete from %s", w.Delete.FullTableName)
	default:
		return "<unknown write>"
	}
}

func renderRead(q *untyped.SelectQuery) string {
	var items []string
	for _, item := range q.ProjectionItems {
		items = append(items, item.String())
	}
	return fmt.Sprintf("select %s from %s", strings.Join(items, ", "), q.FullTableName)
}

// loadCatalogForEnvironment resolves name to a connection string via
// sqlcore.toml/.env.<name> and introspects it into a catalog.Snapshot,
// dispatching to pgcatalog or litecatalog by URL scheme.
func loadCatalogForEnvironment(name string, timeout time.Duration) (catalog.Capability, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	resolved, err := config.ResolveEnvironment(cfg, name)
	if err != nil {
		return nil, fmt.Errorf("resolving environment: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	switch {
	case strings.HasPrefix(resolved.ConnectionURL, "postgres://"), strings.HasPrefix(resolved.ConnectionURL, "postgresql://"):
		return pgcatalog.Load(ctx, resolved.ConnectionURL)
	case strings.HasPrefix(resolved.ConnectionURL, "sqlite://"):
		return litecatalog.Load(ctx, strings.TrimPrefix(resolved.ConnectionURL, "sqlite://"))
	case strings.HasPrefix(resolved.ConnectionURL, "libsql://"):
		return litecatalog.LoadRemote(ctx, resolved.ConnectionURL)
	default:
		return nil, fmt.Errorf("unrecognized connection URL scheme in %q", resolved.ConnectionURL)
	}
}
