package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sqlcore/sqlcore/internal/analyzer"
	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/catalogapply"
	"github.com/sqlcore/sqlcore/internal/ddl"
)

var (
	planEnvironment string
	planApply       bool
	planTimeout     time.Duration
)

var planCmd = &cobra.Command{
	Use:   "plan [ddl-statement]",
	Short: "Plan a DDL statement as an ordered step program",
	Long: `plan parses a single DDL statement (CREATE SCHEMA, DROP SCHEMA,
CREATE TABLE, DROP TABLE), analyzes it into a schema-change intent, and
runs that intent through the planner to produce its SystemOperation step
program. With --apply, the plan is additionally dry-run against the
in-memory catalog snapshot loaded for the environment (the snapshot is not
persisted back) so you can see each step as it traces.`,
	Example: `  sqlcore plan "create table orders (id integer, total bigint)"
  sqlcore plan --apply "create schema reporting"`,
	Args: cobra.ExactArgs(1),
	Run:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&planEnvironment, "environment", "", "Named environment to resolve DDL target references against")
	planCmd.Flags().BoolVar(&planApply, "apply", false, "Dry-run the plan against the loaded catalog snapshot and print the trace")
	planCmd.Flags().DurationVar(&planTimeout, "timeout", 10*time.Second, "Timeout for the catalog-loading connection")
}

func runPlan(cmd *cobra.Command, args []string) {
	sql := args[0]

	started := time.Now()

	cat, err := loadCatalogForEnvironment(planEnvironment, planTimeout)
	if err != nil {
		log.Fatalf("sqlcore: loading catalog: %v", err)
	}

	result, err := analyzer.Analyze(sql, cat)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "plan: %v\n", err)
		os.Exit(1)
	}
	if result.Kind != analyzer.AnalysisDataDefinition {
		_, _ = fmt.Fprintln(os.Stderr, "plan: statement is not a DDL change (expected CREATE/DROP SCHEMA or CREATE/DROP TABLE)")
		os.Exit(1)
	}

	op := ddl.NewPlanner().Plan(*result.DataDefinition)

	fmt.Print(renderPlan(op))

	if planApply {
		snapshot := catalog.NewSnapshot()
		if s, ok := cat.(*catalog.Snapshot); ok {
			snapshot = s
		}
		if _, err := catalogapply.Apply(os.Stdout, op, snapshot); err != nil {
			log.Fatalf("sqlcore: applying plan: %v", err)
		}
	}

	fmt.Printf("planned in %s\n", humanize.RelTime(started, time.Now(), "", ""))
}

// renderPlan renders a SystemOperation's sub-programs as a readable trace,
// since ddl.Record keeps its fields unexported and has no JSON encoding of
// its own (see internal/ddl's Record accessor methods).
func renderPlan(op ddl.SystemOperation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "plan %s: %s %s", op.PlanID, actionName(op.Kind.Action), op.Kind.Object)
	if op.SkipStepsIf != nil {
		fmt.Fprintf(&b, " (skip if already %s)", objectStateName(*op.SkipStepsIf))
	}
	b.WriteString("\n")
	for i, program := range op.Steps {
		fmt.Fprintf(&b, "sub-program %d:\n", i)
		for _, step := range program {
			fmt.Fprintf(&b, "  - %s\n", renderStep(step))
		}
	}
	return b.String()
}

func renderStep(step ddl.Step) string {
	switch step.Kind {
	case ddl.StepCheckExistence:
		return fmt.Sprintf("check existence of %s %v", step.SystemObject, step.ObjectName)
	case ddl.StepCheckDependants:
		return fmt.Sprintf("check dependants of %s %v", step.SystemObject, step.ObjectName)
	case ddl.StepRemoveDependants:
		return fmt.Sprintf("remove dependants of %s %v", step.SystemObject, step.ObjectName)
	case ddl.StepCreateFolder:
		return fmt.Sprintf("create folder %s", step.Name)
	case ddl.StepRemoveFolder:
		return fmt.Sprintf("remove folder %s", step.Name)
	case ddl.StepCreateFile:
		return fmt.Sprintf("create file %s/%s", step.FolderName, step.Name)
	case ddl.StepRemoveFile:
		return fmt.Sprintf("remove file %s/%s", step.FolderName, step.Name)
	case ddl.StepCreateRecord:
		return fmt.Sprintf("create record: %s", renderRecord(step.Record))
	case ddl.StepRemoveRecord:
		return fmt.Sprintf("remove record: %s", renderRecord(step.Record))
	case ddl.StepRemoveColumns:
		return fmt.Sprintf("remove columns of %s.%s", step.SchemaName, step.TableName)
	default:
		return "unknown step"
	}
}

func objectStateName(s ddl.ObjectState) string {
	if s == ddl.StateExists {
		return "existing"
	}
	return "absent"
}

func actionName(a ddl.Action) string {
	if a == ddl.ActionCreate {
		return "create"
	}
	return "drop"
}

func renderRecord(r ddl.Record) string {
	switch {
	case r.IsSchema():
		return fmt.Sprintf("schema %s", r.SchemaName())
	case r.IsTable():
		return fmt.Sprintf("table %s.%s", r.SchemaName(), r.TableName())
	case r.IsColumn():
		return fmt.Sprintf("column %s.%s.%s %s", r.SchemaName(), r.TableName(), r.ColumnName(), r.SqlType())
	default:
		return "<unknown record>"
	}
}
