// Package catalogapply applies a ddl.SystemOperation to a catalog.Snapshot,
// producing the next snapshot. It is the in-memory stand-in for the
// storage engine the planner's steps ultimately target: CreateFolder/
// CreateFile-shaped steps are traced but otherwise no-ops here, while
// CreateRecord/RemoveRecord/RemoveColumns/RemoveDependants steps are the
// ones that actually mutate the snapshot.
package catalogapply

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/ddl"
)

// Result reports what Apply did: for each sub-program, whether it was
// skipped as a no-op by the operation's IF [NOT] EXISTS precondition, and
// the resulting snapshot.
type Result struct {
	Snapshot *catalog.Snapshot
	Skipped  []bool // one entry per sub-program in op.Steps
}

// Apply runs op's sub-programs against snapshot in order, tracing each
// step to out, and returns the resulting snapshot.
func Apply(out io.Writer, op ddl.SystemOperation, snapshot *catalog.Snapshot) (Result, error) {
	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)

	_, _ = cyan.Fprintf(out, "applying plan %s (%d sub-program(s))\n", op.PlanID, len(op.Steps))

	result := Result{Snapshot: snapshot, Skipped: make([]bool, len(op.Steps))}

	for i, program := range op.Steps {
		if len(program) == 0 {
			continue
		}
		target := targetCheck(op.Kind.Object, program)
		existence := existenceOf(result.Snapshot, target)
		if op.SkipStepsIf != nil && existence == *op.SkipStepsIf {
			_, _ = gray.Fprintf(out, "  [%d] skipped (already in desired state)\n", i)
			result.Skipped[i] = true
			continue
		}
		if err := checkPrecondition(op.Kind.Action, existence, target); err != nil {
			return result, err
		}

		next, err := applyProgram(out, result.Snapshot, program)
		if err != nil {
			return result, err
		}
		result.Snapshot = next
	}

	_, _ = color.New(color.FgGreen).Fprintf(out, "plan %s applied\n", op.PlanID)
	return result, nil
}

// targetCheck returns the sub-program's CheckExistence step for the object
// the operation targets; a table sub-program checks its parent schema first.
func targetCheck(object ddl.SystemObject, program []ddl.Step) ddl.Step {
	for _, step := range program {
		if step.Kind == ddl.StepCheckExistence && step.SystemObject == object {
			return step
		}
	}
	return program[0]
}

func existenceOf(snapshot *catalog.Snapshot, first ddl.Step) ddl.ObjectState {
	if first.Kind != ddl.StepCheckExistence {
		return ddl.StateNotExists
	}
	switch first.SystemObject {
	case ddl.ObjectSchema:
		if snapshot.SchemaExists(first.ObjectName[0]) {
			return ddl.StateExists
		}
	case ddl.ObjectTable:
		if _, ok := snapshot.Table(first.ObjectName[0], first.ObjectName[1]); ok {
			return ddl.StateExists
		}
	}
	return ddl.StateNotExists
}

func checkPrecondition(action ddl.Action, existence ddl.ObjectState, first ddl.Step) error {
	switch action {
	case ddl.ActionCreate:
		if existence == ddl.StateExists {
			return fmt.Errorf("catalogapply: %s %v already exists", first.SystemObject, first.ObjectName)
		}
	case ddl.ActionDrop:
		if existence == ddl.StateNotExists {
			return fmt.Errorf("catalogapply: %s %v does not exist", first.SystemObject, first.ObjectName)
		}
	}
	return nil
}

func applyProgram(out io.Writer, snapshot *catalog.Snapshot, program []ddl.Step) (*catalog.Snapshot, error) {
	gray := color.New(color.FgHiBlack)
	for _, step := range program {
		_, _ = gray.Fprintf(out, "  - %s\n", describeStep(step))
		var err error
		snapshot, err = applyStep(snapshot, step)
		if err != nil {
			return nil, err
		}
	}
	return snapshot, nil
}

func applyStep(snapshot *catalog.Snapshot, step ddl.Step) (*catalog.Snapshot, error) {
	switch step.Kind {
	case ddl.StepCheckExistence, ddl.StepCreateFolder, ddl.StepCreateFile, ddl.StepRemoveFolder, ddl.StepRemoveFile:
		return snapshot, nil // traced only; no snapshot-level storage to mutate
	case ddl.StepCheckDependants:
		if hasTablesUnder(snapshot, step.ObjectName[0]) {
			return nil, fmt.Errorf("catalogapply: schema %q has dependent tables", step.ObjectName[0])
		}
		return snapshot, nil
	case ddl.StepRemoveDependants:
		return removeDependants(snapshot, step.ObjectName[0]), nil
	case ddl.StepCreateRecord:
		return createRecord(snapshot, step.Record)
	case ddl.StepRemoveRecord:
		return removeRecord(snapshot, step.Record)
	case ddl.StepRemoveColumns:
		return withEmptyColumns(snapshot, step.SchemaName, step.TableName)
	default:
		return snapshot, nil
	}
}

func hasTablesUnder(snapshot *catalog.Snapshot, schemaName string) bool {
	return snapshot.HasTablesInSchema(schemaName)
}

// removeDependants drops every table registered under schemaName while
// leaving the schema record itself untouched (the schema's own record is
// removed by a later RemoveRecord step).
func removeDependants(snapshot *catalog.Snapshot, schemaName string) *catalog.Snapshot {
	for _, table := range snapshot.TablesInSchema(schemaName) {
		snapshot = snapshot.WithoutTable(table.Schema(), table.Name())
	}
	return snapshot
}

func createRecord(snapshot *catalog.Snapshot, record ddl.Record) (*catalog.Snapshot, error) {
	switch {
	case record.IsSchema():
		return snapshot.WithSchema(record.SchemaName()), nil
	case record.IsTable():
		full := definition.NewFullTableNameFrom(record.SchemaName(), record.TableName())
		return snapshot.WithTable(definition.NewTableDef(full, nil)), nil
	case record.IsColumn():
		table, ok := snapshot.Table(record.SchemaName(), record.TableName())
		if !ok {
			return nil, fmt.Errorf("catalogapply: table %s.%s not found for column %s",
				record.SchemaName(), record.TableName(), record.ColumnName())
		}
		cols := append(append([]definition.ColumnDef{}, table.Columns()...),
			definition.NewColumnDef(record.ColumnName(), record.SqlType(), len(table.Columns())))
		full := table.FullTableName()
		return snapshot.WithTable(definition.NewTableDef(full, cols)), nil
	default:
		return snapshot, nil
	}
}

func removeRecord(snapshot *catalog.Snapshot, record ddl.Record) (*catalog.Snapshot, error) {
	switch {
	case record.IsSchema():
		return snapshot.WithoutSchema(record.SchemaName()), nil
	case record.IsTable():
		return snapshot.WithoutTable(record.SchemaName(), record.TableName()), nil
	default:
		return snapshot, nil
	}
}

func withEmptyColumns(snapshot *catalog.Snapshot, schemaName, tableName string) (*catalog.Snapshot, error) {
	table, ok := snapshot.Table(schemaName, tableName)
	if !ok {
		return nil, fmt.Errorf("catalogapply: table %s.%s not found", schemaName, tableName)
	}
	full := table.FullTableName()
	return snapshot.WithTable(definition.NewTableDef(full, nil)), nil
}

func describeStep(step ddl.Step) string {
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
		return "create record"
	case ddl.StepRemoveRecord:
		return "remove record"
	case ddl.StepRemoveColumns:
		return fmt.Sprintf("remove columns of %s.%s", step.SchemaName, step.TableName)
	default:
		return "unknown step"
	}
}
