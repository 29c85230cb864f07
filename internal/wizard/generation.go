package wizard

import (
	"strings"

	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/catalogapply"
	"github.com/sqlcore/sqlcore/internal/ddl"
	"github.com/sqlcore/sqlcore/internal/definition"
)

// buildIntent lowers the wizard's collected schema/table/column inputs into
// a ddl.CreateTable intent. Column types were already validated by
// ValidateColumnType when they were entered, so this never errors.
func (m *WizardModel) buildIntent() ddl.SchemaChange {
	full := definition.NewFullTableNameFrom(m.schemaName, m.tableName)
	cols := make([]definition.ColumnDef, 0, len(m.columns))
	for i, c := range m.columns {
		sqlType, _ := ValidateColumnType(c.TypeName, c.LengthText)
		cols = append(cols, definition.NewColumnDef(c.Name, sqlType, i))
	}
	return ddl.SchemaChange{
		CreateTable: &ddl.CreateTable{
			FullTableName: full,
			Columns:       cols,
			IfNotExists:   m.ifNotExist,
		},
	}
}

// planAndApply runs the intent through the planner and, as a dry run,
// applies it to a fresh snapshot that already has the target schema
// registered, tracing each step into a summary string for StateSummary.
func planAndApply(change ddl.SchemaChange, schemaName string) (string, error) {
	op := ddl.NewPlanner().Plan(change)

	var trace strings.Builder
	snapshot := catalog.NewSnapshot().WithSchema(schemaName)
	if _, err := catalogapply.Apply(&trace, op, snapshot); err != nil {
		return trace.String(), err
	}
	return trace.String(), nil
}
