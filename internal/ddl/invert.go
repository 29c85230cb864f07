package ddl

import (
	"fmt"

	"github.com/sqlcore/sqlcore/internal/definition"
)

// Invert builds the structural inverse SchemaChange of intent: a Create
// inverts to a Drop (with IF EXISTS, since the created object might not
// have actually been created yet when the inverse runs), and a Drop
// inverts to a Create using the captured definition. Invert operates on
// the intent, not the planned SystemOperation, since a Create's inverse
// needs no information a Drop-side SystemOperation's steps would carry
// anyway, and a Drop's inverse needs the pre-drop table/schema definition,
// which the planner never captured in the first place.
//
// DropSchemas has no structural inverse here: re-creating a schema does
// not restore the tables it held, so mirroring it would be misleading.
// Only single-table/single-schema creates and single-table drops (the
// cases where the caller can supply what was dropped) are invertible.
func Invert(change SchemaChange) (SchemaChange, error) {
	switch {
	case change.CreateSchema != nil:
		return SchemaChange{DropSchemas: &DropSchemas{
			SchemaNames: []definition.SchemaName{change.CreateSchema.SchemaName},
			IfExists:    true,
		}}, nil
	case change.CreateTable != nil:
		return SchemaChange{DropTables: &DropTables{
			FullTableNames: []definition.FullTableName{change.CreateTable.FullTableName},
			IfExists:       true,
		}}, nil
	case change.DropSchemas != nil:
		return SchemaChange{}, fmt.Errorf("ddl: DropSchemas has no structural inverse (dropped tables are not recoverable)")
	case change.DropTables != nil:
		return SchemaChange{}, fmt.Errorf("ddl: DropTables has no structural inverse without the dropped table's column definitions; use InvertDroppedTable")
	default:
		return SchemaChange{}, fmt.Errorf("ddl: SchemaChange has no intent set")
	}
}

// InvertDroppedTable builds the CreateTable that would restore a table
// just before it was dropped, given its captured definition. Callers that
// have previously captured the table's columns (e.g. from a catalog
// snapshot taken before issuing the drop) use this instead of Invert.
func InvertDroppedTable(fullName definition.FullTableName, columns []definition.ColumnDef) SchemaChange {
	return SchemaChange{CreateTable: &CreateTable{
		FullTableName: fullName,
		Columns:       columns,
		IfNotExists:   true,
	}}
}
