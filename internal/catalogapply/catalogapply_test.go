package catalogapply

import (
	"io"
	"testing"

	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/ddl"
	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/types"
)

func TestApplyCreateSchemaThenTable(t *testing.T) {
	planner := ddl.NewPlanner()
	schemaName, err := definition.NewSchemaName([]string{"accounting"})
	if err != nil {
		t.Fatalf("schema name: %v", err)
	}
	schemaOp := planner.Plan(ddl.SchemaChange{CreateSchema: &ddl.CreateSchema{SchemaName: schemaName}})

	result, err := Apply(io.Discard, schemaOp, catalog.NewSnapshot())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !result.Snapshot.SchemaExists("accounting") {
		t.Fatalf("expected schema to exist after apply")
	}

	fullName, err := definition.NewFullTableName([]string{"accounting", "invoices"})
	if err != nil {
		t.Fatalf("full table name: %v", err)
	}
	tableOp := planner.Plan(ddl.SchemaChange{CreateTable: &ddl.CreateTable{FullTableName: fullName}})
	result, err = Apply(io.Discard, tableOp, result.Snapshot)
	if err != nil {
		t.Fatalf("Apply table: %v", err)
	}
	if _, ok := result.Snapshot.Table("accounting", "invoices"); !ok {
		t.Fatalf("expected table to exist after apply")
	}
}

func TestApplyCreateTableTwiceFailsWithoutIfNotExists(t *testing.T) {
	planner := ddl.NewPlanner()
	fullName, err := definition.NewFullTableName([]string{"public", "orders"})
	if err != nil {
		t.Fatalf("full table name: %v", err)
	}
	op := planner.Plan(ddl.SchemaChange{CreateTable: &ddl.CreateTable{FullTableName: fullName}})

	snapshot := catalog.NewSnapshot().WithSchema("public")
	result, err := Apply(io.Discard, op, snapshot)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if _, err := Apply(io.Discard, op, result.Snapshot); err == nil {
		t.Fatalf("expected second apply to fail since the table already exists")
	}
}

func TestApplyCreateTableTwiceSkipsWithIfNotExists(t *testing.T) {
	planner := ddl.NewPlanner()
	fullName, err := definition.NewFullTableName([]string{"public", "orders"})
	if err != nil {
		t.Fatalf("full table name: %v", err)
	}
	op := planner.Plan(ddl.SchemaChange{CreateTable: &ddl.CreateTable{FullTableName: fullName, IfNotExists: true}})

	snapshot := catalog.NewSnapshot().WithSchema("public")
	result, err := Apply(io.Discard, op, snapshot)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	result, err = Apply(io.Discard, op, result.Snapshot)
	if err != nil {
		t.Fatalf("second apply should be skipped, not error: %v", err)
	}
	if !result.Skipped[0] {
		t.Fatalf("expected sub-program to be reported skipped")
	}
}

func TestApplyDropTableWithColumns(t *testing.T) {
	full := definition.NewFullTableNameFrom("public", "orders")
	table := definition.NewTableDef(full, []definition.ColumnDef{
		definition.NewColumnDef("id", types.IntegerType(), 0),
	})
	snapshot := catalog.NewSnapshot().WithSchema("public").WithTable(table)

	planner := ddl.NewPlanner()
	op := planner.Plan(ddl.SchemaChange{DropTables: &ddl.DropTables{FullTableNames: []definition.FullTableName{full}}})
	result, err := Apply(io.Discard, op, snapshot)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := result.Snapshot.Table("public", "orders"); ok {
		t.Fatalf("expected table to be gone after drop")
	}
}
