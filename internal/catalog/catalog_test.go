package catalog

import (
	"testing"

	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/types"
)

func TestSnapshotImmutability(t *testing.T) {
	base := NewSnapshot()
	withSchema := base.WithSchema("public")

	if base.SchemaExists("public") {
		t.Error("original snapshot should be unaffected by WithSchema")
	}
	if !withSchema.SchemaExists("public") {
		t.Error("derived snapshot should have the new schema")
	}
}

func TestSnapshotWithTable(t *testing.T) {
	cols := []definition.ColumnDef{definition.NewColumnDef("id", types.IntegerType(), 0)}
	full := definition.NewFullTableNameFrom("public", "users")
	table := definition.NewTableDef(full, cols)

	snapshot := NewSnapshot().WithSchema("public").WithTable(table)
	got, ok := snapshot.Table("public", "users")
	if !ok {
		t.Fatal("expected to find table public.users")
	}
	if len(got.Columns()) != 1 || got.Columns()[0].Name() != "id" {
		t.Errorf("unexpected columns: %v", got.Columns())
	}
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	cols := []definition.ColumnDef{
		definition.NewColumnDef("id", types.IntegerType(), 0),
		definition.NewColumnDef("name", types.VarChar(255), 1),
	}
	full := definition.NewFullTableNameFrom("public", "users")
	snapshot := NewSnapshot().WithSchema("public").WithTable(definition.NewTableDef(full, cols))

	data, err := snapshot.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if err := ValidateSnapshotJSON(data); err != nil {
		t.Fatalf("ValidateSnapshotJSON: %v", err)
	}
	restored, err := UnmarshalSnapshotJSON(data)
	if err != nil {
		t.Fatalf("UnmarshalSnapshotJSON: %v", err)
	}
	table, ok := restored.Table("public", "users")
	if !ok {
		t.Fatal("expected restored snapshot to contain public.users")
	}
	if len(table.Columns()) != 2 || table.Columns()[1].Name() != "name" {
		t.Errorf("unexpected restored columns: %v", table.Columns())
	}
}

func TestValidateSnapshotJSONRejectsMalformed(t *testing.T) {
	if err := ValidateSnapshotJSON([]byte(`{"schemas": "not-an-array"}`)); err == nil {
		t.Error("expected validation error for malformed document")
	}
}
