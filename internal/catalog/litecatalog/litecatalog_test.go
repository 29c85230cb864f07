package litecatalog

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func TestLoadFromDB(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("opening in-memory sqlite: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, `CREATE TABLE orders (id SMALLINT, name VARCHAR(50))`); err != nil {
		t.Fatalf("creating table: %v", err)
	}

	snapshot, err := LoadFromDB(ctx, db)
	if err != nil {
		t.Fatalf("LoadFromDB: %v", err)
	}

	if !snapshot.SchemaExists("public") {
		t.Fatal("expected default schema \"public\" to be registered")
	}
	table, ok := snapshot.Table("public", "orders")
	if !ok {
		t.Fatal("expected table orders to be registered")
	}
	if !table.HasColumn("id") || !table.HasColumn("name") {
		t.Errorf("expected columns id and name, got %v", table.ColumnNames())
	}
}
