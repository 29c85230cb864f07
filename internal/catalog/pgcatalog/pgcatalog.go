// Package pgcatalog builds a catalog.Snapshot by introspecting a live
// PostgreSQL database through database/sql and lib/pq.
package pgcatalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/types"
)

// Load connects to connStr and builds a Snapshot of every schema and
// table currently visible, one table at a time (small, explicit queries
// rather than a single information_schema join, matching the teacher's
// introspector shape).
func Load(ctx context.Context, connStr string) (*catalog.Snapshot, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("pgcatalog: opening connection: %w", err)
	}
	defer func() { _ = db.Close() }()
	return LoadFromDB(ctx, db)
}

// LoadFromDB builds a Snapshot from an already-open *sql.DB, useful for
// tests against a pre-wired connection.
func LoadFromDB(ctx context.Context, db *sql.DB) (*catalog.Snapshot, error) {
	snapshot := catalog.NewSnapshot()

	schemas, err := schemaNames(ctx, db)
	if err != nil {
		return nil, err
	}
	for _, schema := range schemas {
		snapshot = snapshot.WithSchema(schema)
	}

	for _, schema := range schemas {
		tableNames, err := tableNames(ctx, db, schema)
		if err != nil {
			return nil, fmt.Errorf("pgcatalog: listing tables in %q: %w", schema, err)
		}
		for _, tableName := range tableNames {
			table, err := tableDef(ctx, db, schema, tableName)
			if err != nil {
				return nil, fmt.Errorf("pgcatalog: describing %s.%s: %w", schema, tableName, err)
			}
			snapshot = snapshot.WithTable(table)
		}
	}
	return snapshot, nil
}

func schemaNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT schema_name FROM information_schema.schemata
		WHERE schema_name NOT IN ('pg_catalog', 'information_schema')
		ORDER BY schema_name
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func tableNames(ctx context.Context, db *sql.DB, schema string) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`, schema)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func tableDef(ctx context.Context, db *sql.DB, schema, tableName string) (definition.TableDef, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT column_name, udt_name, ordinal_position, character_maximum_length
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`, schema, tableName)
	if err != nil {
		return definition.TableDef{}, err
	}
	defer func() { _ = rows.Close() }()

	var cols []definition.ColumnDef
	for rows.Next() {
		var name, udtName string
		var ordinal int
		var charLen sql.NullInt64
		if err := rows.Scan(&name, &udtName, &ordinal, &charLen); err != nil {
			return definition.TableDef{}, err
		}
		length := uint64(0)
		if charLen.Valid {
			length = uint64(charLen.Int64)
		}
		sqlType, err := types.FromDataTypeName(udtName, length)
		if err != nil {
			return definition.TableDef{}, fmt.Errorf("column %s: %w", name, err)
		}
		cols = append(cols, definition.NewColumnDef(name, sqlType, ordinal-1))
	}
	if err := rows.Err(); err != nil {
		return definition.TableDef{}, err
	}

	full := definition.NewFullTableNameFrom(schema, tableName)
	return definition.NewTableDef(full, cols), nil
}
