// Package litecatalog builds a catalog.Snapshot by introspecting a SQLite
// database through database/sql and modernc.org/sqlite. SQLite has no
// schema concept of its own, so every table is registered under the
// catalog's default "public" schema.
package litecatalog

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/types"
)

// Load opens path and builds a Snapshot of every table it contains.
func Load(ctx context.Context, path string) (*catalog.Snapshot, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("litecatalog: opening %q: %w", path, err)
	}
	defer func() { _ = db.Close() }()
	return LoadFromDB(ctx, db)
}

// LoadRemote connects to a remote Turso/libSQL database over libsqlURL
// (e.g. "libsql://my-db.turso.io?authToken=...") and builds a Snapshot the
// same way Load does for local SQLite files: libSQL speaks the same SQLite
// table/pragma introspection surface LoadFromDB already queries.
func LoadRemote(ctx context.Context, libsqlURL string) (*catalog.Snapshot, error) {
	db, err := sql.Open("libsql", libsqlURL)
	if err != nil {
		return nil, fmt.Errorf("litecatalog: opening %q: %w", libsqlURL, err)
	}
	defer func() { _ = db.Close() }()
	return LoadFromDB(ctx, db)
}

// LoadFromDB builds a Snapshot from an already-open *sql.DB.
func LoadFromDB(ctx context.Context, db *sql.DB) (*catalog.Snapshot, error) {
	snapshot := catalog.NewSnapshot().WithSchema(definition.DefaultSchema)

	names, err := tableNames(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("litecatalog: listing tables: %w", err)
	}
	for _, name := range names {
		table, err := tableDef(ctx, db, name)
		if err != nil {
			return nil, fmt.Errorf("litecatalog: describing %s: %w", name, err)
		}
		snapshot = snapshot.WithTable(table)
	}
	return snapshot, nil
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
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

func tableDef(ctx context.Context, db *sql.DB, tableName string) (definition.TableDef, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, tableName))
	if err != nil {
		return definition.TableDef{}, err
	}
	defer func() { _ = rows.Close() }()

	var cols []definition.ColumnDef
	for rows.Next() {
		var cid int
		var name, declType string
		var notNull int
		var dflt sql.NullString
		var pk int
		if err := rows.Scan(&cid, &name, &declType, &notNull, &dflt, &pk); err != nil {
			return definition.TableDef{}, err
		}
		typeName, length := splitDeclaredType(declType)
		sqlType, err := types.FromDataTypeName(typeName, length)
		if err != nil {
			return definition.TableDef{}, fmt.Errorf("column %s: %w", name, err)
		}
		cols = append(cols, definition.NewColumnDef(name, sqlType, cid))
	}
	if err := rows.Err(); err != nil {
		return definition.TableDef{}, err
	}

	full := definition.NewFullTableNameFrom(definition.DefaultSchema, tableName)
	return definition.NewTableDef(full, cols), nil
}

// splitDeclaredType lowercases a PRAGMA table_info declared-type string
// (e.g. "VARCHAR(255)", "INTEGER") and pulls out its parenthesized length,
// mirroring internal/analyzer's extractTypeNameAndLength for pg_query_go
// TypeName nodes.
func splitDeclaredType(declType string) (string, uint64) {
	name := strings.ToLower(strings.TrimSpace(declType))
	open := strings.IndexByte(name, '(')
	if open == -1 {
		return name, 0
	}
	shut := strings.IndexByte(name[open:], ')')
	if shut == -1 {
		return strings.TrimSpace(name[:open]), 0
	}
	lengthStr := name[open+1 : open+shut]
	length, err := strconv.ParseUint(strings.TrimSpace(lengthStr), 10, 64)
	if err != nil {
		return strings.TrimSpace(name[:open]), 0
	}
	return strings.TrimSpace(name[:open]), length
}
