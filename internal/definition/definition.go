// Package definition implements the qualified-name and table/column
// definition entities shared by the DDL planner and the query analyzer.
package definition

import (
	"fmt"
	"strings"

	"github.com/sqlcore/sqlcore/internal/types"
)

// DefaultSchema is substituted for an unqualified one-segment table name.
const DefaultSchema = "public"

// FullTableName is a lowercased (schema, table) pair, built from a one- or
// two-segment object name.
type FullTableName struct {
	schema string
	table  string
}

// NewFullTableName builds a FullTableName from the dot-separated segments
// of a parsed object name. A one-segment name defaults its schema to
// "public"; three or more segments are a TableNamingError.
func NewFullTableName(segments []string) (FullTableName, error) {
	if len(segments) > 2 {
		return FullTableName{}, &TableNamingError{Raw: strings.Join(segments, ".")}
	}
	if len(segments) == 1 {
		return FullTableName{schema: DefaultSchema, table: strings.ToLower(segments[0])}, nil
	}
	return FullTableName{
		schema: strings.ToLower(segments[0]),
		table:  strings.ToLower(segments[len(segments)-1]),
	}, nil
}

// NewFullTableNameFrom builds a FullTableName directly from an already
// resolved (schema, table) pair, lowercasing both. Used when the schema is
// known out of band (e.g. catalog loaders and snapshot decoding rebuilding
// names from stored schema/table pairs), where NewFullTableName's
// segment-count rule does not apply.
func NewFullTableNameFrom(schema, table string) FullTableName {
	return FullTableName{schema: strings.ToLower(schema), table: strings.ToLower(table)}
}

func (n FullTableName) Schema() string { return n.schema }
func (n FullTableName) Table() string  { return n.table }

func (n FullTableName) String() string {
	return fmt.Sprintf("%s.%s", n.schema, n.table)
}

// TableNamingError is returned for object names with more than two
// segments, e.g. "db.schema.table".
type TableNamingError struct {
	Raw string
}

func (e *TableNamingError) Error() string {
	return fmt.Sprintf("unable to process table name %q", e.Raw)
}

// SchemaName is a single lowercased identifier.
type SchemaName struct {
	name string
}

// NewSchemaName builds a SchemaName from object-name segments; more than
// one segment is a SchemaNamingError.
func NewSchemaName(segments []string) (SchemaName, error) {
	if len(segments) != 1 {
		return SchemaName{}, &SchemaNamingError{Raw: strings.Join(segments, ".")}
	}
	return SchemaName{name: strings.ToLower(segments[0])}, nil
}

// SchemaNameFrom builds a SchemaName from an already-unqualified string,
// lowercasing it. Used where the caller already knows the name is
// unqualified (e.g. building a SchemaName for a step from a FullTableName).
func SchemaNameFrom(name string) SchemaName {
	return SchemaName{name: strings.ToLower(name)}
}

func (n SchemaName) String() string { return n.name }

// SchemaNamingError is returned for a qualified name where only an
// unqualified schema name is accepted.
type SchemaNamingError struct {
	Raw string
}

func (e *SchemaNamingError) Error() string {
	return fmt.Sprintf("only unqualified schema names are supported, %q", e.Raw)
}

// ColumnDef is one column of a TableDef: its name, SQL type, and ordinal
// position (the authoritative column order).
type ColumnDef struct {
	name    string
	sqlType types.SqlType
	ordNum  int
}

func NewColumnDef(name string, sqlType types.SqlType, ordNum int) ColumnDef {
	return ColumnDef{name: strings.ToLower(name), sqlType: sqlType, ordNum: ordNum}
}

func (c ColumnDef) Name() string            { return c.name }
func (c ColumnDef) SqlType() types.SqlType   { return c.sqlType }
func (c ColumnDef) OrdNum() int              { return c.ordNum }
func (c ColumnDef) HasName(name string) bool { return c.name == strings.ToLower(name) }

// TableDef is a schema-qualified table name plus its ordered columns.
type TableDef struct {
	schema  string
	name    string
	columns []ColumnDef
}

func NewTableDef(fullName FullTableName, columns []ColumnDef) TableDef {
	return TableDef{schema: fullName.Schema(), name: fullName.Table(), columns: columns}
}

func (t TableDef) Schema() string        { return t.schema }
func (t TableDef) Name() string          { return t.name }
func (t TableDef) Columns() []ColumnDef  { return t.columns }

// FullTableName reconstructs the qualified name this table def was built
// from.
func (t TableDef) FullTableName() FullTableName {
	return NewFullTableNameFrom(t.schema, t.name)
}

// ColumnNames returns the column names in declared order.
func (t TableDef) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.name
	}
	return names
}

// HasColumn reports whether name (case-insensitively) names a column.
func (t TableDef) HasColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, col := range t.columns {
		if col.name == lower {
			return true
		}
	}
	return false
}

// Column looks up a column by name, ok=false if absent.
func (t TableDef) Column(name string) (ColumnDef, bool) {
	lower := strings.ToLower(name)
	for _, col := range t.columns {
		if col.name == lower {
			return col, true
		}
	}
	return ColumnDef{}, false
}
