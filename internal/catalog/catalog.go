// Package catalog defines the narrow read-only view of schema/table/column
// metadata the query analyzer consults, plus a concrete in-memory
// Snapshot implementation and its JSON (de)serialization.
//
// A Snapshot is an immutable value: callers wanting to apply a
// SystemOperation build a new Snapshot rather than mutating one in place,
// matching the "catalog as immutable read snapshot" contract the analyzer
// and planner are specified against.
package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/sqlcore/sqlcore/internal/definition"
)

// Capability is the read-only surface the query analyzer is allowed to
// consult: does a schema exist, does a table exist, and what are its
// columns in declared order.
type Capability interface {
	SchemaExists(name string) bool
	Table(schemaName, tableName string) (definition.TableDef, bool)
}

// Snapshot is a concrete, serializable, in-memory Capability.
type Snapshot struct {
	schemas map[string]bool
	tables  map[string]definition.TableDef // key: "schema.table"
}

// NewSnapshot returns an empty snapshot with no schemas or tables.
func NewSnapshot() *Snapshot {
	return &Snapshot{schemas: map[string]bool{}, tables: map[string]definition.TableDef{}}
}

func tableKey(schemaName, tableName string) string {
	return schemaName + "." + tableName
}

func (s *Snapshot) SchemaExists(name string) bool {
	return s.schemas[name]
}

func (s *Snapshot) Table(schemaName, tableName string) (definition.TableDef, bool) {
	table, ok := s.tables[tableKey(schemaName, tableName)]
	return table, ok
}

// WithSchema returns a new Snapshot identical to s plus the named schema.
func (s *Snapshot) WithSchema(name string) *Snapshot {
	next := s.clone()
	next.schemas[name] = true
	return next
}

// HasTablesInSchema reports whether any table is currently registered
// under the named schema.
func (s *Snapshot) HasTablesInSchema(schemaName string) bool {
	return len(s.TablesInSchema(schemaName)) > 0
}

// TablesInSchema returns every table currently registered under the
// named schema, in no particular order.
func (s *Snapshot) TablesInSchema(schemaName string) []definition.TableDef {
	var tables []definition.TableDef
	for _, table := range s.tables {
		if table.Schema() == schemaName {
			tables = append(tables, table)
		}
	}
	return tables
}

// WithoutSchema returns a new Snapshot identical to s minus the named
// schema and any tables registered under it.
func (s *Snapshot) WithoutSchema(name string) *Snapshot {
	next := s.clone()
	delete(next.schemas, name)
	for key, table := range next.tables {
		if table.Schema() == name {
			delete(next.tables, key)
		}
	}
	return next
}

// WithTable returns a new Snapshot identical to s plus table (its schema
// must already exist).
func (s *Snapshot) WithTable(table definition.TableDef) *Snapshot {
	next := s.clone()
	next.tables[tableKey(table.Schema(), table.Name())] = table
	return next
}

// WithoutTable returns a new Snapshot identical to s minus the named
// table.
func (s *Snapshot) WithoutTable(schemaName, tableName string) *Snapshot {
	next := s.clone()
	delete(next.tables, tableKey(schemaName, tableName))
	return next
}

func (s *Snapshot) clone() *Snapshot {
	next := &Snapshot{
		schemas: make(map[string]bool, len(s.schemas)),
		tables:  make(map[string]definition.TableDef, len(s.tables)),
	}
	for k, v := range s.schemas {
		next.schemas[k] = v
	}
	for k, v := range s.tables {
		next.tables[k] = v
	}
	return next
}

// jsonColumn/jsonTable/jsonSnapshot mirror Snapshot's shape for
// marshaling; definition.ColumnDef/TableDef intentionally keep no JSON
// tags of their own since they are consumed structurally everywhere else.
type jsonColumn struct {
	Name    string `json:"name"`
	SqlType string `json:"sql_type"`
	OrdNum  int    `json:"ord_num"`
}

type jsonTable struct {
	Schema  string       `json:"schema"`
	Name    string       `json:"name"`
	Columns []jsonColumn `json:"columns"`
}

type jsonSnapshot struct {
	Schemas []string    `json:"schemas"`
	Tables  []jsonTable `json:"tables"`
}

// MarshalJSON renders the snapshot as a flat {schemas, tables} document.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	doc := jsonSnapshot{Schemas: []string{}, Tables: []jsonTable{}}
	for name := range s.schemas {
		doc.Schemas = append(doc.Schemas, name)
	}
	for _, table := range s.tables {
		jt := jsonTable{Schema: table.Schema(), Name: table.Name(), Columns: []jsonColumn{}}
		for _, col := range table.Columns() {
			jt.Columns = append(jt.Columns, jsonColumn{
				Name:    col.Name(),
				SqlType: col.SqlType().String(),
				OrdNum:  col.OrdNum(),
			})
		}
		doc.Tables = append(doc.Tables, jt)
	}
	return json.Marshal(doc)
}

// UnmarshalSnapshotJSON parses a JSON document produced by MarshalJSON
// back into a Snapshot. Column SQL types must be one of the names
// SqlType.String renders (e.g. "integer", "varchar(255)").
func UnmarshalSnapshotJSON(data []byte) (*Snapshot, error) {
	var doc jsonSnapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: parsing snapshot JSON: %w", err)
	}
	snapshot := NewSnapshot()
	for _, name := range doc.Schemas {
		snapshot = snapshot.WithSchema(name)
	}
	for _, jt := range doc.Tables {
		cols := make([]definition.ColumnDef, 0, len(jt.Columns))
		for _, jc := range jt.Columns {
			sqlType, err := parseRenderedSqlType(jc.SqlType)
			if err != nil {
				return nil, fmt.Errorf("catalog: column %s.%s.%s: %w", jt.Schema, jt.Name, jc.Name, err)
			}
			cols = append(cols, definition.NewColumnDef(jc.Name, sqlType, jc.OrdNum))
		}
		full := definition.NewFullTableNameFrom(jt.Schema, jt.Name)
		snapshot = snapshot.WithTable(definition.NewTableDef(full, cols))
	}
	return snapshot, nil
}
