package analyzer

import (
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/sqlcore/sqlcore/internal/definition"
	coretypes "github.com/sqlcore/sqlcore/internal/types"
	"github.com/sqlcore/sqlcore/internal/ddl"
)

func analyzeCreateSchema(stmt *pg_query.CreateSchemaStmt) (*ddl.SchemaChange, error) {
	name, err := definition.NewSchemaName([]string{stmt.Schemaname})
	if err != nil {
		return nil, err
	}
	return &ddl.SchemaChange{CreateSchema: &ddl.CreateSchema{
		SchemaName:  name,
		IfNotExists: stmt.IfNotExists,
	}}, nil
}

func analyzeCreateTable(stmt *pg_query.CreateStmt) (*ddl.SchemaChange, error) {
	if stmt.Relation == nil {
		return nil, &SyntaxError{RenderedLocus: "CREATE TABLE missing relation"}
	}
	var segments []string
	if stmt.Relation.Catalogname != "" {
		segments = append(segments, stmt.Relation.Catalogname)
	}
	if stmt.Relation.Schemaname != "" {
		segments = append(segments, stmt.Relation.Schemaname)
	}
	segments = append(segments, stmt.Relation.Relname)
	fullName, err := definition.NewFullTableName(segments)
	if err != nil {
		return nil, err
	}

	var cols []definition.ColumnDef
	ordNum := 0
	for _, elt := range stmt.TableElts {
		if elt.Node == nil {
			continue
		}
		colDefNode, ok := elt.Node.(*pg_query.Node_ColumnDef)
		if !ok {
			continue // table-level constraints carry no column of their own
		}
		col, err := analyzeColumnDef(colDefNode.ColumnDef, ordNum)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		ordNum++
	}

	return &ddl.SchemaChange{CreateTable: &ddl.CreateTable{
		FullTableName: fullName,
		Columns:       cols,
		IfNotExists:   stmt.IfNotExists,
	}}, nil
}

func analyzeColumnDef(col *pg_query.ColumnDef, ordNum int) (definition.ColumnDef, error) {
	if col.Colname == "" {
		return definition.ColumnDef{}, &SyntaxError{RenderedLocus: "column missing name"}
	}
	typeName, length := extractTypeNameAndLength(col.TypeName)
	sqlType, err := coretypes.FromDataTypeName(typeName, length)
	if err != nil {
		return definition.ColumnDef{}, &FeatureNotSupported{Feature: Feature(fmt.Sprintf("type %s", typeName))}
	}
	return definition.NewColumnDef(col.Colname, sqlType, ordNum), nil
}

// extractTypeNameAndLength reads a TypeName's base name (last segment,
// lowercased, pg_catalog-qualified names stripped of their prefix the way
// the postgres parser reports built-ins) and its first type modifier, the
// length used by char/varchar.
func extractTypeNameAndLength(typeName *pg_query.TypeName) (string, uint64) {
	if typeName == nil {
		return "", 0
	}
	var parts []string
	for _, n := range typeName.Names {
		if s, ok := n.Node.(*pg_query.Node_String_); ok {
			parts = append(parts, s.String_.Sval)
		}
	}
	if len(parts) == 0 {
		return "", 0
	}
	name := parts[len(parts)-1]
	if len(parts) > 1 && parts[0] == "pg_catalog" {
		name = parts[len(parts)-1]
	}
	name = strings.ToLower(name)

	var length uint64
	for _, mod := range typeName.Typmods {
		if c, ok := mod.Node.(*pg_query.Node_AConst); ok {
			if ival, ok := c.AConst.Val.(*pg_query.A_Const_Ival); ok {
				length = uint64(ival.Ival.Ival)
				break
			}
		}
	}
	return name, length
}

func analyzeDropStmt(stmt *pg_query.DropStmt) (*ddl.SchemaChange, error) {
	cascade := stmt.Behavior == pg_query.DropBehavior_DROP_CASCADE
	switch stmt.RemoveType {
	case pg_query.ObjectType_OBJECT_SCHEMA:
		var names []definition.SchemaName
		for _, obj := range stmt.Objects {
			segments := dropObjectSegments(obj)
			name, err := definition.NewSchemaName(segments)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		return &ddl.SchemaChange{DropSchemas: &ddl.DropSchemas{
			SchemaNames: names,
			Cascade:     cascade,
			IfExists:    stmt.MissingOk,
		}}, nil
	case pg_query.ObjectType_OBJECT_TABLE:
		var fulls []definition.FullTableName
		for _, obj := range stmt.Objects {
			segments := dropObjectSegments(obj)
			full, err := definition.NewFullTableName(segments)
			if err != nil {
				return nil, err
			}
			fulls = append(fulls, full)
		}
		return &ddl.SchemaChange{DropTables: &ddl.DropTables{
			FullTableNames: fulls,
			Cascade:        cascade,
			IfExists:       stmt.MissingOk,
		}}, nil
	default:
		return nil, &FeatureNotSupported{Feature: Feature(fmt.Sprintf("DROP %s", stmt.RemoveType))}
	}
}

// dropObjectSegments reads one DropStmt.Objects element, which the
// postgres grammar represents either as a bare String (unqualified names,
// e.g. schema names) or as a List of String segments (dotted names, e.g.
// schema.table).
func dropObjectSegments(obj *pg_query.Node) []string {
	if obj == nil || obj.Node == nil {
		return nil
	}
	switch n := obj.Node.(type) {
	case *pg_query.Node_String_:
		return []string{n.String_.Sval}
	case *pg_query.Node_List:
		var segments []string
		for _, item := range n.List.Items {
			if s, ok := item.Node.(*pg_query.Node_String_); ok {
				segments = append(segments, s.String_.Sval)
			}
		}
		return segments
	default:
		return nil
	}
}
