// Package analyzer implements the query analyzer: it validates a parsed
// SQL AST against a catalog and lowers it into an untyped intermediate
// tree (DML) or a schema-change intent (DDL). The analyzer performs no
// I/O and is safe to call concurrently given independent, immutable
// catalog.Capability values (see AnalyzeAll).
package analyzer

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/ddl"
	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/untyped"
)

// QueryAnalysisKind tags which variant of QueryAnalysis is populated.
type QueryAnalysisKind int

const (
	AnalysisWrite QueryAnalysisKind = iota
	AnalysisRead
	AnalysisDataDefinition
)

// QueryAnalysis is the analyzer's result: a write, a read, or a
// data-definition change, never more than one populated.
type QueryAnalysis struct {
	Kind           QueryAnalysisKind
	Write          *untyped.UntypedWrite
	Read           *untyped.SelectQuery
	DataDefinition *ddl.SchemaChange
}

// Analyze parses sql and produces its QueryAnalysis against cat. Exactly
// one statement is expected; a multi-statement string analyzes only the
// first (callers wanting batch semantics should split statements
// themselves, e.g. via AnalyzeAll).
func Analyze(sql string, cat catalog.Capability) (QueryAnalysis, error) {
	result, err := pg_query.Parse(sql)
	if err != nil {
		return QueryAnalysis{}, &SyntaxError{RenderedLocus: err.Error()}
	}
	if len(result.Stmts) == 0 {
		return QueryAnalysis{}, &SyntaxError{RenderedLocus: "<empty statement>"}
	}
	stmt := result.Stmts[0].Stmt
	if stmt == nil || stmt.Node == nil {
		return QueryAnalysis{}, &SyntaxError{RenderedLocus: "<empty statement>"}
	}

	switch n := stmt.Node.(type) {
	case *pg_query.Node_InsertStmt:
		q, err := analyzeInsert(n.InsertStmt, cat)
		if err != nil {
			return QueryAnalysis{}, err
		}
		write := &untyped.UntypedWrite{Kind: untyped.WriteInsert, Insert: q}
		return QueryAnalysis{Kind: AnalysisWrite, Write: write}, nil
	case *pg_query.Node_UpdateStmt:
		q, err := analyzeUpdate(n.UpdateStmt, cat)
		if err != nil {
			return QueryAnalysis{}, err
		}
		write := &untyped.UntypedWrite{Kind: untyped.WriteUpdate, Update: q}
		return QueryAnalysis{Kind: AnalysisWrite, Write: write}, nil
	case *pg_query.Node_DeleteStmt:
		q, err := analyzeDelete(n.DeleteStmt, cat)
		if err != nil {
			return QueryAnalysis{}, err
		}
		write := &untyped.UntypedWrite{Kind: untyped.WriteDelete, Delete: q}
		return QueryAnalysis{Kind: AnalysisWrite, Write: write}, nil
	case *pg_query.Node_SelectStmt:
		q, err := analyzeSelect(n.SelectStmt, cat)
		if err != nil {
			return QueryAnalysis{}, err
		}
		return QueryAnalysis{Kind: AnalysisRead, Read: q}, nil
	case *pg_query.Node_CreateSchemaStmt:
		change, err := analyzeCreateSchema(n.CreateSchemaStmt)
		if err != nil {
			return QueryAnalysis{}, err
		}
		return QueryAnalysis{Kind: AnalysisDataDefinition, DataDefinition: change}, nil
	case *pg_query.Node_DropStmt:
		change, err := analyzeDropStmt(n.DropStmt)
		if err != nil {
			return QueryAnalysis{}, err
		}
		return QueryAnalysis{Kind: AnalysisDataDefinition, DataDefinition: change}, nil
	case *pg_query.Node_CreateStmt:
		change, err := analyzeCreateTable(n.CreateStmt)
		if err != nil {
			return QueryAnalysis{}, err
		}
		return QueryAnalysis{Kind: AnalysisDataDefinition, DataDefinition: change}, nil
	default:
		return QueryAnalysis{}, &FeatureNotSupported{Feature: FeatureUnsupportedStatement}
	}
}

// resolveTarget runs the shared DML preamble (SPEC_FULL.md §4.2): turn a
// RangeVar into a FullTableName, and confirm both schema and table exist
// in cat.
func resolveTarget(rel *pg_query.RangeVar, cat catalog.Capability) (definition.FullTableName, definition.TableDef, error) {
	if rel == nil {
		return definition.FullTableName{}, definition.TableDef{}, &SyntaxError{RenderedLocus: "missing table reference"}
	}
	var segments []string
	if rel.Catalogname != "" {
		segments = append(segments, rel.Catalogname)
	}
	if rel.Schemaname != "" {
		segments = append(segments, rel.Schemaname)
	}
	segments = append(segments, rel.Relname)

	fullName, err := definition.NewFullTableName(segments)
	if err != nil {
		return definition.FullTableName{}, definition.TableDef{}, err
	}
	if !cat.SchemaExists(fullName.Schema()) {
		return definition.FullTableName{}, definition.TableDef{}, &SchemaDoesNotExist{Name: fullName.Schema()}
	}
	table, ok := cat.Table(fullName.Schema(), fullName.Table())
	if !ok {
		return definition.FullTableName{}, definition.TableDef{}, &TableDoesNotExist{QualifiedName: fullName.String()}
	}
	return fullName, table, nil
}

func nodeListToColumnRefName(node *pg_query.Node) (string, error) {
	ref, ok := node.Node.(*pg_query.Node_ColumnRef)
	if !ok {
		return "", &SyntaxError{RenderedLocus: fmt.Sprintf("%T", node.Node)}
	}
	return columnRefName(ref.ColumnRef), nil
}
