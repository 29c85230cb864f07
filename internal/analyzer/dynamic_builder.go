package analyzer

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/untyped"
)

// buildDynamic lowers a column-bearing expression (SELECT projections,
// UPDATE assignments) into a DynamicUntypedTree, resolving bare column
// references against table.
func buildDynamic(node *pg_query.Node, table definition.TableDef) (*untyped.DynamicUntypedTree, error) {
	if node == nil || node.Node == nil {
		return nil, &SyntaxError{RenderedLocus: "<empty expression>"}
	}
	switch n := node.Node.(type) {
	case *pg_query.Node_AConst:
		return dynamicConstFromAConst(n.AConst)
	case *pg_query.Node_ParamRef:
		return untyped.DynamicParam(int(n.ParamRef.Number) - 1), nil
	case *pg_query.Node_ColumnRef:
		name := columnRefName(n.ColumnRef)
		col, ok := table.Column(name)
		if !ok {
			return nil, &ColumnNotFound{Name: name}
		}
		return untyped.DynamicColumn(col), nil
	case *pg_query.Node_AExpr:
		return buildDynamicAExpr(n.AExpr, table)
	case *pg_query.Node_BoolExpr:
		return buildDynamicBoolExpr(n.BoolExpr, table)
	case *pg_query.Node_TypeCast:
		return buildDynamic(n.TypeCast.Arg, table)
	default:
		return nil, &SyntaxError{RenderedLocus: fmt.Sprintf("%T", node.Node)}
	}
}

func buildDynamicAExpr(expr *pg_query.A_Expr, table definition.TableDef) (*untyped.DynamicUntypedTree, error) {
	symbol := mapAExprKind(expr.Kind, operatorSymbol(expr))
	op, ok := lookupOperation(symbol)
	if !ok {
		return nil, &UndefinedFunction{Operator: symbol}
	}
	left, leftErr := buildDynamic(expr.Lexpr, table)
	right, rightErr := buildDynamic(expr.Rexpr, table)
	if leftErr != nil || rightErr != nil {
		return nil, &UndefinedFunction{Operator: op.String()}
	}
	return untyped.DynamicOp(left, op, right), nil
}

func buildDynamicBoolExpr(expr *pg_query.BoolExpr, table definition.TableDef) (*untyped.DynamicUntypedTree, error) {
	symbol := boolOpSymbol(expr.Boolop)
	op, ok := lookupOperation(symbol)
	if !ok || len(expr.Args) != 2 {
		return nil, &UndefinedFunction{Operator: symbol}
	}
	left, leftErr := buildDynamic(expr.Args[0], table)
	right, rightErr := buildDynamic(expr.Args[1], table)
	if leftErr != nil || rightErr != nil {
		return nil, &UndefinedFunction{Operator: op.String()}
	}
	return untyped.DynamicOp(left, op, right), nil
}

func dynamicConstFromAConst(c *pg_query.A_Const) (*untyped.DynamicUntypedTree, error) {
	if c.Isnull {
		return untyped.DynamicConst(untyped.NullValue()), nil
	}
	switch v := c.Val.(type) {
	case *pg_query.A_Const_Ival:
		return untyped.DynamicConst(untyped.NumberValue(fmt.Sprintf("%d", v.Ival.Ival))), nil
	case *pg_query.A_Const_Fval:
		return untyped.DynamicConst(untyped.NumberValue(v.Fval.Fval)), nil
	case *pg_query.A_Const_Sval:
		return untyped.DynamicConst(untyped.StringValue(v.Sval.Sval)), nil
	case *pg_query.A_Const_Boolval:
		return untyped.DynamicConst(untyped.BoolValue(v.Boolval.Boolval)), nil
	case *pg_query.A_Const_Bsval:
		return nil, &FeatureNotSupported{Feature: FeatureHexStringLiteral}
	default:
		return nil, &SyntaxError{RenderedLocus: "unrecognized constant"}
	}
}
