package analyzer

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/sqlcore/sqlcore/internal/untyped"
)

// buildStatic lowers a literal-context expression (INSERT VALUES) into a
// StaticUntypedTree. A bare column reference is rejected here since
// literal contexts never resolve columns; see buildDynamic for the
// column-bearing counterpart.
//
// Note on parameters: the grammar pg_query compiles (real PostgreSQL SQL)
// represents "$1" placeholders as their own ParamRef node, not as an
// identifier whose text happens to match "$<n>" — unlike the lighter
// sqlparser-rs grammar this analyzer's algorithm was originally described
// against. The parse_param_index step therefore becomes "is this node a
// ParamRef", not a text match; the resulting tree shape is identical.
func buildStatic(node *pg_query.Node) (*untyped.StaticUntypedTree, error) {
	if node == nil || node.Node == nil {
		return nil, &SyntaxError{RenderedLocus: "<empty expression>"}
	}
	switch n := node.Node.(type) {
	case *pg_query.Node_AConst:
		return staticConstFromAConst(n.AConst)
	case *pg_query.Node_ParamRef:
		return untyped.StaticParam(int(n.ParamRef.Number) - 1), nil
	case *pg_query.Node_ColumnRef:
		name := columnRefName(n.ColumnRef)
		return nil, &ColumnCantBeReferenced{Name: name}
	case *pg_query.Node_AExpr:
		return buildStaticAExpr(n.AExpr)
	case *pg_query.Node_BoolExpr:
		return buildStaticBoolExpr(n.BoolExpr)
	case *pg_query.Node_TypeCast:
		return buildStatic(n.TypeCast.Arg)
	default:
		return nil, &SyntaxError{RenderedLocus: fmt.Sprintf("%T", node.Node)}
	}
}

func buildStaticAExpr(expr *pg_query.A_Expr) (*untyped.StaticUntypedTree, error) {
	symbol := mapAExprKind(expr.Kind, operatorSymbol(expr))
	op, ok := lookupOperation(symbol)
	if !ok {
		return nil, &UndefinedFunction{Operator: symbol}
	}
	left, leftErr := buildStatic(expr.Lexpr)
	right, rightErr := buildStatic(expr.Rexpr)
	if leftErr != nil || rightErr != nil {
		return nil, &UndefinedFunction{Operator: op.String()}
	}
	return untyped.StaticOp(left, op, right), nil
}

func buildStaticBoolExpr(expr *pg_query.BoolExpr) (*untyped.StaticUntypedTree, error) {
	symbol := boolOpSymbol(expr.Boolop)
	op, ok := lookupOperation(symbol)
	if !ok || len(expr.Args) != 2 {
		return nil, &UndefinedFunction{Operator: symbol}
	}
	left, leftErr := buildStatic(expr.Args[0])
	right, rightErr := buildStatic(expr.Args[1])
	if leftErr != nil || rightErr != nil {
		return nil, &UndefinedFunction{Operator: op.String()}
	}
	return untyped.StaticOp(left, op, right), nil
}

func staticConstFromAConst(c *pg_query.A_Const) (*untyped.StaticUntypedTree, error) {
	if c.Isnull {
		return untyped.StaticConst(untyped.NullValue()), nil
	}
	switch v := c.Val.(type) {
	case *pg_query.A_Const_Ival:
		return untyped.StaticConst(untyped.NumberValue(fmt.Sprintf("%d", v.Ival.Ival))), nil
	case *pg_query.A_Const_Fval:
		return untyped.StaticConst(untyped.NumberValue(v.Fval.Fval)), nil
	case *pg_query.A_Const_Sval:
		return untyped.StaticConst(untyped.StringValue(v.Sval.Sval)), nil
	case *pg_query.A_Const_Boolval:
		return untyped.StaticConst(untyped.BoolValue(v.Boolval.Boolval)), nil
	case *pg_query.A_Const_Bsval:
		return nil, &FeatureNotSupported{Feature: FeatureHexStringLiteral}
	default:
		return nil, &SyntaxError{RenderedLocus: "unrecognized constant"}
	}
}

func columnRefName(ref *pg_query.ColumnRef) string {
	var parts []string
	for _, f := range ref.Fields {
		if s, ok := f.Node.(*pg_query.Node_String_); ok {
			parts = append(parts, s.String_.Sval)
		}
	}
	if len(parts) == 0 {
		return "*"
	}
	name := parts[0]
	for _, p := range parts[1:] {
		name += "." + p
	}
	return name
}
