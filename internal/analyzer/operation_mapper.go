package analyzer

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/sqlcore/sqlcore/internal/untyped"
)

// operatorSymbol extracts the operator text pg_query attaches to an A_Expr
// node's Name list (a single-element list holding the symbol, e.g. "+",
// ">="); a BoolExpr's boolop is read by boolOpSymbol instead.
func operatorSymbol(expr *pg_query.A_Expr) string {
	for _, n := range expr.Name {
		if s, ok := n.Node.(*pg_query.Node_String_); ok {
			return s.String_.Sval
		}
	}
	return ""
}

func boolOpSymbol(op pg_query.BoolExprType) string {
	switch op {
	case pg_query.BoolExprType_AND_EXPR:
		return "AND"
	case pg_query.BoolExprType_OR_EXPR:
		return "OR"
	default:
		return ""
	}
}

// mapAExprKind folds the A_Expr Kind (plain operator vs LIKE-family) into
// the symbol LookupOperator expects.
func mapAExprKind(kind pg_query.A_Expr_Kind, symbol string) string {
	switch kind {
	case pg_query.A_Expr_Kind_AEXPR_LIKE:
		return "LIKE"
	case pg_query.A_Expr_Kind_AEXPR_NOT_LIKE:
		return "NOT LIKE"
	default:
		return symbol
	}
}

// lookupOperation resolves an operator symbol to its untyped.Operator,
// ok=false for anything outside the accepted set (SPEC_FULL.md §6).
func lookupOperation(symbol string) (untyped.Operator, bool) {
	return untyped.LookupOperator(symbol)
}
