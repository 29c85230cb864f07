// Package untyped implements the untyped intermediate trees and DML query
// shapes the query analyzer produces: values and operators are resolved
// and structurally validated, but no SQL type checking happens here.
package untyped

import (
	"fmt"

	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/types"
)

// ValueKind tags the variant of an UntypedValue.
type ValueKind int

const (
	ValueNumber ValueKind = iota
	ValueString
	ValueBool
	ValueNull
)

// UntypedValue is a literal constant: a number (kept as decimal text to
// avoid premature float/int commitment), a string, a bool, or null.
type UntypedValue struct {
	Kind   ValueKind
	Number string // decimal text, valid when Kind == ValueNumber
	Text   string // valid when Kind == ValueString
	Bool   bool   // valid when Kind == ValueBool
}

func NumberValue(decimal string) UntypedValue { return UntypedValue{Kind: ValueNumber, Number: decimal} }
func StringValue(text string) UntypedValue    { return UntypedValue{Kind: ValueString, Text: text} }
func BoolValue(b bool) UntypedValue           { return UntypedValue{Kind: ValueBool, Bool: b} }
func NullValue() UntypedValue                 { return UntypedValue{Kind: ValueNull} }

func (v UntypedValue) String() string {
	switch v.Kind {
	case ValueNumber:
		return v.Number
	case ValueString:
		return v.Text
	case ValueBool:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		return "null"
	}
}

// OperationFamily groups the accepted binary operators by overload class.
type OperationFamily int

const (
	FamilyArithmetic OperationFamily = iota
	FamilyComparison
	FamilyLogical
	FamilyBitwise
	FamilyStringOp
	FamilyPatternMatching
)

// Operator is one accepted binary operator, tagged with its family.
type Operator struct {
	Family OperationFamily
	Symbol string // e.g. "+", ">", "AND", "||", "LIKE"
}

var (
	OpAdd      = Operator{FamilyArithmetic, "+"}
	OpSubtract = Operator{FamilyArithmetic, "-"}
	OpMultiply = Operator{FamilyArithmetic, "*"}
	OpDivide   = Operator{FamilyArithmetic, "/"}
	OpModulo   = Operator{FamilyArithmetic, "%"}

	OpEq        = Operator{FamilyComparison, "="}
	OpNotEq     = Operator{FamilyComparison, "<>"}
	OpLess      = Operator{FamilyComparison, "<"}
	OpLessEq    = Operator{FamilyComparison, "<="}
	OpGreater   = Operator{FamilyComparison, ">"}
	OpGreaterEq = Operator{FamilyComparison, ">="}

	OpAnd = Operator{FamilyLogical, "AND"}
	OpOr  = Operator{FamilyLogical, "OR"}

	OpBitAnd      = Operator{FamilyBitwise, "&"}
	OpBitOr       = Operator{FamilyBitwise, "|"}
	OpBitXor      = Operator{FamilyBitwise, "#"}
	OpShiftLeft   = Operator{FamilyBitwise, "<<"}
	OpShiftRight  = Operator{FamilyBitwise, ">>"}

	OpConcat = Operator{FamilyStringOp, "||"}

	OpLike    = Operator{FamilyPatternMatching, "LIKE"}
	OpNotLike = Operator{FamilyPatternMatching, "NOT LIKE"}
)

// operatorsBySymbol is the total, data-only dispatch table SPEC_FULL.md
// §9 calls for; it is consulted by both tree builders.
var operatorsBySymbol = map[string]Operator{
	"+": OpAdd, "-": OpSubtract, "*": OpMultiply, "/": OpDivide, "%": OpModulo,
	"=": OpEq, "<>": OpNotEq, "!=": OpNotEq, "<": OpLess, "<=": OpLessEq, ">": OpGreater, ">=": OpGreaterEq,
	"AND": OpAnd, "OR": OpOr,
	"&": OpBitAnd, "|": OpBitOr, "#": OpBitXor, "<<": OpShiftLeft, ">>": OpShiftRight,
	"||":       OpConcat,
	"LIKE":     OpLike,
	"NOT LIKE": OpNotLike,
}

// LookupOperator maps a parsed operator symbol/keyword to its Operator,
// ok=false for anything outside the accepted set.
func LookupOperator(symbol string) (Operator, bool) {
	op, ok := operatorsBySymbol[symbol]
	return op, ok
}

func (o Operator) String() string { return o.Symbol }

// StaticUntypedTree is an expression tree whose leaves are literals or
// parameters only (used for INSERT VALUES).
type StaticUntypedTree struct {
	// Exactly one of Const/Param/Operation is set.
	IsConst    bool
	Const      UntypedValue
	IsParam    bool
	ParamIndex int // zero-based

	IsOperation bool
	Op          Operator
	Left        *StaticUntypedTree
	Right       *StaticUntypedTree
}

func StaticConst(v UntypedValue) *StaticUntypedTree {
	return &StaticUntypedTree{IsConst: true, Const: v}
}

func StaticParam(index int) *StaticUntypedTree {
	return &StaticUntypedTree{IsParam: true, ParamIndex: index}
}

func StaticOp(left *StaticUntypedTree, op Operator, right *StaticUntypedTree) *StaticUntypedTree {
	return &StaticUntypedTree{IsOperation: true, Op: op, Left: left, Right: right}
}

// DynamicUntypedTree extends StaticUntypedTree with resolved column leaves
// (used for SELECT projections and UPDATE assignments).
type DynamicUntypedTree struct {
	IsConst    bool
	Const      UntypedValue
	IsParam    bool
	ParamIndex int

	IsColumn   bool
	ColumnName string
	ColumnOrd  int
	ColumnType types.SqlType

	IsOperation bool
	Op          Operator
	Left        *DynamicUntypedTree
	Right       *DynamicUntypedTree
}

func DynamicConst(v UntypedValue) *DynamicUntypedTree {
	return &DynamicUntypedTree{IsConst: true, Const: v}
}

func DynamicParam(index int) *DynamicUntypedTree {
	return &DynamicUntypedTree{IsParam: true, ParamIndex: index}
}

func DynamicColumn(col definition.ColumnDef) *DynamicUntypedTree {
	return &DynamicUntypedTree{IsColumn: true, ColumnName: col.Name(), ColumnOrd: col.OrdNum(), ColumnType: col.SqlType()}
}

func DynamicOp(left *DynamicUntypedTree, op Operator, right *DynamicUntypedTree) *DynamicUntypedTree {
	return &DynamicUntypedTree{IsOperation: true, Op: op, Left: left, Right: right}
}

func (t *StaticUntypedTree) String() string {
	switch {
	case t.IsConst:
		return t.Const.String()
	case t.IsParam:
		return fmt.Sprintf("$%d", t.ParamIndex+1)
	case t.IsOperation:
		return fmt.Sprintf("(%s %s %s)", t.Left, t.Op, t.Right)
	default:
		return "<empty>"
	}
}

func (t *DynamicUntypedTree) String() string {
	switch {
	case t.IsConst:
		return t.Const.String()
	case t.IsParam:
		return fmt.Sprintf("$%d", t.ParamIndex+1)
	case t.IsColumn:
		return t.ColumnName
	case t.IsOperation:
		return fmt.Sprintf("(%s %s %s)", t.Left, t.Op, t.Right)
	default:
		return "<empty>"
	}
}

// InsertQuery is the lowered form of INSERT INTO ... VALUES ...; each cell
// is nil when the corresponding value was omitted (DEFAULT).
type InsertQuery struct {
	FullTableName definition.FullTableName
	Values        [][]*StaticUntypedTree
}

// UpdateQuery is the lowered form of UPDATE ... SET ...
type UpdateQuery struct {
	FullTableName definition.FullTableName
	ColumnNames   []string
	Assignments   []*DynamicUntypedTree
}

// SelectQuery is the lowered form of SELECT ... FROM ...
type SelectQuery struct {
	FullTableName   definition.FullTableName
	ProjectionItems []*DynamicUntypedTree
}

// DeleteQuery is the lowered form of DELETE FROM ...
type DeleteQuery struct {
	FullTableName definition.FullTableName
}

// WriteKind tags the variant of an UntypedWrite.
type WriteKind int

const (
	WriteInsert WriteKind = iota
	WriteUpdate
	WriteDelete
)

// UntypedWrite is the tagged union over the three write-shaped DML query
// results the analyzer can produce.
type UntypedWrite struct {
	Kind   WriteKind
	Insert *InsertQuery
	Update *UpdateQuery
	Delete *DeleteQuery
}
