package analyzer

import "fmt"

// SchemaDoesNotExist is returned when a DML statement targets a schema
// absent from the catalog.
type SchemaDoesNotExist struct{ Name string }

func (e *SchemaDoesNotExist) Error() string { return fmt.Sprintf("schema %q does not exist", e.Name) }

// TableDoesNotExist is returned when a DML statement targets a table
// absent from the catalog.
type TableDoesNotExist struct{ QualifiedName string }

func (e *TableDoesNotExist) Error() string {
	return fmt.Sprintf("table %q does not exist", e.QualifiedName)
}

// ColumnNotFound is returned when a referenced column is absent from the
// target table.
type ColumnNotFound struct{ Name string }

func (e *ColumnNotFound) Error() string { return fmt.Sprintf("column %q not found", e.Name) }

// ColumnCantBeReferenced is returned when a column identifier appears in
// a literal-only context (INSERT VALUES).
type ColumnCantBeReferenced struct{ Name string }

func (e *ColumnCantBeReferenced) Error() string {
	return fmt.Sprintf("column %q can't be referenced here", e.Name)
}

// SyntaxError is returned for expression/statement shapes outside the
// accepted grammar, carrying a rendered locus for diagnostics.
type SyntaxError struct{ RenderedLocus string }

func (e *SyntaxError) Error() string { return fmt.Sprintf("syntax error: %s", e.RenderedLocus) }

// UndefinedFunction is returned when a binary operator's operand failed
// to build; the operator is reported, never the child's own error (see
// buildStaticAExpr / buildStaticBoolExpr and buildDynamicAExpr /
// buildDynamicBoolExpr).
type UndefinedFunction struct{ Operator string }

func (e *UndefinedFunction) Error() string {
	return fmt.Sprintf("undefined function/operator: %s", e.Operator)
}

// Feature names a construct recognized by the grammar but not implemented.
type Feature string

const (
	FeatureNationalStringLiteral Feature = "national string literal"
	FeatureHexStringLiteral      Feature = "hex string literal"
	FeatureTimeInterval          Feature = "time interval"
	FeatureUnsupportedStatement  Feature = "unsupported statement"
)

// FeatureNotSupported is returned for recognized-but-unimplemented syntax.
type FeatureNotSupported struct{ Feature Feature }

func (e *FeatureNotSupported) Error() string {
	return fmt.Sprintf("feature not supported: %s", e.Feature)
}

// Note: TableNamingError and SchemaNamingError, also part of this
// taxonomy, are defined in internal/definition and surfaced unchanged by
// the analyzer's name-parsing preamble rather than wrapped here.
