package analyzer

import (
	"context"
	"testing"

	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/definition"
	"github.com/sqlcore/sqlcore/internal/types"
	"github.com/sqlcore/sqlcore/internal/untyped"
)

func testCatalog(t *testing.T) *catalog.Snapshot {
	t.Helper()
	full, err := definition.NewFullTableName([]string{"public", "users"})
	if err != nil {
		t.Fatalf("building full table name: %v", err)
	}
	cols := []definition.ColumnDef{
		definition.NewColumnDef("id", types.IntegerType(), 0),
		definition.NewColumnDef("name", types.VarChar(255), 1),
		definition.NewColumnDef("age", types.SmallIntType(), 2),
	}
	table := definition.NewTableDef(full, cols)
	return catalog.NewSnapshot().WithSchema("public").WithTable(table)
}

func TestAnalyzeInsertAllColumns(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`INSERT INTO users VALUES (1, 'ada', 30)`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Kind != AnalysisWrite || analysis.Write.Kind != untyped.WriteInsert {
		t.Fatalf("expected insert write, got %+v", analysis)
	}
	row := analysis.Write.Insert.Values[0]
	if len(row) != 3 {
		t.Fatalf("expected 3 values, got %d", len(row))
	}
	if row[1].Const.Text != "ada" {
		t.Fatalf("expected second value 'ada', got %+v", row[1])
	}
}

func TestAnalyzeInsertWithColumnList(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`INSERT INTO users (name, id) VALUES ('ada', 1)`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	row := analysis.Write.Insert.Values[0]
	if row[0].Const.Number != "1" {
		t.Fatalf("expected id column (ord 0) to hold 1, got %+v", row[0])
	}
	if row[1].Const.Text != "ada" {
		t.Fatalf("expected name column (ord 1) to hold 'ada', got %+v", row[1])
	}
}

func TestAnalyzeInsertWithParameter(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`INSERT INTO users VALUES ($1, $2, $3)`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	row := analysis.Write.Insert.Values[0]
	if !row[0].IsParam || row[0].ParamIndex != 0 {
		t.Fatalf("expected first value to be param 0, got %+v", row[0])
	}
}

func TestAnalyzeInsertColumnInValuesRejected(t *testing.T) {
	cat := testCatalog(t)
	_, err := Analyze(`INSERT INTO users VALUES (id, 'ada', 30)`, cat)
	if _, ok := err.(*ColumnCantBeReferenced); !ok {
		t.Fatalf("expected ColumnCantBeReferenced, got %v (%T)", err, err)
	}
}

func TestAnalyzeUpdateAssignment(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`UPDATE users SET age = age + 1`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Write.Kind != untyped.WriteUpdate {
		t.Fatalf("expected update write, got %+v", analysis.Write)
	}
	assignment := analysis.Write.Update.Assignments[0]
	if !assignment.IsOperation || assignment.Op.Symbol != "+" {
		t.Fatalf("expected an addition operation, got %+v", assignment)
	}
}

func TestAnalyzeUpdateUnknownColumn(t *testing.T) {
	cat := testCatalog(t)
	_, err := Analyze(`UPDATE users SET nickname = 'x'`, cat)
	if _, ok := err.(*ColumnNotFound); !ok {
		t.Fatalf("expected ColumnNotFound, got %v (%T)", err, err)
	}
}

func TestAnalyzeSelectWildcard(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`SELECT * FROM users`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(analysis.Read.ProjectionItems) != 3 {
		t.Fatalf("expected 3 projected columns, got %d", len(analysis.Read.ProjectionItems))
	}
}

func TestAnalyzeSelectUnqualifiedMatchesPublic(t *testing.T) {
	cat := testCatalog(t)
	unqualified, err := Analyze(`SELECT id FROM users`, cat)
	if err != nil {
		t.Fatalf("Analyze unqualified: %v", err)
	}
	qualified, err := Analyze(`SELECT id FROM public.users`, cat)
	if err != nil {
		t.Fatalf("Analyze qualified: %v", err)
	}
	if unqualified.Read.FullTableName != qualified.Read.FullTableName {
		t.Fatalf("expected unqualified and public-qualified names to match: %v vs %v",
			unqualified.Read.FullTableName, qualified.Read.FullTableName)
	}
}

func TestAnalyzeSelectUndefinedOperatorChildRewritten(t *testing.T) {
	cat := testCatalog(t)
	_, err := Analyze(`SELECT missing_column LIKE 'x' FROM users`, cat)
	uf, ok := err.(*UndefinedFunction)
	if !ok {
		t.Fatalf("expected UndefinedFunction rewriting the child failure, got %v (%T)", err, err)
	}
	if uf.Operator != "LIKE" {
		t.Fatalf("expected operator LIKE reported, got %q", uf.Operator)
	}
}

func TestAnalyzeDelete(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`DELETE FROM users`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if analysis.Write.Kind != untyped.WriteDelete {
		t.Fatalf("expected delete write, got %+v", analysis.Write)
	}
}

func TestAnalyzeSchemaDoesNotExist(t *testing.T) {
	cat := testCatalog(t)
	_, err := Analyze(`SELECT * FROM missing_schema.users`, cat)
	if _, ok := err.(*SchemaDoesNotExist); !ok {
		t.Fatalf("expected SchemaDoesNotExist, got %v (%T)", err, err)
	}
}

func TestAnalyzeTableDoesNotExist(t *testing.T) {
	cat := testCatalog(t)
	_, err := Analyze(`SELECT * FROM public.missing_table`, cat)
	if _, ok := err.(*TableDoesNotExist); !ok {
		t.Fatalf("expected TableDoesNotExist, got %v (%T)", err, err)
	}
}

func TestAnalyzeCreateSchema(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`CREATE SCHEMA IF NOT EXISTS accounting`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	change := analysis.DataDefinition
	if change.CreateSchema == nil || change.CreateSchema.SchemaName.String() != "accounting" {
		t.Fatalf("expected CreateSchema accounting, got %+v", change)
	}
	if !change.CreateSchema.IfNotExists {
		t.Fatalf("expected IfNotExists to be recognized")
	}
}

func TestAnalyzeCreateTable(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`CREATE TABLE public.orders (id integer, total bigint)`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	change := analysis.DataDefinition.CreateTable
	if change == nil || len(change.Columns) != 2 {
		t.Fatalf("expected 2 columns, got %+v", change)
	}
	if change.Columns[0].Name() != "id" || !change.Columns[0].SqlType().IsNum() {
		t.Fatalf("unexpected first column: %+v", change.Columns[0])
	}
}

func TestAnalyzeDropTableIgnoresCascadeFlagButRecordsIt(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`DROP TABLE IF EXISTS public.users CASCADE`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	change := analysis.DataDefinition.DropTables
	if change == nil || !change.Cascade || !change.IfExists {
		t.Fatalf("expected cascade+if-exists recorded, got %+v", change)
	}
}

func TestAnalyzeDropSchema(t *testing.T) {
	cat := testCatalog(t)
	analysis, err := Analyze(`DROP SCHEMA accounting, billing`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	change := analysis.DataDefinition.DropSchemas
	if change == nil || len(change.SchemaNames) != 2 {
		t.Fatalf("expected 2 schema names, got %+v", change)
	}
}

func TestAnalyzeSelectThreeSegmentNameRejected(t *testing.T) {
	cat := testCatalog(t)
	_, err := Analyze(`SELECT * FROM db.public.users`, cat)
	if _, ok := err.(*definition.TableNamingError); !ok {
		t.Fatalf("expected TableNamingError for a catalog-qualified reference, got %v (%T)", err, err)
	}
}

func TestAnalyzeCreateTableThreeSegmentNameRejected(t *testing.T) {
	cat := testCatalog(t)
	_, err := Analyze(`CREATE TABLE db.public.orders (id integer)`, cat)
	if _, ok := err.(*definition.TableNamingError); !ok {
		t.Fatalf("expected TableNamingError for a catalog-qualified reference, got %v (%T)", err, err)
	}
}

func TestAnalyzeUnsupportedStatement(t *testing.T) {
	cat := testCatalog(t)
	_, err := Analyze(`VACUUM users`, cat)
	if _, ok := err.(*FeatureNotSupported); !ok {
		t.Fatalf("expected FeatureNotSupported, got %v (%T)", err, err)
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	cat := testCatalog(t)
	first, err := Analyze(`SELECT id, name FROM users`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	second, err := Analyze(`SELECT id, name FROM users`, cat)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(first.Read.ProjectionItems) != len(second.Read.ProjectionItems) {
		t.Fatalf("expected repeated analysis to agree")
	}
	for i := range first.Read.ProjectionItems {
		if first.Read.ProjectionItems[i].String() != second.Read.ProjectionItems[i].String() {
			t.Fatalf("expected deterministic projection at %d", i)
		}
	}
}

func TestAnalyzeAllRunsConcurrently(t *testing.T) {
	cat := testCatalog(t)
	statements := []string{
		`SELECT * FROM users`,
		`SELECT id FROM users`,
		`DELETE FROM users`,
		`UPDATE users SET age = age + 1`,
	}
	results, err := AnalyzeAll(context.Background(), statements, cat)
	if err != nil {
		t.Fatalf("AnalyzeAll: %v", err)
	}
	if len(results) != len(statements) {
		t.Fatalf("expected %d results, got %d", len(statements), len(results))
	}
}

func TestAnalyzeAllPropagatesFirstError(t *testing.T) {
	cat := testCatalog(t)
	statements := []string{
		`SELECT * FROM users`,
		`SELECT * FROM public.missing_table`,
	}
	_, err := AnalyzeAll(context.Background(), statements, cat)
	if err == nil {
		t.Fatalf("expected an error from the batch")
	}
}
