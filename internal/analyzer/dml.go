package analyzer

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"

	"github.com/sqlcore/sqlcore/internal/catalog"
	"github.com/sqlcore/sqlcore/internal/untyped"
)

func analyzeInsert(stmt *pg_query.InsertStmt, cat catalog.Capability) (*untyped.InsertQuery, error) {
	fullName, table, err := resolveTarget(stmt.Relation, cat)
	if err != nil {
		return nil, err
	}

	var colOrds []int
	if len(stmt.Cols) > 0 {
		colOrds = make([]int, len(stmt.Cols))
		for i, c := range stmt.Cols {
			rt, ok := c.Node.(*pg_query.Node_ResTarget)
			if !ok {
				return nil, &SyntaxError{RenderedLocus: "malformed INSERT column list"}
			}
			col, ok := table.Column(rt.ResTarget.Name)
			if !ok {
				return nil, &ColumnNotFound{Name: rt.ResTarget.Name}
			}
			colOrds[i] = col.OrdNum()
		}
	}

	rows, err := insertValueRows(stmt.SelectStmt)
	if err != nil {
		return nil, err
	}

	numCols := len(table.Columns())
	values := make([][]*untyped.StaticUntypedTree, len(rows))
	for ri, row := range rows {
		built := make([]*untyped.StaticUntypedTree, numCols)
		for i, valNode := range row {
			tree, err := buildStatic(valNode)
			if err != nil {
				return nil, err
			}
			ord := i
			if colOrds != nil {
				if i >= len(colOrds) {
					return nil, &SyntaxError{RenderedLocus: "INSERT has more values than columns"}
				}
				ord = colOrds[i]
			}
			if ord < 0 || ord >= numCols {
				return nil, &SyntaxError{RenderedLocus: "INSERT value out of column range"}
			}
			built[ord] = tree
		}
		values[ri] = built
	}

	return &untyped.InsertQuery{FullTableName: fullName, Values: values}, nil
}

// insertValueRows reads a VALUES clause's rows; each row is itself a List
// node holding the row's value expressions.
func insertValueRows(sel *pg_query.SelectStmt) ([][]*pg_query.Node, error) {
	if sel == nil || len(sel.ValuesLists) == 0 {
		return nil, &SyntaxError{RenderedLocus: "INSERT without VALUES"}
	}
	rows := make([][]*pg_query.Node, 0, len(sel.ValuesLists))
	for _, vl := range sel.ValuesLists {
		list, ok := vl.Node.(*pg_query.Node_List)
		if !ok {
			return nil, &SyntaxError{RenderedLocus: "malformed VALUES row"}
		}
		rows = append(rows, list.List.Items)
	}
	return rows, nil
}

func analyzeUpdate(stmt *pg_query.UpdateStmt, cat catalog.Capability) (*untyped.UpdateQuery, error) {
	fullName, table, err := resolveTarget(stmt.Relation, cat)
	if err != nil {
		return nil, err
	}

	var names []string
	var assignments []*untyped.DynamicUntypedTree
	for _, t := range stmt.TargetList {
		rt, ok := t.Node.(*pg_query.Node_ResTarget)
		if !ok {
			continue
		}
		if _, ok := table.Column(rt.ResTarget.Name); !ok {
			return nil, &ColumnNotFound{Name: rt.ResTarget.Name}
		}
		tree, err := buildDynamic(rt.ResTarget.Val, table)
		if err != nil {
			return nil, err
		}
		names = append(names, rt.ResTarget.Name)
		assignments = append(assignments, tree)
	}

	return &untyped.UpdateQuery{FullTableName: fullName, ColumnNames: names, Assignments: assignments}, nil
}

func analyzeDelete(stmt *pg_query.DeleteStmt, cat catalog.Capability) (*untyped.DeleteQuery, error) {
	fullName, _, err := resolveTarget(stmt.Relation, cat)
	if err != nil {
		return nil, err
	}
	return &untyped.DeleteQuery{FullTableName: fullName}, nil
}

func analyzeSelect(stmt *pg_query.SelectStmt, cat catalog.Capability) (*untyped.SelectQuery, error) {
	rel := singleFromRelation(stmt)
	if rel == nil {
		return nil, &SyntaxError{RenderedLocus: "SELECT requires exactly one FROM table"}
	}
	fullName, table, err := resolveTarget(rel, cat)
	if err != nil {
		return nil, err
	}

	var items []*untyped.DynamicUntypedTree
	for _, t := range stmt.TargetList {
		rt, ok := t.Node.(*pg_query.Node_ResTarget)
		if !ok {
			continue
		}
		if isWildcard(rt.ResTarget.Val) {
			for _, col := range table.Columns() {
				items = append(items, untyped.DynamicColumn(col))
			}
			continue
		}
		tree, err := buildDynamic(rt.ResTarget.Val, table)
		if err != nil {
			return nil, err
		}
		items = append(items, tree)
	}

	return &untyped.SelectQuery{FullTableName: fullName, ProjectionItems: items}, nil
}

func singleFromRelation(stmt *pg_query.SelectStmt) *pg_query.RangeVar {
	if len(stmt.FromClause) != 1 {
		return nil
	}
	rv, ok := stmt.FromClause[0].Node.(*pg_query.Node_RangeVar)
	if !ok {
		return nil
	}
	return rv.RangeVar
}

func isWildcard(node *pg_query.Node) bool {
	if node == nil || node.Node == nil {
		return false
	}
	ref, ok := node.Node.(*pg_query.Node_ColumnRef)
	if !ok {
		return false
	}
	for _, f := range ref.ColumnRef.Fields {
		if _, ok := f.Node.(*pg_query.Node_AStar); ok {
			return true
		}
	}
	return false
}
