package visitor

import (
	"strings"

	"github.com/freeeve/sqltoken/ast"
	"github.com/freeeve/sqltoken/token"
)

// TableSourceCollector walks an AST and records table names. With
// SelectableOnly set, it never descends into a subquery or CTE body — it
// records only the top-level FROM/JOIN targets of the statement it's
// handed, a bare CTE reference included, and skips the write target of
// INSERT/UPDATE/DELETE. With SelectableOnly unset, it descends into every
// subquery and CTE body but excludes any name that matches a CTE declared
// anywhere in the tree, since that name doesn't refer to a real table.
// Either way, the result is deduplicated by qualified name.
type TableSourceCollector struct {
	SelectableOnly bool
	Tables         []*ast.TableName

	cteNames map[string]bool // populated only when !SelectableOnly
}

// CollectTableSources runs a TableSourceCollector over node and returns
// the table names it found, in traversal order, deduplicated by qualified
// name (schema+name).
func CollectTableSources(node ast.Node, selectableOnly bool) []*ast.TableName {
	c := &TableSourceCollector{SelectableOnly: selectableOnly}
	if !selectableOnly {
		c.cteNames = map[string]bool{}
		for _, cte := range CollectCommonTables(node) {
			c.cteNames[cte.Name] = true
		}
	}
	Walk(c, node)
	return dedupeTableNames(c.Tables)
}

func dedupeTableNames(tables []*ast.TableName) []*ast.TableName {
	seen := map[string]bool{}
	var out []*ast.TableName
	for _, t := range tables {
		key := strings.Join(t.Parts, ".")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

func (c *TableSourceCollector) Visit(node ast.Node) Visitor {
	switch n := node.(type) {
	case *ast.InsertStmt:
		if c.SelectableOnly {
			Walk(c, n.Select)
			for _, ue := range n.OnDuplicateUpdate {
				Walk(c, ue.Expr)
			}
			return nil
		}
	case *ast.UpdateStmt:
		if c.SelectableOnly {
			Walk(c, n.From)
			Walk(c, n.Where)
			for _, ue := range n.Set {
				Walk(c, ue.Expr)
			}
			return nil
		}
	case *ast.DeleteStmt:
		if c.SelectableOnly {
			Walk(c, n.Using)
			Walk(c, n.Where)
			return nil
		}
	case *ast.SelectStmt:
		if c.SelectableOnly {
			walkSelectWithoutWith(c, n)
			return nil
		}
	case *ast.Subquery:
		if c.SelectableOnly {
			return nil
		}
	case *ast.TableName:
		if !c.SelectableOnly && c.cteNames[n.Name()] {
			return c
		}
		c.Tables = append(c.Tables, n)
	}
	return c
}

// CommonTableCollector records the name and source statement of every CTE
// defined in a WITH clause anywhere in the tree, including CTEs nested
// inside subqueries or inside other CTE bodies. Results are ordered
// inner-before-outer (a CTE that itself contains a WITH clause is recorded
// after the CTEs it declares), matching the order a query planner would
// need to materialize them in.
type CommonTableCollector struct {
	CTEs []*ast.CTE
}

// CollectCommonTables runs a CommonTableCollector over node.
func CollectCommonTables(node ast.Node) []*ast.CTE {
	c := &CommonTableCollector{}
	Walk(c, node)
	return c.CTEs
}

func (c *CommonTableCollector) Visit(node ast.Node) Visitor {
	sel, ok := node.(*ast.SelectStmt)
	if !ok || sel.With == nil {
		return c
	}
	for _, cte := range sel.With.CTEs {
		Walk(c, cte.Query) // descend first so nested CTEs are recorded before this one
		c.CTEs = append(c.CTEs, cte)
	}
	walkSelectWithoutWith(c, sel)
	return nil
}

// SelectComponentCollector records every SelectExpr (column, star, or
// aliased expression) appearing in the left-most operand's select list of
// any SELECT reachable from node. For a UNION/INTERSECT/EXCEPT chain only
// the left-most leaf contributes components, since that's the operand
// whose list determines the result columns' names.
type SelectComponentCollector struct {
	Components []ast.SelectExpr
}

// CollectSelectComponents runs a SelectComponentCollector over node.
func CollectSelectComponents(node ast.Node) []ast.SelectExpr {
	c := &SelectComponentCollector{}
	Walk(c, node)
	return c.Components
}

func (c *SelectComponentCollector) Visit(node ast.Node) Visitor {
	switch n := node.(type) {
	case *ast.SelectStmt:
		c.Components = append(c.Components, n.Columns...)
	case *ast.BinarySelectQuery:
		Walk(c, n.Left)
		return nil
	}
	return c
}

// RemoveParameterPredicates rewrites a WHERE/ON/HAVING tree, dropping every
// predicate that references a bound parameter and keeping the other side
// of each AND/OR it sits under (also inside parentheses, which stay around
// a surviving AND/OR). It returns nil when nothing survives. It is
// used to derive the "static" shape of a parameterized query — the part
// of the predicate that doesn't depend on a caller-supplied value — for
// callers that want to classify queries by shape rather than by the
// literal values they were run with.
func RemoveParameterPredicates(expr ast.Expr) ast.Expr {
	if expr == nil {
		return nil
	}
	if paren, ok := expr.(*ast.ParenExpr); ok {
		inner := RemoveParameterPredicates(paren.Expr)
		if inner == nil {
			return nil
		}
		if _, compound := inner.(*ast.BinaryExpr); !compound {
			return inner
		}
		return &ast.ParenExpr{StartPos: paren.StartPos, EndPos: paren.EndPos, Expr: inner}
	}
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok {
		if referencesParam(expr) {
			return nil
		}
		return expr
	}
	if bin.Op == token.AND || bin.Op == token.OR {
		left := RemoveParameterPredicates(bin.Left)
		right := RemoveParameterPredicates(bin.Right)
		switch {
		case left == nil && right == nil:
			return nil
		case left == nil:
			return right
		case right == nil:
			return left
		default:
			return &ast.BinaryExpr{StartPos: bin.StartPos, EndPos: bin.EndPos, Op: bin.Op, Left: left, Right: right}
		}
	}
	if referencesParam(bin.Left) || referencesParam(bin.Right) {
		return nil
	}
	return bin
}

func referencesParam(n ast.Node) bool {
	found := false
	WalkFunc(n, func(node ast.Node) bool {
		if _, ok := node.(*ast.Param); ok {
			found = true
			return false
		}
		return !found
	})
	return found
}
