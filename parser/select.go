package parser

import (
	"strings"

	"github.com/freeeve/sqltoken/ast"
	"github.com/freeeve/sqltoken/token"
)

// parseSelect parses a full SELECT, including any trailing set-operation
// chain, and returns either *ast.SelectStmt or *ast.BinarySelectQuery.
func (p *Parser) parseSelect() ast.Statement {
	stmt := p.parseSelectCore()
	if stmt == nil {
		return nil
	}
	if p.curIs(token.UNION) || p.curIs(token.INTERSECT) || p.curIs(token.EXCEPT) {
		return p.parseSetOp(stmt)
	}
	return stmt
}

// parseSelectCore parses a single SELECT without consuming a following
// set-operation chain, so callers that need to attach a WITH clause to
// exactly the leading SELECT (not the set-operation as a whole) can do
// so before the chain is wrapped around it.
func (p *Parser) parseSelectCore() *ast.SelectStmt {
	pos := p.cur.Pos
	if !p.expect(token.SELECT) {
		return nil
	}

	stmt := ast.GetSelectStmt()
	stmt.StartPos = pos

	// Skip hints like SQL_CALC_FOUND_ROWS
	for p.curIs(token.SQL_CALC_FOUND_ROWS) || p.curIs(token.SQL_SMALL_RESULT) ||
		p.curIs(token.SQL_BIG_RESULT) || p.curIs(token.SQL_BUFFER_RESULT) ||
		p.curIs(token.HIGH_PRIORITY) || p.curIs(token.STRAIGHT_JOIN) {
		p.advance()
	}

	// Check for DISTINCT/ALL
	if p.curIs(token.DISTINCT) {
		stmt.Distinct = true
		p.advance()
		if p.curIs(token.ON) {
			p.advance()
			if !p.expect(token.LPAREN) {
				return nil
			}
			stmt.DistinctOn = p.parseExprList()
			if !p.expect(token.RPAREN) {
				return nil
			}
		}
	} else if p.curIs(token.ALL) {
		p.advance()
	}

	// Parse select expressions
	stmt.Columns = p.parseSelectExprs()

	// FROM clause (optional for things like SELECT 1+1)
	if p.curIs(token.FROM) {
		p.advance()
		stmt.From = p.parseTableExpr()
	}

	// WHERE clause
	if p.curIs(token.WHERE) {
		p.advance()
		stmt.Where = p.parseExpr()
	}

	// GROUP BY clause
	if p.curIs(token.GROUP) {
		p.advance()
		if !p.expect(token.BY) {
			return nil
		}
		stmt.GroupBy = p.parseGroupByClause()
	}

	// HAVING clause
	if p.curIs(token.HAVING) {
		p.advance()
		stmt.Having = p.parseExpr()
	}

	// WINDOW clause
	if p.curIs(token.WINDOW) {
		stmt.WindowDefs = p.parseWindowDefs()
	}

	// ORDER BY clause
	if p.curIs(token.ORDER) {
		stmt.OrderBy = p.parseOrderBy()
	}

	// LIMIT clause
	if p.curIs(token.LIMIT) {
		stmt.Limit = p.parseLimit()
	}

	// OFFSET clause (PostgreSQL style without LIMIT)
	if p.curIs(token.OFFSET) && stmt.Limit == nil {
		stmt.Limit = &ast.Limit{StartPos: p.cur.Pos}
		p.advance()
		stmt.Limit.Offset = p.parseExpr()
		stmt.Limit.EndPos = p.cur.Pos
	}

	// FETCH clause (SQL standard)
	if p.curIs(token.FETCH) {
		if stmt.Limit == nil {
			stmt.Limit = &ast.Limit{StartPos: p.cur.Pos}
		}
		p.advance()
		if p.curIs(token.FIRST) || p.curIs(token.NEXT) {
			p.advance()
		}
		stmt.Limit.Count = p.parseExpr()
		if p.curIs(token.ROW) || p.curIs(token.ROWS) {
			p.advance()
		}
		if p.curIs(token.ONLY) {
			p.advance()
		}
		stmt.Limit.EndPos = p.cur.Pos
	}

	// FOR UPDATE/SHARE
	if p.curIs(token.FOR) {
		stmt.Lock = p.parseLockClause()
	}

	stmt.EndPos = p.cur.Pos

	return stmt
}

func (p *Parser) parseSelectExprs() []ast.SelectExpr {
	// Get slice from pool (pre-allocated with typical capacity)
	slicePtr := ast.GetSelectExprSlice()
	exprs := *slicePtr
	for {
		expr := p.parseSelectExpr()
		if expr == nil {
			break
		}
		exprs = append(exprs, expr)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance() // consume comma
	}
	return exprs
}

func (p *Parser) parseSelectExpr() ast.SelectExpr {
	// Skip any comments
	p.skipComments()
	pos := p.cur.Pos

	// Check for *
	if p.curIs(token.ASTERISK) {
		p.advance()
		return &ast.StarExpr{StartPos: pos, EndPos: pos}
	}

	// Parse as expression with optional alias
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	// Check if it's table.* (parseExpr returns StarExpr for this)
	if _, ok := expr.(*ast.StarExpr); ok {
		return expr.(*ast.StarExpr)
	}

	alias := ""
	if p.curIs(token.AS) {
		p.advance()
		if !p.curIs(token.IDENT) && !p.curIs(token.STRING) {
			p.errorf("expected alias after AS")
			return nil
		}
		alias = p.cur.Value
		p.advance()
	} else if p.curIs(token.IDENT) {
		// Check if this looks like an alias (not a keyword that starts a clause)
		if !isClauseKeyword(p.cur.Type) {
			alias = p.cur.Value
			p.advance()
		}
	}

	ae := ast.GetAliasedExpr()
	ae.StartPos = pos
	ae.EndPos = p.cur.Pos
	ae.Expr = expr
	ae.Alias = alias
	return ae
}

// parseGroupByClause parses the expression list following GROUP BY,
// including the PostgreSQL GROUPING SETS/CUBE/ROLLUP forms. Those three
// keywords are not reserved, so they're recognized by value on an IDENT
// the same way the teacher recognized DUMPFILE.
func (p *Parser) parseGroupByClause() *ast.GroupByClause {
	if p.curIs(token.IDENT) {
		switch strings.ToUpper(p.cur.Value) {
		case "GROUPING":
			p.advance()
			if p.curIs(token.IDENT) && strings.ToUpper(p.cur.Value) == "SETS" {
				p.advance()
			}
			return &ast.GroupByClause{Items: p.parseGroupingSetList(), Kind: ast.GroupingSets}
		case "CUBE":
			p.advance()
			return &ast.GroupByClause{Items: p.parseGroupingSetList(), Kind: ast.GroupingCube}
		case "ROLLUP":
			p.advance()
			return &ast.GroupByClause{Items: p.parseGroupingSetList(), Kind: ast.GroupingRollup}
		}
	}
	return &ast.GroupByClause{Items: p.parseExprList(), Kind: ast.GroupingPlain}
}

// parseGroupingSetList parses the parenthesized list following GROUPING
// SETS/CUBE/ROLLUP: ( (a, b), (a), () ) — each element becomes a RowExpr,
// and a bare expression (not wrapped in its own parens) is passed through.
func (p *Parser) parseGroupingSetList() []ast.Expr {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var sets []ast.Expr
	for {
		if p.curIs(token.LPAREN) {
			pos := p.cur.Pos
			p.advance()
			var values []ast.Expr
			if !p.curIs(token.RPAREN) {
				values = p.parseExprList()
			}
			p.expect(token.RPAREN)
			sets = append(sets, &ast.RowExpr{StartPos: pos, EndPos: p.cur.Pos, Values: values})
		} else {
			expr := p.parseExpr()
			if expr == nil {
				break
			}
			sets = append(sets, expr)
		}
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return sets
}

func (p *Parser) parseTableExpr() ast.TableExpr {
	left := p.parseTablePrimary()
	if left == nil {
		return nil
	}

	// Parse joins
	for {
		joinType, natural, hasJoin := p.checkJoinKeyword()
		if !hasJoin {
			break
		}

		join := ast.GetJoinExpr()
		join.StartPos = p.cur.Pos
		join.Type = joinType
		join.Natural = natural
		join.Left = left

		// Consume join keywords
		p.consumeJoinKeywords()

		// Check for LATERAL
		if p.curIs(token.LATERAL) {
			join.Lateral = true
			p.advance()
		}

		join.Right = p.parseTablePrimary()

		// ON or USING clause (not for CROSS JOIN or NATURAL JOIN)
		if joinType != ast.JoinCross && !natural {
			if p.curIs(token.ON) {
				p.advance()
				join.On = p.parseExpr()
			} else if p.curIs(token.USING) {
				p.advance()
				join.Using = p.parseColumnNameList()
			}
		}

		join.EndPos = p.cur.Pos
		left = join
	}

	return left
}

func (p *Parser) parseTablePrimary() ast.TableExpr {
	var expr ast.TableExpr

	// Check for LATERAL
	lateral := false
	if p.curIs(token.LATERAL) {
		lateral = true
		p.advance()
	}

	if p.curIs(token.LPAREN) {
		pos := p.cur.Pos
		p.advance()
		if p.curIs(token.SELECT) || p.curIs(token.WITH) {
			// Derived table (subquery)
			var stmt ast.Statement
			if p.curIs(token.WITH) {
				stmt = p.parseWith()
			} else {
				stmt = p.parseSelect()
			}
			if stmt == nil {
				return nil
			}
			if !p.expect(token.RPAREN) {
				return nil
			}
			sel, ok := stmt.(*ast.SelectStmt)
			if !ok {
				p.errorf("expected SELECT statement in subquery")
				return nil
			}
			expr = &ast.Subquery{StartPos: pos, EndPos: p.cur.Pos, Select: sel}
		} else {
			// Parenthesized table expression
			inner := p.parseTableExpr()
			if !p.expect(token.RPAREN) {
				return nil
			}
			expr = &ast.ParenTableExpr{StartPos: pos, EndPos: p.cur.Pos, Expr: inner}
		}
	} else if p.curIsIdent() {
		tn := p.parseTableName()
		if tn == nil {
			return nil
		}
		expr = tn
	} else if p.curIs(token.VALUES) {
		expr = p.parseValuesClause()
	} else {
		p.errorf("expected table name or subquery")
		return nil
	}

	// Parse optional alias
	alias := ""
	if p.curIs(token.AS) {
		p.advance()
	}
	if p.curIs(token.IDENT) && !isClauseKeyword(p.cur.Type) {
		alias = p.cur.Value
		p.advance()
	}

	// Parse column alias list for derived tables
	var colAliases []string
	if p.curIs(token.LPAREN) {
		colAliases = p.parseColumnNameList()
	}

	if alias != "" || len(colAliases) > 0 || lateral {
		aliased := ast.GetAliasedTableExpr()
		aliased.StartPos = expr.Pos()
		aliased.EndPos = p.cur.Pos
		aliased.Expr = expr
		aliased.Alias = alias
		aliased.AliasColumns = colAliases
		if lateral {
			if join, ok := expr.(*ast.JoinExpr); ok {
				join.Lateral = true
			}
		}
		return aliased
	}

	return expr
}

func (p *Parser) parseValuesClause() *ast.ValuesStmt {
	pos := p.cur.Pos
	p.advance() // consume VALUES

	stmt := &ast.ValuesStmt{StartPos: pos}

	for {
		if !p.expect(token.LPAREN) {
			break
		}

		var row []ast.Expr
		for {
			expr := p.parseExpr()
			if expr == nil {
				break
			}
			row = append(row, expr)
			if !p.curIs(token.COMMA) {
				break
			}
			p.advance()
		}
		stmt.Rows = append(stmt.Rows, row)

		if !p.expect(token.RPAREN) {
			break
		}

		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}

	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseOrderBy() []*ast.OrderByExpr {
	p.advance() // consume ORDER
	if !p.expect(token.BY) {
		return nil
	}

	slicePtr := ast.GetOrderBySlice()
	items := *slicePtr
	for {
		pos := p.cur.Pos
		expr := p.parseExpr()
		if expr == nil {
			break
		}

		item := ast.GetOrderByExpr()
		item.StartPos = pos
		item.Expr = expr

		if p.curIs(token.ASC) {
			p.advance()
		} else if p.curIs(token.DESC) {
			item.Desc = true
			p.advance()
		}

		// NULLS FIRST/LAST
		if p.curIs(token.NULLS) {
			p.advance()
			if p.curIs(token.FIRST) {
				t := true
				item.NullsFirst = &t
				p.advance()
			} else if p.curIs(token.LAST) {
				f := false
				item.NullsFirst = &f
				p.advance()
			}
		}

		item.EndPos = p.cur.Pos
		items = append(items, item)

		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}

	return items
}

func (p *Parser) parseLimit() *ast.Limit {
	pos := p.cur.Pos
	p.advance() // consume LIMIT

	limit := &ast.Limit{StartPos: pos}

	// MySQL style: LIMIT count [OFFSET offset] or LIMIT offset, count
	limit.Count = p.parseExpr()

	if p.curIs(token.OFFSET) {
		p.advance()
		limit.Offset = p.parseExpr()
	} else if p.curIs(token.COMMA) {
		// MySQL: LIMIT offset, count
		p.advance()
		limit.Offset = limit.Count
		limit.Count = p.parseExpr()
	}

	limit.EndPos = p.cur.Pos
	return limit
}

func (p *Parser) parseLockClause() *ast.ForClause {
	p.advance() // consume FOR

	clause := &ast.ForClause{Mode: ast.LockUpdate}
	switch {
	case p.curIs(token.UPDATE):
		clause.Mode = ast.LockUpdate
		p.advance()
	case p.curIs(token.SHARE):
		clause.Mode = ast.LockShare
		p.advance()
	case p.curIs(token.KEY) && p.peekIs(token.SHARE):
		p.advance()
		p.advance()
		clause.Mode = ast.LockKeyShare
	case p.curIs(token.NO) && p.peekIs(token.KEY):
		p.advance() // NO
		p.advance() // KEY
		p.expect(token.UPDATE)
		clause.Mode = ast.LockNoKeyUpdate
	}

	// NOWAIT, SKIP LOCKED (accepted but not separately modeled)
	if p.curIs(token.NOWAIT) {
		p.advance()
	} else if p.curIs(token.SKIP) {
		p.advance()
		if p.curIs(token.LOCKED) {
			p.advance()
		}
	}

	return clause
}

func (p *Parser) parseWindowDefs() []*ast.WindowDef {
	p.advance() // consume WINDOW

	var defs []*ast.WindowDef
	for {
		if !p.curIs(token.IDENT) {
			break
		}

		def := &ast.WindowDef{Name: p.cur.Value}
		p.advance()

		if !p.expect(token.AS) {
			break
		}

		def.Spec = p.parseWindowSpec()
		defs = append(defs, def)

		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}

	return defs
}

// parseSetOp builds a left-associative chain of BinarySelectQuery nodes
// out of a UNION/INTERSECT/EXCEPT sequence. Each iteration wraps the
// previous result as the new Left operand, so "a UNION b EXCEPT c"
// parses as (a UNION b) EXCEPT c.
func (p *Parser) parseSetOp(left ast.Statement) ast.Statement {
	for p.curIs(token.UNION) || p.curIs(token.INTERSECT) || p.curIs(token.EXCEPT) {
		pos := p.cur.Pos
		var op ast.SetOpType
		switch p.cur.Type {
		case token.UNION:
			op = ast.Union
		case token.INTERSECT:
			op = ast.Intersect
		case token.EXCEPT:
			op = ast.Except
		}
		p.advance()
		if p.curIs(token.ALL) {
			if op == ast.Union {
				op = ast.UnionAll
			}
			p.advance()
		} else if p.curIs(token.DISTINCT) {
			p.advance()
		}

		var right ast.Statement
		if p.curIs(token.LPAREN) {
			p.advance()
			right = p.parseSelect()
			p.expect(token.RPAREN)
		} else {
			core := p.parseSelectCore()
			if core == nil {
				break
			}
			right = core
		}
		if right == nil {
			break
		}

		left = &ast.BinarySelectQuery{
			StartPos: pos,
			EndPos:   p.cur.Pos,
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}
	return left
}

func (p *Parser) checkJoinKeyword() (ast.JoinType, bool, bool) {
	natural := false
	if p.curIs(token.NATURAL) {
		natural = true
	}

	switch p.cur.Type {
	case token.JOIN:
		return ast.JoinInner, natural, true
	case token.INNER:
		return ast.JoinInner, natural, true
	case token.LEFT:
		return ast.JoinLeft, natural, true
	case token.RIGHT:
		return ast.JoinRight, natural, true
	case token.FULL:
		return ast.JoinFull, natural, true
	case token.CROSS:
		return ast.JoinCross, natural, true
	case token.NATURAL:
		return ast.JoinInner, true, true
	case token.STRAIGHT_JOIN:
		return ast.JoinInner, false, true
	case token.COMMA:
		// Comma is an implicit cross join
		return ast.JoinCross, false, true
	default:
		return 0, false, false
	}
}

func (p *Parser) consumeJoinKeywords() {
	// Consume join type keywords (including comma for implicit cross join)
	for p.curIs(token.NATURAL) || p.curIs(token.INNER) || p.curIs(token.LEFT) ||
		p.curIs(token.RIGHT) || p.curIs(token.FULL) || p.curIs(token.OUTER) ||
		p.curIs(token.CROSS) || p.curIs(token.JOIN) || p.curIs(token.STRAIGHT_JOIN) ||
		p.curIs(token.COMMA) {
		p.advance()
	}
}

func isClauseKeyword(t token.Token) bool {
	switch t {
	case token.FROM, token.WHERE, token.GROUP, token.HAVING, token.ORDER,
		token.LIMIT, token.OFFSET, token.UNION, token.INTERSECT, token.EXCEPT,
		token.FOR, token.INTO, token.ON, token.USING, token.JOIN, token.INNER,
		token.LEFT, token.RIGHT, token.FULL, token.CROSS, token.NATURAL,
		token.AND, token.OR, token.THEN, token.ELSE, token.END, token.WHEN,
		token.AS, token.SET, token.VALUES, token.RETURNING:
		return true
	default:
		return false
	}
}
