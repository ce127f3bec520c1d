// Package parser provides a recursive descent SQL parser.
package parser

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/freeeve/sqltoken/ast"
	"github.com/freeeve/sqltoken/lexer"
	"github.com/freeeve/sqltoken/sqlerr"
	"github.com/freeeve/sqltoken/token"
)

// Parser is a recursive descent SQL parser.
type Parser struct {
	lexer  *lexer.Lexer
	errors []ParseError
	cur    token.Item // current token
}

// ParseError represents a parse error with position.
type ParseError struct {
	Pos     token.Pos
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// New creates a new parser for the given input.
func New(input string) *Parser {
	p := &Parser{
		lexer: lexer.New(input),
	}
	p.advance() // Prime the first token
	return p
}

var parserPool = sync.Pool{
	New: func() any { return &Parser{} },
}

// Get returns a parser from the pool for the given input.
// Call Put(p) when done to return it to the pool.
func Get(input string) *Parser {
	p := parserPool.Get().(*Parser)
	p.lexer = lexer.Get(input)
	p.errors = p.errors[:0]
	p.cur = token.Item{}
	p.advance()
	return p
}

// Put returns the parser and its lexer to the pool.
func Put(p *Parser) {
	if p.lexer != nil {
		lexer.Put(p.lexer)
		p.lexer = nil
	}
	parserPool.Put(p)
}

// Parse parses a single statement.
func (p *Parser) Parse() (ast.Statement, error) {
	p.skipComments()
	if p.curIs(token.EOF) {
		return nil, nil
	}
	stmt := p.parseStatement()
	if len(p.errors) > 0 {
		return nil, asSqlErr(p.errors[0])
	}
	// Verify all input was consumed (allow trailing semicolons and comments)
	p.skipComments()
	for p.curIs(token.SEMICOLON) {
		p.advance()
		p.skipComments()
	}
	if !p.curIs(token.EOF) {
		p.errorf("unexpected token %v after statement", p.cur.Type)
		return nil, asSqlErr(p.errors[0])
	}
	return stmt, nil
}

// ParseAll parses all statements until EOF.
func (p *Parser) ParseAll() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.curIs(token.EOF) {
		p.skipComments()
		if p.curIs(token.EOF) {
			break
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		// Skip optional semicolons between statements
		for p.curIs(token.SEMICOLON) {
			p.advance()
		}
		p.skipComments()
	}
	if len(p.errors) > 0 {
		return stmts, asSqlErr(p.errors[0])
	}
	return stmts, nil
}

// Token navigation methods

func (p *Parser) advance() {
	p.cur = p.lexer.Next()
}

func (p *Parser) curIs(t token.Token) bool {
	return p.cur.Type == t
}

// curIsIdent returns true if the current token can be used as an identifier.
// This includes both IDENT tokens and keywords (which can be used as identifiers
// in certain contexts like table/column names).
func (p *Parser) curIsIdent() bool {
	return p.cur.Type == token.IDENT || p.cur.Type.IsKeyword()
}

// curIdentValue returns the identifier value of the current token.
// Works for both IDENT tokens and keywords used as identifiers.
func (p *Parser) curIdentValue() string {
	return p.cur.Value
}

func (p *Parser) curIsKeyword(keywords ...token.Token) bool {
	for _, kw := range keywords {
		if p.cur.Type == kw {
			return true
		}
	}
	return false
}

func (p *Parser) peek() token.Item {
	return p.lexer.Peek()
}

func (p *Parser) peekIs(t token.Token) bool {
	return p.peek().Type == t
}

func (p *Parser) expect(t token.Token) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorf("expected %v, got %v", t, p.cur.Type)
	return false
}

// skipComments is a no-op: the lexer attaches comments to the lexemes
// that follow them, so token.COMMENT never reaches the parser. Kept as a
// named call site so statement boundaries read the same regardless of
// whether the lexer's attachment policy ever changes.
func (p *Parser) skipComments() {}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors = append(p.errors, ParseError{
		Pos:     p.cur.Pos,
		Message: fmt.Sprintf(format, args...),
	})
}

// asSqlErr converts the parser's internal ParseError into the public
// sqlerr.ParseError taxonomy, using the zero-based byte offset the lexer
// already tracks on every position.
func asSqlErr(e ParseError) error {
	return sqlerr.NewParseErrorf(e.Pos.Offset, "%s", e.Message)
}

// parseStatement dispatches to the appropriate statement parser.
func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.SELECT:
		return p.parseSelect()
	case token.INSERT, token.REPLACE:
		return p.parseInsert()
	case token.UPDATE:
		return p.parseUpdate()
	case token.DELETE:
		return p.parseDelete()
	case token.WITH:
		return p.parseWith()
	case token.LPAREN:
		return p.parseParenthesizedStatement()
	default:
		p.errorf("unexpected token %v at start of statement", p.cur.Type)
		p.advance() // Skip to recover
		return nil
	}
}

// parseWith handles WITH clause (CTEs).
func (p *Parser) parseWith() ast.Statement {
	withClause := p.parseWithClause()

	p.skipComments()
	switch p.cur.Type {
	case token.SELECT:
		stmt := p.parseSelectCore()
		if stmt == nil {
			return nil
		}
		stmt.With = withClause
		var result ast.Statement = stmt
		if p.curIs(token.UNION) || p.curIs(token.INTERSECT) || p.curIs(token.EXCEPT) {
			result = p.parseSetOp(stmt)
		}
		return result
	case token.INSERT, token.REPLACE:
		stmt := p.parseInsert()
		if stmt != nil {
			stmt.With = withClause
		}
		return stmt
	case token.UPDATE:
		stmt := p.parseUpdate()
		if stmt != nil {
			stmt.With = withClause
		}
		return stmt
	case token.DELETE:
		stmt := p.parseDelete()
		if stmt != nil {
			stmt.With = withClause
		}
		return stmt
	default:
		p.errorf("expected SELECT, INSERT, UPDATE, or DELETE after WITH")
		return nil
	}
}

func (p *Parser) parseWithClause() *ast.WithClause {
	p.advance() // consume WITH

	with := &ast.WithClause{}

	if p.curIs(token.RECURSIVE) {
		with.Recursive = true
		p.advance()
	}

	for {
		cte := p.parseCTE()
		if cte != nil {
			with.CTEs = append(with.CTEs, cte)
		}

		if !p.curIs(token.COMMA) {
			break
		}
		p.advance() // consume comma
	}

	return with
}

func (p *Parser) parseCTE() *ast.CTE {
	if !p.curIs(token.IDENT) {
		p.errorf("expected CTE name")
		return nil
	}

	cte := &ast.CTE{
		Name: p.cur.Value,
	}
	p.advance()

	// Optional column list
	if p.curIs(token.LPAREN) {
		cte.Columns = p.parseColumnNameList()
	}

	if !p.expect(token.AS) {
		return nil
	}

	if p.curIs(token.MATERIALIZED) {
		cte.Materialization = ast.MaterializeForced
		p.advance()
	} else if p.curIs(token.NOT) && p.peekIs(token.MATERIALIZED) {
		cte.Materialization = ast.MaterializeInlined
		p.advance()
		p.advance()
	}

	if !p.expect(token.LPAREN) {
		return nil
	}

	cte.Query = p.parseStatement()

	if !p.expect(token.RPAREN) {
		return nil
	}

	return cte
}

func (p *Parser) parseColumnNameList() []string {
	p.advance() // consume (

	var names []string
	for {
		if !p.curIs(token.IDENT) {
			break
		}
		names = append(names, p.cur.Value)
		p.advance()

		if !p.curIs(token.COMMA) {
			break
		}
		p.advance() // consume comma
	}

	p.expect(token.RPAREN)
	return names
}

func (p *Parser) parseDataType() *ast.DataType {
	dt := &ast.DataType{}

	// Get base type name
	if p.cur.Type.IsKeyword() || p.curIs(token.IDENT) {
		dt.Name = p.cur.Value
		p.advance()
	} else {
		p.errorf("expected data type")
		return dt
	}

	// Handle multi-word types like DOUBLE PRECISION, CHARACTER VARYING
	if p.curIs(token.PRECISION) || p.curIs(token.VARYING) {
		dt.Name += " " + p.cur.Value
		p.advance()
	}

	// Parse length/precision
	if p.curIs(token.LPAREN) {
		p.advance()
		if p.curIs(token.INT) {
			n := parseInt(p.cur.Value)
			dt.Length = &n
			p.advance()

			if p.curIs(token.COMMA) {
				p.advance()
				if p.curIs(token.INT) {
					s := parseInt(p.cur.Value)
					dt.Precision = dt.Length
					dt.Scale = &s
					p.advance()
				}
			}
		}
		p.expect(token.RPAREN)
	}

	// Parse modifiers
	for {
		switch p.cur.Type {
		case token.UNSIGNED:
			dt.Unsigned = true
			p.advance()
		case token.SIGNED:
			p.advance()
		case token.ZEROFILL:
			p.advance()
		case token.CHARACTER, token.CHAR:
			if p.peekIs(token.SET) || p.peekIs(token.CHARSET) {
				p.advance()
				p.advance()
				if p.curIs(token.IDENT) || p.curIs(token.STRING) {
					dt.Charset = p.cur.Value
					p.advance()
				}
			} else {
				return dt
			}
		case token.COLLATE:
			p.advance()
			if p.curIs(token.IDENT) || p.curIs(token.STRING) {
				dt.Collation = p.cur.Value
				p.advance()
			}
		case token.ARRAY:
			dt.Array = true
			p.advance()
		case token.LBRACKET:
			// PostgreSQL array syntax: type[]
			p.advance()
			p.expect(token.RBRACKET)
			dt.Array = true
		default:
			return dt
		}
	}
}

// parseParenthesizedStatement handles statements that start with parentheses,
// like (SELECT ...) UNION (SELECT ...).
func (p *Parser) parseParenthesizedStatement() ast.Statement {
	pos := p.cur.Pos
	p.advance() // consume '('

	// Parse inner statement
	inner := p.parseStatement()
	if inner == nil {
		return nil
	}

	if !p.expect(token.RPAREN) {
		return nil
	}

	// Only SELECT can be in parentheses for set operations
	sel, ok := inner.(*ast.SelectStmt)
	if !ok {
		return inner
	}

	// Check for set operations (UNION, INTERSECT, EXCEPT)
	if p.curIs(token.UNION) || p.curIs(token.INTERSECT) || p.curIs(token.EXCEPT) {
		return p.parseSetOp(sel)
	}

	// Check for ORDER BY / LIMIT on parenthesized select
	if p.curIs(token.ORDER) {
		sel.OrderBy = p.parseOrderBy()
	}
	if p.curIs(token.LIMIT) {
		sel.Limit = p.parseLimit()
	}
	sel.StartPos = pos
	sel.EndPos = p.cur.Pos

	return sel
}

func (p *Parser) parseTableName() *ast.TableName {
	if !p.curIsIdent() {
		p.errorf("expected table name")
		return nil
	}

	pos := p.cur.Pos
	parts := []string{p.curIdentValue()}
	p.advance()

	// Collect all parts (catalog.schema.table)
	for p.curIs(token.DOT) {
		p.advance()
		if !p.curIsIdent() {
			p.errorf("expected identifier after '.'")
			return nil
		}
		parts = append(parts, p.curIdentValue())
		p.advance()
	}

	tn := ast.GetTableName()
	tn.StartPos = pos
	tn.EndPos = p.cur.Pos
	tn.Parts = parts
	return tn
}

func parseInt(s string) int {
	// Use strconv to properly handle overflow
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// On overflow or error, return max int to avoid negative values
		return int(^uint(0) >> 1)
	}
	// Clamp to int range
	if n > int64(int(^uint(0)>>1)) {
		return int(^uint(0) >> 1)
	}
	if n < int64(-int(^uint(0)>>1)-1) {
		return -int(^uint(0)>>1) - 1
	}
	return int(n)
}
