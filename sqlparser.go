// Package sqltoken provides a high-performance SQL parser.
//
// sqltoken is a dialect-agnostic SQL parser that supports MySQL, PostgreSQL,
// and SQLite query syntax. It provides Parse, Walk, and Rewrite functionality
// similar to vitess-sqlparser.
//
// Basic usage:
//
//	stmt, err := sqltoken.Parse("SELECT * FROM users WHERE id = 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(sqltoken.String(stmt))
//
// Walking the AST:
//
//	sqltoken.Walk(stmt, func(node ast.Node) bool {
//	    if col, ok := node.(*ast.ColName); ok {
//	        fmt.Printf("Found column: %s\n", col.Name)
//	    }
//	    return true
//	})
//
// Rewriting nodes:
//
//	rewritten := sqltoken.Rewrite(stmt, func(n ast.Node) ast.Node {
//	    // Transform nodes as needed
//	    return n
//	})
package sqltoken

import (
	"context"

	"github.com/freeeve/sqltoken/ast"
	"github.com/freeeve/sqltoken/format"
	"github.com/freeeve/sqltoken/parser"
	"github.com/freeeve/sqltoken/print"
	"github.com/freeeve/sqltoken/visitor"
)

// Parse parses a single SQL statement.
// The parser uses internal pooling for efficiency.
// For maximum performance when parsing many queries, call Repool(stmt)
// when done with the statement (optional, see Repool).
func Parse(sql string) (ast.Statement, error) {
	p := parser.Get(sql)
	stmt, err := p.Parse()
	parser.Put(p)
	return stmt, err
}

// ParseAll parses all statements in the input.
// For maximum performance, call Repool on each statement when done (optional).
func ParseAll(sql string) ([]ast.Statement, error) {
	p := parser.Get(sql)
	stmts, err := p.ParseAll()
	parser.Put(p)
	return stmts, err
}

// Repool returns AST nodes to internal pools for reuse.
// This is optional - if not called, nodes are garbage collected normally.
// Calling Repool after you're done with a statement improves performance
// when parsing many queries by reducing allocations.
//
// Example:
//
//	stmt, err := sqltoken.Parse(sql)
//	if err != nil {
//	    return err
//	}
//	defer sqltoken.Repool(stmt)
//	// ... use stmt ...
func Repool(stmt Statement) {
	ast.ReleaseAST(stmt)
}

// String formats an AST node back to SQL.
func String(node ast.Node) string {
	return format.String(node)
}

// Pretty renders a statement as multi-line, indented SQL using the
// default print style (upper-case keywords, two-space indent).
func Pretty(stmt ast.Statement) string {
	tok := (print.SqlPrintTokenParser{}).Parse(stmt)
	return print.NewPrinter(print.DefaultStyle).Print(tok)
}

// AsyncParser bounds how many statements may be parsed concurrently.
type AsyncParser = parser.AsyncParser

// NewAsyncParser builds an AsyncParser allowing up to maxConcurrent
// parses in flight at once; a non-positive value means unbounded.
func NewAsyncParser(maxConcurrent int64, opts ...parser.AsyncOption) *AsyncParser {
	return parser.NewAsyncParser(maxConcurrent, opts...)
}

// WithLogger attaches a zap logger to an AsyncParser for parse-failure
// diagnostics.
var WithLogger = parser.WithLogger

// ParseAsync parses sql under ctx with no concurrency limit of its own;
// callers that need admission control should build an AsyncParser via
// NewAsyncParser instead and reuse it across calls.
func ParseAsync(ctx context.Context, sql string) (ast.Statement, error) {
	return parser.NewAsyncParser(0).ParseSelectAsync(ctx, sql)
}

// CollectTableSources returns every table referenced by node. With
// selectableOnly set, only tables read from (not written to) are
// returned.
func CollectTableSources(node ast.Node, selectableOnly bool) []*ast.TableName {
	return visitor.CollectTableSources(node, selectableOnly)
}

// CollectCommonTables returns every CTE defined anywhere in node.
func CollectCommonTables(node ast.Node) []*ast.CTE {
	return visitor.CollectCommonTables(node)
}

// CollectSelectComponents returns every SELECT-list item in node.
func CollectSelectComponents(node ast.Node) []ast.SelectExpr {
	return visitor.CollectSelectComponents(node)
}

// RemoveParameterPredicates drops every predicate that references a bound
// parameter, keeping the other side of each AND/OR, and returns the static
// shape of expr (nil when nothing survives).
func RemoveParameterPredicates(expr ast.Expr) ast.Expr {
	return visitor.RemoveParameterPredicates(expr)
}

// Walk traverses the AST calling the function for each node.
// If the function returns false, children are not visited.
func Walk(node ast.Node, fn func(ast.Node) bool) {
	visitor.WalkFunc(node, fn)
}

// Rewrite traverses the AST allowing node replacement.
// The function is called in post-order (children first, then parent).
// Return the replacement node or the original to keep it.
func Rewrite(node ast.Node, fn func(ast.Node) ast.Node) ast.Node {
	return visitor.Rewrite(node, fn)
}

// Statement is the interface for all SQL statements.
type Statement = ast.Statement

// Expr is the interface for all expressions.
type Expr = ast.Expr

// Node is the base interface for all AST nodes.
type Node = ast.Node

// Common type aliases for convenience.
type (
	SelectStmt       = ast.SelectStmt
	InsertStmt       = ast.InsertStmt
	UpdateStmt       = ast.UpdateStmt
	DeleteStmt       = ast.DeleteStmt
	ColName          = ast.ColName
	TableName        = ast.TableName
	Literal          = ast.Literal
	BinaryExpr       = ast.BinaryExpr
	UnaryExpr        = ast.UnaryExpr
	FuncExpr         = ast.FuncExpr
	CaseExpr         = ast.CaseExpr
	CastExpr         = ast.CastExpr
	Subquery         = ast.Subquery
	JoinExpr         = ast.JoinExpr
	AliasedExpr      = ast.AliasedExpr
	AliasedTableExpr = ast.AliasedTableExpr
	StarExpr         = ast.StarExpr
	ParenExpr        = ast.ParenExpr
	InExpr           = ast.InExpr
	BetweenExpr      = ast.BetweenExpr
	LikeExpr         = ast.LikeExpr
	IsExpr           = ast.IsExpr
	ExistsExpr       = ast.ExistsExpr
	OrderByExpr      = ast.OrderByExpr
	Limit            = ast.Limit
	WithClause       = ast.WithClause
	CTE              = ast.CTE
)

// Join types
const (
	JoinInner = ast.JoinInner
	JoinLeft  = ast.JoinLeft
	JoinRight = ast.JoinRight
	JoinFull  = ast.JoinFull
	JoinCross = ast.JoinCross
)

// Literal types
const (
	LiteralNull   = ast.LiteralNull
	LiteralInt    = ast.LiteralInt
	LiteralFloat  = ast.LiteralFloat
	LiteralString = ast.LiteralString
	LiteralBool   = ast.LiteralBool
)
