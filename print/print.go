// Package print renders a parsed statement as pretty-printed SQL text,
// independent of the single-line output the format package produces.
// It works by first lowering the AST into a tree of PrintTokens — plain
// text leaves grouped under clause-level containers — and then walking
// that tree with a configurable SqlPrinter.
package print

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/freeeve/sqltoken/ast"
	"github.com/freeeve/sqltoken/format"
	"github.com/freeeve/sqltoken/token"
)

// ContainerType labels a PrintToken's structural role, so the printer
// knows where it's allowed to break a line or bump the indent level.
type ContainerType int

const (
	ContainerNone ContainerType = iota
	ContainerSelectClause
	ContainerFromClause
	ContainerWhereClause
	ContainerGroupByClause
	ContainerHavingClause
	ContainerOrderByClause
	ContainerLimitClause
	ContainerWithClause
	ContainerSetOp
	ContainerParen
	ContainerLockClause
	ContainerWindowClause
)

// PrintToken is a node in the lowered, print-ready tree. A leaf carries
// Text; a container carries Children and no text of its own.
type PrintToken struct {
	Container ContainerType
	Text      string
	Children  []*PrintToken
}

func leaf(text string) *PrintToken { return &PrintToken{Text: text} }

func container(kind ContainerType, children ...*PrintToken) *PrintToken {
	return &PrintToken{Container: kind, Children: children}
}

// SqlPrintTokenParser lowers an ast.Statement into a PrintToken tree.
// Clause bodies that don't need their own line-break behavior (single
// expressions, function calls) are rendered with exprString and kept as a
// single leaf — only the clause skeleton is modeled structurally.
type SqlPrintTokenParser struct{}

// Parse builds the PrintToken tree for a statement.
func (SqlPrintTokenParser) Parse(stmt ast.Statement) *PrintToken {
	switch s := stmt.(type) {
	case *ast.SelectStmt:
		return parseSelect(s)
	case *ast.BinarySelectQuery:
		return container(ContainerSetOp,
			parseStatementAsToken(s.Left),
			leaf(s.Op.String()),
			parseStatementAsToken(s.Right),
		)
	default:
		return leaf(exprString(stmt))
	}
}

func parseStatementAsToken(stmt ast.Statement) *PrintToken {
	return SqlPrintTokenParser{}.Parse(stmt)
}

// exprString renders node the way psql itself would: lowercase keywords,
// every identifier quoted. The printer's own Style controls casing and
// breaking of the clause skeleton it builds around this text; the text
// itself always comes out in this one convention regardless of Style, so
// a pretty-printed query's leaves match the single-line postgres preset.
func exprString(node ast.Node) string {
	f := format.New(format.PostgresOptions)
	f.Format(node)
	return f.String()
}

// conjunctLeaves splits expr on its top-level AND operators (leaving OR and
// anything inside parens intact) and renders each conjunct as its own leaf,
// so the printer can put one condition per line when AndBreak is set.
func conjunctLeaves(expr ast.Expr) []*PrintToken {
	var leaves []*PrintToken
	for _, e := range splitTopLevelAnd(expr) {
		leaves = append(leaves, leaf(exprString(e)))
	}
	return leaves
}

func splitTopLevelAnd(expr ast.Expr) []ast.Expr {
	if bin, ok := expr.(*ast.BinaryExpr); ok && bin.Op == token.AND {
		return append(splitTopLevelAnd(bin.Left), splitTopLevelAnd(bin.Right)...)
	}
	return []ast.Expr{expr}
}

func parseSelect(s *ast.SelectStmt) *PrintToken {
	var top []*PrintToken

	if s.With != nil {
		var ctes []*PrintToken
		for _, cte := range s.With.CTEs {
			name := cte.Name
			if len(cte.Columns) > 0 {
				name += "(" + strings.Join(cte.Columns, ", ") + ")"
			}
			// Each CTE is one item: its "name AS (", body, and closing ")"
			// fragments concatenate with no separator between them, so the
			// clause's own comma-joining only ever runs between CTEs.
			ctes = append(ctes, container(ContainerParen, leaf(name+" AS ("), parseStatementAsToken(cte.Query), leaf(")")))
		}
		kw := "WITH"
		if s.With.Recursive {
			kw = "WITH RECURSIVE"
		}
		top = append(top, container(ContainerWithClause, append([]*PrintToken{leaf(kw)}, ctes...)...))
	}

	selectKw := "SELECT"
	if s.Distinct {
		selectKw += " DISTINCT"
		if len(s.DistinctOn) > 0 {
			var on []string
			for _, e := range s.DistinctOn {
				on = append(on, exprString(e))
			}
			selectKw += " ON (" + strings.Join(on, ", ") + ")"
		}
	}
	var cols []*PrintToken
	for _, c := range s.Columns {
		cols = append(cols, leaf(exprString(c)))
	}
	top = append(top, container(ContainerSelectClause, append([]*PrintToken{leaf(selectKw)}, cols...)...))

	if s.From != nil {
		top = append(top, container(ContainerFromClause, leaf("FROM"), leaf(exprString(s.From))))
	}
	if s.Where != nil {
		top = append(top, container(ContainerWhereClause, append([]*PrintToken{leaf("WHERE")}, conjunctLeaves(s.Where)...)...))
	}
	if s.GroupBy != nil && len(s.GroupBy.Items) > 0 {
		var items []*PrintToken
		for _, e := range s.GroupBy.Items {
			items = append(items, leaf(exprString(e)))
		}
		top = append(top, container(ContainerGroupByClause, append([]*PrintToken{leaf("GROUP BY")}, items...)...))
	}
	if s.Having != nil {
		top = append(top, container(ContainerHavingClause, append([]*PrintToken{leaf("HAVING")}, conjunctLeaves(s.Having)...)...))
	}
	if len(s.OrderBy) > 0 {
		var items []*PrintToken
		for _, ob := range s.OrderBy {
			txt := exprString(ob.Expr)
			if ob.Desc {
				txt += " DESC"
			}
			items = append(items, leaf(txt))
		}
		top = append(top, container(ContainerOrderByClause, append([]*PrintToken{leaf("ORDER BY")}, items...)...))
	}
	if s.Limit != nil && s.Limit.Count != nil {
		top = append(top, container(ContainerLimitClause, leaf("LIMIT"), leaf(exprString(s.Limit.Count))))
	}
	if len(s.WindowDefs) > 0 {
		var defs []string
		for _, wd := range s.WindowDefs {
			defs = append(defs, format.WindowDefString(wd))
		}
		top = append(top, container(ContainerWindowClause, leaf("WINDOW"), leaf(strings.Join(defs, ", "))))
	}
	if s.Lock != nil {
		top = append(top, container(ContainerLockClause, leaf("FOR "+s.Lock.Mode.String())))
	}

	return container(ContainerNone, top...)
}

// Style controls how a PrintToken tree is rendered back to text.
type Style struct {
	IndentSize  int
	IndentChar  byte
	Newline     string
	KeywordCase cases.Caser
	CommaBreak  bool // break select-list/group-by/order-by items onto their own line
	AndBreak    bool // break AND-chained WHERE/HAVING predicates onto their own line

	// IndentIncrementContainerTypes selects which container boundaries add
	// an indent level to their items. A nil slice means every container
	// indents its items one level below its keyword, the default every
	// built-in style uses; a non-nil slice restricts the indent bump to
	// just the listed container types, leaving the rest flush with their
	// own keyword line.
	IndentIncrementContainerTypes []ContainerType
}

// incrementsIndent reports whether ct should add an indent level for its
// items under the receiver's style.
func (s Style) incrementsIndent(ct ContainerType) bool {
	if s.IndentIncrementContainerTypes == nil {
		return true
	}
	for _, t := range s.IndentIncrementContainerTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// DefaultStyle upper-cases keywords, indents with two spaces, and breaks
// both comma-separated lists and AND-chained predicates onto their own
// line with a leading separator — the layout spec.md's pretty-printing
// scenario is written against.
var DefaultStyle = Style{
	IndentSize:  2,
	IndentChar:  ' ',
	Newline:     "\n",
	KeywordCase: cases.Upper(language.Und),
	CommaBreak:  true,
	AndBreak:    true,
}

// PostgresStyle matches DefaultStyle — this package was designed against
// Postgres-leaning grammar from the start.
var PostgresStyle = DefaultStyle

// MySQLStyle breaks comma-separated select/group-by/order-by lists onto
// their own indented line, the layout most MySQL pretty-printers default
// to for wide column lists.
var MySQLStyle = Style{
	IndentSize:  4,
	IndentChar:  ' ',
	Newline:     "\n",
	KeywordCase: cases.Upper(language.Und),
	CommaBreak:  true,
	AndBreak:    false,
}

// SQLServerStyle lower-cases keywords, matching the convention common in
// T-SQL style guides, and keeps lists on one line.
var SQLServerStyle = Style{
	IndentSize:  4,
	IndentChar:  ' ',
	Newline:     "\n",
	KeywordCase: cases.Lower(language.Und),
	CommaBreak:  false,
	AndBreak:    false,
}

var namedStyles = map[string]Style{
	"postgres":  PostgresStyle,
	"mysql":     MySQLStyle,
	"sqlserver": SQLServerStyle,
}

// StylePreset looks up a built-in print style by dialect name.
func StylePreset(name string) (Style, bool) {
	s, ok := namedStyles[name]
	return s, ok
}

// SqlPrinter renders a PrintToken tree to formatted SQL text.
type SqlPrinter struct {
	Style Style
}

// NewPrinter builds a SqlPrinter with the given style.
func NewPrinter(style Style) *SqlPrinter {
	return &SqlPrinter{Style: style}
}

// Print renders tok as a multi-line, indented SQL string.
func (p *SqlPrinter) Print(tok *PrintToken) string {
	var b strings.Builder
	p.printToken(&b, tok, 0)
	return strings.TrimRight(b.String(), p.Style.Newline)
}

func (p *SqlPrinter) indent(b *strings.Builder, depth int) {
	for i := 0; i < depth*p.Style.IndentSize; i++ {
		b.WriteByte(p.Style.IndentChar)
	}
}

func (p *SqlPrinter) printToken(b *strings.Builder, tok *PrintToken, depth int) {
	if tok == nil {
		return
	}
	if (tok.Container == ContainerNone || tok.Container == ContainerSetOp) && tok.Text == "" {
		for i, child := range tok.Children {
			if i > 0 {
				b.WriteString(p.Style.Newline)
			}
			p.printToken(b, child, depth)
		}
		return
	}
	if tok.Text != "" {
		p.indent(b, depth)
		b.WriteString(tok.Text)
		return
	}
	if tok.Container == ContainerParen {
		// An inline grouping of fragments (e.g. a single CTE entry's
		// "name AS (", body, ")") concatenated with no separator, so it
		// behaves as one item under whatever clause holds it.
		p.indent(b, depth)
		for _, child := range tok.Children {
			p.writeInline(b, child)
		}
		return
	}

	// Container: first child is the clause keyword, written alone on its
	// own line; the rest are its items, rendered on the line(s) below.
	if len(tok.Children) == 0 {
		return
	}
	p.indent(b, depth)
	b.WriteString(p.Style.KeywordCase.String(tok.Children[0].Text))
	items := tok.Children[1:]
	if len(items) == 0 {
		return
	}
	itemDepth := depth
	if p.Style.incrementsIndent(tok.Container) {
		itemDepth++
	}
	isPredicate := tok.Container == ContainerWhereClause || tok.Container == ContainerHavingClause
	joiner, breakItems := ", ", p.Style.CommaBreak
	leadSep := ", "
	if isPredicate {
		joiner, breakItems, leadSep = " AND ", p.Style.AndBreak, "AND "
	}

	if breakItems {
		for i, item := range items {
			b.WriteString(p.Style.Newline)
			p.indent(b, itemDepth)
			if i > 0 {
				b.WriteString(leadSep)
			}
			p.writeInline(b, item)
		}
		return
	}
	b.WriteString(p.Style.Newline)
	p.indent(b, itemDepth)
	for i, item := range items {
		if i > 0 {
			b.WriteString(joiner)
		}
		p.writeInline(b, item)
	}
}

// writeInline renders tok without indenting or breaking it onto its own
// line — used for a clause's items when they're joined on a single line
// below the keyword. Item tokens are always leaves in practice (formatted
// expression text); a container item falls back to a full nested render.
func (p *SqlPrinter) writeInline(b *strings.Builder, tok *PrintToken) {
	if tok.Text != "" {
		b.WriteString(tok.Text)
		return
	}
	p.printToken(b, tok, 0)
}
