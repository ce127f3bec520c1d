// Package format provides SQL generation from AST nodes.
package format

import (
	"bytes"
	"strings"

	"github.com/freeeve/sqltoken/ast"
	"github.com/freeeve/sqltoken/token"
)

// Options controls formatting behavior.
type Options struct {
	Uppercase bool   // Uppercase keywords
	Indent    string // Indentation string (unused for single-line output)
	// QuoteOpen/QuoteClose bracket a quoted identifier. Postgres-style
	// double quotes are the default; MySQL uses a backtick on both sides,
	// SQL Server uses a bracket pair.
	QuoteOpen  byte
	QuoteClose byte
	// AlwaysQuoteIdent quotes every identifier, not just ones that need it
	// to round-trip (keywords, special characters). The named "postgres"
	// preset sets this so plain lowercase names like "id" still come out
	// quoted, matching psql's own --no-psqlrc output convention.
	AlwaysQuoteIdent bool
}

// DefaultOptions are the default formatting options: uppercase keywords,
// quote identifiers only when required to round-trip. This is the preset
// format.String/sqltoken.String use, and what the bulk of this repo's
// tests are written against.
var DefaultOptions = Options{
	Uppercase:  true,
	Indent:     "  ",
	QuoteOpen:  '"',
	QuoteClose: '"',
}

// PostgresOptions matches psql's own rendering of a query: lowercase
// keywords and every identifier double-quoted, regardless of whether the
// identifier needs it. This is the preset named "postgres" in Preset/
// LoadOptionsYAML, and the one spec.md's §8 scenarios are written against.
var PostgresOptions = Options{
	Uppercase:        false,
	Indent:           "  ",
	QuoteOpen:        '"',
	QuoteClose:       '"',
	AlwaysQuoteIdent: true,
}

// MySQLOptions quotes identifiers with backticks, matching MySQL's
// identifier-escaping rules.
var MySQLOptions = Options{
	Uppercase:  true,
	Indent:     "  ",
	QuoteOpen:  '`',
	QuoteClose: '`',
}

// SQLServerOptions quotes identifiers with square brackets, matching
// T-SQL's identifier-escaping rules.
var SQLServerOptions = Options{
	Uppercase:  true,
	Indent:     "  ",
	QuoteOpen:  '[',
	QuoteClose: ']',
}

// Formatter generates SQL from AST nodes.
type Formatter struct {
	buf  bytes.Buffer
	opts Options
}

// New creates a new formatter with the given options.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts}
}

// String formats an AST node to a SQL string.
func String(node ast.Node) string {
	f := New(DefaultOptions)
	f.Format(node)
	return f.String()
}

// WindowDefString formats a single named WINDOW clause entry
// ("name AS (...)"), for callers such as the print package that lower a
// statement into their own clause tree rather than calling Format directly.
func WindowDefString(wd *ast.WindowDef) string {
	f := New(DefaultOptions)
	f.writeIdent(wd.Name)
	f.write(" ")
	f.writeKeyword("AS")
	f.write(" (")
	f.formatWindowSpecBody(wd.Spec)
	f.write(")")
	return f.String()
}

// Format formats a node to the internal buffer.
func (f *Formatter) Format(node ast.Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ast.SelectStmt:
		f.formatSelect(n)
	case *ast.InsertStmt:
		f.formatInsert(n)
	case *ast.UpdateStmt:
		f.formatUpdate(n)
	case *ast.DeleteStmt:
		f.formatDelete(n)
	case *ast.BinarySelectQuery:
		f.formatBinarySelectQuery(n)
	case *ast.RowExpr:
		f.formatRowExpr(n)
	case *ast.BinaryExpr:
		f.formatBinaryExpr(n)
	case *ast.UnaryExpr:
		f.formatUnaryExpr(n)
	case *ast.ParenExpr:
		f.write("(")
		f.Format(n.Expr)
		f.write(")")
	case *ast.FuncExpr:
		f.formatFuncExpr(n)
	case *ast.CaseExpr:
		f.formatCaseExpr(n)
	case *ast.CastExpr:
		f.formatCastExpr(n)
	case *ast.ColName:
		f.formatColName(n)
	case *ast.Literal:
		f.formatLiteral(n)
	case *ast.Param:
		f.formatParam(n)
	case *ast.TableName:
		f.formatTableName(n)
	case *ast.AliasedTableExpr:
		f.formatAliasedTableExpr(n)
	case *ast.JoinExpr:
		f.formatJoinExpr(n)
	case *ast.ParenTableExpr:
		f.write("(")
		f.Format(n.Expr)
		f.write(")")
	case *ast.Subquery:
		f.write("(")
		f.Format(n.Select)
		f.write(")")
	case *ast.AliasedExpr:
		f.Format(n.Expr)
		if n.Alias != "" {
			f.write(" ")
			f.writeKeyword("AS")
			f.write(" ")
			f.writeIdent(n.Alias)
		}
	case *ast.StarExpr:
		if n.HasQualifier {
			f.writeIdent(n.TableName)
			f.write(".")
		}
		f.write("*")
	case *ast.InExpr:
		f.formatInExpr(n)
	case *ast.BetweenExpr:
		f.formatBetweenExpr(n)
	case *ast.LikeExpr:
		f.formatLikeExpr(n)
	case *ast.IsExpr:
		f.formatIsExpr(n)
	case *ast.ExistsExpr:
		f.formatExistsExpr(n)
	case *ast.IntervalExpr:
		f.formatIntervalExpr(n)
	case *ast.ExtractExpr:
		f.formatExtractExpr(n)
	case *ast.TrimExpr:
		f.formatTrimExpr(n)
	case *ast.SubstringExpr:
		f.formatSubstringExpr(n)
	case *ast.ArrayExpr:
		f.formatArrayExpr(n)
	case *ast.SubscriptExpr:
		// Format array subscripts with space after [ to distinguish from SQL Server
		// bracket identifiers. The lexer treats [ followed by space as LBRACKET,
		// not as start of bracket identifier.
		f.Format(n.Expr)
		f.write("[ ")
		f.Format(n.Index)
		f.write(" ]")
	case *ast.CollateExpr:
		f.Format(n.Expr)
		f.write(" ")
		f.writeKeyword("COLLATE")
		f.write(" ")
		f.write(n.Collation)
	case *ast.ValuesStmt:
		f.formatValuesStmt(n)
	}
}

// String returns the formatted SQL.
func (f *Formatter) String() string {
	return f.buf.String()
}

func (f *Formatter) write(s string) {
	f.buf.WriteString(s)
}

func (f *Formatter) writeKeyword(kw string) {
	if f.opts.Uppercase {
		f.buf.WriteString(strings.ToUpper(kw))
	} else {
		f.buf.WriteString(strings.ToLower(kw))
	}
}

func (f *Formatter) quotePair() (byte, byte) {
	if f.opts.QuoteOpen == 0 {
		return '"', '"'
	}
	return f.opts.QuoteOpen, f.opts.QuoteClose
}

func (f *Formatter) writeIdent(id string) {
	if f.opts.AlwaysQuoteIdent || needsQuoting(id) {
		open, close := f.quotePair()
		f.buf.WriteByte(open)
		f.buf.WriteString(strings.ReplaceAll(id, string(close), string(close)+string(close)))
		f.buf.WriteByte(close)
	} else {
		f.buf.WriteString(id)
	}
}

// writeFuncName writes a function name. Unlike writeIdent, it doesn't quote
// keywords since many SQL functions have keyword names (ANY, ALL, COUNT, etc.)
func (f *Formatter) writeFuncName(name string) {
	if needsQuotingNonKeyword(name) {
		open, close := f.quotePair()
		f.buf.WriteByte(open)
		f.buf.WriteString(strings.ReplaceAll(name, string(close), string(close)+string(close)))
		f.buf.WriteByte(close)
	} else {
		f.buf.WriteString(name)
	}
}

func (f *Formatter) formatSelect(s *ast.SelectStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}

	f.writeKeyword("SELECT")

	if s.Distinct {
		f.write(" ")
		f.writeKeyword("DISTINCT")
		if len(s.DistinctOn) > 0 {
			f.write(" ")
			f.writeKeyword("ON")
			f.write(" (")
			for i, expr := range s.DistinctOn {
				if i > 0 {
					f.write(", ")
				}
				f.Format(expr)
			}
			f.write(")")
		}
	}

	f.write(" ")

	// Columns
	for i, col := range s.Columns {
		if i > 0 {
			f.write(", ")
		}
		f.Format(col)
	}

	// FROM
	if s.From != nil {
		f.write(" ")
		f.writeKeyword("FROM")
		f.write(" ")
		f.Format(s.From)
	}

	// WHERE
	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}

	// GROUP BY
	if s.GroupBy != nil && len(s.GroupBy.Items) > 0 {
		f.write(" ")
		f.writeKeyword("GROUP BY")
		f.write(" ")
		switch s.GroupBy.Kind {
		case ast.GroupingSets:
			f.writeKeyword("GROUPING SETS")
			f.write(" (")
		case ast.GroupingCube:
			f.writeKeyword("CUBE")
			f.write(" (")
		case ast.GroupingRollup:
			f.writeKeyword("ROLLUP")
			f.write(" (")
		}
		for i, expr := range s.GroupBy.Items {
			if i > 0 {
				f.write(", ")
			}
			f.Format(expr)
		}
		if s.GroupBy.Kind != ast.GroupingPlain {
			f.write(")")
		}
	}

	// HAVING
	if s.Having != nil {
		f.write(" ")
		f.writeKeyword("HAVING")
		f.write(" ")
		f.Format(s.Having)
	}

	// ORDER BY
	if len(s.OrderBy) > 0 {
		f.write(" ")
		f.writeKeyword("ORDER BY")
		f.write(" ")
		for i, ob := range s.OrderBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(ob.Expr)
			if ob.Desc {
				f.write(" ")
				f.writeKeyword("DESC")
			}
			if ob.NullsFirst != nil {
				f.write(" ")
				f.writeKeyword("NULLS")
				f.write(" ")
				if *ob.NullsFirst {
					f.writeKeyword("FIRST")
				} else {
					f.writeKeyword("LAST")
				}
			}
		}
	}

	// LIMIT
	if s.Limit != nil {
		if s.Limit.Count != nil {
			f.write(" ")
			f.writeKeyword("LIMIT")
			f.write(" ")
			f.Format(s.Limit.Count)
		}
		if s.Limit.Offset != nil {
			f.write(" ")
			f.writeKeyword("OFFSET")
			f.write(" ")
			f.Format(s.Limit.Offset)
		}
	}

	// WINDOW
	if len(s.WindowDefs) > 0 {
		f.write(" ")
		f.writeKeyword("WINDOW")
		f.write(" ")
		for i, wd := range s.WindowDefs {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(wd.Name)
			f.write(" ")
			f.writeKeyword("AS")
			f.write(" (")
			f.formatWindowSpecBody(wd.Spec)
			f.write(")")
		}
	}

	// FOR UPDATE/SHARE
	if s.Lock != nil {
		f.write(" ")
		f.writeKeyword("FOR")
		f.write(" ")
		f.writeKeyword(s.Lock.Mode.String())
	}
}

func (f *Formatter) formatRowExpr(r *ast.RowExpr) {
	f.write("(")
	for i, v := range r.Values {
		if i > 0 {
			f.write(", ")
		}
		f.Format(v)
	}
	f.write(")")
}

func (f *Formatter) formatWithClause(w *ast.WithClause) {
	f.writeKeyword("WITH")
	if w.Recursive {
		f.write(" ")
		f.writeKeyword("RECURSIVE")
	}
	f.write(" ")
	for i, cte := range w.CTEs {
		if i > 0 {
			f.write(", ")
		}
		f.writeIdent(cte.Name)
		if len(cte.Columns) > 0 {
			f.write(" (")
			for j, col := range cte.Columns {
				if j > 0 {
					f.write(", ")
				}
				f.writeIdent(col)
			}
			f.write(")")
		}
		f.write(" ")
		f.writeKeyword("AS")
		f.write(" ")
		switch cte.Materialization {
		case ast.MaterializeForced:
			f.writeKeyword("MATERIALIZED")
			f.write(" ")
		case ast.MaterializeInlined:
			f.writeKeyword("NOT MATERIALIZED")
			f.write(" ")
		}
		f.write("(")
		f.Format(cte.Query)
		f.write(")")
	}
}

func (f *Formatter) formatInsert(s *ast.InsertStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}

	if s.Replace {
		f.writeKeyword("REPLACE")
	} else {
		f.writeKeyword("INSERT")
	}

	if s.Ignore {
		f.write(" ")
		f.writeKeyword("IGNORE")
	}

	f.write(" ")
	f.writeKeyword("INTO")
	f.write(" ")
	f.Format(s.Table)

	if len(s.Columns) > 0 {
		f.write(" (")
		for i, col := range s.Columns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col.Name())
		}
		f.write(")")
	}

	if s.Select != nil {
		f.write(" ")
		f.Format(s.Select)
	} else if len(s.Values) > 0 {
		f.write(" ")
		f.writeKeyword("VALUES")
		f.write(" ")
		for i, row := range s.Values {
			if i > 0 {
				f.write(", ")
			}
			f.write("(")
			for j, val := range row {
				if j > 0 {
					f.write(", ")
				}
				f.Format(val)
			}
			f.write(")")
		}
	}

	if len(s.OnDuplicateUpdate) > 0 {
		f.write(" ")
		f.writeKeyword("ON DUPLICATE KEY UPDATE")
		f.write(" ")
		for i, ue := range s.OnDuplicateUpdate {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(ue.Column.Name())
			f.write(" = ")
			f.Format(ue.Expr)
		}
	}

	if s.OnConflict != nil {
		f.write(" ")
		f.writeKeyword("ON CONFLICT")
		if len(s.OnConflict.Columns) > 0 {
			f.write(" (")
			for i, col := range s.OnConflict.Columns {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(col)
			}
			f.write(")")
		}
		f.write(" ")
		f.writeKeyword("DO")
		f.write(" ")
		if s.OnConflict.DoNothing {
			f.writeKeyword("NOTHING")
		} else {
			f.writeKeyword("UPDATE SET")
			f.write(" ")
			for i, ue := range s.OnConflict.Updates {
				if i > 0 {
					f.write(", ")
				}
				f.writeIdent(ue.Column.Name())
				f.write(" = ")
				f.Format(ue.Expr)
			}
		}
	}

	if len(s.Returning) > 0 {
		f.write(" ")
		f.writeKeyword("RETURNING")
		f.write(" ")
		for i, col := range s.Returning {
			if i > 0 {
				f.write(", ")
			}
			f.Format(col)
		}
	}
}

func (f *Formatter) formatUpdate(s *ast.UpdateStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}

	f.writeKeyword("UPDATE")
	f.write(" ")
	f.Format(s.Table)
	f.write(" ")
	f.writeKeyword("SET")
	f.write(" ")

	for i, ue := range s.Set {
		if i > 0 {
			f.write(", ")
		}
		f.formatColName(ue.Column)
		f.write(" = ")
		f.Format(ue.Expr)
	}

	if s.From != nil {
		f.write(" ")
		f.writeKeyword("FROM")
		f.write(" ")
		f.Format(s.From)
	}

	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}

	if len(s.OrderBy) > 0 {
		f.write(" ")
		f.writeKeyword("ORDER BY")
		f.write(" ")
		for i, ob := range s.OrderBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(ob.Expr)
			if ob.Desc {
				f.write(" ")
				f.writeKeyword("DESC")
			}
		}
	}

	if s.Limit != nil && s.Limit.Count != nil {
		f.write(" ")
		f.writeKeyword("LIMIT")
		f.write(" ")
		f.Format(s.Limit.Count)
	}

	if len(s.Returning) > 0 {
		f.write(" ")
		f.writeKeyword("RETURNING")
		f.write(" ")
		for i, col := range s.Returning {
			if i > 0 {
				f.write(", ")
			}
			f.Format(col)
		}
	}
}

func (f *Formatter) formatDelete(s *ast.DeleteStmt) {
	if s.With != nil {
		f.formatWithClause(s.With)
		f.write(" ")
	}

	f.writeKeyword("DELETE FROM")
	f.write(" ")
	f.Format(s.Table)

	if s.Using != nil {
		f.write(" ")
		f.writeKeyword("USING")
		f.write(" ")
		f.Format(s.Using)
	}

	if s.Where != nil {
		f.write(" ")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(s.Where)
	}

	if len(s.OrderBy) > 0 {
		f.write(" ")
		f.writeKeyword("ORDER BY")
		f.write(" ")
		for i, ob := range s.OrderBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(ob.Expr)
			if ob.Desc {
				f.write(" ")
				f.writeKeyword("DESC")
			}
		}
	}

	if s.Limit != nil && s.Limit.Count != nil {
		f.write(" ")
		f.writeKeyword("LIMIT")
		f.write(" ")
		f.Format(s.Limit.Count)
	}

	if len(s.Returning) > 0 {
		f.write(" ")
		f.writeKeyword("RETURNING")
		f.write(" ")
		for i, col := range s.Returning {
			if i > 0 {
				f.write(", ")
			}
			f.Format(col)
		}
	}
}

func (f *Formatter) formatDataType(dt *ast.DataType) {
	if dt == nil {
		return
	}
	// Use writeIdent to handle quoted identifiers as type names
	if needsQuoting(dt.Name) {
		f.writeIdent(dt.Name)
	} else {
		f.writeKeyword(dt.Name)
	}
	if dt.Length != nil {
		f.write("(")
		f.write(itoa(*dt.Length))
		if dt.Scale != nil {
			f.write(", ")
			f.write(itoa(*dt.Scale))
		}
		f.write(")")
	}
	if dt.Unsigned {
		f.write(" ")
		f.writeKeyword("UNSIGNED")
	}
	if dt.Array {
		f.write("[]")
	}
}

func (f *Formatter) formatBinarySelectQuery(s *ast.BinarySelectQuery) {
	f.Format(s.Left)
	f.write(" ")
	f.writeKeyword(s.Op.String())
	f.write(" ")
	f.Format(s.Right)

	if len(s.OrderBy) > 0 {
		f.write(" ")
		f.writeKeyword("ORDER BY")
		f.write(" ")
		for i, ob := range s.OrderBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(ob.Expr)
			if ob.Desc {
				f.write(" ")
				f.writeKeyword("DESC")
			}
		}
	}
	if s.Limit != nil && s.Limit.Count != nil {
		f.write(" ")
		f.writeKeyword("LIMIT")
		f.write(" ")
		f.Format(s.Limit.Count)
	}
}

func (f *Formatter) formatBinaryExpr(e *ast.BinaryExpr) {
	f.Format(e.Left)
	f.write(" ")
	f.writeKeyword(tokenToString(e.Op))
	f.write(" ")
	f.Format(e.Right)
}

func (f *Formatter) formatUnaryExpr(e *ast.UnaryExpr) {
	switch e.Op {
	case token.NOT:
		f.writeKeyword("NOT")
		f.write(" ")
	case token.MINUS:
		f.write("-")
		// Add space if operand is also unary minus to avoid -- comment syntax
		if inner, ok := e.Operand.(*ast.UnaryExpr); ok && inner.Op == token.MINUS {
			f.write(" ")
		}
	case token.BITNOT:
		f.write("~")
	}
	f.Format(e.Operand)
}

func (f *Formatter) formatFuncExpr(e *ast.FuncExpr) {
	f.writeFuncName(e.Name)
	f.write("(")
	if e.Distinct {
		f.writeKeyword("DISTINCT")
		f.write(" ")
	}
	for i, arg := range e.Args {
		if i > 0 {
			f.write(", ")
		}
		f.Format(arg)
	}
	f.write(")")
	if e.Filter != nil {
		f.write(" ")
		f.writeKeyword("FILTER")
		f.write(" (")
		f.writeKeyword("WHERE")
		f.write(" ")
		f.Format(e.Filter)
		f.write(")")
	}
	if e.Over != nil {
		f.write(" ")
		f.formatWindowSpec(e.Over)
	}
}

func (f *Formatter) formatWindowSpec(spec *ast.WindowSpec) {
	f.writeKeyword("OVER")
	f.write(" ")
	if spec.Name != "" && len(spec.PartitionBy) == 0 && len(spec.OrderBy) == 0 && spec.Frame == nil {
		f.writeIdent(spec.Name)
		return
	}
	f.write("(")
	f.formatWindowSpecBody(spec)
	f.write(")")
}

// formatWindowSpecBody writes a window spec's contents without the leading
// OVER keyword or surrounding parens, so a named WINDOW clause entry can
// wrap it in its own "name AS (...)" shell.
func (f *Formatter) formatWindowSpecBody(spec *ast.WindowSpec) {
	if spec.Name != "" {
		f.writeIdent(spec.Name)
	}
	if len(spec.PartitionBy) > 0 {
		if spec.Name != "" {
			f.write(" ")
		}
		f.writeKeyword("PARTITION BY")
		f.write(" ")
		for i, pb := range spec.PartitionBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(pb)
		}
	}
	if len(spec.OrderBy) > 0 {
		if spec.Name != "" || len(spec.PartitionBy) > 0 {
			f.write(" ")
		}
		f.writeKeyword("ORDER BY")
		f.write(" ")
		for i, ob := range spec.OrderBy {
			if i > 0 {
				f.write(", ")
			}
			f.Format(ob.Expr)
			if ob.Desc {
				f.write(" ")
				f.writeKeyword("DESC")
			}
		}
	}
	if spec.Frame != nil {
		f.write(" ")
		f.formatWindowFrame(spec.Frame)
	}
}

func (f *Formatter) formatWindowFrame(frame *ast.WindowFrame) {
	switch frame.Type {
	case ast.FrameRows:
		f.writeKeyword("ROWS")
	case ast.FrameRange:
		f.writeKeyword("RANGE")
	case ast.FrameGroups:
		f.writeKeyword("GROUPS")
	}
	f.write(" ")
	if frame.End != nil {
		f.writeKeyword("BETWEEN")
		f.write(" ")
		f.formatFrameBound(frame.Start)
		f.write(" ")
		f.writeKeyword("AND")
		f.write(" ")
		f.formatFrameBound(frame.End)
	} else {
		f.formatFrameBound(frame.Start)
	}
}

func (f *Formatter) formatFrameBound(bound *ast.FrameBound) {
	switch bound.Type {
	case ast.BoundCurrentRow:
		f.writeKeyword("CURRENT ROW")
	case ast.BoundUnboundedPreceding:
		f.writeKeyword("UNBOUNDED PRECEDING")
	case ast.BoundUnboundedFollowing:
		f.writeKeyword("UNBOUNDED FOLLOWING")
	case ast.BoundPreceding:
		f.Format(bound.Offset)
		f.write(" ")
		f.writeKeyword("PRECEDING")
	case ast.BoundFollowing:
		f.Format(bound.Offset)
		f.write(" ")
		f.writeKeyword("FOLLOWING")
	}
}

func (f *Formatter) formatCaseExpr(e *ast.CaseExpr) {
	f.writeKeyword("CASE")
	if e.Operand != nil {
		f.write(" ")
		f.Format(e.Operand)
	}
	if e.Arg != nil {
		for _, w := range e.Arg.Whens {
			f.write(" ")
			f.writeKeyword("WHEN")
			f.write(" ")
			f.Format(w.Cond)
			f.write(" ")
			f.writeKeyword("THEN")
			f.write(" ")
			f.Format(w.Result)
		}
		if e.Arg.Else != nil {
			f.write(" ")
			f.writeKeyword("ELSE")
			f.write(" ")
			f.Format(e.Arg.Else)
		}
	}
	f.write(" ")
	f.writeKeyword("END")
}

func (f *Formatter) formatCastExpr(e *ast.CastExpr) {
	f.writeKeyword("CAST")
	f.write("(")
	f.Format(e.Expr)
	f.write(" ")
	f.writeKeyword("AS")
	f.write(" ")
	f.formatDataType(e.Type)
	f.write(")")
}

func (f *Formatter) formatColName(c *ast.ColName) {
	for i, part := range c.Parts {
		if i > 0 {
			f.write(".")
		}
		f.writeIdent(part)
	}
}

func (f *Formatter) formatTableName(t *ast.TableName) {
	for i, part := range t.Parts {
		if i > 0 {
			f.write(".")
		}
		f.writeIdent(part)
	}
}

func (f *Formatter) formatLiteral(l *ast.Literal) {
	switch l.Type {
	case ast.LiteralNull:
		f.writeKeyword("NULL")
	case ast.LiteralString:
		f.formatStringLiteral(l.Value)
	case ast.LiteralBool:
		f.writeKeyword(l.Value)
	default:
		f.write(l.Value)
	}
}

func (f *Formatter) formatStringLiteral(s string) {
	// The lexer returns string content without enclosing quotes.
	// We need to add quotes and escape any internal quotes/backslashes.
	f.write("'")
	// Escape both single quotes and backslashes for round-trip safety
	escaped := strings.ReplaceAll(s, "\\", "\\\\")
	escaped = strings.ReplaceAll(escaped, "'", "''")
	f.write(escaped)
	f.write("'")
}

func (f *Formatter) formatParam(p *ast.Param) {
	switch p.Type {
	case ast.ParamQuestion:
		f.write("?")
	case ast.ParamDollar:
		f.write("$")
		f.write(itoa(p.Index))
	case ast.ParamColon:
		f.write(":")
		f.write(p.Name)
	case ast.ParamAt:
		f.write("@")
		f.write(p.Name)
	}
}

func (f *Formatter) formatAliasedTableExpr(a *ast.AliasedTableExpr) {
	f.Format(a.Expr)
	// An alias identical to the underlying table name is redundant
	// ("users AS users"); suppress it at print time.
	tbl, isTable := a.Expr.(*ast.TableName)
	redundant := isTable && a.Alias == tbl.Name()
	if a.Alias != "" && !redundant {
		f.write(" ")
		f.writeKeyword("AS")
		f.write(" ")
		f.writeIdent(a.Alias)
	}
	if len(a.AliasColumns) > 0 {
		f.write(" (")
		for i, col := range a.AliasColumns {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(")")
	}
}

func (f *Formatter) formatJoinExpr(j *ast.JoinExpr) {
	f.Format(j.Left)
	f.write(" ")
	if j.Natural {
		f.writeKeyword("NATURAL")
		f.write(" ")
	}
	switch j.Type {
	case ast.JoinInner:
		f.writeKeyword("JOIN")
	case ast.JoinLeft:
		f.writeKeyword("LEFT JOIN")
	case ast.JoinRight:
		f.writeKeyword("RIGHT JOIN")
	case ast.JoinFull:
		f.writeKeyword("FULL JOIN")
	case ast.JoinCross:
		f.writeKeyword("CROSS JOIN")
	}
	f.write(" ")
	f.Format(j.Right)
	if j.On != nil {
		f.write(" ")
		f.writeKeyword("ON")
		f.write(" ")
		f.Format(j.On)
	}
	if len(j.Using) > 0 {
		f.write(" ")
		f.writeKeyword("USING")
		f.write(" (")
		for i, col := range j.Using {
			if i > 0 {
				f.write(", ")
			}
			f.writeIdent(col)
		}
		f.write(")")
	}
}

func (f *Formatter) formatInExpr(e *ast.InExpr) {
	f.Format(e.Expr)
	if e.Not {
		f.write(" ")
		f.writeKeyword("NOT")
	}
	f.write(" ")
	f.writeKeyword("IN")
	f.write(" (")
	if e.Select != nil {
		f.Format(e.Select)
	} else {
		for i, val := range e.Values {
			if i > 0 {
				f.write(", ")
			}
			f.Format(val)
		}
	}
	f.write(")")
}

func (f *Formatter) formatBetweenExpr(e *ast.BetweenExpr) {
	f.Format(e.Expr)
	if e.Not {
		f.write(" ")
		f.writeKeyword("NOT")
	}
	f.write(" ")
	f.writeKeyword("BETWEEN")
	f.write(" ")
	f.Format(e.Low)
	f.write(" ")
	f.writeKeyword("AND")
	f.write(" ")
	f.Format(e.High)
}

func (f *Formatter) formatLikeExpr(e *ast.LikeExpr) {
	f.Format(e.Expr)
	if e.Not {
		f.write(" ")
		f.writeKeyword("NOT")
	}
	f.write(" ")
	if e.ILike {
		f.writeKeyword("ILIKE")
	} else {
		f.writeKeyword("LIKE")
	}
	f.write(" ")
	f.Format(e.Pattern)
	if e.Escape != nil {
		f.write(" ")
		f.writeKeyword("ESCAPE")
		f.write(" ")
		f.Format(e.Escape)
	}
}

func (f *Formatter) formatIsExpr(e *ast.IsExpr) {
	f.Format(e.Expr)
	f.write(" ")
	f.writeKeyword("IS")
	if e.Not {
		f.write(" ")
		f.writeKeyword("NOT")
	}
	f.write(" ")
	switch e.What {
	case ast.IsNull:
		f.writeKeyword("NULL")
	case ast.IsTrue:
		f.writeKeyword("TRUE")
	case ast.IsFalse:
		f.writeKeyword("FALSE")
	case ast.IsUnknown:
		f.writeKeyword("UNKNOWN")
	}
}

func (f *Formatter) formatExistsExpr(e *ast.ExistsExpr) {
	if e.Not {
		f.writeKeyword("NOT")
		f.write(" ")
	}
	f.writeKeyword("EXISTS")
	f.write(" ")
	f.Format(e.Subquery)
}

func (f *Formatter) formatIntervalExpr(e *ast.IntervalExpr) {
	f.writeKeyword("INTERVAL")
	f.write(" ")
	f.Format(e.Value)
	if e.Unit != "" {
		f.write(" ")
		f.writeKeyword(e.Unit)
	}
}

func (f *Formatter) formatExtractExpr(e *ast.ExtractExpr) {
	f.writeKeyword("EXTRACT")
	f.write("(")
	// Use writeIdent to handle empty or special field names
	f.writeIdent(e.Field)
	f.write(" ")
	f.writeKeyword("FROM")
	f.write(" ")
	f.Format(e.Source)
	f.write(")")
}

func (f *Formatter) formatTrimExpr(e *ast.TrimExpr) {
	f.writeKeyword("TRIM")
	f.write("(")
	switch e.TrimType {
	case ast.TrimLeading:
		f.writeKeyword("LEADING")
		f.write(" ")
	case ast.TrimTrailing:
		f.writeKeyword("TRAILING")
		f.write(" ")
	case ast.TrimBoth:
		f.writeKeyword("BOTH")
		f.write(" ")
	}
	if e.TrimChar != nil {
		f.Format(e.TrimChar)
		f.write(" ")
	}
	f.writeKeyword("FROM")
	f.write(" ")
	f.Format(e.Expr)
	f.write(")")
}

func (f *Formatter) formatSubstringExpr(e *ast.SubstringExpr) {
	f.writeKeyword("SUBSTRING")
	f.write("(")
	f.Format(e.Expr)
	if e.Similar != nil {
		f.write(" ")
		f.writeKeyword("SIMILAR")
		f.write(" ")
		f.Format(e.Similar)
		if e.Escape != nil {
			f.write(" ")
			f.writeKeyword("ESCAPE")
			f.write(" ")
			f.Format(e.Escape)
		}
		f.write(")")
		return
	}
	if e.From != nil {
		f.write(" ")
		f.writeKeyword("FROM")
		f.write(" ")
		f.Format(e.From)
	}
	if e.For != nil {
		f.write(" ")
		f.writeKeyword("FOR")
		f.write(" ")
		f.Format(e.For)
	}
	f.write(")")
}

func (f *Formatter) formatArrayExpr(e *ast.ArrayExpr) {
	// Format ARRAY constructor with spaces inside brackets to distinguish from
	// SQL Server bracket identifiers. The lexer treats [ followed by space as
	// LBRACKET, not as start of bracket identifier.
	f.writeKeyword("ARRAY")
	f.write("[ ")
	for i, elem := range e.Elements {
		if i > 0 {
			f.write(", ")
		}
		f.Format(elem)
	}
	f.write(" ]")
}

func (f *Formatter) formatValuesStmt(s *ast.ValuesStmt) {
	f.writeKeyword("VALUES")
	f.write(" ")
	for i, row := range s.Rows {
		if i > 0 {
			f.write(", ")
		}
		f.write("(")
		for j, val := range row {
			if j > 0 {
				f.write(", ")
			}
			f.Format(val)
		}
		f.write(")")
	}
}

func needsQuoting(id string) bool {
	if needsQuotingNonKeyword(id) {
		return true
	}
	// Check if it's a reserved keyword
	return token.IsKeyword(id)
}

// needsQuotingNonKeyword checks if an identifier needs quoting for non-keyword
// reasons (empty, special characters, etc.)
func needsQuotingNonKeyword(id string) bool {
	if len(id) == 0 {
		return true
	}
	// Check first char
	ch := id[0]
	if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_') {
		return true
	}
	// Check remaining chars
	for i := 1; i < len(id); i++ {
		ch := id[i]
		if !((ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') ||
			(ch >= '0' && ch <= '9') || ch == '_' || ch == '$') {
			return true
		}
	}
	return false
}

func tokenToString(t token.Token) string {
	switch t {
	case token.EQ:
		return "="
	case token.NEQ:
		return "<>"
	case token.LT:
		return "<"
	case token.GT:
		return ">"
	case token.LTE:
		return "<="
	case token.GTE:
		return ">="
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.ASTERISK:
		return "*"
	case token.SLASH:
		return "/"
	case token.PERCENT:
		return "%"
	case token.AND:
		return "AND"
	case token.OR:
		return "OR"
	case token.XOR:
		return "XOR"
	case token.CONCAT:
		return "||"
	case token.BITAND:
		return "&"
	case token.BITOR:
		return "|"
	case token.BITXOR:
		return "^"
	case token.LSHIFT:
		return "<<"
	case token.RSHIFT:
		return ">>"
	default:
		return t.String()
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	if n < 0 {
		return "-" + itoa(-n)
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
