package sqltoken

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kr/pretty"

	"github.com/freeeve/sqltoken/ast"
	"github.com/freeeve/sqltoken/token"
)

// astCmpOpts ignores source-position metadata so structural AST equality
// doesn't depend on exact byte offsets, which shift across a
// parse->print->reparse round trip even when the statement is unchanged.
var astCmpOpts = cmp.Options{
	cmpopts.IgnoreTypes(token.Pos{}),
}

func TestRoundTripStructuralEquality(t *testing.T) {
	for name, query := range benchQueries {
		t.Run(name, func(t *testing.T) {
			stmt, err := Parse(query)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}

			printed := Pretty(stmt)
			reparsed, err := Parse(printed)
			if err != nil {
				t.Fatalf("re-parse of pretty-printed output failed: %v\nprinted:\n%s", err, printed)
			}

			if diff := cmp.Diff(stmt, reparsed, astCmpOpts); diff != "" {
				t.Errorf("round trip changed AST structure (-original +reparsed):\n%s\nfull dump:\n%s",
					diff, pretty.Sprint(reparsed))
			}
		})
	}
}

func TestRemoveParameterPredicatesIdempotent(t *testing.T) {
	queries := []string{
		"SELECT * FROM t WHERE a = ? AND b = 1",
		"SELECT * FROM t WHERE a = 1 AND (b = ? OR c = ?)",
		"SELECT * FROM t WHERE a = $1",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			stmt, err := Parse(q)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			sel, ok := stmt.(*ast.SelectStmt)
			if !ok || sel.Where == nil {
				t.Fatalf("expected a SELECT with WHERE, got %T", stmt)
			}

			once := RemoveParameterPredicates(sel.Where)
			twice := RemoveParameterPredicates(once)

			if diff := cmp.Diff(once, twice, astCmpOpts); diff != "" {
				t.Errorf("RemoveParameterPredicates not idempotent (-once +twice):\n%s", diff)
			}
		})
	}
}
