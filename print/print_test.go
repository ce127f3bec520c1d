package print

import (
	"strings"
	"testing"

	"github.com/freeeve/sqltoken/parser"
)

func mustParse(t *testing.T, sql string) *PrintToken {
	t.Helper()
	p := parser.New(sql)
	stmt, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", sql, err)
	}
	return (SqlPrintTokenParser{}).Parse(stmt)
}

// TestPrintDefaultStyleScenario reproduces spec.md section 8's
// pretty-printing scenario verbatim.
func TestPrintDefaultStyleScenario(t *testing.T) {
	tok := mustParse(t, "select id, name from users where age > 18 and (status = 'active' or type = 'admin')")
	got := NewPrinter(DefaultStyle).Print(tok)
	want := strings.Join([]string{
		`SELECT`,
		`  "id"`,
		`  , "name"`,
		`FROM`,
		`  "users"`,
		`WHERE`,
		`  "age" > 18`,
		`  AND ("status" = 'active' or "type" = 'admin')`,
	}, "\n")
	if got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintKeywordAloneOnOwnLine(t *testing.T) {
	tok := mustParse(t, "select id from users")
	got := NewPrinter(DefaultStyle).Print(tok)
	lines := strings.Split(got, "\n")
	if lines[0] != "SELECT" {
		t.Errorf("first line = %q, want clause keyword alone", lines[0])
	}
	if lines[1] == "" || strings.Contains(lines[1], "SELECT") {
		t.Errorf("second line = %q, want the indented select item", lines[1])
	}
}

func TestIndentIncrementContainerTypesRestrictsIndent(t *testing.T) {
	tok := mustParse(t, "select id from users where id = 1")
	restricted := DefaultStyle
	restricted.IndentIncrementContainerTypes = []ContainerType{ContainerSelectClause}

	got := NewPrinter(restricted).Print(tok)
	lines := strings.Split(got, "\n")

	var selectItem, whereKw, whereItem string
	for i, line := range lines {
		switch line {
		case "WHERE":
			whereKw = line
			if i+1 < len(lines) {
				whereItem = lines[i+1]
			}
		}
		if strings.HasPrefix(strings.TrimSpace(line), `"id"`) && strings.HasPrefix(line, " ") {
			selectItem = line
		}
	}
	if selectItem == "" || !strings.HasPrefix(selectItem, "  ") {
		t.Errorf("SELECT item should still be indented, got lines: %v", lines)
	}
	if whereKw == "" {
		t.Fatalf("expected a WHERE line, got: %v", lines)
	}
	if strings.HasPrefix(whereItem, " ") {
		t.Errorf("WHERE item should not be indented when ContainerWhereClause is excluded, got %q in: %v", whereItem, lines)
	}
}

func TestPrintCTEConcatenatesWithoutStrayComma(t *testing.T) {
	tok := mustParse(t, "WITH a AS (SELECT 1), b AS (SELECT 2) SELECT * FROM a, b")
	got := NewPrinter(DefaultStyle).Print(tok)
	if strings.Contains(got, "AS (,") || strings.Contains(got, "(, ") {
		t.Errorf("CTE body should not start with a stray comma, got:\n%s", got)
	}
	if !strings.Contains(got, "a AS (") || !strings.Contains(got, "b AS (") {
		t.Errorf("expected both CTE entries to appear, got:\n%s", got)
	}
}
