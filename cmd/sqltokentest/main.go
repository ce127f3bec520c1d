// Command sqltokentest is a small harness binary that exercises sqltoken's
// parse/format/print/visitor pipeline from the command line, driven by
// testscript (.txtar) golden fixtures under testdata/scripts.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/freeeve/sqltoken"
	"github.com/freeeve/sqltoken/ast"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: sqltokentest <format|pretty|removeparams|roundtrip|tables> [file]")
		return 2
	}
	cmd := args[0]
	sql, err := readInput(args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	switch cmd {
	case "format":
		return runFormat(sql)
	case "pretty":
		return runPretty(sql)
	case "removeparams":
		return runRemoveParams(sql)
	case "roundtrip":
		return runRoundTrip(sql)
	case "tables":
		return runTables(sql)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		return 2
	}
}

func readInput(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func runFormat(sql string) int {
	stmt, err := sqltoken.Parse(sql)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return 1
	}
	fmt.Println(sqltoken.String(stmt))
	return 0
}

func runPretty(sql string) int {
	stmt, err := sqltoken.Parse(sql)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return 1
	}
	fmt.Println(sqltoken.Pretty(stmt))
	return 0
}

func runRemoveParams(sql string) int {
	stmt, err := sqltoken.Parse(sql)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return 1
	}
	sel, ok := stmt.(*ast.SelectStmt)
	if !ok {
		fmt.Fprintln(os.Stderr, "expected a SELECT statement")
		return 1
	}
	if sel.Where != nil {
		sel.Where = sqltoken.RemoveParameterPredicates(sel.Where)
	}
	fmt.Println(sqltoken.String(sel))
	return 0
}

func runRoundTrip(sql string) int {
	stmt, err := sqltoken.Parse(sql)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return 1
	}
	first := sqltoken.String(stmt)

	reparsed, err := sqltoken.Parse(first)
	if err != nil {
		fmt.Fprintln(os.Stderr, "re-parse error:", err)
		return 1
	}
	second := sqltoken.String(reparsed)

	if first != second {
		fmt.Fprintf(os.Stderr, "round trip unstable:\nfirst:  %s\nsecond: %s\n", first, second)
		return 1
	}
	fmt.Println("OK")
	return 0
}

func runTables(sql string) int {
	stmt, err := sqltoken.Parse(sql)
	if err != nil {
		fmt.Fprintln(os.Stderr, "parse error:", err)
		return 1
	}
	for _, t := range sqltoken.CollectTableSources(stmt, false) {
		fmt.Println(t.Name())
	}
	return 0
}
