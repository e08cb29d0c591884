package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/gosuda/govlang/ast"
	gruntime "github.com/gosuda/govlang/runtime"
)

// traceTracer renders the leveled [DEBUG] execution trace. Level 1 names
// each top-level statement, level 2 adds environment dumps, level 3 adds
// completion lines. With step enabled it pauses for Enter before every
// statement.
type traceTracer struct {
	level  int
	step   bool
	stdin  *bufio.Reader
	prefix string
}

func newTrace(level int, step bool) *traceTracer {
	return &traceTracer{
		level:  level,
		step:   step,
		stdin:  bufio.NewReader(os.Stdin),
		prefix: color.New(color.FgCyan).Sprint("[DEBUG]"),
	}
}

func (t *traceTracer) printf(format string, args ...interface{}) {
	if t.level < 1 {
		return
	}
	fmt.Printf("%s %s\n", t.prefix, fmt.Sprintf(format, args...))
}

func (t *traceTracer) dumpVars(env *gruntime.Env) {
	if t.level < 2 {
		return
	}
	fmt.Printf("%s Variables:\n", t.prefix)
	names := env.Names()
	if len(names) == 0 {
		fmt.Printf("%s   (none)\n", t.prefix)
		return
	}
	for _, name := range names {
		v, _ := env.Get(name)
		fmt.Printf("%s   %s = %s\n", t.prefix, name, v.String())
	}
}

func (t *traceTracer) BeforeStatement(index int, stmt ast.Statement, env *gruntime.Env) {
	t.printf("Executing statement #%d: %s", index+1, describe(stmt))
	t.dumpVars(env)
	if t.step {
		fmt.Printf("%s Press Enter to continue...", t.prefix)
		t.stdin.ReadString('\n')
	}
}

func (t *traceTracer) AfterStatement(index int, stmt ast.Statement, env *gruntime.Env) {
	if t.level >= 3 {
		t.printf("Statement completed")
		t.dumpVars(env)
	}
}

// describe renders a one-word trace label for a statement, with the detail
// the trace has always shown for declarations, increments, and reads.
func describe(stmt ast.Statement) string {
	switch s := stmt.(type) {
	case ast.PrintStmt:
		return "PRINT"
	case ast.DeclStmt:
		return fmt.Sprintf("VAR_DECLARATION (%s : %s)", s.Name, s.Type)
	case ast.AssignStmt:
		return fmt.Sprintf("ASSIGNMENT (%s)", s.Name)
	case ast.ForStmt:
		return "FOR_LOOP"
	case ast.WhileStmt:
		return "WHILE_LOOP"
	case ast.IfStmt:
		return "IF_STATEMENT"
	case ast.IncStmt:
		return fmt.Sprintf("INCREMENT (%s += %d)", s.Name, s.Amount)
	case ast.ReadStmt:
		return fmt.Sprintf("READ (%s)", s.Name)
	default:
		return "UNKNOWN"
	}
}

// envLines formats the environment for the stepper pane.
func envLines(env *gruntime.Env) []string {
	names := env.Names()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		v, _ := env.Get(name)
		lines = append(lines, fmt.Sprintf("%s = %s", name, v.String()))
	}
	return lines
}
