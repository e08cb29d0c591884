// Package govlang ties the scanning, parsing, and interpretation pipeline
// together for drivers and tests.
package govlang

import (
	"io"

	"github.com/gosuda/govlang/ast"
	"github.com/gosuda/govlang/lexer"
	"github.com/gosuda/govlang/parser"
	gruntime "github.com/gosuda/govlang/runtime"
)

// Parse scans and parses source text, returning the program AST for tooling
// use. Scan and parse diagnostics go to diag; a nil diag discards them. The
// error is non-nil only when the parse aborted, in which case the program is
// nil.
func Parse(src string, diag io.Writer) (*ast.Program, error) {
	l := lexer.New(src)
	l.SetDiag(diag)
	p := parser.New(l.Tokenize())
	p.SetDiag(diag)
	return p.Parse()
}

// Interpret parses and executes source text. Output lines go to stdout,
// diagnostics to diag, and READ statements consume lines from stdin.
func Interpret(src string, stdin io.Reader, stdout, diag io.Writer) error {
	prog, err := Parse(src, diag)
	if err != nil {
		return err
	}
	in := gruntime.New()
	in.SetDiag(diag)
	in.SetOutputHook(lineWriter(stdout))
	if stdin != nil {
		in.SetInputProvider(gruntime.LineProvider(stdin))
	}
	in.Run(prog)
	return nil
}

func lineWriter(w io.Writer) func(string) {
	return func(line string) {
		io.WriteString(w, line+"\n")
	}
}
