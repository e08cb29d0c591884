package gruntime

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gosuda/govlang/ast"
	"github.com/gosuda/govlang/lexer"
)

// Tracer observes top-level statement execution. BeforeStatement may block,
// which is how step-by-step drivers pace the run.
type Tracer interface {
	BeforeStatement(index int, stmt ast.Statement, env *Env)
	AfterStatement(index int, stmt ast.Statement, env *Env)
}

// Interp walks a program tree, mutating the environment and emitting output
// lines. Evaluation never aborts: type mismatches degrade to default values
// and only undefined variables produce a diagnostic line.
type Interp struct {
	env    *Env
	diag   io.Writer
	output func(line string)
	input  func() (string, error)
	tracer Tracer
}

func New() *Interp {
	return &Interp{
		env:  NewEnv(),
		diag: os.Stderr,
		output: func(line string) {
			fmt.Println(line)
		},
		input: stdinProvider(),
	}
}

// SetDiag redirects runtime diagnostics. A nil writer discards them.
func (in *Interp) SetDiag(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	in.diag = w
}

// SetOutputHook replaces the default stdout writer. The hook receives one
// print line at a time, without the terminator.
func (in *Interp) SetOutputHook(fn func(line string)) {
	in.output = fn
}

// SetInputProvider replaces the default stdin reader. The provider returns
// one line per call, without the terminator.
func (in *Interp) SetInputProvider(fn func() (string, error)) {
	in.input = fn
}

func (in *Interp) SetTracer(t Tracer) {
	in.tracer = t
}

// Env exposes the environment for debug dumps and snapshots.
func (in *Interp) Env() *Env {
	return in.env
}

// Run executes every top-level statement in order.
func (in *Interp) Run(prog *ast.Program) {
	for i, stmt := range prog.Statements {
		if in.tracer != nil {
			in.tracer.BeforeStatement(i, stmt, in.env)
		}
		in.exec(stmt)
		if in.tracer != nil {
			in.tracer.AfterStatement(i, stmt, in.env)
		}
	}
}

func (in *Interp) exec(stmt ast.Statement) {
	switch s := stmt.(type) {
	case ast.PrintStmt:
		in.output(in.eval(s.Expr).String())

	case ast.DeclStmt:
		switch s.Type {
		case ast.IntType:
			in.env.Set(s.Name, Int(0))
		case ast.StrType:
			in.env.Set(s.Name, Str(""))
		case ast.StrArrayType:
			in.env.Set(s.Name, StrArray(int(s.Size)))
		}

	case ast.AssignStmt:
		value := in.eval(s.Value)
		if s.Index == nil {
			in.env.Set(s.Name, value)
			return
		}
		// Indexed write: needs an array binding and an integer index in
		// range; anything else is silently ignored.
		target, ok := in.env.Get(s.Name)
		if !ok || target.Kind() != ArrayKind {
			return
		}
		index := in.eval(s.Index)
		if index.Kind() != IntKind {
			return
		}
		target.SetAt(int(index.Int64()), value.String())

	case ast.ForStmt:
		for in.eval(s.Cond).Truthy() {
			for _, body := range s.Body {
				in.exec(body)
			}
		}

	case ast.WhileStmt:
		for in.eval(s.Cond).Truthy() {
			for _, body := range s.Body {
				in.exec(body)
			}
		}

	case ast.IfStmt:
		if in.eval(s.Cond).Truthy() {
			for _, body := range s.Then {
				in.exec(body)
			}
			return
		}
		for _, clause := range s.ElseIfs {
			if in.eval(clause.Cond).Truthy() {
				for _, body := range clause.Body {
					in.exec(body)
				}
				return
			}
		}
		for _, body := range s.Else {
			in.exec(body)
		}

	case ast.IncStmt:
		if v, ok := in.env.Get(s.Name); ok && v.Kind() == IntKind {
			in.env.Set(s.Name, Int(v.Int64()+s.Amount))
		}

	case ast.ReadStmt:
		line, err := in.input()
		if err != nil {
			line = ""
		}
		if n, perr := strconv.ParseInt(line, 10, 64); perr == nil {
			in.env.Set(s.Name, Int(n))
		} else {
			in.env.Set(s.Name, Str(line))
		}
	}
}

func (in *Interp) eval(expr ast.Expr) Value {
	switch e := expr.(type) {
	case ast.StringLit:
		return Str(e.Value)

	case ast.IntLit:
		return Int(e.Value)

	case ast.Ident:
		if v, ok := in.env.Get(e.Name); ok {
			return v
		}
		fmt.Fprintf(in.diag, "Undefined variable: %s\n", e.Name)
		return Int(0)

	case ast.IndexExpr:
		arr := in.eval(e.Array)
		index := in.eval(e.Index)
		if arr.Kind() == ArrayKind && index.Kind() == IntKind {
			if elem, ok := arr.At(int(index.Int64())); ok {
				return Str(elem)
			}
		}
		return Str("")

	case ast.BinaryExpr:
		// Both operands evaluate, left first; AND/OR do not short-circuit.
		left := in.eval(e.Left)
		right := in.eval(e.Right)
		return binaryOp(e.Op, left, right)
	}

	return Int(0)
}

// binaryOp applies the operator table. Every unmatched (op, kinds)
// combination degrades to Integer 0, including division by zero.
func binaryOp(op lexer.TokenType, left, right Value) Value {
	switch op {
	case lexer.Plus:
		if left.Kind() == StringKind || right.Kind() == StringKind {
			return Str(left.String() + right.String())
		}
		if left.Kind() == IntKind && right.Kind() == IntKind {
			return Int(left.Int64() + right.Int64())
		}

	case lexer.Minus:
		if left.Kind() == IntKind && right.Kind() == IntKind {
			return Int(left.Int64() - right.Int64())
		}

	case lexer.Multiply:
		if left.Kind() == IntKind && right.Kind() == IntKind {
			return Int(left.Int64() * right.Int64())
		}

	case lexer.Divide:
		if left.Kind() == IntKind && right.Kind() == IntKind && right.Int64() != 0 {
			return Int(left.Int64() / right.Int64())
		}

	case lexer.Equals:
		return boolInt(left.String() == right.String())

	case lexer.NotEquals:
		return boolInt(left.String() != right.String())

	case lexer.LessThan:
		if left.Kind() == IntKind && right.Kind() == IntKind {
			return boolInt(left.Int64() < right.Int64())
		}

	case lexer.And:
		return boolInt(left.Truthy() && right.Truthy())

	case lexer.Or:
		return boolInt(left.Truthy() || right.Truthy())
	}

	return Int(0)
}

func boolInt(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}
