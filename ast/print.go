package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/gosuda/govlang/lexer"
)

// Fprint writes an indented dump of the program to w, two spaces per level.
func Fprint(w io.Writer, prog *Program) {
	fmt.Fprintf(w, "Program (%d statements)\n", len(prog.Statements))
	for _, stmt := range prog.Statements {
		printStmt(w, stmt, 1)
	}
}

func indent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat("  ", depth))
}

func printStmt(w io.Writer, stmt Statement, depth int) {
	indent(w, depth)
	switch s := stmt.(type) {
	case PrintStmt:
		fmt.Fprintln(w, "PrintStatement")
		printExpr(w, s.Expr, depth+1)
	case DeclStmt:
		fmt.Fprintf(w, "VarDeclaration: %s (type: %s", s.Name, s.Type)
		if s.Size > 0 {
			fmt.Fprintf(w, "[%d]", s.Size)
		}
		fmt.Fprintln(w, ")")
	case AssignStmt:
		fmt.Fprintf(w, "Assignment: %s\n", s.Name)
		if s.Index != nil {
			indent(w, depth)
			fmt.Fprintln(w, "  Index:")
			printExpr(w, s.Index, depth+2)
		}
		indent(w, depth)
		fmt.Fprintln(w, "  Value:")
		printExpr(w, s.Value, depth+2)
	case ForStmt:
		fmt.Fprintf(w, "ForLoop: %s\n", s.Var)
		printCondBody(w, s.Cond, s.Body, depth)
	case WhileStmt:
		fmt.Fprintln(w, "WhileLoop")
		printCondBody(w, s.Cond, s.Body, depth)
	case IfStmt:
		fmt.Fprintln(w, "IfStatement")
		indent(w, depth)
		fmt.Fprintln(w, "  Condition:")
		printExpr(w, s.Cond, depth+2)
		indent(w, depth)
		fmt.Fprintf(w, "  Then (%d statements):\n", len(s.Then))
		for _, st := range s.Then {
			printStmt(w, st, depth+2)
		}
		if len(s.ElseIfs) > 0 {
			indent(w, depth)
			fmt.Fprintf(w, "  ElseIf clauses (%d):\n", len(s.ElseIfs))
			for _, clause := range s.ElseIfs {
				indent(w, depth)
				fmt.Fprintln(w, "    Condition:")
				printExpr(w, clause.Cond, depth+3)
				indent(w, depth)
				fmt.Fprintf(w, "    Body (%d statements):\n", len(clause.Body))
				for _, st := range clause.Body {
					printStmt(w, st, depth+3)
				}
			}
		}
		if len(s.Else) > 0 {
			indent(w, depth)
			fmt.Fprintf(w, "  Else (%d statements):\n", len(s.Else))
			for _, st := range s.Else {
				printStmt(w, st, depth+2)
			}
		}
	case IncStmt:
		fmt.Fprintf(w, "IncrementStatement: %s (amount: %d)\n", s.Name, s.Amount)
	case ReadStmt:
		fmt.Fprintf(w, "ReadStatement: %s\n", s.Name)
	default:
		fmt.Fprintf(w, "%T\n", s)
	}
}

func printCondBody(w io.Writer, cond Expr, body []Statement, depth int) {
	indent(w, depth)
	fmt.Fprintln(w, "  Condition:")
	printExpr(w, cond, depth+2)
	indent(w, depth)
	fmt.Fprintf(w, "  Body (%d statements):\n", len(body))
	for _, st := range body {
		printStmt(w, st, depth+2)
	}
}

func printExpr(w io.Writer, expr Expr, depth int) {
	indent(w, depth)
	switch e := expr.(type) {
	case StringLit:
		fmt.Fprintf(w, "StringLiteral: %q\n", e.Value)
	case IntLit:
		fmt.Fprintf(w, "IntegerLiteral: %d\n", e.Value)
	case Ident:
		fmt.Fprintf(w, "Identifier: %s\n", e.Name)
	case IndexExpr:
		fmt.Fprintln(w, "ArrayAccess")
		indent(w, depth)
		fmt.Fprintln(w, "  Array:")
		printExpr(w, e.Array, depth+2)
		indent(w, depth)
		fmt.Fprintln(w, "  Index:")
		printExpr(w, e.Index, depth+2)
	case BinaryExpr:
		fmt.Fprintf(w, "BinaryOp (%s)\n", OpString(e.Op))
		printExpr(w, e.Left, depth+1)
		printExpr(w, e.Right, depth+1)
	default:
		fmt.Fprintf(w, "%T\n", e)
	}
}

// OpString renders a binary operator token the way source programs spell it.
func OpString(op lexer.TokenType) string {
	switch op {
	case lexer.Plus:
		return "+"
	case lexer.Minus:
		return "-"
	case lexer.Multiply:
		return "*"
	case lexer.Divide:
		return "/"
	default:
		return op.String()
	}
}
