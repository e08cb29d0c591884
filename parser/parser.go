// Package parser builds a syntax tree from a lexer token stream using
// recursive descent with one-token lookahead and precedence climbing for
// expressions.
//
// Failure handling is best-effort: an unmet expectation writes one line to
// the diagnostic sink and parsing continues with the current token. Only an
// internal panic aborts and yields a nil program.
package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gosuda/govlang/ast"
	"github.com/gosuda/govlang/lexer"
)

type Parser struct {
	tokens []lexer.Token
	pos    int
	diag   io.Writer
	errors int
}

// New creates a parser over the full, EOF-terminated token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens, diag: os.Stderr}
}

// SetDiag redirects parse diagnostics. A nil writer discards them.
func (p *Parser) SetDiag(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	p.diag = w
}

// ErrorCount reports how many diagnostics were written.
func (p *Parser) ErrorCount() int {
	return p.errors
}

func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.pos-1]
}

func (p *Parser) atEnd() bool {
	return p.peek().Type == lexer.EOF
}

func (p *Parser) check(t lexer.TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() lexer.Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a token of the expected type. If the current token
// does not match it reports the expectation and returns the current token
// unchanged, so parsing continues from the same position.
func (p *Parser) consume(t lexer.TokenType, msg string) lexer.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errors++
	fmt.Fprintf(p.diag, "Parse error: %s at line %d\n", msg, p.peek().Line)
	return p.peek()
}

func (p *Parser) skipNewlines() {
	for p.match(lexer.Newline) {
	}
}

// Parse consumes the stream and returns the program. The returned error is
// non-nil only when parsing aborted on an internal panic, in which case the
// program is nil.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			prog = nil
			err = fmt.Errorf("parse aborted at token %d: %v", p.pos, r)
		}
	}()

	program := &ast.Program{}

	p.skipNewlines()
	if p.match(lexer.Header) {
		p.skipNewlines()
	}

	for !p.atEnd() {
		stmt := p.statement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.skipNewlines()
	}

	return program, nil
}

// statement parses one statement, or returns nil for decorative comment
// lines. A token that cannot begin a statement is reported and skipped so
// the parse always makes progress.
func (p *Parser) statement() ast.Statement {
	p.skipNewlines()
	if p.atEnd() {
		return nil
	}

	switch {
	case p.match(lexer.PraiseLeader):
		return ast.PrintStmt{Expr: p.expression()}

	case p.match(lexer.Please):
		switch {
		case p.match(lexer.DeclareVariable):
			return p.varDeclaration()
		case p.match(lexer.Set):
			return p.assignment()
		case p.match(lexer.Increment):
			return p.incrementStatement()
		case p.match(lexer.Read):
			return p.readStatement()
		}
		p.errors++
		fmt.Fprintf(p.diag, "Parse error: expected DECLARE_VARIABLE, SET, INCREMENT or READ after PLEASE at line %d\n", p.peek().Line)
		return nil

	case p.match(lexer.ForThePeople):
		return p.forLoop()

	case p.match(lexer.While):
		return p.whileLoop()

	case p.match(lexer.If):
		return p.ifStatement()

	case p.match(lexer.ObeyPartyLine, lexer.DenounceImperialistErrors):
		// Decorative comment: drop the rest of the line.
		for !p.check(lexer.Newline) && !p.atEnd() {
			p.advance()
		}
		return nil
	}

	p.errors++
	fmt.Fprintf(p.diag, "Parse error: unexpected token %s at line %d\n", p.peek().Type, p.peek().Line)
	p.advance()
	return nil
}

// varDeclaration parses the tail of PLEASE DECLARE_VARIABLE. The variable
// name arrives as a string literal.
func (p *Parser) varDeclaration() ast.Statement {
	name := p.consume(lexer.String, "Expected variable name in quotes").Lit
	p.consume(lexer.As, "Expected 'AS' after variable name")

	decl := ast.DeclStmt{Name: name}
	switch {
	case p.match(lexer.TypeInteger):
		decl.Type = ast.IntType
	case p.match(lexer.TypeString):
		decl.Type = ast.StrType
	case p.match(lexer.ArrayOfString):
		decl.Type = ast.StrArrayType
		p.consume(lexer.Size, "Expected 'SIZE' after ARRAY_OF_STRING")
		decl.Size = p.intValue(p.consume(lexer.Integer, "Expected array size"))
	default:
		p.errors++
		fmt.Fprintf(p.diag, "Parse error: expected variable type at line %d\n", p.peek().Line)
		decl.Type = ast.IntType
	}
	return decl
}

func (p *Parser) assignment() ast.Statement {
	name := p.consume(lexer.Ident, "Expected variable name").Lit

	var index ast.Expr
	if p.match(lexer.LBracket) {
		index = p.expression()
		p.consume(lexer.RBracket, "Expected ']' after array index")
	}

	p.consume(lexer.To, "Expected 'TO' in assignment")
	return ast.AssignStmt{Name: name, Index: index, Value: p.expression()}
}

func (p *Parser) incrementStatement() ast.Statement {
	name := p.consume(lexer.Ident, "Expected variable name").Lit
	p.consume(lexer.By, "Expected 'BY' after INCREMENT")
	amount := p.intValue(p.consume(lexer.Integer, "Expected increment amount"))
	return ast.IncStmt{Name: name, Amount: amount}
}

func (p *Parser) readStatement() ast.Statement {
	return ast.ReadStmt{Name: p.consume(lexer.Ident, "Expected variable name").Lit}
}

func (p *Parser) forLoop() ast.Statement {
	cond := p.expression()
	p.consume(lexer.Do, "Expected 'DO' after for condition")
	// The loop variable lives inside the condition; the field stays empty.
	loop := ast.ForStmt{Cond: cond}
	loop.Body = p.block(lexer.EndForThePeople)
	p.consume(lexer.EndForThePeople, "Expected 'END_FOR_THE_PEOPLE'")
	return loop
}

func (p *Parser) whileLoop() ast.Statement {
	cond := p.expression()
	p.consume(lexer.Do, "Expected 'DO' after while condition")
	loop := ast.WhileStmt{Cond: cond}
	loop.Body = p.block(lexer.EndWhile)
	p.consume(lexer.EndWhile, "Expected 'END_WHILE'")
	return loop
}

func (p *Parser) ifStatement() ast.Statement {
	cond := p.expression()
	p.consume(lexer.Then, "Expected 'THEN' after if condition")

	stmt := ast.IfStmt{Cond: cond}
	stmt.Then = p.block(lexer.ElseIf, lexer.Else, lexer.EndIf)

	for p.match(lexer.ElseIf) {
		clause := ast.ElseIf{Cond: p.expression()}
		p.consume(lexer.Then, "Expected 'THEN' after else-if condition")
		clause.Body = p.block(lexer.ElseIf, lexer.Else, lexer.EndIf)
		stmt.ElseIfs = append(stmt.ElseIfs, clause)
	}

	if p.match(lexer.Else) {
		stmt.Else = p.block(lexer.EndIf)
	}

	p.consume(lexer.EndIf, "Expected 'END_IF'")
	return stmt
}

// block collects statements until one of the terminator tokens or EOF. The
// terminator itself is left for the caller.
func (p *Parser) block(terminators ...lexer.TokenType) []ast.Statement {
	var body []ast.Statement
	p.skipNewlines()
	for !p.atEnd() && !p.checkAny(terminators...) {
		if stmt := p.statement(); stmt != nil {
			body = append(body, stmt)
		}
		p.skipNewlines()
	}
	return body
}

func (p *Parser) checkAny(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

// Expressions, lowest precedence first: OR, AND, the equality tier
// (EQUALS, NOT_EQUALS, LESS_THAN), additive, multiplicative. All binary
// operators are left-associative.
var binaryPrec = map[lexer.TokenType]int{
	lexer.Or:        1,
	lexer.And:       2,
	lexer.Equals:    3,
	lexer.NotEquals: 3,
	lexer.LessThan:  3,
	lexer.Plus:      4,
	lexer.Minus:     4,
	lexer.Multiply:  5,
	lexer.Divide:    5,
}

func (p *Parser) expression() ast.Expr {
	return p.binary(1)
}

func (p *Parser) binary(minPrec int) ast.Expr {
	left := p.primary()
	for {
		prec, ok := binaryPrec[p.peek().Type]
		if !ok || prec < minPrec {
			break
		}
		op := p.advance().Type
		// A consumed operator lets the expression wrap across lines.
		p.skipNewlines()
		right := p.binary(prec + 1)
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(lexer.String):
		return ast.StringLit{Value: p.previous().Lit}

	case p.match(lexer.Integer):
		return ast.IntLit{Value: p.intValue(p.previous())}

	case p.match(lexer.LParen):
		expr := p.expression()
		p.consume(lexer.RParen, "Expected ')' after expression")
		return expr

	case p.match(lexer.Ident):
		name := p.previous().Lit
		if p.match(lexer.LBracket) {
			index := p.expression()
			p.consume(lexer.RBracket, "Expected ']' after array index")
			return ast.IndexExpr{Array: ast.Ident{Name: name}, Index: index}
		}
		return ast.Ident{Name: name}
	}

	p.errors++
	fmt.Fprintf(p.diag, "Expected expression at line %d\n", p.peek().Line)
	return ast.IntLit{}
}

func (p *Parser) intValue(tok lexer.Token) int64 {
	if tok.Type != lexer.Integer {
		return 0
	}
	v, err := strconv.ParseInt(tok.Lit, 10, 64)
	if err != nil {
		p.errors++
		fmt.Fprintf(p.diag, "Parse error: invalid integer %q at line %d\n", tok.Lit, tok.Line)
		return 0
	}
	return v
}
