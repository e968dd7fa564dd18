package parser

import (
	"fmt"
	"strings"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/lexer"
)

// Error is a syntax error at a source position.
type Error struct {
	Filename string
	Line     int
	Column   int
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Filename, e.Line, e.Column, e.Message)
}

// ErrorList collects every lexer error, or the first parser error.
type ErrorList []*Error

func (l ErrorList) Error() string {
	if len(l) == 0 {
		return "parser: no errors"
	}
	msgs := make([]string, 0, len(l))
	for _, err := range l {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

// ParseProgram parses source into the syntax tree consumed by the interpreter.
func ParseProgram(filename string, source []byte) (*ast.Program, error) {
	tokens, err := scan(lexer.New(filename, string(source)))
	if err != nil {
		return nil, err
	}
	p := &parser{filename: filename, tokens: tokens}
	var body []ast.Statement
	if err := p.guard(func() { body = p.statements(lexer.EOF) }); err != nil {
		return nil, err
	}
	program := ast.NewProgram(body)
	program.Filename = filename
	return program, nil
}

// ParseExpression parses a single expression, as typed at a REPL prompt or
// embedded in a template literal.
func ParseExpression(filename string, source string) (ast.Expression, error) {
	return parseEmbedded(lexer.New(filename, source))
}

func parseEmbedded(lex *lexer.Lexer) (ast.Expression, error) {
	tokens, err := scan(lex)
	if err != nil {
		return nil, err
	}
	p := &parser{filename: lex.Filename, tokens: tokens}
	var expr ast.Expression
	err = p.guard(func() {
		expr = p.expression()
		if !p.check(lexer.EOF) {
			p.fail("unexpected %s after expression", p.peek().Type)
		}
	})
	if err != nil {
		return nil, err
	}
	return expr, nil
}

func scan(lex *lexer.Lexer) ([]lexer.Token, error) {
	lex.ScanTokens()
	if len(lex.Errors) == 0 {
		return lex.Tokens, nil
	}
	errs := make(ErrorList, 0, len(lex.Errors))
	for _, e := range lex.Errors {
		errs = append(errs, &Error{Filename: e.Filename, Line: e.Line, Column: e.Column, Message: e.Message})
	}
	return nil, errs
}

type parser struct {
	filename string
	tokens   []lexer.Token
	curr     int
}

// guard runs fn and converts a parse failure raised by fail into an error.
func (p *parser) guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*Error)
			if !ok {
				panic(r)
			}
			err = ErrorList{perr}
		}
	}()
	fn()
	return nil
}

func (p *parser) fail(format string, args ...any) {
	tok := p.peek()
	panic(&Error{
		Filename: p.filename,
		Line:     tok.Line,
		Column:   tok.Column,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *parser) peek() lexer.Token { return p.peekAt(0) }

func (p *parser) peekAt(n int) lexer.Token {
	if p.curr+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.curr+n]
}

func (p *parser) consume() lexer.Token {
	tok := p.peek()
	if tok.Type != lexer.EOF {
		p.curr++
	}
	return tok
}

func (p *parser) check(t lexer.TokenType) bool { return p.peek().Type == t }

func (p *parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.consume()
			return true
		}
	}
	return false
}

func (p *parser) expect(t lexer.TokenType, context string) lexer.Token {
	if !p.check(t) {
		p.fail("expected %s %s, got %s", t, context, p.peek().Type)
	}
	return p.consume()
}

func (p *parser) identifier(context string) *ast.Identifier {
	tok := p.expect(lexer.IDENTIFIER, context)
	return ast.NewIdentifier(tok.Lexeme)
}
