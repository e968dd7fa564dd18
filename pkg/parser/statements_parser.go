package parser

import (
	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/lexer"
)

// statements parses until the terminator token, which is left unconsumed.
func (p *parser) statements(until lexer.TokenType) []ast.Statement {
	stmts := make([]ast.Statement, 0)
	for {
		for p.match(lexer.SEMICOLON) {
		}
		if p.check(until) || p.check(lexer.EOF) {
			return stmts
		}
		stmts = append(stmts, p.statement())
	}
}

func (p *parser) statement() ast.Statement {
	switch p.peek().Type {
	case lexer.PRINT:
		p.consume()
		return ast.NewPrintStatement(p.expression())
	case lexer.HASH:
		p.consume()
		name := p.identifier("after '#'")
		p.expect(lexer.EQUAL, "in variable declaration")
		return ast.NewVariableDeclaration(name, p.expression(), false)
	case lexer.DOLLAR:
		p.consume()
		name := p.identifier("after '$'")
		p.expect(lexer.LEFT_ARROW, "in variable declaration")
		return ast.NewVariableDeclaration(name, p.expression(), true)
	case lexer.RETURN:
		p.consume()
		switch p.peek().Type {
		case lexer.RIGHT_BRACE, lexer.SEMICOLON, lexer.EOF:
			return ast.NewReturnStatement(nil)
		}
		return ast.NewReturnStatement(p.expression())
	case lexer.DOUBLE_COLON:
		return p.namespaceDeclaration()
	case lexer.AT:
		if p.peekAt(1).Type == lexer.IDENTIFIER && p.peekAt(2).Type == lexer.LEFT_PAREN {
			p.consume()
			name := p.identifier("in function declaration")
			params := p.parameters()
			return ast.NewFunctionDeclaration(name, params, p.block())
		}
	case lexer.IDENTIFIER:
		if p.peekAt(1).Type == lexer.LEFT_ARROW {
			name := p.identifier("in assignment")
			p.consume()
			return ast.NewAssignment(name, p.expression())
		}
	}
	return p.expression()
}

func (p *parser) namespaceDeclaration() ast.Statement {
	p.expect(lexer.DOUBLE_COLON, "")
	name := p.identifier("after '::'")
	p.expect(lexer.LEFT_BRACE, "to open namespace body")
	members := p.statements(lexer.RIGHT_BRACE)
	p.expect(lexer.RIGHT_BRACE, "to close namespace body")
	for _, member := range members {
		switch m := member.(type) {
		case *ast.FunctionDeclaration, *ast.NamespaceDeclaration:
		case *ast.VariableDeclaration:
			if m.Mutable {
				p.fail("namespace %s: member %s must be immutable", name.Name, m.Name.Name)
			}
		default:
			p.fail("namespace %s: unsupported member %s", name.Name, member.NodeType())
		}
	}
	return ast.NewNamespaceDeclaration(name, members)
}

func (p *parser) parameters() []*ast.Identifier {
	p.expect(lexer.LEFT_PAREN, "to open parameter list")
	params := make([]*ast.Identifier, 0)
	for {
		for p.match(lexer.COMMA) {
		}
		if p.match(lexer.RIGHT_PAREN) {
			return params
		}
		params = append(params, p.identifier("in parameter list"))
	}
}

func (p *parser) block() *ast.BlockExpression {
	p.expect(lexer.LEFT_BRACE, "to open block")
	body := p.statements(lexer.RIGHT_BRACE)
	p.expect(lexer.RIGHT_BRACE, "to close block")
	return ast.NewBlockExpression(body)
}
