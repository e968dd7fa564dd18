package parser

import (
	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/lexer"
)

// Binary operators only appear inside parentheses: `(a + b)`.
var binaryPrecedence = map[lexer.TokenType]int{
	lexer.OR:            1,
	lexer.AND:           2,
	lexer.EQUAL:         3,
	lexer.BANG_EQUAL:    3,
	lexer.LESS:          4,
	lexer.LESS_EQUAL:    4,
	lexer.GREATER:       4,
	lexer.GREATER_EQUAL: 4,
	lexer.PLUS:          5,
	lexer.MINUS:         5,
	lexer.STAR:          6,
	lexer.SLASH:         6,
	lexer.PERCENT:       6,
}

func (p *parser) expression() ast.Expression {
	return p.postfix(p.primary())
}

func (p *parser) binary(minPrec int) ast.Expression {
	left := p.expression()
	for {
		op := p.peek()
		prec, ok := binaryPrecedence[op.Type]
		if !ok || prec < minPrec {
			return left
		}
		p.consume()
		right := p.binary(prec + 1)
		left = ast.NewBinaryExpression(op.Type.String(), left, right)
	}
}

// postfix applies `.key`, `[index]` and `(args)`, each of which must follow
// the previous token without whitespace.
func (p *parser) postfix(expr ast.Expression) ast.Expression {
	for {
		tok := p.peek()
		if tok.SpaceBefore {
			return expr
		}
		switch tok.Type {
		case lexer.DOT:
			if p.peekAt(1).Type != lexer.IDENTIFIER {
				return expr
			}
			p.consume()
			expr = ast.NewMemberAccess(expr, p.consume().Lexeme)
		case lexer.LEFT_BRACKET:
			p.consume()
			index := p.expression()
			p.expect(lexer.RIGHT_BRACKET, "to close index")
			expr = ast.NewIndexExpression(expr, index)
		case lexer.LEFT_PAREN:
			p.consume()
			args := make([]ast.Expression, 0)
			for {
				for p.match(lexer.COMMA) {
				}
				if p.match(lexer.RIGHT_PAREN) {
					break
				}
				args = append(args, p.expression())
			}
			expr = ast.NewFunctionCall(expr, args)
		default:
			return expr
		}
	}
}

func (p *parser) primary() ast.Expression {
	tok := p.peek()
	switch tok.Type {
	case lexer.NUMBER:
		p.consume()
		return ast.NewNumberLiteral(tok.Literal.(float64))
	case lexer.MINUS:
		p.consume()
		next := p.peek()
		if next.SpaceBefore {
			return ast.NewBooleanLiteral(false)
		}
		switch next.Type {
		case lexer.NUMBER:
			p.consume()
			return ast.NewNumberLiteral(-next.Literal.(float64))
		case lexer.IDENTIFIER, lexer.LEFT_PAREN:
			return ast.NewUnaryExpression(ast.UnaryOperatorNegate, p.expression())
		}
		return ast.NewBooleanLiteral(false)
	case lexer.PLUS, lexer.YES:
		p.consume()
		return ast.NewBooleanLiteral(true)
	case lexer.NO:
		p.consume()
		return ast.NewBooleanLiteral(false)
	case lexer.NULL:
		p.consume()
		return ast.NewNullLiteral()
	case lexer.STRING:
		p.consume()
		return ast.NewStringLiteral(tok.Literal.(string))
	case lexer.TEMPLATE:
		p.consume()
		return p.template(tok)
	case lexer.IDENTIFIER:
		return p.name()
	case lexer.LEFT_BRACKET:
		return p.array()
	case lexer.LEFT_BRACE:
		if p.isObjectLiteral() {
			return p.object()
		}
		return p.block()
	case lexer.LEFT_PAREN:
		p.consume()
		expr := p.binary(0)
		p.expect(lexer.RIGHT_PAREN, "to close parenthesised expression")
		return expr
	case lexer.BANG:
		p.consume()
		return ast.NewUnaryExpression(ast.UnaryOperatorNot, p.expression())
	case lexer.AT:
		p.consume()
		var name *ast.Identifier
		if p.check(lexer.IDENTIFIER) {
			name = p.identifier("in function expression")
		}
		params := p.parameters()
		return ast.NewFunctionExpression(name, params, p.block())
	case lexer.QUESTION:
		return p.ifOrMatch()
	case lexer.TILDE:
		return p.forLoop()
	case lexer.DOUBLE_TILDE:
		return p.forOfLoop()
	}
	p.fail("unexpected %s", tok.Type)
	return nil
}

// name parses an identifier or a namespace path such as `Arr:len` or `A:B:c`.
func (p *parser) name() ast.Expression {
	segments := []string{p.consume().Lexeme}
	for p.check(lexer.COLON) && !p.peek().SpaceBefore {
		next := p.peekAt(1)
		if next.Type != lexer.IDENTIFIER || next.SpaceBefore {
			break
		}
		p.consume()
		segments = append(segments, p.consume().Lexeme)
	}
	if len(segments) == 1 {
		return ast.NewIdentifier(segments[0])
	}
	return ast.NewNamespaceAccess(segments[:len(segments)-1], segments[len(segments)-1])
}

func (p *parser) array() ast.Expression {
	p.expect(lexer.LEFT_BRACKET, "")
	elements := make([]ast.Expression, 0)
	for {
		for p.match(lexer.COMMA, lexer.SEMICOLON) {
		}
		if p.match(lexer.RIGHT_BRACKET) {
			return ast.NewArrayLiteral(elements)
		}
		if p.check(lexer.EOF) {
			p.fail("unterminated array literal")
		}
		elements = append(elements, p.expression())
	}
}

// isObjectLiteral decides whether the `{` at the cursor opens an object:
// `{}` or `{ key: ...`. A `{` followed by a namespace access such as
// `{ Arr:len(x) }` opens a block.
func (p *parser) isObjectLiteral() bool {
	key := p.peekAt(1)
	switch key.Type {
	case lexer.RIGHT_BRACE:
		return true
	case lexer.STRING:
		return p.peekAt(2).Type == lexer.COLON
	case lexer.IDENTIFIER:
		colon := p.peekAt(2)
		if colon.Type != lexer.COLON {
			return false
		}
		after := p.peekAt(3)
		return colon.SpaceBefore || after.SpaceBefore || after.Type != lexer.IDENTIFIER
	}
	return false
}

func (p *parser) object() ast.Expression {
	p.expect(lexer.LEFT_BRACE, "")
	members := make([]*ast.ObjectMember, 0)
	for {
		for p.match(lexer.COMMA, lexer.SEMICOLON) {
		}
		if p.match(lexer.RIGHT_BRACE) {
			return ast.NewObjectLiteral(members)
		}
		var key string
		switch tok := p.peek(); tok.Type {
		case lexer.IDENTIFIER:
			key = tok.Lexeme
		case lexer.STRING:
			key = tok.Literal.(string)
		default:
			p.fail("expected object key, got %s", tok.Type)
		}
		p.consume()
		p.expect(lexer.COLON, "after object key")
		members = append(members, ast.NewObjectMember(key, p.expression()))
	}
}

func (p *parser) template(tok lexer.Token) ast.Expression {
	parts := make([]ast.Expression, 0)
	for _, part := range tok.Literal.([]lexer.TemplatePart) {
		if !part.Expr {
			parts = append(parts, ast.NewStringLiteral(part.Text))
			continue
		}
		expr, err := parseEmbedded(lexer.NewAt(p.filename, part.Text, part.Line, part.Column))
		if err != nil {
			if list, ok := err.(ErrorList); ok && len(list) > 0 {
				panic(list[0])
			}
			p.fail("%s", err.Error())
		}
		parts = append(parts, expr)
	}
	return ast.NewTemplateLiteral(parts)
}

// ifOrMatch parses `? cond body (.? cond body)* (. body)?` or, when the
// brace after the subject holds `=>` arms, `? subject { pattern => body ... }`.
func (p *parser) ifOrMatch() ast.Expression {
	p.expect(lexer.QUESTION, "")
	subject := p.expression()
	if p.check(lexer.LEFT_BRACE) && p.hasMatchArms() {
		return p.matchBody(subject)
	}
	clauses := []*ast.IfClause{ast.NewIfClause(subject, p.statement())}
	for p.match(lexer.DOT_QUESTION) {
		cond := p.expression()
		clauses = append(clauses, ast.NewIfClause(cond, p.statement()))
	}
	var elseBody ast.Statement
	if p.match(lexer.DOT) {
		elseBody = p.statement()
	}
	return ast.NewIfExpression(clauses, elseBody)
}

// hasMatchArms scans the brace-delimited body at the cursor for a `=>` at
// its own nesting level.
func (p *parser) hasMatchArms() bool {
	depth := 0
	for i := p.curr; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lexer.LEFT_BRACE, lexer.LEFT_PAREN, lexer.LEFT_BRACKET:
			depth++
		case lexer.RIGHT_BRACE, lexer.RIGHT_PAREN, lexer.RIGHT_BRACKET:
			depth--
			if depth == 0 {
				return false
			}
		case lexer.FAT_ARROW:
			if depth == 1 {
				return true
			}
		case lexer.EOF:
			return false
		}
	}
	return false
}

func (p *parser) matchBody(subject ast.Expression) ast.Expression {
	p.expect(lexer.LEFT_BRACE, "to open match body")
	arms := make([]*ast.MatchArm, 0)
	var defaultBody ast.Statement
	for {
		for p.match(lexer.COMMA, lexer.SEMICOLON) {
		}
		if p.match(lexer.RIGHT_BRACE) {
			return ast.NewMatchExpression(subject, arms, defaultBody)
		}
		if p.check(lexer.STAR) && p.peekAt(1).Type == lexer.FAT_ARROW {
			p.consume()
			p.consume()
			defaultBody = p.statement()
			continue
		}
		pattern := p.expression()
		p.expect(lexer.FAT_ARROW, "after match pattern")
		arms = append(arms, ast.NewMatchArm(pattern, p.statement()))
	}
}

func (p *parser) forLoop() ast.Expression {
	p.expect(lexer.TILDE, "")
	var counter *ast.Identifier
	if p.match(lexer.HASH) {
		counter = p.identifier("as loop counter")
		p.match(lexer.COMMA)
	}
	count := p.expression()
	return ast.NewForLoop(counter, count, p.statement())
}

func (p *parser) forOfLoop() ast.Expression {
	p.expect(lexer.DOUBLE_TILDE, "")
	p.expect(lexer.HASH, "before loop item")
	item := p.identifier("as loop item")
	p.match(lexer.COMMA)
	collection := p.expression()
	return ast.NewForOfLoop(item, collection, p.statement())
}
