package ast

// Short builders used by tests and hosts that assemble trees by hand.

func Prog(body ...Statement) *Program { return NewProgram(body) }

func ID(name string) *Identifier { return NewIdentifier(name) }

func Num(value float64) *NumberLiteral { return NewNumberLiteral(value) }

func Str(value string) *StringLiteral { return NewStringLiteral(value) }

func Bool(value bool) *BooleanLiteral { return NewBooleanLiteral(value) }

func Null() *NullLiteral { return NewNullLiteral() }

func Arr(elements ...Expression) *ArrayLiteral { return NewArrayLiteral(elements) }

func Prop(key string, value Expression) *ObjectMember { return NewObjectMember(key, value) }

func Obj(members ...*ObjectMember) *ObjectLiteral { return NewObjectLiteral(members) }

func Tmpl(parts ...Expression) *TemplateLiteral { return NewTemplateLiteral(parts) }

func Bin(op string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(op, left, right)
}

func Not(operand Expression) *UnaryExpression {
	return NewUnaryExpression(UnaryOperatorNot, operand)
}

// Let declares an immutable binding (`#name = value`).
func Let(name string, value Expression) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), value, false)
}

// Var declares a mutable binding (`$name <- value`).
func Var(name string, value Expression) *VariableDeclaration {
	return NewVariableDeclaration(ID(name), value, true)
}

func Set(name string, value Expression) *Assignment { return NewAssignment(ID(name), value) }

func Member(object Expression, key string) *MemberAccess { return NewMemberAccess(object, key) }

func Index(object, index Expression) *IndexExpression { return NewIndexExpression(object, index) }

// NS builds `A:B:member` from its colon separated segments.
func NS(segments ...string) *NamespaceAccess {
	if len(segments) == 0 {
		return NewNamespaceAccess(nil, "")
	}
	path := append([]string(nil), segments[:len(segments)-1]...)
	return NewNamespaceAccess(path, segments[len(segments)-1])
}

func Call(callee Expression, args ...Expression) *FunctionCall {
	return NewFunctionCall(callee, args)
}

// CallNamed calls a bare identifier.
func CallNamed(name string, args ...Expression) *FunctionCall {
	return NewFunctionCall(ID(name), args)
}

func Block(body ...Statement) *BlockExpression { return NewBlockExpression(body) }

func Params(names ...string) []*Identifier {
	ids := make([]*Identifier, 0, len(names))
	for _, name := range names {
		ids = append(ids, ID(name))
	}
	return ids
}

func Fn(name string, params []*Identifier, body ...Statement) *FunctionDeclaration {
	return NewFunctionDeclaration(ID(name), params, Block(body...))
}

func Lambda(params []*Identifier, body ...Statement) *FunctionExpression {
	return NewFunctionExpression(nil, params, Block(body...))
}

func Namespace(name string, members ...Statement) *NamespaceDeclaration {
	return NewNamespaceDeclaration(ID(name), members)
}

func If(condition Expression, body Statement) *IfExpression {
	return NewIfExpression([]*IfClause{NewIfClause(condition, body)}, nil)
}

func IfElse(condition Expression, body Statement, elseBody Statement) *IfExpression {
	return NewIfExpression([]*IfClause{NewIfClause(condition, body)}, elseBody)
}

func Clause(condition Expression, body Statement) *IfClause { return NewIfClause(condition, body) }

func Arm(pattern Expression, body Statement) *MatchArm { return NewMatchArm(pattern, body) }

func Match(subject Expression, defaultBody Statement, arms ...*MatchArm) *MatchExpression {
	return NewMatchExpression(subject, arms, defaultBody)
}

// For builds a counted loop; an empty counter name omits the counter binding.
func For(counter string, count Expression, body Statement) *ForLoop {
	var id *Identifier
	if counter != "" {
		id = ID(counter)
	}
	return NewForLoop(id, count, body)
}

func Each(item string, collection Expression, body Statement) *ForOfLoop {
	return NewForOfLoop(ID(item), collection, body)
}

func Ret(argument Expression) *ReturnStatement { return NewReturnStatement(argument) }

func Print(value Expression) *PrintStatement { return NewPrintStatement(value) }
