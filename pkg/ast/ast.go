package ast

type NodeType string

const (
	NodeProgram              NodeType = "Program"
	NodeIdentifier           NodeType = "Identifier"
	NodeNumberLiteral        NodeType = "NumberLiteral"
	NodeStringLiteral        NodeType = "StringLiteral"
	NodeBooleanLiteral       NodeType = "BooleanLiteral"
	NodeNullLiteral          NodeType = "NullLiteral"
	NodeArrayLiteral         NodeType = "ArrayLiteral"
	NodeObjectMember         NodeType = "ObjectMember"
	NodeObjectLiteral        NodeType = "ObjectLiteral"
	NodeTemplateLiteral      NodeType = "TemplateLiteral"
	NodeUnaryExpression      NodeType = "UnaryExpression"
	NodeBinaryExpression     NodeType = "BinaryExpression"
	NodeVariableDeclaration  NodeType = "VariableDeclaration"
	NodeAssignment           NodeType = "Assignment"
	NodeMemberAccess         NodeType = "MemberAccess"
	NodeIndexExpression      NodeType = "IndexExpression"
	NodeNamespaceAccess      NodeType = "NamespaceAccess"
	NodeFunctionCall         NodeType = "FunctionCall"
	NodeFunctionDeclaration  NodeType = "FunctionDeclaration"
	NodeFunctionExpression   NodeType = "FunctionExpression"
	NodeNamespaceDeclaration NodeType = "NamespaceDeclaration"
	NodeIfClause             NodeType = "IfClause"
	NodeIfExpression         NodeType = "IfExpression"
	NodeMatchArm             NodeType = "MatchArm"
	NodeMatchExpression      NodeType = "MatchExpression"
	NodeForLoop              NodeType = "ForLoop"
	NodeForOfLoop            NodeType = "ForOfLoop"
	NodeBlockExpression      NodeType = "BlockExpression"
	NodeReturnStatement      NodeType = "ReturnStatement"
	NodePrintStatement       NodeType = "PrintStatement"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// Program is the top-level statement sequence handed to the evaluator.
type Program struct {
	nodeImpl

	Body     []Statement `json:"body"`
	Filename string      `json:"filename,omitempty"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: orEmpty(body)}
}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type NumberLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value float64 `json:"value"`
}

func NewNumberLiteral(value float64) *NumberLiteral {
	return &NumberLiteral{nodeImpl: newNodeImpl(NodeNumberLiteral), Value: value}
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

type NullLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
}

func NewNullLiteral() *NullLiteral {
	return &NullLiteral{nodeImpl: newNodeImpl(NodeNullLiteral)}
}

type ArrayLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Elements []Expression `json:"elements"`
}

func NewArrayLiteral(elements []Expression) *ArrayLiteral {
	return &ArrayLiteral{nodeImpl: newNodeImpl(NodeArrayLiteral), Elements: orEmpty(elements)}
}

// ObjectMember is one `key: value` entry; members keep declaration order.
type ObjectMember struct {
	nodeImpl

	Key   string     `json:"key"`
	Value Expression `json:"value"`
}

func NewObjectMember(key string, value Expression) *ObjectMember {
	return &ObjectMember{nodeImpl: newNodeImpl(NodeObjectMember), Key: key, Value: value}
}

type ObjectLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker

	Members []*ObjectMember `json:"members"`
}

func NewObjectLiteral(members []*ObjectMember) *ObjectLiteral {
	return &ObjectLiteral{nodeImpl: newNodeImpl(NodeObjectLiteral), Members: orEmpty(members)}
}

// TemplateLiteral alternates literal text (StringLiteral parts) and embedded expressions.
type TemplateLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Parts []Expression `json:"parts"`
}

func NewTemplateLiteral(parts []Expression) *TemplateLiteral {
	return &TemplateLiteral{nodeImpl: newNodeImpl(NodeTemplateLiteral), Parts: orEmpty(parts)}
}

// Operators

type UnaryOperator string

const (
	UnaryOperatorNot    UnaryOperator = "!"
	UnaryOperatorNegate UnaryOperator = "-"
)

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// Bindings

// VariableDeclaration is `#name = value` (immutable) or `$name <- value` (mutable).
type VariableDeclaration struct {
	nodeImpl
	statementMarker

	Name    *Identifier `json:"name"`
	Value   Expression  `json:"value"`
	Mutable bool        `json:"mutable"`
}

func NewVariableDeclaration(name *Identifier, value Expression, mutable bool) *VariableDeclaration {
	return &VariableDeclaration{nodeImpl: newNodeImpl(NodeVariableDeclaration), Name: name, Value: value, Mutable: mutable}
}

// Assignment is `name <- value` against an existing mutable binding.
type Assignment struct {
	nodeImpl
	statementMarker

	Name  *Identifier `json:"name"`
	Value Expression  `json:"value"`
}

func NewAssignment(name *Identifier, value Expression) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Value: value}
}

// Access

type MemberAccess struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Key    string     `json:"key"`
}

func NewMemberAccess(object Expression, key string) *MemberAccess {
	return &MemberAccess{nodeImpl: newNodeImpl(NodeMemberAccess), Object: object, Key: key}
}

type IndexExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Object Expression `json:"object"`
	Index  Expression `json:"index"`
}

func NewIndexExpression(object, index Expression) *IndexExpression {
	return &IndexExpression{nodeImpl: newNodeImpl(NodeIndexExpression), Object: object, Index: index}
}

// NamespaceAccess is `A:B:member`; Path holds the namespace names, Member the final segment.
type NamespaceAccess struct {
	nodeImpl
	expressionMarker
	statementMarker

	Path   []string `json:"path"`
	Member string   `json:"member"`
}

func NewNamespaceAccess(path []string, member string) *NamespaceAccess {
	return &NamespaceAccess{nodeImpl: newNodeImpl(NodeNamespaceAccess), Path: orEmpty(path), Member: member}
}

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Callee    Expression   `json:"callee"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(callee Expression, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: orEmpty(args)}
}

// Functions and namespaces

type FunctionDeclaration struct {
	nodeImpl
	statementMarker

	ID     *Identifier      `json:"id"`
	Params []*Identifier    `json:"params"`
	Body   *BlockExpression `json:"body"`
}

func NewFunctionDeclaration(id *Identifier, params []*Identifier, body *BlockExpression) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), ID: id, Params: orEmpty(params), Body: body}
}

// FunctionExpression is an anonymous `@(params) { body }`; ID is an optional self name.
type FunctionExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	ID     *Identifier      `json:"id,omitempty"`
	Params []*Identifier    `json:"params"`
	Body   *BlockExpression `json:"body"`
}

func NewFunctionExpression(id *Identifier, params []*Identifier, body *BlockExpression) *FunctionExpression {
	return &FunctionExpression{nodeImpl: newNodeImpl(NodeFunctionExpression), ID: id, Params: orEmpty(params), Body: body}
}

// NamespaceDeclaration is `:: Name { members }`. Members are function declarations,
// immutable variable declarations and nested namespace declarations.
type NamespaceDeclaration struct {
	nodeImpl
	statementMarker

	ID      *Identifier `json:"id"`
	Members []Statement `json:"members"`
}

func NewNamespaceDeclaration(id *Identifier, members []Statement) *NamespaceDeclaration {
	return &NamespaceDeclaration{nodeImpl: newNodeImpl(NodeNamespaceDeclaration), ID: id, Members: orEmpty(members)}
}

// Control flow

type IfClause struct {
	nodeImpl

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewIfClause(condition Expression, body Statement) *IfClause {
	return &IfClause{nodeImpl: newNodeImpl(NodeIfClause), Condition: condition, Body: body}
}

// IfExpression holds the `?` clause followed by any `.?` clauses; Else is the `.` branch.
type IfExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Clauses []*IfClause `json:"clauses"`
	Else    Statement   `json:"else,omitempty"`
}

func NewIfExpression(clauses []*IfClause, elseBody Statement) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Clauses: orEmpty(clauses), Else: elseBody}
}

type MatchArm struct {
	nodeImpl

	Pattern Expression `json:"pattern"`
	Body    Statement  `json:"body"`
}

func NewMatchArm(pattern Expression, body Statement) *MatchArm {
	return &MatchArm{nodeImpl: newNodeImpl(NodeMatchArm), Pattern: pattern, Body: body}
}

type MatchExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Subject Expression  `json:"subject"`
	Arms    []*MatchArm `json:"arms"`
	Default Statement   `json:"default,omitempty"`
}

func NewMatchExpression(subject Expression, arms []*MatchArm, defaultBody Statement) *MatchExpression {
	return &MatchExpression{nodeImpl: newNodeImpl(NodeMatchExpression), Subject: subject, Arms: orEmpty(arms), Default: defaultBody}
}

// ForLoop is the counted loop `~ #i, n body`; Counter is nil for `~ n body`.
type ForLoop struct {
	nodeImpl
	expressionMarker
	statementMarker

	Counter *Identifier `json:"counter,omitempty"`
	Count   Expression  `json:"count"`
	Body    Statement   `json:"body"`
}

func NewForLoop(counter *Identifier, count Expression, body Statement) *ForLoop {
	return &ForLoop{nodeImpl: newNodeImpl(NodeForLoop), Counter: counter, Count: count, Body: body}
}

type ForOfLoop struct {
	nodeImpl
	expressionMarker
	statementMarker

	Item       *Identifier `json:"item"`
	Collection Expression  `json:"collection"`
	Body       Statement   `json:"body"`
}

func NewForOfLoop(item *Identifier, collection Expression, body Statement) *ForOfLoop {
	return &ForOfLoop{nodeImpl: newNodeImpl(NodeForOfLoop), Item: item, Collection: collection, Body: body}
}

type BlockExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockExpression(body []Statement) *BlockExpression {
	return &BlockExpression{nodeImpl: newNodeImpl(NodeBlockExpression), Body: orEmpty(body)}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Value Expression `json:"value"`
}

func NewPrintStatement(value Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Value: value}
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
