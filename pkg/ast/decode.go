package ast

import (
	"encoding/json"
	"fmt"
	"io"
)

// DecodeProgram reads a JSON syntax tree (as produced by an external parser) whose
// node "type" fields use the NodeType names of this package.
func DecodeProgram(r io.Reader) (*Program, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("ast: decode json: %w", err)
	}
	node, err := decodeNode(raw)
	if err != nil {
		return nil, err
	}
	program, ok := node.(*Program)
	if !ok {
		return nil, fmt.Errorf("ast: expected Program at root, got %s", node.NodeType())
	}
	return program, nil
}

func decodeNode(node map[string]any) (Node, error) {
	if node == nil {
		return nil, fmt.Errorf("ast: missing node")
	}
	typ, _ := node["type"].(string)
	switch NodeType(typ) {
	case NodeProgram:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		program := NewProgram(body)
		program.Filename, _ = node["filename"].(string)
		return program, nil
	case NodeIdentifier:
		name, _ := node["name"].(string)
		return NewIdentifier(name), nil
	case NodeNumberLiteral:
		val, ok := node["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("ast: NumberLiteral requires numeric value")
		}
		return NewNumberLiteral(val), nil
	case NodeStringLiteral:
		val, _ := node["value"].(string)
		return NewStringLiteral(val), nil
	case NodeBooleanLiteral:
		val, _ := node["value"].(bool)
		return NewBooleanLiteral(val), nil
	case NodeNullLiteral:
		return NewNullLiteral(), nil
	case NodeArrayLiteral:
		elements, err := decodeExpressions(node["elements"])
		if err != nil {
			return nil, err
		}
		return NewArrayLiteral(elements), nil
	case NodeObjectLiteral:
		rawMembers, _ := node["members"].([]any)
		members := make([]*ObjectMember, 0, len(rawMembers))
		for _, raw := range rawMembers {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("ast: invalid object member %T", raw)
			}
			key, _ := child["key"].(string)
			value, err := decodeExpression(child["value"])
			if err != nil {
				return nil, err
			}
			members = append(members, NewObjectMember(key, value))
		}
		return NewObjectLiteral(members), nil
	case NodeTemplateLiteral:
		parts, err := decodeExpressions(node["parts"])
		if err != nil {
			return nil, err
		}
		return NewTemplateLiteral(parts), nil
	case NodeUnaryExpression:
		op, _ := node["operator"].(string)
		operand, err := decodeExpression(node["operand"])
		if err != nil {
			return nil, err
		}
		return NewUnaryExpression(UnaryOperator(op), operand), nil
	case NodeBinaryExpression:
		op, _ := node["operator"].(string)
		left, err := decodeExpression(node["left"])
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"])
		if err != nil {
			return nil, err
		}
		return NewBinaryExpression(op, left, right), nil
	case NodeVariableDeclaration:
		name, err := decodeIdentifier(node["name"])
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"])
		if err != nil {
			return nil, err
		}
		mutable, _ := node["mutable"].(bool)
		return NewVariableDeclaration(name, value, mutable), nil
	case NodeAssignment:
		name, err := decodeIdentifier(node["name"])
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"])
		if err != nil {
			return nil, err
		}
		return NewAssignment(name, value), nil
	case NodeMemberAccess:
		object, err := decodeExpression(node["object"])
		if err != nil {
			return nil, err
		}
		key, _ := node["key"].(string)
		return NewMemberAccess(object, key), nil
	case NodeIndexExpression:
		object, err := decodeExpression(node["object"])
		if err != nil {
			return nil, err
		}
		index, err := decodeExpression(node["index"])
		if err != nil {
			return nil, err
		}
		return NewIndexExpression(object, index), nil
	case NodeNamespaceAccess:
		rawPath, _ := node["path"].([]any)
		path := make([]string, 0, len(rawPath))
		for _, seg := range rawPath {
			s, ok := seg.(string)
			if !ok {
				return nil, fmt.Errorf("ast: invalid namespace path segment %T", seg)
			}
			path = append(path, s)
		}
		member, _ := node["member"].(string)
		return NewNamespaceAccess(path, member), nil
	case NodeFunctionCall:
		callee, err := decodeExpression(node["callee"])
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"])
		if err != nil {
			return nil, err
		}
		return NewFunctionCall(callee, args), nil
	case NodeFunctionDeclaration, NodeFunctionExpression:
		var id *Identifier
		if node["id"] != nil {
			decoded, err := decodeIdentifier(node["id"])
			if err != nil {
				return nil, err
			}
			id = decoded
		}
		rawParams, _ := node["params"].([]any)
		params := make([]*Identifier, 0, len(rawParams))
		for _, raw := range rawParams {
			param, err := decodeIdentifier(raw)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
		body, err := decodeBlock(node["body"])
		if err != nil {
			return nil, err
		}
		if NodeType(typ) == NodeFunctionExpression {
			return NewFunctionExpression(id, params, body), nil
		}
		if id == nil {
			return nil, fmt.Errorf("ast: FunctionDeclaration requires id")
		}
		return NewFunctionDeclaration(id, params, body), nil
	case NodeNamespaceDeclaration:
		id, err := decodeIdentifier(node["id"])
		if err != nil {
			return nil, err
		}
		members, err := decodeStatements(node["members"])
		if err != nil {
			return nil, err
		}
		return NewNamespaceDeclaration(id, members), nil
	case NodeIfExpression:
		rawClauses, _ := node["clauses"].([]any)
		clauses := make([]*IfClause, 0, len(rawClauses))
		for _, raw := range rawClauses {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("ast: invalid if clause %T", raw)
			}
			cond, err := decodeExpression(child["condition"])
			if err != nil {
				return nil, err
			}
			body, err := decodeStatement(child["body"])
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, NewIfClause(cond, body))
		}
		elseBody, err := decodeOptionalStatement(node["else"])
		if err != nil {
			return nil, err
		}
		return NewIfExpression(clauses, elseBody), nil
	case NodeMatchExpression:
		subject, err := decodeExpression(node["subject"])
		if err != nil {
			return nil, err
		}
		rawArms, _ := node["arms"].([]any)
		arms := make([]*MatchArm, 0, len(rawArms))
		for _, raw := range rawArms {
			child, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("ast: invalid match arm %T", raw)
			}
			pattern, err := decodeExpression(child["pattern"])
			if err != nil {
				return nil, err
			}
			body, err := decodeStatement(child["body"])
			if err != nil {
				return nil, err
			}
			arms = append(arms, NewMatchArm(pattern, body))
		}
		defaultBody, err := decodeOptionalStatement(node["default"])
		if err != nil {
			return nil, err
		}
		return NewMatchExpression(subject, arms, defaultBody), nil
	case NodeForLoop:
		var counter *Identifier
		if node["counter"] != nil {
			decoded, err := decodeIdentifier(node["counter"])
			if err != nil {
				return nil, err
			}
			counter = decoded
		}
		count, err := decodeExpression(node["count"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		return NewForLoop(counter, count, body), nil
	case NodeForOfLoop:
		item, err := decodeIdentifier(node["item"])
		if err != nil {
			return nil, err
		}
		collection, err := decodeExpression(node["collection"])
		if err != nil {
			return nil, err
		}
		body, err := decodeStatement(node["body"])
		if err != nil {
			return nil, err
		}
		return NewForOfLoop(item, collection, body), nil
	case NodeBlockExpression:
		body, err := decodeStatements(node["body"])
		if err != nil {
			return nil, err
		}
		return NewBlockExpression(body), nil
	case NodeReturnStatement:
		var arg Expression
		if node["argument"] != nil {
			decoded, err := decodeExpression(node["argument"])
			if err != nil {
				return nil, err
			}
			arg = decoded
		}
		return NewReturnStatement(arg), nil
	case NodePrintStatement:
		value, err := decodeExpression(node["value"])
		if err != nil {
			return nil, err
		}
		return NewPrintStatement(value), nil
	default:
		return nil, fmt.Errorf("ast: unsupported node type %q", typ)
	}
}

func decodeChild(raw any) (Node, error) {
	child, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("ast: expected node object, got %T", raw)
	}
	return decodeNode(child)
}

func decodeStatement(raw any) (Statement, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(Statement)
	if !ok {
		return nil, fmt.Errorf("ast: %s is not a statement", node.NodeType())
	}
	return stmt, nil
}

func decodeOptionalStatement(raw any) (Statement, error) {
	if raw == nil {
		return nil, nil
	}
	return decodeStatement(raw)
}

func decodeExpression(raw any) (Expression, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(Expression)
	if !ok {
		return nil, fmt.Errorf("ast: %s is not an expression", node.NodeType())
	}
	return expr, nil
}

func decodeIdentifier(raw any) (*Identifier, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	id, ok := node.(*Identifier)
	if !ok {
		return nil, fmt.Errorf("ast: expected Identifier, got %s", node.NodeType())
	}
	return id, nil
}

func decodeBlock(raw any) (*BlockExpression, error) {
	node, err := decodeChild(raw)
	if err != nil {
		return nil, err
	}
	block, ok := node.(*BlockExpression)
	if !ok {
		return nil, fmt.Errorf("ast: expected BlockExpression, got %s", node.NodeType())
	}
	return block, nil
}

func decodeStatements(raw any) ([]Statement, error) {
	items, _ := raw.([]any)
	stmts := make([]Statement, 0, len(items))
	for _, item := range items {
		stmt, err := decodeStatement(item)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func decodeExpressions(raw any) ([]Expression, error) {
	items, _ := raw.([]any)
	exprs := make([]Expression, 0, len(items))
	for _, item := range items {
		expr, err := decodeExpression(item)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}
