package ast

import (
	"strings"
	"testing"
)

func TestDecodeProgramBuildsTypedNodes(t *testing.T) {
	src := `{
		"type": "Program",
		"filename": "tree.json",
		"body": [
			{"type": "FunctionDeclaration",
			 "id": {"type": "Identifier", "name": "add"},
			 "params": [{"type": "Identifier", "name": "a"}, {"type": "Identifier", "name": "b"}],
			 "body": {"type": "BlockExpression", "body": [
				{"type": "ReturnStatement", "argument": {"type": "BinaryExpression", "operator": "+",
					"left": {"type": "Identifier", "name": "a"},
					"right": {"type": "Identifier", "name": "b"}}}
			 ]}},
			{"type": "VariableDeclaration", "mutable": true,
			 "name": {"type": "Identifier", "name": "total"},
			 "value": {"type": "FunctionCall",
				"callee": {"type": "Identifier", "name": "add"},
				"arguments": [{"type": "NumberLiteral", "value": 1}, {"type": "NumberLiteral", "value": 2}]}},
			{"type": "ForLoop",
			 "count": {"type": "NumberLiteral", "value": 3},
			 "body": {"type": "PrintStatement", "value": {"type": "NamespaceAccess", "path": ["Core"], "member": "ai"}}},
			{"type": "MatchExpression",
			 "subject": {"type": "Identifier", "name": "total"},
			 "arms": [{"pattern": {"type": "NumberLiteral", "value": 3}, "body": {"type": "StringLiteral", "value": "three"}}],
			 "default": {"type": "NullLiteral"}}
		]
	}`
	program, err := DecodeProgram(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeProgram returned error: %v", err)
	}
	if program.Filename != "tree.json" {
		t.Fatalf("filename = %q", program.Filename)
	}
	if len(program.Body) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(program.Body))
	}

	fn, ok := program.Body[0].(*FunctionDeclaration)
	if !ok {
		t.Fatalf("expected FunctionDeclaration, got %T", program.Body[0])
	}
	if fn.ID.Name != "add" || len(fn.Params) != 2 || fn.Params[1].Name != "b" {
		t.Fatalf("unexpected function %+v", fn)
	}
	ret, ok := fn.Body.Body[0].(*ReturnStatement)
	if !ok {
		t.Fatalf("expected ReturnStatement, got %T", fn.Body.Body[0])
	}
	if bin, ok := ret.Argument.(*BinaryExpression); !ok || bin.Operator != "+" {
		t.Fatalf("unexpected return argument %#v", ret.Argument)
	}

	decl, ok := program.Body[1].(*VariableDeclaration)
	if !ok || !decl.Mutable || decl.Name.Name != "total" {
		t.Fatalf("unexpected declaration %#v", program.Body[1])
	}
	if call, ok := decl.Value.(*FunctionCall); !ok || len(call.Arguments) != 2 {
		t.Fatalf("unexpected call %#v", decl.Value)
	}

	loop, ok := program.Body[2].(*ForLoop)
	if !ok || loop.Counter != nil {
		t.Fatalf("unexpected loop %#v", program.Body[2])
	}
	printStmt, ok := loop.Body.(*PrintStatement)
	if !ok {
		t.Fatalf("expected PrintStatement body, got %T", loop.Body)
	}
	if ns, ok := printStmt.Value.(*NamespaceAccess); !ok || ns.Member != "ai" || ns.Path[0] != "Core" {
		t.Fatalf("unexpected namespace access %#v", printStmt.Value)
	}

	match, ok := program.Body[3].(*MatchExpression)
	if !ok || len(match.Arms) != 1 || match.Default == nil {
		t.Fatalf("unexpected match %#v", program.Body[3])
	}
}

func TestDecodeProgramErrors(t *testing.T) {
	cases := map[string]string{
		"not json":       `{`,
		"wrong root":     `{"type": "NumberLiteral", "value": 1}`,
		"unknown node":   `{"type": "Program", "body": [{"type": "WhileLoop"}]}`,
		"bad number":     `{"type": "Program", "body": [{"type": "NumberLiteral", "value": "1"}]}`,
		"anonymous decl": `{"type": "Program", "body": [{"type": "FunctionDeclaration", "params": [], "body": {"type": "BlockExpression", "body": []}}]}`,
		"non statement":  `{"type": "Program", "body": [1]}`,
	}
	for name, src := range cases {
		if _, err := DecodeProgram(strings.NewReader(src)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
