package interpreter

import (
	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/runtime"
)

// completion is the outcome of evaluating a node. returning marks a `<<` that
// is still unwinding towards the nearest function call.
type completion struct {
	value     runtime.Value
	returning bool
}

func normal(val runtime.Value) completion {
	return completion{value: val}
}

var nullCompletion = completion{value: runtime.Null}

func (i *Interpreter) evaluateStatement(node ast.Statement, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case ast.Expression:
		return i.evaluateExpression(n, env)
	case *ast.VariableDeclaration:
		return i.evaluateVariableDeclaration(n, env)
	case *ast.Assignment:
		return i.evaluateAssignment(n, env)
	case *ast.FunctionDeclaration:
		if !env.Has(n.ID.Name) {
			i.hoistFunction(n, env)
		}
		return nullCompletion, nil
	case *ast.NamespaceDeclaration:
		return i.evaluateNamespaceDeclaration(n, env)
	case *ast.ReturnStatement:
		return i.evaluateReturnStatement(n, env)
	case *ast.PrintStatement:
		return i.evaluatePrintStatement(n, env)
	case nil:
		return nullCompletion, nil
	default:
		return completion{}, runtime.Errorf(runtime.TypeError, "unsupported statement type: %s", n.NodeType())
	}
}

// evaluateSequence hoists declarations and then runs stmts in order in env.
// The value is that of the last statement, or null when there are none.
func (i *Interpreter) evaluateSequence(stmts []ast.Statement, env *runtime.Environment) (completion, error) {
	i.hoistDeclarations(stmts, env)
	result := nullCompletion
	for _, stmt := range stmts {
		c, err := i.evaluateStatement(stmt, env)
		if err != nil || c.returning {
			return c, err
		}
		result = c
	}
	return result, nil
}

func (i *Interpreter) evaluateBlock(block *ast.BlockExpression, env *runtime.Environment) (completion, error) {
	return i.evaluateSequence(block.Body, env.Child())
}

// evaluateBranch runs the body of an if clause, match arm or loop. Bodies that
// are not blocks still get their own frame.
func (i *Interpreter) evaluateBranch(body ast.Statement, env *runtime.Environment) (completion, error) {
	if block, ok := body.(*ast.BlockExpression); ok {
		return i.evaluateBlock(block, env)
	}
	return i.evaluateStatement(body, env.Child())
}

func (i *Interpreter) evaluateVariableDeclaration(decl *ast.VariableDeclaration, env *runtime.Environment) (completion, error) {
	c, err := i.evaluateExpression(decl.Value, env)
	if err != nil || c.returning {
		return c, err
	}
	env.Define(decl.Name.Name, c.value, decl.Mutable)
	return nullCompletion, nil
}

func (i *Interpreter) evaluateAssignment(assign *ast.Assignment, env *runtime.Environment) (completion, error) {
	c, err := i.evaluateExpression(assign.Value, env)
	if err != nil || c.returning {
		return c, err
	}
	if err := env.Assign(assign.Name.Name, c.value); err != nil {
		return completion{}, err
	}
	return nullCompletion, nil
}

func (i *Interpreter) evaluateReturnStatement(stmt *ast.ReturnStatement, env *runtime.Environment) (completion, error) {
	var result runtime.Value = runtime.Null
	if stmt.Argument != nil {
		c, err := i.evaluateExpression(stmt.Argument, env)
		if err != nil || c.returning {
			return c, err
		}
		result = c.value
	}
	return completion{value: result, returning: true}, nil
}

func (i *Interpreter) evaluatePrintStatement(stmt *ast.PrintStatement, env *runtime.Environment) (completion, error) {
	c, err := i.evaluateExpression(stmt.Value, env)
	if err != nil || c.returning {
		return c, err
	}
	i.emit(c.value)
	return c, nil
}
