package interpreter

import (
	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateIfExpression(expr *ast.IfExpression, env *runtime.Environment) (completion, error) {
	for _, clause := range expr.Clauses {
		cond, err := i.evaluateExpression(clause.Condition, env)
		if err != nil || cond.returning {
			return cond, err
		}
		b, ok := cond.value.(runtime.BoolValue)
		if !ok {
			return completion{}, runtime.Errorf(runtime.TypeError, "if condition must be bool, got %s", runtime.TypeName(cond.value))
		}
		if b.Val {
			return i.evaluateBranch(clause.Body, env)
		}
	}
	if expr.Else != nil {
		return i.evaluateBranch(expr.Else, env)
	}
	return nullCompletion, nil
}

// evaluateMatchExpression compares the subject against each arm pattern in
// source order. Patterns are ordinary expressions, evaluated only until one
// matches.
func (i *Interpreter) evaluateMatchExpression(expr *ast.MatchExpression, env *runtime.Environment) (completion, error) {
	subject, err := i.evaluateExpression(expr.Subject, env)
	if err != nil || subject.returning {
		return subject, err
	}
	for _, arm := range expr.Arms {
		pattern, err := i.evaluateExpression(arm.Pattern, env)
		if err != nil || pattern.returning {
			return pattern, err
		}
		if runtime.Equal(subject.value, pattern.value) {
			return i.evaluateBranch(arm.Body, env)
		}
	}
	if expr.Default != nil {
		return i.evaluateBranch(expr.Default, env)
	}
	return nullCompletion, nil
}
