package interpreter

import (
	"math"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateMemberAccess(expr *ast.MemberAccess, env *runtime.Environment) (completion, error) {
	c, err := i.evaluateExpression(expr.Object, env)
	if err != nil || c.returning {
		return c, err
	}
	obj, ok := c.value.(*runtime.ObjectValue)
	if !ok {
		return completion{}, runtime.Errorf(runtime.TypeError, "cannot read property '%s' of %s", expr.Key, runtime.TypeName(c.value))
	}
	if val, ok := obj.Get(expr.Key); ok {
		return normal(val), nil
	}
	return nullCompletion, nil
}

func (i *Interpreter) evaluateIndexExpression(expr *ast.IndexExpression, env *runtime.Environment) (completion, error) {
	target, err := i.evaluateExpression(expr.Object, env)
	if err != nil || target.returning {
		return target, err
	}
	index, err := i.evaluateExpression(expr.Index, env)
	if err != nil || index.returning {
		return index, err
	}
	arr, ok := target.value.(*runtime.ArrayValue)
	if !ok {
		return completion{}, runtime.Errorf(runtime.TypeError, "cannot index %s", runtime.TypeName(target.value))
	}
	pos, err := arrayPosition(index.value, len(arr.Elements))
	if err != nil {
		return completion{}, err
	}
	return normal(arr.Elements[pos]), nil
}

// arrayPosition converts a 1-based language index into a slice offset.
func arrayPosition(idx runtime.Value, length int) (int, error) {
	num, ok := idx.(runtime.NumberValue)
	if !ok {
		return 0, runtime.Errorf(runtime.TypeError, "array index must be num, got %s", runtime.TypeName(idx))
	}
	if num.Val != math.Trunc(num.Val) {
		return 0, runtime.Errorf(runtime.TypeError, "array index must be an integer, got %s", runtime.FormatNumber(num.Val))
	}
	if num.Val < 1 || num.Val > float64(length) {
		return 0, runtime.Errorf(runtime.IndexError, "index %s out of range [1, %d]", runtime.FormatNumber(num.Val), length)
	}
	return int(num.Val) - 1, nil
}
