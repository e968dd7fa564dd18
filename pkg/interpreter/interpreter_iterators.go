package interpreter

import (
	"math"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/runtime"
)

// evaluateForLoop runs the body count times. Each iteration gets its own frame
// so closures created in the body capture that iteration's counter.
func (i *Interpreter) evaluateForLoop(loop *ast.ForLoop, env *runtime.Environment) (completion, error) {
	countC, err := i.evaluateExpression(loop.Count, env)
	if err != nil || countC.returning {
		return countC, err
	}
	num, ok := countC.value.(runtime.NumberValue)
	if !ok {
		return completion{}, runtime.Errorf(runtime.TypeError, "loop count must be num, got %s", runtime.TypeName(countC.value))
	}
	if num.Val < 0 || num.Val != math.Trunc(num.Val) || math.IsInf(num.Val, 0) {
		return completion{}, runtime.Errorf(runtime.RangeError, "loop count must be a non-negative integer, got %s", runtime.FormatNumber(num.Val))
	}
	if num.Val > runtime.MaxSafeInteger {
		return completion{}, runtime.Errorf(runtime.RangeError, "loop count %s is too large", runtime.FormatNumber(num.Val))
	}
	count := int(num.Val)
	var results []runtime.Value
	for n := 1; n <= count; n++ {
		iterEnv := env.Child()
		if loop.Counter != nil {
			iterEnv.Define(loop.Counter.Name, runtime.NumberValue{Val: float64(n)}, false)
		}
		c, err := i.evaluateLoopBody(loop.Body, iterEnv)
		if err != nil || c.returning {
			return c, err
		}
		results = append(results, c.value)
	}
	return normal(runtime.NewArray(results)), nil
}

// evaluateForOfLoop iterates a snapshot of the array, so pushes made by the
// body do not extend the loop.
func (i *Interpreter) evaluateForOfLoop(loop *ast.ForOfLoop, env *runtime.Environment) (completion, error) {
	coll, err := i.evaluateExpression(loop.Collection, env)
	if err != nil || coll.returning {
		return coll, err
	}
	arr, ok := coll.value.(*runtime.ArrayValue)
	if !ok {
		return completion{}, runtime.Errorf(runtime.TypeError, "cannot iterate over %s", runtime.TypeName(coll.value))
	}
	items := append([]runtime.Value(nil), arr.Elements...)
	results := make([]runtime.Value, 0, len(items))
	for _, item := range items {
		iterEnv := env.Child()
		if loop.Item != nil {
			iterEnv.Define(loop.Item.Name, item, false)
		}
		c, err := i.evaluateLoopBody(loop.Body, iterEnv)
		if err != nil || c.returning {
			return c, err
		}
		results = append(results, c.value)
	}
	return normal(runtime.NewArray(results)), nil
}

// evaluateLoopBody runs body in the iteration frame. A block body shares that
// frame instead of opening another one.
func (i *Interpreter) evaluateLoopBody(body ast.Statement, iterEnv *runtime.Environment) (completion, error) {
	if block, ok := body.(*ast.BlockExpression); ok {
		return i.evaluateSequence(block.Body, iterEnv)
	}
	return i.evaluateStatement(body, iterEnv)
}
