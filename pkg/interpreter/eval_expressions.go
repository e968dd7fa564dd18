package interpreter

import (
	"math"
	"strings"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/runtime"
)

// evaluateExpression dispatches on the node kind. Every kind that can contain
// a `<<` passes a returning completion straight through.
func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (completion, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return normal(runtime.NumberValue{Val: n.Value}), nil
	case *ast.StringLiteral:
		return normal(runtime.StringValue{Val: n.Value}), nil
	case *ast.BooleanLiteral:
		return normal(runtime.Bool(n.Value)), nil
	case *ast.NullLiteral:
		return nullCompletion, nil
	case *ast.Identifier:
		val, err := env.Get(n.Name)
		if err != nil {
			return completion{}, err
		}
		return normal(val), nil
	case *ast.ArrayLiteral:
		return i.evaluateArrayLiteral(n, env)
	case *ast.ObjectLiteral:
		return i.evaluateObjectLiteral(n, env)
	case *ast.TemplateLiteral:
		return i.evaluateTemplateLiteral(n, env)
	case *ast.UnaryExpression:
		return i.evaluateUnaryExpression(n, env)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n, env)
	case *ast.FunctionExpression:
		return normal(i.makeClosure(n, env)), nil
	case *ast.FunctionCall:
		return i.evaluateFunctionCall(n, env)
	case *ast.MemberAccess:
		return i.evaluateMemberAccess(n, env)
	case *ast.IndexExpression:
		return i.evaluateIndexExpression(n, env)
	case *ast.NamespaceAccess:
		val, err := i.resolveNamespaceMember(n.Path, n.Member, env)
		if err != nil {
			return completion{}, err
		}
		return normal(val), nil
	case *ast.BlockExpression:
		return i.evaluateBlock(n, env)
	case *ast.IfExpression:
		return i.evaluateIfExpression(n, env)
	case *ast.MatchExpression:
		return i.evaluateMatchExpression(n, env)
	case *ast.ForLoop:
		return i.evaluateForLoop(n, env)
	case *ast.ForOfLoop:
		return i.evaluateForOfLoop(n, env)
	case nil:
		return completion{}, runtime.Errorf(runtime.TypeError, "missing expression")
	default:
		return completion{}, runtime.Errorf(runtime.TypeError, "unsupported expression type: %s", n.NodeType())
	}
}

func (i *Interpreter) evaluateArrayLiteral(lit *ast.ArrayLiteral, env *runtime.Environment) (completion, error) {
	values := make([]runtime.Value, 0, len(lit.Elements))
	for _, el := range lit.Elements {
		c, err := i.evaluateExpression(el, env)
		if err != nil || c.returning {
			return c, err
		}
		values = append(values, c.value)
	}
	return normal(runtime.NewArray(values)), nil
}

func (i *Interpreter) evaluateObjectLiteral(lit *ast.ObjectLiteral, env *runtime.Environment) (completion, error) {
	obj := runtime.NewObject()
	for _, member := range lit.Members {
		c, err := i.evaluateExpression(member.Value, env)
		if err != nil || c.returning {
			return c, err
		}
		obj.Set(member.Key, c.value)
	}
	return normal(obj), nil
}

func (i *Interpreter) evaluateTemplateLiteral(lit *ast.TemplateLiteral, env *runtime.Environment) (completion, error) {
	var builder strings.Builder
	for _, part := range lit.Parts {
		if str, ok := part.(*ast.StringLiteral); ok {
			builder.WriteString(str.Value)
			continue
		}
		c, err := i.evaluateExpression(part, env)
		if err != nil || c.returning {
			return c, err
		}
		builder.WriteString(runtime.ToString(c.value))
	}
	return normal(runtime.StringValue{Val: builder.String()}), nil
}

// makeClosure captures env. A named function expression can refer to itself
// through an extra frame holding only its name.
func (i *Interpreter) makeClosure(expr *ast.FunctionExpression, env *runtime.Environment) *runtime.FunctionValue {
	fn := &runtime.FunctionValue{Params: expr.Params, Body: expr.Body, Closure: env}
	if expr.ID != nil {
		fn.Name = expr.ID.Name
		fn.Closure = env.Child()
		fn.Closure.Define(expr.ID.Name, fn, false)
	}
	return fn
}

func (i *Interpreter) evaluateFunctionCall(call *ast.FunctionCall, env *runtime.Environment) (completion, error) {
	callee, err := i.evaluateExpression(call.Callee, env)
	if err != nil || callee.returning {
		return callee, err
	}
	if !runtime.IsCallable(callee.value) {
		return completion{}, runtime.Errorf(runtime.NotCallable, "%s is not a function", describeCallee(call.Callee, callee.value))
	}
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, arg := range call.Arguments {
		c, err := i.evaluateExpression(arg, env)
		if err != nil || c.returning {
			return c, err
		}
		args = append(args, c.value)
	}
	result, err := i.callFunction(callee.value, args)
	if err != nil {
		return completion{}, err
	}
	return normal(result), nil
}

func describeCallee(expr ast.Expression, val runtime.Value) string {
	switch n := expr.(type) {
	case *ast.Identifier:
		return "'" + n.Name + "' (" + runtime.TypeName(val) + ")"
	case *ast.MemberAccess:
		return "'" + n.Key + "' (" + runtime.TypeName(val) + ")"
	case *ast.NamespaceAccess:
		return "'" + strings.Join(append(append([]string(nil), n.Path...), n.Member), ":") + "' (" + runtime.TypeName(val) + ")"
	}
	return runtime.TypeName(val)
}

func (i *Interpreter) evaluateUnaryExpression(expr *ast.UnaryExpression, env *runtime.Environment) (completion, error) {
	c, err := i.evaluateExpression(expr.Operand, env)
	if err != nil || c.returning {
		return c, err
	}
	switch expr.Operator {
	case ast.UnaryOperatorNot:
		b, ok := c.value.(runtime.BoolValue)
		if !ok {
			return completion{}, runtime.Errorf(runtime.TypeError, "'!' expects bool, got %s", runtime.TypeName(c.value))
		}
		return normal(runtime.Bool(!b.Val)), nil
	case ast.UnaryOperatorNegate:
		num, ok := c.value.(runtime.NumberValue)
		if !ok {
			return completion{}, runtime.Errorf(runtime.TypeError, "'-' expects num, got %s", runtime.TypeName(c.value))
		}
		return normal(runtime.NumberValue{Val: -num.Val}), nil
	default:
		return completion{}, runtime.Errorf(runtime.TypeError, "unsupported unary operator %s", expr.Operator)
	}
}

func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression, env *runtime.Environment) (completion, error) {
	left, err := i.evaluateExpression(expr.Left, env)
	if err != nil || left.returning {
		return left, err
	}
	switch expr.Operator {
	case "&", "|":
		lb, ok := left.value.(runtime.BoolValue)
		if !ok {
			return completion{}, runtime.Errorf(runtime.TypeError, "'%s' expects bool operands, got %s", expr.Operator, runtime.TypeName(left.value))
		}
		if (expr.Operator == "&" && !lb.Val) || (expr.Operator == "|" && lb.Val) {
			return normal(lb), nil
		}
		right, err := i.evaluateExpression(expr.Right, env)
		if err != nil || right.returning {
			return right, err
		}
		rb, ok := right.value.(runtime.BoolValue)
		if !ok {
			return completion{}, runtime.Errorf(runtime.TypeError, "'%s' expects bool operands, got %s", expr.Operator, runtime.TypeName(right.value))
		}
		return normal(rb), nil
	}
	right, err := i.evaluateExpression(expr.Right, env)
	if err != nil || right.returning {
		return right, err
	}
	val, err := evaluateBinaryOperator(expr.Operator, left.value, right.value)
	if err != nil {
		return completion{}, err
	}
	return normal(val), nil
}

func evaluateBinaryOperator(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "=":
		return runtime.Bool(runtime.Equal(left, right)), nil
	case "!=":
		return runtime.Bool(!runtime.Equal(left, right)), nil
	case "+":
		if ls, ok := left.(runtime.StringValue); ok {
			if rs, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: ls.Val + rs.Val}, nil
			}
		}
	}
	lv, lok := left.(runtime.NumberValue)
	rv, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, runtime.Errorf(runtime.TypeError, "'%s' expects num operands, got %s and %s", op, runtime.TypeName(left), runtime.TypeName(right))
	}
	return evaluateArithmetic(op, lv.Val, rv.Val)
}

func evaluateArithmetic(op string, l, r float64) (runtime.Value, error) {
	switch op {
	case "+":
		return runtime.NumberValue{Val: l + r}, nil
	case "-":
		return runtime.NumberValue{Val: l - r}, nil
	case "*":
		return runtime.NumberValue{Val: l * r}, nil
	case "/":
		if r == 0 {
			return nil, runtime.Errorf(runtime.DivisionByZero, "division by zero")
		}
		return runtime.NumberValue{Val: l / r}, nil
	case "%":
		if r == 0 {
			return nil, runtime.Errorf(runtime.DivisionByZero, "modulo by zero")
		}
		return runtime.NumberValue{Val: math.Mod(l, r)}, nil
	case "<":
		return runtime.Bool(l < r), nil
	case "<=":
		return runtime.Bool(l <= r), nil
	case ">":
		return runtime.Bool(l > r), nil
	case ">=":
		return runtime.Bool(l >= r), nil
	default:
		return nil, runtime.Errorf(runtime.TypeError, "unsupported binary operator %s", op)
	}
}
