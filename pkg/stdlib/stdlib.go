// Package stdlib registers the native namespaces (Core, Arr, Obj, Str, Num,
// Math, Json) and the print global into an environment.
package stdlib

import (
	"math"

	"aiscript/interpreter-go/pkg/runtime"
)

// Version is reported by Core:v and the CLI.
const Version = "0.1.0"

// Install defines the standard library in env. Each namespace gets its own
// frame below env, so host globals and user code never see member names
// without the namespace prefix.
func Install(env *runtime.Environment) {
	env.Define("print", runtime.NewNative("print", func(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		if ctx.Out != nil {
			ctx.Out(arg(args, 0))
		}
		return runtime.Null, nil
	}), false)

	registerCoreBuiltins(namespace(env, "Core"))
	registerArrayBuiltins(namespace(env, "Arr"))
	registerObjectBuiltins(namespace(env, "Obj"))
	registerStringBuiltins(namespace(env, "Str"))
	registerNumberBuiltins(namespace(env, "Num"))
	registerMathBuiltins(namespace(env, "Math"))
	registerJSONBuiltins(namespace(env, "Json"))
}

func namespace(env *runtime.Environment, name string) *runtime.Namespace {
	if ns, ok := env.LocalNamespace(name); ok {
		return ns
	}
	ns := runtime.NewNamespace(name, env.Child(), nil)
	env.DefineNamespace(ns)
	return ns
}

func define(ns *runtime.Namespace, member string, impl runtime.NativeFunc) {
	ns.Env.Define(member, runtime.NewNative(ns.Name+":"+member, impl), false)
}

func constant(ns *runtime.Namespace, member string, val runtime.Value) {
	ns.Env.Define(member, val, false)
}

// Argument helpers. A missing argument reads as null, matching closures.

func arg(args []runtime.Value, idx int) runtime.Value {
	if idx < len(args) && args[idx] != nil {
		return args[idx]
	}
	return runtime.Null
}

func argError(fn string, idx int, want string, got runtime.Value) error {
	return runtime.Errorf(runtime.TypeError, "%s: argument %d must be %s, got %s", fn, idx+1, want, runtime.TypeName(got))
}

func arrayArg(fn string, args []runtime.Value, idx int) (*runtime.ArrayValue, error) {
	v := arg(args, idx)
	arr, ok := v.(*runtime.ArrayValue)
	if !ok {
		return nil, argError(fn, idx, "arr", v)
	}
	return arr, nil
}

func objectArg(fn string, args []runtime.Value, idx int) (*runtime.ObjectValue, error) {
	v := arg(args, idx)
	obj, ok := v.(*runtime.ObjectValue)
	if !ok {
		return nil, argError(fn, idx, "obj", v)
	}
	return obj, nil
}

func stringArg(fn string, args []runtime.Value, idx int) (string, error) {
	v := arg(args, idx)
	s, ok := v.(runtime.StringValue)
	if !ok {
		return "", argError(fn, idx, "str", v)
	}
	return s.Val, nil
}

func numberArg(fn string, args []runtime.Value, idx int) (float64, error) {
	v := arg(args, idx)
	n, ok := v.(runtime.NumberValue)
	if !ok {
		return 0, argError(fn, idx, "num", v)
	}
	return n.Val, nil
}

func intArg(fn string, args []runtime.Value, idx int) (int, error) {
	f, err := numberArg(fn, args, idx)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, runtime.Errorf(runtime.TypeError, "%s: argument %d must be an integer, got %s", fn, idx+1, runtime.FormatNumber(f))
	}
	if math.Abs(f) > runtime.MaxSafeInteger {
		return 0, runtime.Errorf(runtime.RangeError, "%s: argument %d is out of range, got %s", fn, idx+1, runtime.FormatNumber(f))
	}
	return int(f), nil
}

func boolArg(fn string, args []runtime.Value, idx int) (bool, error) {
	v := arg(args, idx)
	b, ok := v.(runtime.BoolValue)
	if !ok {
		return false, argError(fn, idx, "bool", v)
	}
	return b.Val, nil
}

func callableArg(fn string, args []runtime.Value, idx int) (runtime.Value, error) {
	v := arg(args, idx)
	if !runtime.IsCallable(v) {
		return nil, argError(fn, idx, "fn", v)
	}
	return v, nil
}
