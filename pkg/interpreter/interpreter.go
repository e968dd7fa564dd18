package interpreter

import (
	"strings"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/runtime"
	"aiscript/interpreter-go/pkg/stdlib"
)

// RuntimeError is the error type every failed execution reports.
type RuntimeError = runtime.RuntimeError

// Options configures an Interpreter.
type Options struct {
	// Out receives each printed value, synchronously and in program order.
	Out func(runtime.Value)
}

// Interpreter evaluates AiScript programs. It is not safe for concurrent use.
type Interpreter struct {
	root   *runtime.Environment
	global *runtime.Environment
	out    func(runtime.Value)
	native *runtime.NativeCallContext
}

// New returns an interpreter whose outermost frame holds the standard library
// and the host globals. A global named `Ns:member` is registered as a member
// of namespace Ns instead of a plain binding.
func New(globals map[string]runtime.Value, opts Options) *Interpreter {
	root := runtime.NewEnvironment(nil)
	i := &Interpreter{
		root: root,
		out:  opts.Out,
	}
	i.native = &runtime.NativeCallContext{Call: i.callFunction, Out: i.emit}
	stdlib.Install(root)
	for name, val := range globals {
		i.defineGlobal(name, val)
	}
	i.global = root.Child()
	return i
}

// GlobalEnvironment returns the frame top-level program statements run in.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.global
}

// Exec runs program to completion. A top-level `<<` ends the program early;
// its value becomes the result.
func (i *Interpreter) Exec(program *ast.Program) (runtime.Value, error) {
	if program == nil {
		return runtime.Null, nil
	}
	c, err := i.evaluateSequence(program.Body, i.global)
	if err != nil {
		return nil, err
	}
	return c.value, nil
}

// Call invokes fn with args through the same mechanism used by program code.
func (i *Interpreter) Call(fn runtime.Value, args []runtime.Value) (runtime.Value, error) {
	return i.callFunction(fn, args)
}

func (i *Interpreter) emit(val runtime.Value) {
	if i.out != nil {
		i.out(val)
	}
}

func (i *Interpreter) defineGlobal(name string, val runtime.Value) {
	segments := strings.Split(name, ":")
	if len(segments) == 1 {
		i.root.Define(name, val, false)
		return
	}
	env := i.root
	for _, seg := range segments[:len(segments)-1] {
		ns, ok := env.LocalNamespace(seg)
		if !ok {
			ns = runtime.NewNamespace(seg, env.Child(), nil)
			env.DefineNamespace(ns)
		}
		env = ns.Env
	}
	env.Define(segments[len(segments)-1], val, false)
}

func (i *Interpreter) callFunction(callee runtime.Value, args []runtime.Value) (runtime.Value, error) {
	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		return i.invokeFunction(fn, args)
	case *runtime.NativeFunctionValue:
		result, err := fn.Impl(i.native, args)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return runtime.Null, nil
		}
		return result, nil
	case nil:
		return nil, runtime.Errorf(runtime.NotCallable, "cannot call a missing value")
	default:
		return nil, runtime.Errorf(runtime.NotCallable, "%s is not a function", runtime.TypeName(callee))
	}
}

// invokeFunction runs a closure in a new frame whose parent is the closure's
// defining environment. Missing arguments bind to null; extra ones are ignored.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	callEnv := fn.Closure.Child()
	for idx, param := range fn.Params {
		if param == nil {
			continue
		}
		var val runtime.Value = runtime.Null
		if idx < len(args) {
			val = args[idx]
		}
		callEnv.Define(param.Name, val, false)
	}
	if fn.Body == nil {
		return runtime.Null, nil
	}
	c, err := i.evaluateSequence(fn.Body.Body, callEnv)
	if err != nil {
		return nil, err
	}
	return c.value, nil
}
