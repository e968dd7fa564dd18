package runtime

import (
	"fmt"

	"aiscript/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindNull
	KindArray
	KindObject
	KindFunction
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// TypeName is the tag reported by Core:type.
func TypeName(v Value) string {
	switch v.Kind() {
	case KindNumber:
		return "num"
	case KindString:
		return "str"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	case KindArray:
		return "arr"
	case KindObject:
		return "obj"
	case KindFunction, KindNativeFunction:
		return "fn"
	default:
		return v.Kind().String()
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

type NullValue struct{}

func (NullValue) Kind() Kind { return KindNull }

// Shared scalar instances.
var (
	Null  Value = NullValue{}
	True  Value = BoolValue{Val: true}
	False Value = BoolValue{Val: false}
)

func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

func Number(f float64) Value { return NumberValue{Val: f} }

// MaxSafeInteger is the largest integer n such that every integer in
// [-n, n] is exactly representable as a num. Counts and indexes beyond it
// are rejected.
const MaxSafeInteger = 1 << 53

func String(s string) Value { return StringValue{Val: s} }

//-----------------------------------------------------------------------------
// Collections
//-----------------------------------------------------------------------------

// ArrayValue is mutable and shared by reference. Elements are stored 0-based;
// the language indexes from 1.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

func NewArray(elements []Value) *ArrayValue {
	if elements == nil {
		elements = []Value{}
	}
	return &ArrayValue{Elements: elements}
}

// ObjectValue is a string-keyed mapping that remembers insertion order.
type ObjectValue struct {
	keys   []string
	fields map[string]Value
}

func (v *ObjectValue) Kind() Kind { return KindObject }

func NewObject() *ObjectValue {
	return &ObjectValue{fields: make(map[string]Value)}
}

// Set overwrites an existing key in place or appends a new one.
func (v *ObjectValue) Set(key string, val Value) {
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = val
}

func (v *ObjectValue) Get(key string) (Value, bool) {
	val, ok := v.fields[key]
	return val, ok
}

func (v *ObjectValue) Has(key string) bool {
	_, ok := v.fields[key]
	return ok
}

// Keys returns a copy of the keys in insertion order.
func (v *ObjectValue) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

func (v *ObjectValue) Len() int { return len(v.keys) }

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue is a closure: parameters and body plus the environment that was
// current when the function was created.
type FunctionValue struct {
	Name    string
	Params  []*ast.Identifier
	Body    *ast.BlockExpression
	Closure *Environment
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// NativeCallContext is handed to native functions so they can call back into
// the evaluator and reach the output channel.
type NativeCallContext struct {
	Call func(fn Value, args []Value) (Value, error)
	Out  func(Value)
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

type NativeFunctionValue struct {
	Name string
	Impl NativeFunc
}

func (v *NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func NewNative(name string, impl NativeFunc) *NativeFunctionValue {
	return &NativeFunctionValue{Name: name, Impl: impl}
}

// IsCallable reports whether v can be the target of a call.
func IsCallable(v Value) bool {
	switch v.(type) {
	case *FunctionValue, *NativeFunctionValue:
		return true
	default:
		return false
	}
}

//-----------------------------------------------------------------------------
// Namespaces
//-----------------------------------------------------------------------------

// Namespace is the symbol table created by `:: Name { ... }` or registered by
// the standard library. Members live in Env, a frame of their own whose parent
// is the frame the namespace was declared in.
type Namespace struct {
	Name string
	Env  *Environment
	Decl *ast.NamespaceDeclaration

	// Initialized is set once immutable members have been evaluated.
	Initialized bool
}

func NewNamespace(name string, env *Environment, decl *ast.NamespaceDeclaration) *Namespace {
	return &Namespace{Name: name, Env: env, Decl: decl, Initialized: decl == nil}
}
