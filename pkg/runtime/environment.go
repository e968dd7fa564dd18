package runtime

import (
	"sort"
)

// Binding is a named storage cell. Closures share cells by pointer, so writes
// through one closure are seen by every other closure over the same frame.
type Binding struct {
	Name    string
	Value   Value
	Mutable bool
}

// Environment provides lexical scoping for runtime values.
type Environment struct {
	values     map[string]*Binding
	namespaces map[string]*Namespace
	parent     *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]*Binding),
		parent: parent,
	}
}

// Parent exposes the lexical parent (nil when outermost).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Child creates a new frame whose parent is e.
func (e *Environment) Child() *Environment {
	return NewEnvironment(e)
}

// Define inserts or shadows a binding in the current frame.
func (e *Environment) Define(name string, value Value, mutable bool) *Binding {
	b := &Binding{Name: name, Value: value, Mutable: mutable}
	e.values[name] = b
	return b
}

// Has reports whether name is bound in this frame (parents are not consulted).
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Local returns the binding for name in this frame only.
func (e *Environment) Local(name string) (*Binding, bool) {
	b, ok := e.values[name]
	return b, ok
}

// Lookup resolves name outward through the frame chain.
func (e *Environment) Lookup(name string) (*Binding, error) {
	for env := e; env != nil; env = env.parent {
		if b, ok := env.values[name]; ok {
			return b, nil
		}
	}
	return nil, Errorf(UndefinedVariable, "Undefined variable '%s'", name)
}

// Get retrieves the value bound to name.
func (e *Environment) Get(name string) (Value, error) {
	b, err := e.Lookup(name)
	if err != nil {
		return nil, err
	}
	return b.Value, nil
}

// Assign updates an existing mutable binding in the first frame where it appears.
func (e *Environment) Assign(name string, value Value) error {
	b, err := e.Lookup(name)
	if err != nil {
		return err
	}
	if !b.Mutable {
		return Errorf(AssignmentError, "Cannot assign to immutable variable '%s'", name)
	}
	b.Value = value
	return nil
}

// Names returns the bindings of this frame in sorted order.
func (e *Environment) Names() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DefineNamespace registers ns in this frame under its name.
func (e *Environment) DefineNamespace(ns *Namespace) {
	if e.namespaces == nil {
		e.namespaces = make(map[string]*Namespace)
	}
	e.namespaces[ns.Name] = ns
}

// LocalNamespace returns the namespace registered in this frame only.
func (e *Environment) LocalNamespace(name string) (*Namespace, bool) {
	ns, ok := e.namespaces[name]
	return ns, ok
}

// Namespaces returns every namespace registered as name, innermost first.
func (e *Environment) Namespaces(name string) []*Namespace {
	var out []*Namespace
	for env := e; env != nil; env = env.parent {
		if ns, ok := env.namespaces[name]; ok {
			out = append(out, ns)
		}
	}
	return out
}
