package interpreter

import (
	"strings"

	"aiscript/interpreter-go/pkg/ast"
	"aiscript/interpreter-go/pkg/runtime"
)

// hoistDeclarations registers function and namespace declarations of stmts in
// env before any of them runs. It evaluates no expressions.
func (i *Interpreter) hoistDeclarations(stmts []ast.Statement, env *runtime.Environment) {
	for _, stmt := range stmts {
		switch decl := stmt.(type) {
		case *ast.FunctionDeclaration:
			i.hoistFunction(decl, env)
		case *ast.NamespaceDeclaration:
			i.hoistNamespace(decl, env)
		}
	}
}

func (i *Interpreter) hoistFunction(decl *ast.FunctionDeclaration, env *runtime.Environment) {
	if decl == nil || decl.ID == nil {
		return
	}
	env.Define(decl.ID.Name, &runtime.FunctionValue{
		Name:    decl.ID.Name,
		Params:  decl.Params,
		Body:    decl.Body,
		Closure: env,
	}, false)
}

// hoistNamespace creates the namespace frame and registers member functions
// and nested namespaces in it. Value members wait for initializeNamespace.
func (i *Interpreter) hoistNamespace(decl *ast.NamespaceDeclaration, env *runtime.Environment) *runtime.Namespace {
	if decl == nil || decl.ID == nil {
		return nil
	}
	ns := runtime.NewNamespace(decl.ID.Name, env.Child(), decl)
	env.DefineNamespace(ns)
	i.hoistDeclarations(decl.Members, ns.Env)
	return ns
}

func (i *Interpreter) evaluateNamespaceDeclaration(decl *ast.NamespaceDeclaration, env *runtime.Environment) (completion, error) {
	if decl.ID == nil {
		return completion{}, runtime.Errorf(runtime.TypeError, "namespace declaration requires a name")
	}
	ns, ok := env.LocalNamespace(decl.ID.Name)
	if !ok || ns.Decl != decl {
		ns = i.hoistNamespace(decl, env)
	}
	if err := i.initializeNamespace(ns); err != nil {
		return completion{}, err
	}
	return nullCompletion, nil
}

// initializeNamespace evaluates the value members of ns, once, in declaration
// order. It runs the first time the namespace is reached by name or when its
// declaration statement executes.
func (i *Interpreter) initializeNamespace(ns *runtime.Namespace) error {
	if ns == nil || ns.Initialized {
		return nil
	}
	ns.Initialized = true
	for _, member := range ns.Decl.Members {
		switch m := member.(type) {
		case *ast.FunctionDeclaration:
		case *ast.VariableDeclaration:
			if m.Mutable {
				return runtime.Errorf(runtime.AssignmentError, "namespace %s: member '%s' must be immutable", ns.Name, m.Name.Name)
			}
			c, err := i.evaluateExpression(m.Value, ns.Env)
			if err != nil {
				return err
			}
			if c.returning {
				return runtime.Errorf(runtime.TypeError, "namespace %s: member '%s' cannot return from its initializer", ns.Name, m.Name.Name)
			}
			ns.Env.Define(m.Name.Name, c.value, false)
		case *ast.NamespaceDeclaration:
			if nested, ok := ns.Env.LocalNamespace(m.ID.Name); ok {
				if err := i.initializeNamespace(nested); err != nil {
					return err
				}
			}
		default:
			return runtime.Errorf(runtime.TypeError, "namespace %s: unsupported member %s", ns.Name, member.NodeType())
		}
	}
	return nil
}

// resolveNamespaceMember looks up `path:member`. Namespaces with the same name
// are tried innermost first, so a user namespace only hides the members it
// declares.
func (i *Interpreter) resolveNamespaceMember(path []string, member string, env *runtime.Environment) (runtime.Value, error) {
	if len(path) == 0 {
		return env.Get(member)
	}
	for _, ns := range env.Namespaces(path[0]) {
		target, err := i.descendNamespace(ns, path[1:])
		if err != nil {
			return nil, err
		}
		if target == nil {
			continue
		}
		if b, ok := target.Env.Local(member); ok {
			return b.Value, nil
		}
	}
	return nil, runtime.Errorf(runtime.UndefinedVariable, "Undefined variable '%s:%s'", strings.Join(path, ":"), member)
}

func (i *Interpreter) descendNamespace(ns *runtime.Namespace, rest []string) (*runtime.Namespace, error) {
	if err := i.initializeNamespace(ns); err != nil {
		return nil, err
	}
	for _, seg := range rest {
		next, ok := ns.Env.LocalNamespace(seg)
		if !ok {
			return nil, nil
		}
		if err := i.initializeNamespace(next); err != nil {
			return nil, err
		}
		ns = next
	}
	return ns, nil
}
