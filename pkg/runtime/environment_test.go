package runtime

import (
	"errors"
	"testing"
)

func TestEnvironmentLookupWalksOutward(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", Number(1), false)
	inner := global.Child().Child()

	val, err := inner.Get("x")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if num, ok := val.(NumberValue); !ok || num.Val != 1 {
		t.Fatalf("expected 1, got %#v", val)
	}
}

func TestEnvironmentDefineShadows(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("x", Number(1), false)
	env.Define("x", String("two"), false)
	val, err := env.Get("x")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if str, ok := val.(StringValue); !ok || str.Val != "two" {
		t.Fatalf("expected shadowed value, got %#v", val)
	}
}

func TestEnvironmentUndefinedHostNames(t *testing.T) {
	env := NewEnvironment(nil)
	for _, name := range []string{"constructor", "__proto__", "toString", "Define"} {
		_, err := env.Get(name)
		if !errors.Is(err, ErrUndefinedVariable) {
			t.Fatalf("%s: expected UndefinedVariable, got %v", name, err)
		}
	}
}

func TestEnvironmentAssign(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("count", Number(0), true)
	global.Define("fixed", Number(0), false)
	inner := global.Child()

	if err := inner.Assign("count", Number(5)); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	val, _ := global.Get("count")
	if val.(NumberValue).Val != 5 {
		t.Fatalf("assignment not visible in defining frame: %#v", val)
	}
	if err := inner.Assign("fixed", Number(1)); !errors.Is(err, ErrAssignmentError) {
		t.Fatalf("expected AssignmentError, got %v", err)
	}
	if err := inner.Assign("missing", Number(1)); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected UndefinedVariable, got %v", err)
	}
}

func TestBindingCellsShared(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("n", Number(0), true)
	left := env.Child()
	right := env.Child()

	if err := left.Assign("n", Number(3)); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	val, _ := right.Get("n")
	if val.(NumberValue).Val != 3 {
		t.Fatalf("expected sibling frame to observe write, got %#v", val)
	}
}

func TestNamespacesInnermostFirst(t *testing.T) {
	outer := NewEnvironment(nil)
	inner := outer.Child()
	a := NewNamespace("Arr", outer.Child(), nil)
	b := NewNamespace("Arr", inner.Child(), nil)
	outer.DefineNamespace(a)
	inner.DefineNamespace(b)

	found := inner.Namespaces("Arr")
	if len(found) != 2 || found[0] != b || found[1] != a {
		t.Fatalf("unexpected namespace order: %#v", found)
	}
	if len(outer.Namespaces("Missing")) != 0 {
		t.Fatalf("expected no namespaces")
	}
}
