package stdlib_test

import (
	"errors"
	"testing"

	"aiscript/interpreter-go/pkg/runtime"
	"aiscript/interpreter-go/pkg/stdlib"
)

type harness struct {
	env     *runtime.Environment
	ctx     *runtime.NativeCallContext
	printed []runtime.Value
}

// newHarness installs the library into a bare frame. The call context can only
// invoke natives, which is all these tests need.
func newHarness() *harness {
	h := &harness{env: runtime.NewEnvironment(nil)}
	stdlib.Install(h.env)
	h.ctx = &runtime.NativeCallContext{Out: func(v runtime.Value) { h.printed = append(h.printed, v) }}
	h.ctx.Call = func(fn runtime.Value, args []runtime.Value) (runtime.Value, error) {
		native, ok := fn.(*runtime.NativeFunctionValue)
		if !ok {
			return nil, runtime.Errorf(runtime.NotCallable, "%s is not a function", runtime.TypeName(fn))
		}
		return native.Impl(h.ctx, args)
	}
	return h
}

func (h *harness) member(t *testing.T, ns, name string) runtime.Value {
	t.Helper()
	space, ok := h.env.LocalNamespace(ns)
	if !ok {
		t.Fatalf("namespace %s not installed", ns)
	}
	b, ok := space.Env.Local(name)
	if !ok {
		t.Fatalf("%s:%s not installed", ns, name)
	}
	return b.Value
}

func (h *harness) call(t *testing.T, ns, name string, args ...runtime.Value) runtime.Value {
	t.Helper()
	val, err := h.ctx.Call(h.member(t, ns, name), args)
	if err != nil {
		t.Fatalf("%s:%s returned error: %v", ns, name, err)
	}
	return val
}

func (h *harness) callErr(t *testing.T, ns, name string, args ...runtime.Value) error {
	t.Helper()
	_, err := h.ctx.Call(h.member(t, ns, name), args)
	if err == nil {
		t.Fatalf("%s:%s: expected error", ns, name)
	}
	return err
}

func strs(values ...string) *runtime.ArrayValue {
	out := make([]runtime.Value, 0, len(values))
	for _, v := range values {
		out = append(out, runtime.String(v))
	}
	return runtime.NewArray(out)
}

func nums(values ...float64) *runtime.ArrayValue {
	out := make([]runtime.Value, 0, len(values))
	for _, v := range values {
		out = append(out, runtime.Number(v))
	}
	return runtime.NewArray(out)
}

func expectText(t *testing.T, got runtime.Value, want string) {
	t.Helper()
	if text := runtime.Inspect(got); text != want {
		t.Fatalf("expected %s, got %s", want, text)
	}
}

func TestMembersStayInsideNamespaces(t *testing.T) {
	h := newHarness()
	if _, err := h.env.Get("len"); !errors.Is(err, runtime.ErrUndefinedVariable) {
		t.Fatalf("expected len to be undefined at top level, got %v", err)
	}
	if _, err := h.env.Get("print"); err != nil {
		t.Fatalf("print should be a global: %v", err)
	}
}

func TestPrintEmits(t *testing.T) {
	h := newHarness()
	printFn, _ := h.env.Get("print")
	if _, err := h.ctx.Call(printFn, []runtime.Value{runtime.String("foo")}); err != nil {
		t.Fatalf("print: %v", err)
	}
	if len(h.printed) != 1 || runtime.ToString(h.printed[0]) != "foo" {
		t.Fatalf("unexpected output %v", h.printed)
	}
}

func TestCoreType(t *testing.T) {
	h := newHarness()
	cases := map[string]runtime.Value{
		"num":  runtime.Number(1),
		"str":  runtime.String(""),
		"bool": runtime.True,
		"null": runtime.Null,
		"arr":  nums(),
		"obj":  runtime.NewObject(),
		"fn":   h.member(t, "Core", "type"),
	}
	for want, val := range cases {
		expectText(t, h.call(t, "Core", "type", val), `"`+want+`"`)
	}
	expectText(t, h.member(t, "Core", "ai"), `"kawaii"`)
	expectText(t, h.call(t, "Core", "not", runtime.False), "yes")
	expectText(t, h.call(t, "Core", "eq", runtime.Number(2), runtime.Number(2)), "yes")
	expectText(t, h.call(t, "Core", "to_str", nums(1, 2)), `"[1, 2]"`)
	if err := h.callErr(t, "Core", "not", runtime.Number(1)); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestArrayBasics(t *testing.T) {
	h := newHarness()
	expectText(t, h.call(t, "Arr", "len", strs("a", "b", "c")), "3")

	arr := strs("ai")
	pushed := h.call(t, "Arr", "push", arr, runtime.String("chan"))
	if pushed != runtime.Value(arr) {
		t.Fatalf("push should return the same array")
	}
	expectText(t, arr, `["ai", "chan"]`)
	h.call(t, "Arr", "unshift", arr, runtime.String("hi"))
	expectText(t, arr, `["hi", "ai", "chan"]`)
	expectText(t, h.call(t, "Arr", "pop", arr), `"chan"`)
	expectText(t, h.call(t, "Arr", "shift", arr), `"hi"`)
	expectText(t, arr, `["ai"]`)
	expectText(t, h.call(t, "Arr", "pop", strs()), "_")

	expectText(t, h.call(t, "Arr", "join", strs("ai", "!")), `"ai!"`)
	expectText(t, h.call(t, "Arr", "join", strs("a", "b"), runtime.String(", ")), `"a, b"`)
	if err := h.callErr(t, "Arr", "join", nums(1)); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError, got %v", err)
	}

	expectText(t, h.call(t, "Arr", "concat", nums(1), nums(2, 3)), "[1, 2, 3]")
	expectText(t, h.call(t, "Arr", "reverse", nums(1, 2, 3)), "[3, 2, 1]")
	expectText(t, h.call(t, "Arr", "incl", nums(1, 2), runtime.Number(2)), "yes")
	expectText(t, h.call(t, "Arr", "incl", nums(1, 2), runtime.String("2")), "no")
	expectText(t, h.call(t, "Arr", "slice", nums(1, 2, 3, 4), runtime.Number(2), runtime.Number(3)), "[2, 3]")
	expectText(t, h.call(t, "Arr", "slice", nums(1, 2, 3), runtime.Number(0)), "[1, 2, 3]")
	expectText(t, h.call(t, "Arr", "slice", nums(1, 2, 3), runtime.Number(3), runtime.Number(1)), "[]")

	if err := h.callErr(t, "Arr", "len", runtime.String("abc")); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}

func TestArrayHigherOrder(t *testing.T) {
	h := newHarness()
	toStr := h.member(t, "Core", "to_str")
	not := h.member(t, "Core", "not")
	maxFn := h.member(t, "Math", "max")

	expectText(t, h.call(t, "Arr", "map", nums(1, 2), toStr), `["1", "2"]`)
	bools := runtime.NewArray([]runtime.Value{runtime.True, runtime.False, runtime.False})
	expectText(t, h.call(t, "Arr", "filter", bools, not), "[no, no]")
	expectText(t, h.call(t, "Arr", "reduce", nums(3, 9, 4), maxFn), "9")
	expectText(t, h.call(t, "Arr", "reduce", nums(3, 9, 4), maxFn, runtime.Number(10)), "10")

	if err := h.callErr(t, "Arr", "filter", nums(1), toStr); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError for non-bool filter result, got %v", err)
	}
	if err := h.callErr(t, "Arr", "reduce", nums(), maxFn); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError for empty reduce, got %v", err)
	}
	if err := h.callErr(t, "Arr", "map", nums(1), runtime.Number(1)); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError for non-callable, got %v", err)
	}
}

func TestObjectBuiltins(t *testing.T) {
	h := newHarness()
	obj := runtime.NewObject()
	obj.Set("a", runtime.Number(1))
	obj.Set("b", runtime.Number(2))
	obj.Set("c", runtime.Number(3))

	expectText(t, h.call(t, "Obj", "keys", obj), `["a", "b", "c"]`)
	expectText(t, h.call(t, "Obj", "vals", obj), "[1, 2, 3]")
	expectText(t, h.call(t, "Obj", "kvs", obj), `[["a", 1], ["b", 2], ["c", 3]]`)
	expectText(t, h.call(t, "Obj", "has", obj, runtime.String("b")), "yes")
	expectText(t, h.call(t, "Obj", "get", obj, runtime.String("z")), "_")
	h.call(t, "Obj", "set", obj, runtime.String("z"), runtime.String("ai"))
	expectText(t, obj, `{a: 1, b: 2, c: 3, z: "ai"}`)
}

func TestStringGraphemes(t *testing.T) {
	h := newHarness()
	emoji := runtime.String("👍🏽🍆🌮")
	expectText(t, h.call(t, "Str", "len", emoji), "3")
	expectText(t, h.call(t, "Str", "pick", emoji, runtime.Number(2)), `"🍆"`)
	expectText(t, h.call(t, "Str", "split", emoji), `["👍🏽", "🍆", "🌮"]`)
	if err := h.callErr(t, "Str", "pick", emoji, runtime.Number(4)); !errors.Is(err, runtime.ErrIndexError) {
		t.Fatalf("expected IndexError, got %v", err)
	}

	expectText(t, h.call(t, "Str", "incl", runtime.String("kawaii"), runtime.String("ai")), "yes")
	expectText(t, h.call(t, "Str", "to_num", runtime.String("4.5")), "4.5")
	expectText(t, h.call(t, "Str", "to_num", runtime.String("ai")), "_")
	expectText(t, h.member(t, "Str", "lf"), `"\n"`)
}

func TestNumberAndMath(t *testing.T) {
	h := newHarness()
	expectText(t, h.call(t, "Num", "to_str", runtime.Number(1.5)), `"1.5"`)
	expectText(t, h.call(t, "Math", "floor", runtime.Number(1.7)), "1")
	expectText(t, h.call(t, "Math", "ceil", runtime.Number(1.2)), "2")
	expectText(t, h.call(t, "Math", "round", runtime.Number(2.5)), "3")
	expectText(t, h.call(t, "Math", "round", runtime.Number(-2.5)), "-2")
	expectText(t, h.call(t, "Math", "abs", runtime.Number(-3)), "3")
	expectText(t, h.call(t, "Math", "pow", runtime.Number(2), runtime.Number(10)), "1024")
	expectText(t, h.call(t, "Math", "sqrt", runtime.Number(9)), "3")
	expectText(t, h.call(t, "Math", "min", runtime.Number(4), runtime.Number(-1)), "-1")

	for n := 0; n < 50; n++ {
		val := h.call(t, "Math", "rnd", runtime.Number(1), runtime.Number(3)).(runtime.NumberValue).Val
		if val < 1 || val > 3 || val != float64(int(val)) {
			t.Fatalf("rnd(1, 3) produced %v", val)
		}
	}
	f := h.call(t, "Math", "rnd").(runtime.NumberValue).Val
	if f < 0 || f >= 1 {
		t.Fatalf("rnd() produced %v", f)
	}
	if err := h.callErr(t, "Math", "rnd", runtime.Number(3), runtime.Number(1)); !errors.Is(err, runtime.ErrRangeError) {
		t.Fatalf("expected RangeError, got %v", err)
	}
}

func TestIntegerArgumentsOutsideSafeRange(t *testing.T) {
	h := newHarness()
	for _, bounds := range [][2]float64{{0, 9223372036854775807}, {-5e18, 5e18}, {0, 1e300}} {
		err := h.callErr(t, "Math", "rnd", runtime.Number(bounds[0]), runtime.Number(bounds[1]))
		if !errors.Is(err, runtime.ErrRangeError) {
			t.Fatalf("rnd(%v, %v): expected RangeError, got %v", bounds[0], bounds[1], err)
		}
	}
	for n := 0; n < 20; n++ {
		val := h.call(t, "Math", "rnd", runtime.Number(-(1 << 53)), runtime.Number(1<<53)).(runtime.NumberValue).Val
		if val < -(1<<53) || val > 1<<53 || val != float64(int64(val)) {
			t.Fatalf("rnd(-2^53, 2^53) produced %v", val)
		}
	}
	if err := h.callErr(t, "Arr", "slice", nums(1, 2, 3), runtime.Number(1e19)); !errors.Is(err, runtime.ErrRangeError) {
		t.Fatalf("expected RangeError, got %v", err)
	}
}

func TestJSONRoundTripKeepsKeyOrder(t *testing.T) {
	h := newHarness()
	parsed := h.call(t, "Json", "parse", runtime.String(`{"z": [1, "a", true, null], "a": {"b": 2.5}}`))
	expectText(t, parsed, `{z: [1, "a", yes, _], a: {b: 2.5}}`)
	expectText(t, h.call(t, "Json", "stringify", parsed), `"{\"z\":[1,\"a\",true,null],\"a\":{\"b\":2.5}}"`)
	expectText(t, h.call(t, "Json", "stringify", h.member(t, "Core", "type")), `"null"`)

	shared := nums(1)
	expectText(t, h.call(t, "Json", "stringify", runtime.NewArray([]runtime.Value{shared, shared})), `"[[1],[1]]"`)

	cyclic := runtime.NewArray(nil)
	cyclic.Elements = append(cyclic.Elements, cyclic)
	if err := h.callErr(t, "Json", "stringify", cyclic); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError for a cyclic array, got %v", err)
	}
	obj := runtime.NewObject()
	obj.Set("self", obj)
	if err := h.callErr(t, "Json", "stringify", obj); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError for a cyclic object, got %v", err)
	}

	if err := h.callErr(t, "Json", "parse", runtime.String(`{"a": 1} 2`)); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError, got %v", err)
	}
	if err := h.callErr(t, "Json", "parse", runtime.String(`[1,`)); !errors.Is(err, runtime.ErrTypeError) {
		t.Fatalf("expected TypeError, got %v", err)
	}
}
