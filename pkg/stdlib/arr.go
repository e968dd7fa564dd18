package stdlib

import (
	"strings"

	"aiscript/interpreter-go/pkg/runtime"
)

func registerArrayBuiltins(ns *runtime.Namespace) {
	define(ns, "len", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:len", args, 0)
		if err != nil {
			return nil, err
		}
		return runtime.Number(float64(len(arr.Elements))), nil
	})

	// push and unshift mutate the array and hand it back.
	define(ns, "push", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:push", args, 0)
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, arg(args, 1))
		return arr, nil
	})

	define(ns, "unshift", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:unshift", args, 0)
		if err != nil {
			return nil, err
		}
		arr.Elements = append([]runtime.Value{arg(args, 1)}, arr.Elements...)
		return arr, nil
	})

	define(ns, "pop", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:pop", args, 0)
		if err != nil {
			return nil, err
		}
		if len(arr.Elements) == 0 {
			return runtime.Null, nil
		}
		last := arr.Elements[len(arr.Elements)-1]
		arr.Elements = arr.Elements[:len(arr.Elements)-1]
		return last, nil
	})

	define(ns, "shift", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:shift", args, 0)
		if err != nil {
			return nil, err
		}
		if len(arr.Elements) == 0 {
			return runtime.Null, nil
		}
		first := arr.Elements[0]
		arr.Elements = append([]runtime.Value{}, arr.Elements[1:]...)
		return first, nil
	})

	define(ns, "join", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:join", args, 0)
		if err != nil {
			return nil, err
		}
		sep := ""
		if len(args) > 1 {
			if sep, err = stringArg("Arr:join", args, 1); err != nil {
				return nil, err
			}
		}
		parts := make([]string, 0, len(arr.Elements))
		for _, el := range arr.Elements {
			s, ok := el.(runtime.StringValue)
			if !ok {
				return nil, runtime.Errorf(runtime.TypeError, "Arr:join: elements must be str, got %s", runtime.TypeName(el))
			}
			parts = append(parts, s.Val)
		}
		return runtime.String(strings.Join(parts, sep)), nil
	})

	define(ns, "map", func(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:map", args, 0)
		if err != nil {
			return nil, err
		}
		fn, err := callableArg("Arr:map", args, 1)
		if err != nil {
			return nil, err
		}
		items := snapshot(arr)
		out := make([]runtime.Value, 0, len(items))
		for _, item := range items {
			val, err := ctx.Call(fn, []runtime.Value{item})
			if err != nil {
				return nil, err
			}
			out = append(out, val)
		}
		return runtime.NewArray(out), nil
	})

	define(ns, "filter", func(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:filter", args, 0)
		if err != nil {
			return nil, err
		}
		fn, err := callableArg("Arr:filter", args, 1)
		if err != nil {
			return nil, err
		}
		out := []runtime.Value{}
		for _, item := range snapshot(arr) {
			val, err := ctx.Call(fn, []runtime.Value{item})
			if err != nil {
				return nil, err
			}
			keep, ok := val.(runtime.BoolValue)
			if !ok {
				return nil, runtime.Errorf(runtime.TypeError, "Arr:filter: callback must return bool, got %s", runtime.TypeName(val))
			}
			if keep.Val {
				out = append(out, item)
			}
		}
		return runtime.NewArray(out), nil
	})

	// reduce seeds the accumulator with the first element when no initial
	// value is passed.
	define(ns, "reduce", func(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:reduce", args, 0)
		if err != nil {
			return nil, err
		}
		fn, err := callableArg("Arr:reduce", args, 1)
		if err != nil {
			return nil, err
		}
		items := snapshot(arr)
		var acc runtime.Value
		if len(args) > 2 {
			acc = args[2]
		} else {
			if len(items) == 0 {
				return nil, runtime.Errorf(runtime.TypeError, "Arr:reduce: empty array with no initial value")
			}
			acc, items = items[0], items[1:]
		}
		for _, item := range items {
			if acc, err = ctx.Call(fn, []runtime.Value{acc, item}); err != nil {
				return nil, err
			}
		}
		return acc, nil
	})

	define(ns, "concat", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		left, err := arrayArg("Arr:concat", args, 0)
		if err != nil {
			return nil, err
		}
		right, err := arrayArg("Arr:concat", args, 1)
		if err != nil {
			return nil, err
		}
		out := make([]runtime.Value, 0, len(left.Elements)+len(right.Elements))
		out = append(out, left.Elements...)
		out = append(out, right.Elements...)
		return runtime.NewArray(out), nil
	})

	define(ns, "reverse", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:reverse", args, 0)
		if err != nil {
			return nil, err
		}
		for l, r := 0, len(arr.Elements)-1; l < r; l, r = l+1, r-1 {
			arr.Elements[l], arr.Elements[r] = arr.Elements[r], arr.Elements[l]
		}
		return arr, nil
	})

	define(ns, "incl", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:incl", args, 0)
		if err != nil {
			return nil, err
		}
		needle := arg(args, 1)
		for _, el := range arr.Elements {
			if runtime.Equal(el, needle) {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	})

	// slice(arr, from, to?) copies positions from..to inclusive, 1-based and
	// clamped to the array bounds.
	define(ns, "slice", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		arr, err := arrayArg("Arr:slice", args, 0)
		if err != nil {
			return nil, err
		}
		from, err := intArg("Arr:slice", args, 1)
		if err != nil {
			return nil, err
		}
		to := len(arr.Elements)
		if len(args) > 2 {
			if to, err = intArg("Arr:slice", args, 2); err != nil {
				return nil, err
			}
		}
		from = max(from, 1)
		to = min(to, len(arr.Elements))
		if from > to {
			return runtime.NewArray(nil), nil
		}
		return runtime.NewArray(append([]runtime.Value{}, arr.Elements[from-1:to]...)), nil
	})
}

// snapshot copies the elements so callbacks that mutate the array do not
// change the iteration.
func snapshot(arr *runtime.ArrayValue) []runtime.Value {
	return append([]runtime.Value(nil), arr.Elements...)
}
