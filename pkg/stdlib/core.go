package stdlib

import "aiscript/interpreter-go/pkg/runtime"

func registerCoreBuiltins(ns *runtime.Namespace) {
	constant(ns, "v", runtime.String(Version))
	constant(ns, "ai", runtime.String("kawaii"))

	// type(v) returns one of num, str, bool, null, arr, obj, fn.
	define(ns, "type", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		return runtime.String(runtime.TypeName(arg(args, 0))), nil
	})

	define(ns, "to_str", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		return runtime.String(runtime.ToString(arg(args, 0))), nil
	})

	define(ns, "not", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		b, err := boolArg("Core:not", args, 0)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(!b), nil
	})

	define(ns, "eq", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		return runtime.Bool(runtime.Equal(arg(args, 0), arg(args, 1))), nil
	})
}
