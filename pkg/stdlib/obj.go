package stdlib

import "aiscript/interpreter-go/pkg/runtime"

func registerObjectBuiltins(ns *runtime.Namespace) {
	define(ns, "keys", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		obj, err := objectArg("Obj:keys", args, 0)
		if err != nil {
			return nil, err
		}
		keys := obj.Keys()
		out := make([]runtime.Value, 0, len(keys))
		for _, k := range keys {
			out = append(out, runtime.String(k))
		}
		return runtime.NewArray(out), nil
	})

	define(ns, "vals", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		obj, err := objectArg("Obj:vals", args, 0)
		if err != nil {
			return nil, err
		}
		keys := obj.Keys()
		out := make([]runtime.Value, 0, len(keys))
		for _, k := range keys {
			v, _ := obj.Get(k)
			out = append(out, v)
		}
		return runtime.NewArray(out), nil
	})

	define(ns, "kvs", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		obj, err := objectArg("Obj:kvs", args, 0)
		if err != nil {
			return nil, err
		}
		keys := obj.Keys()
		out := make([]runtime.Value, 0, len(keys))
		for _, k := range keys {
			v, _ := obj.Get(k)
			out = append(out, runtime.NewArray([]runtime.Value{runtime.String(k), v}))
		}
		return runtime.NewArray(out), nil
	})

	define(ns, "has", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		obj, err := objectArg("Obj:has", args, 0)
		if err != nil {
			return nil, err
		}
		key, err := stringArg("Obj:has", args, 1)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(obj.Has(key)), nil
	})

	define(ns, "get", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		obj, err := objectArg("Obj:get", args, 0)
		if err != nil {
			return nil, err
		}
		key, err := stringArg("Obj:get", args, 1)
		if err != nil {
			return nil, err
		}
		if v, ok := obj.Get(key); ok {
			return v, nil
		}
		return runtime.Null, nil
	})

	define(ns, "set", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		obj, err := objectArg("Obj:set", args, 0)
		if err != nil {
			return nil, err
		}
		key, err := stringArg("Obj:set", args, 1)
		if err != nil {
			return nil, err
		}
		obj.Set(key, arg(args, 2))
		return runtime.Null, nil
	})
}
