package stdlib

import (
	"math"
	"math/rand/v2"

	"aiscript/interpreter-go/pkg/runtime"
)

func registerNumberBuiltins(ns *runtime.Namespace) {
	define(ns, "to_str", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		n, err := numberArg("Num:to_str", args, 0)
		if err != nil {
			return nil, err
		}
		return runtime.String(runtime.FormatNumber(n)), nil
	})
}

func unaryMath(ns *runtime.Namespace, member string, op func(float64) float64) {
	name := "Math:" + member
	define(ns, member, func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		n, err := numberArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		return runtime.Number(op(n)), nil
	})
}

func binaryMath(ns *runtime.Namespace, member string, op func(float64, float64) float64) {
	name := "Math:" + member
	define(ns, member, func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		a, err := numberArg(name, args, 0)
		if err != nil {
			return nil, err
		}
		b, err := numberArg(name, args, 1)
		if err != nil {
			return nil, err
		}
		return runtime.Number(op(a, b)), nil
	})
}

func registerMathBuiltins(ns *runtime.Namespace) {
	constant(ns, "PI", runtime.Number(math.Pi))
	constant(ns, "E", runtime.Number(math.E))

	unaryMath(ns, "floor", math.Floor)
	unaryMath(ns, "ceil", math.Ceil)
	// Halves round towards positive infinity.
	unaryMath(ns, "round", func(f float64) float64 { return math.Floor(f + 0.5) })
	unaryMath(ns, "abs", math.Abs)
	unaryMath(ns, "sqrt", math.Sqrt)
	binaryMath(ns, "min", math.Min)
	binaryMath(ns, "max", math.Max)
	binaryMath(ns, "pow", math.Pow)

	// rnd() is a float in [0, 1); rnd(min, max) an integer in [min, max].
	define(ns, "rnd", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		if len(args) < 2 {
			return runtime.Number(rand.Float64()), nil
		}
		lo, err := intArg("Math:rnd", args, 0)
		if err != nil {
			return nil, err
		}
		hi, err := intArg("Math:rnd", args, 1)
		if err != nil {
			return nil, err
		}
		if hi < lo {
			return nil, runtime.Errorf(runtime.RangeError, "Math:rnd: max %d is less than min %d", hi, lo)
		}
		width := int64(hi) - int64(lo) + 1
		return runtime.Number(float64(int64(lo) + rand.Int64N(width))), nil
	})
}
