package stdlib

import (
	"strconv"
	"strings"

	"github.com/rivo/uniseg"

	"aiscript/interpreter-go/pkg/runtime"
)

// graphemes splits s into user-perceived characters.
func graphemes(s string) []string {
	out := make([]string, 0, len(s))
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

func registerStringBuiltins(ns *runtime.Namespace) {
	constant(ns, "lf", runtime.String("\n"))

	define(ns, "len", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		s, err := stringArg("Str:len", args, 0)
		if err != nil {
			return nil, err
		}
		return runtime.Number(float64(uniseg.GraphemeClusterCount(s))), nil
	})

	define(ns, "pick", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		s, err := stringArg("Str:pick", args, 0)
		if err != nil {
			return nil, err
		}
		idx, err := intArg("Str:pick", args, 1)
		if err != nil {
			return nil, err
		}
		chars := graphemes(s)
		if idx < 1 || idx > len(chars) {
			return nil, runtime.Errorf(runtime.IndexError, "Str:pick: index %d out of range [1, %d]", idx, len(chars))
		}
		return runtime.String(chars[idx-1]), nil
	})

	define(ns, "split", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		s, err := stringArg("Str:split", args, 0)
		if err != nil {
			return nil, err
		}
		chars := graphemes(s)
		out := make([]runtime.Value, 0, len(chars))
		for _, c := range chars {
			out = append(out, runtime.String(c))
		}
		return runtime.NewArray(out), nil
	})

	define(ns, "incl", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		s, err := stringArg("Str:incl", args, 0)
		if err != nil {
			return nil, err
		}
		sub, err := stringArg("Str:incl", args, 1)
		if err != nil {
			return nil, err
		}
		return runtime.Bool(strings.Contains(s, sub)), nil
	})

	// to_num yields null for text that is not a number.
	define(ns, "to_num", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		s, err := stringArg("Str:to_num", args, 0)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return runtime.Null, nil
		}
		return runtime.Number(f), nil
	})
}
