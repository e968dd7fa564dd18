package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ToString renders the canonical text of a value, as used by templates and
// string concatenation in the standard library.
func ToString(val Value) string {
	return render(val, false, nil)
}

// Inspect is like ToString but quotes strings, for REPL and diagnostic output.
func Inspect(val Value) string {
	return render(val, true, nil)
}

// FormatNumber prints integers without a fraction and everything else in the
// shortest form that round-trips.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// render tracks the containers currently being rendered in active, so a
// container that holds itself prints as [...] or {...}.
func render(val Value, quote bool, active map[Value]struct{}) string {
	switch v := val.(type) {
	case nil:
		return "_"
	case NumberValue:
		return FormatNumber(v.Val)
	case StringValue:
		if quote {
			return strconv.Quote(v.Val)
		}
		return v.Val
	case BoolValue:
		if v.Val {
			return "yes"
		}
		return "no"
	case NullValue:
		return "_"
	case *ArrayValue:
		if _, cyclic := active[v]; cyclic {
			return "[...]"
		}
		active = enter(active, v)
		defer delete(active, v)
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			parts = append(parts, render(el, true, active))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *ObjectValue:
		if _, cyclic := active[v]; cyclic {
			return "{...}"
		}
		active = enter(active, v)
		defer delete(active, v)
		parts := make([]string, 0, v.Len())
		for _, key := range v.keys {
			parts = append(parts, key+": "+render(v.fields[key], true, active))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *FunctionValue:
		if v.Name != "" {
			return "@" + v.Name + "(" + paramList(v) + ") { ... }"
		}
		return "@(" + paramList(v) + ") { ... }"
	case *NativeFunctionValue:
		return "@" + v.Name + "(...) { native }"
	default:
		return "[" + val.Kind().String() + "]"
	}
}

func paramList(fn *FunctionValue) string {
	names := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		if p != nil {
			names = append(names, p.Name)
		}
	}
	return strings.Join(names, ", ")
}

func enter(active map[Value]struct{}, v Value) map[Value]struct{} {
	if active == nil {
		active = make(map[Value]struct{})
	}
	active[v] = struct{}{}
	return active
}
