package stdlib

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"aiscript/interpreter-go/pkg/runtime"
)

func registerJSONBuiltins(ns *runtime.Namespace) {
	// stringify renders functions and non-finite numbers as null.
	define(ns, "stringify", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		var buf bytes.Buffer
		if err := writeJSON(&buf, arg(args, 0), nil); err != nil {
			return nil, err
		}
		return runtime.String(buf.String()), nil
	})

	define(ns, "parse", func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
		s, err := stringArg("Json:parse", args, 0)
		if err != nil {
			return nil, err
		}
		val, err := ParseJSON([]byte(s))
		if err != nil {
			return nil, runtime.Errorf(runtime.TypeError, "Json:parse: %v", err)
		}
		return val, nil
	})
}

// writeJSON encodes val. active holds the containers on the current path;
// meeting one again is a cycle, which JSON cannot represent.
func writeJSON(buf *bytes.Buffer, val runtime.Value, active map[runtime.Value]struct{}) error {
	switch v := val.(type) {
	case runtime.NumberValue:
		if math.IsNaN(v.Val) || math.IsInf(v.Val, 0) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(strconv.FormatFloat(v.Val, 'f', -1, 64))
	case runtime.StringValue:
		encoded, _ := json.Marshal(v.Val)
		buf.Write(encoded)
	case runtime.BoolValue:
		buf.WriteString(strconv.FormatBool(v.Val))
	case *runtime.ArrayValue:
		active, err := enterJSON(active, v)
		if err != nil {
			return err
		}
		defer delete(active, v)
		buf.WriteByte('[')
		for idx, el := range v.Elements {
			if idx > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, el, active); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *runtime.ObjectValue:
		active, err := enterJSON(active, v)
		if err != nil {
			return err
		}
		defer delete(active, v)
		buf.WriteByte('{')
		for idx, key := range v.Keys() {
			if idx > 0 {
				buf.WriteByte(',')
			}
			encoded, _ := json.Marshal(key)
			buf.Write(encoded)
			buf.WriteByte(':')
			field, _ := v.Get(key)
			if err := writeJSON(buf, field, active); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}

func enterJSON(active map[runtime.Value]struct{}, v runtime.Value) (map[runtime.Value]struct{}, error) {
	if _, cyclic := active[v]; cyclic {
		return nil, runtime.Errorf(runtime.TypeError, "Json:stringify: cyclic structure")
	}
	if active == nil {
		active = make(map[runtime.Value]struct{})
	}
	active[v] = struct{}{}
	return active, nil
}

// ParseJSON converts a JSON document into runtime values. Object keys keep
// their document order.
func ParseJSON(data []byte) (runtime.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	val, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return val, nil
}

func decodeJSONValue(dec *json.Decoder) (runtime.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case nil:
		return runtime.Null, nil
	case bool:
		return runtime.Bool(t), nil
	case string:
		return runtime.String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return runtime.Number(f), nil
	case json.Delim:
		switch t {
		case '[':
			out := []runtime.Value{}
			for dec.More() {
				el, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				out = append(out, el)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return runtime.NewArray(out), nil
		case '{':
			obj := runtime.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string")
				}
				field, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, field)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
