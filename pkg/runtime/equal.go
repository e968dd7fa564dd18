package runtime

// Equal compares two values. Both must carry the same Kind; scalars compare by
// value, arrays, objects and functions by identity.
func Equal(left, right Value) bool {
	if left == nil || right == nil {
		return left == nil && right == nil
	}
	if left.Kind() != right.Kind() {
		return false
	}
	switch lv := left.(type) {
	case NumberValue:
		return lv.Val == right.(NumberValue).Val
	case StringValue:
		return lv.Val == right.(StringValue).Val
	case BoolValue:
		return lv.Val == right.(BoolValue).Val
	case NullValue:
		return true
	case *ArrayValue:
		return lv == right.(*ArrayValue)
	case *ObjectValue:
		return lv == right.(*ObjectValue)
	case *FunctionValue:
		return lv == right.(*FunctionValue)
	case *NativeFunctionValue:
		return lv == right.(*NativeFunctionValue)
	}
	return false
}
