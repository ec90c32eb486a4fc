// Package builtin registers the native procedures and constants every
// freshly constructed evaluator starts with: arithmetic, chained
// comparison, boolean negation, and the two output primitives.
package builtin

import (
	"fmt"

	"github.com/sourcecrate/tinyeval/internal/value"
)

// Register installs every built-in constant and procedure into global.
func Register(global *value.Frame) {
	global.Define("#!unspecific", value.NewNil())
	global.Define("#t", value.NewBoolean(true))
	global.Define("#f", value.NewBoolean(false))

	global.Define("+", value.NewNative(add, nil))
	global.Define("-", value.NewNative(sub, nil))
	global.Define("*", value.NewNative(mul, nil))
	global.Define("/", value.NewNative(div, nil))

	global.Define("=", value.NewNative(cmp(func(a, b float64) bool { return a == b }), nil))
	global.Define("<", value.NewNative(cmp(func(a, b float64) bool { return a < b }), nil))
	global.Define("<=", value.NewNative(cmp(func(a, b float64) bool { return a <= b }), nil))
	global.Define(">", value.NewNative(cmp(func(a, b float64) bool { return a > b }), nil))
	global.Define(">=", value.NewNative(cmp(func(a, b float64) bool { return a >= b }), nil))

	global.Define("not", value.NewNative(not, nil))
	global.Define("display", value.NewNative(display, nil))
	global.Define("newline", value.NewNative(newline, nil))
}

// numeric reads v as a float64 for arithmetic/comparison purposes, and
// reports whether v was itself a Number (as opposed to an Integer), so
// callers can apply the spec's promotion rule.
func numeric(v *value.Value) (f float64, isNumber bool, ok bool) {
	switch v.Kind() {
	case value.Integer:
		return float64(v.AsInteger()), false, true
	case value.Number:
		return v.AsNumber(), true, true
	default:
		return 0, false, false
	}
}

func add(_ value.Host, _ any, args []*value.Value) (*value.Value, error) {
	if len(args) == 0 {
		return value.NewInteger(0), nil
	}
	var sum float64
	anyNumber := false
	for _, a := range args {
		f, isNum, ok := numeric(a)
		if !ok {
			return nil, fmt.Errorf("operand is not a number")
		}
		anyNumber = anyNumber || isNum
		sum += f
	}
	if anyNumber {
		return value.NewNumber(sum), nil
	}
	return value.NewInteger(int64(sum)), nil
}

func mul(_ value.Host, _ any, args []*value.Value) (*value.Value, error) {
	if len(args) == 0 {
		return value.NewInteger(1), nil
	}
	product := 1.0
	anyNumber := false
	for _, a := range args {
		f, isNum, ok := numeric(a)
		if !ok {
			return nil, fmt.Errorf("operand is not a number")
		}
		anyNumber = anyNumber || isNum
		product *= f
	}
	if anyNumber {
		return value.NewNumber(product), nil
	}
	return value.NewInteger(int64(product)), nil
}

func sub(_ value.Host, _ any, args []*value.Value) (*value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("minus|divides: require at least 1 operand")
	}
	first, isNum, ok := numeric(args[0])
	if !ok {
		return nil, fmt.Errorf("operand is not a number")
	}
	anyNumber := isNum

	if len(args) == 1 {
		if anyNumber {
			return value.NewNumber(-first), nil
		}
		return value.NewInteger(-int64(first)), nil
	}

	result := first
	for _, a := range args[1:] {
		f, isNum, ok := numeric(a)
		if !ok {
			return nil, fmt.Errorf("operand is not a number")
		}
		anyNumber = anyNumber || isNum
		result -= f
	}
	if anyNumber {
		return value.NewNumber(result), nil
	}
	return value.NewInteger(int64(result)), nil
}

func div(_ value.Host, _ any, args []*value.Value) (*value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("minus|divides: require at least 1 operand")
	}
	first, isNum, ok := numeric(args[0])
	if !ok {
		return nil, fmt.Errorf("operand is not a number")
	}
	anyNumber := isNum

	if len(args) == 1 {
		return value.NewNumber(1 / first), nil
	}

	result := first
	for _, a := range args[1:] {
		f, isNum, ok := numeric(a)
		if !ok {
			return nil, fmt.Errorf("operand is not a number")
		}
		anyNumber = anyNumber || isNum
		result /= f
	}
	if anyNumber {
		return value.NewNumber(result), nil
	}
	return value.NewInteger(int64(result)), nil
}

// cmp builds a chained comparison native: operands are compared
// pairwise left-to-right with rel, and the result is true iff every
// adjacent pair satisfies it.
func cmp(rel func(a, b float64) bool) value.NativeFunc {
	return func(_ value.Host, _ any, args []*value.Value) (*value.Value, error) {
		if len(args) <= 1 {
			return value.NewBoolean(true), nil
		}
		prev, _, ok := numeric(args[0])
		if !ok {
			return nil, fmt.Errorf("operand is not a number")
		}
		for _, a := range args[1:] {
			f, _, ok := numeric(a)
			if !ok {
				return nil, fmt.Errorf("operand is not a number")
			}
			if !rel(prev, f) {
				return value.NewBoolean(false), nil
			}
			prev = f
		}
		return value.NewBoolean(true), nil
	}
}

func not(_ value.Host, _ any, args []*value.Value) (*value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("not: requires exactly 1 operand")
	}
	return value.NewBoolean(args[0].Kind() == value.Boolean && !args[0].AsBoolean()), nil
}

func display(host value.Host, _ any, args []*value.Value) (*value.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("display: requires 1 operand")
	}
	fmt.Fprint(host.Output(), args[0].Display())
	return value.NewNil(), nil
}

func newline(host value.Host, _ any, args []*value.Value) (*value.Value, error) {
	fmt.Fprintln(host.Output())
	return value.NewNil(), nil
}
