// interpreter_ops.go — operator semantics over runtime values.
//
// Truthiness, equality, ordering, the arithmetic table, indexing and member
// access. Everything here is position-free; the evaluator anchors returned
// errors to the offending node.
package boa

import (
	"fmt"
	"math"
	"strings"
)

// truthy reports the boolean interpretation of a value. None, false, zero,
// the empty string, the empty list and the empty dict are false.
func truthy(v Value) bool {
	switch v.Tag {
	case VTNone:
		return false
	case VTBool:
		return v.Data.(bool)
	case VTInt:
		return v.Data.(int64) != 0
	case VTFloat:
		return v.Data.(float64) != 0.0
	case VTStr:
		return len(v.Data.(string)) != 0
	case VTList:
		return len(v.Data.(*ListObject).Elems) != 0
	case VTDict:
		return len(v.Data.(*DictObject).Entries) != 0
	}
	return true
}

// asNumber widens a numeric value to float64.
func asNumber(v Value) (float64, error) {
	switch v.Tag {
	case VTInt:
		return float64(v.Data.(int64)), nil
	case VTFloat:
		return v.Data.(float64), nil
	}
	return 0, fmt.Errorf("Expected numeric value, got %s", v.Tag.TypeName())
}

func isNumeric(v Value) bool { return v.Tag == VTInt || v.Tag == VTFloat }

// valuesEqual implements ==. Numbers compare by value after widening,
// strings byte-wise; functions, builtins and modules are equal only when
// they are the same object. Lists and dicts never compare equal.
func valuesEqual(a, b Value) bool {
	switch {
	case a.Tag == VTNone && b.Tag == VTNone:
		return true
	case a.Tag == VTBool && b.Tag == VTBool:
		return a.Data.(bool) == b.Data.(bool)
	case isNumeric(a) && isNumeric(b):
		if a.Tag == VTInt && b.Tag == VTInt {
			return a.Data.(int64) == b.Data.(int64)
		}
		av, _ := asNumber(a)
		bv, _ := asNumber(b)
		return av == bv
	case a.Tag == VTStr && b.Tag == VTStr:
		return a.Data.(string) == b.Data.(string)
	case a.Tag == VTFun && b.Tag == VTFun:
		return a.Data.(*Fun) == b.Data.(*Fun)
	case a.Tag == VTBuiltin && b.Tag == VTBuiltin:
		return a.Data.(*Builtin) == b.Data.(*Builtin)
	case a.Tag == VTModule && b.Tag == VTModule:
		return a.Data.(*Module) == b.Data.(*Module)
	}
	return false
}

// compareValues orders two values: negative/zero/positive like strcmp.
// Defined on numeric pairs and string pairs only.
func compareValues(a, b Value) (int, error) {
	if isNumeric(a) && isNumeric(b) {
		av, _ := asNumber(a)
		bv, _ := asNumber(b)
		switch {
		case av < bv:
			return -1, nil
		case av > bv:
			return 1, nil
		}
		return 0, nil
	}
	if a.Tag == VTStr && b.Tag == VTStr {
		return strings.Compare(a.Data.(string), b.Data.(string)), nil
	}
	return 0, fmt.Errorf("Cannot compare %s and %s", a.Tag.TypeName(), b.Tag.TypeName())
}

// binaryOp dispatches a non-short-circuit binary operator.
func binaryOp(op TokenType, left, right Value) (Value, error) {
	switch op {
	case PLUS:
		return addValues(left, right)
	case MINUS:
		return subtractValues(left, right)
	case STAR:
		return multiplyValues(left, right)
	case SLASH:
		return divideValues(left, right)
	case PERCENT:
		return moduloValues(left, right)
	case POW:
		return powerValues(left, right)
	case EQ:
		return Bool(valuesEqual(left, right)), nil
	case NEQ:
		return Bool(!valuesEqual(left, right)), nil
	case LESS, LESS_EQ, GREATER, GREATER_EQ:
		c, err := compareValues(left, right)
		if err != nil {
			return None, err
		}
		switch op {
		case LESS:
			return Bool(c < 0), nil
		case LESS_EQ:
			return Bool(c <= 0), nil
		case GREATER:
			return Bool(c > 0), nil
		default:
			return Bool(c >= 0), nil
		}
	}
	return None, fmt.Errorf("Unknown binary operator")
}

func addValues(left, right Value) (Value, error) {
	if left.Tag == VTStr && right.Tag == VTStr {
		return Str(left.Data.(string) + right.Data.(string)), nil
	}
	if left.Tag == VTList && right.Tag == VTList {
		la := left.Data.(*ListObject).Elems
		ra := right.Data.(*ListObject).Elems
		out := make([]Value, 0, len(la)+len(ra))
		out = append(out, la...)
		out = append(out, ra...)
		return List(out), nil
	}
	if left.Tag == VTInt && right.Tag == VTInt {
		return Int(left.Data.(int64) + right.Data.(int64)), nil
	}
	if isNumeric(left) && isNumeric(right) {
		lv, _ := asNumber(left)
		rv, _ := asNumber(right)
		return Float(lv + rv), nil
	}
	return None, fmt.Errorf("Cannot add %s and %s", left.Tag.TypeName(), right.Tag.TypeName())
}

func subtractValues(left, right Value) (Value, error) {
	if left.Tag == VTInt && right.Tag == VTInt {
		return Int(left.Data.(int64) - right.Data.(int64)), nil
	}
	if isNumeric(left) && isNumeric(right) {
		lv, _ := asNumber(left)
		rv, _ := asNumber(right)
		return Float(lv - rv), nil
	}
	return None, fmt.Errorf("Cannot subtract %s and %s", left.Tag.TypeName(), right.Tag.TypeName())
}

func multiplyValues(left, right Value) (Value, error) {
	if left.Tag == VTInt && right.Tag == VTInt {
		return Int(left.Data.(int64) * right.Data.(int64)), nil
	}
	if isNumeric(left) && isNumeric(right) {
		lv, _ := asNumber(left)
		rv, _ := asNumber(right)
		return Float(lv * rv), nil
	}
	// String repetition; a negative count yields the empty string.
	if left.Tag == VTStr && right.Tag == VTInt {
		n := right.Data.(int64)
		if n < 0 {
			n = 0
		}
		return Str(strings.Repeat(left.Data.(string), int(n))), nil
	}
	return None, fmt.Errorf("Cannot multiply %s and %s", left.Tag.TypeName(), right.Tag.TypeName())
}

func divideValues(left, right Value) (Value, error) {
	rv, err := asNumber(right)
	if err != nil {
		return None, err
	}
	if rv == 0.0 {
		return None, fmt.Errorf("Division by zero")
	}
	if left.Tag == VTInt && right.Tag == VTInt {
		// Integer division truncates toward zero.
		return Int(left.Data.(int64) / right.Data.(int64)), nil
	}
	lv, err := asNumber(left)
	if err != nil {
		return None, err
	}
	return Float(lv / rv), nil
}

func moduloValues(left, right Value) (Value, error) {
	if left.Tag == VTInt && right.Tag == VTInt {
		r := right.Data.(int64)
		if r == 0 {
			return None, fmt.Errorf("Modulo by zero")
		}
		// Truncated modulo: the sign follows the dividend.
		return Int(left.Data.(int64) % r), nil
	}
	rv, err := asNumber(right)
	if err != nil {
		return None, err
	}
	if rv == 0.0 {
		return None, fmt.Errorf("Modulo by zero")
	}
	lv, err := asNumber(left)
	if err != nil {
		return None, err
	}
	return Float(math.Mod(lv, rv)), nil
}

func powerValues(left, right Value) (Value, error) {
	if left.Tag == VTInt && right.Tag == VTInt &&
		left.Data.(int64) >= 0 && right.Data.(int64) >= 0 {
		result := int64(1)
		base := left.Data.(int64)
		exp := right.Data.(int64)
		for exp > 0 {
			if exp%2 == 1 {
				result *= base
			}
			base *= base
			exp /= 2
		}
		return Int(result), nil
	}
	if isNumeric(left) && isNumeric(right) {
		lv, _ := asNumber(left)
		rv, _ := asNumber(right)
		return Float(math.Pow(lv, rv)), nil
	}
	return None, fmt.Errorf("Cannot exponentiate %s", left.Tag.TypeName())
}

// ----- indexing -----

// listIndex normalizes an index against a length: negative counts from the
// end.
func listIndex(index Value, length int) (int, error) {
	n, err := asNumber(index)
	if err != nil {
		return 0, err
	}
	i := int(int64(n))
	if i < 0 {
		i += length
	}
	return i, nil
}

func indexValue(obj, index Value) (Value, error) {
	switch obj.Tag {
	case VTList:
		elems := obj.Data.(*ListObject).Elems
		i, err := listIndex(index, len(elems))
		if err != nil {
			return None, err
		}
		if i < 0 || i >= len(elems) {
			return None, fmt.Errorf("Index out of range")
		}
		return elems[i], nil

	case VTStr:
		s := obj.Data.(string)
		i, err := listIndex(index, len(s))
		if err != nil {
			return None, err
		}
		if i < 0 || i >= len(s) {
			return None, fmt.Errorf("String index out of range")
		}
		return Str(s[i : i+1]), nil

	case VTDict:
		for _, e := range obj.Data.(*DictObject).Entries {
			if valuesEqual(e.Key, index) {
				return e.Value, nil
			}
		}
		return None, fmt.Errorf("Key not found in dict")
	}

	return None, fmt.Errorf("Cannot index %s", obj.Tag.TypeName())
}

func setIndexValue(obj, index, val Value) error {
	switch obj.Tag {
	case VTList:
		lo := obj.Data.(*ListObject)
		i, err := listIndex(index, len(lo.Elems))
		if err != nil {
			return err
		}
		if i < 0 || i >= len(lo.Elems) {
			return fmt.Errorf("Index out of range")
		}
		lo.Elems[i] = val
		return nil

	case VTDict:
		do := obj.Data.(*DictObject)
		for j := range do.Entries {
			if valuesEqual(do.Entries[j].Key, index) {
				do.Entries[j].Value = val
				return nil
			}
		}
		do.Entries = append(do.Entries, DictEntry{Key: index, Value: val})
		return nil
	}

	return fmt.Errorf("Cannot index %s", obj.Tag.TypeName())
}

// ----- member access -----

// asciiUpper / asciiLower convert byte-wise; strings are byte sequences, so
// only ASCII letters change case.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

func memberValue(obj Value, name string) (Value, error) {
	switch obj.Tag {
	case VTModule:
		m := obj.Data.(*Module)
		if v, ok := m.Members[name]; ok {
			return v, nil
		}
		return None, fmt.Errorf("Module '%s' has no member '%s'", m.Name, name)

	case VTList:
		lo := obj.Data.(*ListObject)
		switch name {
		case "length":
			return Int(int64(len(lo.Elems))), nil
		case "append":
			// Bound to this list's storage: appends are visible through
			// every alias.
			return BuiltinVal("append", func(args []Value) (Value, error) {
				if len(args) != 1 {
					return None, fmt.Errorf("append: expected 1 argument")
				}
				lo.Elems = append(lo.Elems, args[0])
				return None, nil
			}), nil
		}

	case VTStr:
		s := obj.Data.(string)
		switch name {
		case "length":
			return Int(int64(len(s))), nil
		case "upper":
			return BuiltinVal("upper", func(args []Value) (Value, error) {
				return Str(asciiUpper(s)), nil
			}), nil
		case "lower":
			return BuiltinVal("lower", func(args []Value) (Value, error) {
				return Str(asciiLower(s)), nil
			}), nil
		}
	}

	return None, fmt.Errorf("Cannot access member '%s' on %s", name, obj.Tag.TypeName())
}
