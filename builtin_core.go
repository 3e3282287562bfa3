// builtin_core.go
//
// The global built-in functions: print, len, str, int, float, type, range,
// append. Registered into the global environment as closures over the
// interpreter so that print honors output capture.
package boa

import (
	"fmt"
	"strconv"
	"strings"
)

func registerCoreBuiltins(ip *Interpreter) {
	ip.Global.Define("print", BuiltinVal("print", ip.printImpl))

	ip.Global.Define("len", BuiltinVal("len", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return None, fmt.Errorf("len: expected 1 argument")
		}
		a := args[0]
		switch a.Tag {
		case VTStr:
			return Int(int64(len(a.Data.(string)))), nil
		case VTList:
			return Int(int64(len(a.Data.(*ListObject).Elems))), nil
		case VTDict:
			return Int(int64(len(a.Data.(*DictObject).Entries))), nil
		}
		return None, fmt.Errorf("len: unsupported type %s", a.Tag.TypeName())
	}))

	ip.Global.Define("str", BuiltinVal("str", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return None, fmt.Errorf("str: expected 1 argument")
		}
		return Str(FormatValue(args[0])), nil
	}))

	ip.Global.Define("int", BuiltinVal("int", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return None, fmt.Errorf("int: expected 1 argument")
		}
		a := args[0]
		switch a.Tag {
		case VTInt:
			return a, nil
		case VTFloat:
			// Truncates toward zero.
			return Int(int64(a.Data.(float64))), nil
		case VTStr:
			s := a.Data.(string)
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return None, fmt.Errorf("int: cannot convert '%s' to int", s)
			}
			return Int(n), nil
		case VTBool:
			if a.Data.(bool) {
				return Int(1), nil
			}
			return Int(0), nil
		}
		return None, fmt.Errorf("int: unsupported type %s", a.Tag.TypeName())
	}))

	ip.Global.Define("float", BuiltinVal("float", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return None, fmt.Errorf("float: expected 1 argument")
		}
		a := args[0]
		switch a.Tag {
		case VTFloat:
			return a, nil
		case VTInt:
			return Float(float64(a.Data.(int64))), nil
		case VTStr:
			s := a.Data.(string)
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return None, fmt.Errorf("float: cannot convert '%s' to float", s)
			}
			return Float(f), nil
		case VTBool:
			if a.Data.(bool) {
				return Float(1.0), nil
			}
			return Float(0.0), nil
		}
		return None, fmt.Errorf("float: unsupported type %s", a.Tag.TypeName())
	}))

	ip.Global.Define("type", BuiltinVal("type", func(args []Value) (Value, error) {
		if len(args) != 1 {
			return None, fmt.Errorf("type: expected 1 argument")
		}
		return Str(args[0].Tag.TypeName()), nil
	}))

	ip.Global.Define("range", BuiltinVal("range", func(args []Value) (Value, error) {
		var start, stop int64
		step := int64(1)
		num := func(v Value) (int64, error) {
			f, err := asNumber(v)
			if err != nil {
				return 0, err
			}
			return int64(f), nil
		}
		var err error
		switch len(args) {
		case 1:
			stop, err = num(args[0])
		case 2:
			if start, err = num(args[0]); err == nil {
				stop, err = num(args[1])
			}
		case 3:
			if start, err = num(args[0]); err == nil {
				if stop, err = num(args[1]); err == nil {
					step, err = num(args[2])
				}
			}
		default:
			return None, fmt.Errorf("range: expected 1-3 arguments")
		}
		if err != nil {
			return None, err
		}
		if step == 0 {
			return None, fmt.Errorf("range: step cannot be zero")
		}
		var out []Value
		if step > 0 {
			for i := start; i < stop; i += step {
				out = append(out, Int(i))
			}
		} else {
			for i := start; i > stop; i += step {
				out = append(out, Int(i))
			}
		}
		return List(out), nil
	}))

	ip.Global.Define("append", BuiltinVal("append", func(args []Value) (Value, error) {
		if len(args) != 2 {
			return None, fmt.Errorf("append: expected 2 arguments (list, value)")
		}
		if args[0].Tag != VTList {
			return None, fmt.Errorf("append: first argument must be a list")
		}
		lo := args[0].Data.(*ListObject)
		lo.Elems = append(lo.Elems, args[1])
		return None, nil
	}))
}

// printImpl writes the arguments' string forms separated by single spaces,
// then a newline. Shared by the global print and io.print/io.println.
func (ip *Interpreter) printImpl(args []Value) (Value, error) {
	var b strings.Builder
	for i, a := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(FormatValue(a))
	}
	b.WriteByte('\n')
	ip.printText(b.String())
	return None, nil
}
