// printer.go — user-facing string forms of runtime values.
package boa

import (
	"strconv"
	"strings"
)

// FormatValue renders a value the way print and str do: strings raw at the
// top level and quoted inside list forms, lists as [a, b], dicts as
// {k: v, …} in insertion order, floats in their shortest round-trippable
// form.
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNone:
		return "none"
	case VTBool:
		if v.Data.(bool) {
			return "true"
		}
		return "false"
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', -1, 64)
	case VTStr:
		return v.Data.(string)
	case VTList:
		var b strings.Builder
		b.WriteByte('[')
		for i, e := range v.Data.(*ListObject).Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			if e.Tag == VTStr {
				b.WriteByte('"')
				b.WriteString(e.Data.(string))
				b.WriteByte('"')
			} else {
				b.WriteString(FormatValue(e))
			}
		}
		b.WriteByte(']')
		return b.String()
	case VTDict:
		var b strings.Builder
		b.WriteByte('{')
		for i, e := range v.Data.(*DictObject).Entries {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatValue(e.Key))
			b.WriteString(": ")
			b.WriteString(FormatValue(e.Value))
		}
		b.WriteByte('}')
		return b.String()
	case VTFun:
		return "<function " + v.Data.(*Fun).Name + ">"
	case VTBuiltin:
		return "<builtin_function>"
	case VTModule:
		return "<module " + v.Data.(*Module).Name + ">"
	}
	return "<unknown>"
}
