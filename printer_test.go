package boa

import "testing"

func TestFormatValue(t *testing.T) {
	for _, tc := range []struct {
		name string
		v    Value
		want string
	}{
		{"none", None, "none"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(42), "42"},
		{"negative int", Int(-7), "-7"},
		{"float", Float(3.14), "3.14"},
		{"float integral", Float(4), "4"},
		{"float shortest", Float(0.1), "0.1"},
		{"string raw", Str("hi there"), "hi there"},
		{"empty list", List(nil), "[]"},
		{"list", List([]Value{Int(1), Int(2), Int(3)}), "[1, 2, 3]"},
		{
			"list quotes strings",
			List([]Value{Str("a"), Int(1)}),
			`["a", 1]`,
		},
		{
			"nested list",
			List([]Value{List([]Value{Int(1)}), Int(2)}),
			"[[1], 2]",
		},
		{"empty dict", Dict(nil), "{}"},
		{
			"dict in insertion order",
			Dict([]DictEntry{
				{Key: Str("z"), Value: Int(1)},
				{Key: Str("a"), Value: Int(2)},
			}),
			"{z: 1, a: 2}",
		},
		{"function", FunVal(&Fun{Name: "fib"}), "<function fib>"},
		{"builtin", BuiltinVal("print", nil), "<builtin_function>"},
		{"module", ModuleVal(&Module{Name: "io"}), "<module io>"},
	} {
		if got := FormatValue(tc.v); got != tc.want {
			t.Errorf("%s: FormatValue = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFormatFloatRoundTrip(t *testing.T) {
	// Shortest form that still round-trips.
	for _, f := range []float64{0.1, 1.0 / 3.0, 1e21, 2.5e-3} {
		s := FormatValue(Float(f))
		v := evalSrc(t, "float(\""+s+"\")\n")
		if v.Tag != VTFloat || v.Data.(float64) != f {
			t.Errorf("float %v did not round-trip through %q (got %#v)", f, s, v)
		}
	}
}
