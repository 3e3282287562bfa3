// builtin_io.go
//
// The builtin `io` module: print, println (alias), input. Output goes
// through the interpreter's capture-aware writer; input reads one line from
// the interpreter's reader.
package boa

func (ip *Interpreter) newIOModule() Value {
	printVal := BuiltinVal("print", ip.printImpl)

	members := map[string]Value{
		"print":   printVal,
		"println": printVal,
		"input": BuiltinVal("input", func(args []Value) (Value, error) {
			if len(args) > 0 {
				ip.printText(FormatValue(args[0]))
			}
			line, err := ip.readLine()
			if err != nil {
				return Str(""), nil
			}
			return Str(line), nil
		}),
	}
	return ModuleVal(&Module{Name: "io", Members: members})
}
