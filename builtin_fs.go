// builtin_fs.go
//
// The builtin `fs` module: read_text, write_text, read_all_bytes,
// write_all_bytes. Strings are byte sequences, so the text and byte
// variants differ only in intent; both carry file contents verbatim.
package boa

import (
	"fmt"
	"os"
)

func fsPathArg(name string, args []Value) (string, error) {
	if len(args) == 0 || args[0].Tag != VTStr {
		return "", fmt.Errorf("fs.%s: expected string argument", name)
	}
	return args[0].Data.(string), nil
}

func fsRead(name string, args []Value) (Value, error) {
	path, err := fsPathArg(name, args)
	if err != nil {
		return None, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return None, fmt.Errorf("fs.%s: cannot open file '%s'", name, path)
	}
	return Str(string(b)), nil
}

func fsWrite(name string, args []Value) (Value, error) {
	if len(args) < 2 || args[0].Tag != VTStr {
		return None, fmt.Errorf("fs.%s: expected (filename, data)", name)
	}
	path := args[0].Data.(string)
	if err := os.WriteFile(path, []byte(FormatValue(args[1])), 0o644); err != nil {
		return None, fmt.Errorf("fs.%s: cannot open file '%s'", name, path)
	}
	return None, nil
}

func newFSModule() Value {
	members := map[string]Value{
		"read_text": BuiltinVal("read_text", func(args []Value) (Value, error) {
			return fsRead("read_text", args)
		}),
		"write_text": BuiltinVal("write_text", func(args []Value) (Value, error) {
			return fsWrite("write_text", args)
		}),
		"read_all_bytes": BuiltinVal("read_all_bytes", func(args []Value) (Value, error) {
			return fsRead("read_all_bytes", args)
		}),
		"write_all_bytes": BuiltinVal("write_all_bytes", func(args []Value) (Value, error) {
			return fsWrite("write_all_bytes", args)
		}),
	}
	return ModuleVal(&Module{Name: "fs", Members: members})
}
