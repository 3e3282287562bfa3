// modules.go — the user-module loader.
//
// `imp name` resolves in order: the module cache (which is preloaded with
// the builtin io/fs modules), then the source provider. A loaded module's
// program runs once in a fresh environment parented to the global
// environment; its resulting bindings become the module's members, the
// module is cached by name, and later imports reuse the cached value
// without re-executing the body.
//
// The parsed ASTs of loaded modules are retained for the interpreter's
// lifetime: function values defined by a module borrow their bodies from
// that AST.
package boa

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// SourceProvider maps module names to source text. File I/O, embedding
// resources, test fixtures — anything that can hand back a string can back
// the import statement.
type SourceProvider interface {
	// Load returns the source for name. found is false when the provider
	// has no such module; err reports a provider failure distinct from
	// absence.
	Load(name string) (src string, found bool, err error)
}

// DirSource resolves module name to <Dir>/<name>.boa.
type DirSource struct {
	Dir string
}

func (d DirSource) Load(name string) (string, bool, error) {
	path := filepath.Join(d.Dir, name+".boa")
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// MapSource serves modules from an in-memory map. Useful for tests and for
// embedders that bundle scripts.
type MapSource map[string]string

func (m MapSource) Load(name string) (string, bool, error) {
	src, ok := m[name]
	return src, ok, nil
}

// importModule binds module name into env, loading and executing it first
// if it is not yet cached.
func (ip *Interpreter) importModule(name string, env *Env, at Pos) *ctrl {
	if mod, ok := ip.modules[name]; ok {
		env.Define(name, mod)
		return nil
	}

	src, found, err := ip.provider.Load(name)
	if err != nil || !found {
		return errAt(at, "Cannot find module '%s'", name)
	}

	prog, perr := ParseProgram(src)
	if perr != nil {
		return errAt(at, "Cannot load module '%s': %s", name, perr.Error())
	}

	modEnv := NewEnv(ip.Global)
	if _, sig := ip.execBody(prog.Stmts, modEnv); sig != nil {
		if sig.kind == ctrlError || sig.kind == ctrlRaise {
			return sig
		}
		return errAt(at, "Cannot load module '%s': stray control flow at top level", name)
	}

	members := make(map[string]Value, len(modEnv.table))
	for k, v := range modEnv.table {
		members[k] = v
	}
	mod := ModuleVal(&Module{Name: name, Members: members})

	ip.modules[name] = mod
	ip.astKeep = append(ip.astKeep, prog)
	env.Define(name, mod)
	return nil
}
