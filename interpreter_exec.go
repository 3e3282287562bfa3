// interpreter_exec.go — private evaluation engine.
//
// Tree-walking evaluator. Every evaluation returns (Value, *ctrl): a nil
// ctrl is normal completion, otherwise the ctrl carries the non-local exit
// in flight — return, break, continue, a raised value, or a runtime error.
// Statement executors pattern-match on the signal and either consume it
// (calls consume returns, loops consume break/continue, try consumes errors)
// or pass it outward. No panics are used for control flow.
package boa

import (
	"fmt"
)

type ctrlKind int

const (
	ctrlReturn ctrlKind = iota
	ctrlBreak
	ctrlContinue
	ctrlRaise
	ctrlError
)

// ctrl is a non-local exit in flight. value carries the return payload
// (ctrlReturn) or the raised user value (ctrlRaise); err is set for
// ctrlError.
type ctrl struct {
	kind  ctrlKind
	value Value
	err   *RuntimeError
}

// errAt builds an error signal anchored at a source position.
func errAt(at Pos, format string, args ...interface{}) *ctrl {
	return &ctrl{
		kind: ctrlError,
		err:  &RuntimeError{Line: at.Line, Col: at.Col, Msg: fmt.Sprintf(format, args...)},
	}
}

// errFrom converts a builtin failure into an error signal. An error that is
// already a positioned RuntimeError keeps its location.
func errFrom(at Pos, err error) *ctrl {
	if re, ok := err.(*RuntimeError); ok {
		if re.Line == 0 {
			re.Line, re.Col = at.Line, at.Col
		}
		return &ctrl{kind: ctrlError, err: re}
	}
	return errAt(at, "%s", err.Error())
}

// execBody runs statements in order. The body's value is the value of its
// last statement, or none for an empty body.
func (ip *Interpreter) execBody(stmts []Stmt, env *Env) (Value, *ctrl) {
	result := None
	for _, stmt := range stmts {
		var sig *ctrl
		result, sig = ip.eval(stmt, env)
		if sig != nil {
			return None, sig
		}
	}
	return result, nil
}

// eval dispatches over the closed node set.
func (ip *Interpreter) eval(node Node, env *Env) (Value, *ctrl) {
	switch n := node.(type) {

	// ----- literals -----
	case *NumberLit:
		return numberValue(n.Value), nil
	case *StringLit:
		return Str(n.Value), nil
	case *BoolLit:
		return Bool(n.Value), nil
	case *NoneLit:
		return None, nil

	// ----- names & expressions -----
	case *Ident:
		v, ok := env.Get(n.Name)
		if !ok {
			return None, errAt(n.At, "Undefined variable '%s'", n.Name)
		}
		return v, nil
	case *BinaryExpr:
		return ip.evalBinary(n, env)
	case *UnaryExpr:
		return ip.evalUnary(n, env)
	case *IndexExpr:
		return ip.evalIndex(n, env)
	case *MemberExpr:
		return ip.evalMember(n, env)
	case *CallExpr:
		return ip.evalCall(n, env)
	case *ListLit:
		elems := make([]Value, 0, len(n.Elems))
		for _, e := range n.Elems {
			v, sig := ip.eval(e, env)
			if sig != nil {
				return None, sig
			}
			elems = append(elems, v)
		}
		return List(elems), nil
	case *DictLit:
		entries := make([]DictEntry, 0, len(n.Items))
		for _, item := range n.Items {
			k, sig := ip.eval(item.Key, env)
			if sig != nil {
				return None, sig
			}
			v, sig := ip.eval(item.Value, env)
			if sig != nil {
				return None, sig
			}
			entries = append(entries, DictEntry{Key: k, Value: v})
		}
		return Dict(entries), nil

	// ----- statements -----
	case *ExprStmt:
		return ip.eval(n.X, env)
	case *AssignStmt:
		return ip.evalAssign(n, env)
	case *PassStmt:
		return None, nil
	case *ReturnStmt:
		val := None
		if n.Value != nil {
			var sig *ctrl
			val, sig = ip.eval(n.Value, env)
			if sig != nil {
				return None, sig
			}
		}
		return None, &ctrl{kind: ctrlReturn, value: val}
	case *ImportStmt:
		return ip.evalImport(n, env)
	case *FnDefStmt:
		fn := FunVal(&Fun{Name: n.Name, Params: n.Params, Body: n.Body, Env: env})
		env.Assign(n.Name, fn)
		return fn, nil
	case *IfStmt:
		return ip.evalIf(n, env)
	case *ForStmt:
		return ip.evalFor(n, env)
	case *WhileStmt:
		return ip.evalWhile(n, env)
	case *TryStmt:
		return ip.evalTry(n, env)
	case *ClassDefStmt:
		// Recognized by the grammar; no runtime semantics yet.
		return None, nil
	case *Program:
		return ip.execBody(n.Stmts, env)
	}

	return None, errAt(node.Pos(), "Unknown AST node")
}

// numberValue re-splits a numeric literal: integral doubles in int64 range
// become ints, everything else stays float.
func numberValue(v float64) Value {
	if v == float64(int64(v)) && v >= -9e18 && v <= 9e18 {
		return Int(int64(v))
	}
	return Float(v)
}

func (ip *Interpreter) evalBinary(n *BinaryExpr, env *Env) (Value, *ctrl) {
	// and/or short-circuit and yield an operand, not a bool.
	if n.Op == AND || n.Op == OR {
		left, sig := ip.eval(n.Left, env)
		if sig != nil {
			return None, sig
		}
		if (n.Op == AND) != truthy(left) {
			return left, nil
		}
		return ip.eval(n.Right, env)
	}

	left, sig := ip.eval(n.Left, env)
	if sig != nil {
		return None, sig
	}
	right, sig := ip.eval(n.Right, env)
	if sig != nil {
		return None, sig
	}

	v, err := binaryOp(n.Op, left, right)
	if err != nil {
		return None, errFrom(n.At, err)
	}
	return v, nil
}

func (ip *Interpreter) evalUnary(n *UnaryExpr, env *Env) (Value, *ctrl) {
	val, sig := ip.eval(n.Operand, env)
	if sig != nil {
		return None, sig
	}

	switch n.Op {
	case MINUS:
		switch val.Tag {
		case VTInt:
			return Int(-val.Data.(int64)), nil
		case VTFloat:
			return Float(-val.Data.(float64)), nil
		}
		return None, errAt(n.At, "Cannot negate %s", val.Tag.TypeName())
	case PLUS:
		if val.Tag == VTInt || val.Tag == VTFloat {
			return val, nil
		}
		return None, errAt(n.At, "Cannot apply unary + to %s", val.Tag.TypeName())
	case NOT:
		return Bool(!truthy(val)), nil
	}
	return None, errAt(n.At, "Unknown unary operator")
}

func (ip *Interpreter) evalAssign(n *AssignStmt, env *Env) (Value, *ctrl) {
	val, sig := ip.eval(n.Value, env)
	if sig != nil {
		return None, sig
	}

	switch target := n.Target.(type) {

	case *Ident:
		if n.Op == ASSIGN {
			env.Assign(target.Name, val)
			return val, nil
		}
		existing, ok := env.Get(target.Name)
		if !ok {
			return None, errAt(n.At, "Undefined variable '%s'", target.Name)
		}
		result, err := binaryOp(compoundBase(n.Op), existing, val)
		if err != nil {
			return None, errFrom(n.At, err)
		}
		env.Assign(target.Name, result)
		return val, nil

	case *IndexExpr:
		obj, sig := ip.eval(target.Object, env)
		if sig != nil {
			return None, sig
		}
		index, sig := ip.eval(target.Index, env)
		if sig != nil {
			return None, sig
		}
		store := val
		if n.Op != ASSIGN {
			old, err := indexValue(obj, index)
			if err != nil {
				return None, errFrom(n.At, err)
			}
			store, err = binaryOp(compoundBase(n.Op), old, val)
			if err != nil {
				return None, errFrom(n.At, err)
			}
		}
		if err := setIndexValue(obj, index, store); err != nil {
			return None, errFrom(n.At, err)
		}
		return val, nil

	case *MemberExpr:
		obj, sig := ip.eval(target.Object, env)
		if sig != nil {
			return None, sig
		}
		if obj.Tag != VTModule {
			return None, errAt(n.At, "Cannot set member on %s", obj.Tag.TypeName())
		}
		m := obj.Data.(*Module)
		store := val
		if n.Op != ASSIGN {
			old, ok := m.Members[target.Name]
			if !ok {
				return None, errAt(n.At, "Module '%s' has no member '%s'", m.Name, target.Name)
			}
			var err error
			store, err = binaryOp(compoundBase(n.Op), old, val)
			if err != nil {
				return None, errFrom(n.At, err)
			}
		}
		m.Members[target.Name] = store
		return val, nil
	}

	return None, errAt(n.At, "Invalid assignment target")
}

// compoundBase maps a compound assignment operator to its binary base.
func compoundBase(op TokenType) TokenType {
	switch op {
	case PLUS_EQ:
		return PLUS
	case MINUS_EQ:
		return MINUS
	case STAR_EQ:
		return STAR
	case SLASH_EQ:
		return SLASH
	}
	return op
}

func (ip *Interpreter) evalIndex(n *IndexExpr, env *Env) (Value, *ctrl) {
	obj, sig := ip.eval(n.Object, env)
	if sig != nil {
		return None, sig
	}
	index, sig := ip.eval(n.Index, env)
	if sig != nil {
		return None, sig
	}
	v, err := indexValue(obj, index)
	if err != nil {
		return None, errFrom(n.At, err)
	}
	return v, nil
}

func (ip *Interpreter) evalMember(n *MemberExpr, env *Env) (Value, *ctrl) {
	obj, sig := ip.eval(n.Object, env)
	if sig != nil {
		return None, sig
	}
	v, err := memberValue(obj, n.Name)
	if err != nil {
		return None, errFrom(n.At, err)
	}
	return v, nil
}

func (ip *Interpreter) evalCall(n *CallExpr, env *Env) (Value, *ctrl) {
	callee, sig := ip.eval(n.Callee, env)
	if sig != nil {
		return None, sig
	}

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, sig := ip.eval(a, env)
		if sig != nil {
			return None, sig
		}
		args = append(args, v)
	}

	switch callee.Tag {
	case VTBuiltin:
		b := callee.Data.(*Builtin)
		v, err := b.Impl(args)
		if err != nil {
			return None, errFrom(n.At, err)
		}
		return v, nil

	case VTFun:
		return ip.callFunction(callee.Data.(*Fun), args, n.At)
	}

	return None, errAt(n.At, "Object is not callable")
}

// callFunction applies a user function: exact arity, a fresh frame under the
// closure, the body's last value as the implicit return.
func (ip *Interpreter) callFunction(fn *Fun, args []Value, at Pos) (Value, *ctrl) {
	if len(args) != len(fn.Params) {
		return None, errAt(at, "Function '%s' expected %d arguments, got %d",
			fn.Name, len(fn.Params), len(args))
	}

	fnEnv := NewEnv(fn.Env)
	for i, p := range fn.Params {
		fnEnv.Define(p, args[i])
	}

	result, sig := ip.execBody(fn.Body, fnEnv)
	if sig != nil {
		switch sig.kind {
		case ctrlReturn:
			return sig.value, nil
		case ctrlBreak, ctrlContinue:
			return None, errAt(at, "'break' or 'continue' outside loop")
		default:
			return None, sig
		}
	}
	return result, nil
}

func (ip *Interpreter) evalIf(n *IfStmt, env *Env) (Value, *ctrl) {
	cond, sig := ip.eval(n.Cond, env)
	if sig != nil {
		return None, sig
	}
	if truthy(cond) {
		return ip.execBody(n.Body, env)
	}
	for _, elif := range n.Elifs {
		c, sig := ip.eval(elif.Cond, env)
		if sig != nil {
			return None, sig
		}
		if truthy(c) {
			return ip.execBody(elif.Body, env)
		}
	}
	if len(n.Else) > 0 {
		return ip.execBody(n.Else, env)
	}
	return None, nil
}

func (ip *Interpreter) evalFor(n *ForStmt, env *Env) (Value, *ctrl) {
	iter, sig := ip.eval(n.Iter, env)
	if sig != nil {
		return None, sig
	}
	if iter.Tag != VTList {
		return None, errAt(n.At, "for: can only iterate over lists")
	}

	result := None
	for _, item := range iter.Data.(*ListObject).Elems {
		// The loop variable lands via the scope-walk rule; `for` opens no
		// scope of its own.
		env.Assign(n.Var, item)
		v, sig := ip.execBody(n.Body, env)
		if sig != nil {
			switch sig.kind {
			case ctrlBreak:
				return result, nil
			case ctrlContinue:
				continue
			default:
				return None, sig
			}
		}
		result = v
	}
	return result, nil
}

func (ip *Interpreter) evalWhile(n *WhileStmt, env *Env) (Value, *ctrl) {
	result := None
	for {
		cond, sig := ip.eval(n.Cond, env)
		if sig != nil {
			return None, sig
		}
		if !truthy(cond) {
			return result, nil
		}
		v, sig := ip.execBody(n.Body, env)
		if sig != nil {
			switch sig.kind {
			case ctrlBreak:
				return result, nil
			case ctrlContinue:
				continue
			default:
				return None, sig
			}
		}
		result = v
	}
}

func (ip *Interpreter) evalTry(n *TryStmt, env *Env) (Value, *ctrl) {
	result, sig := ip.execBody(n.Body, env)

	if sig != nil && (sig.kind == ctrlError || sig.kind == ctrlRaise) && n.HasExcept {
		if n.ExceptVar != "" {
			payload := sig.value
			if sig.kind == ctrlError {
				payload = Str(sig.err.Msg)
			}
			env.Assign(n.ExceptVar, payload)
		}
		result, sig = ip.execBody(n.Except, env)
	}

	// The finally body always runs, whatever is in flight; a signal raised
	// inside it wins over the pending one.
	if len(n.Finally) > 0 {
		if _, fsig := ip.execBody(n.Finally, env); fsig != nil {
			return None, fsig
		}
	}

	if sig != nil {
		return None, sig
	}
	return result, nil
}

func (ip *Interpreter) evalImport(n *ImportStmt, env *Env) (Value, *ctrl) {
	for _, name := range n.Names {
		if sig := ip.importModule(name, env, n.At); sig != nil {
			return None, sig
		}
	}
	return None, nil
}
