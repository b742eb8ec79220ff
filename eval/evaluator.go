// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shellvm/shellvm/ast"
	"github.com/shellvm/shellvm/types"
	"github.com/shellvm/shellvm/value"
)

// errBreak/errContinue are internal control-flow signals: break/continue
// unwind to the nearest loop frame, caught by the loop handlers in
// controlflow.go. They are never surfaced to a caller of Evaluator.Eval
// from outside this package.
var (
	errBreak    = errors.New("break")
	errContinue = errors.New("continue")
)

// Evaluator walks an ast tree, driving the variable store, operator
// tables, and type registry. One Evaluator backs one Session.
type Evaluator struct {
	Store    *Store
	Registry *types.Registry
	Classes  map[string]*types.Class    // case-folded class name -> descriptor
	Funcs    map[string]*value.ScriptBlock // case-folded function name -> body

	Errs   []*types.Error
	Output strings.Builder

	// ForceVarEval is soft-eval mode: undefined variable reads become
	// Null instead of a collected error.
	ForceVarEval bool
	// RangeCap bounds `a..b`.
	RangeCap int64
}

// New builds an Evaluator with the built-in type registry installed.
func New() *Evaluator {
	reg := types.NewRegistry()
	value.RegisterBuiltins(reg)
	return &Evaluator{
		Store:    NewStore(),
		Registry: reg,
		Classes:  map[string]*types.Class{},
		Funcs:    map[string]*value.ScriptBlock{},
		RangeCap: 10_000_000,
	}
}

// collect appends a non-fatal error to the session-wide list.
func (e *Evaluator) collect(err *types.Error) {
	if err != nil {
		e.Errs = append(e.Errs, err)
	}
}

// lookupType adapts Registry+Classes to the function types.Cast expects.
func (e *Evaluator) lookupType(name string) (types.ValType, bool) {
	folded := strings.ToLower(name)
	if _, ok := e.Classes[folded]; ok {
		return types.RuntimeObjectType(name), true
	}
	return e.Registry.ValTypeLookup(name)
}

// castType resolves a `[TypeName]` spelling, collecting UnknownType on
// failure.
func (e *Evaluator) castType(name string) (types.ValType, bool) {
	t, ok := types.Cast(name, e.lookupType)
	if !ok {
		e.collect(types.NewError(types.ErrUnknownType, "unable to find type %q", name))
	}
	return t, ok
}

// EvalStatements evaluates a statement list and returns the value of the
// last statement: sub-expressions and script block bodies execute a
// statement sequence and yield the last expression value.
func (e *Evaluator) EvalStatements(stmts []ast.Node) (Val, error) {
	var last Val = Null{}
	for _, s := range stmts {
		v, err := e.Eval(s)
		if err != nil {
			return last, err
		}
		last = v
	}
	return last, nil
}

// Eval walks a single node. The returned error is only ever a loop
// control signal (errBreak/errContinue); all other failures are
// collected into Errs under the non-fatal error policy, and a
// best-effort placeholder value is returned.
func (e *Evaluator) Eval(n ast.Node) (Val, error) {
	switch t := n.(type) {
	case *ast.Program:
		return e.EvalStatements(t.Statements)

	case *ast.NullLit:
		return Null{}, nil
	case *ast.BoolLit:
		return value.Bool(t.Value), nil
	case *ast.IntLit:
		return value.Int(t.Value), nil
	case *ast.FloatLit:
		return value.Float(t.Value), nil
	case *ast.StringLit:
		if !t.Expandable {
			return value.String(t.Value), nil
		}
		s, err := e.expandString(t.Value)
		if err != nil {
			return Null{}, err
		}
		return value.String(s), nil

	case *ast.VarRef:
		return e.evalVarRef(t)

	case *ast.SubExpr:
		return e.EvalStatements(t.Statements)

	case *ast.ArrayExpr:
		elems := make([]Val, 0, len(t.Elems))
		for _, el := range t.Elems {
			v, err := e.Eval(el)
			if err != nil {
				return Null{}, err
			}
			elems = append(elems, v)
		}
		return &value.Array{Elems: elems}, nil

	case *ast.HashExpr:
		h := value.NewHashTable()
		for _, entry := range t.Entries {
			v, err := e.Eval(entry.Value)
			if err != nil {
				return Null{}, err
			}
			h.Set(entry.Key, v)
		}
		return h, nil

	case *ast.RangeExpr:
		return e.evalRange(t)

	case *ast.TypeLiteral:
		vt, ok := e.castType(t.Name)
		if !ok {
			return Null{}, nil
		}
		return &value.RuntimeType{Described: vt}, nil

	case *ast.CastExpr:
		return e.evalCast(t)

	case *ast.StaticAccess:
		return e.evalStaticAccess(t)

	case *ast.MemberAccess:
		return e.evalMemberAccess(t)

	case *ast.IndexExpr:
		return e.evalIndex(t)

	case *ast.BinaryExpr:
		return e.evalBinary(t)

	case *ast.UnaryExpr:
		return e.evalUnary(t)

	case *ast.IncDecExpr:
		return e.evalIncDec(t)

	case *ast.AssignExpr:
		return e.evalAssign(t)

	case *ast.Pipeline:
		return e.evalPipeline(t)

	case *ast.CommandCall:
		return e.evalCommandCall(t)

	case *ast.ScriptBlockLit:
		return e.buildScriptBlock(t), nil

	case *ast.IfStmt:
		return e.evalIf(t)
	case *ast.WhileStmt:
		return e.evalWhile(t)
	case *ast.ForStmt:
		return e.evalFor(t)
	case *ast.ForeachStmt:
		return e.evalForeach(t)
	case *ast.SwitchStmt:
		return e.evalSwitch(t)
	case *ast.BreakStmt:
		return Null{}, errBreak
	case *ast.ContinueStmt:
		return Null{}, errContinue

	case *ast.ClassDecl:
		e.evalClassDecl(t)
		return Null{}, nil
	case *ast.FunctionDecl:
		e.Funcs[strings.ToLower(t.Name)] = e.buildScriptBlock(t.Body)
		return Null{}, nil

	default:
		e.collect(types.NewError(types.ErrNotImplemented, "unsupported node %T", n))
		return Null{}, nil
	}
}

func (e *Evaluator) evalVarRef(t *ast.VarRef) (Val, error) {
	v, ok := e.Store.Get(t.Scope, t.Name)
	if ok {
		return v, nil
	}
	if e.ForceVarEval {
		return Null{}, nil
	}
	e.collect(types.NewError(types.ErrVariableNotDefined, "Variable %q is not defined.", "$"+t.Name))
	return Null{}, nil
}

func (e *Evaluator) evalRange(t *ast.RangeExpr) (Val, error) {
	loV, err := e.Eval(t.Lo)
	if err != nil {
		return Null{}, err
	}
	hiV, err := e.Eval(t.Hi)
	if err != nil {
		return Null{}, err
	}
	lo, cerr := value.CastToInt(loV)
	if cerr != nil {
		e.collect(cerr)
		return &value.Array{}, nil
	}
	hi, cerr := value.CastToInt(hiV)
	if cerr != nil {
		e.collect(cerr)
		return &value.Array{}, nil
	}
	if lo > hi {
		return &value.Array{}, nil
	}
	n := int64(hi) - int64(lo) + 1
	if n > e.RangeCap {
		e.collect(types.NewError(types.ErrException, "range %d..%d is too large", lo, hi))
		return &value.Array{}, nil
	}
	elems := make([]Val, 0, n)
	for i := int64(lo); i <= int64(hi); i++ {
		elems = append(elems, value.Int(i))
	}
	return &value.Array{Elems: elems}, nil
}

func (e *Evaluator) evalCast(t *ast.CastExpr) (Val, error) {
	operand, err := e.Eval(t.Operand)
	if err != nil {
		return Null{}, err
	}
	vt, ok := e.castType(t.TypeName)
	if !ok {
		return Null{}, nil
	}
	return e.coerce(operand, vt), nil
}

func (e *Evaluator) coerce(operand Val, vt types.ValType) Val {
	switch vt.Kind {
	case types.KindBool:
		return value.Bool(value.CastToBool(operand))
	case types.KindInt:
		n, cerr := value.CastToInt(operand)
		if cerr != nil {
			e.collect(cerr)
			return Null{}
		}
		return n
	case types.KindFloat:
		f, cerr := value.CastToFloat(operand)
		if cerr != nil {
			e.collect(cerr)
			return Null{}
		}
		return f
	case types.KindChar:
		c, cerr := value.CastToChar(operand)
		if cerr != nil {
			e.collect(cerr)
			return Null{}
		}
		return c
	case types.KindString:
		return value.String(value.CastToString(operand))
	case types.KindArray:
		if arr, ok := operand.(*value.Array); ok {
			return arr
		}
		return value.NewArray(operand)
	case types.KindScriptBlock:
		if _, ok := operand.(*value.ScriptBlock); ok {
			return operand
		}
		e.collect(types.NewError(types.ErrInvalidCast, "cannot convert %s to ScriptBlock", operand.TType().Name()))
		return Null{}
	case types.KindRuntimeObject:
		if ro, ok := operand.(*value.RuntimeObject); ok && strings.EqualFold(ro.TypeName, vt.Name) {
			return ro
		}
		e.collect(types.NewError(types.ErrInvalidCast, "cannot convert %s to %s", operand.TType().Name(), vt.Name()))
		return Null{}
	default:
		e.collect(types.NewError(types.ErrNotImplemented, "cast to %s is not supported", vt.Name()))
		return operand
	}
}

func (e *Evaluator) evalIndex(t *ast.IndexExpr) (Val, error) {
	target, err := e.Eval(t.Target)
	if err != nil {
		return Null{}, err
	}
	idxV, err := e.Eval(t.Index)
	if err != nil {
		return Null{}, err
	}
	switch coll := target.(type) {
	case *value.Array:
		idx, cerr := value.CastToInt(idxV)
		if cerr != nil {
			e.collect(cerr)
			return Null{}, nil
		}
		v, cerr := value.ArrayIndex(coll, int(idx))
		if cerr != nil {
			e.collect(cerr)
			return Null{}, nil
		}
		return v, nil
	case *value.HashTable:
		key := value.CastToString(idxV)
		if v, ok := coll.Get(key); ok {
			return v, nil
		}
		return Null{}, nil
	case Null:
		e.collect(types.NewError(types.ErrIndexedNullArray, "cannot index into a null array"))
		return Null{}, nil
	default:
		e.collect(types.NewError(types.ErrOperationNotDefined, "cannot index a %s", target.TType().Name()))
		return Null{}, nil
	}
}

func (e *Evaluator) evalBinary(t *ast.BinaryExpr) (Val, error) {
	op := strings.ToLower(t.Op)
	switch op {
	case "-join":
		return e.evalJoinBinary(t)
	case "-f":
		return e.evalFormat(t)
	}
	l, err := e.Eval(t.Left)
	if err != nil {
		return Null{}, err
	}
	r, err := e.Eval(t.Right)
	if err != nil {
		return Null{}, err
	}
	fn, ok := value.LookupBinary(op)
	if !ok {
		e.collect(types.NewError(types.ErrOperationNotDefined, "operator %q is not defined", t.Op))
		return Null{}, nil
	}
	res, verr := fn(l, r)
	if verr != nil {
		e.collect(verr)
	}
	if res == nil {
		return Null{}, nil
	}
	return res, nil
}

func (e *Evaluator) evalJoinBinary(t *ast.BinaryExpr) (Val, error) {
	l, err := e.Eval(t.Left)
	if err != nil {
		return Null{}, err
	}
	r, err := e.Eval(t.Right)
	if err != nil {
		return Null{}, err
	}
	arr, ok := l.(*value.Array)
	if !ok {
		arr = value.NewArray(l)
	}
	return value.String(value.Join(arr, value.CastToString(r))), nil
}

// evalFormat implements `-f`, the composite-format operator: "{0} {1}"
// -f a, b substitutes each {N} placeholder with the Nth right-hand
// element's canonical string form.
func (e *Evaluator) evalFormat(t *ast.BinaryExpr) (Val, error) {
	l, err := e.Eval(t.Left)
	if err != nil {
		return Null{}, err
	}
	r, err := e.Eval(t.Right)
	if err != nil {
		return Null{}, err
	}
	var args []Val
	if arr, ok := r.(*value.Array); ok {
		args = arr.Elems
	} else {
		args = []Val{r}
	}
	format := value.CastToString(l)
	var sb strings.Builder
	i := 0
	for i < len(format) {
		if format[i] == '{' {
			j := strings.IndexByte(format[i:], '}')
			if j >= 0 {
				numText := format[i+1 : i+j]
				var idx int
				if _, serr := fmt.Sscanf(numText, "%d", &idx); serr == nil && idx >= 0 && idx < len(args) {
					sb.WriteString(value.CastToString(args[idx]))
					i += j + 1
					continue
				}
			}
		}
		sb.WriteByte(format[i])
		i++
	}
	return value.String(sb.String()), nil
}

func (e *Evaluator) evalUnary(t *ast.UnaryExpr) (Val, error) {
	op := strings.ToLower(t.Op)
	if op == "-join" {
		operand, err := e.Eval(t.Operand)
		if err != nil {
			return Null{}, err
		}
		arr, ok := operand.(*value.Array)
		if !ok {
			arr = value.NewArray(operand)
		}
		return value.String(value.Join(arr, "")), nil
	}
	operand, err := e.Eval(t.Operand)
	if err != nil {
		return Null{}, err
	}
	fn, ok := value.LookupUnary(op)
	if !ok {
		e.collect(types.NewError(types.ErrOperationNotDefined, "operator %q is not defined", t.Op))
		return Null{}, nil
	}
	res, verr := fn(operand)
	if verr != nil {
		e.collect(verr)
	}
	if res == nil {
		return Null{}, nil
	}
	return res, nil
}

func (e *Evaluator) evalIncDec(t *ast.IncDecExpr) (Val, error) {
	varRef, ok := t.Operand.(*ast.VarRef)
	if !ok {
		e.collect(types.NewError(types.ErrOperationNotDefined, "%s requires a variable operand", t.Op))
		return Null{}, nil
	}
	cur, _ := e.Store.Get(varRef.Scope, varRef.Name)
	if cur == nil {
		cur = Null{}
	}
	delta := int64(1)
	if t.Op == "--" {
		delta = -1
	}
	newVal, returned := value.IncDec(cur, delta, t.Pre)
	if !e.Store.Set(varRef.Scope, varRef.Name, newVal) {
		e.collect(types.NewError(types.ErrOperationNotDefined, "cannot assign to read-only variable %q", "$"+varRef.Name))
	}
	return returned, nil
}

func (e *Evaluator) evalAssign(t *ast.AssignExpr) (Val, error) {
	var rhs Val
	if t.Op == "" {
		v, err := e.Eval(t.Value)
		if err != nil {
			return Null{}, err
		}
		rhs = v
	} else {
		var cur Val
		if vr, ok := t.Target.(*ast.VarRef); ok {
			// Compound assignment's current value defaults to Null
			// without raising VariableNotDefined, unlike an ordinary
			// read of an undefined variable.
			if v, ok := e.Store.Get(vr.Scope, vr.Name); ok {
				cur = v
			} else {
				cur = Null{}
			}
		} else {
			v, err := e.Eval(t.Target)
			if err != nil {
				return Null{}, err
			}
			cur = v
		}
		rv, err := e.Eval(t.Value)
		if err != nil {
			return Null{}, err
		}
		fn, ok := value.LookupBinary(t.Op)
		if !ok {
			e.collect(types.NewError(types.ErrOperationNotDefined, "operator %q is not defined", t.Op))
			return Null{}, nil
		}
		res, verr := fn(cur, rv)
		if verr != nil {
			e.collect(verr)
		}
		rhs = res
		if rhs == nil {
			rhs = Null{}
		}
	}
	if err := e.assignTo(t.Target, rhs); err != nil {
		return Null{}, err
	}
	return rhs, nil
}

func (e *Evaluator) assignTo(target ast.Node, rhs Val) error {
	switch tt := target.(type) {
	case *ast.VarRef:
		if !e.Store.Set(tt.Scope, tt.Name, rhs) {
			e.collect(types.NewError(types.ErrOperationNotDefined, "cannot assign to read-only variable %q", "$"+tt.Name))
		}
		return nil
	case *ast.IndexExpr:
		coll, err := e.Eval(tt.Target)
		if err != nil {
			return err
		}
		idxV, err := e.Eval(tt.Index)
		if err != nil {
			return err
		}
		switch c := coll.(type) {
		case *value.Array:
			idx, cerr := value.CastToInt(idxV)
			if cerr != nil {
				e.collect(cerr)
				return nil
			}
			i := int(idx)
			if i < 0 {
				i += len(c.Elems)
			}
			if i < 0 || i >= len(c.Elems) {
				e.collect(types.NewError(types.ErrArgumentOutOfRange, "index %d is outside the bounds of the array", idx))
				return nil
			}
			c.Elems[i] = rhs
		case *value.HashTable:
			c.Set(value.CastToString(idxV), rhs)
		default:
			e.collect(types.NewError(types.ErrOperationNotDefined, "cannot assign into a %s", coll.TType().Name()))
		}
		return nil
	case *ast.MemberAccess:
		target, err := e.Eval(tt.Target)
		if err != nil {
			return err
		}
		if obj, ok := target.(*value.RuntimeObject); ok {
			obj.Fields[strings.ToLower(tt.Member)] = rhs
			return nil
		}
		e.collect(types.NewError(types.ErrMemberNotFound, "cannot assign member %q", tt.Member))
		return nil
	default:
		e.collect(types.NewError(types.ErrOperationNotDefined, "invalid assignment target"))
		return nil
	}
}

// buildScriptBlock converts an ast.ScriptBlockLit into a callable
// value.ScriptBlock, resolving each declared parameter's type.
func (e *Evaluator) buildScriptBlock(lit *ast.ScriptBlockLit) *value.ScriptBlock {
	params := make([]value.ScriptBlockParam, 0, len(lit.Params))
	for _, p := range lit.Params {
		decl := types.Object()
		if p.TypeName != "" {
			if vt, ok := types.Cast(p.TypeName, e.lookupType); ok {
				decl = vt
			}
		}
		params = append(params, value.ScriptBlockParam{
			Name:       p.Name,
			Declared:   decl,
			HasDefault: p.Default != nil,
			Default:    p.Default,
			IsSwitch:   p.IsSwitch,
		})
	}
	return &value.ScriptBlock{Params: params, Body: lit.Body, Source: lit.Source}
}
