// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"strings"

	"github.com/shellvm/shellvm/ast"
	"github.com/shellvm/shellvm/types"
	"github.com/shellvm/shellvm/value"
)

// evalArgs evaluates an argument-expression list left to right.
func (e *Evaluator) evalArgs(nodes []ast.Node) ([]Val, error) {
	out := make([]Val, 0, len(nodes))
	for _, n := range nodes {
		v, err := e.Eval(n)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// argTypeNames computes the overload-mangling type name for each
// already-evaluated argument.
func argTypeNames(args []Val) []string {
	names := make([]string, len(args))
	for i, a := range args {
		names[i] = a.TType().Name()
	}
	return names
}

func (e *Evaluator) evalCommandCall(call *ast.CommandCall) (Val, error) {
	if call.Block != nil {
		blockVal, err := e.Eval(call.Block)
		if err != nil {
			return Null{}, err
		}
		sb, ok := blockVal.(*value.ScriptBlock)
		if !ok {
			e.collect(types.NewError(types.ErrOperationNotDefined, "cannot invoke a %s", blockVal.TType().Name()))
			return Null{}, nil
		}
		return e.CallBlock(sb, call.Positional, call.Named, call.Switches, call.CallerScope)
	}
	lname := strings.ToLower(call.Name)
	if fn, ok := e.Funcs[lname]; ok {
		return e.CallBlock(fn, call.Positional, call.Named, call.Switches, false)
	}
	switch lname {
	case "write-output", "write-host":
		return e.evalWriteCommand(call)
	case "get-process":
		return Null{}, nil
	case "where-object":
		e.collect(types.NewError(types.ErrNotImplemented, "Where-Object requires pipeline input"))
		return Null{}, nil
	}
	e.collect(types.NewError(types.ErrNotImplemented, "the term %q is not recognized as a command", call.Name))
	return value.ScriptText(call.Name), nil
}

func (e *Evaluator) evalWriteCommand(call *ast.CommandCall) (Val, error) {
	var last Val = Null{}
	for _, a := range call.Positional {
		v, err := e.Eval(a)
		if err != nil {
			return last, err
		}
		last = v
		e.Output.WriteString(value.CastToString(v))
		e.Output.WriteByte('\n')
	}
	return last, nil
}

// CallBlock invokes a script block with positional/named/switch arguments.
// callerScope selects `.` (bind into the current scope) vs `&` (push a
// fresh Local frame).
func (e *Evaluator) CallBlock(sb *value.ScriptBlock, positional []ast.Node, named map[string]ast.Node, switches []string, callerScope bool) (Val, error) {
	posVals, err := e.evalArgs(positional)
	if err != nil {
		return Null{}, err
	}
	namedVals := map[string]Val{}
	for k, n := range named {
		v, err := e.Eval(n)
		if err != nil {
			return Null{}, err
		}
		namedVals[strings.ToLower(k)] = v
	}
	switchSet := map[string]bool{}
	for _, s := range switches {
		switchSet[strings.ToLower(s)] = true
	}

	bindings := map[string]Val{}
	posIdx := 0
	for _, p := range sb.Params {
		key := strings.ToLower(p.Name)
		switch {
		case p.IsSwitch:
			if switchSet[key] {
				bindings[key] = value.Bool(true)
			} else if nv, ok := namedVals[key]; ok {
				bindings[key] = value.Bool(value.CastToBool(nv))
			} else {
				bindings[key] = value.Bool(false)
			}
		default:
			if nv, ok := namedVals[key]; ok {
				bindings[key] = nv
			} else if posIdx < len(posVals) {
				bindings[key] = posVals[posIdx]
				posIdx++
			} else if p.HasDefault {
				defNode, _ := p.Default.(ast.Node)
				dv, err := e.Eval(defNode)
				if err != nil {
					return Null{}, err
				}
				bindings[key] = dv
			} else {
				bindings[key] = Null{}
			}
		}
	}

	if !callerScope {
		e.Store.PushLocal()
		defer e.Store.PopLocal()
	}
	for k, v := range bindings {
		e.Store.BindLocal(k, v)
	}

	stmts, _ := sb.Body.([]ast.Node)
	result, err := e.EvalStatements(stmts)
	if err == errBreak || err == errContinue {
		err = nil
	}
	return result, err
}
