// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"github.com/shellvm/shellvm/ast"
	"github.com/shellvm/shellvm/value"
)

func (e *Evaluator) evalIf(t *ast.IfStmt) (Val, error) {
	for _, br := range t.Branches {
		if br.Cond == nil {
			// the trailing `else`
			return e.EvalStatements(br.Body)
		}
		cv, err := e.Eval(br.Cond)
		if err != nil {
			return Null{}, err
		}
		if value.CastToBool(cv) {
			return e.EvalStatements(br.Body)
		}
	}
	return Null{}, nil
}

func (e *Evaluator) evalWhile(t *ast.WhileStmt) (Val, error) {
	var last Val = Null{}
	for {
		cv, err := e.Eval(t.Cond)
		if err != nil {
			return last, err
		}
		if !value.CastToBool(cv) {
			break
		}
		v, err := e.EvalStatements(t.Body)
		last = v
		if err == errBreak {
			break
		}
		if err != nil && err != errContinue {
			return last, err
		}
	}
	return last, nil
}

func (e *Evaluator) evalFor(t *ast.ForStmt) (Val, error) {
	var last Val = Null{}
	if t.Init != nil {
		if _, err := e.Eval(t.Init); err != nil {
			return last, err
		}
	}
	for {
		if t.Cond != nil {
			cv, err := e.Eval(t.Cond)
			if err != nil {
				return last, err
			}
			if !value.CastToBool(cv) {
				break
			}
		}
		v, err := e.EvalStatements(t.Body)
		last = v
		if err == errBreak {
			break
		}
		if err != nil && err != errContinue {
			return last, err
		}
		if t.Step != nil {
			if _, err := e.Eval(t.Step); err != nil {
				return last, err
			}
		}
	}
	return last, nil
}

func (e *Evaluator) evalForeach(t *ast.ForeachStmt) (Val, error) {
	var last Val = Null{}
	collV, err := e.Eval(t.Collection)
	if err != nil {
		return last, err
	}
	var items []Val
	if arr, ok := collV.(*value.Array); ok {
		items = arr.Elems
	} else {
		items = []Val{collV}
	}
	for _, item := range items {
		e.Store.BindLocal(t.VarName, item)
		v, err := e.EvalStatements(t.Body)
		last = v
		if err == errBreak {
			break
		}
		if err != nil && err != errContinue {
			return last, err
		}
	}
	return last, nil
}

func (e *Evaluator) evalSwitch(t *ast.SwitchStmt) (Val, error) {
	subject, err := e.Eval(t.Subject)
	if err != nil {
		return Null{}, err
	}
	var last Val = Null{}
	matchedAny := false
	for _, c := range t.Cases {
		if c.Default {
			continue
		}
		cv, err := e.Eval(c.Value)
		if err != nil {
			return last, err
		}
		eq, verr := value.Eq(subject, cv, true)
		if verr != nil {
			e.collect(verr)
			continue
		}
		if eq {
			matchedAny = true
			v, err := e.EvalStatements(c.Body)
			last = v
			if err == errBreak {
				return last, nil
			}
			if err != nil && err != errContinue {
				return last, err
			}
		}
	}
	if matchedAny {
		return last, nil
	}
	for _, c := range t.Cases {
		if !c.Default {
			continue
		}
		v, err := e.EvalStatements(c.Body)
		last = v
		if err == errBreak {
			return last, nil
		}
		if err != nil && err != errContinue {
			return last, err
		}
	}
	return last, nil
}
