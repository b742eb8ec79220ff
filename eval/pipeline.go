// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"strings"

	"github.com/shellvm/shellvm/ast"
	"github.com/shellvm/shellvm/value"
)

// evalPipeline threads each stage's output, one element at a time bound to
// $_, into the next. Each stage runs fully before the next starts (no
// per-element streaming), matching the source-offset slice granularity
// the rest of this evaluator uses for control flow.
func (e *Evaluator) evalPipeline(t *ast.Pipeline) (Val, error) {
	if len(t.Stages) == 0 {
		return Null{}, nil
	}
	items, err := e.evalPipelineSource(t.Stages[0])
	if err != nil {
		return Null{}, err
	}
	for _, stage := range t.Stages[1:] {
		items, err = e.runPipelineStage(stage, items)
		if err != nil {
			return Null{}, err
		}
	}
	switch len(items) {
	case 0:
		return Null{}, nil
	case 1:
		return items[0], nil
	default:
		return &value.Array{Elems: items}, nil
	}
}

func flattenVal(v Val) []Val {
	if arr, ok := v.(*value.Array); ok {
		return arr.Elems
	}
	return []Val{v}
}

func (e *Evaluator) evalPipelineSource(n ast.Node) ([]Val, error) {
	if cc, ok := n.(*ast.CommandCall); ok {
		v, err := e.evalCommandCall(cc)
		if err != nil {
			return nil, err
		}
		return flattenVal(v), nil
	}
	v, err := e.Eval(n)
	if err != nil {
		return nil, err
	}
	return flattenVal(v), nil
}

func (e *Evaluator) runPipelineStage(n ast.Node, items []Val) ([]Val, error) {
	if cc, ok := n.(*ast.CommandCall); ok {
		switch strings.ToLower(cc.Name) {
		case "where-object":
			return e.pipelineWhereObject(cc, items)
		case "write-output", "write-host":
			for _, it := range items {
				e.Output.WriteString(value.CastToString(it))
				e.Output.WriteByte('\n')
			}
			return items, nil
		}
		if cc.Block != nil {
			return e.pipelineApplyBlock(cc.Block, items, true)
		}
		out := make([]Val, 0, len(items))
		for _, it := range items {
			e.Store.BindLocal("_", it)
			v, err := e.evalCommandCall(cc)
			if err != nil {
				return out, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return e.pipelineApplyBlock(n, items, false)
}

// pipelineApplyBlock runs a script block (or, when asExpr is false, any
// expression node) once per item with $_ bound, collecting each result.
func (e *Evaluator) pipelineApplyBlock(n ast.Node, items []Val, asExpr bool) ([]Val, error) {
	blockVal, err := e.Eval(n)
	if err != nil {
		return nil, err
	}
	sb, ok := blockVal.(*value.ScriptBlock)
	if !ok {
		out := make([]Val, len(items))
		for i := range items {
			out[i] = blockVal
		}
		return out, nil
	}
	out := make([]Val, 0, len(items))
	stmts, _ := sb.Body.([]ast.Node)
	for _, it := range items {
		e.Store.PushLocal()
		e.Store.BindLocal("_", it)
		res, err := e.EvalStatements(stmts)
		e.Store.PopLocal()
		if err != nil && err != errBreak && err != errContinue {
			return out, err
		}
		out = append(out, res)
	}
	_ = asExpr
	return out, nil
}

// pipelineWhereObject implements the Where-Object filter stage (spec
// §4.7): its first positional argument is a predicate script block run
// once per item with $_ bound; only items for which it returns a truthy
// value survive.
func (e *Evaluator) pipelineWhereObject(call *ast.CommandCall, items []Val) ([]Val, error) {
	if len(call.Positional) == 0 {
		return items, nil
	}
	predVal, err := e.Eval(call.Positional[0])
	if err != nil {
		return nil, err
	}
	sb, ok := predVal.(*value.ScriptBlock)
	if !ok {
		return items, nil
	}
	stmts, _ := sb.Body.([]ast.Node)
	out := make([]Val, 0, len(items))
	for _, it := range items {
		e.Store.PushLocal()
		e.Store.BindLocal("_", it)
		res, err := e.EvalStatements(stmts)
		e.Store.PopLocal()
		if err != nil && err != errBreak && err != errContinue {
			return out, err
		}
		if value.CastToBool(res) {
			out = append(out, it)
		}
	}
	return out, nil
}
