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

// evalClassDecl registers a parsed class declaration into e.Classes (spec
// §3's user-defined classes), converting ast.ClassMethodDecl into
// types.Method with each parameter's declared type resolved the same way
// buildScriptBlock resolves script-block parameters.
func (e *Evaluator) evalClassDecl(t *ast.ClassDecl) {
	methods := make([]*types.Method, 0, len(t.Methods))
	for _, m := range t.Methods {
		paramNames := make([]string, len(m.Params))
		paramTypes := make([]types.ValType, len(m.Params))
		for i, p := range m.Params {
			paramNames[i] = p.Name
			pt := types.Object()
			if p.TypeName != "" {
				if vt, ok := types.Cast(p.TypeName, e.lookupType); ok {
					pt = vt
				}
			}
			paramTypes[i] = pt
		}
		methods = append(methods, &types.Method{
			Name:       m.Name,
			ParamNames: paramNames,
			ParamTypes: paramTypes,
			Body:       m.Body,
			IsStatic:   m.IsStatic,
		})
	}
	class := types.NewClass(t.Name, methods)
	for _, p := range t.Properties {
		declared := types.Object()
		if p.TypeName != "" {
			if vt, ok := types.Cast(p.TypeName, e.lookupType); ok {
				declared = vt
			}
		}
		class.Properties = append(class.Properties, types.Property{
			Name:        p.Name,
			Declared:    declared,
			HasDefault:  p.Default != nil,
			DefaultExpr: p.Default,
		})
	}
	e.Classes[strings.ToLower(t.Name)] = class
}

// runMethodBody executes a class method/constructor body in a fresh Local
// frame, binding $this (when recv is non-nil, i.e. an instance method) and
// each declared parameter in order, extra args dropped and missing args
// defaulting to Null the same way buildScriptBlock-derived calls do.
func (e *Evaluator) runMethodBody(m *types.Method, recv *value.RuntimeObject, args []Val) Val {
	e.Store.PushLocal()
	defer e.Store.PopLocal()
	if recv != nil {
		e.Store.BindLocal("this", recv)
	}
	for i, name := range m.ParamNames {
		var v Val = Null{}
		if i < len(args) {
			v = args[i]
		}
		e.Store.BindLocal(name, v)
	}
	stmts, _ := m.Body.([]ast.Node)
	result, _ := e.EvalStatements(stmts)
	return result
}

// constructNew builds a new instance of a user class (`[Name]::new(args)`),
// seeding every declared property from its default expression (or Null)
// before running the resolved constructor body.
func (e *Evaluator) constructNew(class *types.Class, args []Val) Val {
	ctor, ok := class.ResolveConstructor(argTypeNames(args))
	if !ok {
		e.collect(types.NewError(types.ErrIncorrectArgs, "no constructor on %q matches the given arguments", class.Name))
		return Null{}
	}
	obj := value.NewRuntimeObject(class.Name)
	for _, p := range class.Properties {
		key := strings.ToLower(p.Name)
		if p.HasDefault {
			defNode, _ := p.DefaultExpr.(ast.Node)
			v, err := e.Eval(defNode)
			if err != nil {
				v = Null{}
			}
			obj.Fields[key] = v
		} else {
			obj.Fields[key] = Null{}
		}
	}
	if ctor.Body != nil {
		e.runMethodBody(ctor, obj, args)
	}
	return obj
}
