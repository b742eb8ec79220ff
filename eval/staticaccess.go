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

// toRegistryArg converts an already-evaluated Val into the shape registry
// StaticFns expect: String unwraps to a native Go string, every other
// variant passes through as the Val interface itself, matched by a
// concrete-type assertion inside the registered function (value's
// RegisterBuiltins entries rely on this convention).
func toRegistryArg(v Val) any {
	if s, ok := v.(value.String); ok {
		return string(s)
	}
	return v
}

// fromRegistryResult converts a StaticFn's result back into a Val. A
// registered function returns either a native Go string (promoted to
// value.String) or a Val already.
func fromRegistryResult(res any) Val {
	switch r := res.(type) {
	case string:
		return value.String(r)
	case Val:
		return r
	default:
		return Null{}
	}
}

// evalStaticAccess implements `[TypeName]::Member` and
// `[TypeName]::Method(args)`: user classes dispatch through types.Class,
// everything else through the Registry.
func (e *Evaluator) evalStaticAccess(t *ast.StaticAccess) (Val, error) {
	if class, ok := e.Classes[strings.ToLower(t.TypeName)]; ok {
		return e.evalClassStaticAccess(t, class)
	}

	desc, ok := e.Registry.Lookup(t.TypeName)
	if !ok {
		msg := "unable to find type named " + t.TypeName
		if s := types.SuggestName(t.TypeName, e.Registry.Names()); s != "" {
			msg += "; did you mean " + s + "?"
		}
		e.collect(types.NewError(types.ErrUnknownType, "%s", msg))
		return Null{}, nil
	}

	if !t.IsCall {
		mv, ok := desc.StaticMember(t.Member)
		if !ok {
			e.collect(types.NewError(types.ErrMemberNotFound, "static member %q was not found on %q", t.Member, t.TypeName))
			return Null{}, nil
		}
		return fromRegistryResult(mv), nil
	}

	args, err := e.evalArgs(t.Args)
	if err != nil {
		return Null{}, err
	}
	mangled := types.Mangle(t.Member, argTypeNames(args))
	fn, ok := desc.StaticMethod(mangled, strings.ToLower(t.Member))
	if !ok {
		e.collect(types.NewError(types.ErrMethodNotFound, "static method %q was not found on %q", t.Member, t.TypeName))
		return Null{}, nil
	}
	raw := make([]any, len(args))
	for i, a := range args {
		raw[i] = toRegistryArg(a)
	}
	res, rerr := fn(raw)
	if rerr != nil {
		if te, ok := rerr.(*types.Error); ok {
			e.collect(te)
		} else {
			e.collect(types.NewError(types.ErrException, "%v", rerr))
		}
		return Null{}, nil
	}
	return fromRegistryResult(res), nil
}

func (e *Evaluator) evalClassStaticAccess(t *ast.StaticAccess, class *types.Class) (Val, error) {
	if !t.IsCall {
		e.collect(types.NewError(types.ErrMemberNotFound, "static member %q was not found on %q", t.Member, t.TypeName))
		return Null{}, nil
	}
	args, err := e.evalArgs(t.Args)
	if err != nil {
		return Null{}, err
	}
	if strings.EqualFold(t.Member, "new") {
		return e.constructNew(class, args), nil
	}
	m, ok := class.StaticMethodOf(t.Member, argTypeNames(args))
	if !ok {
		e.collect(types.NewError(types.ErrMethodNotFound, "static method %q was not found on %q", t.Member, t.TypeName))
		return Null{}, nil
	}
	return e.runMethodBody(m, nil, args), nil
}
