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

// evalMemberAccess implements `expr.Member` / `expr.Method(args)` (spec
// §4.5-§4.6) across every runtime value kind: strings and arrays dispatch
// through their built-in method tables, runtime objects through the owning
// user class or registry descriptor, and every value answers GetType().
func (e *Evaluator) evalMemberAccess(t *ast.MemberAccess) (Val, error) {
	target, err := e.Eval(t.Target)
	if err != nil {
		return Null{}, err
	}

	if t.IsCall && strings.EqualFold(t.Member, "GetType") && len(t.Args) == 0 {
		return &value.RuntimeType{Described: target.TType()}, nil
	}

	switch tv := target.(type) {
	case Null:
		e.collect(types.NewError(types.ErrNullExpression, "cannot call a method on a null-valued expression"))
		return Null{}, nil

	case value.String:
		if !t.IsCall {
			e.collect(types.NewError(types.ErrMemberNotFound, "property %q was not found on String", t.Member))
			return Null{}, nil
		}
		args, err := e.evalArgs(t.Args)
		if err != nil {
			return Null{}, err
		}
		fn, ok := value.StringMethodLookup(t.Member)
		if !ok {
			msg := "method " + t.Member + " was not found on String"
			if s := types.SuggestName(t.Member, value.StringMethodNames()); s != "" {
				msg += "; did you mean " + s + "?"
			}
			e.collect(types.NewError(types.ErrMethodNotFound, "%s", msg))
			return Null{}, nil
		}
		res, verr := fn(tv, args)
		if verr != nil {
			e.collect(verr)
			return Null{}, nil
		}
		return res, nil

	case *value.Array:
		if !t.IsCall {
			e.collect(types.NewError(types.ErrMemberNotFound, "property %q was not found on Array", t.Member))
			return Null{}, nil
		}
		args, err := e.evalArgs(t.Args)
		if err != nil {
			return Null{}, err
		}
		fn, ok := value.ArrayMethodLookup(t.Member)
		if !ok {
			e.collect(types.NewError(types.ErrMethodNotFound, "method %q was not found on Array", t.Member))
			return Null{}, nil
		}
		res, verr := fn(tv, args)
		if verr != nil {
			e.collect(verr)
			return Null{}, nil
		}
		return res, nil

	case *value.RuntimeObject:
		return e.evalObjectMemberAccess(t, tv)

	case *value.RuntimeType:
		switch strings.ToLower(t.Member) {
		case "name":
			return value.String(tv.Described.Name()), nil
		case "basetype":
			if desc, ok := e.Registry.Lookup(tv.Described.Name()); ok && desc.BaseName != "" {
				return &value.RuntimeType{Described: types.RuntimeObjectType(desc.BaseName)}, nil
			}
			return Null{}, nil
		}
		e.collect(types.NewError(types.ErrMemberNotFound, "property %q was not found on Type", t.Member))
		return Null{}, nil

	default:
		e.collect(types.NewError(types.ErrMemberNotFound, "member %q was not found on %s", t.Member, target.TType().Name()))
		return Null{}, nil
	}
}

func (e *Evaluator) evalObjectMemberAccess(t *ast.MemberAccess, obj *value.RuntimeObject) (Val, error) {
	if class, ok := e.Classes[strings.ToLower(obj.TypeName)]; ok {
		if !t.IsCall {
			if v, ok := obj.Fields[strings.ToLower(t.Member)]; ok {
				return v, nil
			}
			e.collect(types.NewError(types.ErrMemberNotFound, "property %q was not found on %q", t.Member, obj.TypeName))
			return Null{}, nil
		}
		args, err := e.evalArgs(t.Args)
		if err != nil {
			return Null{}, err
		}
		m, ok := class.InstanceMethod(t.Member, argTypeNames(args))
		if !ok {
			e.collect(types.NewError(types.ErrMethodNotFound, "method %q was not found on %q", t.Member, obj.TypeName))
			return Null{}, nil
		}
		return e.runMethodBody(m, obj, args), nil
	}

	// A built-in registry object (e.g. UnicodeEncoding) instance. The same
	// descriptor table backs both its "static" and instance surface, since
	// these built-ins have no mutable per-instance state.
	desc, ok := e.Registry.Lookup(obj.TypeName)
	if !ok {
		e.collect(types.NewError(types.ErrUnknownType, "unable to find type named %q", obj.TypeName))
		return Null{}, nil
	}
	if !t.IsCall {
		mv, ok := desc.StaticMember(t.Member)
		if !ok {
			e.collect(types.NewError(types.ErrMemberNotFound, "property %q was not found on %q", t.Member, obj.TypeName))
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
		e.collect(types.NewError(types.ErrMethodNotFound, "method %q was not found on %q", t.Member, obj.TypeName))
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
