// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package eval implements the tree-walking evaluator: variable scoping,
// operator/method dispatch via packages value/types, parameter binding,
// pipelines, and control flow.
package eval

import "strings"

// binding pairs a value with whether it may be reassigned.
type binding struct {
	val      Val
	readOnly bool
}

// frame is one Local scope, pushed when a script block is entered with
// `&` and discarded on exit.
type frame struct {
	vars map[string]binding
}

func newFrame() *frame { return &frame{vars: map[string]binding{}} }

// Store is the variable store: a mapping from (scope, case-folded name)
// to a binding, split into four scopes. Special holds the read-only
// constants ($true/$false/$null); Global persists for the session; Local
// is a stack of per-invocation frames; Env is read-only and, since this
// evaluator performs no real OS interaction, stays empty unless a host
// seeds it explicitly.
type Store struct {
	special map[string]binding
	global  map[string]binding
	locals  []*frame
	env     map[string]binding
}

// NewStore builds a Store with the Special scope's constants installed.
func NewStore() *Store {
	s := &Store{
		special: map[string]binding{
			"true":  {val: Bool(true), readOnly: true},
			"false": {val: Bool(false), readOnly: true},
			"null":  {val: Null{}, readOnly: true},
		},
		global: map[string]binding{},
		env:    map[string]binding{},
	}
	return s
}

// PushLocal enters a new Local frame (a script block invoked with `&`).
func (s *Store) PushLocal() { s.locals = append(s.locals, newFrame()) }

// PopLocal discards the innermost Local frame.
func (s *Store) PopLocal() {
	if len(s.locals) > 0 {
		s.locals = s.locals[:len(s.locals)-1]
	}
}

func (s *Store) topLocal() *frame {
	if len(s.locals) == 0 {
		return nil
	}
	return s.locals[len(s.locals)-1]
}

// BindLocal sets name directly in the innermost Local frame (or Global
// when no frame is pushed, i.e. at top level), used for parameter
// binding and `$_`.
func (s *Store) BindLocal(name string, v Val) {
	fk := strings.ToLower(name)
	if f := s.topLocal(); f != nil {
		f.vars[fk] = binding{val: v}
		return
	}
	s.global[fk] = binding{val: v}
}

// Get resolves a variable read. scope is "" for an unprefixed name
// (resolved special -> local -> global), or one of
// "global"/"local"/"script"/"env" for an explicit `scope:name` prefix.
func (s *Store) Get(scope, name string) (Val, bool) {
	fk := strings.ToLower(name)
	switch strings.ToLower(scope) {
	case "global", "script":
		b, ok := s.global[fk]
		return b.val, ok
	case "local", "private":
		if f := s.topLocal(); f != nil {
			if b, ok := f.vars[fk]; ok {
				return b.val, true
			}
		}
		return nil, false
	case "env":
		b, ok := s.env[fk]
		return b.val, ok
	default:
		if b, ok := s.special[fk]; ok {
			return b.val, true
		}
		if f := s.topLocal(); f != nil {
			if b, ok := f.vars[fk]; ok {
				return b.val, true
			}
		}
		b, ok := s.global[fk]
		return b.val, ok
	}
}

// Set implements the assignment rule: stores in the innermost enclosing
// scope that already binds x, else in Global. An explicit scope prefix
// forces that scope. Returns false if the target is read-only (Special
// or Env).
func (s *Store) Set(scope, name string, v Val) bool {
	fk := strings.ToLower(name)
	switch strings.ToLower(scope) {
	case "global", "script":
		if b, ok := s.global[fk]; ok && b.readOnly {
			return false
		}
		s.global[fk] = binding{val: v}
		return true
	case "local", "private":
		f := s.topLocal()
		if f == nil {
			s.global[fk] = binding{val: v}
			return true
		}
		if b, ok := f.vars[fk]; ok && b.readOnly {
			return false
		}
		f.vars[fk] = binding{val: v}
		return true
	case "env":
		return false
	default:
		if b, ok := s.special[fk]; ok {
			_ = b
			return false
		}
		if f := s.topLocal(); f != nil {
			if b, ok := f.vars[fk]; ok {
				if b.readOnly {
					return false
				}
				f.vars[fk] = binding{val: v}
				return true
			}
		}
		if b, ok := s.global[fk]; ok {
			if b.readOnly {
				return false
			}
		}
		s.global[fk] = binding{val: v}
		return true
	}
}

// SeedGlobal installs initial globals, not read-only.
func (s *Store) SeedGlobal(vars map[string]Val) {
	for k, v := range vars {
		s.global[strings.ToLower(k)] = binding{val: v}
	}
}
