// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package types

import "strings"

// Property describes one typed, optionally-defaulted class property: an
// ordered set of typed properties with optional defaults.
// DefaultExpr is an opaque handle to the ast expression node computing the
// default (evaluated lazily at construction time by package eval); it is
// any to avoid this package depending on ast.
type Property struct {
	Name        string
	Declared    ValType
	HasDefault  bool
	DefaultExpr any
}

// Method is an opaque handle to a class method/constructor body, carried
// as any for the same reason as Property.DefaultExpr: package types must
// not import ast or eval.
type Method struct {
	Name       string
	ParamNames []string
	ParamTypes []ValType
	Body       any
	IsStatic   bool
}

// Class is a user-defined class's type descriptor: an ordered property
// list, a map of mangled-signature constructors, and static/instance
// method maps. Constructors are methods whose name case-insensitively
// equals the class name.
type Class struct {
	Name            string
	Properties      []Property
	Constructors    map[string]*Method // keyed by Mangle(name, argtypes)
	StaticMethods   map[string]*Method
	InstanceMethods map[string]*Method
}

// NewClass creates an empty class descriptor, harvesting constructors out
// of decls whose name matches className case-insensitively, else sorting
// the rest into static/instance method maps by IsStatic.
func NewClass(className string, decls []*Method) *Class {
	c := &Class{
		Name:            className,
		Constructors:    map[string]*Method{},
		StaticMethods:   map[string]*Method{},
		InstanceMethods: map[string]*Method{},
	}
	for _, m := range decls {
		if strings.EqualFold(m.Name, className) {
			argTypeNames := make([]string, len(m.ParamTypes))
			for i, t := range m.ParamTypes {
				argTypeNames[i] = t.Name()
			}
			key := Mangle(m.Name, argTypeNames)
			c.Constructors[key] = m
			continue
		}
		argTypeNames := make([]string, len(m.ParamTypes))
		for i, t := range m.ParamTypes {
			argTypeNames[i] = t.Name()
		}
		mangled := Mangle(m.Name, argTypeNames)
		bare := strings.ToLower(m.Name)
		dest := c.InstanceMethods
		if m.IsStatic {
			dest = c.StaticMethods
		}
		dest[mangled] = m
		if _, exists := dest[bare]; !exists {
			dest[bare] = m
		}
	}
	if len(c.Constructors) == 0 {
		c.Constructors[Mangle(className, nil)] = &Method{Name: className}
	}
	return c
}

// ResolveConstructor picks the overload matching argTypeNames exactly, or
// (if exactly one constructor exists) falls back to the bare-name/zero-arg
// entry when no overloads exist.
func (c *Class) ResolveConstructor(argTypeNames []string) (*Method, bool) {
	key := Mangle(c.Name, argTypeNames)
	if m, ok := c.Constructors[key]; ok {
		return m, true
	}
	if len(c.Constructors) == 1 {
		for _, m := range c.Constructors {
			return m, true
		}
	}
	return nil, false
}

// InstanceMethod looks up an instance method by mangled key, falling back
// to the bare name when there is exactly one overload.
func (c *Class) InstanceMethod(name string, argTypeNames []string) (*Method, bool) {
	key := Mangle(name, argTypeNames)
	if m, ok := c.InstanceMethods[key]; ok {
		return m, true
	}
	m, ok := c.InstanceMethods[strings.ToLower(name)]
	return m, ok
}

// StaticMethodOf looks up a static method the same way.
func (c *Class) StaticMethodOf(name string, argTypeNames []string) (*Method, bool) {
	key := Mangle(name, argTypeNames)
	if m, ok := c.StaticMethods[key]; ok {
		return m, true
	}
	m, ok := c.StaticMethods[strings.ToLower(name)]
	return m, ok
}
