// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package types implements the shell language's runtime-type descriptors
// (ValType), the per-session type registry, and user-defined classes.
package types

import "strings"

// Kind enumerates the distinct shapes a ValType can take. It corresponds
// to the variants of value.Val one-for-one, plus Switch (a parameter-only
// "flag present" type that has no corresponding Val variant).
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindChar
	KindString
	KindArray
	KindHashTable
	KindScriptBlock
	KindScriptText
	KindRuntimeObject
	KindRuntimeType
	KindSwitch
	KindNonDisplayed
)

// ValType is a type descriptor. Built-in kinds carry a canonical spelling;
// RuntimeObject/RuntimeType kinds additionally carry a registry name so
// `[Name]` round-trips to the same descriptor the registry holds.
type ValType struct {
	Kind Kind
	// Elem is the element type for KindArray when known; nil means
	// "object[]", the untyped array.
	Elem *ValType
	// Name is the class/registry name for KindRuntimeObject/KindRuntimeType.
	Name string
}

var (
	Null         = ValType{Kind: KindNull}
	Bool         = ValType{Kind: KindBool}
	Int          = ValType{Kind: KindInt}
	Float        = ValType{Kind: KindFloat}
	Char         = ValType{Kind: KindChar}
	String       = ValType{Kind: KindString}
	HashTable    = ValType{Kind: KindHashTable}
	ScriptBlock  = ValType{Kind: KindScriptBlock}
	ScriptText   = ValType{Kind: KindScriptText}
	RuntimeType  = ValType{Kind: KindRuntimeType}
	Switch       = ValType{Kind: KindSwitch}
	NonDisplayed = ValType{Kind: KindNonDisplayed}
	Array        = ValType{Kind: KindArray}
)

// Object returns the untyped Object[] array type.
func Object() ValType { return ValType{Kind: KindArray} }

// ArrayOf returns an array type with a known element type.
func ArrayOf(elem ValType) ValType {
	e := elem
	return ValType{Kind: KindArray, Elem: &e}
}

// RuntimeObjectType returns a named RuntimeObject type descriptor, used for
// both built-in registry objects (UnicodeEncoding, …) and user classes.
func RuntimeObjectType(name string) ValType {
	return ValType{Kind: KindRuntimeObject, Name: name}
}

// Name renders the canonical, PowerShell-flavored spelling: Int32,
// Double, Boolean, String, Char, Object[], Hashtable, ScriptBlock,
// RuntimeType, "<T>[]", or a class/registry name verbatim.
func (t ValType) Name() string {
	switch t.Kind {
	case KindNull:
		return "Null"
	case KindBool:
		return "Boolean"
	case KindInt:
		return "Int32"
	case KindFloat:
		return "Double"
	case KindChar:
		return "Char"
	case KindString:
		return "String"
	case KindArray:
		if t.Elem == nil {
			return "Object[]"
		}
		return t.Elem.Name() + "[]"
	case KindHashTable:
		return "Hashtable"
	case KindScriptBlock:
		return "ScriptBlock"
	case KindScriptText:
		return "ScriptText"
	case KindRuntimeObject:
		if t.Name != "" {
			return t.Name
		}
		return "Object"
	case KindRuntimeType:
		return "RuntimeType"
	case KindSwitch:
		return "SwitchParameter"
	case KindNonDisplayed:
		return "NonDisplayed"
	default:
		return "Unknown"
	}
}

// aliases maps case-folded cast spellings to a canonical, registry-ready
// builder. Entries that need no extra data are precomputed; array suffixes
// are handled in Cast.
var aliases = map[string]ValType{
	"int":     Int,
	"int32":   Int,
	"long":    Int,
	"int64":   Int,
	"decimal": Float,
	"float":   Float,
	"single":  Float,
	"double":  Float,
	"byte":    Char,
	"char":    Char,
	"bool":    Bool,
	"boolean": Bool,
	"string":  String,
	"object":  Object(),
	"array":   Object(),
	"hashtable": HashTable,
	"scriptblock": ScriptBlock,
	"switch":  Switch,
}

// Cast resolves a case-insensitive cast-target spelling (the text inside
// `[...]`) to a ValType, including the `Name[]` typed-array suffix and
// registry-held class/runtime-object names. ok is false for unrecognized
// names (UnknownType).
func Cast(name string, lookup func(string) (ValType, bool)) (ValType, bool) {
	n := strings.TrimSpace(name)
	if strings.HasSuffix(n, "[]") {
		elemName := strings.TrimSuffix(n, "[]")
		elem, ok := Cast(elemName, lookup)
		if !ok {
			return ValType{}, false
		}
		return ArrayOf(elem), true
	}
	folded := strings.ToLower(n)
	if t, ok := aliases[folded]; ok {
		return t, true
	}
	if lookup != nil {
		if t, ok := lookup(folded); ok {
			return t, true
		}
	}
	return ValType{}, false
}

// Equal reports whether two ValTypes denote the same type, used by -is/-isnot.
func (t ValType) Equal(other ValType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KindArray:
		if t.Elem == nil || other.Elem == nil {
			return t.Elem == other.Elem
		}
		return t.Elem.Equal(*other.Elem)
	case KindRuntimeObject:
		return strings.EqualFold(t.Name, other.Name)
	default:
		return true
	}
}
