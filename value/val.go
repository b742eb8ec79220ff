// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package value implements the shell language's runtime value algebra:
// the Val sum type, its coercion rules, operator dispatch tables, and
// built-in String/Array methods.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shellvm/shellvm/types"
)

// Val is the runtime value interface every variant implements: a small,
// closed set of concrete structs behind one interface, each carrying
// TType()/String() plus whatever payload it needs.
type Val interface {
	// TType returns this value's type descriptor. Total: every Val has a
	// type.
	TType() types.ValType
	// String renders the canonical display form (cast_to_string), used
	// both for -join/+concatenation and for the deobfuscation buffer.
	String() string
}

// Null is the single value of its type.
type Null struct{}

func (Null) TType() types.ValType { return types.Null }
func (Null) String() string       { return "" }

// Bool wraps a boolean.
type Bool bool

func (Bool) TType() types.ValType { return types.Bool }
func (b Bool) String() string {
	if b {
		return "True"
	}
	return "False"
}

// Int wraps a 64-bit signed integer.
type Int int64

func (Int) TType() types.ValType { return types.Int }
func (i Int) String() string     { return strconv.FormatInt(int64(i), 10) }

// Float wraps a 64-bit IEEE float.
type Float float64

func (Float) TType() types.ValType { return types.Float }
func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// Char wraps a single Unicode code point.
type Char rune

func (Char) TType() types.ValType { return types.Char }
func (c Char) String() string     { return string(rune(c)) }

// String wraps text.
type String string

func (String) TType() types.ValType { return types.String }
func (s String) String() string     { return string(s) }

// Array is an ordered, heterogeneous, 0-indexed sequence.
type Array struct {
	Elems []Val
}

func NewArray(elems ...Val) *Array { return &Array{Elems: elems} }

func (*Array) TType() types.ValType { return types.Object() }
func (a *Array) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = CastToString(e)
	}
	return strings.Join(parts, " ")
}

// HashTable maps case-folded key strings to values. Keys holds the
// user-visible (non-folded) key spellings, preserved for rendering.
type HashTable struct {
	Keys   []string // original spelling, insertion order
	folded map[string]int
	Vals   map[string]Val // keyed by folded key
}

func NewHashTable() *HashTable {
	return &HashTable{folded: map[string]int{}, Vals: map[string]Val{}}
}

func (h *HashTable) Set(key string, v Val) {
	fk := strings.ToLower(key)
	if _, ok := h.folded[fk]; !ok {
		h.folded[fk] = len(h.Keys)
		h.Keys = append(h.Keys, key)
	}
	h.Vals[fk] = v
}

func (h *HashTable) Get(key string) (Val, bool) {
	v, ok := h.Vals[strings.ToLower(key)]
	return v, ok
}

func (*HashTable) TType() types.ValType { return types.HashTable }
func (h *HashTable) String() string {
	return RenderHashTable(h)
}

// ScriptBlockParam is one declared parameter of a script block.
type ScriptBlockParam struct {
	Name       string
	Declared   types.ValType
	HasDefault bool
	Default    any // ast expression node, evaluated by package eval
	IsSwitch   bool
}

// ScriptBlock is a callable body.
type ScriptBlock struct {
	Params []ScriptBlockParam
	Body   any // ast statement list, walked by package eval
	Source string
}

func (*ScriptBlock) TType() types.ValType { return types.ScriptBlock }
func (sb *ScriptBlock) String() string    { return "{" + sb.Source + "}" }

// ScriptText is an un-evaluated textual expression kept for
// deobfuscation output.
type ScriptText string

func (ScriptText) TType() types.ValType { return types.ScriptText }
func (s ScriptText) String() string     { return string(s) }

// RuntimeObject is an instance of a user class or a built-in registry
// object; it carries its own member/method dispatch via Class/Descriptor
// held in eval's registry, looked up by TypeName.
type RuntimeObject struct {
	TypeName string
	Fields   map[string]Val // case-folded key -> value, for user classes
}

func NewRuntimeObject(typeName string) *RuntimeObject {
	return &RuntimeObject{TypeName: typeName, Fields: map[string]Val{}}
}

func (o *RuntimeObject) TType() types.ValType { return types.RuntimeObjectType(o.TypeName) }
func (o *RuntimeObject) String() string       { return o.TypeName }

// RuntimeType reifies a type as a value, obtained from `[Name]`.
type RuntimeType struct {
	Described types.ValType
}

func (*RuntimeType) TType() types.ValType { return types.RuntimeType }
func (t *RuntimeType) String() string     { return t.Described.Name() }

// NonDisplayed wraps a value whose presence is live but whose rendering
// is suppressed.
type NonDisplayed struct {
	Inner Val
}

func (NonDisplayed) TType() types.ValType { return types.NonDisplayed }
func (NonDisplayed) String() string       { return "" }

// IsNumeric reports whether v is Int, Float, Char, or Bool, the types
// that participate in numeric promotion.
func IsNumeric(v Val) bool {
	switch v.(type) {
	case Int, Float, Char, Bool:
		return true
	default:
		return false
	}
}

// DebugRender renders a Val (and its args, for IncorrectArgs messages) in
// a compact debug form, e.g. for error messages that need to show what was
// actually passed.
func DebugRender(v Val) string {
	switch t := v.(type) {
	case String:
		return fmt.Sprintf("%q", string(t))
	default:
		return v.String()
	}
}
