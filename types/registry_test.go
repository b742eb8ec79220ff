// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package types

import "testing"

func TestMangleKeyShape(t *testing.T) {
	got := Mangle("GetString", []string{"Object[]"})
	want := "getstring(Object[])1"
	if got != want {
		t.Errorf("Mangle = %q, want %q", got, want)
	}
	if Mangle("Foo", nil) != "foo()0" {
		t.Errorf("Mangle with no args = %q, want %q", Mangle("Foo", nil), "foo()0")
	}
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	d := NewDescriptor("System.Convert", "")
	d.AddStaticMethod(Mangle("FromBase64String", []string{"String"}), "frombase64string", func(args []any) (any, error) {
		return "ok", nil
	})
	r.Register(d)

	got, ok := r.Lookup("system.convert")
	if !ok {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if got.FullName != "System.Convert" {
		t.Errorf("FullName = %q, want %q", got.FullName, "System.Convert")
	}

	fn, ok := got.StaticMethod(Mangle("FromBase64String", []string{"String"}), "frombase64string")
	if !ok {
		t.Fatal("expected StaticMethod to resolve by mangled key")
	}
	res, err := fn(nil)
	if err != nil || res != "ok" {
		t.Errorf("fn() = (%v, %v), want (\"ok\", nil)", res, err)
	}
}

func TestRegistryAddStaticMemberIsReadOnly(t *testing.T) {
	d := NewDescriptor("System.Text.Encoding", "")
	d.AddStaticMember("Unicode", "handle")
	v, ok := d.StaticMember("unicode")
	if !ok || v != "handle" {
		t.Errorf("StaticMember(unicode) = (%v, %v), want (\"handle\", true)", v, ok)
	}
}

func TestSuggestName(t *testing.T) {
	candidates := []string{"System.Convert", "System.Text.Encoding"}
	if got := SuggestName("System.Convrt", candidates); got != "System.Convert" {
		t.Errorf("SuggestName = %q, want %q", got, "System.Convert")
	}
	if got := SuggestName("Completely.Unrelated.Name", candidates); got != "" {
		t.Errorf("SuggestName for an unrelated name = %q, want \"\"", got)
	}
}

func TestValTypeNameRendering(t *testing.T) {
	cases := []struct {
		vt   ValType
		want string
	}{
		{Int, "Int32"},
		{Float, "Double"},
		{Bool, "Boolean"},
		{String, "String"},
		{Object(), "Object[]"},
		{ArrayOf(Int), "Int32[]"},
		{HashTable, "Hashtable"},
		{RuntimeObjectType("System.Text.Encoding"), "System.Text.Encoding"},
	}
	for _, c := range cases {
		if got := c.vt.Name(); got != c.want {
			t.Errorf("Name() = %q, want %q", got, c.want)
		}
	}
}

func TestCastAliasesAndArraySuffix(t *testing.T) {
	vt, ok := Cast("int", nil)
	if !ok || vt.Kind != KindInt {
		t.Errorf("Cast(int) = (%#v, %v), want Int", vt, ok)
	}
	vt, ok = Cast("String[]", nil)
	if !ok || vt.Kind != KindArray || vt.Elem.Kind != KindString {
		t.Errorf("Cast(String[]) = %#v, want array-of-string", vt)
	}
	if _, ok := Cast("NoSuchType", nil); ok {
		t.Error("Cast of an unknown type name should fail")
	}
}
