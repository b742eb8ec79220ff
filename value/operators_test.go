// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import "testing"

func TestBinaryTableCaseInsensitiveLookup(t *testing.T) {
	for _, spelling := range []string{"-EQ", "-eq", "-Eq"} {
		if _, ok := LookupBinary(spelling); !ok {
			t.Errorf("LookupBinary(%q) not found", spelling)
		}
	}
	if _, ok := LookupBinary("-nosuchop"); ok {
		t.Error("LookupBinary(-nosuchop) unexpectedly found")
	}
}

func TestUnaryTableLookup(t *testing.T) {
	fn, ok := LookupUnary("-NOT")
	if !ok {
		t.Fatal("-not not found")
	}
	res, err := fn(Bool(false))
	if err != nil {
		t.Fatal(err)
	}
	if res != Bool(true) {
		t.Errorf("-not false = %v, want true", res)
	}
}

func TestEqMixedStringNumber(t *testing.T) {
	eq, err := Eq(String("5"), Int(5), true)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Error("\"5\" -eq 5 should be true")
	}
}

func TestEqCaseInsensitiveDefault(t *testing.T) {
	eq, err := Eq(String("ABC"), String("abc"), true)
	if err != nil {
		t.Fatal(err)
	}
	if !eq {
		t.Error("default -eq should be case-insensitive")
	}
	eq, err = Eq(String("ABC"), String("abc"), false)
	if err != nil {
		t.Fatal(err)
	}
	if eq {
		t.Error("-ceq should be case-sensitive")
	}
}

func TestComparisonTableOrdering(t *testing.T) {
	fn, ok := BinaryTable()["-gt"]
	if !ok {
		t.Fatal("-gt missing")
	}
	res, err := fn(Int(5), Int(3))
	if err != nil {
		t.Fatal(err)
	}
	if res != Bool(true) {
		t.Errorf("5 -gt 3 = %v, want true", res)
	}
}

func TestContainsAndIn(t *testing.T) {
	arr := NewArray(String("a"), String("b"), String("c"))
	fn := BinaryTable()["-contains"]
	res, err := fn(arr, String("B"))
	if err != nil {
		t.Fatal(err)
	}
	if res != Bool(true) {
		t.Error("-contains should be case-insensitive and find \"B\"")
	}
	in := BinaryTable()["-in"]
	res, err = in(String("z"), arr)
	if err != nil {
		t.Fatal(err)
	}
	if res != Bool(false) {
		t.Error("-in should be false for an element not present")
	}
}

func TestLikeGlob(t *testing.T) {
	fn := BinaryTable()["-like"]
	res, err := fn(String("hello.txt"), String("*.TXT"))
	if err != nil {
		t.Fatal(err)
	}
	if res != Bool(true) {
		t.Error("-like should match case-insensitively with glob wildcards")
	}
}

func TestBitwiseOps(t *testing.T) {
	res, err := BAnd(Int(6), Int(3))
	if err != nil {
		t.Fatal(err)
	}
	if res.(Int) != 2 {
		t.Errorf("6 -band 3 = %v, want 2", res)
	}
	if _, err := BAnd(&RuntimeObject{TypeName: "Foo"}, Int(1)); err == nil {
		t.Error("bitwise ops on an object should error")
	}
}

func TestLogicalOps(t *testing.T) {
	res, _ := And(Bool(true), Int(0))
	if res != Bool(false) {
		t.Errorf("true -and 0 = %v, want false", res)
	}
	res, _ = Or(Bool(false), Int(1))
	if res != Bool(true) {
		t.Errorf("false -or 1 = %v, want true", res)
	}
}

func TestIncDecAsymmetry(t *testing.T) {
	newV, ret := IncDec(Int(5), 1, true)
	if newV.(Int) != 6 || ret.(Int) != 6 {
		t.Errorf("pre-increment of 5 = (%v,%v), want (6,6)", newV, ret)
	}
	newV, ret = IncDec(Int(5), 1, false)
	if newV.(Int) != 6 || ret.(Int) != 5 {
		t.Errorf("post-increment of 5 = (%v,%v), want (6,5)", newV, ret)
	}
	newV, ret = IncDec(String("x"), 1, false)
	if newV.(String) != "x" {
		t.Errorf("post-increment of a String should leave operand unchanged")
	}
	if _, ok := ret.(Null); !ok {
		t.Errorf("post-increment of a String should yield Null, got %#v", ret)
	}
}
