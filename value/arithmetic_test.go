// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"testing"

	"github.com/shellvm/shellvm/types"
)

func TestAddStringConcatIsLeftBiased(t *testing.T) {
	res, err := Add(String("foo"), Int(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.String() != "foo1" {
		t.Errorf("got %q, want %q", res.String(), "foo1")
	}
}

func TestAddNumericPromotion(t *testing.T) {
	res, err := Add(Int(2), Float(1.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f, ok := res.(Float)
	if !ok || float64(f) != 3.5 {
		t.Errorf("Add(2, 1.5) = %#v, want Float(3.5)", res)
	}
}

func TestAddArrayConcat(t *testing.T) {
	res, err := Add(NewArray(Int(1)), NewArray(Int(2), Int(3)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	arr, ok := res.(*Array)
	if !ok || len(arr.Elems) != 3 {
		t.Fatalf("Add(array,array) = %#v, want 3-element array", res)
	}
}

// TestMulStringRepeat covers spec §8's invariant: for all strings s and
// integers n>=0, s*n has length len(s)*n.
func TestMulStringRepeat(t *testing.T) {
	cases := []struct {
		s string
		n int64
	}{
		{"ab", 0}, {"ab", 1}, {"ab", 3}, {"", 5},
	}
	for _, c := range cases {
		res, err := Mul(String(c.s), Int(c.n))
		if err != nil {
			t.Fatalf("Mul(%q, %d) error: %v", c.s, c.n, err)
		}
		s, ok := res.(String)
		if !ok {
			t.Fatalf("Mul(%q, %d) = %#v, want String", c.s, c.n, res)
		}
		if len(string(s)) != len(c.s)*int(c.n) {
			t.Errorf("len(%q*%d) = %d, want %d", c.s, c.n, len(string(s)), len(c.s)*int(c.n))
		}
	}
	// commutative form: n * s
	res, err := Mul(Int(3), String("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.String() != "xxx" {
		t.Errorf("Mul(3, %q) = %q, want %q", "x", res.String(), "xxx")
	}
}

func TestMulNegativeRepeatIsArgumentOutOfRange(t *testing.T) {
	_, err := Mul(String("x"), Int(-1))
	if err == nil || err.Kind != types.ErrArgumentOutOfRange {
		t.Fatalf("expected ArgumentOutOfRange, got %v", err)
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := Div(Int(1), Int(0)); err == nil {
		t.Fatal("expected DivByZero error")
	}
	if _, err := Div(Float(1), Float(0)); err == nil {
		t.Fatal("expected DivByZero error")
	}
}

func TestModFollowsDividendSign(t *testing.T) {
	res, err := Mod(Int(-7), Int(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.(Int) != -1 {
		t.Errorf("Mod(-7,3) = %v, want -1", res)
	}
}

func TestAddIntRoundTrip(t *testing.T) {
	// spec §8 invariant: (a+b)-b == a for Int operands.
	a, b := Int(42), Int(17)
	sum, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Sub(sum, b)
	if err != nil {
		t.Fatal(err)
	}
	if back.(Int) != a {
		t.Errorf("(a+b)-b = %v, want %v", back, a)
	}
}
