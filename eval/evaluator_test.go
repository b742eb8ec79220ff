// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/shellvm/shellvm/ast"
	"github.com/shellvm/shellvm/value"
)

// run parses and evaluates source against a fresh Evaluator, returning the
// final value and whatever non-fatal errors were collected.
func run(t *testing.T, source string) (Val, []error) {
	t.Helper()
	prog, err := ast.Parse(source)
	if err != nil {
		t.Fatalf("ast.Parse(%q): %v", source, err)
	}
	e := New()
	v, ctrlErr := e.Eval(prog)
	if ctrlErr != nil {
		t.Fatalf("Eval(%q) returned a control-flow signal at top level: %v", source, ctrlErr)
	}
	errs := make([]error, len(e.Errs))
	for i, er := range e.Errs {
		errs[i] = er
	}
	return v, errs
}

func TestEvalLiterals(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{`1`, "1"},
		{`1.5`, "1.5"},
		{`$true`, "True"},
		{`$false`, "False"},
		{`$null`, ""},
		{`"plain"`, "plain"},
		{`'single $notInterpolated'`, "single $notInterpolated"},
	}
	for _, tc := range cases {
		v, errs := run(t, tc.source)
		if len(errs) != 0 {
			t.Errorf("%s: unexpected errors %v", tc.source, errs)
		}
		if got := value.CastToString(v); got != tc.want {
			t.Errorf("%s = %q, want %q", tc.source, got, tc.want)
		}
	}
}

func TestEvalArithmeticPromotion(t *testing.T) {
	v, _ := run(t, `1 + 2.0`)
	if _, ok := v.(value.Float); !ok {
		t.Fatalf("1 + 2.0 should promote to Float, got %T", v)
	}
	if got := value.CastToString(v); got != "3" {
		t.Fatalf("1 + 2.0 = %q, want 3", got)
	}
}

func TestEvalVariableAssignAndRead(t *testing.T) {
	v, errs := run(t, "$x = 5\n$x + 1")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "6" {
		t.Fatalf("got %q, want 6", got)
	}
}

func TestEvalUndefinedVariableIsCollectedNotFatal(t *testing.T) {
	v, errs := run(t, `$neverSet`)
	if len(errs) != 1 {
		t.Fatalf("want exactly one collected error, got %v", errs)
	}
	if _, ok := v.(value.Null); !ok {
		t.Fatalf("undefined variable should read as Null, got %T", v)
	}
}

func TestEvalCompoundAssignmentDefaultsToNull(t *testing.T) {
	// spec §4.7: compound assignment desugars to x = x <op> expr with x
	// defaulting to Null, without raising VariableNotDefined.
	v, errs := run(t, "$x += 5\n$x")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "5" {
		t.Fatalf("got %q, want 5", got)
	}
}

func TestEvalArrayBuildAndIndex(t *testing.T) {
	v, errs := run(t, "$a = 1,2,3\n$a[1]")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "2" {
		t.Fatalf("got %q, want 2", got)
	}
}

func TestEvalArrayNegativeIndex(t *testing.T) {
	v, errs := run(t, "$a = 1,2,3\n$a[-1]")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "3" {
		t.Fatalf("got %q, want 3", got)
	}
}

func TestEvalAtParensFlattensScalar(t *testing.T) {
	v, _ := run(t, `@(5)`)
	arr, ok := v.(*value.Array)
	if !ok || len(arr.Elems) != 1 {
		t.Fatalf("@(5) should be a single-element array, got %#v", v)
	}
}

func TestEvalEmptyAtParens(t *testing.T) {
	v, _ := run(t, `@()`)
	arr, ok := v.(*value.Array)
	if !ok || len(arr.Elems) != 0 {
		t.Fatalf("@() should be an empty array, got %#v", v)
	}
}

func TestEvalRange(t *testing.T) {
	v, errs := run(t, `1..3`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	arr, ok := v.(*value.Array)
	if !ok {
		t.Fatalf("1..3 should be an array, got %T", v)
	}
	if got := value.CastToString(arr); got != "1 2 3" {
		t.Fatalf("1..3 = %q, want \"1 2 3\"", got)
	}
}

func TestEvalRangeDescendingIsEmpty(t *testing.T) {
	v, _ := run(t, `3..1`)
	arr, ok := v.(*value.Array)
	if !ok || len(arr.Elems) != 0 {
		t.Fatalf("3..1 should be empty, got %#v", v)
	}
}

func TestEvalHashTableIndex(t *testing.T) {
	v, errs := run(t, `$h = @{ name = 'Ada' }
$h['name']`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "Ada" {
		t.Fatalf("got %q, want Ada", got)
	}
}

func TestEvalTypeLiteral(t *testing.T) {
	v, errs := run(t, `[int]`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	rt, ok := v.(*value.RuntimeType)
	if !ok {
		t.Fatalf("[int] should be a RuntimeType, got %T", v)
	}
	if got := rt.Described.Name(); got != "Int32" {
		t.Fatalf("[int].Name() = %q, want Int32", got)
	}
}

func TestEvalUnknownTypeLiteralCollectsError(t *testing.T) {
	_, errs := run(t, `[NotARealType]`)
	if len(errs) != 1 {
		t.Fatalf("want exactly one collected error, got %v", errs)
	}
}

func TestEvalIncDecAsymmetry(t *testing.T) {
	// spec §4.4: pre-forms on a non-numeric operand stringify/keep
	// unchanged; post-forms return Null. This is required, tested
	// behavior, not an oversight.
	preV, errs := run(t, `$s = "abc"
++$s`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors on pre-inc of string: %v", errs)
	}
	if got := value.CastToString(preV); got != "abc" {
		t.Fatalf("++$s on a string = %q, want unchanged \"abc\"", got)
	}

	postV, _ := run(t, `$s = "abc"
$s++`)
	if _, ok := postV.(value.Null); !ok {
		t.Fatalf("$s++ on a string should return Null, got %#v", postV)
	}
}

func TestEvalIncDecNumeric(t *testing.T) {
	v, errs := run(t, "$x = 5\n$x++\n$x")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "6" {
		t.Fatalf("post-increment then read = %q, want 6", got)
	}
}

func TestEvalDivByZeroCollected(t *testing.T) {
	v, errs := run(t, `1 / 0`)
	if len(errs) != 1 {
		t.Fatalf("want exactly one collected error, got %v", errs)
	}
	if _, ok := v.(value.Null); !ok {
		t.Fatalf("1/0 should yield a placeholder Null, got %#v", v)
	}
}
