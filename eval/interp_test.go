// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/shellvm/shellvm/value"
)

func TestExpandStringInterpolatesVariable(t *testing.T) {
	v, errs := run(t, `$name = "World"
"Hello $name"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "Hello World" {
		t.Fatalf("got %q, want \"Hello World\"", got)
	}
}

func TestExpandStringEvaluatesSubExpression(t *testing.T) {
	v, errs := run(t, `"Sum: $(1 + 2)"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "Sum: 3" {
		t.Fatalf("got %q, want \"Sum: 3\"", got)
	}
}

func TestExpandStringUndefinedVariablePreservesLiteralText(t *testing.T) {
	v, errs := run(t, `"value is $undefined here"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "value is $undefined here" {
		t.Fatalf("got %q, want the literal $undefined text preserved", got)
	}
}

func TestNonExpandableStringLeavesDollarSignsAlone(t *testing.T) {
	v, errs := run(t, `'Hello $name'`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "Hello $name" {
		t.Fatalf("single-quoted literal should not expand, got %q", got)
	}
}
