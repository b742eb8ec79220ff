// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/shellvm/shellvm/value"
)

func TestClassConstructorAndInstanceMethod(t *testing.T) {
	source := `class Counter {
  $count = 0
  Counter($start) {
    $this.count = $start
  }
  Increment() {
    $this.count = $this.count + 1
    $this.count
  }
}
$c = [Counter]::new(5)
$c.Increment()`

	v, errs := run(t, source)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "6" {
		t.Fatalf("Increment() result = %q, want 6", got)
	}
}

func TestClassImplicitZeroArgConstructor(t *testing.T) {
	source := `class Empty {
  $flag = $true
  Check() {
    $this.flag
  }
}
$e = [Empty]::new()
$e.Check()`

	v, errs := run(t, source)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "True" {
		t.Fatalf("Check() result = %q, want True", got)
	}
}

func TestClassSingleConstructorFallbackIgnoresArgMismatch(t *testing.T) {
	source := `class OneArg {
  OneArg($x) { }
}
[OneArg]::new(1, 2, 3)`
	// Three args against a class with exactly one constructor still
	// resolves via the single-constructor fallback (types.Class's
	// ResolveConstructor), not an error — this pins that behavior rather
	// than assuming a strict arity check package types does not perform.
	_, errs := run(t, source)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestClassMultipleConstructorsNoMatchCollectsError(t *testing.T) {
	source := `class TwoCtors {
  TwoCtors() { }
  TwoCtors($x) { }
}
[TwoCtors]::new(1, 2, 3)`
	// Two constructors exist (zero-arg and one-arg), and neither matches
	// a 3-arg call once there is more than one overload to choose between.
	_, errs := run(t, source)
	if len(errs) != 1 {
		t.Fatalf("want exactly one IncorrectArgs error, got %v", errs)
	}
}
