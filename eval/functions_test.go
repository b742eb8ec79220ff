// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/shellvm/shellvm/value"
)

func TestFunctionPositionalBinding(t *testing.T) {
	v, errs := run(t, `function Double {
  param($x)
  $x * 2
}
Double 21`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "42" {
		t.Fatalf("Double 21 = %q, want 42", got)
	}
}

func TestFunctionNamedBinding(t *testing.T) {
	v, errs := run(t, `function Greet {
  param($name, $greeting)
  $greeting + ", " + $name
}
Greet -name "World" -greeting "Hello"`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "Hello, World" {
		t.Fatalf("got %q, want \"Hello, World\"", got)
	}
}

func TestFunctionSwitchParam(t *testing.T) {
	withSwitch, errs := run(t, `function Flag {
  param([switch]$On)
  $On
}
Flag -On`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(withSwitch); got != "True" {
		t.Fatalf("Flag -On = %q, want True", got)
	}

	withoutSwitch, errs2 := run(t, `function Flag {
  param([switch]$On)
  $On
}
Flag`)
	if len(errs2) != 0 {
		t.Fatalf("unexpected errors: %v", errs2)
	}
	if got := value.CastToString(withoutSwitch); got != "False" {
		t.Fatalf("Flag (no switch) = %q, want False", got)
	}
}

func TestFunctionMissingParamDefaultsToNull(t *testing.T) {
	v, errs := run(t, `function NeedsArg {
  param($x)
  $x
}
NeedsArg`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := v.(value.Null); !ok {
		t.Fatalf("missing positional param should bind Null, got %#v", v)
	}
}

func TestScriptBlockInvokeAmpersandPushesNewScope(t *testing.T) {
	v, errs := run(t, `$x = 1
& { param($x) $x = 2 } 5
$x`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "1" {
		t.Fatalf("`&` should not leak assignments into the caller scope, got %q", got)
	}
}

func TestScriptBlockInvokeDotSharesCallerScope(t *testing.T) {
	v, errs := run(t, `$x = 1
. { $x = 2 }
$x`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if got := value.CastToString(v); got != "2" {
		t.Fatalf("`.` should share the caller's scope, got %q", got)
	}
}
