// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/fortytw2/leaktest"

	"github.com/shellvm/shellvm/ast"
	"github.com/shellvm/shellvm/value"
)

func TestPipelineWhereObjectFilters(t *testing.T) {
	defer leaktest.Check(t)()

	v, errs := run(t, `1,2,3,4,5 | Where-Object { $_ -gt 2 }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	arr, ok := v.(*value.Array)
	if !ok {
		t.Fatalf("result should be an array, got %T", v)
	}
	if got := value.CastToString(arr); got != "3 4 5" {
		t.Fatalf("got %q, want \"3 4 5\"", got)
	}
}

func TestPipelineScriptBlockTransformsEachElement(t *testing.T) {
	defer leaktest.Check(t)()

	v, errs := run(t, `1,2,3 | { $_ * 10 }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	arr, ok := v.(*value.Array)
	if !ok {
		t.Fatalf("result should be an array, got %T", v)
	}
	if got := value.CastToString(arr); got != "10 20 30" {
		t.Fatalf("got %q, want \"10 20 30\"", got)
	}
}

func TestPipelineWriteOutputCollectsOutputStream(t *testing.T) {
	defer leaktest.Check(t)()

	prog, err := ast.Parse(`1,2 | Write-Output`)
	if err != nil {
		t.Fatalf("ast.Parse: %v", err)
	}
	e := New()
	if _, ctrlErr := e.Eval(prog); ctrlErr != nil {
		t.Fatalf("unexpected control-flow error: %v", ctrlErr)
	}
	if len(e.Errs) != 0 {
		t.Fatalf("unexpected errors: %v", e.Errs)
	}
	if got := e.Output.String(); got != "1\n2\n" {
		t.Fatalf("Output = %q, want \"1\\n2\\n\"", got)
	}
}

func TestPipelineGetProcessStubReturnsNull(t *testing.T) {
	defer leaktest.Check(t)()

	v, errs := run(t, `Get-Process`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := v.(value.Null); !ok {
		t.Fatalf("Get-Process stub should return Null, got %#v", v)
	}
}

func TestPipelineEmptyResultIsNull(t *testing.T) {
	defer leaktest.Check(t)()

	v, errs := run(t, `1,2,3 | Where-Object { $_ -gt 100 }`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if _, ok := v.(value.Null); !ok {
		t.Fatalf("an empty pipeline result should collapse to Null, got %#v", v)
	}
}
