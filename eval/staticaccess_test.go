// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"testing"

	"github.com/shellvm/shellvm/value"
)

func TestStaticAccessFromBase64StringThenGetString(t *testing.T) {
	// base64("Go") little-endian UTF-16: 'G'=0x47, 'o'=0x6f.
	b64 := "RwBvAA=="
	v, errs := run(t, `[System.Convert]::FromBase64String("`+b64+`")`)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	arr, ok := v.(*value.Array)
	if !ok || len(arr.Elems) != 4 {
		t.Fatalf("FromBase64String result = %#v, want a 4-element Char array", v)
	}

	v2, errs2 := run(t, `$bytes = [System.Convert]::FromBase64String("`+b64+`")
[System.Text.Encoding]::Unicode.GetString($bytes)`)
	if len(errs2) != 0 {
		t.Fatalf("unexpected errors: %v", errs2)
	}
	if got := value.CastToString(v2); got != "Go" {
		t.Fatalf("GetString result = %q, want \"Go\"", got)
	}
}

func TestStaticAccessUnknownTypeCollectsError(t *testing.T) {
	_, errs := run(t, `[System.DoesNotExist]::Whatever()`)
	if len(errs) != 1 {
		t.Fatalf("want exactly one collected error, got %v", errs)
	}
}
