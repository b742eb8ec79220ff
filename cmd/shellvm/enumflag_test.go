// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"testing"
)

func TestEnumFlag(t *testing.T) {
	flag := newEnumFlag("text", []string{"text", "json"})

	if flag.String() != "text" {
		t.Fatalf("default value = %q, want text", flag.String())
	}

	if err := flag.Set("json"); err != nil {
		t.Fatalf("Set(json): %v", err)
	}
	if flag.String() != "json" {
		t.Fatalf("value = %q, want json", flag.String())
	}

	if !strings.Contains(flag.Type(), "text, json") {
		t.Fatalf("Type() = %q, want it to list text, json", flag.Type())
	}

	if err := flag.Set("xml"); err == nil {
		t.Fatal("Set(xml) should have failed, xml isn't in the enum")
	}
	if flag.String() != "json" {
		t.Fatalf("a rejected Set should leave the prior value in place, got %q", flag.String())
	}
}
