// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package shellvm

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shellvm/shellvm/value"
)

// TestScriptResultScenarios pins the seven literal scenarios spec.md §8
// requires verbatim: input string -> final-value canonical rendering.
func TestScriptResultScenarios(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   string
	}{
		{
			// spec §8 scenario 1: string concatenation left-biases to a
			// string (" " + 123 -> " 123"), then subtraction coerces that
			// string back to a number before computing 123 - 0.1.
			name:   "string/number coercion round trip",
			source: `" " + 0123 - 0.1`,
			want:   "122.9",
		},
		{
			name:   "replace",
			source: `"Hello World" -replace "World", "PowerShell"`,
			want:   "Hello PowerShell",
		},
		{
			name:   "unary join",
			source: `-join @('a','b','c')`,
			want:   "abc",
		},
		{
			name:   "capturing split",
			source: `"Lastname:FirstName:Address" -split "(:)"`,
			want:   "Lastname : FirstName : Address",
		},
		{
			name:   "char cast of arithmetic",
			source: `[char](70+44-44)`,
			want:   "F",
		},
		{
			name: "character-arithmetic obfuscation probe",
			source: `$s="System.$([cHAR]([ByTE]0x4d)+[ChAR]([byte]0x61)+[chAr](110)+[cHar]([byTE]0x61)+[cHaR](103)+[cHar](101*64/64)+[chaR]([byTE]0x6d)+[cHAr](101)+[CHAr]([byTE]0x6e)+[Char](116*103/103))"
$s`,
			want: "System.Management",
		},
		{
			name:   "normalize FormD strips non-ASCII",
			source: `('Âmsí'+'Ùtìl'+'s').Normalize('FormD')`,
			want:   "AmsiUtils",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New()
			res := s.ParseInput(tc.source)
			got := value.CastToString(res.Result())
			if got != tc.want {
				t.Errorf("ParseInput(%q).Result() = %q, want %q (errors: %v)", tc.source, got, tc.want, res.Errors())
			}
		})
	}
}

func TestParseInputParseErrorIsFatalOnlyToThatCall(t *testing.T) {
	s := New()
	bad := s.ParseInput(`$x = (1 +`)
	if len(bad.Errors()) != 1 {
		t.Fatalf("want exactly one error on parse failure, got %v", bad.Errors())
	}
	if got := value.CastToString(bad.Result()); got != "" {
		t.Fatalf("Result() on parse failure = %q, want empty", got)
	}

	// The session itself must still be usable afterward.
	good := s.ParseInput(`1 + 1`)
	if len(good.Errors()) != 0 {
		t.Fatalf("session state corrupted by prior parse failure: %v", good.Errors())
	}
	if got := value.CastToString(good.Result()); got != "2" {
		t.Fatalf("Result() = %q, want 2", got)
	}
}

func TestSafeEval(t *testing.T) {
	s := New()
	if got, want := s.SafeEval(`1 + 2`), "3"; got != want {
		t.Fatalf("SafeEval() = %q, want %q", got, want)
	}
}

func TestWithVariablesSeedsGlobals(t *testing.T) {
	s := New(WithVariables(map[string]value.Val{"name": value.String("world")}))
	res := s.ParseInput(`"hello $name"`)
	if got, want := value.CastToString(res.Result()), "hello world"; got != want {
		t.Fatalf("Result() = %q, want %q (errors: %v)", got, want, res.Errors())
	}
}

func TestWithForceVarEvalSoftensUndefinedReads(t *testing.T) {
	strict := New()
	strictRes := strict.ParseInput(`$undefinedThing`)
	if len(strictRes.Errors()) == 0 {
		t.Fatalf("strict session: want a VariableNotDefined error, got none")
	}

	soft := New(WithForceVarEval(true))
	softRes := soft.ParseInput(`$undefinedThing`)
	if len(softRes.Errors()) != 0 {
		t.Fatalf("soft-eval session: want no errors, got %v", softRes.Errors())
	}
	if diff := cmp.Diff(value.Null{}, softRes.Result()); diff != "" {
		t.Fatalf("soft-eval session Result() mismatch (-want +got):\n%s", diff)
	}
}

func TestDeobfuscatedRendersFailedStatementsVerbatim(t *testing.T) {
	s := New()
	res := s.ParseInput(`$undefinedThing`)
	if got, want := res.Deobfuscated(), `$undefinedThing`; got != want {
		t.Fatalf("Deobfuscated() = %q, want %q", got, want)
	}
}

func TestOutputCollectsWriteCommands(t *testing.T) {
	s := New()
	res := s.ParseInput("Write-Output 'hi'\nWrite-Output 'there'")
	want := "hi\nthere\n"
	if res.Output() != want {
		t.Fatalf("Output() = %q, want %q", res.Output(), want)
	}
}
