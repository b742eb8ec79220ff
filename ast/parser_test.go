// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import "testing"

func parseOne(t *testing.T, src string) Node {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("Parse(%q) produced %d statements, want 1", src, len(prog.Statements))
	}
	return prog.Statements[0]
}

func TestParseIntAndFloatLiterals(t *testing.T) {
	n := parseOne(t, "42")
	lit, ok := n.(*IntLit)
	if !ok || lit.Value != 42 {
		t.Errorf("got %#v, want IntLit(42)", n)
	}

	n = parseOne(t, "0x4d")
	lit, ok = n.(*IntLit)
	if !ok || lit.Value != 77 {
		t.Errorf("got %#v, want IntLit(77)", n)
	}

	n = parseOne(t, "3.5")
	flit, ok := n.(*FloatLit)
	if !ok || flit.Value != 3.5 {
		t.Errorf("got %#v, want FloatLit(3.5)", n)
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	n := parseOne(t, "1 + 2 * 3")
	bin, ok := n.(*BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("got %#v, want a top-level '+' BinaryExpr", n)
	}
	rhs, ok := bin.Right.(*BinaryExpr)
	if !ok || rhs.Op != "*" {
		t.Errorf("right side = %#v, want a '*' BinaryExpr", bin.Right)
	}
}

func TestParseVariableScopePrefix(t *testing.T) {
	n := parseOne(t, "$global:foo")
	v, ok := n.(*VarRef)
	if !ok || v.Scope != "global" || v.Name != "foo" {
		t.Errorf("got %#v, want VarRef{global,foo}", n)
	}
}

func TestParsePipeline(t *testing.T) {
	n := parseOne(t, "1,2,3 | Where-Object { $_ -gt 1 }")
	p, ok := n.(*Pipeline)
	if !ok || len(p.Stages) != 2 {
		t.Fatalf("got %#v, want a 2-stage Pipeline", n)
	}
}

func TestParseJoinUnaryAndBinary(t *testing.T) {
	n := parseOne(t, "-join @('a','b','c')")
	u, ok := n.(*UnaryExpr)
	if !ok || u.Op != "-join" {
		t.Fatalf("got %#v, want UnaryExpr(-join)", n)
	}

	n = parseOne(t, "@('a','b') -join ','")
	b, ok := n.(*BinaryExpr)
	if !ok || b.Op != "-join" {
		t.Fatalf("got %#v, want BinaryExpr(-join)", n)
	}
}

func TestParseClassDecl(t *testing.T) {
	src := `class Point {
		[int] $X = 0
		[int] $Y = 0
		Sum() {
			return $this
		}
	}`
	n := parseOne(t, src)
	cd, ok := n.(*ClassDecl)
	if !ok {
		t.Fatalf("got %#v, want *ClassDecl", n)
	}
	if cd.Name != "Point" {
		t.Errorf("class name = %q, want Point", cd.Name)
	}
	if len(cd.Properties) != 2 {
		t.Fatalf("got %d properties, want 2", len(cd.Properties))
	}
	if len(cd.Methods) != 1 || cd.Methods[0].Name != "Sum" {
		t.Fatalf("got %#v, want a single Sum method", cd.Methods)
	}
}

func TestParseScriptBlockLitCapturesSource(t *testing.T) {
	n := parseOne(t, "{ $_ + 1 }")
	sb, ok := n.(*ScriptBlockLit)
	if !ok {
		t.Fatalf("got %#v, want *ScriptBlockLit", n)
	}
	if sb.Source == "" {
		t.Error("ScriptBlockLit.Source should capture the block's source text, not be left empty")
	}
}

func TestParseStaticAccess(t *testing.T) {
	n := parseOne(t, "[System.Convert]::FromBase64String(\"aGk=\")")
	sa, ok := n.(*StaticAccess)
	if !ok || !sa.IsCall || sa.TypeName != "System.Convert" || sa.Member != "FromBase64String" {
		t.Fatalf("got %#v, want a static call StaticAccess", n)
	}
}

func TestParseCastExpr(t *testing.T) {
	n := parseOne(t, "[char](70+44-44)")
	ce, ok := n.(*CastExpr)
	if !ok || ce.TypeName != "char" {
		t.Fatalf("got %#v, want CastExpr(char)", n)
	}
}

func TestParseRejectsUnbalancedBlock(t *testing.T) {
	if _, err := Parse("if ($true) { 1"); err == nil {
		t.Fatal("expected a ParseError for an unterminated block")
	} else if _, ok := err.(*ParseError); !ok {
		t.Errorf("error is %T, want *ParseError", err)
	}
}
