// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import (
	"strings"

	"github.com/shellvm/shellvm/ast"
	"github.com/shellvm/shellvm/value"
)

// expandString performs double-quoted-string expansion: variable and
// sub-expression expansion. The lexer hands the evaluator the raw,
// backtick-unescaped text with
// `$name`/`$scope:name` variable references and `$( ... )`
// sub-expressions left untouched; this function resolves both and
// concatenates the result with the literal segments between them.
func (e *Evaluator) expandString(s string) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '$' {
			out.WriteByte(s[i])
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '(' {
			end := matchParen(s, i+1)
			if end < 0 {
				out.WriteByte(s[i])
				i++
				continue
			}
			inner := s[i+2 : end]
			v, err := e.evalSubExprText(inner)
			if err != nil {
				return out.String(), err
			}
			out.WriteString(value.CastToString(v))
			i = end + 1
			continue
		}
		name, next := scanVarName(s, i+1)
		if name == "" {
			out.WriteByte(s[i])
			i++
			continue
		}
		scope, varName := splitScopePrefix(name)
		v, ok := e.Store.Get(scope, varName)
		if !ok {
			if !e.ForceVarEval {
				out.WriteString("$" + name)
				i = next
				continue
			}
			v = Null{}
		}
		out.WriteString(value.CastToString(v))
		i = next
	}
	return out.String(), nil
}

func (e *Evaluator) evalSubExprText(src string) (Val, error) {
	prog, err := ast.Parse(src)
	if err != nil {
		return value.String(""), nil
	}
	return e.EvalStatements(prog.Statements)
}

// scanVarName reads a `name` or `scope:name` identifier starting at pos
// (just past the leading '$'), mirroring the lexer's lexVariable rule.
func scanVarName(s string, pos int) (name string, next int) {
	start := pos
	for pos < len(s) {
		r := s[pos]
		if r == '_' || r == ':' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			pos++
			continue
		}
		break
	}
	return s[start:pos], pos
}

func splitScopePrefix(text string) (scope, name string) {
	if i := strings.IndexByte(text, ':'); i >= 0 {
		return text[:i], text[i+1:]
	}
	return "", text
}

// matchParen returns the index of the ')' matching the '(' at openPos,
// skipping over quoted-string contents so parens inside a nested literal
// don't confuse the count.
func matchParen(s string, openPos int) int {
	depth := 0
	i := openPos
	for i < len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		case '\'':
			i++
			for i < len(s) && s[i] != '\'' {
				i++
			}
		case '"':
			i++
			for i < len(s) && s[i] != '"' {
				if s[i] == '`' {
					i++
				}
				i++
			}
		}
		i++
	}
	return -1
}
