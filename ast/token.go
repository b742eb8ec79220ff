// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package ast implements the shell language's grammar: a hand-written
// scanner and recursive-descent/Pratt parser producing a concrete parse
// tree, plus the parser's own error type.
//
// The grammar is additionally documented as a PEG data artifact at
// grammar.peg; the parser below is written by hand rather than generated
// from it.
package ast

// TokKind enumerates lexical token kinds.
type TokKind int

const (
	TokEOF TokKind = iota
	TokNewline
	TokSemicolon
	TokIdent
	TokVariable // $name, possibly scope:name
	TokInt
	TokFloat
	TokString       // single-quoted, literal
	TokInterpString // double-quoted, may contain expansions
	TokOp           // punctuation/operator token, exact spelling in Text
	TokKeyword
	TokTypeLiteral // [TypeName]
)

// Token is one lexical unit.
type Token struct {
	Kind TokKind
	Text string
	Pos  Location
}

// keywords lists reserved words recognized by the lexer.
var keywords = map[string]bool{
	"if": true, "elseif": true, "else": true, "while": true, "for": true,
	"foreach": true, "in": true, "switch": true, "default": true,
	"break": true, "continue": true, "function": true, "class": true,
	"param": true, "return": true, "true": true, "false": true, "null": true,
}

func isKeyword(s string) bool {
	return keywords[s]
}
