// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package ast

import "fmt"

// Location marks a span in the source, carried on every node and on
// ParseError.
type Location struct {
	Row, Col int
	Offset   int
	Text     string // the literal source text this location covers
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Row, l.Col)
}

// ParseError reports a grammar rejection. It carries the offending span.
type ParseError struct {
	Location Location
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: %s", e.Location, e.Message)
}

// NewParseError builds a ParseError at loc with a formatted message.
func NewParseError(loc Location, format string, args ...any) *ParseError {
	return &ParseError{Location: loc, Message: fmt.Sprintf(format, args...)}
}
