// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package shellvm

import (
	"strings"

	"github.com/google/uuid"

	"github.com/shellvm/shellvm/ast"
	"github.com/shellvm/shellvm/eval"
	"github.com/shellvm/shellvm/value"
)

// Session owns one variable store, one shared type registry, and the
// session-lifetime error buffer. A single session is single-threaded;
// multiple sessions are independent. ID gives host applications running
// many sessions a correlation key.
type Session struct {
	ID string

	ev *eval.Evaluator

	initialVars  map[string]value.Val
	forceVarEval bool
	logger       Logger
}

// New builds a Session, applying options in order.
func New(options ...Option) *Session {
	s := &Session{ID: uuid.NewString()}
	for _, opt := range options {
		opt(s)
	}
	s.ev = eval.New()
	s.ev.ForceVarEval = s.forceVarEval
	if s.initialVars != nil {
		s.ev.Store.SeedGlobal(s.initialVars)
	}
	return s
}

// WithVariables seeds additional globals into an already-constructed
// Session, available both as a New() option and as a standalone call
// between ParseInput invocations.
func (s *Session) WithVariables(vars map[string]value.Val) {
	s.ev.Store.SeedGlobal(vars)
}

func (s *Session) debugf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Debugf(format, args...)
	}
}

// ParseInput parses and evaluates source, returning a ScriptResult (spec
// §4.8). A grammar rejection is fatal to this call only: it yields a
// ScriptResult whose Result is Null and whose Errors holds exactly the one
// *ast.ParseError, leaving the session's own state untouched.
func (s *Session) ParseInput(source string) *ScriptResult {
	s.debugf("parsing %d byte script", len(source))
	prog, err := ast.Parse(source)
	if err != nil {
		return &ScriptResult{val: value.Null{}, errs: []error{err}}
	}

	s.ev.Output.Reset()
	startErrs := len(s.ev.Errs)

	var last value.Val = value.Null{}
	rendered := make([]string, 0, len(prog.Statements))
	for i, stmt := range prog.Statements {
		before := len(s.ev.Errs)
		v, ctrl := s.ev.Eval(stmt)
		// break/continue reaching top level have no enclosing loop to
		// unwind to; treat the statement as having produced Null rather
		// than propagate an internal control-flow signal out of the
		// façade.
		if ctrl != nil {
			v = value.Null{}
		}
		last = v

		segStart := stmt.Loc().Offset
		segEnd := len(source)
		if i+1 < len(prog.Statements) {
			segEnd = prog.Statements[i+1].Loc().Offset
		}
		seg := strings.TrimRight(strings.TrimSpace(source[segStart:segEnd]), "; \t\r\n")

		if len(s.ev.Errs) > before {
			rendered = append(rendered, seg)
		} else {
			rendered = append(rendered, value.CastToString(v))
		}
	}

	callErrs := s.ev.Errs[startErrs:]
	errsOut := make([]error, len(callErrs))
	for i, e := range callErrs {
		errsOut[i] = e
	}

	return &ScriptResult{
		val:          last,
		output:       s.ev.Output.String(),
		deobfuscated: strings.Join(rendered, "\n"),
		errs:         errsOut,
	}
}

// SafeEval evaluates source and returns only the final value's
// canonical string.
func (s *Session) SafeEval(source string) string {
	res := s.ParseInput(source)
	return value.CastToString(res.Result())
}
