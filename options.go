// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package shellvm is the public entry point (the Session façade): a
// small root package exposing a functional-options constructor over the
// internal parser/evaluator.
package shellvm

import "github.com/shellvm/shellvm/value"

// Option configures a Session via the functional-options pattern.
type Option func(*Session)

// WithVariables seeds the session's Global scope before the first
// ParseInput call.
func WithVariables(vars map[string]value.Val) Option {
	return func(s *Session) {
		s.initialVars = vars
	}
}

// WithForceVarEval enables soft-eval mode (GLOSSARY's force_var_eval): an
// undefined variable read resolves to Null instead of collecting
// VariableNotDefined, useful for revealing structure in scripts that
// reference names never explicitly assigned.
func WithForceVarEval(on bool) Option {
	return func(s *Session) {
		s.forceVarEval = on
	}
}

// Logger is the narrow hook a host application can satisfy to observe
// parse/eval tracing at Debug level (see internal/slogger); kept as an
// interface here so this package never imports logrus directly.
type Logger interface {
	Debugf(format string, args ...any)
}

// WithLogger attaches a Logger a Session calls at Debug level around each
// ParseInput. The evaluator core stays silent; logging lives at the
// edges.
func WithLogger(l Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}
