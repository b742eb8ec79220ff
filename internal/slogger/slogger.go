// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package slogger is a thin wrapper around logrus. The evaluator core
// (ast/value/types/eval) never logs; it stays pure over its inputs, so
// this package is only ever reached from cmd and, optionally, a host's
// shellvm.WithLogger hook.
package slogger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is the narrow surface cmd and shellvm.Option need; it satisfies
// shellvm.Logger via Debugf.
type Logger struct {
	entry *logrus.Entry
}

// New builds a Logger writing to w at the given level ("debug", "info",
// "warn", "error").
func New(w io.Writer, level string) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return &Logger{entry: logrus.NewEntry(l)}
}

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

// WithField returns an entry-scoped logger carrying an extra field.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}
