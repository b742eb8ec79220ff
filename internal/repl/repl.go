// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package repl is an interactive, liner-backed read-eval-print loop over
// the shellvm session façade: a liner.State prompt, Ctrl+D/"exit" to
// quit, one statement per line fed straight to the session.
package repl

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/shellvm/shellvm"
)

const (
	initPrompt = "shellvm> "
	banner     = "shellvm REPL: type a script statement, or 'exit'/Ctrl+D to quit."
)

// REPL wraps one shellvm.Session with liner-based line editing and history.
type REPL struct {
	session     *shellvm.Session
	output      io.Writer
	historyPath string
}

// New builds a REPL over session, writing prompts/results to output.
// historyPath, when non-empty, persists command history across runs.
func New(session *shellvm.Session, output io.Writer, historyPath string) *REPL {
	return &REPL{session: session, output: output, historyPath: historyPath}
}

// Loop runs until the user types "exit", Ctrl+C (reprompts), or Ctrl+D.
func (r *REPL) Loop() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	r.loadHistory(line)
	fmt.Fprintln(r.output, banner)

	for {
		input, err := line.Prompt(initPrompt)
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return
		}
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil {
			fmt.Fprintln(r.output, "error (fatal):", err)
			return
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			return
		}
		line.AppendHistory(input)
		r.oneShot(trimmed)
		r.saveHistory(line)
	}
}

func (r *REPL) oneShot(stmt string) {
	res := r.session.ParseInput(stmt)
	if out := res.Output(); out != "" {
		fmt.Fprint(r.output, out)
	}
	fmt.Fprintln(r.output, res.Result().String())
	for _, e := range res.Errors() {
		fmt.Fprintln(r.output, "error:", e)
	}
}

// loadHistory/saveHistory are best-effort: a missing or unwritable
// history file is silently ignored. History persistence is a
// convenience, never load-bearing for the Loop itself.
func (r *REPL) loadHistory(line *liner.State) {
	if r.historyPath == "" {
		return
	}
	f, err := os.Open(r.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	line.ReadHistory(f)
}

func (r *REPL) saveHistory(line *liner.State) {
	if r.historyPath == "" {
		return
	}
	f, err := os.Create(r.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
