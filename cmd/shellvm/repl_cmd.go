// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shellvm/shellvm"
	"github.com/shellvm/shellvm/internal/repl"
)

func newReplCmd() *cobra.Command {
	var historyFile string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive shellvm session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := shellvm.New()
			r := repl.New(session, cmd.OutOrStdout(), historyFile)
			r.Loop()
			return nil
		},
	}

	home, _ := os.UserHomeDir()
	defaultHistory := ""
	if home != "" {
		defaultHistory = filepath.Join(home, ".shellvm_history")
	}
	cmd.Flags().StringVar(&historyFile, "history-file", defaultHistory, "path to persist REPL command history")
	return cmd
}
