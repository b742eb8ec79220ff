// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

func main() {
	// Tune GOMAXPROCS to the container's cgroup CPU quota, the same call
	// OPA's own main.go makes before building its root command.
	if _, err := maxprocs.Set(); err != nil {
		fmt.Fprintln(os.Stderr, "shellvm: failed to set GOMAXPROCS:", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
