// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import "github.com/spf13/pflag"

// addOutputFormatFlag registers --output as a pflag.Value-backed enum.
// A FlagSet-level helper keeps each flag's construction in one place
// instead of inlined at every command.
func addOutputFormatFlag(fs *pflag.FlagSet, out *enumFlag) {
	fs.VarP(out, "output", "o", "set the output rendering format")
}
