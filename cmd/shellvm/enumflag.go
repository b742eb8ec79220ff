// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"
)

// enumFlag implements pflag.Value (Set/String/Type), restricting a flag
// to one of a fixed set of values instead of accepting any string
// cobra's StringVar would.
type enumFlag struct {
	value string
	vs    []string
}

func newEnumFlag(defaultValue string, vs []string) *enumFlag {
	return &enumFlag{value: defaultValue, vs: vs}
}

func (f *enumFlag) Set(s string) error {
	for _, v := range f.vs {
		if v == s {
			f.value = s
			return nil
		}
	}
	return fmt.Errorf("invalid value %q (want one of: %s)", s, strings.Join(f.vs, ", "))
}

func (f *enumFlag) String() string {
	return f.value
}

func (f *enumFlag) Type() string {
	return fmt.Sprintf("<%s>", strings.Join(f.vs, ", "))
}
