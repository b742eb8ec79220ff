// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package eval

import "github.com/shellvm/shellvm/value"

// Val is a local alias for value.Val, used throughout this package's
// signatures to keep them readable.
type Val = value.Val

// Bool, Null are the two variants the store references directly (the
// Special scope's built-in constants); everything else flows through Val.
type Bool = value.Bool
type Null = value.Null
