// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import "github.com/shellvm/shellvm/types"

// And/Or/Xor coerce both operands to Bool.
func And(a, b Val) (Val, *types.Error) { return Bool(CastToBool(a) && CastToBool(b)), nil }
func Or(a, b Val) (Val, *types.Error)  { return Bool(CastToBool(a) || CastToBool(b)), nil }
func Xor(a, b Val) (Val, *types.Error) { return Bool(CastToBool(a) != CastToBool(b)), nil }

// Not implements unary `-not`.
func Not(a Val) (Val, *types.Error) { return Bool(!CastToBool(a)), nil }

// LogicalTable builds `-and -or -xor`.
var LogicalTable = map[string]func(Val, Val) (Val, *types.Error){
	"-and": And,
	"-or":  Or,
	"-xor": Xor,
}
