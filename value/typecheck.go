// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import "github.com/shellvm/shellvm/types"

// isOp implements `-is`/`-isnot`: simple ValType equality against a
// RuntimeType right operand.
func isOp(negate bool) func(Val, Val) (Val, *types.Error) {
	return func(a, b Val) (Val, *types.Error) {
		rt, ok := b.(*RuntimeType)
		if !ok {
			return Null{}, types.NewError(types.ErrUnknownType, "right operand of -is/-isnot must be a type literal")
		}
		eq := a.TType().Equal(rt.Described)
		if negate {
			eq = !eq
		}
		return Bool(eq), nil
	}
}

// TypeCheckTable builds `-is`/`-isnot`.
var TypeCheckTable = map[string]func(Val, Val) (Val, *types.Error){
	"-is":    isOp(false),
	"-isnot": isOp(true),
}
