// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import "github.com/shellvm/shellvm/types"

// isObjectLike reports whether v is a RuntimeObject/RuntimeType, the kinds
// bitwise operators refuse (error if the target is an object/type).
func isObjectLike(v Val) bool {
	switch v.(type) {
	case *RuntimeObject, *RuntimeType:
		return true
	default:
		return false
	}
}

func bitwiseOperands(op string, a, b Val) (Int, Int, *types.Error) {
	if isObjectLike(a) || isObjectLike(b) {
		return 0, 0, types.NewError(types.ErrOperationNotDefined, "%s not defined for %s and %s", op, a.TType().Name(), b.TType().Name())
	}
	ai, err := CastToInt(a)
	if err != nil {
		return 0, 0, err
	}
	bi, err := CastToInt(b)
	if err != nil {
		return 0, 0, err
	}
	return ai, bi, nil
}

func BAnd(a, b Val) (Val, *types.Error) {
	x, y, err := bitwiseOperands("-band", a, b)
	if err != nil {
		return Null{}, err
	}
	return x & y, nil
}

func BOr(a, b Val) (Val, *types.Error) {
	x, y, err := bitwiseOperands("-bor", a, b)
	if err != nil {
		return Null{}, err
	}
	return x | y, nil
}

func BXor(a, b Val) (Val, *types.Error) {
	x, y, err := bitwiseOperands("-bxor", a, b)
	if err != nil {
		return Null{}, err
	}
	return x ^ y, nil
}

func Shl(a, b Val) (Val, *types.Error) {
	x, y, err := bitwiseOperands("-shl", a, b)
	if err != nil {
		return Null{}, err
	}
	return x << uint(y), nil
}

func Shr(a, b Val) (Val, *types.Error) {
	x, y, err := bitwiseOperands("-shr", a, b)
	if err != nil {
		return Null{}, err
	}
	return x >> uint(y), nil
}

// BNot implements unary `-bnot`.
func BNot(a Val) (Val, *types.Error) {
	if isObjectLike(a) {
		return Null{}, types.NewError(types.ErrOperationNotDefined, "-bnot not defined for %s", a.TType().Name())
	}
	i, err := CastToInt(a)
	if err != nil {
		return Null{}, err
	}
	return ^i, nil
}

// BitwiseTable is the spelling->function map for `-band -bor -bxor -shl
// -shr`.
var BitwiseTable = map[string]func(Val, Val) (Val, *types.Error){
	"-band": BAnd,
	"-bor":  BOr,
	"-bxor": BXor,
	"-shl":  Shl,
	"-shr":  Shr,
}
