// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"strings"

	"github.com/shellvm/shellvm/types"
)

// promote widens a pair of numeric Vals to a common representation:
// Float if either operand is Float, otherwise Int.
func promote(a, b Val) (af, bf Float, ai, bi Int, isFloat bool, err *types.Error) {
	_, aFloat := a.(Float)
	_, bFloat := b.(Float)
	isFloat = aFloat || bFloat
	if isFloat {
		x, e1 := CastToFloat(a)
		if e1 != nil {
			return 0, 0, 0, 0, true, e1
		}
		y, e2 := CastToFloat(b)
		if e2 != nil {
			return 0, 0, 0, 0, true, e2
		}
		return x, y, 0, 0, true, nil
	}
	x, e1 := CastToInt(a)
	if e1 != nil {
		return 0, 0, 0, 0, false, e1
	}
	y, e2 := CastToInt(b)
	if e2 != nil {
		return 0, 0, 0, 0, false, e2
	}
	return 0, 0, x, y, false, nil
}

func isStringlike(v Val) bool {
	switch v.(type) {
	case String, Char:
		return true
	default:
		return false
	}
}

// Add implements addition: string/char concatenation is left-biased,
// otherwise numeric with promotion.
func Add(a, b Val) (Val, *types.Error) {
	if isStringlike(a) {
		return String(a.String() + CastToString(b)), nil
	}
	if _, ok := a.(*Array); ok {
		ab, _ := a.(*Array)
		if bb, ok := b.(*Array); ok {
			out := append(append([]Val{}, ab.Elems...), bb.Elems...)
			return &Array{Elems: out}, nil
		}
		return &Array{Elems: append(append([]Val{}, ab.Elems...), b)}, nil
	}
	af, bf, ai, bi, isFloat, err := promote(a, b)
	if err != nil {
		return Null{}, err
	}
	if isFloat {
		return af + bf, nil
	}
	return ai + bi, nil
}

// Sub implements subtraction.
func Sub(a, b Val) (Val, *types.Error) {
	af, bf, ai, bi, isFloat, err := promote(a, b)
	if err != nil {
		return Null{}, err
	}
	if isFloat {
		return af - bf, nil
	}
	return ai - bi, nil
}

// Mul implements multiplication, including the `(string, int)` repeat
// form.
func Mul(a, b Val) (Val, *types.Error) {
	if s, ok := a.(String); ok {
		if n, ok := b.(Int); ok {
			if n < 0 {
				return Null{}, types.NewError(types.ErrArgumentOutOfRange, "repeat count must be non-negative")
			}
			return String(strings.Repeat(string(s), int(n))), nil
		}
	}
	if n, ok := a.(Int); ok {
		if s, ok := b.(String); ok {
			if n < 0 {
				return Null{}, types.NewError(types.ErrArgumentOutOfRange, "repeat count must be non-negative")
			}
			return String(strings.Repeat(string(s), int(n))), nil
		}
	}
	af, bf, ai, bi, isFloat, err := promote(a, b)
	if err != nil {
		return Null{}, err
	}
	if isFloat {
		return af * bf, nil
	}
	return ai * bi, nil
}

// Div implements division; division by zero yields DivByZero.
func Div(a, b Val) (Val, *types.Error) {
	af, bf, ai, bi, isFloat, err := promote(a, b)
	if err != nil {
		return Null{}, err
	}
	if isFloat {
		if bf == 0 {
			return Null{}, types.NewError(types.ErrDivByZero, "attempted to divide by zero")
		}
		return af / bf, nil
	}
	if bi == 0 {
		return Null{}, types.NewError(types.ErrDivByZero, "attempted to divide by zero")
	}
	return ai / bi, nil
}

// Mod implements remainder, following the sign of the dividend.
func Mod(a, b Val) (Val, *types.Error) {
	af, bf, ai, bi, isFloat, err := promote(a, b)
	if err != nil {
		return Null{}, err
	}
	if isFloat {
		if bf == 0 {
			return Null{}, types.NewError(types.ErrDivByZero, "attempted to divide by zero")
		}
		return Float(math.Mod(float64(af), float64(bf))), nil
	}
	if bi == 0 {
		return Null{}, types.NewError(types.ErrDivByZero, "attempted to divide by zero")
	}
	return ai % bi, nil
}

// Neg implements unary arithmetic negation.
func Neg(a Val) (Val, *types.Error) {
	if f, ok := a.(Float); ok {
		return -f, nil
	}
	i, err := CastToInt(a)
	if err != nil {
		return Null{}, err
	}
	return -i, nil
}

// ArithmeticTable is the spelling->function map for `+ - * / %`.
var ArithmeticTable = map[string]func(Val, Val) (Val, *types.Error){
	"+": Add,
	"-": Sub,
	"*": Mul,
	"/": Div,
	"%": Mod,
}
