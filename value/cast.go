// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shellvm/shellvm/types"
)

// numericStringPattern matches the decimal/scientific numeric string shape
// cast_to_int/cast_to_float accept.
var numericStringPattern = regexp.MustCompile(`^[+-]?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// CastToBool implements cast_to_bool: total, never errors.
func CastToBool(v Val) bool {
	switch t := v.(type) {
	case Null:
		return false
	case Bool:
		return bool(t)
	case Int:
		return t != 0
	case Float:
		return t != 0
	case Char:
		return t != 0
	case String:
		return len(t) != 0
	case *Array:
		return len(t.Elems) != 0
	default:
		return true
	}
}

// roundHalfToEven rounds x to the nearest integer, breaking ties toward
// the even neighbor (banker's rounding).
func roundHalfToEven(x float64) float64 {
	floor := math.Floor(x)
	diff := x - floor
	switch {
	case diff < 0.5:
		return floor
	case diff > 0.5:
		return floor + 1
	default:
		if math.Mod(floor, 2) == 0 {
			return floor
		}
		return floor + 1
	}
}

// CastToInt implements cast_to_int.
func CastToInt(v Val) (Int, *types.Error) {
	switch t := v.(type) {
	case Null:
		return 0, nil
	case Bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case Int:
		return t, nil
	case Float:
		return Int(int64(roundHalfToEven(float64(t)))), nil
	case Char:
		return Int(t), nil
	case String:
		s := strings.TrimSpace(string(t))
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			n, err := strconv.ParseInt(s[2:], 16, 64)
			if err != nil {
				return 0, types.NewError(types.ErrInvalidCast, "cannot convert %q to Int32", s)
			}
			return Int(n), nil
		}
		if strings.HasPrefix(s, "+0x") || strings.HasPrefix(s, "+0X") {
			return 0, types.NewError(types.ErrInvalidCast, "cannot convert %q to Int32", s)
		}
		if !numericStringPattern.MatchString(s) {
			return 0, types.NewError(types.ErrInvalidCast, "cannot convert %q to Int32", s)
		}
		if strings.ContainsAny(s, ".eE") {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, types.NewError(types.ErrInvalidCast, "cannot convert %q to Int32", s)
			}
			return Int(int64(roundHalfToEven(f))), nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, types.NewError(types.ErrInvalidCast, "cannot convert %q to Int32", s)
		}
		return Int(n), nil
	default:
		return 0, types.NewError(types.ErrInvalidCast, "cannot convert %s to Int32", v.TType().Name())
	}
}

// CastToFloat implements cast_to_float.
func CastToFloat(v Val) (Float, *types.Error) {
	switch t := v.(type) {
	case Null:
		return 0, nil
	case Bool:
		if t {
			return 1, nil
		}
		return 0, nil
	case Int:
		return Float(t), nil
	case Float:
		return t, nil
	case Char:
		return Float(t), nil
	case String:
		s := strings.TrimSpace(string(t))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, types.NewError(types.ErrInvalidCast, "cannot convert %q to Double", s)
		}
		return Float(f), nil
	default:
		return 0, types.NewError(types.ErrInvalidCast, "cannot convert %s to Double", v.TType().Name())
	}
}

// CastToChar implements cast_to_char.
func CastToChar(v Val) (Char, *types.Error) {
	switch t := v.(type) {
	case Char:
		return t, nil
	case Int:
		if t < 0 || t > 0x10FFFF {
			return 0, types.NewError(types.ErrArgumentOutOfRange, "value %d is outside the character range", int64(t))
		}
		return Char(rune(t)), nil
	case String:
		rs := []rune(string(t))
		if len(rs) != 1 {
			return 0, types.NewError(types.ErrInvalidCast, "cannot convert %q to Char", string(t))
		}
		return Char(rs[0]), nil
	default:
		return 0, types.NewError(types.ErrInvalidCast, "cannot convert %s to Char", v.TType().Name())
	}
}

// CastToString implements cast_to_string, the canonical rendering used
// throughout the evaluator.
func CastToString(v Val) string {
	return v.String()
}
