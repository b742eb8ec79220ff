// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"strings"

	"github.com/shellvm/shellvm/types"
)

// Eq implements eq: delegates by the left operand's type.
func Eq(a, b Val, caseInsensitive bool) (bool, *types.Error) {
	switch x := a.(type) {
	case Null:
		_, isNull := b.(Null)
		return isNull, nil
	case String:
		if IsNumeric(b) {
			// number on the right: coerce left (spec "mixed number/string
			// comparisons coerce string to number's type").
			if _, ok := b.(Float); ok {
				lf, err := CastToFloat(x)
				if err != nil {
					return false, err
				}
				rf, _ := CastToFloat(b)
				return lf == rf, nil
			}
			li, err := CastToInt(x)
			if err != nil {
				return false, err
			}
			ri, _ := CastToInt(b)
			return li == ri, nil
		}
		rs := CastToString(b)
		if caseInsensitive {
			return strings.EqualFold(string(x), rs), nil
		}
		return string(x) == rs, nil
	case *Array:
		arr, ok := b.(*Array)
		if !ok {
			for _, e := range x.Elems {
				if eq, _ := Eq(e, b, caseInsensitive); eq {
					return true, nil
				}
			}
			return false, nil
		}
		if len(arr.Elems) != len(x.Elems) {
			return false, nil
		}
		for i := range x.Elems {
			eq, err := Eq(x.Elems[i], arr.Elems[i], caseInsensitive)
			if err != nil || !eq {
				return eq, err
			}
		}
		return true, nil
	default:
		if IsNumeric(a) && IsNumeric(b) {
			af, bf, ai, bi, isFloat, err := promote(a, b)
			if err != nil {
				return false, err
			}
			if isFloat {
				return af == bf, nil
			}
			return ai == bi, nil
		}
		if caseInsensitive {
			return strings.EqualFold(a.String(), CastToString(b)), nil
		}
		return a.String() == CastToString(b), nil
	}
}

// Compare returns -1/0/1 for ordering comparisons (the gt/lt family).
func Compare(a, b Val, caseInsensitive bool) (int, *types.Error) {
	if IsNumeric(a) && IsNumeric(b) {
		af, bf, ai, bi, isFloat, err := promote(a, b)
		if err != nil {
			return 0, err
		}
		if isFloat {
			switch {
			case af < bf:
				return -1, nil
			case af > bf:
				return 1, nil
			default:
				return 0, nil
			}
		}
		switch {
		case ai < bi:
			return -1, nil
		case ai > bi:
			return 1, nil
		default:
			return 0, nil
		}
	}
	ls, rs := CastToString(a), CastToString(b)
	if caseInsensitive {
		ls, rs = strings.ToLower(ls), strings.ToLower(rs)
	}
	return strings.Compare(ls, rs), nil
}

func cmpOp(pred func(int) bool, ci bool) func(Val, Val) (Val, *types.Error) {
	return func(a, b Val) (Val, *types.Error) {
		c, err := Compare(a, b, ci)
		if err != nil {
			return Null{}, err
		}
		return Bool(pred(c)), nil
	}
}

func eqOp(negate, ci bool) func(Val, Val) (Val, *types.Error) {
	return func(a, b Val) (Val, *types.Error) {
		eq, err := Eq(a, b, ci)
		if err != nil {
			return Null{}, err
		}
		if negate {
			eq = !eq
		}
		return Bool(eq), nil
	}
}

// ComparisonTable builds the `-eq -ne -gt -ge -lt -le` family with their
// c/i case-sensitivity prefixes; the default (no prefix) is
// case-insensitive, matching the shell language's default string
// comparison.
var ComparisonTable = buildComparisonTable()

func buildComparisonTable() map[string]func(Val, Val) (Val, *types.Error) {
	t := map[string]func(Val, Val) (Val, *types.Error){}
	variants := []struct {
		base string
		neg  bool
	}{{"eq", false}, {"ne", true}}
	for _, v := range variants {
		t["-"+v.base] = eqOp(v.neg, true)
		t["-c"+v.base] = eqOp(v.neg, false)
		t["-i"+v.base] = eqOp(v.neg, true)
	}
	ord := []struct {
		name string
		pred func(int) bool
	}{
		{"gt", func(c int) bool { return c > 0 }},
		{"ge", func(c int) bool { return c >= 0 }},
		{"lt", func(c int) bool { return c < 0 }},
		{"le", func(c int) bool { return c <= 0 }},
	}
	for _, o := range ord {
		t["-"+o.name] = cmpOp(o.pred, true)
		t["-c"+o.name] = cmpOp(o.pred, false)
		t["-i"+o.name] = cmpOp(o.pred, true)
	}
	return t
}
