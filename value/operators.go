// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"strings"
	"sync"

	"github.com/shellvm/shellvm/types"
)

// BinaryOp is the uniform dispatch shape: `(Val, Val) -> Result<Val>`.
type BinaryOp func(Val, Val) (Val, *types.Error)

// UnaryOp is the unary counterpart.
type UnaryOp func(Val) (Val, *types.Error)

var (
	binaryOnce  sync.Once
	binaryTable map[string]BinaryOp

	unaryOnce  sync.Once
	unaryTable map[string]UnaryOp
)

// BinaryTable returns the combined, lowercased operator spelling -> func
// table for every binary operator family, built lazily the first time
// it's needed.
func BinaryTable() map[string]BinaryOp {
	binaryOnce.Do(func() {
		binaryTable = map[string]BinaryOp{}
		merge := func(src map[string]func(Val, Val) (Val, *types.Error)) {
			for k, v := range src {
				binaryTable[k] = v
			}
		}
		merge(ArithmeticTable)
		merge(BitwiseTable)
		merge(ComparisonTable)
		merge(ReplaceTable)
		merge(SplitTable)
		merge(LogicalTable)
		merge(ContainmentTable)
		merge(TypeCheckTable)
		merge(LikeTable)
		binaryTable["-match"] = matchOp(true, false)
		binaryTable["-notmatch"] = matchOp(true, true)
		binaryTable["-cmatch"] = matchOp(false, false)
		binaryTable["-inotmatch"] = matchOp(true, true)
	})
	return binaryTable
}

// UnaryTable returns the unary operator spelling -> func table.
func UnaryTable() map[string]UnaryOp {
	unaryOnce.Do(func() {
		unaryTable = map[string]UnaryOp{
			"-not":  Not,
			"-bnot": BNot,
			"neg":   Neg,
		}
	})
	return unaryTable
}

// LookupBinary resolves an operator spelling (already lowercased by the
// caller; operator names are matched case-insensitively).
func LookupBinary(spelling string) (BinaryOp, bool) {
	op, ok := BinaryTable()[strings.ToLower(spelling)]
	return op, ok
}

// LookupUnary resolves a unary operator spelling.
func LookupUnary(spelling string) (UnaryOp, bool) {
	op, ok := UnaryTable()[strings.ToLower(spelling)]
	return op, ok
}

func matchOp(caseInsensitive, negate bool) BinaryOp {
	return func(a, b Val) (Val, *types.Error) {
		pattern := CastToString(b)
		pat := pattern
		if caseInsensitive {
			pat = "(?i)" + pat
		}
		re, err := compileRegex(pat)
		if err != nil {
			return Null{}, types.NewError(types.ErrException, "invalid -match pattern %q", pattern)
		}
		m := re.MatchString(CastToString(a))
		if negate {
			m = !m
		}
		return Bool(m), nil
	}
}
