// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"strings"

	"github.com/shellvm/shellvm/types"
)

// splitImpl implements `-split`/`-isplit`/`-csplit`: if the pattern is
// parenthesized the delimiter matches are preserved in the output; a
// second integer argument limits the split count; the default pattern
// is `\s+`.
func splitImpl(caseInsensitive bool) func(Val, Val) (Val, *types.Error) {
	return func(a, b Val) (Val, *types.Error) {
		subject := CastToString(a)
		pattern := `\s+`
		limit := -1
		if args, ok := b.(*Array); ok {
			if len(args.Elems) >= 1 {
				pattern = CastToString(args.Elems[0])
			}
			if len(args.Elems) >= 2 {
				if n, err := CastToInt(args.Elems[1]); err == nil {
					limit = int(n)
				}
			}
		} else if _, isNull := b.(Null); !isNull {
			pattern = CastToString(b)
		}
		preserveDelims := strings.HasPrefix(pattern, "(") && strings.HasSuffix(pattern, ")")
		pat := pattern
		if caseInsensitive {
			pat = "(?i)" + pat
		}
		re, err := compileRegex(pat)
		if err != nil {
			return NewArray(String(subject)), types.NewError(types.ErrException, "invalid -split pattern %q", pattern)
		}
		parts := splitPreserve(re, subject, limit, preserveDelims)
		elems := make([]Val, len(parts))
		for i, p := range parts {
			elems[i] = String(p)
		}
		return &Array{Elems: elems}, nil
	}
}

// splitPreserve implements capture-preserving split: when preserveDelims
// is set, each matched delimiter (and any capture groups within it) is
// interleaved into the result alongside the non-matching segments.
func splitPreserve(re regexpMatcher, subject string, limit int, preserveDelims bool) []string {
	var out []string
	last := 0
	count := 0
	matches := re.FindAllStringSubmatchIndex(subject, -1)
	for _, m := range matches {
		if limit > 0 && count >= limit-1 {
			break
		}
		out = append(out, subject[last:m[0]])
		if preserveDelims {
			if len(m) > 2 {
				for g := 1; g < len(m)/2; g++ {
					if m[2*g] >= 0 {
						out = append(out, subject[m[2*g]:m[2*g+1]])
					}
				}
			} else {
				out = append(out, subject[m[0]:m[1]])
			}
		}
		last = m[1]
		count++
	}
	out = append(out, subject[last:])
	return out
}

// regexpMatcher is the subset of *regexp.Regexp split needs, kept as an
// interface purely so tests can substitute a fake without importing
// regexp's concrete type.
type regexpMatcher interface {
	FindAllStringSubmatchIndex(s string, n int) [][]int
}

// SplitTable builds `-split -isplit -csplit`; default (unprefixed) is
// case-insensitive.
var SplitTable = map[string]func(Val, Val) (Val, *types.Error){
	"-split":  splitImpl(true),
	"-isplit": splitImpl(true),
	"-csplit": splitImpl(false),
}
