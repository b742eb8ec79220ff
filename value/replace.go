// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import "github.com/shellvm/shellvm/types"

// ReplaceArgs describes the right-hand side of a `-replace` expression,
// which may supply just a pattern or a (pattern, replacement) pair.
// replaceImpl reads both directly from the right operand and does not
// use this type.
type ReplaceArgs struct {
	Pattern     string
	Replacement string
	HasReplacement bool
}

// replaceImpl implements `-replace`/`-ireplace`/`-creplace`: on an
// invalid pattern the input is returned unchanged and an error is
// collected; a missing replacement defaults to "".
func replaceImpl(caseInsensitive bool) func(Val, Val) (Val, *types.Error) {
	return func(a Val, b Val) (Val, *types.Error) {
		args, ok := b.(*Array)
		var pattern, replacement string
		if ok && len(args.Elems) >= 1 {
			pattern = CastToString(args.Elems[0])
			if len(args.Elems) >= 2 {
				replacement = CastToString(args.Elems[1])
			}
		} else {
			pattern = CastToString(b)
		}
		subject := CastToString(a)
		pat := pattern
		if caseInsensitive {
			pat = "(?i)" + pat
		}
		re, err := compileRegex(pat)
		if err != nil {
			return String(subject), types.NewError(types.ErrException, "invalid -replace pattern %q", pattern)
		}
		return String(re.ReplaceAllString(subject, translateReplacement(replacement))), nil
	}
}

// translateReplacement rewrites $1-style backreferences (the shell
// language's replacement syntax) into Go regexp's ${1} form.
func translateReplacement(r string) string {
	var out []byte
	for i := 0; i < len(r); i++ {
		if r[i] == '$' && i+1 < len(r) && r[i+1] >= '0' && r[i+1] <= '9' {
			j := i + 1
			for j < len(r) && r[j] >= '0' && r[j] <= '9' {
				j++
			}
			out = append(out, '$', '{')
			out = append(out, r[i+1:j]...)
			out = append(out, '}')
			i = j - 1
			continue
		}
		out = append(out, r[i])
	}
	return string(out)
}

// ReplaceTable builds `-replace -ireplace -creplace`; the default
// (unprefixed) form is case-insensitive.
var ReplaceTable = map[string]func(Val, Val) (Val, *types.Error){
	"-replace":  replaceImpl(true),
	"-ireplace": replaceImpl(true),
	"-creplace": replaceImpl(false),
}
