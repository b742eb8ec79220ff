// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import "strings"

// castToJoinString renders an element for -join purposes: Null becomes ""
// rather than its usual empty rendering being skipped.
func castToJoinString(v Val) string {
	if _, ok := v.(Null); ok {
		return ""
	}
	return CastToString(v)
}

// Join implements `-join`: unary form (delim == "") joins with no
// separator, binary form inserts delim.
func Join(arr *Array, delim string) string {
	parts := make([]string, len(arr.Elems))
	for i, e := range arr.Elems {
		parts[i] = castToJoinString(e)
	}
	return strings.Join(parts, delim)
}
