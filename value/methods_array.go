// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"strings"

	"github.com/shellvm/shellvm/types"
)

// ArrayIndex implements negative-index-aware element access.
func ArrayIndex(a *Array, idx int) (Val, *types.Error) {
	n := len(a.Elems)
	i := idx
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return Null{}, types.NewError(types.ErrArgumentOutOfRange, "index %d is outside the bounds of the array", idx)
	}
	return a.Elems[i], nil
}

// ArrayMethod mirrors StringMethod for Array's small capability set
// (GetType, Clone).
type ArrayMethod func(self *Array, args []Val) (Val, *types.Error)

var arrayMethods = map[string]ArrayMethod{
	"clone": func(self *Array, args []Val) (Val, *types.Error) {
		out := make([]Val, len(self.Elems))
		copy(out, self.Elems)
		return &Array{Elems: out}, nil
	},
	"gettype": func(self *Array, args []Val) (Val, *types.Error) {
		return &RuntimeType{Described: self.TType()}, nil
	},
}

// ArrayMethodLookup resolves a case-folded array method name.
func ArrayMethodLookup(name string) (ArrayMethod, bool) {
	m, ok := arrayMethods[strings.ToLower(name)]
	return m, ok
}
