// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import "github.com/shellvm/shellvm/types"

// contains reports whether element appears in collection. An empty
// collection against a scalar yields false.
func contains(collection, element Val) (bool, *types.Error) {
	arr, ok := collection.(*Array)
	if !ok {
		eq, err := Eq(collection, element, true)
		return eq, err
	}
	for _, e := range arr.Elems {
		eq, err := Eq(e, element, true)
		if err != nil {
			return false, err
		}
		if eq {
			return true, nil
		}
	}
	return false, nil
}

func containsOp(negate bool) func(Val, Val) (Val, *types.Error) {
	return func(a, b Val) (Val, *types.Error) {
		c, err := contains(a, b)
		if err != nil {
			return Null{}, err
		}
		if negate {
			c = !c
		}
		return Bool(c), nil
	}
}

func inOp(negate bool) func(Val, Val) (Val, *types.Error) {
	// `-in`/`-notin` mirror `-contains`/`-notcontains` with operands
	// swapped.
	return func(a, b Val) (Val, *types.Error) {
		c, err := contains(b, a)
		if err != nil {
			return Null{}, err
		}
		if negate {
			c = !c
		}
		return Bool(c), nil
	}
}

// ContainmentTable builds `-contains -notcontains -in -notin`.
var ContainmentTable = map[string]func(Val, Val) (Val, *types.Error){
	"-contains":    containsOp(false),
	"-notcontains": containsOp(true),
	"-in":          inOp(false),
	"-notin":       inOp(true),
}
