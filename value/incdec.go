// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

// IncDec implements the pre/post increment-decrement asymmetry. delta is
// +1 for ++ and -1 for --. It returns (newValue, returnedValue): the
// caller stores newValue back into the operand's place and yields
// returnedValue as the expression's result.
//
// For Int and Float both pre and post forms mutate by delta; pre returns
// the new value, post returns the old one. For String/Char/Bool/Array,
// types that do not support "+1"
// numerically in this language, pre-forms leave the value unchanged and
// post-forms yield Null, an intentional, tested asymmetry.
func IncDec(operand Val, delta int64, pre bool) (newValue Val, returned Val) {
	switch operand.(type) {
	case Int, Float:
		n, err := numericStep(operand, delta)
		if err != nil {
			return operand, Null{}
		}
		if pre {
			return n, n
		}
		return n, operand
	default:
		// String, Char, Bool, Array, and everything else: the operand
		// does not support numeric increment. Pre-forms keep the
		// operand unchanged; post-forms discard the old value and
		// yield Null.
		if pre {
			return operand, operand
		}
		return operand, Null{}
	}
}

func numericStep(v Val, delta int64) (Val, error) {
	switch t := v.(type) {
	case Int:
		return t + Int(delta), nil
	case Float:
		return t + Float(delta), nil
	default:
		return v, nil
	}
}
