// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"encoding/base64"
	"encoding/binary"
	"unicode/utf16"

	"github.com/shellvm/shellvm/types"
)

// RegisterBuiltins installs the built-in runtime-type entries into reg:
// System.Convert, System.Text.Encoding, and UnicodeEncoding. It lives in
// package value (not types) because these entries operate on value.Val,
// which types cannot import without a cycle.
func RegisterBuiltins(reg *types.Registry) {
	convert := types.NewDescriptor("System.Convert", "")
	convert.AddStaticMethod(
		types.Mangle("FromBase64String", []string{"String"}), "frombase64string",
		func(args []any) (any, error) {
			if len(args) != 1 {
				return nil, types.NewError(types.ErrIncorrectArgs, "FromBase64String expects 1 argument")
			}
			s, ok := args[0].(string)
			if !ok {
				return nil, types.NewError(types.ErrIncorrectArgs, "FromBase64String expects a string")
			}
			decoded, err := base64.StdEncoding.DecodeString(s)
			if err != nil {
				return nil, types.NewError(types.ErrInvalidCast, "invalid base64 string")
			}
			elems := make([]Val, len(decoded))
			for i, b := range decoded {
				elems[i] = Char(rune(b))
			}
			return &Array{Elems: elems}, nil
		})
	reg.Register(convert)

	encoding := types.NewDescriptor("System.Text.Encoding", "")
	unicodeEncoding := types.NewDescriptor("System.Text.Encoding.UnicodeEncoding", "")
	unicodeEncoding.AddStaticMethod(
		types.Mangle("GetString", []string{"Object[]"}), "getstring",
		func(args []any) (any, error) {
			if len(args) != 1 {
				return nil, types.NewError(types.ErrIncorrectArgs, "GetString expects 1 argument")
			}
			arr, ok := args[0].(*Array)
			if !ok {
				return nil, types.NewError(types.ErrIncorrectArgs, "GetString expects an array")
			}
			raw := make([]byte, 0, len(arr.Elems))
			for _, e := range arr.Elems {
				c, err := CastToInt(e)
				if err != nil {
					return nil, err
				}
				raw = append(raw, byte(c))
			}
			// Little-endian UTF-16 decode, stripping a trailing NUL pair.
			for len(raw)%2 != 0 {
				raw = raw[:len(raw)-1]
			}
			if n := len(raw); n >= 2 && raw[n-1] == 0 && raw[n-2] == 0 {
				raw = raw[:n-2]
			}
			units := make([]uint16, len(raw)/2)
			for i := range units {
				units[i] = binary.LittleEndian.Uint16(raw[2*i : 2*i+2])
			}
			return string(utf16.Decode(units)), nil
		})
	reg.Register(unicodeEncoding)

	encoding.AddStaticMember("Unicode", NewRuntimeObjectHandle("System.Text.Encoding.UnicodeEncoding"))
	reg.Register(encoding)
}

// NewRuntimeObjectHandle builds the Val the registry returns for a
// readonly static member like `System.Text.Encoding::Unicode`.
func NewRuntimeObjectHandle(typeName string) Val {
	return NewRuntimeObject(typeName)
}
