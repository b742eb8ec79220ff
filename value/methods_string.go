// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/shellvm/shellvm/types"
)

// StringMethod is the uniform shape of String's capability table:
// {name -> (value, args) -> Result<value>}.
type StringMethod func(self String, args []Val) (Val, *types.Error)

var stringMethods map[string]StringMethod

func init() {
	stringMethods = map[string]StringMethod{
		"replace":         strReplace,
		"insert":          strInsert,
		"remove":          strRemove,
		"substring":       strSubstring,
		"split":           strSplit,
		"toupper":         fixedArity0(strings.ToUpper),
		"toupperinvariant": fixedArity0(strings.ToUpper),
		"tolower":         fixedArity0(strings.ToLower),
		"tolowerinvariant": fixedArity0(strings.ToLower),
		"trim":            strTrim,
		"trimstart":       strTrimStart,
		"trimend":         strTrimEnd,
		"padleft":         strPadLeft,
		"padright":        strPadRight,
		"normalize":       strNormalize,
		"isnormalized":    strIsNormalized,
		"clone":           strClone,
		"tostring":        strClone,
	}
}

// StringMethodLookup resolves a case-folded method name, used by the
// evaluator's MethodNotFound handling to offer a "did you mean" via
// types.SuggestName.
func StringMethodLookup(name string) (StringMethod, bool) {
	m, ok := stringMethods[strings.ToLower(name)]
	return m, ok
}

// StringMethodNames lists every registered method name.
func StringMethodNames() []string {
	names := make([]string, 0, len(stringMethods))
	for n := range stringMethods {
		names = append(names, n)
	}
	return names
}

func fixedArity0(f func(string) string) StringMethod {
	return func(self String, args []Val) (Val, *types.Error) {
		if len(args) != 0 {
			return self, incorrectArgs("", args)
		}
		return String(f(string(self))), nil
	}
}

func incorrectArgs(name string, args []Val) *types.Error {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = DebugRender(a)
	}
	return types.NewError(types.ErrIncorrectArgs, "%s(%s)", name, strings.Join(parts, ", "))
}

func strReplace(self String, args []Val) (Val, *types.Error) {
	if len(args) != 2 {
		return self, incorrectArgs("Replace", args)
	}
	old := CastToString(args[0])
	rep := CastToString(args[1])
	return String(strings.ReplaceAll(string(self), old, rep)), nil
}

func strInsert(self String, args []Val) (Val, *types.Error) {
	if len(args) != 2 {
		return self, incorrectArgs("Insert", args)
	}
	idx, ok := args[0].(Int)
	if !ok {
		return self, incorrectArgs("Insert", args)
	}
	text := CastToString(args[1])
	rs := []rune(string(self))
	if idx < 0 || int(idx) > len(rs) {
		return self, types.NewError(types.ErrArgumentOutOfRange, "Exception calling \"Insert\" with \"2\" argument(s): \"Index and length must refer to a location within the string. Parameter name: startIndex\"")
	}
	out := string(rs[:idx]) + text + string(rs[idx:])
	return String(out), nil
}

// argsForRemoveAndSubstring computes the shared start/end bounds for
// Remove and Substring, including their two exact exception message
// strings.
func argsForRemoveAndSubstring(self String, args []Val, fnName string) (start, end int, cerr *types.Error) {
	if len(args) != 1 && len(args) != 2 {
		return 0, 0, incorrectArgs(fnName, args)
	}
	startI, ok := args[0].(Int)
	if !ok {
		return 0, 0, incorrectArgs(fnName, args)
	}
	startIndex := int(startI)
	rs := []rune(string(self))
	length := len(rs)
	if len(args) == 2 {
		lenI, ok := args[1].(Int)
		if !ok {
			return 0, 0, incorrectArgs(fnName, args)
		}
		length = int(lenI)
		if startIndex+length > len(rs) {
			return 0, 0, types.NewError(types.ErrException,
				"Exception calling %q with \"2\" argument(s): \"Index and length must refer to a location within the string. Parameter name: length\"", fnName)
		}
	}
	if startIndex > len(rs) {
		return 0, 0, types.NewError(types.ErrException,
			"Exception calling %q with \"1\" argument(s): \"startIndex cannot be larger than length of string. Parameter name: startIndex\"", fnName)
	}
	endIndex := startIndex + length
	if endIndex > len(rs) {
		endIndex = len(rs)
	}
	return startIndex, endIndex, nil
}

func strSubstring(self String, args []Val) (Val, *types.Error) {
	start, end, err := argsForRemoveAndSubstring(self, args, "Substring")
	if err != nil {
		return substringErrorResult(self, args, "Substring"), err
	}
	rs := []rune(string(self))
	return String(string(rs[start:end])), nil
}

func strRemove(self String, args []Val) (Val, *types.Error) {
	start, end, err := argsForRemoveAndSubstring(self, args, "Remove")
	if err != nil {
		return substringErrorResult(self, args, "Remove"), err
	}
	rs := []rune(string(self))
	return String(string(rs[:start]) + string(rs[end:])), nil
}

// substringErrorResult reproduces the original's behavior of keeping the
// call's textual rendering, e.g. `"hello, world".substring(7, 6)`, as the
// visible result when Substring/Remove raises an Exception.
func substringErrorResult(self String, args []Val, fnName string) Val {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = DebugRender(a)
	}
	return String(fmt.Sprintf("%q.%s(%s)", string(self), strings.ToLower(fnName), strings.Join(parts, ", ")))
}

func strSplit(self String, args []Val) (Val, *types.Error) {
	if len(args) < 1 {
		return self, incorrectArgs("Split", args)
	}
	sep := CastToString(args[0])
	max := -1
	if len(args) >= 2 {
		if n, ok := args[1].(Int); ok {
			max = int(n)
		}
	}
	var parts []string
	if max > 0 {
		parts = strings.SplitN(string(self), sep, max)
	} else {
		parts = strings.Split(string(self), sep)
	}
	elems := make([]Val, len(parts))
	for i, p := range parts {
		elems[i] = String(p)
	}
	return &Array{Elems: elems}, nil
}

func trimArg(args []Val) (string, *types.Error) {
	if len(args) == 0 {
		return "", nil
	}
	if len(args) != 1 {
		return "", incorrectArgs("Trim", args)
	}
	return CastToString(args[0]), nil
}

func strTrim(self String, args []Val) (Val, *types.Error) {
	cut, err := trimArg(args)
	if err != nil {
		return self, err
	}
	if cut == "" {
		return String(strings.TrimSpace(string(self))), nil
	}
	return String(strings.Trim(string(self), cut)), nil
}

func strTrimStart(self String, args []Val) (Val, *types.Error) {
	cut, err := trimArg(args)
	if err != nil {
		return self, err
	}
	if cut == "" {
		return String(strings.TrimLeft(string(self), " \t\n\r")), nil
	}
	return String(strings.TrimLeft(string(self), cut)), nil
}

func strTrimEnd(self String, args []Val) (Val, *types.Error) {
	cut, err := trimArg(args)
	if err != nil {
		return self, err
	}
	if cut == "" {
		return String(strings.TrimRight(string(self), " \t\n\r")), nil
	}
	return String(strings.TrimRight(string(self), cut)), nil
}

func strPadLeft(self String, args []Val) (Val, *types.Error) {
	return padImpl(self, args, "PadLeft", true)
}

func strPadRight(self String, args []Val) (Val, *types.Error) {
	return padImpl(self, args, "PadRight", false)
}

// padImpl implements PadLeft/PadRight: a wrong arg count keeps the
// original source text as the result and still collects an error.
func padImpl(self String, args []Val, name string, left bool) (Val, *types.Error) {
	if len(args) != 1 {
		return self, incorrectArgs(name, args)
	}
	width, ok := args[0].(Int)
	if !ok {
		return self, incorrectArgs(name, args)
	}
	rs := []rune(string(self))
	if int(width) <= len(rs) {
		return self, nil
	}
	pad := strings.Repeat(" ", int(width)-len(rs))
	if left {
		return String(pad + string(self)), nil
	}
	return String(string(self) + pad), nil
}

// strNormalize implements Normalize using
// golang.org/x/text/unicode/norm as the real Unicode normalization
// engine. FormD additionally ASCII-filters, an intentional
// obfuscation-defeating quirk.
func strNormalize(self String, args []Val) (Val, *types.Error) {
	if len(args) > 1 {
		return self, incorrectArgs("Normalize", args)
	}
	form := "FormC"
	if len(args) == 1 {
		form = CastToString(args[0])
	}
	s := string(self)
	switch form {
	case "FormD":
		d := norm.NFD.String(s)
		var b strings.Builder
		for _, r := range d {
			if r < 128 {
				b.WriteRune(r)
			}
		}
		return String(b.String()), nil
	case "FormC":
		return String(norm.NFC.String(s)), nil
	case "FormKD":
		return String(norm.NFKD.String(s)), nil
	case "FormKC":
		return String(norm.NFKC.String(s)), nil
	default:
		return self, nil
	}
}

func strIsNormalized(self String, args []Val) (Val, *types.Error) {
	return Bool(true), nil
}

func strClone(self String, args []Val) (Val, *types.Error) {
	if len(args) != 0 {
		return self, incorrectArgs("Clone", args)
	}
	return self, nil
}
