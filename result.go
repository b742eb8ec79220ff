// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package shellvm

import "github.com/shellvm/shellvm/value"

// ScriptResult is the outcome of one ParseInput call: the final value,
// anything written via Write-Output/Write-Host during that call, the
// deobfuscated rendering, and any non-fatal errors collected while
// evaluating it.
type ScriptResult struct {
	val          value.Val
	output       string
	deobfuscated string
	errs         []error
}

// Result returns the final statement's value.
func (r *ScriptResult) Result() value.Val { return r.val }

// Output returns everything Write-Output/Write-Host produced during this
// call.
func (r *ScriptResult) Output() string { return r.output }

// Deobfuscated returns the source rendered statement-by-statement: a
// statement whose evaluation added no new error renders its resulting
// value's canonical string; one that did renders its original source text
// unchanged, so a reader can see exactly what failed to resolve.
func (r *ScriptResult) Deobfuscated() string { return r.deobfuscated }

// Errors returns every non-fatal error collected while evaluating this
// call, or the single ParseError when parsing itself failed.
func (r *ScriptResult) Errors() []error { return r.errs }
