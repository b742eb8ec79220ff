// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package types

import (
	"strconv"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// StaticFn is a static method callable on a registry entry. args are
// already-evaluated values; the concrete Val type lives in package value,
// so registry entries operate on the empty interface to avoid an import
// cycle and are type-asserted by their callers in package value/eval.
type StaticFn func(args []any) (any, error)

// Descriptor is a process-wide registry entry: a named runtime type with
// static methods, read-only static members, and an optional base type.
type Descriptor struct {
	FullName string
	BaseName string // empty if no base type

	staticMethods map[string]StaticFn
	staticMembers map[string]any
}

// NewDescriptor creates an empty descriptor ready for registration.
func NewDescriptor(fullName, baseName string) *Descriptor {
	return &Descriptor{
		FullName:      fullName,
		BaseName:      baseName,
		staticMethods: map[string]StaticFn{},
		staticMembers: map[string]any{},
	}
}

// AddStaticMethod registers a static method under its mangled signature
// key (see Mangle) and, if no overload yet exists, the bare name too.
func (d *Descriptor) AddStaticMethod(mangled, bare string, fn StaticFn) {
	d.staticMethods[mangled] = fn
	if _, exists := d.staticMethods[bare]; !exists {
		d.staticMethods[bare] = fn
	}
}

// AddStaticMember registers a read-only static member value.
func (d *Descriptor) AddStaticMember(name string, v any) {
	d.staticMembers[strings.ToLower(name)] = v
}

// StaticMethod looks up a static method by mangled key, falling back to the
// bare name.
func (d *Descriptor) StaticMethod(mangled, bare string) (StaticFn, bool) {
	if fn, ok := d.staticMethods[mangled]; ok {
		return fn, true
	}
	fn, ok := d.staticMethods[bare]
	return fn, ok
}

// StaticMember looks up a read-only static member.
func (d *Descriptor) StaticMember(name string) (any, bool) {
	v, ok := d.staticMembers[strings.ToLower(name)]
	return v, ok
}

// Registry is a mutex-guarded map of case-folded full names to
// Descriptors. A single lock guards registry insertion and lookup;
// registry entries are immutable once installed. It is not shared
// process-wide: eval.New builds a fresh Registry for each Evaluator.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Descriptor
}

// NewRegistry builds an empty registry. Callers are expected to populate
// it with the built-in entries (System.Convert, System.Text.Encoding,
// UnicodeEncoding) via Register. Package value does this from its
// RegisterBuiltins function, since those entries operate on value.Val and
// this package cannot import value without a cycle. Each Session gets its
// own Registry. User classes are not registered here; the evaluator keeps
// them in its own per-session class table.
func NewRegistry() *Registry {
	return &Registry{entries: map[string]*Descriptor{}}
}

// Register installs a descriptor, keyed by its case-folded full name.
// Re-registration under the same name overwrites the earlier entry.
func (r *Registry) Register(d *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[strings.ToLower(d.FullName)] = d
}

// Lookup finds a descriptor by case-folded full name.
func (r *Registry) Lookup(name string) (*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[strings.ToLower(name)]
	return d, ok
}

// ValTypeLookup adapts Lookup to the function signature Cast expects.
func (r *Registry) ValTypeLookup(name string) (ValType, bool) {
	if _, ok := r.Lookup(name); ok {
		return RuntimeObjectType(name), true
	}
	return ValType{}, false
}

// Names returns every registered full name, used for "did you mean"
// suggestions.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for _, d := range r.entries {
		out = append(out, d.FullName)
	}
	return out
}

// SuggestName returns the closest registered name to want by Levenshtein
// distance, or "" if nothing is close enough to be a plausible typo.
func SuggestName(want string, candidates []string) string {
	best := ""
	bestDist := 1 << 30
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(strings.ToLower(want), strings.ToLower(c))
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist > 3 {
		return ""
	}
	return best
}

// Mangle computes the overload-resolution key name(argtype1,argtype2,...)arity
// used for both constructors and methods.
func Mangle(name string, argTypeNames []string) string {
	return strings.ToLower(name) + "(" + strings.Join(argTypeNames, ",") + ")" + strconv.Itoa(len(argTypeNames))
}
