// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"strings"
	"sync"

	"github.com/gobwas/glob"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/shellvm/shellvm/types"
)

var (
	globCacheOnce sync.Once
	globCache     *lru.Cache[string, glob.Glob]
)

func getGlobCache() *lru.Cache[string, glob.Glob] {
	globCacheOnce.Do(func() {
		globCache, _ = lru.New[string, glob.Glob](patternCacheSize)
	})
	return globCache
}

func compileGlob(pattern string, caseInsensitive bool) (glob.Glob, error) {
	key := pattern
	if caseInsensitive {
		key = "\x00ci\x00" + strings.ToLower(pattern)
	}
	cache := getGlobCache()
	if g, ok := cache.Get(key); ok {
		return g, nil
	}
	p := pattern
	if caseInsensitive {
		p = strings.ToLower(p)
	}
	g, err := glob.Compile(p, '\\')
	if err != nil {
		return nil, err
	}
	cache.Add(key, g)
	return g, nil
}

func likeOp(negate bool) func(Val, Val) (Val, *types.Error) {
	return func(a, b Val) (Val, *types.Error) {
		pattern := CastToString(b)
		subject := CastToString(a)
		g, err := compileGlob(pattern, true)
		if err != nil {
			return Null{}, types.NewError(types.ErrOperationNotDefined, "invalid -like pattern %q", pattern)
		}
		match := g.Match(strings.ToLower(subject))
		if negate {
			match = !match
		}
		return Bool(match), nil
	}
}

// LikeTable builds `-like`/`-notlike`: wildcard patterns matched with a
// real glob engine rather than a hand-rolled regex translation of `*`/`?`.
var LikeTable = map[string]func(Val, Val) (Val, *types.Error){
	"-like":    likeOp(false),
	"-notlike": likeOp(true),
}
