// Copyright 2024 The ShellVM Authors. All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package value

import (
	"regexp"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// patternCacheSize bounds the number of compiled regex/glob patterns kept
// in memory. Obfuscated scripts frequently rebuild the same -match/
// -replace/-split/-like pattern inside a loop; a bounded LRU keeps the
// recompilation cost out of the hot path without growing without bound.
const patternCacheSize = 256

var (
	regexCacheOnce sync.Once
	regexCache     *lru.Cache[string, *regexp.Regexp]
)

func getRegexCache() *lru.Cache[string, *regexp.Regexp] {
	regexCacheOnce.Do(func() {
		regexCache, _ = lru.New[string, *regexp.Regexp](patternCacheSize)
	})
	return regexCache
}

// compileRegex compiles pattern, memoized by its literal spelling
// (including any case-insensitivity flag prefix the caller has already
// applied).
func compileRegex(pattern string) (*regexp.Regexp, error) {
	cache := getRegexCache()
	if re, ok := cache.Get(pattern); ok {
		return re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	cache.Add(pattern, re)
	return re, nil
}
