// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache implements a small random-replacement memo for values that
// are pure functions of their key, such as compiled date formats.
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultSize is the default number of entries of a Memo.
const DefaultSize = 256

// Memo maps keys to values computed by a fill function. When it grows beyond
// MaxSize, arbitrary entries are dropped; as values are a pure function of
// their key, a dropped entry is simply recomputed on its next use.
//
// Its zero value is ready to use. It is safe for concurrent use.
type Memo[K comparable, V any] struct {
	// MaxSize is the maximum number of entries. If it is zero, DefaultSize
	// is used. MaxSize must not be changed concurrently with calls to Get.
	MaxSize int

	mu sync.RWMutex
	m  map[K]V

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Get returns the value for k, calling fill to compute it if it is not
// memoized. fill may be called concurrently for the same key; the first
// value stored wins.
func (c *Memo[K, V]) Get(k K, fill func(K) V) V {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)

	nv := fill(k)

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.m[k]; ok {
		return v
	}
	if c.m == nil {
		c.m = make(map[K]V)
	}
	// Map iteration order is unspecified, which makes this a random
	// replacement policy.
	for old := range c.m {
		if len(c.m) < c.size() {
			break
		}
		delete(c.m, old)
	}
	c.m[k] = nv
	return nv
}

func (c *Memo[K, V]) size() int {
	if c.MaxSize <= 0 {
		return DefaultSize
	}
	return c.MaxSize
}

// Len returns the number of memoized entries.
func (c *Memo[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Stats returns the number of calls to Get that found a memoized value and
// the number that had to call fill.
func (c *Memo[K, V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Flush removes all entries. It does not reset Stats.
func (c *Memo[K, V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
}
