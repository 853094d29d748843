// SPDX-License-Identifier: MPL-2.0

// Package lru implements the bounded, recency-ordered cache that backs the
// autoload manager.
//
// The cache keeps a strict least-recently-used order: every successful Get
// promotes the entry to the most-recently-used position, and capacity
// pressure always evicts from the opposite end. The recency order lives in a
// container/list whose root element acts as the sentinel between the two
// ends, so "most recent" and "least recent" are pure list-position facts.
//
// The cache is not synchronized. Callers that share a Cache across
// goroutines must hold their own lock around every call.
package lru

import "container/list"

type (
	// Cache maps string keys to values of type V, bounded to a fixed
	// capacity with strict LRU eviction.
	Cache[V any] struct {
		capacity int
		order    *list.List // front is most recently used
		index    map[string]*list.Element
		onEvict  func(key string, value V)
	}

	pair[V any] struct {
		key   string
		value V
	}
)

// New returns a cache bounded to capacity entries. Panics if capacity is
// not positive.
//
// onEvict, if non-nil, is invoked exactly once per evicted entry, after the
// entry has been unlinked from the cache but before it is dropped. It runs
// synchronously inside the evicting call.
func New[V any](capacity int, onEvict func(key string, value V)) *Cache[V] {
	if capacity < 1 {
		panic("lru: capacity must be at least 1")
	}
	return &Cache[V]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
		onEvict:  onEvict,
	}
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int { return c.order.Len() }

// Capacity returns the configured bound.
func (c *Cache[V]) Capacity() int { return c.capacity }

// Get returns the value for key and promotes it to most-recently-used.
// The returned value is only guaranteed to describe the cache state until
// the next mutating call.
func (c *Cache[V]) Get(key string) (V, bool) {
	if el, ok := c.index[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(pair[V]).value, true
	}
	var zero V
	return zero, false
}

// Add inserts value at the most-recently-used position and then evicts
// least-recently-used entries until the capacity bound holds. Returns false
// without modifying the cache if key is already present.
func (c *Cache[V]) Add(key string, value V) bool {
	if !c.AddWithoutEviction(key, value) {
		return false
	}
	for c.order.Len() > c.capacity {
		c.EvictOldest()
	}
	return true
}

// AddWithoutEviction inserts value at the most-recently-used position
// without enforcing the capacity bound. Returns false without modifying the
// cache if key is already present.
//
// Callers use this form when eviction side effects must not run in the
// current context; the bound is restored by the next Add.
func (c *Cache[V]) AddWithoutEviction(key string, value V) bool {
	if _, ok := c.index[key]; ok {
		return false
	}
	c.index[key] = c.order.PushFront(pair[V]{key: key, value: value})
	return true
}

// Evict removes the named entry, invoking the eviction hook, and reports
// whether it was present.
func (c *Cache[V]) Evict(key string) bool {
	el, ok := c.index[key]
	if !ok {
		return false
	}
	c.remove(el)
	return true
}

// EvictOldest removes the single least-recently-used entry. It is a no-op
// on an empty cache.
func (c *Cache[V]) EvictOldest() {
	if el := c.order.Back(); el != nil {
		c.remove(el)
	}
}

// EvictAll removes every entry, least recent first.
func (c *Cache[V]) EvictAll() {
	for c.order.Len() > 0 {
		c.EvictOldest()
	}
}

func (c *Cache[V]) remove(el *list.Element) {
	p := el.Value.(pair[V])
	c.order.Remove(el)
	delete(c.index, p.key)
	if c.onEvict != nil {
		c.onEvict(p.key, p.value)
	}
}
