// SPDX-License-Identifier: MPL-2.0

package lru

import (
	"testing"
)

func TestNew_PanicsOnInvalidCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New(0, nil) did not panic")
		}
	}()
	New[int](0, nil)
}

func TestCache_GetMiss(t *testing.T) {
	c := New[string](2, nil)
	if v, ok := c.Get("absent"); ok || v != "" {
		t.Errorf("Get(absent) = (%q, %v), want (\"\", false)", v, ok)
	}
}

func TestCache_AddDuplicate(t *testing.T) {
	c := New[int](2, nil)
	if !c.Add("a", 1) {
		t.Fatal("first Add(a) = false, want true")
	}
	if c.Add("a", 2) {
		t.Error("second Add(a) = true, want false")
	}
	if v, _ := c.Get("a"); v != 1 {
		t.Errorf("Get(a) = %d, want original value 1", v)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_CapacityInvariant(t *testing.T) {
	const capacity = 3
	c := New[int](capacity, nil)
	keys := []string{"a", "b", "c", "d", "e", "f", "g"}
	for i, k := range keys {
		c.Add(k, i)
		if c.Len() > capacity {
			t.Fatalf("after Add(%q): Len() = %d, exceeds capacity %d", k, c.Len(), capacity)
		}
	}
}

func TestCache_EvictsLeastRecent(t *testing.T) {
	var evicted []string
	c := New[int](2, func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3) // evicts "a"

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("evicted = %v, want [a]", evicted)
	}
	if _, ok := c.Get("a"); ok {
		t.Error("Get(a) = hit, want miss after eviction")
	}
	for _, k := range []string{"b", "c"} {
		if _, ok := c.Get(k); !ok {
			t.Errorf("Get(%q) = miss, want hit", k)
		}
	}
}

func TestCache_GetPromotes(t *testing.T) {
	var evicted []string
	c := New[int](2, func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Add("a", 1)
	c.Add("b", 2)

	// "a" becomes most recent, so the next eviction must take "b".
	if _, ok := c.Get("a"); !ok {
		t.Fatal("Get(a) = miss, want hit")
	}
	c.Add("c", 3)

	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("evicted = %v, want [b]", evicted)
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("promoted key a was evicted")
	}
}

func TestCache_AddWithoutEvictionDefersBound(t *testing.T) {
	var evicted []string
	c := New[int](2, func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Add("a", 1)
	c.Add("b", 2)
	if !c.AddWithoutEviction("c", 3) {
		t.Fatal("AddWithoutEviction(c) = false, want true")
	}

	if c.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (bound deferred)", c.Len())
	}
	if len(evicted) != 0 {
		t.Fatalf("evicted = %v, want none before next Add", evicted)
	}

	// The next capacity-enforcing insert restores the bound.
	c.Add("d", 4)
	if c.Len() != 2 {
		t.Errorf("Len() = %d after Add, want 2", c.Len())
	}
	if len(evicted) != 2 {
		t.Errorf("evicted = %v, want two entries", evicted)
	}
}

func TestCache_EvictByKey(t *testing.T) {
	hooked := 0
	c := New[int](4, func(string, int) { hooked++ })

	c.Add("a", 1)
	if !c.Evict("a") {
		t.Error("Evict(a) = false, want true")
	}
	if c.Evict("a") {
		t.Error("second Evict(a) = true, want false")
	}
	if hooked != 1 {
		t.Errorf("eviction hook ran %d times, want 1", hooked)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestCache_EvictAll(t *testing.T) {
	var evicted []string
	c := New[int](4, func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)
	c.EvictAll()

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	// Least recent first: insertion order with no promotions.
	want := []string{"a", "b", "c"}
	if len(evicted) != len(want) {
		t.Fatalf("evicted = %v, want %v", evicted, want)
	}
	for i := range want {
		if evicted[i] != want[i] {
			t.Errorf("evicted[%d] = %q, want %q", i, evicted[i], want[i])
		}
	}
}

func TestCache_EvictOldestOnEmpty(t *testing.T) {
	c := New[int](2, nil)
	c.EvictOldest() // must not panic
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

// The end-to-end example from the cache contract: capacity 2, insert a, b, c
// in order. "a" is evicted exactly once, at the third insertion, leaving
// {b, c} with c most recent.
func TestCache_EndToEndExample(t *testing.T) {
	var evicted []string
	c := New[int](2, func(key string, _ int) {
		evicted = append(evicted, key)
	})

	c.Add("a", 1)
	c.Add("b", 2)
	if len(evicted) != 0 {
		t.Fatalf("premature eviction: %v", evicted)
	}
	c.Add("c", 3)

	if len(evicted) != 1 || evicted[0] != "a" {
		t.Fatalf("evicted = %v, want [a] exactly once", evicted)
	}

	// "b" is now the eviction candidate: one more insert proves c was most
	// recent at the time of the example.
	c.Add("d", 4)
	if len(evicted) != 2 || evicted[1] != "b" {
		t.Fatalf("evicted = %v, want [a b]", evicted)
	}
}
