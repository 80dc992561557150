// Package cache provides a thread-safe LRU cache for parsed signatures.
//
// The cache is owned by a functions.Registry and keyed by declaration text,
// so the same declaration is parsed once no matter how many problems or
// designs are registered from it. Concurrent misses on one key share a single
// parse.
//
// # Example
//
//	c := cache.New(256)
//	sig, err := c.GetOrParse("public int[] twoSum(int[] nums, int target)", parse)
package cache

import (
	"container/list"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sandrolain/leetcase/pkg/types"
)

// entry is a cache entry stored in the doubly-linked list.
type entry struct {
	key string
	sig *types.Signature
}

// Cache is a thread-safe LRU (Least Recently Used) cache for signatures.
// Once the capacity is reached, the least recently accessed entry is evicted.
//
// Cached signatures are shared; callers must Clone before modifying one.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
	group    singleflight.Group
}

// New creates a new LRU cache with the given capacity.
// capacity must be > 0; if <= 0, a default of 256 is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 256
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get retrieves a signature from the cache.
// Returns (sig, true) if found and moves the entry to front (MRU).
func (c *Cache) Get(key string) (*types.Signature, bool) {
	c.mu.RLock()
	el, ok := c.items[key]
	alreadyFront := ok && c.ll.Front() == el
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !alreadyFront {
		// Promote under write lock; re-check in case of concurrent eviction.
		c.mu.Lock()
		el, ok = c.items[key]
		if ok {
			c.ll.MoveToFront(el)
		}
		c.mu.Unlock()

		if !ok {
			return nil, false
		}
	}
	return el.Value.(*entry).sig, true
}

// Set inserts or replaces a signature in the cache.
// If at capacity, the least recently used entry is evicted first.
func (c *Cache) Set(key string, sig *types.Signature) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry).sig = sig
		c.ll.MoveToFront(el)
		return
	}

	if c.ll.Len() >= c.capacity {
		c.evictLocked()
	}

	el := c.ll.PushFront(&entry{key: key, sig: sig})
	c.items[key] = el
}

// GetOrParse returns the signature for key, calling parse on a miss.
// Concurrent misses on the same key wait for one parse. Errors are not cached.
func (c *Cache) GetOrParse(key string, parse func() (*types.Signature, error)) (*types.Signature, error) {
	if sig, ok := c.Get(key); ok {
		return sig, nil
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if sig, ok := c.Get(key); ok {
			return sig, nil
		}
		sig, err := parse()
		if err != nil {
			return nil, err
		}
		c.Set(key, sig)
		return sig, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.Signature), nil
}

// Len returns the number of entries currently in the cache.
func (c *Cache) Len() int {
	c.mu.RLock()
	n := len(c.items)
	c.mu.RUnlock()
	return n
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Invalidate removes a single entry from the cache.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		c.ll.Remove(el)
		delete(c.items, key)
	}
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// evictLocked removes the least recently used entry.
// Must be called with c.mu held for writing.
func (c *Cache) evictLocked() {
	el := c.ll.Back()
	if el == nil {
		return
	}
	c.ll.Remove(el)
	delete(c.items, el.Value.(*entry).key)
}
