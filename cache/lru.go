// Package cache provides a byte-budget LRU cache used by the image
// pipeline. Unlike an entry-count cache, eviction is driven by the
// summed cost of the cached values: inserting an entry that pushes the
// total over the budget evicts least-recently-used entries until the
// total fits again.
package cache

import (
	"sync"
	"sync/atomic"
	"time"
)

// lruNode is a node in a doubly-linked LRU list.
// The node stores a key for O(1) deletion from the parent map.
type lruNode[K comparable] struct {
	key  K
	prev *lruNode[K]
	next *lruNode[K]
}

// lruList is a doubly-linked list for LRU eviction.
// The list is not thread-safe; the owning cache synchronizes access.
//
// The head is the most recently used, tail is least recently used.
type lruList[K comparable] struct {
	head *lruNode[K]
	tail *lruNode[K]
	len  int
}

// PushFront adds a new node at the front (most recently used).
// Returns the created node for later access.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key}
	if l.head == nil {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}
	l.len++
	return node
}

// MoveToFront moves an existing node to the front (most recently used).
func (l *lruList[K]) MoveToFront(node *lruNode[K]) {
	if node == nil || node == l.head {
		return
	}
	l.unlink(node)
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

// Remove removes a node from the list.
func (l *lruList[K]) Remove(node *lruNode[K]) {
	if node == nil {
		return
	}
	l.unlink(node)
}

// RemoveOldest removes and returns the key of the least recently used
// node. Returns zero value and false if the list is empty.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	node := l.tail
	l.unlink(node)
	return node.key, true
}

// unlink removes a node from the list.
func (l *lruList[K]) unlink(node *lruNode[K]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev = nil
	node.next = nil
	l.len--
}

// entry holds a cached value with its cost and LRU bookkeeping.
type entry[K comparable, V any] struct {
	value    V
	cost     int64
	accessed time.Time
	node     *lruNode[K]
}

// Budget is a thread-safe LRU cache bounded by total value cost in
// bytes rather than entry count.
//
// Values carry the cost declared at Set time; the cache never inspects
// them. A single value larger than the whole budget is still admitted
// (and evicts everything else), so callers always see their most
// recent insertion succeed.
type Budget[K comparable, V any] struct {
	mu      sync.Mutex
	budget  int64
	used    int64
	entries map[K]*entry[K, V]
	lru     lruList[K]

	// Statistics (atomic for lock-free reads)
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64

	// OnEvict, when non-nil, is called after an entry has been
	// removed by eviction (not by Delete). It runs after the cache
	// lock is released, so it may call back into the cache.
	OnEvict func(key K, value V)
}

// NewBudget creates a byte-budget LRU cache.
// If budget <= 0 the cache stores nothing.
func NewBudget[K comparable, V any](budget int64) *Budget[K, V] {
	return &Budget[K, V]{
		budget:  budget,
		entries: make(map[K]*entry[K, V]),
	}
}

// Budget returns the configured byte budget.
func (c *Budget[K, V]) Budget() int64 {
	return c.budget
}

// Used returns the summed cost of all cached entries.
func (c *Budget[K, V]) Used() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

// Len returns the number of cached entries.
func (c *Budget[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Get retrieves a cached value by key.
// A hit refreshes the entry's access time and LRU position.
func (c *Budget[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	e.accessed = time.Now()
	c.lru.MoveToFront(e.node)
	value := e.value
	c.mu.Unlock()
	c.hits.Add(1)
	return value, true
}

// Set stores a value with the given cost, evicting least-recently-used
// entries until the budget is satisfied. Setting an existing key
// replaces its value and cost.
func (c *Budget[K, V]) Set(key K, value V, cost int64) {
	if c.budget <= 0 {
		return
	}
	var evicted []struct {
		key   K
		value V
	}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.used += cost - e.cost
		e.value = value
		e.cost = cost
		e.accessed = time.Now()
		c.lru.MoveToFront(e.node)
	} else {
		node := c.lru.PushFront(key)
		c.entries[key] = &entry[K, V]{
			value:    value,
			cost:     cost,
			accessed: time.Now(),
			node:     node,
		}
		c.used += cost
	}

	// Evict oldest entries until within budget. The entry just
	// touched is at the front and is evicted last if oversized.
	for c.used > c.budget && c.lru.len > 1 {
		oldKey, ok := c.lru.RemoveOldest()
		if !ok {
			break
		}
		old := c.entries[oldKey]
		delete(c.entries, oldKey)
		c.used -= old.cost
		c.evictions.Add(1)
		if c.OnEvict != nil {
			evicted = append(evicted, struct {
				key   K
				value V
			}{oldKey, old.value})
		}
	}
	c.mu.Unlock()

	for _, ev := range evicted {
		c.OnEvict(ev.key, ev.value)
	}
}

// Delete removes an entry if present.
func (c *Budget[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	c.lru.Remove(e.node)
	delete(c.entries, key)
	c.used -= e.cost
}

// Contains reports whether the key is cached without refreshing its
// LRU position.
func (c *Budget[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Clear removes all entries.
func (c *Budget[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[K, V])
	c.lru = lruList[K]{}
	c.used = 0
}

// Stats reports cache statistics since creation.
func (c *Budget[K, V]) Stats() (hits, misses, evictions uint64) {
	return c.hits.Load(), c.misses.Load(), c.evictions.Load()
}
