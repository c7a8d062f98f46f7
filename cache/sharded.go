// Package cache provides a sharded, thread-safe LRU cache.
//
// vpath uses it to memoize measured contours: the key is a 64-bit hash of
// the contour geometry and the value is the immutable segment table, so
// repeated measurement of the same shapes (glyph outlines, icons) skips the
// flattening work.
package cache

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of independently locked shards. It is a
	// power of two so that shard selection is a mask.
	ShardCount = 16

	// DefaultCapacity is the per-shard capacity used for non-positive
	// capacities.
	DefaultCapacity = 64

	shardMask = ShardCount - 1
)

// Hasher computes the shard selection hash of a key.
type Hasher[K any] func(K) uint64

// StringHasher hashes a string with FNV-1a.
func StringHasher(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s)) // fnv.Write never returns an error
	return h.Sum64()
}

// Uint64Hasher is the identity hash for keys that are already hashes.
func Uint64Hasher(u uint64) uint64 {
	return u
}

// Float64sHasher hashes a sequence of floats with FNV-1a over their IEEE
// bit patterns.
func Float64sHasher(values []float64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, v := range values {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

// Stats is a snapshot of cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the per-shard capacity.
	Capacity int
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// Evictions is the number of entries dropped to honor capacity.
	Evictions uint64
}

// HitRate returns hits / (hits + misses), or 0 before any lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*node[K, V]
	lru     recency[K, V]
}

// ShardedCache is a thread-safe LRU cache split into ShardCount shards,
// each with its own lock and its own capacity.
//
// Values are stored as-is; callers must not modify a value after caching it.
type ShardedCache[K comparable, V any] struct {
	shards   [ShardCount]*shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewSharded creates a cache holding up to capacity entries per shard.
// If capacity <= 0, DefaultCapacity is used.
func NewSharded[K comparable, V any](capacity int, hasher Hasher[K]) *ShardedCache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &ShardedCache[K, V]{hasher: hasher, capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard[K, V]{entries: make(map[K]*node[K, V])}
	}
	return c
}

func (c *ShardedCache[K, V]) shardFor(key K) *shard[K, V] {
	return c.shards[c.hasher(key)&shardMask]
}

// Get returns the cached value for key and marks it most recently used.
func (c *ShardedCache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	nd, ok := s.entries[key]
	if !ok {
		s.mu.Unlock()
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.lru.touch(nd)
	value := nd.value
	s.mu.Unlock()
	c.hits.Add(1)
	return value, true
}

// Set stores value under key, evicting the least recently used entries of
// the shard when it is full.
func (c *ShardedCache[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	c.insertLocked(s, key, value)
}

// GetOrCreate returns the cached value for key, calling create to build
// it on a miss. create runs with the shard locked, so concurrent callers
// for the same key compute the value once.
func (c *ShardedCache[K, V]) GetOrCreate(key K, create func() V) V {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if nd, ok := s.entries[key]; ok {
		s.lru.touch(nd)
		c.hits.Add(1)
		return nd.value
	}
	c.misses.Add(1)
	value := create()
	c.insertLocked(s, key, value)
	return value
}

func (c *ShardedCache[K, V]) insertLocked(s *shard[K, V], key K, value V) {
	if nd, ok := s.entries[key]; ok {
		nd.value = value
		s.lru.touch(nd)
		return
	}
	for s.lru.len() >= c.capacity {
		old := s.lru.popBack()
		if old == nil {
			break
		}
		delete(s.entries, old.key)
		c.evictions.Add(1)
	}
	nd := &node[K, V]{key: key, value: value}
	s.lru.pushFront(nd)
	s.entries[key] = nd
}

// Delete removes key and reports whether it was present.
func (c *ShardedCache[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	nd, ok := s.entries[key]
	if !ok {
		return false
	}
	s.lru.unlink(nd)
	delete(s.entries, key)
	return true
}

// Clear removes every entry. Statistics are kept.
func (c *ShardedCache[K, V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		clear(s.entries)
		s.lru.clear()
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *ShardedCache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Capacity returns the per-shard capacity.
func (c *ShardedCache[K, V]) Capacity() int {
	return c.capacity
}

// Stats returns the current statistics.
func (c *ShardedCache[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// ResetStats zeroes the hit, miss and eviction counters.
func (c *ShardedCache[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}
