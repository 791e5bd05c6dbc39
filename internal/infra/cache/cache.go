// Package cache keeps recently fetched catalog lists (clients, agents,
// programs, payment methods) in memory so repeated screen loads do not
// hammer the remote data service. Entries expire after a fixed TTL and
// writes from this process invalidate them eagerly.
package cache

import (
	"sync"
	"time"
)

type item[T any] struct {
	value    T
	deadline time.Time
}

// InMemory is a TTL cache safe for concurrent use.
type InMemory[T any] struct {
	mu  sync.RWMutex
	set map[string]item[T]
	ttl time.Duration
}

// New returns a cache whose entries live for ttl. A background sweep
// drops expired entries so tenants that stop being queried do not pin
// their lists indefinitely.
func New[T any](ttl time.Duration) *InMemory[T] {
	c := &InMemory[T]{
		set: make(map[string]item[T]),
		ttl: ttl,
	}
	go c.sweep()
	return c
}

// Get returns the cached value for key, or false when absent or expired.
func (c *InMemory[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	it, ok := c.set[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(it.deadline) {
		var zero T
		return zero, false
	}
	return it.value, true
}

// Set stores value under key for the configured TTL.
func (c *InMemory[T]) Set(key string, value T) {
	c.mu.Lock()
	c.set[key] = item[T]{value: value, deadline: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Delete drops key, if present.
func (c *InMemory[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.set, key)
	c.mu.Unlock()
}

func (c *InMemory[T]) sweep() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for k, it := range c.set {
			if now.After(it.deadline) {
				delete(c.set, k)
			}
		}
		c.mu.Unlock()
	}
}
