// Package cache provides the in-process store backing the read-side cache
// port. Both storage modes use it; a shared store like Redis only becomes
// interesting once the API runs more than one replica.
package cache

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = 30 * time.Second

type entry struct {
	value    interface{}
	deadline time.Time
}

// Memory is a TTL cache held in process memory. Expired entries are dropped
// lazily on read and swept periodically by a janitor goroutine.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemory creates a running cache. Call Stop to release the janitor.
func NewMemory() *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		stop:    make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Get retrieves a live value from cache
func (m *Memory) Get(ctx context.Context, key string) (interface{}, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(e.deadline) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value in cache for the given lifetime. A non-positive TTL
// drops any existing entry instead of storing one that is already dead.
func (m *Memory) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		return m.Delete(ctx, key)
	}

	m.mu.Lock()
	m.entries[key] = entry{value: value, deadline: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Delete removes a value from cache
func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Clear removes all values from cache
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}

// Stop shuts down the janitor goroutine. Safe to call more than once.
func (m *Memory) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case now := <-ticker.C:
			m.mu.Lock()
			for key, e := range m.entries {
				if now.After(e.deadline) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		}
	}
}
