package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	expiresAt time.Time
}

// MemoryTokenCache is a process-local TokenCache. Expired entries are dropped when read or
// overwritten; there is no background sweep.
type MemoryTokenCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryTokenCache) Get(ctx context.Context, username string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.live(username)
	if !ok {
		return "", false, nil
	}
	return entry.token, true, nil
}

func (c *MemoryTokenCache) SetIfAbsent(ctx context.Context, username, token string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.live(username); ok {
		return false, nil
	}
	c.entries[username] = memoryEntry{token: token, expiresAt: c.now().Add(ttl)}
	return true, nil
}

// live must be called with mu held.
func (c *MemoryTokenCache) live(username string) (memoryEntry, bool) {
	entry, ok := c.entries[username]
	if !ok {
		return memoryEntry{}, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, username)
		return memoryEntry{}, false
	}
	return entry, true
}
