package utils

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// CacheHandlerI abstracts response caching so callers work the same
// against the in-memory handler or Redis.
type CacheHandlerI interface {
	Get(key string, result interface{}) error
	Set(key string, value interface{}, expiration time.Duration) error
	Delete(key string) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCacheHandler is the process-local fallback used when no Redis
// instance is configured.
type MemoryCacheHandler struct {
	entries map[string]memoryEntry
	mutex   sync.RWMutex
}

func NewMemoryCacheHandler() *MemoryCacheHandler {
	return &MemoryCacheHandler{
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCacheHandler) Get(key string, result interface{}) error {
	c.mutex.RLock()
	entry, ok := c.entries[key]
	c.mutex.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return ErrCacheMiss
	}
	return json.Unmarshal(entry.data, result)
}

func (c *MemoryCacheHandler) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[key] = memoryEntry{
		data:      data,
		expiresAt: time.Now().Add(expiration),
	}
	return nil
}

func (c *MemoryCacheHandler) Delete(key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, key)
	return nil
}
