package sharecraft

import (
	"sync"
	"time"
)

// KV is the key-value collaborator backing sessions and runtime settings
// such as admin_username and site_domain. Entries expire after their TTL;
// a zero TTL means no expiry.
type KV interface {
	Get(key string) (string, bool)
	Put(key, value string, ttl time.Duration)
	Delete(key string)
}

type kvEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// MemoryKV is an in-process KV implementation. Expired entries are dropped
// lazily on read and swept by a background janitor.
type MemoryKV struct {
	mu      sync.Mutex
	entries map[string]kvEntry
}

// NewMemoryKV creates a MemoryKV whose janitor runs at the given interval.
func NewMemoryKV(janitorInterval time.Duration) *MemoryKV {
	kv := &MemoryKV{entries: make(map[string]kvEntry)}
	go kv.janitor(janitorInterval)
	return kv
}

func (kv *MemoryKV) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	for range ticker.C {
		now := time.Now()
		kv.mu.Lock()
		for key, e := range kv.entries {
			if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
				delete(kv.entries, key)
			}
		}
		kv.mu.Unlock()
	}
}

// Get returns the live value for key.
func (kv *MemoryKV) Get(key string) (string, bool) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	e, ok := kv.entries[key]
	if !ok {
		return "", false
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(kv.entries, key)
		return "", false
	}
	return e.value, true
}

// Put stores value under key for the given TTL.
func (kv *MemoryKV) Put(key, value string, ttl time.Duration) {
	e := kvEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	kv.mu.Lock()
	kv.entries[key] = e
	kv.mu.Unlock()
}

// Delete removes key.
func (kv *MemoryKV) Delete(key string) {
	kv.mu.Lock()
	delete(kv.entries, key)
	kv.mu.Unlock()
}
