package cache

import (
	"context"
	"sync"
	"time"
)

type item struct {
	entry   *Entry
	expires time.Time
}

// Memory is a process local cache. A zero TTL keeps entries forever.
type Memory struct {
	items map[string]item
	now   func() time.Time

	ttl time.Duration
	mu  sync.RWMutex
}

func (i item) expiredAt(now time.Time) bool {
	return !i.expires.IsZero() && now.After(i.expires)
}

var _ Cache = &Memory{}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		items: make(map[string]item),
		now:   time.Now,
		ttl:   ttl,
	}
}

func (m *Memory) Get(_ context.Context, key string) (*Entry, bool, error) {
	m.mu.RLock()
	cached, exists := m.items[key]
	m.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	if cached.expiredAt(m.now()) {
		m.mu.Lock()
		if current, stillThere := m.items[key]; stillThere && current.expiredAt(m.now()) {
			delete(m.items, key)
		}
		m.mu.Unlock()

		return nil, false, nil
	}

	return cached.entry, true, nil
}

// Set stores the entry and drops every expired one,
// so keys that are never read again do not accumulate.
func (m *Memory) Set(_ context.Context, key string, entry *Entry) error {
	now := m.now()

	cached := item{
		entry: entry,
	}

	if m.ttl > 0 {
		cached.expires = now.Add(m.ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ttl > 0 {
		for k, existing := range m.items {
			if existing.expiredAt(now) {
				delete(m.items, k)
			}
		}
	}

	m.items[key] = cached

	return nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.items)
}
