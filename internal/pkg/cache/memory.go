package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	c *gocache.Cache
}

func newMemoryStore() *memoryStore {
	return &memoryStore{c: gocache.New(5*time.Minute, time.Minute)}
}

func (m *memoryStore) Get(key string) (string, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", false
	}
	s, _ := v.(string)
	return s, true
}

func (m *memoryStore) Set(key string, value string, ttl time.Duration) {
	m.c.Set(key, value, ttl)
}

func (m *memoryStore) Delete(key string) {
	m.c.Delete(key)
}
