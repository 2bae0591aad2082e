package cache

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ResHubApp/ResHub/internal/pkg/env"
)

// Store is the small cache surface the controllers need for the read-only
// identity and link-status copies. Both backends give TTL semantics; the
// flow's correctness never depends on a hit.
type Store interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration)
	Delete(key string)
}

var store Store

// SetupCache selects the backend from CACHE_DRIVER: "redis" (default) or
// "memory" for single-process deployments and tests.
func SetupCache() {
	driver := env.GetEnv("CACHE_DRIVER", "redis")
	switch driver {
	case "memory":
		store = newMemoryStore()
		log.Printf("cache: using in-memory store")
	default:
		store = newRedisStore()
	}
}

// GetStore returns the configured cache, initializing it on first use.
func GetStore() Store {
	if store == nil {
		SetupCache()
	}
	return store
}

// GetClient exposes the underlying Redis client for collaborators that need
// connection details (session storage). Nil when the memory backend is
// active.
func GetClient() *redis.Client {
	if rs, ok := GetStore().(*redisStore); ok {
		return rs.client
	}
	return nil
}

func Get(key string) (string, bool) { return GetStore().Get(key) }

func Set(key string, value string, ttl time.Duration) { GetStore().Set(key, value, ttl) }

func Delete(key string) { GetStore().Delete(key) }
