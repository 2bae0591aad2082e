package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ResHubApp/ResHub/internal/pkg/env"
)

var ctx = context.Background()

type redisStore struct {
	client *redis.Client
}

func newRedisStore() *redisStore {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       0, // use default DB
	})

	// Test the connection
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to cache server: %v", err)
	} else {
		log.Printf("Successfully connected to cache server: %s", pong)
	}

	return &redisStore{client: client}
}

func (s *redisStore) Get(key string) (string, bool) {
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *redisStore) Set(key string, value string, ttl time.Duration) {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Printf("cache: set %s failed: %v", key, err)
	}
}

func (s *redisStore) Delete(key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		log.Printf("cache: delete %s failed: %v", key, err)
	}
}
