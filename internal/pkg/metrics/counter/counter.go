package counter

import (
	"context"

	"github.com/ResHubApp/ResHub/internal/pkg/cache"
)

const (
	loginOutcomesKey = "wechat:counters:login"
	linkOutcomesKey  = "wechat:counters:link"
)

// AddLoginOutcome increments the counter for one finished login attempt.
// outcome is "success" or a failure category. No-op without a redis cache.
func AddLoginOutcome(outcome string) error {
	client := cache.GetClient()
	if client == nil {
		return nil
	}
	return client.HIncrBy(context.Background(), loginOutcomesKey, outcome, 1).Err()
}

// AddLinkOutcome increments the counter for one finished link attempt.
func AddLinkOutcome(outcome string) error {
	client := cache.GetClient()
	if client == nil {
		return nil
	}
	return client.HIncrBy(context.Background(), linkOutcomesKey, outcome, 1).Err()
}

// LoginOutcomes returns the accumulated login counters by outcome.
func LoginOutcomes() (map[string]string, error) {
	client := cache.GetClient()
	if client == nil {
		return map[string]string{}, nil
	}
	return client.HGetAll(context.Background(), loginOutcomesKey).Result()
}

// LinkOutcomes returns the accumulated link counters by outcome.
func LinkOutcomes() (map[string]string, error) {
	client := cache.GetClient()
	if client == nil {
		return map[string]string{}, nil
	}
	return client.HGetAll(context.Background(), linkOutcomesKey).Result()
}
