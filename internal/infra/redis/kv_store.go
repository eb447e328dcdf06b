package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KVStore persists keys as plain Redis strings without expiry.
type KVStore struct {
	client *redis.Client
}

func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// raiseScript sets KEYS[1] to ARGV[1] only when it is greater than the current integer value.
// A missing or non-numeric value counts as 0.
var raiseScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0') or 0
if current < 0 then current = 0 end
local value = tonumber(ARGV[1])
if value > current then
	redis.call('SET', KEYS[1], ARGV[1])
	return {value, 1}
end
return {current, 0}
`)

// RaiseInt stores value under key when it exceeds the stored integer, in a single server-side step.
func (s *KVStore) RaiseInt(ctx context.Context, key string, value int) (int, bool, error) {
	res, err := raiseScript.Run(ctx, s.client, []string{key}, value).Int64Slice()
	if err != nil {
		return 0, false, fmt.Errorf("redis raise %s: %w", key, err)
	}
	if len(res) != 2 {
		return 0, false, fmt.Errorf("redis raise %s: unexpected reply %v", key, res)
	}
	return int(res[0]), res[1] == 1, nil
}
