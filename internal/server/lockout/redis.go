package lockout

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "todokeeper:lockout:"

// Connect builds a Redis client from a redis:// URL or a bare host:port.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisStore keeps counters in Redis hashes so several server instances
// share one view of failed logins.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

const (
	fieldFailedCount = "failed_count"
	fieldLockedUntil = "locked_until"
)

// stateFromFields decodes the hash fields as returned by HMGET: nil for a
// missing field, otherwise a string. Garbage reads as unset.
func stateFromFields(failedCount, lockedUntil any) State {
	var state State
	if raw, ok := failedCount.(string); ok {
		state.FailedCount, _ = strconv.Atoi(raw)
	}
	if raw, ok := lockedUntil.(string); ok {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil && unix > 0 {
			t := time.Unix(unix, 0).UTC()
			state.LockedUntil = &t
		}
	}
	return state
}

func (s *RedisStore) Get(ctx context.Context, key string) (State, error) {
	vals, err := s.client.HMGet(ctx, redisKeyPrefix+key, fieldFailedCount, fieldLockedUntil).Result()
	if err != nil {
		return State{}, err
	}
	return stateFromFields(vals[0], vals[1]), nil
}

func (s *RedisStore) RecordFailure(ctx context.Context, key string, now time.Time, threshold int, window time.Duration) (State, error) {
	redisKey := redisKeyPrefix + key

	count, err := s.client.HIncrBy(ctx, redisKey, fieldFailedCount, 1).Result()
	if err != nil {
		return State{}, err
	}
	countField := strconv.FormatInt(count, 10)

	if int(count) >= threshold {
		lockedUntil := strconv.FormatInt(now.Add(window).Unix(), 10)
		_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, redisKey, fieldLockedUntil, lockedUntil)
			p.Expire(ctx, redisKey, window)
			return nil
		})
		if err != nil {
			return State{}, err
		}
		// same decoding as Get, so callers see what is stored
		return stateFromFields(countField, lockedUntil), nil
	}

	// the window starts with the first failure
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return State{}, err
		}
	}
	return stateFromFields(countField, nil), nil
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}
