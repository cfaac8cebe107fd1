package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// RedisStore shares the intake counter across instances through ulule/limiter
// over redis. The window semantics are limiter's, not an exact sliding window,
// which is close enough for abuse throttling.
type RedisStore struct {
	instance *limiter.Limiter
}

func NewRedisStore(redisURL string, window time.Duration, limit int) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: "lead_intake",
	})
	if err != nil {
		return nil, err
	}
	rate := limiter.Rate{Period: window, Limit: int64(limit)}
	return &RedisStore{instance: limiter.New(store, rate)}, nil
}

func (s *RedisStore) CheckAndIncrement(ctx context.Context, key string) (bool, error) {
	res, err := s.instance.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return !res.Reached, nil
}
