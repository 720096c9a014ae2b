package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
)

// RedisCache is a CacheRepository backed by Redis. Calls go through a circuit
// breaker so an unavailable server turns into cache misses instead of latency.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *gobreaker.CircuitBreaker
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return newRedisCache(rdb, ttl)
}

func newRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "redis-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return &RedisCache{
		client:  client,
		ttl:     ttl,
		breaker: breaker,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.breaker.Execute(func() (interface{}, error) {
		v, err := r.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return v, err
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

func (r *RedisCache) Set(ctx context.Context, key string, value string) error {
	_, err := r.breaker.Execute(func() (interface{}, error) {
		return nil, r.client.Set(ctx, key, value, r.ttl).Err()
	})
	return err
}

// Ping checks connectivity, used at startup to decide whether to fall back.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
