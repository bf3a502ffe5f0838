package cooldown

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisCooldownPrefix = "cooldown/"

type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opt)
	// check redis connection
	_, err = rdb.Ping(context.TODO()).Result()
	if err != nil {
		return nil, err
	}
	return &RedisStore{Client: rdb, TTL: ttl}, nil
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	// SET NX EX is the whole check-and-set in one round trip
	return s.Client.SetNX(ctx, redisCooldownPrefix+key, 1, s.TTL).Result()
}
