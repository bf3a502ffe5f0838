package violationstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisViolationPrefix = "violations/"

type RedisViolationStore struct {
	Client *redis.Client
}

var _ ViolationStore = (*RedisViolationStore)(nil)

func NewRedisViolationStore(redisURL string) (*RedisViolationStore, error) {
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
	return &RedisViolationStore{Client: rdb}, nil
}

func (s *RedisViolationStore) Record(ctx context.Context, userID string, at time.Time) (int, error) {
	key := redisViolationPrefix + userID

	vals, err := s.Client.HGetAll(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return 0, err
	}

	count := 0
	var firstAt time.Time
	if raw, ok := vals["first_at"]; ok {
		nano, err := strconv.ParseInt(raw, 10, 64)
		if err == nil {
			firstAt = time.Unix(0, nano)
		}
	}
	if raw, ok := vals["count"]; ok {
		if c, err := strconv.Atoi(raw); err == nil {
			count = c
		}
	}

	if count == 0 || at.Sub(firstAt) > ViolationWindow {
		count = 0
		firstAt = at
	}
	count++

	// plain read-modify-write; a lost increment under races just delays escalation
	multi := s.Client.Pipeline()
	multi.HSet(ctx, key, "count", count, "first_at", firstAt.UnixNano())
	multi.Expire(ctx, key, 2*ViolationWindow)
	if _, err := multi.Exec(ctx); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *RedisViolationStore) Reset(ctx context.Context, userID string) error {
	return s.Client.Del(ctx, redisViolationPrefix+userID).Err()
}
