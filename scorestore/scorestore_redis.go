package scorestore

import (
	"context"

	"github.com/redis/go-redis/v9"
)

var redisScorePrefix = "suspicion/"

type RedisScoreStore struct {
	Client *redis.Client
}

var _ ScoreStore = (*RedisScoreStore)(nil)

func NewRedisScoreStore(redisURL string) (*RedisScoreStore, error) {
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
	return &RedisScoreStore{Client: rdb}, nil
}

func (s *RedisScoreStore) Increment(ctx context.Context, userID string, points int) (int, error) {
	key := redisScorePrefix + userID
	v, err := s.Client.IncrBy(ctx, key, int64(points)).Result()
	if err != nil {
		return 0, err
	}
	c := clampScore(int(v))
	if c != int(v) {
		// write back the clamped value; racing increments are tolerated
		if err := s.Client.Set(ctx, key, c, 0).Err(); err != nil {
			return 0, err
		}
	}
	return c, nil
}

func (s *RedisScoreStore) Get(ctx context.Context, userID string) (int, error) {
	v, err := s.Client.Get(ctx, redisScorePrefix+userID).Int()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return clampScore(v), nil
}
