package activitystore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	redisStampPrefix  = "activity/stamps/"
	redisRecentPrefix = "activity/recent/"
)

type RedisActivityStore struct {
	Client *redis.Client
}

var _ ActivityStore = (*RedisActivityStore)(nil)

func NewRedisActivityStore(redisURL string) (*RedisActivityStore, error) {
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
	return &RedisActivityStore{Client: rdb}, nil
}

func (s *RedisActivityStore) RecordMessage(ctx context.Context, userID, text string, at time.Time) error {
	stampKey := redisStampPrefix + userID
	recentKey := redisRecentPrefix + userID
	nano := at.UnixNano()

	// single round-trip: append timestamp, evict aged entries, push recent message
	multi := s.Client.Pipeline()
	multi.ZAdd(ctx, stampKey, redis.Z{
		Score:  float64(nano),
		Member: strconv.FormatInt(nano, 10),
	})
	multi.ZRemRangeByScore(ctx, stampKey, "0", strconv.FormatInt(at.Add(-RetentionWindow).UnixNano(), 10))
	multi.Expire(ctx, stampKey, 2*RetentionWindow)
	multi.LPush(ctx, recentKey, text)
	multi.LTrim(ctx, recentKey, 0, int64(RecentMessageMax-1))
	multi.Expire(ctx, recentKey, 24*time.Hour)
	_, err := multi.Exec(ctx)
	return err
}

func (s *RedisActivityStore) RecentMessages(ctx context.Context, userID string, n int) ([]string, error) {
	vals, err := s.Client.LRange(ctx, redisRecentPrefix+userID, 0, int64(n-1)).Result()
	if err == redis.Nil {
		return []string{}, nil
	} else if err != nil {
		return nil, err
	}
	// list is newest-first; return in chronological order
	out := make([]string, len(vals))
	for i, v := range vals {
		out[len(vals)-1-i] = v
	}
	return out, nil
}

func (s *RedisActivityStore) CountWithin(ctx context.Context, userID string, at time.Time, window time.Duration) (int, error) {
	min := strconv.FormatInt(at.Add(-window).UnixNano(), 10)
	c, err := s.Client.ZCount(ctx, redisStampPrefix+userID, min, "+inf").Result()
	if err == redis.Nil {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	return int(c), nil
}
