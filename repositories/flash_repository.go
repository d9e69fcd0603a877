package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisFlashRepository struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisFlashRepository(redisClient *redis.Client, ttlSeconds int) *RedisFlashRepository {
	return &RedisFlashRepository{redis: redisClient, ttl: time.Duration(ttlSeconds) * time.Second}
}

func flashKey(sessionID string) string {
	return fmt.Sprintf("session:%s:flashes", sessionID)
}

func (r *RedisFlashRepository) Push(ctx context.Context, sessionID string, flash Flash) error {
	payload, err := json.Marshal(flash)
	if err != nil {
		return err
	}
	key := flashKey(sessionID)
	pipe := r.redis.TxPipeline()
	pipe.RPush(ctx, key, payload)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisFlashRepository) Pop(ctx context.Context, sessionID string) ([]Flash, error) {
	key := flashKey(sessionID)
	pipe := r.redis.TxPipeline()
	rangeCmd := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	members := rangeCmd.Val()
	result := make([]Flash, 0, len(members))
	for _, member := range members {
		var flash Flash
		if err := json.Unmarshal([]byte(member), &flash); err != nil {
			continue
		}
		result = append(result, flash)
	}
	return result, nil
}
