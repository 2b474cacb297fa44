package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/isaacmuchunu/ai-resume-analyzer-sub001/internal/scoring"
)

// RedisCache stores results as JSON strings in Redis.
type RedisCache struct {
	Client *redis.Client
	Prefix string
}

// NewRedisCache parses a redis:// URL and verifies the connection.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{Client: client, Prefix: "resumescore:"}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (scoring.AnalysisResult, error) {
	raw, err := r.Client.Get(ctx, r.Prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return scoring.AnalysisResult{}, ErrMiss
		}
		return scoring.AnalysisResult{}, fmt.Errorf("redis get: %w", err)
	}
	var result scoring.AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return scoring.AnalysisResult{}, fmt.Errorf("decode cached result: %w", err)
	}
	return result, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, result scoring.AnalysisResult, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.Client.Set(ctx, r.Prefix+key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close releases the client.
func (r *RedisCache) Close() error {
	return r.Client.Close()
}

var _ ResultCache = (*RedisCache)(nil)
