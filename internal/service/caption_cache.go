package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// redisCaptionCache keeps rendered SRT bodies in Redis. Lookup failures
// degrade to a re-render, so every Redis error is logged and swallowed.
type redisCaptionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCaptionCache(rdb *redis.Client, ttl time.Duration) CaptionCache {
	return &redisCaptionCache{rdb: rdb, ttl: ttl}
}

func captionKey(id uuid.UUID) string {
	return "captions:" + id.String()
}

func (c *redisCaptionCache) Get(ctx context.Context, id uuid.UUID) (string, bool) {
	srt, err := c.rdb.Get(ctx, captionKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[cache] get job_id=%s error=%v", id.String(), err)
		}
		return "", false
	}
	return srt, true
}

func (c *redisCaptionCache) Set(ctx context.Context, id uuid.UUID, srt string) {
	if err := c.rdb.Set(ctx, captionKey(id), srt, c.ttl).Err(); err != nil {
		log.Printf("[cache] set job_id=%s error=%v", id.String(), err)
	}
}
