package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const presenceTTL = 2 * time.Minute

// Presence tracks which users pinged recently. It is optional: a nil
// *Presence is safe to call and reports everyone offline.
type Presence struct {
	rdb *redis.Client
}

func NewPresence(redisURL string) (*Presence, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &Presence{rdb: rdb}, nil
}

func (p *Presence) Touch(ctx context.Context, userID uint) error {
	if p == nil {
		return nil
	}
	return p.rdb.Set(ctx, key(userID), time.Now().Unix(), presenceTTL).Err()
}

func (p *Presence) IsOnline(ctx context.Context, userID uint) bool {
	if p == nil {
		return false
	}
	_, err := p.rdb.Get(ctx, key(userID)).Result()
	return err == nil
}

func key(userID uint) string {
	return fmt.Sprintf("presence:%d", userID)
}
