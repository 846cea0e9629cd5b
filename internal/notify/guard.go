package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard decides whether a completed order still needs its emails.
type Guard interface {
	FirstNotification(ctx context.Context, orderID string) (bool, error)
}

// AlwaysNotify lets every COMPLETED delivery send emails, replays included.
type AlwaysNotify struct{}

func (AlwaysNotify) FirstNotification(context.Context, string) (bool, error) { return true, nil }

type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

func (g *RedisGuard) FirstNotification(ctx context.Context, orderID string) (bool, error) {
	first, err := g.rdb.SetNX(ctx, "notify:order:"+orderID, time.Now().Unix(), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record notification for order %s: %w", orderID, err)
	}
	return first, nil
}
