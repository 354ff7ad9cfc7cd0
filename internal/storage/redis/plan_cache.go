package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"atomizer/internal/domain"
)

const (
	keyPrefix  = "atomizer:plan:"
	defaultTTL = 10 * time.Minute
)

type PlanSource interface {
	Plan(ctx context.Context, userID string) (domain.Plan, error)
}

// PlanCache is a read-through cache over a PlanSource. Cache errors are
// logged and the source is consulted directly.
type PlanCache struct {
	rdb    redis.Cmdable
	source PlanSource
	ttl    time.Duration
	logger *slog.Logger
}

// Connect parses a redis:// URL and checks the server is reachable.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func NewPlanCache(rdb redis.Cmdable, source PlanSource, ttl time.Duration, logger *slog.Logger) *PlanCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PlanCache{
		rdb:    rdb,
		source: source,
		ttl:    ttl,
		logger: logger.With("component", "plan_cache"),
	}
}

func (c *PlanCache) Plan(ctx context.Context, userID string) (domain.Plan, error) {
	key := keyPrefix + userID

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		return domain.ParsePlan(cached), nil
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("plan cache read failed", "user_id", userID, "error", err)
	}

	plan, err := c.source.Plan(ctx, userID)
	if err != nil {
		return "", err
	}

	if err := c.rdb.Set(ctx, key, string(plan), c.ttl).Err(); err != nil {
		c.logger.Warn("plan cache write failed", "user_id", userID, "error", err)
	}
	return plan, nil
}

// Invalidate drops the cached plan so the next lookup reads the source.
func (c *PlanCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, keyPrefix+userID).Err()
}
