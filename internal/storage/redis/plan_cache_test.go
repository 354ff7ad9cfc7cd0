package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atomizer/internal/domain"
)

type countingSource struct {
	plan  domain.Plan
	err   error
	calls int
}

func (s *countingSource) Plan(context.Context, string) (domain.Plan, error) {
	s.calls++
	return s.plan, s.err
}

func unreachableClient(t *testing.T) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestPlanCache_FallsBackWhenRedisIsDown(t *testing.T) {
	source := &countingSource{plan: domain.PlanPro}
	cache := NewPlanCache(unreachableClient(t), source, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	plan, err := cache.Plan(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, domain.PlanPro, plan)
	assert.Equal(t, 1, source.calls)
}

func TestPlanCache_SourceErrorPropagates(t *testing.T) {
	source := &countingSource{err: errors.New("db down")}
	cache := NewPlanCache(unreachableClient(t), source, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := cache.Plan(context.Background(), "u1")

	assert.EqualError(t, err, "db down")
}
