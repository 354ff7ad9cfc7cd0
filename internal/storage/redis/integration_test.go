//go:build integration

package redis

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"atomizer/internal/domain"
)

type RedisIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	rdb       *redis.Client
}

func (s *RedisIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)

	rdb, err := Connect(s.ctx, fmt.Sprintf("redis://%s/0", endpoint))
	s.Require().NoError(err)
	s.rdb = rdb
}

func (s *RedisIntegrationSuite) TearDownSuite() {
	if s.rdb != nil {
		s.rdb.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RedisIntegrationSuite) SetupTest() {
	s.Require().NoError(s.rdb.FlushDB(s.ctx).Err())
}

func TestRedisIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RedisIntegrationSuite))
}

func (s *RedisIntegrationSuite) TestPlanCache_ReadThrough() {
	source := &countingSource{plan: domain.PlanPro}
	cache := NewPlanCache(s.rdb, source, time.Minute, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for i := 0; i < 3; i++ {
		plan, err := cache.Plan(s.ctx, "u1")
		s.Require().NoError(err)
		s.Equal(domain.PlanPro, plan)
	}
	s.Equal(1, source.calls)

	ttl, err := s.rdb.TTL(s.ctx, "atomizer:plan:u1").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))

	s.Require().NoError(cache.Invalidate(s.ctx, "u1"))
	_, err = cache.Plan(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(2, source.calls)
}
