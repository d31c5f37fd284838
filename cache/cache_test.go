package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	tContainer "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	redisdb "github.com/octabyte/emaar-web/db/redis"
	"github.com/octabyte/emaar-web/models"
)

func TestFetchWithNoopAlwaysLoads(t *testing.T) {
	calls := 0
	load := func(context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 2; i++ {
		v, err := Fetch(context.Background(), Noop{}, "k", time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	}
	assert.Equal(t, 2, calls)
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	boom := errors.New("upstream down")
	_, err := Fetch(context.Background(), Noop{}, "k", time.Minute, func(context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)
}

type RedisCacheTestSuite struct {
	suite.Suite
	ctx       context.Context
	container tContainer.Container
	client    *goredis.Client
	cache     *RedisCache
}

func TestRedisCacheTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("redis integration test needs docker")
	}
	suite.Run(t, new(RedisCacheTestSuite))
}

func (s *RedisCacheTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := tContainer.GenericContainer(s.ctx, tContainer.GenericContainerRequest{
		ContainerRequest: tContainer.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "6379")
	s.Require().NoError(err)

	s.client, err = redisdb.NewRedisClient(s.ctx, redisdb.Config{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	s.Require().NoError(err)
	s.cache = NewRedisCache(s.client, "test:cache:")
}

func (s *RedisCacheTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *RedisCacheTestSuite) TestFetchLoadsOnce() {
	calls := 0
	load := func(context.Context) ([]models.Governorate, error) {
		calls++
		return []models.Governorate{{ID: 1, Name: models.Localized{Ar: "نينوى", En: "Nineveh"}}}, nil
	}

	for i := 0; i < 3; i++ {
		govs, err := Fetch(s.ctx, s.cache, "governorates", time.Minute, load)
		s.Require().NoError(err)
		s.Equal("Nineveh", govs[0].Name.En)
	}
	s.Equal(1, calls)

	s.cache.Delete(s.ctx, "governorates")
	_, err := Fetch(s.ctx, s.cache, "governorates", time.Minute, load)
	s.Require().NoError(err)
	s.Equal(2, calls)
}

func (s *RedisCacheTestSuite) TestCorruptEntryIsAMiss() {
	s.Require().NoError(redisdb.Set(s.ctx, s.client, "test:cache:broken", "{not json", time.Minute))

	var dst models.Project
	s.False(s.cache.Get(s.ctx, "broken", &dst))
}
