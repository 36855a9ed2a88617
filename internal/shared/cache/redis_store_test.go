package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisStoreSuite struct {
	suite.Suite

	server *miniredis.Miniredis
	client *redis.Client
	store  *RedisStore
}

func (s *RedisStoreSuite) SetupTest() {
	s.server = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{
		Addr:        s.server.Addr(),
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})

	store, err := NewRedisStore(s.client,
		WithRedisPrefix("test"),
		WithLockLease(time.Minute),
		WithLockRetry(time.Millisecond, 5*time.Millisecond),
	)
	require.NoError(s.T(), err)
	s.store = store
}

func (s *RedisStoreSuite) TearDownTest() {
	_ = s.client.Close()
}

func (s *RedisStoreSuite) TestNewRedisStore_RequiresClient() {
	_, err := NewRedisStore(nil)
	require.Error(s.T(), err)
}

func (s *RedisStoreSuite) TestGetSet() {
	ctx := context.Background()

	got, found, err := s.store.Get(ctx, "conv-1")
	require.NoError(s.T(), err)
	assert.False(s.T(), found)
	assert.Nil(s.T(), got)

	require.NoError(s.T(), s.store.Set(ctx, "conv-1", []byte(`{"records":[]}`), time.Minute))
	assert.True(s.T(), s.server.Exists("test:data:conv-1"))
	assert.Equal(s.T(), time.Minute, s.server.TTL("test:data:conv-1"))

	got, found, err = s.store.Get(ctx, "conv-1")
	require.NoError(s.T(), err)
	assert.True(s.T(), found)
	assert.Equal(s.T(), []byte(`{"records":[]}`), got)

	s.server.FastForward(time.Minute)
	_, found, err = s.store.Get(ctx, "conv-1")
	require.NoError(s.T(), err)
	assert.False(s.T(), found)
}

func (s *RedisStoreSuite) TestAcquireLock_ContentionAndRelease() {
	ctx := context.Background()

	held, err := s.store.AcquireLock(ctx, "insert", "conv-1", time.Second)
	require.NoError(s.T(), err)
	assert.True(s.T(), s.server.Exists("test:lock:insert:conv-1"))
	assert.Equal(s.T(), time.Minute, s.server.TTL("test:lock:insert:conv-1"))

	_, err = s.store.AcquireLock(ctx, "insert", "conv-1", 20*time.Millisecond)
	require.Error(s.T(), err)
	assert.ErrorIs(s.T(), err, ErrLockTimeout)

	other, err := s.store.AcquireLock(ctx, "insert", "conv-2", 20*time.Millisecond)
	require.NoError(s.T(), err)
	require.NoError(s.T(), other.Release(ctx))

	require.NoError(s.T(), held.Release(ctx))
	assert.False(s.T(), s.server.Exists("test:lock:insert:conv-1"))

	next, err := s.store.AcquireLock(ctx, "insert", "conv-1", 20*time.Millisecond)
	require.NoError(s.T(), err)
	require.NoError(s.T(), next.Release(ctx))
}

func (s *RedisStoreSuite) TestRelease_AfterLeaseExpiryDoesNotStealLock() {
	ctx := context.Background()

	stale, err := s.store.AcquireLock(ctx, "insert", "conv-1", time.Second)
	require.NoError(s.T(), err)

	s.server.FastForward(time.Minute)

	fresh, err := s.store.AcquireLock(ctx, "insert", "conv-1", 20*time.Millisecond)
	require.NoError(s.T(), err)

	err = stale.Release(ctx)
	require.Error(s.T(), err)
	assert.ErrorIs(s.T(), err, ErrLockNotHeld)
	assert.True(s.T(), s.server.Exists("test:lock:insert:conv-1"))

	require.NoError(s.T(), fresh.Release(ctx))
}

func (s *RedisStoreSuite) TestBackendDown() {
	ctx := context.Background()
	s.server.Close()

	_, _, err := s.store.Get(ctx, "conv-1")
	assert.ErrorIs(s.T(), err, ErrBackendUnavailable)

	err = s.store.Set(ctx, "conv-1", []byte("x"), 0)
	assert.ErrorIs(s.T(), err, ErrBackendUnavailable)

	_, err = s.store.AcquireLock(ctx, "insert", "conv-1", 50*time.Millisecond)
	assert.ErrorIs(s.T(), err, ErrBackendUnavailable)
}

func (s *RedisStoreSuite) TestKind() {
	assert.Equal(s.T(), KindDistributed, s.store.Kind())
	assert.Equal(s.T(), KindLocal, NewLocalStore().Kind())
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}
