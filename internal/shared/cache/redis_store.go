package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joshuarp/msgcontext-gateway/internal/shared/uid"
)

const (
	defaultLockLease     = 30 * time.Second
	defaultLockRetryMin  = 5 * time.Millisecond
	defaultLockRetryMax  = 100 * time.Millisecond
	releaseIfOwnerScript = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`
)

var _ Backend = (*RedisStore)(nil)

// RedisStore is a distributed Backend using Redis.
// Safe for multi-instance deployments: locks are SET NX leases carrying an
// ownership token, released with a compare-and-delete script.
type RedisStore struct {
	client   redis.UniversalClient
	prefix   string
	tokens   uid.UIDGenerator
	lease    time.Duration
	retryMin time.Duration
	retryMax time.Duration
}

// RedisStoreOption configures the Redis store.
type RedisStoreOption func(*RedisStore)

// WithRedisPrefix sets a prefix for all Redis keys.
func WithRedisPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// WithLockLease bounds how long a lock survives a holder that never releases it.
func WithLockLease(lease time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if lease > 0 {
			s.lease = lease
		}
	}
}

// WithLockRetry sets the exponential backoff between lock attempts.
func WithLockRetry(minWait, maxWait time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if minWait > 0 {
			s.retryMin = minWait
		}
		if maxWait >= s.retryMin {
			s.retryMax = maxWait
		}
	}
}

// WithLockTokens sets the generator for lock ownership tokens.
func WithLockTokens(tokens uid.UIDGenerator) RedisStoreOption {
	return func(s *RedisStore) {
		if tokens != nil {
			s.tokens = tokens
		}
	}
}

// NewRedisStore creates a new Redis-based backend.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("cache: redis client is required")
	}

	s := &RedisStore{
		client:   client,
		prefix:   "msgctx",
		lease:    defaultLockLease,
		retryMin: defaultLockRetryMin,
		retryMax: defaultLockRetryMax,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.tokens == nil {
		tokens, err := uid.NewUUIDv7()
		if err != nil {
			return nil, err
		}
		s.tokens = tokens
	}

	return s, nil
}

func (s *RedisStore) Kind() Kind { return KindDistributed }

func (s *RedisStore) dataKey(key string) string {
	return s.prefix + ":data:" + key
}

func (s *RedisStore) lockKey(domain, key string) string {
	return s.prefix + ":lock:" + lockName(domain, key)
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.dataKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: redis get %s failed: %w: %w", key, ErrBackendUnavailable, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.dataKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache: redis set %s failed: %w: %w", key, ErrBackendUnavailable, err)
	}
	return nil
}

func (s *RedisStore) AcquireLock(ctx context.Context, domain, key string, timeout time.Duration) (Lock, error) {
	lockKey := s.lockKey(domain, key)

	token, err := s.tokens.Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("cache: lock token for %s: %w", lockKey, err)
	}

	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	backoff := s.retryMin
	for {
		acquired, err := s.client.SetNX(ctx, lockKey, token, s.lease).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("cache: wait for lock %s: %w", lockKey, ctxErr)
			}
			return nil, fmt.Errorf("cache: redis lock %s failed: %w: %w", lockKey, ErrBackendUnavailable, err)
		}
		if acquired {
			return &redisLock{client: s.client, key: lockKey, token: token}, nil
		}

		wait := backoff
		if !deadline.IsZero() {
			remaining := time.Until(deadline)
			if remaining <= 0 {
				return nil, fmt.Errorf("%w: %s after %s", ErrLockTimeout, lockKey, timeout)
			}
			if wait > remaining {
				wait = remaining
			}
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("cache: wait for lock %s: %w", lockKey, ctx.Err())
		case <-timer.C:
		}

		backoff *= 2
		if backoff > s.retryMax {
			backoff = s.retryMax
		}
	}
}

func (s *RedisStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

type redisLock struct {
	client redis.UniversalClient
	key    string
	token  string
}

func (l *redisLock) Release(ctx context.Context) error {
	deleted, err := l.client.Eval(ctx, releaseIfOwnerScript, []string{l.key}, l.token).Int64()
	if err != nil {
		return fmt.Errorf("cache: redis unlock %s failed: %w: %w", l.key, ErrBackendUnavailable, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %s", ErrLockNotHeld, l.key)
	}
	return nil
}
