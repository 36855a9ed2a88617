package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/joshuarp/msgcontext-gateway/internal/shared/cache"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/config"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/uid"
)

const (
	backendRedis = "redis"
	backendLocal = "local"
)

func newRedisClient(cfg config.ConfigProvider) *redis.Client {
	host := strings.TrimSpace(cfg.GetString("redis.host"))
	if host == "" {
		host = "localhost"
	}

	port := cfg.GetInt("redis.port")
	if port == 0 {
		port = 6379
	}

	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Password: cfg.GetString("redis.password"),
		DB:       cfg.GetInt("redis.db"),
	})
}

func newLockTokens(cfg config.ConfigProvider) (uid.UIDGenerator, error) {
	tokens, err := uid.New(uid.Options{
		Strategy: uid.Strategy(strings.TrimSpace(strings.ToLower(cfg.GetString("dedup.lock_token_strategy")))),
		NodeID:   cfg.GetInt64("dedup.node_id"),
		Prefix:   cfg.GetString("dedup.lock_token_prefix"),
	})
	if err != nil {
		return nil, fmt.Errorf("app: failed to init lock tokens: %w", err)
	}
	return tokens, nil
}

func provideCacheBackend(cfg config.ConfigProvider, logger *slog.Logger) (cache.Backend, error) {
	kind := strings.TrimSpace(strings.ToLower(cfg.GetString("message_context.backend")))

	switch kind {
	case backendLocal:
		logger.Warn("message context uses a process-local backend; run a single replica only")
		return cache.NewLocalStore(), nil
	case backendRedis, "":
		tokens, err := newLockTokens(cfg)
		if err != nil {
			return nil, err
		}

		prefix := strings.TrimSpace(cfg.GetString("redis.prefix"))
		if prefix == "" {
			prefix = "msgctx"
		}

		return cache.NewRedisStore(newRedisClient(cfg),
			cache.WithRedisPrefix(prefix),
			cache.WithLockLease(cfg.GetDuration("dedup.lock_lease")),
			cache.WithLockTokens(tokens),
		)
	default:
		return nil, fmt.Errorf("app: unknown message_context.backend %q", kind)
	}
}
