package app

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joshuarp/msgcontext-gateway/internal/services"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/cache"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/config"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/dedup"
	sharedhash "github.com/joshuarp/msgcontext-gateway/internal/shared/hash"
)

func provideKeyHasher(cfg config.ConfigProvider) (sharedhash.Hasher, error) {
	strategy := sharedhash.Strategy(strings.TrimSpace(strings.ToLower(cfg.GetString("message_context.key_hash"))))
	hasher, err := sharedhash.New(sharedhash.Options{Strategy: strategy})
	if err != nil {
		return nil, fmt.Errorf("app: failed to init conversation key hasher: %w", err)
	}
	return hasher, nil
}

func dedupConfig(cfg config.ConfigProvider) dedup.Config {
	return dedup.Config{
		UseMessageContext: cfg.GetBool("message_context.enabled"),
		MaxRecordCount:    cfg.GetInt("message_context.max_record_count"),
		Expire:            cfg.GetDuration("message_context.expire"),
		LockTimeout:       cfg.GetDuration("dedup.lock_timeout"),
		LockDomain:        cfg.GetString("dedup.lock_domain"),
	}
}

func provideDedupEngine(
	backend cache.Backend,
	hasher sharedhash.Hasher,
	cfg config.ConfigProvider,
	logger *slog.Logger,
) (*dedup.Engine, error) {
	keys := dedup.NewKeyDeriver(hasher, cfg.GetString("message_context.key_namespace"))

	engine, err := dedup.NewEngine(backend, keys, dedupConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("app: failed to init dedup engine: %w", err)
	}

	logger.Info("dedup engine ready",
		"enabled", engine.Enabled(),
		"backend", backend.Kind(),
		"max_record_count", engine.MaxRecordCount(),
	)
	return engine, nil
}

func provideInboundMessageServiceOptions(cfg config.ConfigProvider) services.InboundMessageServiceOptions {
	return services.InboundMessageServiceOptions{
		OmitRepeatedMessage: cfg.GetBool("dedup.omit_repeated_message"),
		FailOpen:            cfg.GetBool("dedup.fail_open"),
		Predicate:           services.SkipMessageTypes(cfg.GetStringSlice("dedup.skip_message_types")),
	}
}

func provideDedupGate(engine *dedup.Engine) services.DedupGate { return engine }

func provideContextInspector(engine *dedup.Engine) services.ContextInspector { return engine }
