package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/joshuarp/msgcontext-gateway/internal/shared/config"
	sharedjwt "github.com/joshuarp/msgcontext-gateway/internal/shared/jwt"
	sharedlog "github.com/joshuarp/msgcontext-gateway/internal/shared/log"
	"go.uber.org/fx"
)

const envPrefix = "MSGCTX"

type configBinIn struct {
	fx.In
	Bin string `name:"bin"`
}

func New(bin string, modules ...fx.Option) *fx.App {
	normalizedBin := strings.TrimSpace(strings.ToLower(bin))
	opts := []fx.Option{
		fx.Supply(
			fx.Annotate(
				normalizedBin,
				fx.ResultTags(`name:"bin"`),
			),
		),
		CoreModule(),
	}
	opts = append(opts, modules...)
	opts = append(opts, fx.Invoke(registerLifecycle))
	return fx.New(opts...)
}

func CoreModule() fx.Option {
	return fx.Module("core",
		fx.Provide(
			provideConfig,
			sharedlog.NewJSONLogger,
			provideCacheBackend,
			provideKeyHasher,
			provideDedupEngine,
			provideFiberApp,
			provideJWTTokenManager,
			provideRouterGroups,
		),
	)
}

func configDefaults() map[string]any {
	return map[string]any{
		"server.port":                      8080,
		"server.read_timeout":              "30s",
		"server.write_timeout":             "30s",
		"logging.level":                    "info",
		"redis.host":                       "localhost",
		"redis.port":                       6379,
		"message_context.enabled":          true,
		"message_context.max_record_count": 20,
		"message_context.expire":           "90m",
		"message_context.backend":          "redis",
		"message_context.key_hash":         "sha256",
		"dedup.omit_repeated_message":      true,
		"dedup.lock_timeout":               "5s",
		"dedup.lock_lease":                 "30s",
		"dedup.lock_token_strategy":        "uuidv7",
		"dedup.node_id":                    1,
		"dedup.fail_open":                  false,
		"security.jwt.issuer":              "msgcontext-gateway",
		"security.jwt.ttl":                 "15m",
	}
}

func configLoadOrder(bin string) []config.Options {
	bin = strings.TrimSpace(strings.ToLower(bin))

	paths := make([][2]string, 0, 4)
	if bin == "gateway" || bin == "inspect" {
		paths = append(paths,
			[2]string{fmt.Sprintf("config.%s.yaml", bin), fmt.Sprintf(".env.%s", bin)},
			[2]string{fmt.Sprintf("config.%s.yaml.example", bin), fmt.Sprintf(".env.%s.example", bin)},
		)
	}
	paths = append(paths,
		[2]string{"config.yaml", ".env"},
		[2]string{"config.yaml.example", ".env.example"},
	)

	loadOrder := make([]config.Options, 0, len(paths))
	for _, p := range paths {
		loadOrder = append(loadOrder, config.Options{
			YAMLPath:  p[0],
			EnvPath:   p[1],
			EnvPrefix: envPrefix,
			Defaults:  configDefaults(),
		})
	}
	return loadOrder
}

func provideConfig(in configBinIn) (config.ConfigProvider, error) {
	return loadConfig(in.Bin)
}

func loadConfig(bin string) (config.ConfigProvider, error) {
	var lastErr error
	for _, opts := range configLoadOrder(bin) {
		provider, err := config.Init(opts)
		if err == nil {
			return provider, nil
		}
		lastErr = err
	}

	return nil, lastErr
}

func provideFiberApp(cfg config.ConfigProvider) *fiber.App {
	readTimeout := cfg.GetDuration("server.read_timeout")
	if readTimeout <= 0 {
		readTimeout = 30 * time.Second
	}

	writeTimeout := cfg.GetDuration("server.write_timeout")
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}

	return fiber.New(fiber.Config{
		AppName:      "msgcontext-gateway",
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	})
}

func provideJWTTokenManager(cfg config.ConfigProvider) (sharedjwt.TokenManager, error) {
	secret := cfg.GetString("security.jwt.secret")
	if secret == "" {
		return nil, fmt.Errorf("app: security.jwt.secret is required for operator tokens")
	}

	ttl := cfg.GetDuration("security.jwt.ttl")
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	tokenManager, err := sharedjwt.New(sharedjwt.Options{
		Strategy:  sharedjwt.StrategyHMAC,
		Secret:    []byte(secret),
		Algorithm: "HS256",
		TTL:       ttl,
		Issuer:    cfg.GetString("security.jwt.issuer"),
	})
	if err != nil {
		return nil, fmt.Errorf("app: failed to init JWT manager: %w", err)
	}

	return tokenManager, nil
}
