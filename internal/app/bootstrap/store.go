package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	appconfig "github.com/wolfman30/onboarding-assistant/internal/config"
	"github.com/wolfman30/onboarding-assistant/internal/onboarding"
	"github.com/wolfman30/onboarding-assistant/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when no address
// is set. When verify is true, a ping is issued and failures are returned.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, verify bool) (*redis.Client, error) {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client, nil
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("bootstrap: redis ping: %w", err)
	}
	return client, nil
}

// BuildSessionStore returns the session store selected by SESSION_STORE. The
// returned close func releases any connection the store holds.
func BuildSessionStore(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (onboarding.SessionStore, func() error, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	noop := func() error { return nil }

	switch strings.ToLower(strings.TrimSpace(cfg.SessionStore)) {
	case "memory", "":
		logger.Info("using in-memory session store", "idle_ttl", cfg.SessionIdleTTL.String())
		return onboarding.NewMemoryStore(cfg.SessionIdleTTL), noop, nil

	case "redis":
		client, err := BuildRedisClient(ctx, cfg, true)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, fmt.Errorf("bootstrap: REDIS_ADDR is required for the redis session store")
		}
		logger.Info("using redis session store", "addr", cfg.RedisAddr, "idle_ttl", cfg.SessionIdleTTL.String())
		return onboarding.NewRedisStore(client, cfg.SessionIdleTTL), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("bootstrap: unknown SESSION_STORE %q", cfg.SessionStore)
	}
}
