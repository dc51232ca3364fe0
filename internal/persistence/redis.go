package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/interview-service/internal/config"
)

// Redis holds the client shared by the query cache and the refresh session store.
type Redis struct {
	Client *redis.Client
}

// NewRedis builds a client from cfg and probes it once. An unreachable server is only
// logged: the query cache falls back to Postgres and readiness reports the outage.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
	if timeout := cfg.Timeout(); timeout > 0 {
		opts.DialTimeout = timeout
		opts.ReadTimeout = timeout
		opts.WriteTimeout = timeout
	}
	client := redis.NewClient(opts)

	log := logger.With(zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable at startup", zap.Error(err))
	} else {
		log.Info("connected to redis")
	}
	return &Redis{Client: client}
}

func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// ClientHandle returns the underlying client, or nil when none was built.
func (r *Redis) ClientHandle() *redis.Client {
	if r == nil {
		return nil
	}
	return r.Client
}

// Ping implements the readiness check.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
