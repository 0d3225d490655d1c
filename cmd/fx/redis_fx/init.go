package redis_fx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"lumijob/internal/config"
	"lumijob/pkg/events"
	"lumijob/pkg/middleware"
	"lumijob/pkg/ratelimit"
)

const eventsMaxLen = 10000

// Module provides Redis-backed pieces. Without a Redis address the event
// publisher is a no-op and the apply rate limit is off.
var Module = fx.Provide(
	provideRedis, providePublisher, provideLimiter)

func provideRedis(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Info("redis not configured")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client
}

func providePublisher(client *redis.Client, cfg config.Config) (events.Publisher, error) {
	if client == nil {
		return events.NopPublisher{}, nil
	}
	return events.NewRedisStreamPublisher(client, cfg.EventsStream, eventsMaxLen)
}

func provideLimiter(client *redis.Client, cfg config.Config) (middleware.Limiter, error) {
	if client == nil || cfg.ApplyRateLimitPerMinute == 0 {
		return nil, nil
	}
	limiter, err := ratelimit.NewFixedWindowLimiter(client, "lumijob:ratelimit", cfg.ApplyRateLimitPerMinute, time.Minute)
	if err != nil {
		return nil, err
	}
	return limiter, nil
}
