package cache

import (
	"context"
	"fmt"
	"time"

	appbilling "github.com/billfold/backend/internal/application/billing"
	"github.com/billfold/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultSummaryTTL = 30 * time.Second

// NewSummaryCache builds a summary cache from configuration. When Redis
// is enabled and reachable it is used; otherwise the process-local cache
// serves as the fallback.
func NewSummaryCache(cfg config.RedisConfig, logger *zap.Logger) appbilling.SummaryCache {
	if cfg.Enabled {
		client, err := connectRedis(cfg)
		if err == nil {
			logger.Info("using Redis summary cache")
			return NewRedisSummaryCache(client, defaultSummaryTTL, logger)
		}
		logger.Warn("Redis unavailable, using in-memory summary cache", zap.Error(err))
	}
	return NewInMemorySummaryCache(defaultSummaryTTL)
}

func connectRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
