package cachefx

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"roam/internal/infra"
	"roam/pkg/cache"
)

var Module = fx.Provide(provideCacheStore)

// provideCacheStore picks the shared redis cache when REDIS_URL is set and
// the in-process otter cache otherwise.
func provideCacheStore(cfg infra.Config, logger *zap.Logger) cache.Store {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err == nil {
			return cache.NewRedisStore(redis.NewClient(opts), logger)
		}
		logger.Warn("invalid REDIS_URL, using in-memory cache", zap.Error(err))
	}
	return cache.NewOtterStore(50_000, time.Hour)
}
