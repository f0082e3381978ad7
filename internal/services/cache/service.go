package cache

import (
	"time"

	"github.com/phambaophuc/image-watermark/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "wm_cache:"

// CacheService stores encoded watermark results in Redis, keyed by the source
// bytes and the effective configuration.
type CacheService struct {
	redisClient   *redis.Client
	cacheDuration time.Duration
}

func NewCacheService(cfg *config.Config) *CacheService {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return newCacheService(redisClient, cfg.Storage.CacheDuration)
}

func newCacheService(client *redis.Client, ttl time.Duration) *CacheService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CacheService{
		redisClient:   client,
		cacheDuration: ttl,
	}
}

func (s *CacheService) Close() error {
	return s.redisClient.Close()
}
