package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-watermark/pkg/watermark"
	"github.com/redis/go-redis/v9"
)

// Get returns the cached bytes for key, or nil on a miss.
func (s *CacheService) Get(ctx context.Context, cacheKey string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *CacheService) Set(ctx context.Context, cacheKey string, data []byte) error {
	if err := s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

// GenerateCacheKey hashes the source image together with every setting that
// affects the output bytes.
func GenerateCacheKey(source []byte, cfg watermark.Config, format imaging.Format) string {
	hash := sha256.New()
	hash.Write(source)
	hash.Write([]byte{0})
	hash.Write([]byte(cfg.Key()))
	fmt.Fprintf(hash, "|format=%s", format)

	return fmt.Sprintf("%s%x", keyPrefix, hash.Sum(nil))
}

func (s *CacheService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	var cached int64
	iter := s.redisClient.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		cached++
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"db_keys":     dbSize,
		"cached_keys": cached,
		"ttl":         s.cacheDuration.String(),
	}

	return stats, nil
}
