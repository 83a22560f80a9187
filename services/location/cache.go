package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"profilewizard/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "location:"

// Cache is the key/value store used by CachedLocationService.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisCache adapts a go-redis client to Cache.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// CachedLocationService memoizes successful lookups of Next. Not-found results
// are never cached and cache failures fall through to Next.
type CachedLocationService struct {
	Next   LocationService
	Cache  Cache
	TTL    time.Duration
	Logger *zap.Logger
}

func NewCachedLocationService(next LocationService, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedLocationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLocationService{Next: next, Cache: cache, TTL: ttl, Logger: logger}
}

func (s *CachedLocationService) ListCountries(ctx context.Context) ([]models.Country, error) {
	var out []models.Country
	err := s.cached(ctx, cacheKeyPrefix+"countries", &out, func() (any, error) {
		return s.Next.ListCountries(ctx)
	})
	return out, err
}

func (s *CachedLocationService) ListStates(ctx context.Context, country string) ([]string, error) {
	var out []string
	err := s.cached(ctx, cacheKeyPrefix+"states:"+country, &out, func() (any, error) {
		return s.Next.ListStates(ctx, country)
	})
	return out, err
}

func (s *CachedLocationService) ListCities(ctx context.Context, country, state string) ([]string, error) {
	var out []string
	err := s.cached(ctx, fmt.Sprintf("%scities:%s:%s", cacheKeyPrefix, country, state), &out, func() (any, error) {
		return s.Next.ListCities(ctx, country, state)
	})
	return out, err
}

// cached decodes key into dst on a hit, otherwise calls load, stores its result
// and decodes it into dst.
func (s *CachedLocationService) cached(ctx context.Context, key string, dst any, load func() (any, error)) error {
	if raw, ok, err := s.Cache.Get(ctx, key); err != nil {
		s.Logger.Warn("location cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		if err := json.Unmarshal([]byte(raw), dst); err == nil {
			return nil
		}
		s.Logger.Warn("location cache entry corrupt", zap.String("key", key))
	}

	v, err := load()
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Cache.Set(ctx, key, string(data), s.TTL); err != nil {
		s.Logger.Warn("location cache write failed", zap.String("key", key), zap.Error(err))
	}
	return json.Unmarshal(data, dst)
}
