package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "cache:"

// CampaignListCacheKey caches the full campaign listing.
const CampaignListCacheKey = "campaigns:all"

// CacheService is the read cache for campaign queries. Two tiers:
// a short-TTL Redis tier for the listing path, where freshness beats
// hit-rate, and a bounded in-process LRU for derived lookups where
// staleness is acceptable. The authoritative availability check in
// AvailabilityService never reads from here.
type CacheService struct {
	Redis *redis.Client
	ttl   time.Duration
	lru   *expirable.LRU[string, []byte]
}

func NewCacheService(redisClient *redis.Client, ttl time.Duration, lruSize int, lruTTL time.Duration) *CacheService {
	return &CacheService{
		Redis: redisClient,
		ttl:   ttl,
		lru:   expirable.NewLRU[string, []byte](lruSize, nil, lruTTL),
	}
}

// Get reads key from the Redis tier into dest. Returns false on a miss
// or on any Redis error; a broken cache reads as empty.
func (s *CacheService) Get(ctx context.Context, key string, dest any) bool {
	data, err := s.Redis.Get(ctx, cacheKeyPrefix+key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("Cache entry %s is corrupt, dropping: %v", key, err)
		s.Redis.Del(ctx, cacheKeyPrefix+key)
		return false
	}
	return true
}

// Set writes key to the Redis tier. ttl of 0 uses the configured
// default.
func (s *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to marshal cache entry %s: %v", key, err)
		return
	}
	if ttl == 0 {
		ttl = s.ttl
	}
	if err := s.Redis.Set(ctx, cacheKeyPrefix+key, data, ttl).Err(); err != nil {
		log.Printf("Failed to set cache entry %s: %v", key, err)
	}
}

// GetDerived reads from the in-process LRU tier.
func (s *CacheService) GetDerived(key string, dest any) bool {
	data, ok := s.lru.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetDerived writes to the in-process LRU tier.
func (s *CacheService) SetDerived(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.lru.Add(key, data)
}

// InvalidatePattern drops every entry whose key contains substr, in
// both tiers. Call-and-forget: failures are logged and swallowed.
func (s *CacheService) InvalidatePattern(ctx context.Context, substr string) {
	pattern := fmt.Sprintf("%s*%s*", cacheKeyPrefix, substr)
	keys, err := s.Redis.Keys(ctx, pattern).Result()
	if err != nil {
		log.Printf("Cache invalidation scan failed for %q: %v", substr, err)
		return
	}
	if len(keys) > 0 {
		if err := s.Redis.Del(ctx, keys...).Err(); err != nil {
			log.Printf("Cache invalidation delete failed for %q: %v", substr, err)
		}
	}

	for _, key := range s.lru.Keys() {
		if strings.Contains(key, substr) {
			s.lru.Remove(key)
		}
	}
}

// InvalidateAll clears both tiers.
func (s *CacheService) InvalidateAll(ctx context.Context) {
	keys, err := s.Redis.Keys(ctx, cacheKeyPrefix+"*").Result()
	if err == nil && len(keys) > 0 {
		s.Redis.Del(ctx, keys...)
	}
	s.lru.Purge()
}
