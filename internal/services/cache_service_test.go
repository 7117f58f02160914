package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"campaign-system/models"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*CacheService, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	t.Cleanup(func() { mock.ClearExpect() })
	return NewCacheService(db, 10*time.Second, 3, time.Minute), mock
}

func TestCacheService_GetMiss(t *testing.T) {
	cache, mock := setupTestCache(t)

	mock.ExpectGet("cache:campaigns:all").RedisNil()

	var campaigns []models.Campaign
	assert.False(t, cache.Get(context.Background(), CampaignListCacheKey, &campaigns))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheService_SetThenGet(t *testing.T) {
	cache, mock := setupTestCache(t)

	campaigns := []models.Campaign{{ID: "c1", Name: "Spring Push", SlotsAvailable: 4}}
	data, err := json.Marshal(campaigns)
	require.NoError(t, err)

	mock.ExpectSet("cache:campaigns:all", data, 10*time.Second).SetVal("OK")
	mock.ExpectGet("cache:campaigns:all").SetVal(string(data))

	ctx := context.Background()
	cache.Set(ctx, CampaignListCacheKey, campaigns, 0)

	var cached []models.Campaign
	require.True(t, cache.Get(ctx, CampaignListCacheKey, &cached))
	assert.Equal(t, campaigns, cached)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheService_GetDropsCorruptEntry(t *testing.T) {
	cache, mock := setupTestCache(t)

	mock.ExpectGet("cache:campaigns:all").SetVal("{not json")
	mock.ExpectDel("cache:campaigns:all").SetVal(1)

	var campaigns []models.Campaign
	assert.False(t, cache.Get(context.Background(), CampaignListCacheKey, &campaigns))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheService_InvalidatePattern(t *testing.T) {
	cache, mock := setupTestCache(t)

	mock.ExpectKeys("cache:*c1*").SetVal([]string{"cache:campaign:c1", "cache:campaign:c1:stats"})
	mock.ExpectDel("cache:campaign:c1", "cache:campaign:c1:stats").SetVal(2)

	cache.SetDerived("campaign:c1:stats", map[string]int{"bookings": 3})
	cache.SetDerived("campaign:c2:stats", map[string]int{"bookings": 1})

	cache.InvalidatePattern(context.Background(), "c1")

	var stats map[string]int
	assert.False(t, cache.GetDerived("campaign:c1:stats", &stats))
	assert.True(t, cache.GetDerived("campaign:c2:stats", &stats))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheService_DerivedTierIsBounded(t *testing.T) {
	db, _ := redismock.NewClientMock()
	cache := NewCacheService(db, 10*time.Second, 2, time.Minute)

	cache.SetDerived("a", 1)
	cache.SetDerived("b", 2)
	cache.SetDerived("c", 3)

	// Oldest entry falls out once the bound is hit.
	var v int
	assert.False(t, cache.GetDerived("a", &v))
	assert.True(t, cache.GetDerived("b", &v))
	assert.True(t, cache.GetDerived("c", &v))
}

func TestCacheService_GetTreatsRedisErrorAsMiss(t *testing.T) {
	cache, mock := setupTestCache(t)

	mock.ExpectGet("cache:campaigns:all").SetErr(redis.ErrClosed)

	var campaigns []models.Campaign
	assert.False(t, cache.Get(context.Background(), CampaignListCacheKey, &campaigns))
}
