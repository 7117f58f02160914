package services

import (
	"context"

	"campaign-system/internal/store"
	"campaign-system/models"
	"campaign-system/monitoring"
)

// CampaignService serves the campaign listing read path through the
// cache. Writes never go through here; slot mutation is owned by
// AvailabilityService.
type CampaignService struct {
	store   store.CampaignStore
	cache   *CacheService
	monitor *monitoring.Monitor
}

func NewCampaignService(campaignStore store.CampaignStore, cache *CacheService, monitor *monitoring.Monitor) *CampaignService {
	return &CampaignService{
		store:   campaignStore,
		cache:   cache,
		monitor: monitor,
	}
}

// ListCampaigns returns all campaigns with derived availability,
// served from the short-TTL cache when fresh.
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign

	if s.cache != nil && s.cache.Get(ctx, CampaignListCacheKey, &campaigns) {
		s.trackCache(true)
		return campaigns, nil
	}
	s.trackCache(false)

	campaigns, err := s.store.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, CampaignListCacheKey, campaigns, 0)
	}
	return campaigns, nil
}

// GetCampaign bypasses the cache; single-campaign reads feed the
// booking flow and must be current.
func (s *CampaignService) GetCampaign(ctx context.Context, campaignID string) (*models.Campaign, error) {
	return s.store.GetCampaign(ctx, campaignID)
}

func (s *CampaignService) trackCache(hit bool) {
	if s.monitor != nil {
		s.monitor.TrackCacheLookup("campaign_list", hit)
	}
}
