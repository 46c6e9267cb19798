package app

import (
	"context"
	"fmt"
	"time"

	"bonsplans/internal/domain"
)

// DealQueryService serves deal lists through the cache. Only live results
// are cached, so a fallback answer is retried on the next request.
type DealQueryService struct {
	provider domain.DealProvider
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewDealQueryService(p domain.DealProvider, c domain.Cache, ttl time.Duration) *DealQueryService {
	return &DealQueryService{provider: p, cache: c, cacheTTL: ttl}
}

func dealsKey(origin string) string { return fmt.Sprintf("deals:%s", origin) }

// Deals returns the cached list for origin, or aggregates a fresh one.
// Cache errors degrade to a miss.
func (s *DealQueryService) Deals(ctx context.Context, origin string) ([]domain.Deal, domain.DealSource) {
	origin = NormalizeOrigin(origin)
	key := dealsKey(origin)

	var cached []domain.Deal
	if ok, _ := s.cache.Get(ctx, key, &cached); ok && len(cached) > 0 {
		return cached, domain.SourceLive
	}

	deals, src := s.provider.Collect(ctx, origin)
	if src != domain.SourceFallback {
		_ = s.cache.Set(ctx, key, deals, int(s.cacheTTL.Seconds()))
	}
	return deals, src
}

// Refresh aggregates origin unconditionally and overwrites the cache entry.
// A fallback result leaves the previous entry in place.
func (s *DealQueryService) Refresh(ctx context.Context, origin string) (int, domain.DealSource, error) {
	origin = NormalizeOrigin(origin)
	deals, src := s.provider.Collect(ctx, origin)
	if src == domain.SourceFallback {
		return len(deals), src, nil
	}
	if err := s.cache.Set(ctx, dealsKey(origin), deals, int(s.cacheTTL.Seconds())); err != nil {
		return len(deals), src, fmt.Errorf("cache deals %s: %w", origin, err)
	}
	return len(deals), src, nil
}
