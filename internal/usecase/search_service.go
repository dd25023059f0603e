package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/rs/zerolog/log"
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL time.Duration
}

// SearchService dispatches a food search to one provider, flags outliers,
// ranks the full candidate set and truncates it to the requested limit
type SearchService struct {
	common   domain.FoodSource
	branded  domain.FoodSource
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewSearchService creates a search service. cache may be nil to disable
// response caching.
func NewSearchService(
	common domain.FoodSource,
	branded domain.FoodSource,
	cache domain.CacheRepository,
	config SearchServiceConfig,
) *SearchService {
	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	return &SearchService{
		common:   common,
		branded:  branded,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Search runs one food search.
// Flow: validate -> cache -> provider -> outliers -> rank -> cache -> truncate
func (s *SearchService) Search(ctx context.Context, request domain.SearchRequest) (*domain.SearchResponse, error) {
	query := strings.TrimSpace(request.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidRequest)
	}

	mode := domain.ModeCommon
	source := s.common
	if request.Mode == domain.ModeBranded {
		mode = domain.ModeBranded
		source = s.branded
	}
	if source == nil {
		return nil, fmt.Errorf("%w: no source for mode %q", domain.ErrProviderNotConfigured, mode)
	}

	limit := ClampLimit(request.Limit)
	cacheKey := generateCacheKey(mode, query)
	logger := log.With().Str("mode", string(mode)).Str("query", query).Logger()

	ranked, err := s.getFromCache(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Warn().Err(err).Msg("cache read failed")
		}
		results, err := source.Search(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("%s search: %w", source.Provider(), err)
		}

		DetectOutliers(query, results)
		ranked = Rank(query, mode, results)

		if err := s.setInCache(ctx, cacheKey, ranked); err != nil {
			logger.Warn().Err(err).Msg("failed to cache search results")
		}
		logger.Debug().Int("candidates", len(ranked)).Str("provider", string(source.Provider())).Msg("search ranked")
	} else {
		logger.Debug().Int("candidates", len(ranked)).Msg("search served from cache")
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if ranked == nil {
		ranked = []domain.FoodResult{}
	}

	return &domain.SearchResponse{
		OK:      true,
		Query:   query,
		Mode:    mode,
		Results: ranked,
	}, nil
}

// generateCacheKey builds the response cache key.
// Format: "foodsearch:{mode}:{lowercased query}"
func generateCacheKey(mode domain.Mode, query string) string {
	return fmt.Sprintf("foodsearch:%s:%s", mode, strings.ToLower(query))
}

// getFromCache returns the ranked candidate list stored for key
func (s *SearchService) getFromCache(ctx context.Context, key string) ([]domain.FoodResult, error) {
	if s.cache == nil {
		return nil, domain.ErrCacheMiss
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var results []domain.FoodResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("%w: corrupt entry: %v", domain.ErrCacheMiss, err)
	}
	return results, nil
}

// setInCache stores the full ranked candidate list so any limit can be served
func (s *SearchService) setInCache(ctx context.Context, key string, results []domain.FoodResult) error {
	if s.cache == nil {
		return nil
	}
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, data, s.cacheTTL)
}
