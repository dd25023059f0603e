package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// FoodSource searches one upstream provider and returns normalized results.
// Records the provider's adapter rejects are already filtered out.
type FoodSource interface {
	Provider() Provider
	Search(ctx context.Context, query string) ([]FoodResult, error)
}

// Normalizer converts one raw provider record into a FoodResult, or returns
// nil when the record cannot be used. query is the caller's search text,
// which some adapters use as a name fallback.
type Normalizer[T any] interface {
	Normalize(raw T, query string) *FoodResult
}

// NormalizeAll runs n over every raw record and drops rejected ones
func NormalizeAll[T any](n Normalizer[T], raws []T, query string) []FoodResult {
	results := make([]FoodResult, 0, len(raws))
	for _, raw := range raws {
		if r := n.Normalize(raw, query); r != nil {
			results = append(results, *r)
		}
	}
	return results
}
