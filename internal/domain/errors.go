package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrProviderNotConfigured is returned when an upstream provider is missing credentials
	ErrProviderNotConfigured = errors.New("food provider not configured")

	// ErrUpstreamFailure is returned when a provider request fails or returns an unusable body
	ErrUpstreamFailure = errors.New("food provider request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
