// Package app wires configuration into the search engine for the server and
// the CLI.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cmsteiner495/elevatedhealth-sub000/config"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/infrastructure/cache"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/infrastructure/openfoodfacts"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/infrastructure/usda"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/usecase"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyPrefix  = "elevatedhealth:"
	cleanupInterval = 10 * time.Minute
	redisPingWait   = 2 * time.Second
)

// SetupLogger configures the global zerolog logger: human readable console
// output in development, JSON lines otherwise.
func SetupLogger(cfg *config.Config, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Log.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.IsDevelopment() {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}
}

// Engine is the assembled search pipeline and the resources it owns
type Engine struct {
	Service *usecase.SearchService
	closers []io.Closer
}

// Close releases cache connections and background workers
func (e *Engine) Close() error {
	var first error
	for _, c := range e.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// NewEngine builds both provider clients, the response cache and the search
// service from cfg.
func NewEngine(cfg *config.Config) (*Engine, error) {
	engine := &Engine{}

	usdaClient := usda.NewClient(usda.ClientConfig{
		APIKey:          cfg.USDA.APIKey,
		BaseURL:         cfg.USDA.BaseURL,
		DataTypes:       cfg.USDA.DataTypes,
		PageSize:        cfg.Upstream.PageSize,
		Timeout:         cfg.Upstream.Timeout,
		RequestsPerHour: cfg.RateLimit.USDA,
	})
	if cfg.USDA.APIKey == "" {
		log.Warn().Msg("USDA API key not configured, common searches will fail")
	}

	offClient := openfoodfacts.NewClient(openfoodfacts.ClientConfig{
		BaseURL:         cfg.OpenFoodFacts.BaseURL,
		UserAgent:       cfg.OpenFoodFacts.UserAgent,
		PageSize:        cfg.Upstream.PageSize,
		Timeout:         cfg.Upstream.Timeout,
		RequestsPerHour: cfg.RateLimit.OpenFoodFacts,
	})

	responseCache, err := newCache(cfg.Cache, engine)
	if err != nil {
		return nil, err
	}

	engine.Service = usecase.NewSearchService(usdaClient, offClient, responseCache, usecase.SearchServiceConfig{
		CacheTTL: cfg.Cache.TTL,
	})
	return engine, nil
}

// newCache returns nil when caching is disabled
func newCache(cfg config.CacheConfig, engine *Engine) (domain.CacheRepository, error) {
	switch cfg.Type {
	case config.CacheNone:
		log.Info().Msg("response cache disabled")
		return nil, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(cfg.RedisURL, cacheKeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		engine.closers = append(engine.closers, rc)

		ctx, cancel := context.WithTimeout(context.Background(), redisPingWait)
		defer cancel()
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis not reachable yet, searches will bypass the cache until it is")
		}
		log.Info().Dur("ttl", cfg.TTL).Msg("using redis response cache")
		return rc, nil
	default:
		mc := cache.NewMemoryCache(cleanupInterval)
		engine.closers = append(engine.closers, mc)
		log.Info().Dur("ttl", cfg.TTL).Msg("using in-memory response cache")
		return mc, nil
	}
}
