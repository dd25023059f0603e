package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmsteiner495/elevatedhealth-sub000/config"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(cacheType string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Log:    config.LogConfig{Level: "info"},
		USDA:   config.USDAConfig{BaseURL: "http://127.0.0.1:1"},
		OpenFoodFacts: config.OpenFoodFactsConfig{
			BaseURL: "http://127.0.0.1:1",
		},
		Upstream: config.UpstreamConfig{Timeout: time.Second, PageSize: 25},
		Cache:    config.CacheConfig{Type: cacheType, TTL: time.Minute},
	}
}

func TestNewEngine(t *testing.T) {
	t.Run("memory cache", func(t *testing.T) {
		engine, err := NewEngine(testConfig(config.CacheMemory))
		require.NoError(t, err)
		defer engine.Close()

		assert.NotNil(t, engine.Service)
		assert.Len(t, engine.closers, 1)
	})

	t.Run("cache disabled", func(t *testing.T) {
		engine, err := NewEngine(testConfig(config.CacheNone))
		require.NoError(t, err)

		assert.NotNil(t, engine.Service)
		assert.Empty(t, engine.closers)
		assert.NoError(t, engine.Close())
	})

	t.Run("unreachable redis still builds", func(t *testing.T) {
		cfg := testConfig(config.CacheRedis)
		cfg.Cache.RedisURL = "redis://127.0.0.1:1/0"

		engine, err := NewEngine(cfg)
		require.NoError(t, err)
		defer engine.Close()

		assert.Len(t, engine.closers, 1)
	})

	t.Run("invalid redis url fails", func(t *testing.T) {
		cfg := testConfig(config.CacheRedis)
		cfg.Cache.RedisURL = "not-a-url"

		_, err := NewEngine(cfg)
		assert.Error(t, err)
	})

	t.Run("missing USDA key surfaces per request", func(t *testing.T) {
		engine, err := NewEngine(testConfig(config.CacheNone))
		require.NoError(t, err)

		_, err = engine.Service.Search(context.Background(), domain.SearchRequest{Query: "apple", Limit: 5})
		assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
	})
}

func TestSetupLogger(t *testing.T) {
	defer func() {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		log.Logger = zerolog.New(nil)
	}()

	t.Run("writes JSON outside development", func(t *testing.T) {
		var buf bytes.Buffer
		SetupLogger(testConfig(config.CacheNone), &buf)

		log.Info().Str("k", "v").Msg("hello")

		assert.Contains(t, buf.String(), `"message":"hello"`)
		assert.Contains(t, buf.String(), `"k":"v"`)
	})

	t.Run("respects the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := testConfig(config.CacheNone)
		cfg.Log.Level = "WARN"
		SetupLogger(cfg, &buf)

		log.Info().Msg("hidden")
		log.Warn().Msg("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("falls back to info on unknown level", func(t *testing.T) {
		var buf bytes.Buffer
		cfg := testConfig(config.CacheNone)
		cfg.Log.Level = "loud"
		SetupLogger(cfg, &buf)

		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})
}
