package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig
	Log           LogConfig
	USDA          USDAConfig
	OpenFoodFacts OpenFoodFactsConfig
	Upstream      UpstreamConfig
	Cache         CacheConfig
	RateLimit     RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// USDAConfig holds FoodData Central API configuration
type USDAConfig struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	DataTypes string `mapstructure:"data_types"`
}

// OpenFoodFactsConfig holds Open Food Facts API configuration
type OpenFoodFactsConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
}

// UpstreamConfig holds settings shared by both provider clients
type UpstreamConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory", "redis" or "none"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds outbound requests-per-hour budgets per provider
type RateLimitConfig struct {
	USDA          int `mapstructure:"usda"`
	OpenFoodFacts int `mapstructure:"openfoodfacts"`
}

// Cache types
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

const maxPageSize = 200

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/elevatedhealth/")

	// Environment variable settings: ELEVATEDHEALTH_USDA_API_KEY -> usda.api_key
	v.SetEnvPrefix("ELEVATEDHEALTH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment. A missing file is
// not an error and variables that are already set are left alone.
func loadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can bind it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")

	// Provider defaults
	v.SetDefault("usda.api_key", "")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("usda.data_types", "Foundation,SR Legacy,Survey (FNDDS)")
	v.SetDefault("openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("openfoodfacts.user_agent", "ElevatedHealth/1.0 (food search)")

	v.SetDefault("upstream.timeout", "10s")
	v.SetDefault("upstream.page_size", 25)

	// Cache defaults
	v.SetDefault("cache.type", CacheMemory)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "10m")

	// Rate limit defaults
	v.SetDefault("ratelimit.usda", 1000)
	v.SetDefault("ratelimit.openfoodfacts", 600)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Cache.Type {
	case CacheMemory, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'none', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == CacheRedis && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.Upstream.PageSize < 1 || config.Upstream.PageSize > maxPageSize {
		return fmt.Errorf("upstream page size must be between 1 and %d, got: %d", maxPageSize, config.Upstream.PageSize)
	}

	if config.Upstream.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got: %v", config.Upstream.Timeout)
	}

	return nil
}

// IsDevelopment reports whether the server runs in the development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
