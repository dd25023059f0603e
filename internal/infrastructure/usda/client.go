package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ClientConfig holds settings for the FoodData Central client
type ClientConfig struct {
	APIKey          string
	BaseURL         string
	DataTypes       string // comma separated dataType filter
	PageSize        int
	Timeout         time.Duration
	RequestsPerHour int
}

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	dataTypes   string
	pageSize    int
	rateLimiter *rate.Limiter
	mapper      Mapper
}

// NewClient creates a new USDA API client
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	perHour := cfg.RequestsPerHour
	if perHour <= 0 {
		perHour = 1000 // FDC default key quota
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		apiKey:      cfg.APIKey,
		baseURL:     cfg.BaseURL,
		dataTypes:   cfg.DataTypes,
		pageSize:    pageSize,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(perHour)/3600), 10),
	}
}

// Provider identifies this source
func (c *Client) Provider() domain.Provider {
	return domain.ProviderUSDA
}

// Search queries FoodData Central and normalizes every usable record
func (c *Client) Search(ctx context.Context, query string) ([]domain.FoodResult, error) {
	resp, err := c.SearchFoods(ctx, query)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeAll[domain.USDAFood](c.mapper, resp.Foods, query), nil
}

// SearchFoods searches for foods in the USDA database. It makes exactly one
// request and does not retry.
func (c *Client) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: USDA API key is not set", domain.ErrProviderNotConfigured)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamFailure, err)
	}

	params := url.Values{}
	params.Add("query", query)
	params.Add("api_key", c.apiKey)
	params.Add("pageSize", strconv.Itoa(c.pageSize))
	if c.dataTypes != "" {
		params.Add("dataType", c.dataTypes)
	}
	reqURL := fmt.Sprintf("%s/v1/foods/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ElevatedHealth/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", domain.ErrUpstreamFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn().
			Str("provider", string(domain.ProviderUSDA)).
			Int("status", resp.StatusCode).
			Str("body", truncate(string(body), 512)).
			Msg("upstream returned non-2xx")
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var searchResp domain.USDASearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamFailure, err)
	}

	log.Debug().
		Str("provider", string(domain.ProviderUSDA)).
		Str("query", query).
		Int("foods", len(searchResp.Foods)).
		Int("total_hits", searchResp.TotalHits).
		Msg("search complete")

	return &searchResp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
