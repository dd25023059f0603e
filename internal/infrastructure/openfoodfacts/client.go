// Package openfoodfacts searches the Open Food Facts branded product database.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// requestedFields keeps search payloads down to what the mapper reads
var requestedFields = []string{
	"code", "_id", "product_name", "generic_name", "brands",
	"serving_size", "serving_quantity", "serving_quantity_unit",
	"product_quantity", "nutriments",
}

// ClientConfig holds settings for the Open Food Facts client
type ClientConfig struct {
	BaseURL         string
	UserAgent       string
	PageSize        int
	Timeout         time.Duration
	RequestsPerHour int
}

// Client handles communication with the Open Food Facts search API
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	pageSize    int
	rateLimiter *rate.Limiter
	mapper      Mapper
}

// NewClient creates a new Open Food Facts client
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
		perHour = 600 // OFF asks for at most 10 searches per minute
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "ElevatedHealth/1.0"
	}

	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:   userAgent,
		pageSize:    pageSize,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(perHour)/3600), 5),
	}
}

// Provider identifies this source
func (c *Client) Provider() domain.Provider {
	return domain.ProviderOpenFoodFacts
}

// Search queries Open Food Facts and normalizes every product
func (c *Client) Search(ctx context.Context, query string) ([]domain.FoodResult, error) {
	resp, err := c.SearchProducts(ctx, query)
	if err != nil {
		return nil, err
	}
	return domain.NormalizeAll[domain.OFFProduct](c.mapper, resp.Products, query), nil
}

// SearchProducts runs one full-text product search. It does not retry.
func (c *Client) SearchProducts(ctx context.Context, query string) (*domain.OFFSearchResponse, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("%w: Open Food Facts base URL is not set", domain.ErrProviderNotConfigured)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamFailure, err)
	}

	params := url.Values{}
	params.Add("search_terms", query)
	params.Add("search_simple", "1")
	params.Add("action", "process")
	params.Add("json", "1")
	params.Add("page_size", strconv.Itoa(c.pageSize))
	params.Add("fields", strings.Join(requestedFields, ","))
	reqURL := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
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
			Str("provider", string(domain.ProviderOpenFoodFacts)).
			Int("status", resp.StatusCode).
			Int("body_bytes", len(body)).
			Msg("upstream returned non-2xx")
		return nil, fmt.Errorf("%w: status %d", domain.ErrUpstreamFailure, resp.StatusCode)
	}

	var searchResp domain.OFFSearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamFailure, err)
	}

	log.Debug().
		Str("provider", string(domain.ProviderOpenFoodFacts)).
		Str("query", query).
		Int("products", len(searchResp.Products)).
		Int("count", searchResp.Count).
		Msg("search complete")

	return &searchResp, nil
}
