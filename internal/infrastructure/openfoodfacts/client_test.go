package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(ClientConfig{
		BaseURL:         baseURL,
		UserAgent:       "ElevatedHealthTest/1.0",
		PageSize:        20,
		Timeout:         2 * time.Second,
		RequestsPerHour: 36000,
	})
}

func TestNewClient(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "https://world.openfoodfacts.org/"})

	assert.Equal(t, "https://world.openfoodfacts.org", client.baseURL)
	assert.Equal(t, "ElevatedHealth/1.0", client.userAgent)
	assert.Equal(t, 25, client.pageSize)
	assert.Equal(t, domain.ProviderOpenFoodFacts, client.Provider())
}

func TestSearchProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "peanut butter", q.Get("search_terms"))
		assert.Equal(t, "1", q.Get("json"))
		assert.Equal(t, "20", q.Get("page_size"))
		assert.Contains(t, q.Get("fields"), "nutriments")
		assert.Equal(t, "ElevatedHealthTest/1.0", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count": 2, "page": 1, "products": [
			{"code": "111", "product_name": "Creamy Peanut Butter", "serving_size": "2 tbsp (32 g)",
			 "nutriments": {"energy-kcal_100g": 594, "proteins_100g": 22.5}},
			{"code": "222", "nutriments": {}}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	results, err := client.Search(context.Background(), "peanut butter")

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "111", results[0].ID)
	assert.Equal(t, 32.0, *results[0].ServingGrams)
	assert.Equal(t, 190.0, *results[0].Calories)
	assert.Equal(t, "peanut butter", results[1].Name)
}

func TestSearchProducts_NonSuccessStatus(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SearchProducts(context.Background(), "cola")

	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
	assert.Equal(t, 1, attempts)
}

func TestSearchProducts_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SearchProducts(context.Background(), "cola")

	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}

func TestSearchProducts_MissingBaseURL(t *testing.T) {
	client := newTestClient("")
	_, err := client.SearchProducts(context.Background(), "cola")

	assert.ErrorIs(t, err, domain.ErrProviderNotConfigured)
}

func TestSearchProducts_CancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := newTestClient(server.URL)
	_, err := client.SearchProducts(ctx, "cola")

	assert.ErrorIs(t, err, domain.ErrUpstreamFailure)
}
