package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
	"github.com/cmsteiner495/elevatedhealth-sub000/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Version is reported by the health check
const Version = "1.0.0"

// Client-facing failure messages. Upstream error detail is only logged.
const (
	msgMissingQuery     = "missing query parameter: q"
	msgNotConfigured    = "food search is not configured"
	msgUpstreamFailure  = "food provider request failed"
	msgMethodNotAllowed = "method not allowed"
	msgNotFound         = "not found"
)

// FoodSearcher runs one food search
type FoodSearcher interface {
	Search(ctx context.Context, request domain.SearchRequest) (*domain.SearchResponse, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searcher FoodSearcher
}

// NewHandler creates a new HTTP handler. A nil searcher makes every search
// answer 500.
func NewHandler(searcher FoodSearcher) *Handler {
	return &Handler{searcher: searcher}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "elevatedhealth-foodsearch",
		"version": Version,
	})
}

// SearchFoods handles GET /api/v1/foods/search?q=&mode=&limit=
func (h *Handler) SearchFoods(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondError(c, http.StatusBadRequest, msgMissingQuery)
		return
	}

	if h.searcher == nil {
		respondError(c, http.StatusInternalServerError, msgNotConfigured)
		return
	}

	request := domain.SearchRequest{
		Query: query,
		Mode:  domain.ParseMode(c.Query("mode")),
		Limit: usecase.ParseLimit(c.Query("limit")),
	}

	response, err := h.searcher.Search(c.Request.Context(), request)
	if err != nil {
		status, message := errorStatus(err)
		log.Error().
			Err(err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("mode", string(request.Mode)).
			Str("query", request.Query).
			Int("status", status).
			Msg("food search failed")
		respondError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, response)
}

// MethodNotAllowed answers non-GET requests on known routes
func (h *Handler) MethodNotAllowed(c *gin.Context) {
	respondError(c, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

// NotFound answers unknown routes
func (h *Handler) NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, msgNotFound)
}

// errorStatus maps a search error to its HTTP status and client message
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, msgMissingQuery
	case errors.Is(err, domain.ErrProviderNotConfigured):
		return http.StatusInternalServerError, msgNotConfigured
	default:
		return http.StatusBadGateway, msgUpstreamFailure
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"ok":      false,
		"message": message,
	})
}
