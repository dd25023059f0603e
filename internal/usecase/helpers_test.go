package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/cmsteiner495/elevatedhealth-sub000/internal/domain"
)

func ptr(v float64) *float64 { return &v }

// food builds a result with per-serving calories and serving grams
func food(id, name string, calories, grams *float64) domain.FoodResult {
	r := domain.FoodResult{
		ID:           id,
		Provider:     domain.ProviderUSDA,
		Name:         name,
		ServingGrams: grams,
	}
	r.SetPerServing(&domain.MacroSet{Calories: calories})
	return r
}

// MockFoodSource is a mock implementation of domain.FoodSource
type MockFoodSource struct {
	provider  domain.Provider
	results   []domain.FoodResult
	err       error
	calls     int
	lastQuery string
}

func NewMockFoodSource(provider domain.Provider) *MockFoodSource {
	return &MockFoodSource{provider: provider}
}

func (m *MockFoodSource) Provider() domain.Provider {
	return m.provider
}

func (m *MockFoodSource) Search(ctx context.Context, query string) ([]domain.FoodResult, error) {
	m.calls++
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.FoodResult, len(m.results))
	copy(out, m.results)
	return out, nil
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string][]byte
	getError  error
	setError  error
	getCalled int
	setCalled int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{data: make(map[string][]byte)}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalled++
	if m.getError != nil {
		return nil, m.getError
	}
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalled++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}
