package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"roam/internal/models/domain_models"
	"roam/internal/providers"
)

// mapStore is a minimal in-memory cache.Store for tests.
type mapStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMapStore() *mapStore {
	return &mapStore{items: make(map[string][]byte)}
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *mapStore) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
}

type mockPlacesProvider struct {
	mu         sync.Mutex
	candidates []domain_models.Candidate
	err        error
	calls      int
}

func (m *mockPlacesProvider) Search(context.Context, domain_models.Coordinate, int, []string) ([]domain_models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.candidates, nil
}

type mockRoutingProvider struct {
	mu      sync.Mutex
	minutes map[string]int // keyed by "lat,lng" of the destination
	err     error
	calls   int
}

func coordKey(c domain_models.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

func (m *mockRoutingProvider) TravelTime(_ context.Context, _, destination domain_models.Coordinate, _ domain_models.TravelMode) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	if minutes, ok := m.minutes[coordKey(destination)]; ok {
		return minutes, nil
	}
	return 0, errors.New("no route")
}

type mockWeatherProvider struct {
	snapshot domain_models.WeatherSnapshot
	err      error
}

func (m *mockWeatherProvider) Current(context.Context, domain_models.Coordinate) (domain_models.WeatherSnapshot, error) {
	if m.err != nil {
		return domain_models.WeatherSnapshot{}, m.err
	}
	return m.snapshot, nil
}

type mockMLScorer struct {
	mu     sync.Mutex
	scores map[string]float64
	err    error
	calls  int
}

func (m *mockMLScorer) ScoreBatch(context.Context, providers.MLScoreRequest) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.scores, nil
}

func (m *mockMLScorer) SendFeedback(context.Context, providers.FeedbackEvent) error {
	return m.err
}

func (m *mockMLScorer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func f64(v float64) *float64 { return &v }
