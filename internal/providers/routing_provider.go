package providers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"roam/internal/models/domain_models"
	"roam/pkg/remote"
)

// RoutingProvider resolves an exact one-way travel time in whole minutes.
// Each call may fail independently; callers keep their heuristic estimate
// when it does.
type RoutingProvider interface {
	TravelTime(ctx context.Context, origin, destination domain_models.Coordinate, mode domain_models.TravelMode) (int, error)
}

type MapboxRoutingClient struct {
	http        *http.Client
	accessToken string
	baseURL     string
	timeout     time.Duration
}

func NewMapboxRoutingClient(accessToken, baseURL string, timeout time.Duration) *MapboxRoutingClient {
	return &MapboxRoutingClient{
		http:        &http.Client{},
		accessToken: accessToken,
		baseURL:     baseURL,
		timeout:     timeout,
	}
}

// Mapbox has no transit profile; driving is the closest stand-in.
func mapboxProfile(mode domain_models.TravelMode) string {
	switch mode {
	case domain_models.ModeWalk:
		return "walking"
	case domain_models.ModeBike:
		return "cycling"
	default:
		return "driving"
	}
}

type matrixResponse struct {
	Durations [][]*float64 `json:"durations"`
}

func (m *MapboxRoutingClient) TravelTime(ctx context.Context, origin, destination domain_models.Coordinate, mode domain_models.TravelMode) (int, error) {
	coords := fmt.Sprintf("%f,%f;%f,%f", origin.Lng, origin.Lat, destination.Lng, destination.Lat)

	q := url.Values{}
	q.Set("annotations", "duration")
	q.Set("sources", "0")
	q.Set("destinations", "1")
	q.Set("access_token", m.accessToken)

	endpoint := fmt.Sprintf("%s/directions-matrix/v1/mapbox/%s/%s?%s",
		m.baseURL, mapboxProfile(mode), url.PathEscape(coords), q.Encode())

	var payload matrixResponse
	if err := remote.DoJSON(ctx, m.http, http.MethodGet, endpoint, nil, nil, &payload, m.timeout); err != nil {
		return 0, fmt.Errorf("mapbox matrix: %w", err)
	}

	if len(payload.Durations) == 0 || len(payload.Durations[0]) == 0 || payload.Durations[0][0] == nil {
		return 0, fmt.Errorf("mapbox matrix: empty durations")
	}

	seconds := *payload.Durations[0][0]
	minutes := int(math.Ceil(seconds / 60))
	if minutes < 1 {
		minutes = 1
	}
	return minutes, nil
}
