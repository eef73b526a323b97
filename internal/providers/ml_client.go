package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"roam/pkg/remote"
)

// MLScorer is the external scoring collaborator. The contract requires at
// least one usable score for a batch to count as success; anything else is
// treated as an upstream failure by the caller.
type MLScorer interface {
	ScoreBatch(ctx context.Context, req MLScoreRequest) (map[string]float64, error)
	SendFeedback(ctx context.Context, ev FeedbackEvent) error
}

type MLActivity struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Rating     float64 `json:"rating,omitempty"`
	PriceLevel int     `json:"priceLevel,omitempty"`
	IsOpen     bool    `json:"isOpen"`
}

type MLScoreRequest struct {
	Activities    []MLActivity
	Moods         []string
	WindowMinutes int
	Hour          int
	DayOfWeek     int
	Weather       string
	TravelMode    string
	TravelMinutes map[string]int
	UserID        string
}

type recommendRequest struct {
	Activities      []MLActivity `json:"activities"`
	UserPreferences struct {
		Preferences []string `json:"preferences"`
		Duration    int      `json:"duration"`
	} `json:"userPreferences"`
	Context struct {
		Hour             int            `json:"hour"`
		DayOfWeek        int            `json:"dayOfWeek"`
		Weather          string         `json:"weather"`
		TravelMode       string         `json:"travelMode"`
		TravelMinutesMap map[string]int `json:"travelMinutesMap"`
	} `json:"context"`
	UserID string `json:"userId,omitempty"`
}

type recommendResponse struct {
	Success         bool `json:"success"`
	Recommendations []struct {
		ID      string  `json:"id"`
		MLScore float64 `json:"ml_score"`
	} `json:"recommendations"`
}

type FeedbackEvent struct {
	PlaceID   string `json:"place_id"`
	Category  string `json:"category"`
	Hour      int    `json:"hour"`
	EventType string `json:"event_type"`
	UserID    string `json:"userId,omitempty"`
}

type MLServiceClient struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
}

func NewMLServiceClient(baseURL string, timeout time.Duration) *MLServiceClient {
	return &MLServiceClient{
		http:    &http.Client{},
		baseURL: baseURL,
		timeout: timeout,
	}
}

// ScoreBatch posts the whole candidate batch once with one bounded timeout.
// A malformed payload or a batch with zero usable scores is an error, never
// a partial success.
func (m *MLServiceClient) ScoreBatch(ctx context.Context, req MLScoreRequest) (map[string]float64, error) {
	body := recommendRequest{Activities: req.Activities, UserID: req.UserID}
	body.UserPreferences.Preferences = req.Moods
	body.UserPreferences.Duration = req.WindowMinutes
	body.Context.Hour = req.Hour
	body.Context.DayOfWeek = req.DayOfWeek
	body.Context.Weather = req.Weather
	body.Context.TravelMode = req.TravelMode
	body.Context.TravelMinutesMap = req.TravelMinutes

	var payload recommendResponse
	err := remote.DoJSON(ctx, m.http, http.MethodPost, m.baseURL+"/api/recommend", nil, body, &payload, m.timeout)
	if err != nil {
		return nil, fmt.Errorf("ml recommend: %w", err)
	}
	if !payload.Success {
		return nil, fmt.Errorf("ml recommend: service reported failure")
	}

	scores := make(map[string]float64, len(payload.Recommendations))
	for _, rec := range payload.Recommendations {
		if rec.ID == "" {
			continue
		}
		scores[rec.ID] = rec.MLScore
	}
	if len(scores) == 0 {
		return nil, fmt.Errorf("ml recommend: no usable scores in response")
	}
	return scores, nil
}

func (m *MLServiceClient) SendFeedback(ctx context.Context, ev FeedbackEvent) error {
	if err := remote.DoJSON(ctx, m.http, http.MethodPost, m.baseURL+"/api/feedback", nil, ev, nil, m.timeout); err != nil {
		return fmt.Errorf("ml feedback: %w", err)
	}
	return nil
}
