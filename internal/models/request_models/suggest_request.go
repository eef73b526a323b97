package request_models

import (
	"roam/internal/models/domain_models"
	"roam/pkg/utils"
)

// Lat and Lng are pointers so a missing field is distinguishable from a
// legitimate zero (the equator and the Greenwich meridian are valid origins).
type SuggestRequest struct {
	Lat              *float64 `json:"lat" binding:"required"`
	Lng              *float64 `json:"lng" binding:"required"`
	WindowMinutes    int      `json:"window_minutes" binding:"required"`
	Mode             string   `json:"mode" binding:"required"`
	Moods            []string `json:"moods"`
	MaxTravelMinutes int      `json:"max_travel_minutes"`
	UserID           string   `json:"user_id"`
}

const (
	MinWindowMinutes = 15
	MaxWindowMinutes = 480
)

// Validate checks the semantic constraints binding cannot express. Invalid
// requests are the only caller-visible error class in the pipeline.
func (r SuggestRequest) Validate() error {
	if r.Lat == nil || r.Lng == nil {
		return utils.ValidationError("lat and lng are required")
	}
	if *r.Lat < -90 || *r.Lat > 90 || *r.Lng < -180 || *r.Lng > 180 {
		return utils.ValidationError("lat/lng must be a valid coordinate")
	}
	if r.WindowMinutes < MinWindowMinutes || r.WindowMinutes > MaxWindowMinutes {
		return utils.ValidationError("window_minutes must be between 15 and 480")
	}
	if !domain_models.TravelMode(r.Mode).Valid() {
		return utils.ValidationError("mode must be one of walk, bike, drive, transit")
	}
	if r.MaxTravelMinutes < 0 {
		return utils.ValidationError("max_travel_minutes must not be negative")
	}
	return nil
}

// Origin assumes Validate has passed; the pointers are non-nil by then.
func (r SuggestRequest) Origin() domain_models.Coordinate {
	return domain_models.Coordinate{Lat: *r.Lat, Lng: *r.Lng}
}

func (r SuggestRequest) TravelMode() domain_models.TravelMode {
	return domain_models.TravelMode(r.Mode)
}

// FeedbackRequest mirrors the ML service's feedback contract; the core only
// forwards it, it never stores feedback itself.
type FeedbackRequest struct {
	PlaceID   string `json:"place_id" binding:"required"`
	Category  string `json:"category"`
	Hour      int    `json:"hour"`
	EventType string `json:"event_type" binding:"required"`
	UserID    string `json:"user_id"`
}
