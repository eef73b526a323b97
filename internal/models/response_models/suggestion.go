package response_models

// Suggestion is the externally visible unit: a candidate enriched with its
// travel estimate, time budget, final score and provenance.
type Suggestion struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Categories  []string `json:"categories,omitempty"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Address     string   `json:"address,omitempty"`
	PhotoRef    string   `json:"photo_ref,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	RatingCount int      `json:"rating_count,omitempty"`
	PriceTier   int      `json:"price_tier,omitempty"`
	OpenNow     *bool    `json:"open_now,omitempty"`
	MoodTags    []string `json:"mood_tags,omitempty"`

	// Curated enrichment, present only for offline-sourced suggestions.
	SoloFriendly bool   `json:"solo_friendly,omitempty"`
	NoiseLevel   string `json:"noise_level,omitempty"`
	BudgetBand   string `json:"budget_band,omitempty"`
	LateHours    bool   `json:"late_hours,omitempty"`

	TravelMinutes int  `json:"travel_minutes"`
	TravelSource  string `json:"travel_source"`
	DwellMinutes  int  `json:"dwell_minutes"`
	TotalMinutes  int  `json:"total_minutes"`
	Feasible      bool `json:"feasible"`

	Score       float64  `json:"score"`
	ScoreSource string   `json:"score_source"`
	Reasons     []string `json:"reasons"`
	Rank        int      `json:"rank"`
}

// SuggestMetadata reports what happened at each pipeline stage.
type SuggestMetadata struct {
	CandidatesFound       int    `json:"candidates_found"`
	CandidatesAfterFilter int    `json:"candidates_after_filter"`
	Returned              int    `json:"returned"`
	CandidateSource       string `json:"candidate_source"`
	ProcessingMs          int64  `json:"processing_ms"`
	MLUsed                bool   `json:"ml_used"`
	WeatherUsed           bool   `json:"weather_used"`
}

type SuggestResponse struct {
	Suggestions []Suggestion    `json:"suggestions"`
	Metadata    SuggestMetadata `json:"metadata"`
}
