package domain_models

type EstimateSource string

const (
	EstimateHeuristic EstimateSource = "heuristic"
	EstimateExact     EstimateSource = "exact"
)

// TravelEstimate is the one-way travel time for a (candidate, mode) pair.
// An exact estimate supersedes the heuristic one within the same request.
type TravelEstimate struct {
	Minutes int
	Source  EstimateSource
}

// TimeBudget is the full round-trip accounting for a candidate against the
// user's window. Feasible means Total <= window.
type TimeBudget struct {
	TravelTo   int
	Dwell      int
	TravelBack int
	Buffer     int
	Total      int
	Feasible   bool
}

// ScoreBreakdown holds the named components of a candidate's local score.
// Components are in [0,1]; bonuses are small signed additives; Total is
// clamped to [0,1].
type ScoreBreakdown struct {
	VibeMatch      float64
	TimeEfficiency float64
	Distance       float64
	Novelty        float64
	Rating         float64
	WeatherBonus   float64
	TimeOfDayBonus float64
	Total          float64
}

type ScoreSource string

const (
	ScoreSourceLocal ScoreSource = "local"
	ScoreSourceML    ScoreSource = "ml"
)

// WeatherSnapshot is the normalized current-conditions view the scorer needs.
type WeatherSnapshot struct {
	TempF           float64
	Condition       string
	OutdoorFriendly bool
}
