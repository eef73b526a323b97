package domain_models

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TravelMode string

const (
	ModeWalk    TravelMode = "walk"
	ModeBike    TravelMode = "bike"
	ModeDrive   TravelMode = "drive"
	ModeTransit TravelMode = "transit"
)

func (m TravelMode) Valid() bool {
	switch m {
	case ModeWalk, ModeBike, ModeDrive, ModeTransit:
		return true
	}
	return false
}

// Candidate is one activity location retrieved for a single request.
// Immutable once produced by the candidate router; never persisted.
type Candidate struct {
	ID          string
	Name        string
	Categories  []string
	Location    Coordinate
	Rating      float64
	RatingCount int
	PriceTier   int
	OpenNow     *bool
	Address     string
	PhotoRef    string

	// Curated enrichment, only present when sourced from the offline dataset.
	MoodTags     []string
	SoloFriendly bool
	NoiseLevel   string
	BudgetBand   string
	LateHours    bool
}

// PrimaryCategory is the first category tag, or "" for an untagged candidate.
func (c Candidate) PrimaryCategory() string {
	if len(c.Categories) == 0 {
		return ""
	}
	return c.Categories[0]
}

// Region is a seeded locality with a curated offline dataset.
type Region struct {
	Slug        string
	Name        string
	Center      Coordinate
	ProximityKm float64
	Version     int
	Places      []Candidate
}
