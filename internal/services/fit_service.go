package services

import "roam/internal/models/domain_models"

// FitServiceInterface turns a one-way travel estimate and a category into a
// round-trip time budget against the user's window. Pure arithmetic, no I/O.
type FitServiceInterface interface {
	Compute(travelMinutes int, category string, windowMinutes int) domain_models.TimeBudget
}

// dwellRange is the [min,max] minutes a visit to a category typically takes.
type dwellRange struct {
	min, max int
}

var dwellRanges = map[string]dwellRange{
	"cafe":          {15, 20},
	"tea_house":     {15, 25},
	"bakery":        {10, 20},
	"restaurant":    {30, 60},
	"bar":           {30, 60},
	"music_venue":   {45, 90},
	"park":          {20, 45},
	"trail":         {30, 60},
	"viewpoint":     {10, 25},
	"museum":        {40, 75},
	"gallery":       {25, 50},
	"bookstore":     {15, 35},
	"arcade":        {25, 50},
	"cinema":        {90, 120},
	"market":        {20, 40},
	"climbing_gym":  {45, 75},
	"sports_ground": {30, 60},
	"campground":    {60, 120},
	"spa":           {45, 90},
}

var defaultDwell = dwellRange{20, 40}

const (
	// BufferMinutes is the fixed slack added to every budget for finding the
	// entrance, paying, getting slightly lost.
	BufferMinutes = 5

	// dwellInterpolationCapMinutes caps the window used for the dwell
	// interpolation ratio: past a one-hour window everyone gets the
	// lingering estimate.
	dwellInterpolationCapMinutes = 60
)

type FitService struct{}

func NewFitService() FitServiceInterface {
	return &FitService{}
}

// Compute derives the time budget: travel there, dwell, travel back (assumed
// symmetric), plus the fixed buffer. Dwell interpolates from the quick-visit
// end toward the lingering end as the window grows. Feasibility is
// informational; downstream scoring penalizes poor fits instead of dropping
// candidates.
func (f *FitService) Compute(travelMinutes int, category string, windowMinutes int) domain_models.TimeBudget {
	dwell := DwellEstimate(category, windowMinutes)
	total := travelMinutes + dwell + travelMinutes + BufferMinutes

	return domain_models.TimeBudget{
		TravelTo:   travelMinutes,
		Dwell:      dwell,
		TravelBack: travelMinutes,
		Buffer:     BufferMinutes,
		Total:      total,
		Feasible:   total <= windowMinutes,
	}
}

// DwellEstimate interpolates the per-category dwell range by window length.
func DwellEstimate(category string, windowMinutes int) int {
	r, ok := dwellRanges[category]
	if !ok {
		r = defaultDwell
	}

	capped := windowMinutes
	if capped > dwellInterpolationCapMinutes {
		capped = dwellInterpolationCapMinutes
	}
	if capped < 0 {
		capped = 0
	}
	ratio := float64(capped) / float64(dwellInterpolationCapMinutes)

	return r.min + int(ratio*float64(r.max-r.min))
}
