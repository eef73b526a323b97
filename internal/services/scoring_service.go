package services

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"roam/internal/models/domain_models"
	"roam/internal/providers"
	"roam/pkg/breaker"
	"roam/pkg/utils"
)

// Component weights. They sum to 1.0 before the additive bonuses.
const (
	weightVibe           = 0.30
	weightTimeEfficiency = 0.25
	weightDistance       = 0.20
	weightNovelty        = 0.15
	weightRating         = 0.10

	weatherBonus  = 0.10
	weatherMalus  = -0.10
	neutralScore  = 0.5
	neutralRating = 0.5

	// Infeasible totals are downranked hard instead of being filtered out,
	// so a near-fit can still surface when nothing else is close.
	infeasiblePenaltyFactor = 0.3

	// Late-night damping for isolated outdoor spots.
	safetyDampingFactor = 0.5
	lateNightStartHour  = 22
	lateNightEndHour    = 5
)

var outdoorCategories = map[string]struct{}{
	"park":          {},
	"trail":         {},
	"viewpoint":     {},
	"campground":    {},
	"sports_ground": {},
}

// Categories that tend to be unlit and empty late at night.
var isolatedOutdoorCategories = map[string]struct{}{
	"park":          {},
	"trail":         {},
	"viewpoint":     {},
	"campground":    {},
	"sports_ground": {},
}

// ScoreContext is the per-request input the scorer needs beyond the
// candidates themselves.
type ScoreContext struct {
	Moods            []string
	WindowMinutes    int
	MaxTravelMinutes int
	Hour             int
	DayOfWeek        int
	Mode             domain_models.TravelMode
	Weather          *domain_models.WeatherSnapshot
	UserID           string
}

type ScoringServiceInterface interface {
	ScoreLocal(items []*RankedCandidate, sc ScoreContext)
	BlendML(ctx context.Context, items []*RankedCandidate, sc ScoreContext) bool
	ApplySafetyDownrank(items []*RankedCandidate, hour int)
	SortByScore(items []*RankedCandidate)
}

type ScoringService struct {
	vibes   VibeServiceInterface
	scorer  providers.MLScorer
	breaker *breaker.Breaker
	logger  *zap.Logger
}

// NewScoringService builds the engine. A nil scorer disables the ML path;
// every suggestion then carries local provenance.
func NewScoringService(vibes VibeServiceInterface, scorer providers.MLScorer, brk *breaker.Breaker, logger *zap.Logger) ScoringServiceInterface {
	return &ScoringService{
		vibes:   vibes,
		scorer:  scorer,
		breaker: brk,
		logger:  logger,
	}
}

// ScoreLocal computes the full breakdown and clamped total for every item.
func (s *ScoringService) ScoreLocal(items []*RankedCandidate, sc ScoreContext) {
	bonuses := s.vibes.TimeOfDayBonuses(sc.Hour)

	for _, item := range items {
		primary := item.Candidate.PrimaryCategory()

		b := domain_models.ScoreBreakdown{
			VibeMatch:      s.vibeMatch(item.Candidate, sc.Moods),
			TimeEfficiency: timeEfficiency(item.Budget.Total, sc.WindowMinutes),
			Distance:       distanceScore(item.Budget.TravelTo, sc.MaxTravelMinutes),
			Novelty:        neutralScore,
			Rating:         ratingScore(item.Candidate),
			TimeOfDayBonus: bonuses[primary],
		}

		if sc.Weather != nil {
			if _, outdoor := outdoorCategories[primary]; outdoor {
				if sc.Weather.OutdoorFriendly {
					b.WeatherBonus = weatherBonus
				} else {
					b.WeatherBonus = weatherMalus
				}
			}
		}

		total := b.VibeMatch*weightVibe +
			b.TimeEfficiency*weightTimeEfficiency +
			b.Distance*weightDistance +
			b.Novelty*weightNovelty +
			b.Rating*weightRating +
			b.WeatherBonus + b.TimeOfDayBonus

		b.Total = utils.Clamp01(total)
		if !item.Budget.Feasible {
			b.Total *= infeasiblePenaltyFactor
		}

		item.Breakdown = b
		item.Score = b.Total
		item.Source = domain_models.ScoreSourceLocal
	}
}

// BlendML asks the external scorer for the whole batch once. On success the
// external score replaces the local total for every candidate it covers;
// candidates the response omits keep their local score. Any failure counts
// against the breaker and leaves all local scores untouched.
func (s *ScoringService) BlendML(ctx context.Context, items []*RankedCandidate, sc ScoreContext) bool {
	if s.scorer == nil || len(items) == 0 {
		return false
	}
	if !s.breaker.Allow() {
		s.logger.Debug("ml breaker open, using local scores")
		return false
	}

	req := providers.MLScoreRequest{
		Moods:         sc.Moods,
		WindowMinutes: sc.WindowMinutes,
		Hour:          sc.Hour,
		DayOfWeek:     sc.DayOfWeek,
		TravelMode:    string(sc.Mode),
		TravelMinutes: make(map[string]int, len(items)),
		UserID:        sc.UserID,
	}
	if sc.Weather != nil {
		req.Weather = sc.Weather.Condition
	} else {
		req.Weather = "clear"
	}
	for _, item := range items {
		open := item.Candidate.OpenNow == nil || *item.Candidate.OpenNow
		req.Activities = append(req.Activities, providers.MLActivity{
			ID:         item.Candidate.ID,
			Name:       item.Candidate.Name,
			Category:   item.Candidate.PrimaryCategory(),
			Rating:     item.Candidate.Rating,
			PriceLevel: item.Candidate.PriceTier,
			IsOpen:     open,
		})
		req.TravelMinutes[item.Candidate.ID] = item.Estimate.Minutes
	}

	scores, err := s.scorer.ScoreBatch(ctx, req)
	if err != nil {
		s.breaker.RecordFailure()
		s.logger.Warn("ml scoring failed, using local scores", zap.Error(err))
		return false
	}
	s.breaker.RecordSuccess()

	used := false
	for _, item := range items {
		if score, ok := scores[item.Candidate.ID]; ok {
			item.Score = utils.Clamp01(score)
			item.Source = domain_models.ScoreSourceML
			used = true
		}
	}
	return used
}

// ApplySafetyDownrank damps isolated outdoor spots during the late-night
// window. Always applied; not a toggle. Curated places flagged as late-hours
// destinations are exempt: the dataset vouches for them at night.
func (s *ScoringService) ApplySafetyDownrank(items []*RankedCandidate, hour int) {
	if hour < lateNightStartHour && hour > lateNightEndHour {
		return
	}
	for _, item := range items {
		if item.Candidate.LateHours {
			continue
		}
		if _, ok := isolatedOutdoorCategories[item.Candidate.PrimaryCategory()]; ok {
			item.Score *= safetyDampingFactor
		}
	}
}

// SortByScore orders descending by score with deterministic tie-breaks.
func (s *ScoringService) SortByScore(items []*RankedCandidate) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		if items[i].Budget.Total != items[j].Budget.Total {
			return items[i].Budget.Total < items[j].Budget.Total
		}
		return items[i].Candidate.Name < items[j].Candidate.Name
	})
}

func (s *ScoringService) vibeMatch(c domain_models.Candidate, moods []string) float64 {
	effective := moods[:0:0]
	for _, m := range moods {
		if m != VibeSurprise {
			effective = append(effective, m)
		}
	}
	if len(effective) == 0 {
		return neutralScore
	}

	var matched int
	if len(c.MoodTags) > 0 {
		tagSet := make(map[string]struct{}, len(c.MoodTags))
		for _, tag := range c.MoodTags {
			tagSet[tag] = struct{}{}
		}
		for _, m := range effective {
			if _, ok := tagSet[m]; ok {
				matched++
			}
		}
	} else {
		matched = len(s.vibes.VibesSatisfiedBy(c.PrimaryCategory(), effective))
	}

	return float64(matched) / float64(len(effective))
}

// timeEfficiency is a step function of window usage: the 0.70-0.90 band uses
// the window well, under half wastes it, over 0.95 cuts it too close.
func timeEfficiency(totalMinutes, windowMinutes int) float64 {
	if windowMinutes <= 0 {
		return 0
	}
	ratio := float64(totalMinutes) / float64(windowMinutes)
	switch {
	case ratio >= 0.70 && ratio <= 0.90:
		return 1.0
	case ratio < 0.50:
		return 0.5
	case ratio > 0.95:
		return 0.6
	default:
		return 0.8
	}
}

func distanceScore(travelMinutes, maxTravelMinutes int) float64 {
	if maxTravelMinutes <= 0 {
		return 0
	}
	return utils.Clamp01(1 - float64(travelMinutes)/float64(maxTravelMinutes))
}

func ratingScore(c domain_models.Candidate) float64 {
	if c.Rating <= 0 {
		return neutralRating
	}
	return utils.Clamp01(c.Rating / 5.0)
}
