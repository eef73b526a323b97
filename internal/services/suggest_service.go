package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"roam/internal/models/domain_models"
	"roam/internal/models/request_models"
	"roam/internal/models/response_models"
	"roam/internal/providers"
	"roam/pkg/utils"
)

// RankedCandidate is one candidate moving through the pipeline with the
// state each stage attaches to it.
type RankedCandidate struct {
	Candidate domain_models.Candidate
	Estimate  domain_models.TravelEstimate
	Budget    domain_models.TimeBudget
	Breakdown domain_models.ScoreBreakdown
	Score     float64
	Source    domain_models.ScoreSource
}

type SuggestServiceInterface interface {
	Suggest(ctx context.Context, req request_models.SuggestRequest) (response_models.SuggestResponse, error)
	ForwardFeedback(ctx context.Context, req request_models.FeedbackRequest) error
}

type SuggestService struct {
	vibes      VibeServiceInterface
	candidates CandidateServiceInterface
	travel     TravelServiceInterface
	fit        FitServiceInterface
	scoring    ScoringServiceInterface
	weather    providers.WeatherProvider
	mlClient   providers.MLScorer

	shortlistSize int
	maxResults    int
	logger        *zap.Logger
	now           func() time.Time
}

func NewSuggestService(
	vibes VibeServiceInterface,
	candidates CandidateServiceInterface,
	travel TravelServiceInterface,
	fit FitServiceInterface,
	scoring ScoringServiceInterface,
	weather providers.WeatherProvider,
	mlClient providers.MLScorer,
	shortlistSize int,
	maxResults int,
	logger *zap.Logger,
) SuggestServiceInterface {
	return &SuggestService{
		vibes:         vibes,
		candidates:    candidates,
		travel:        travel,
		fit:           fit,
		scoring:       scoring,
		weather:       weather,
		mlClient:      mlClient,
		shortlistSize: shortlistSize,
		maxResults:    maxResults,
		logger:        logger,
		now:           time.Now,
	}
}

// Suggest runs the full pipeline: vibe expansion, candidate retrieval with
// the weather fetch in parallel, two-stage travel resolution, time-fit,
// scoring with the optional ML blend, safety adjustment and the
// diversity-capped top-K.
func (s *SuggestService) Suggest(ctx context.Context, req request_models.SuggestRequest) (response_models.SuggestResponse, error) {
	if err := req.Validate(); err != nil {
		return response_models.SuggestResponse{}, err
	}

	start := time.Now()
	localNow := s.now()
	hour := localNow.Hour()

	origin := req.Origin()
	mode := req.TravelMode()
	categories := s.vibes.PlaceTypesForVibes(req.Moods)
	maxTravel := maxTravelMinutes(req.WindowMinutes, req.MaxTravelMinutes)
	radius := searchRadiusMeters(mode, maxTravel)

	// Weather is fetched concurrently with candidate retrieval; it gates
	// only the weather bonus, so a failure just drops that component.
	weatherCh := make(chan *domain_models.WeatherSnapshot, 1)
	go func() {
		if s.weather == nil {
			weatherCh <- nil
			return
		}
		snapshot, err := s.weather.Current(ctx, origin)
		if err != nil {
			s.logger.Warn("weather fetch failed, skipping weather bonus", zap.Error(err))
			weatherCh <- nil
			return
		}
		weatherCh <- &snapshot
	}()

	found, source := s.candidates.Resolve(ctx, origin, radius, categories)
	weather := <-weatherCh

	// Stage 1: free heuristic estimates, dropping anything the user cannot
	// plausibly reach inside their travel tolerance.
	items := make([]*RankedCandidate, 0, len(found))
	for _, c := range found {
		estimate := s.travel.Heuristic(origin, c.Location, mode)
		if estimate.Minutes > maxTravel {
			continue
		}
		items = append(items, &RankedCandidate{Candidate: c, Estimate: estimate})
	}

	// Stage 2: exact estimates for the closest shortlist, then budgets
	// (recomputed from whatever estimate each candidate ended up with).
	s.travel.ResolveExactBatch(ctx, origin, mode, items, s.shortlistSize)
	for _, item := range items {
		item.Budget = s.fit.Compute(item.Estimate.Minutes, item.Candidate.PrimaryCategory(), req.WindowMinutes)
	}

	sc := ScoreContext{
		Moods:            req.Moods,
		WindowMinutes:    req.WindowMinutes,
		MaxTravelMinutes: maxTravel,
		Hour:             hour,
		DayOfWeek:        int(localNow.Weekday()),
		Mode:             mode,
		Weather:          weather,
		UserID:           req.UserID,
	}

	s.scoring.ScoreLocal(items, sc)
	mlUsed := s.scoring.BlendML(ctx, items, sc)
	s.scoring.ApplySafetyDownrank(items, hour)
	s.scoring.SortByScore(items)

	top := SelectDiverse(items, s.maxResults)

	suggestions := make([]response_models.Suggestion, 0, len(top))
	for i, item := range top {
		suggestions = append(suggestions, s.buildSuggestion(item, i+1, req, mode))
	}

	return response_models.SuggestResponse{
		Suggestions: suggestions,
		Metadata: response_models.SuggestMetadata{
			CandidatesFound:       len(found),
			CandidatesAfterFilter: len(items),
			Returned:              len(suggestions),
			CandidateSource:       source,
			ProcessingMs:          time.Since(start).Milliseconds(),
			MLUsed:                mlUsed,
			WeatherUsed:           weather != nil,
		},
	}, nil
}

// ForwardFeedback proxies a feedback event to the ML service's learning
// loop. The core never stores feedback itself.
func (s *SuggestService) ForwardFeedback(ctx context.Context, req request_models.FeedbackRequest) error {
	if s.mlClient == nil {
		return utils.ErrFeedbackDisabled
	}
	return s.mlClient.SendFeedback(ctx, providers.FeedbackEvent{
		PlaceID:   req.PlaceID,
		Category:  req.Category,
		Hour:      req.Hour,
		EventType: req.EventType,
		UserID:    req.UserID,
	})
}

func (s *SuggestService) buildSuggestion(item *RankedCandidate, rank int, req request_models.SuggestRequest, mode domain_models.TravelMode) response_models.Suggestion {
	c := item.Candidate
	return response_models.Suggestion{
		ID:          c.ID,
		Name:        c.Name,
		Category:    c.PrimaryCategory(),
		Categories:  c.Categories,
		Lat:         c.Location.Lat,
		Lng:         c.Location.Lng,
		Address:     c.Address,
		PhotoRef:    c.PhotoRef,
		Rating:      c.Rating,
		RatingCount: c.RatingCount,
		PriceTier:   c.PriceTier,
		OpenNow:     c.OpenNow,
		MoodTags:    c.MoodTags,

		SoloFriendly: c.SoloFriendly,
		NoiseLevel:   c.NoiseLevel,
		BudgetBand:   c.BudgetBand,
		LateHours:    c.LateHours,

		TravelMinutes: item.Estimate.Minutes,
		TravelSource:  string(item.Estimate.Source),
		DwellMinutes:  item.Budget.Dwell,
		TotalMinutes:  item.Budget.Total,
		Feasible:      item.Budget.Feasible,

		Score:       item.Score,
		ScoreSource: string(item.Source),
		Reasons:     s.buildReasons(item, req, mode),
		Rank:        rank,
	}
}

// buildReasons produces the ordered, human-readable reason codes shown next
// to each suggestion.
func (s *SuggestService) buildReasons(item *RankedCandidate, req request_models.SuggestRequest, mode domain_models.TravelMode) []string {
	var reasons []string

	if vibe := s.firstMatchedVibe(item.Candidate, req.Moods); vibe != "" {
		reasons = append(reasons, capitalize(vibe)+" vibe")
	}

	reasons = append(reasons, fmt.Sprintf("%d min %s", item.Estimate.Minutes, modeNoun(mode)))

	if item.Budget.Feasible {
		reasons = append(reasons, fmt.Sprintf("Fits in %d min", req.WindowMinutes))
	} else {
		reasons = append(reasons, fmt.Sprintf("Tight for %d min", req.WindowMinutes))
	}

	if item.Candidate.OpenNow != nil && *item.Candidate.OpenNow {
		reasons = append(reasons, "Open now")
	}
	if item.Breakdown.WeatherBonus > 0 {
		reasons = append(reasons, "Great weather for it")
	}

	return reasons
}

func (s *SuggestService) firstMatchedVibe(c domain_models.Candidate, moods []string) string {
	if len(c.MoodTags) > 0 {
		tagSet := make(map[string]struct{}, len(c.MoodTags))
		for _, tag := range c.MoodTags {
			tagSet[tag] = struct{}{}
		}
		for _, m := range moods {
			if _, ok := tagSet[m]; ok {
				return m
			}
		}
		return ""
	}
	if matched := s.vibes.VibesSatisfiedBy(c.PrimaryCategory(), moods); len(matched) > 0 {
		return matched[0]
	}
	return ""
}

func modeNoun(mode domain_models.TravelMode) string {
	switch mode {
	case domain_models.ModeWalk:
		return "walk"
	case domain_models.ModeBike:
		return "bike ride"
	case domain_models.ModeTransit:
		return "transit ride"
	default:
		return "drive"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// maxTravelMinutes derives the one-way travel tolerance: a third of the
// window, clamped, further tightened by an explicit user maximum.
func maxTravelMinutes(windowMinutes, userMax int) int {
	max := windowMinutes / 3
	if max < 5 {
		max = 5
	}
	if max > 45 {
		max = 45
	}
	if userMax > 0 && userMax < max {
		max = userMax
	}
	return max
}

// searchRadiusMeters converts the travel tolerance back into a provider
// search radius using the same conservative speeds as the heuristic.
func searchRadiusMeters(mode domain_models.TravelMode, maxTravel int) int {
	speed, ok := heuristicSpeedsKmh[mode]
	if !ok {
		speed = heuristicSpeedsKmh[domain_models.ModeWalk]
	}
	meters := int(speed / 60 * float64(maxTravel) * 1000)
	if meters < 500 {
		meters = 500
	}
	if meters > 25000 {
		meters = 25000
	}
	return meters
}
