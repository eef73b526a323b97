package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"roam/internal/models/domain_models"
	"roam/pkg/breaker"
)

func newScoringService(scorer *mockMLScorer) (ScoringServiceInterface, *breaker.Breaker) {
	brk := breaker.New(3, time.Minute, nil)
	var s *ScoringService
	if scorer == nil {
		s = NewScoringService(NewVibeService(), nil, brk, testLogger()).(*ScoringService)
	} else {
		s = NewScoringService(NewVibeService(), scorer, brk, testLogger()).(*ScoringService)
	}
	return s, brk
}

func feasibleItem(category string, travel int, window int) *RankedCandidate {
	item := &RankedCandidate{
		Candidate: domain_models.Candidate{
			ID:         category + "-1",
			Name:       category,
			Categories: []string{category},
			Rating:     4.0,
		},
		Estimate: domain_models.TravelEstimate{Minutes: travel, Source: domain_models.EstimateHeuristic},
	}
	item.Budget = NewFitService().Compute(travel, category, window)
	return item
}

func TestScoreLocalBounds(t *testing.T) {
	s, _ := newScoringService(nil)

	items := []*RankedCandidate{
		feasibleItem("cafe", 6, 45),
		feasibleItem("park", 10, 60),
		feasibleItem("museum", 40, 90), // infeasible: 40+75+40+5 > 90
	}

	friendly := domain_models.WeatherSnapshot{TempF: 70, Condition: "Clear", OutdoorFriendly: true}
	s.ScoreLocal(items, ScoreContext{
		Moods:            []string{"chill"},
		WindowMinutes:    60,
		MaxTravelMinutes: 20,
		Hour:             9,
		Weather:          &friendly,
	})

	for _, item := range items {
		b := item.Breakdown
		for name, v := range map[string]float64{
			"VibeMatch":      b.VibeMatch,
			"TimeEfficiency": b.TimeEfficiency,
			"Distance":       b.Distance,
			"Novelty":        b.Novelty,
			"Rating":         b.Rating,
			"Total":          b.Total,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s: %s = %v, want within [0,1]", item.Candidate.Name, name, v)
			}
		}
		if item.Source != domain_models.ScoreSourceLocal {
			t.Errorf("%s: Source = %q, want local", item.Candidate.Name, item.Source)
		}
	}
}

func TestScoreLocalInfeasiblePenalty(t *testing.T) {
	s, _ := newScoringService(nil)

	fits := feasibleItem("cafe", 6, 45)
	tight := feasibleItem("cafe", 6, 45)
	tight.Budget.Feasible = false

	sc := ScoreContext{Moods: []string{"chill"}, WindowMinutes: 45, MaxTravelMinutes: 15, Hour: 14}
	s.ScoreLocal([]*RankedCandidate{fits, tight}, sc)

	want := fits.Score * 0.3
	if diff := tight.Score - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("infeasible score = %v, want %v (0.3 of %v)", tight.Score, want, fits.Score)
	}
}

func TestScoreLocalWeatherBonus(t *testing.T) {
	s, _ := newScoringService(nil)

	tests := []struct {
		name     string
		category string
		friendly bool
		want     float64
	}{
		{"outdoor in good weather", "park", true, 0.10},
		{"outdoor in bad weather", "trail", false, -0.10},
		{"indoor untouched either way", "museum", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := feasibleItem(tt.category, 5, 60)
			weather := domain_models.WeatherSnapshot{OutdoorFriendly: tt.friendly}
			s.ScoreLocal([]*RankedCandidate{item}, ScoreContext{WindowMinutes: 60, MaxTravelMinutes: 20, Hour: 12, Weather: &weather})
			if item.Breakdown.WeatherBonus != tt.want {
				t.Errorf("WeatherBonus = %v, want %v", item.Breakdown.WeatherBonus, tt.want)
			}
		})
	}
}

func TestTimeEfficiencySteps(t *testing.T) {
	tests := []struct {
		total, window int
		want          float64
	}{
		{48, 60, 1.0},  // 0.80: sweet spot
		{42, 60, 1.0},  // 0.70: band edge
		{54, 60, 1.0},  // 0.90: band edge
		{20, 60, 0.5},  // 0.33: wastes the window
		{59, 60, 0.6},  // 0.98: too tight
		{36, 60, 0.8},  // 0.60: acceptable
		{10, 0, 0},
	}

	for _, tt := range tests {
		if got := timeEfficiency(tt.total, tt.window); got != tt.want {
			t.Errorf("timeEfficiency(%d, %d) = %v, want %v", tt.total, tt.window, got, tt.want)
		}
	}
}

func TestVibeMatchPrefersMoodTags(t *testing.T) {
	s, _ := newScoringService(nil)
	svc := s.(*ScoringService)

	tagged := domain_models.Candidate{
		Categories: []string{"cafe"},
		MoodTags:   []string{"chill", "romantic"},
	}
	untagged := domain_models.Candidate{Categories: []string{"cafe"}}

	tests := []struct {
		name      string
		candidate domain_models.Candidate
		moods     []string
		want      float64
	}{
		{"tags match half the moods", tagged, []string{"chill", "social"}, 0.5},
		{"tags match all moods", tagged, []string{"chill", "romantic"}, 1.0},
		{"category fallback when untagged", untagged, []string{"chill", "social"}, 0.5},
		{"no moods is neutral", tagged, nil, 0.5},
		{"surprise alone is neutral", tagged, []string{"surprise"}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.vibeMatch(tt.candidate, tt.moods); got != tt.want {
				t.Errorf("vibeMatch = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlendMLReplacesCoveredScores(t *testing.T) {
	scorer := &mockMLScorer{scores: map[string]float64{"cafe-1": 0.88}}
	s, _ := newScoringService(scorer)

	covered := feasibleItem("cafe", 6, 45)
	omitted := feasibleItem("park", 8, 45)
	items := []*RankedCandidate{covered, omitted}

	sc := ScoreContext{Moods: []string{"chill"}, WindowMinutes: 45, MaxTravelMinutes: 15, Hour: 10}
	s.ScoreLocal(items, sc)
	localParkScore := omitted.Score

	if used := s.BlendML(context.Background(), items, sc); !used {
		t.Fatal("BlendML = false, want true")
	}

	if covered.Score != 0.88 || covered.Source != domain_models.ScoreSourceML {
		t.Errorf("covered: score=%v source=%q, want 0.88/ml", covered.Score, covered.Source)
	}
	if omitted.Score != localParkScore || omitted.Source != domain_models.ScoreSourceLocal {
		t.Errorf("omitted: score=%v source=%q, want %v/local", omitted.Score, omitted.Source, localParkScore)
	}
}

func TestBlendMLFailureKeepsLocal(t *testing.T) {
	scorer := &mockMLScorer{err: errors.New("timeout")}
	s, brk := newScoringService(scorer)

	items := []*RankedCandidate{feasibleItem("cafe", 6, 45)}
	sc := ScoreContext{WindowMinutes: 45, MaxTravelMinutes: 15, Hour: 10}
	s.ScoreLocal(items, sc)
	localScore := items[0].Score

	if used := s.BlendML(context.Background(), items, sc); used {
		t.Fatal("BlendML = true, want false")
	}
	if items[0].Score != localScore || items[0].Source != domain_models.ScoreSourceLocal {
		t.Errorf("score=%v source=%q, want local score %v untouched", items[0].Score, items[0].Source, localScore)
	}
	if brk.Failures() != 1 {
		t.Errorf("breaker failures = %d, want 1", brk.Failures())
	}
}

func TestBlendMLBreakerSkipsAfterThreshold(t *testing.T) {
	scorer := &mockMLScorer{err: errors.New("timeout")}
	s, _ := newScoringService(scorer)

	items := []*RankedCandidate{feasibleItem("cafe", 6, 45)}
	sc := ScoreContext{WindowMinutes: 45, MaxTravelMinutes: 15, Hour: 10}
	s.ScoreLocal(items, sc)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s.BlendML(ctx, items, sc)
	}
	if scorer.callCount() != 3 {
		t.Fatalf("scorer calls = %d, want 3", scorer.callCount())
	}

	// Breaker is open: the fourth attempt never reaches the scorer and the
	// suggestion keeps local provenance.
	if used := s.BlendML(ctx, items, sc); used {
		t.Error("BlendML = true with open breaker, want false")
	}
	if scorer.callCount() != 3 {
		t.Errorf("scorer calls = %d after open-breaker attempt, want still 3", scorer.callCount())
	}
	if items[0].Source != domain_models.ScoreSourceLocal {
		t.Errorf("Source = %q, want local", items[0].Source)
	}
}

func TestBlendMLSuccessResetsBreaker(t *testing.T) {
	scorer := &mockMLScorer{err: errors.New("timeout")}
	s, brk := newScoringService(scorer)

	items := []*RankedCandidate{feasibleItem("cafe", 6, 45)}
	sc := ScoreContext{WindowMinutes: 45, MaxTravelMinutes: 15, Hour: 10}
	s.ScoreLocal(items, sc)

	ctx := context.Background()
	s.BlendML(ctx, items, sc)
	s.BlendML(ctx, items, sc)

	scorer.mu.Lock()
	scorer.err = nil
	scorer.scores = map[string]float64{"cafe-1": 0.7}
	scorer.mu.Unlock()

	if used := s.BlendML(ctx, items, sc); !used {
		t.Fatal("BlendML = false after recovery, want true")
	}
	if brk.Failures() != 0 {
		t.Errorf("breaker failures = %d after success, want 0", brk.Failures())
	}
}

func TestBlendMLNilScorer(t *testing.T) {
	s, _ := newScoringService(nil)
	items := []*RankedCandidate{feasibleItem("cafe", 6, 45)}
	if used := s.BlendML(context.Background(), items, ScoreContext{}); used {
		t.Error("BlendML = true with nil scorer, want false")
	}
}

func TestApplySafetyDownrank(t *testing.T) {
	s, _ := newScoringService(nil)

	tests := []struct {
		name     string
		hour     int
		category string
		want     float64
	}{
		{"park at 23 is damped", 23, "park", 0.4},
		{"trail at 2 is damped", 2, "trail", 0.4},
		{"park at 22 is damped", 22, "park", 0.4},
		{"park at 5 is damped", 5, "park", 0.4},
		{"park mid-afternoon untouched", 14, "park", 0.8},
		{"bar at 23 untouched", 23, "bar", 0.8},
		{"park at 6 untouched", 6, "park", 0.8},
		{"park at 21 untouched", 21, "park", 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := feasibleItem(tt.category, 5, 60)
			item.Score = 0.8
			s.ApplySafetyDownrank([]*RankedCandidate{item}, tt.hour)
			if item.Score != tt.want {
				t.Errorf("score = %v, want %v", item.Score, tt.want)
			}
		})
	}
}

func TestApplySafetyDownrankSparesLateHoursPlaces(t *testing.T) {
	s, _ := newScoringService(nil)

	curated := feasibleItem("park", 5, 60)
	curated.Candidate.LateHours = true
	curated.Score = 0.8

	unknown := feasibleItem("park", 5, 60)
	unknown.Score = 0.8

	s.ApplySafetyDownrank([]*RankedCandidate{curated, unknown}, 23)

	if curated.Score != 0.8 {
		t.Errorf("late-hours place score = %v, want 0.8 untouched", curated.Score)
	}
	if unknown.Score != 0.4 {
		t.Errorf("unflagged place score = %v, want 0.4", unknown.Score)
	}
}

func TestSortByScore(t *testing.T) {
	s, _ := newScoringService(nil)

	a := feasibleItem("cafe", 5, 60)
	a.Candidate.Name = "Alpha"
	a.Score = 0.7
	a.Budget.Total = 40

	b := feasibleItem("park", 5, 60)
	b.Candidate.Name = "Beta"
	b.Score = 0.9

	c := feasibleItem("museum", 5, 60)
	c.Candidate.Name = "Gamma"
	c.Score = 0.7
	c.Budget.Total = 30

	items := []*RankedCandidate{a, b, c}
	s.SortByScore(items)

	wantNames := []string{"Beta", "Gamma", "Alpha"}
	for i, want := range wantNames {
		if items[i].Candidate.Name != want {
			t.Fatalf("position %d = %q, want %q", i, items[i].Candidate.Name, want)
		}
	}
}
