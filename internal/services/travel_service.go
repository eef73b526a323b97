package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"roam/internal/models/domain_models"
	"roam/internal/providers"
	"roam/pkg/cache"
	"roam/pkg/utils"
)

// TravelServiceInterface is the two-stage travel-time resolver. Stage 1 is a
// free closed-form estimate every candidate gets; Stage 2 spends bounded
// provider budget on the closest candidates only.
type TravelServiceInterface interface {
	Heuristic(origin, destination domain_models.Coordinate, mode domain_models.TravelMode) domain_models.TravelEstimate
	ResolveExactBatch(ctx context.Context, origin domain_models.Coordinate, mode domain_models.TravelMode, items []*RankedCandidate, limit int)
}

// Conservative per-mode speeds in km/h, deliberately slower than nominal so
// the heuristic over-estimates. Under-estimating risks suggesting something
// that doesn't fit the window.
var heuristicSpeedsKmh = map[domain_models.TravelMode]float64{
	domain_models.ModeWalk:    4.0,
	domain_models.ModeBike:    12.0,
	domain_models.ModeTransit: 15.0,
	domain_models.ModeDrive:   25.0,
}

type TravelService struct {
	routing  providers.RoutingProvider
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTravelService builds the estimator. A nil routing provider disables
// Stage 2 entirely; every candidate then keeps its heuristic estimate.
func NewTravelService(routing providers.RoutingProvider, store cache.Store, cacheTTL time.Duration, logger *zap.Logger) TravelServiceInterface {
	return &TravelService{
		routing:  routing,
		cache:    store,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

func (t *TravelService) Heuristic(origin, destination domain_models.Coordinate, mode domain_models.TravelMode) domain_models.TravelEstimate {
	speed, ok := heuristicSpeedsKmh[mode]
	if !ok {
		speed = heuristicSpeedsKmh[domain_models.ModeWalk]
	}

	km := utils.HaversineKm(origin.Lat, origin.Lng, destination.Lat, destination.Lng)
	minutes := int(math.Ceil(km / speed * 60))
	if minutes < 1 {
		minutes = 1
	}

	return domain_models.TravelEstimate{Minutes: minutes, Source: domain_models.EstimateHeuristic}
}

// ResolveExactBatch upgrades up to limit candidates, ordered by Stage-1
// minutes ascending, to exact provider estimates. Calls run concurrently
// with per-call timeouts owned by the provider; an individual failure keeps
// that candidate's heuristic estimate and never fails the batch.
func (t *TravelService) ResolveExactBatch(ctx context.Context, origin domain_models.Coordinate, mode domain_models.TravelMode, items []*RankedCandidate, limit int) {
	if t.routing == nil || len(items) == 0 || limit <= 0 {
		return
	}

	shortlist := make([]*RankedCandidate, len(items))
	copy(shortlist, items)
	sort.SliceStable(shortlist, func(i, j int) bool {
		return shortlist[i].Estimate.Minutes < shortlist[j].Estimate.Minutes
	})
	if len(shortlist) > limit {
		shortlist = shortlist[:limit]
	}

	var wg sync.WaitGroup
	for _, item := range shortlist {
		wg.Add(1)
		go func(item *RankedCandidate) {
			defer wg.Done()
			t.resolveOne(ctx, origin, mode, item)
		}(item)
	}
	wg.Wait()
}

func (t *TravelService) resolveOne(ctx context.Context, origin domain_models.Coordinate, mode domain_models.TravelMode, item *RankedCandidate) {
	key := travelCacheKey(origin, item.Candidate.Location, mode)

	if data, ok := t.cache.Get(ctx, key); ok {
		if minutes, err := strconv.Atoi(string(data)); err == nil {
			item.Estimate = domain_models.TravelEstimate{Minutes: minutes, Source: domain_models.EstimateExact}
			return
		}
	}

	minutes, err := t.routing.TravelTime(ctx, origin, item.Candidate.Location, mode)
	if err != nil {
		t.logger.Debug("exact travel time failed, keeping heuristic",
			zap.String("candidate", item.Candidate.ID), zap.Error(err))
		return
	}

	item.Estimate = domain_models.TravelEstimate{Minutes: minutes, Source: domain_models.EstimateExact}
	t.cache.Set(ctx, key, []byte(strconv.Itoa(minutes)), t.cacheTTL)
}

// travelCacheKey quantizes both endpoints to ~11m so nearby origins share
// entries across requests.
func travelCacheKey(origin, destination domain_models.Coordinate, mode domain_models.TravelMode) string {
	return fmt.Sprintf("travel:%s:%s,%s:%s,%s",
		mode,
		utils.RoundCoord(origin.Lat, 4), utils.RoundCoord(origin.Lng, 4),
		utils.RoundCoord(destination.Lat, 4), utils.RoundCoord(destination.Lng, 4))
}
