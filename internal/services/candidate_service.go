package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"roam/internal/models/domain_models"
	"roam/internal/providers"
	"roam/internal/repositories"
	"roam/pkg/cache"
	"roam/pkg/utils"
)

// CandidateServiceInterface resolves nearby candidates from the live place
// provider or the curated offline dataset. The pipeline never dead-ends: a
// failing or empty live search falls back to the nearest seeded region.
type CandidateServiceInterface interface {
	Resolve(ctx context.Context, origin domain_models.Coordinate, radiusMeters int, categories []string) ([]domain_models.Candidate, string)
}

// Category tags that mark errands, retail and logistics rather than
// experiences. A candidate is dropped when its primary category is denied or
// when three or more of its tags are.
var deniedCategories = map[string]struct{}{
	"pharmacy":           {},
	"drugstore":          {},
	"supermarket":        {},
	"grocery_store":      {},
	"convenience_store":  {},
	"bank":               {},
	"atm":                {},
	"gas_station":        {},
	"car_repair":         {},
	"car_dealer":         {},
	"car_wash":           {},
	"laundry":            {},
	"dry_cleaning":       {},
	"hardware_store":     {},
	"post_office":        {},
	"courier_service":    {},
	"storage":            {},
	"real_estate_agency": {},
	"insurance_agency":   {},
	"doctor":             {},
	"dentist":            {},
	"hospital":           {},
	"parking":            {},
}

type CandidateService struct {
	places   providers.PlacesProvider
	regions  []domain_models.Region
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCandidateService loads the seeded-region registry once at startup. A
// nil places provider routes every request through the offline dataset.
func NewCandidateService(places providers.PlacesProvider, regionRepo repositories.RegionRepository, store cache.Store, cacheTTL time.Duration, logger *zap.Logger) (CandidateServiceInterface, error) {
	regions, err := regionRepo.LoadRegions(context.Background())
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, utils.ErrRegionsUnloaded
	}

	logger.Info("seeded regions loaded", zap.Int("count", len(regions)))

	return &CandidateService{
		places:   places,
		regions:  regions,
		cache:    store,
		cacheTTL: cacheTTL,
		logger:   logger,
	}, nil
}

// Resolve applies the routing policy in order: seeded region by proximity,
// then live provider, then nearest seeded region as a last resort. The
// second return value labels the source ("live" or "offline:<slug>").
func (s *CandidateService) Resolve(ctx context.Context, origin domain_models.Coordinate, radiusMeters int, categories []string) ([]domain_models.Candidate, string) {
	if region, km := s.nearestRegion(origin); region != nil && km <= region.ProximityKm {
		return regionCandidates(region, categories), "offline:" + region.Slug
	}

	if s.places != nil {
		if candidates, ok := s.liveSearch(ctx, origin, radiusMeters, categories); ok {
			return candidates, "live"
		}
	}

	region, _ := s.nearestRegion(origin)
	s.logger.Info("falling back to nearest seeded region", zap.String("region", region.Slug))
	return regionCandidates(region, categories), "offline:" + region.Slug
}

func (s *CandidateService) liveSearch(ctx context.Context, origin domain_models.Coordinate, radiusMeters int, categories []string) ([]domain_models.Candidate, bool) {
	key := candidateCacheKey(origin, radiusMeters, categories)
	if data, ok := s.cache.Get(ctx, key); ok {
		var cached []domain_models.Candidate
		if err := json.Unmarshal(data, &cached); err == nil && len(cached) > 0 {
			return cached, true
		}
	}

	found, err := s.places.Search(ctx, origin, radiusMeters, categories)
	if err != nil {
		s.logger.Warn("live place search failed", zap.Error(err))
		return nil, false
	}

	kept := found[:0]
	for _, c := range found {
		if isErrand(c) {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return nil, false
	}

	if data, err := json.Marshal(kept); err == nil {
		s.cache.Set(ctx, key, data, s.cacheTTL)
	}
	return kept, true
}

// nearestRegion returns the closest seeded region and its distance in km.
// Linear scan; the registry holds a handful of localities.
func (s *CandidateService) nearestRegion(origin domain_models.Coordinate) (*domain_models.Region, float64) {
	var best *domain_models.Region
	bestKm := 0.0
	for i := range s.regions {
		km := utils.HaversineKm(origin.Lat, origin.Lng, s.regions[i].Center.Lat, s.regions[i].Center.Lng)
		if best == nil || km < bestKm {
			best = &s.regions[i]
			bestKm = km
		}
	}
	return best, bestKm
}

// regionCandidates filters the curated set to the requested categories,
// falling back to the whole region when the filter would empty the result.
func regionCandidates(region *domain_models.Region, categories []string) []domain_models.Candidate {
	wanted := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		wanted[cat] = struct{}{}
	}

	var out []domain_models.Candidate
	for _, c := range region.Places {
		if _, ok := wanted[c.PrimaryCategory()]; ok {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		out = append(out, region.Places...)
	}
	return out
}

func isErrand(c domain_models.Candidate) bool {
	if _, ok := deniedCategories[c.PrimaryCategory()]; ok {
		return true
	}
	denied := 0
	for _, cat := range c.Categories {
		if _, ok := deniedCategories[cat]; ok {
			denied++
		}
	}
	return denied >= 3
}

func candidateCacheKey(origin domain_models.Coordinate, radiusMeters int, categories []string) string {
	sorted := make([]string, len(categories))
	copy(sorted, categories)
	sort.Strings(sorted)

	return fmt.Sprintf("candidates:%s,%s:%d:%s",
		utils.RoundCoord(origin.Lat, 3), utils.RoundCoord(origin.Lng, 3),
		radiusMeters, strings.Join(sorted, ","))
}
