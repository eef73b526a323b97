package repositories

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"roam/internal/models/domain_models"
)

//go:embed seeds/*.json
var seedFS embed.FS

type seedPlace struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Category     string   `json:"category"`
	MoodTags     []string `json:"mood_tags"`
	Rating       float64  `json:"rating"`
	RatingCount  int      `json:"rating_count"`
	PriceTier    int      `json:"price_tier"`
	Address      string   `json:"address"`
	SoloFriendly bool     `json:"solo_friendly"`
	NoiseLevel   string   `json:"noise_level"`
	BudgetBand   string   `json:"budget_band"`
	LateHours    bool     `json:"late_hours"`
}

type seedRegion struct {
	Version     int     `json:"version"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	ProximityKm float64 `json:"proximity_km"`
	Center      struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"center"`
	Places []seedPlace `json:"places"`
}

// EmbeddedRegionRepository serves the curated dataset shipped with the
// binary. It is the default source when no database is configured and the
// one tests run against.
type EmbeddedRegionRepository struct{}

func NewEmbeddedRegionRepository() RegionRepository {
	return &EmbeddedRegionRepository{}
}

func (e *EmbeddedRegionRepository) LoadRegions(_ context.Context) ([]domain_models.Region, error) {
	entries, err := fs.Glob(seedFS, "seeds/*.json")
	if err != nil {
		return nil, fmt.Errorf("glob seed files: %w", err)
	}

	out := make([]domain_models.Region, 0, len(entries))
	for _, path := range entries {
		data, err := seedFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}

		var seed seedRegion
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("parse seed %s: %w", path, err)
		}

		region := domain_models.Region{
			Slug:        seed.Slug,
			Name:        seed.Name,
			Center:      domain_models.Coordinate{Lat: seed.Center.Lat, Lng: seed.Center.Lng},
			ProximityKm: seed.ProximityKm,
			Version:     seed.Version,
			Places:      make([]domain_models.Candidate, 0, len(seed.Places)),
		}
		for _, p := range seed.Places {
			region.Places = append(region.Places, domain_models.Candidate{
				ID:           p.ID,
				Name:         p.Name,
				Categories:   []string{p.Category},
				Location:     domain_models.Coordinate{Lat: p.Lat, Lng: p.Lng},
				Rating:       p.Rating,
				RatingCount:  p.RatingCount,
				PriceTier:    p.PriceTier,
				Address:      p.Address,
				MoodTags:     p.MoodTags,
				SoloFriendly: p.SoloFriendly,
				NoiseLevel:   p.NoiseLevel,
				BudgetBand:   p.BudgetBand,
				LateHours:    p.LateHours,
			})
		}
		out = append(out, region)
	}
	return out, nil
}
