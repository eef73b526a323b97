package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roam/internal/models/domain_models"
)

type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt int64     `gorm:"autoCreateTime"`
	UpdatedAt int64     `gorm:"autoUpdateTime"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	now := time.Now().Unix()
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// SeededRegion is one named locality with a curated offline dataset.
type SeededRegion struct {
	BaseModel
	Slug        string `gorm:"uniqueIndex"`
	Name        string
	CenterLat   float64
	CenterLng   float64
	ProximityKm float64
	Version     int

	Places []CuratedPlace `gorm:"foreignKey:RegionID"`
}

// CuratedPlace carries the enrichment fields the live provider cannot
// supply: curated mood tags, solo-friendliness, noise level, budget band,
// late-hours flag.
type CuratedPlace struct {
	BaseModel
	RegionID uuid.UUID `gorm:"index"`

	PlaceKey    string
	Name        string
	Latitude    float64
	Longitude   float64
	Category    string
	MoodTags    []string `gorm:"serializer:json"`
	Rating      float64
	RatingCount int
	PriceTier   int
	Address     string
	PhotoRef    string

	SoloFriendly bool
	NoiseLevel   string
	BudgetBand   string
	LateHours    bool
}

func (r SeededRegion) ToDomain() domain_models.Region {
	region := domain_models.Region{
		Slug:        r.Slug,
		Name:        r.Name,
		Center:      domain_models.Coordinate{Lat: r.CenterLat, Lng: r.CenterLng},
		ProximityKm: r.ProximityKm,
		Version:     r.Version,
		Places:      make([]domain_models.Candidate, 0, len(r.Places)),
	}
	for _, p := range r.Places {
		region.Places = append(region.Places, p.ToCandidate())
	}
	return region
}

func (p CuratedPlace) ToCandidate() domain_models.Candidate {
	return domain_models.Candidate{
		ID:           p.PlaceKey,
		Name:         p.Name,
		Categories:   []string{p.Category},
		Location:     domain_models.Coordinate{Lat: p.Latitude, Lng: p.Longitude},
		Rating:       p.Rating,
		RatingCount:  p.RatingCount,
		PriceTier:    p.PriceTier,
		Address:      p.Address,
		PhotoRef:     p.PhotoRef,
		MoodTags:     p.MoodTags,
		SoloFriendly: p.SoloFriendly,
		NoiseLevel:   p.NoiseLevel,
		BudgetBand:   p.BudgetBand,
		LateHours:    p.LateHours,
	}
}
