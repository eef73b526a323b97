package repositories

import (
	"context"
	"log"

	"gorm.io/gorm"

	"roam/internal/models/db_models"
	"roam/internal/models/domain_models"
	"roam/pkg/utils"
)

// RegionRepository loads the seeded-region dataset. The registry is
// data-driven: region names, centers and proximity thresholds all come from
// the dataset, never from code.
type RegionRepository interface {
	LoadRegions(ctx context.Context) ([]domain_models.Region, error)
}

type regionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) RegionRepository {
	return &regionRepository{db: db}
}

func (r *regionRepository) LoadRegions(ctx context.Context) ([]domain_models.Region, error) {
	var rows []db_models.SeededRegion
	if err := r.db.WithContext(ctx).Preload("Places").Find(&rows).Error; err != nil {
		log.Printf("Error loading seeded regions: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]domain_models.Region, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToDomain())
	}
	return out, nil
}
