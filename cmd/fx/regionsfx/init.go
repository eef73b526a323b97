package regionsfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"roam/internal/infra"
	"roam/internal/repositories"
)

var Module = fx.Provide(provideRegionRepository)

// provideRegionRepository serves the seeded-region dataset from Postgres
// when configured and from the embedded JSON snapshot otherwise.
func provideRegionRepository(cfg infra.Config, logger *zap.Logger) repositories.RegionRepository {
	if cfg.PostgresURL != "" {
		db, err := infra.InitPostgresql(cfg.PostgresURL)
		if err == nil {
			return repositories.NewRegionRepository(db)
		}
		logger.Warn("postgres unavailable, using embedded region dataset", zap.Error(err))
	}
	return repositories.NewEmbeddedRegionRepository()
}
