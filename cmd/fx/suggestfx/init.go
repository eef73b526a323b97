package suggestfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"roam/internal/infra"
	"roam/internal/providers"
	"roam/internal/repositories"
	"roam/internal/services"
	"roam/pkg/breaker"
	"roam/pkg/cache"
)

var Module = fx.Provide(
	provideVibeService,
	provideFitService,
	provideTravelService,
	provideCandidateService,
	provideScoringService,
	provideSuggestService,
)

func provideVibeService() services.VibeServiceInterface {
	return services.NewVibeService()
}

func provideFitService() services.FitServiceInterface {
	return services.NewFitService()
}

func provideTravelService(cfg infra.Config, routing providers.RoutingProvider, store cache.Store, logger *zap.Logger) services.TravelServiceInterface {
	return services.NewTravelService(routing, store, cfg.TravelTTL, logger)
}

func provideCandidateService(cfg infra.Config, places providers.PlacesProvider, regionRepo repositories.RegionRepository, store cache.Store, logger *zap.Logger) (services.CandidateServiceInterface, error) {
	return services.NewCandidateService(places, regionRepo, store, cfg.CandidateTTL, logger)
}

func provideScoringService(vibes services.VibeServiceInterface, scorer providers.MLScorer, brk *breaker.Breaker, logger *zap.Logger) services.ScoringServiceInterface {
	return services.NewScoringService(vibes, scorer, brk, logger)
}

func provideSuggestService(
	cfg infra.Config,
	vibes services.VibeServiceInterface,
	candidates services.CandidateServiceInterface,
	travel services.TravelServiceInterface,
	fit services.FitServiceInterface,
	scoring services.ScoringServiceInterface,
	weather providers.WeatherProvider,
	mlClient providers.MLScorer,
	logger *zap.Logger,
) services.SuggestServiceInterface {
	return services.NewSuggestService(vibes, candidates, travel, fit, scoring, weather, mlClient, cfg.ShortlistSize, cfg.MaxResults, logger)
}
