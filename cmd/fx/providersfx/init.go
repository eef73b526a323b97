package providersfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"roam/internal/infra"
	"roam/internal/providers"
	"roam/pkg/breaker"
)

var Module = fx.Provide(
	providePlacesProvider,
	provideRoutingProvider,
	provideWeatherProvider,
	provideMLScorer,
	provideBreaker,
)

// Unconfigured providers are wired as nil; every consumer treats a nil
// provider as "degrade to the offline/heuristic/local path".

func providePlacesProvider(cfg infra.Config, logger *zap.Logger) providers.PlacesProvider {
	if cfg.PlacesAPIKey == "" {
		logger.Info("PLACES_API_KEY not set, serving offline dataset only")
		return nil
	}
	return providers.NewGooglePlacesClient(cfg.PlacesAPIKey, cfg.PlacesBaseURL, cfg.PlacesTimeout, logger)
}

func provideRoutingProvider(cfg infra.Config, logger *zap.Logger) providers.RoutingProvider {
	if cfg.MapboxToken == "" {
		logger.Info("MAPBOX_ACCESS_TOKEN not set, travel times stay heuristic")
		return nil
	}
	return providers.NewMapboxRoutingClient(cfg.MapboxToken, cfg.MapboxBaseURL, cfg.RoutingTimeout)
}

func provideWeatherProvider(cfg infra.Config) providers.WeatherProvider {
	return providers.NewOpenMeteoClient(cfg.WeatherBaseURL, cfg.WeatherTimeout)
}

func provideMLScorer(cfg infra.Config, logger *zap.Logger) providers.MLScorer {
	if cfg.MLBaseURL == "" {
		logger.Info("ML_BASE_URL not set, scoring stays local")
		return nil
	}
	return providers.NewMLServiceClient(cfg.MLBaseURL, cfg.MLTimeout)
}

func provideBreaker(cfg infra.Config) *breaker.Breaker {
	return breaker.New(cfg.BreakerThreshold, cfg.BreakerCooldown, nil)
}
