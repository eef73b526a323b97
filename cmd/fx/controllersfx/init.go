package controllersfx

import (
	"go.uber.org/fx"

	"roam/internal/api/controllers"
	"roam/internal/services"
)

var Module = fx.Provide(
	provideSuggestController,
	provideFeedbackController,
	provideHealthController,
)

func provideSuggestController(suggestService services.SuggestServiceInterface) *controllers.SuggestController {
	return controllers.NewSuggestController(suggestService)
}

func provideFeedbackController(suggestService services.SuggestServiceInterface) *controllers.FeedbackController {
	return controllers.NewFeedbackController(suggestService)
}

func provideHealthController() *controllers.HealthController {
	return controllers.NewHealthController()
}
