package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"roam/cmd/fx/cachefx"
	"roam/cmd/fx/configfx"
	"roam/cmd/fx/controllersfx"
	"roam/cmd/fx/providersfx"
	"roam/cmd/fx/regionsfx"
	"roam/cmd/fx/suggestfx"
	"roam/internal/api/controllers"
	"roam/internal/infra"
	"roam/pkg/middleware"
)

func main() {
	app := fx.New(
		fx.Provide(ProvideLogger),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),

		configfx.Module,
		cachefx.Module,
		regionsfx.Module,
		providersfx.Module,
		suggestfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ProvideLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg infra.Config, logger *zap.Logger) {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("port", cfg.Port))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	suggestController *controllers.SuggestController,
	feedbackController *controllers.FeedbackController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, suggestController, feedbackController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	suggestController *controllers.SuggestController,
	feedbackController *controllers.FeedbackController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.Health)
	r.POST("/suggestions", suggestController.CreateSuggestions)
	r.POST("/feedback", feedbackController.SubmitFeedback)
}
