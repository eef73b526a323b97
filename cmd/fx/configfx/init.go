package configfx

import (
	"go.uber.org/fx"

	"roam/internal/infra"
)

var Module = fx.Provide(provideConfig)

func provideConfig() infra.Config {
	return infra.LoadConfig()
}
