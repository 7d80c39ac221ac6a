package aster

import (
	"trade_gateway/internal/modules/aster/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("aster",
		fx.Provide(
			service.NewClient,
		),
	)
}
