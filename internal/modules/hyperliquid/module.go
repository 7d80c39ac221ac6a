package hyperliquid

import (
	"trade_gateway/internal/modules/hyperliquid/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("hyperliquid",
		fx.Provide(
			service.NewClient,
		),
	)
}
