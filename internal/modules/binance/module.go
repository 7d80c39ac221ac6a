package binance

import (
	"trade_gateway/internal/modules/binance/service"

	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module("binance",
		fx.Provide(
			service.NewClient,
		),
	)
}
