package orchestrator

import (
	"go.uber.org/fx"

	"trade_gateway/internal/notify"

	asterservice "trade_gateway/internal/modules/aster/service"
	binanceservice "trade_gateway/internal/modules/binance/service"
	hlservice "trade_gateway/internal/modules/hyperliquid/service"
)

func Module() fx.Option {
	return fx.Module("orchestrator",
		fx.Provide(
			func(b *binanceservice.Client, a *asterservice.Client, h *hlservice.Client, n notify.Notifier) Registry {
				return NewRegistry([]OrderClient{b, a, h}, n)
			},
			NewFacade,
		),
	)
}
