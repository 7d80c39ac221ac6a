package bootstrap

import (
	"context"

	"go.uber.org/fx"

	"trade_gateway/internal/metadata"
	"trade_gateway/internal/modules/bootstrap/service"
	healthservice "trade_gateway/internal/modules/health/service"
	"trade_gateway/internal/notify"

	asterservice "trade_gateway/internal/modules/aster/service"
	binanceservice "trade_gateway/internal/modules/binance/service"
	hlservice "trade_gateway/internal/modules/hyperliquid/service"
)

func Module() fx.Option {
	return fx.Module("bootstrap",
		fx.Provide(
			func(b *binanceservice.Client, a *asterservice.Client, h *hlservice.Client, n notify.Notifier) *service.Warmuper {
				return service.NewWarmuper(map[string]*metadata.Cache{
					b.Exchange(): b.Meta(),
					a.Exchange(): a.Meta(),
					h.Exchange(): h.Meta(),
				}, n)
			},
		),
		fx.Invoke(func(lc fx.Lifecycle, wu *service.Warmuper, state *healthservice.State) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						wu.Warmup(context.Background())
						state.SetReady(true)
					}()
					return nil
				},
			})
		}),
	)
}
