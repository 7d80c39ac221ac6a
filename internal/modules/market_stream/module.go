package market_stream

import (
	"context"

	"go.uber.org/fx"

	"trade_gateway/internal/modules/market_stream/service"
)

func Module() fx.Option {
	return fx.Module("market_stream",
		fx.Provide(
			service.NewStream,
		),
		fx.Invoke(func(lc fx.Lifecycle, s *service.Stream) {
			ctx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go s.Run(ctx)
					return nil
				},
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	)
}
