package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"trade_gateway/internal/modules/aster"
	"trade_gateway/internal/modules/binance"
	"trade_gateway/internal/modules/bootstrap"
	"trade_gateway/internal/modules/config"
	"trade_gateway/internal/modules/credentials"
	"trade_gateway/internal/modules/health"
	"trade_gateway/internal/modules/hyperliquid"
	"trade_gateway/internal/modules/market_stream"
	"trade_gateway/internal/notify"
	"trade_gateway/internal/orchestrator"
	"trade_gateway/pkg/logger"
	"trade_gateway/pkg/tracing"
)

func main() {
	logger.SetServiceName("trade_gateway")
	tracing.SetServiceName("trade_gateway")

	app := fx.New(
		fx.Provide(
			func() context.Context {
				return context.Background()
			},
		),
		config.Module(),
		credentials.Module(),
		notify.Module(),
		binance.Module(),
		aster.Module(),
		hyperliquid.Module(),
		orchestrator.Module(),
		health.Module(),
		bootstrap.Module(),
		market_stream.Module(),
		fx.Invoke(func(lc fx.Lifecycle, cfg *config.Config) {
			if cfg.Jaeger.Host == "" {
				return
			}
			_, closeTracer, err := tracing.InitTracer(tracing.Config{
				Host: cfg.Jaeger.Host,
				Port: cfg.Jaeger.Port,
			})
			if err != nil {
				logger.Error("jaeger: %v", err)
				return
			}
			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					closeTracer()
					return nil
				},
			})
		}),
		fx.Invoke(func(*orchestrator.Facade) {}),
	)
	if err := app.Start(context.Background()); err != nil {
		log.Fatal(err)
	}
	<-app.Done()
	if err := app.Stop(context.Background()); err != nil {
		log.Fatal(err)
	}
}
