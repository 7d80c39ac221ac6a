package notify

import (
	"go.uber.org/fx"

	"trade_gateway/internal/modules/config"
	"trade_gateway/pkg/logger"
)

func Module() fx.Option {
	return fx.Module("notify",
		fx.Provide(
			func(cfg *config.Config) Notifier {
				if cfg.Telegram.Token == "" {
					return NewStdout()
				}
				t, err := NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
				if err != nil {
					logger.Error("telegram notifier: %v, падаю на stdout", err)
					return NewStdout()
				}
				return t
			},
		),
	)
}
