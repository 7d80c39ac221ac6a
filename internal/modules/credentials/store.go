package credentials

import (
	"trade_gateway/internal/modules/config"
)

// Credentials — секреты одной биржи. Заполняются один раз на старте и
// дальше только читаются; разные схемы используют разные подмножества.
// Отсутствие нужного поля — ошибка конфигурации в момент первой
// подписи, а не на старте.
type Credentials struct {
	APIKey        string
	APISecret     string
	WalletAddress string
	SignerAddress string
	PrivateKey    string
	VaultAddress  string
}

type Store struct {
	byExchange map[string]Credentials
}

func NewStore(cfg *config.Config) *Store {
	fromCfg := func(ec config.ExchangeConfig) Credentials {
		return Credentials{
			APIKey:        ec.APIKey,
			APISecret:     ec.APISecret,
			WalletAddress: ec.WalletAddress,
			SignerAddress: ec.SignerAddress,
			PrivateKey:    ec.PrivateKey,
			VaultAddress:  ec.VaultAddress,
		}
	}
	return &Store{
		byExchange: map[string]Credentials{
			"binance":     fromCfg(cfg.Binance),
			"aster":       fromCfg(cfg.Aster),
			"hyperliquid": fromCfg(cfg.Hyperliquid),
		},
	}
}

func (s *Store) Get(exchange string) Credentials {
	return s.byExchange[exchange]
}

// Describe отдаёт наличие полей булевыми флагами. Значения секретов
// отсюда не утекают никогда.
func (s *Store) Describe() map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(s.byExchange))
	for name, c := range s.byExchange {
		out[name] = map[string]bool{
			"apiKey":        c.APIKey != "",
			"apiSecret":     c.APISecret != "",
			"walletAddress": c.WalletAddress != "",
			"signerAddress": c.SignerAddress != "",
			"privateKey":    c.PrivateKey != "",
		}
	}
	return out
}
