package orchestrator

import (
	"context"

	"trade_gateway/internal/metadata"
	"trade_gateway/internal/models"
)

// OrderClient — то, что оркестратор требует от клиента биржи.
// Все три клиента (binance, aster, hyperliquid) реализуют его целиком.
type OrderClient interface {
	Exchange() string
	Meta() *metadata.Cache

	SetLeverage(ctx context.Context, symbol string, leverage int) error
	LastPrice(ctx context.Context, symbol string) (float64, error)
	PlaceMarket(ctx context.Context, req models.OrderRequest) (models.Order, error)
	PlaceLimit(ctx context.Context, req models.OrderRequest) (models.Order, error)
	PlaceStop(ctx context.Context, req models.ConditionalRequest) (models.Order, error)
	CancelAllOrders(ctx context.Context, symbol string) error
	Positions(ctx context.Context, symbol string) ([]models.Position, error)
	Balances(ctx context.Context) ([]models.Balance, error)
}
