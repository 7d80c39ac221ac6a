package orchestrator

import (
	"context"

	"trade_gateway/internal/models"
	"trade_gateway/internal/notify"
)

type Orchestrator struct {
	client   OrderClient
	notifier notify.Notifier
}

func New(client OrderClient, notifier notify.Notifier) *Orchestrator {
	return &Orchestrator{client: client, notifier: notifier}
}

func (o *Orchestrator) Exchange() string { return o.client.Exchange() }

func (o *Orchestrator) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	return o.client.SetLeverage(ctx, symbol, leverage)
}

// PlaceOrder маршрутизирует одиночный ордер по типу: пустой тип
// трактуем как market, чтобы старые вызовы не ломались.
func (o *Orchestrator) PlaceOrder(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	switch req.Type {
	case "", models.OrderTypeMarket:
		return o.client.PlaceMarket(ctx, req)
	case models.OrderTypeLimit:
		if req.Price == "" {
			return models.Order{}, models.DomainError("orchestrator.order", "limit order requires price")
		}
		return o.client.PlaceLimit(ctx, req)
	default:
		return models.Order{}, models.DomainError("orchestrator.order", "unsupported order type %s", req.Type)
	}
}

func (o *Orchestrator) Positions(ctx context.Context, symbol string) ([]models.Position, error) {
	return o.client.Positions(ctx, symbol)
}

func (o *Orchestrator) Balances(ctx context.Context) ([]models.Balance, error) {
	return o.client.Balances(ctx)
}

// Registry — оркестратор на биржу, ключ — имя биржи.
type Registry map[string]*Orchestrator

func NewRegistry(clients []OrderClient, notifier notify.Notifier) Registry {
	r := make(Registry, len(clients))
	for _, c := range clients {
		r[c.Exchange()] = New(c, notifier)
	}
	return r
}

func (r Registry) Get(exchange string) (*Orchestrator, error) {
	o, ok := r[exchange]
	if !ok {
		return nil, models.DomainError("orchestrator.get", "unknown exchange %s", exchange)
	}
	return o, nil
}
