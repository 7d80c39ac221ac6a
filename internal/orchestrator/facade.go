package orchestrator

import (
	"context"

	"trade_gateway/internal/models"
)

// Facade — типизированный контракт для внешнего слоя (REST и т.п.):
// каждая операция возвращает конверт {success,data,error,timestamp},
// ошибки не пробрасываются паникой или голым error.
type Facade struct {
	reg Registry
}

func NewFacade(reg Registry) *Facade { return &Facade{reg: reg} }

func (f *Facade) call(exchange string, fn func(o *Orchestrator) (any, error)) models.Response {
	o, err := f.reg.Get(exchange)
	if err != nil {
		return models.Fail(err)
	}
	data, err := fn(o)
	if err != nil {
		return models.Fail(err)
	}
	return models.OK(data)
}

func (f *Facade) QuickLong(ctx context.Context, exchange string, req models.QuickTradeRequest) models.Response {
	return f.call(exchange, func(o *Orchestrator) (any, error) {
		return o.QuickLong(ctx, req)
	})
}

func (f *Facade) QuickShort(ctx context.Context, exchange string, req models.QuickTradeRequest) models.Response {
	return f.call(exchange, func(o *Orchestrator) (any, error) {
		return o.QuickShort(ctx, req)
	})
}

func (f *Facade) PlaceOrder(ctx context.Context, exchange string, req models.OrderRequest) models.Response {
	return f.call(exchange, func(o *Orchestrator) (any, error) {
		return o.PlaceOrder(ctx, req)
	})
}

func (f *Facade) ClosePosition(ctx context.Context, exchange, symbol string) models.Response {
	return f.call(exchange, func(o *Orchestrator) (any, error) {
		return o.ClosePosition(ctx, symbol)
	})
}

func (f *Facade) SetLeverage(ctx context.Context, exchange, symbol string, leverage int) models.Response {
	return f.call(exchange, func(o *Orchestrator) (any, error) {
		return nil, o.SetLeverage(ctx, symbol, leverage)
	})
}

func (f *Facade) Positions(ctx context.Context, exchange, symbol string) models.Response {
	return f.call(exchange, func(o *Orchestrator) (any, error) {
		return o.Positions(ctx, symbol)
	})
}

func (f *Facade) Balances(ctx context.Context, exchange string) models.Response {
	return f.call(exchange, func(o *Orchestrator) (any, error) {
		return o.Balances(ctx)
	})
}
