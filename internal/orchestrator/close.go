package orchestrator

import (
	"context"
	"math"

	"github.com/opentracing/opentracing-go"

	"trade_gateway/internal/models"
	"trade_gateway/pkg/logger"
)

// ClosePosition: снять висящие ордера (best-effort), перечитать позицию
// и закрыть её reduce-only маркетом. Неудачный cancel не прерывает
// закрытие — иначе позиция осталась бы висеть из-за осиротевшего стопа.
func (o *Orchestrator) ClosePosition(ctx context.Context, symbol string) (*models.Order, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "orchestrator.closePosition")
	span.SetTag("exchange", o.client.Exchange())
	span.SetTag("symbol", symbol)
	defer span.Finish()

	if err := o.client.CancelAllOrders(ctx, symbol); err != nil {
		logger.Error("closePosition %s %s: cancel-all не прошёл: %v", o.client.Exchange(), symbol, err)
		o.notifier.Sendf("⚠️ %s %s: не удалось снять ордера перед закрытием: %v",
			o.client.Exchange(), symbol, err)
	}

	positions, err := o.client.Positions(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var pos *models.Position
	for i := range positions {
		if positions[i].Symbol == symbol && positions[i].Size != 0 {
			pos = &positions[i]
			break
		}
	}
	if pos == nil {
		return nil, models.DomainError("orchestrator.closePosition", "no open position for %s", symbol)
	}

	side := models.SideSell
	if pos.Side == models.PositionShort {
		side = models.SideBuy
	}
	qtyWire := o.client.Meta().FormatQuantity(symbol, math.Abs(pos.Size))

	order, err := o.client.PlaceMarket(ctx, models.OrderRequest{
		Symbol:     symbol,
		Side:       side,
		Type:       models.OrderTypeMarket,
		Quantity:   qtyWire,
		ReduceOnly: true,
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
