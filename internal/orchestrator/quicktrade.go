package orchestrator

import (
	"context"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"

	"trade_gateway/internal/models"
	"trade_gateway/pkg/logger"
)

// QuickLong: плечо → цена → количество → маркет → best-effort SL/TP.
// Ошибка любой защитной ноги не валит сделку: позиция уже открыта,
// результат возвращается с заполненными полями ошибок.
func (o *Orchestrator) QuickLong(ctx context.Context, req models.QuickTradeRequest) (*models.QuickTradeResult, error) {
	return o.quickTrade(ctx, req, true)
}

func (o *Orchestrator) QuickShort(ctx context.Context, req models.QuickTradeRequest) (*models.QuickTradeResult, error) {
	return o.quickTrade(ctx, req, false)
}

func (o *Orchestrator) quickTrade(ctx context.Context, req models.QuickTradeRequest, long bool) (*models.QuickTradeResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "orchestrator.quickTrade")
	span.SetTag("exchange", o.client.Exchange())
	span.SetTag("symbol", req.Symbol)
	defer span.Finish()

	if req.Leverage <= 0 {
		return nil, models.DomainError("orchestrator.quickTrade", "leverage must be positive, got %d", req.Leverage)
	}
	if req.UsdNotional <= 0 {
		return nil, models.DomainError("orchestrator.quickTrade", "notional must be positive, got %f", req.UsdNotional)
	}

	if err := o.client.SetLeverage(ctx, req.Symbol, req.Leverage); err != nil {
		return nil, err
	}

	price, err := o.client.LastPrice(ctx, req.Symbol)
	if err != nil {
		return nil, err
	}
	if price <= 0 || math.IsNaN(price) {
		return nil, models.DomainError("orchestrator.quickTrade", "no valid price for %s", req.Symbol)
	}

	rawQty := req.UsdNotional * float64(req.Leverage) / price
	qtyWire := o.client.Meta().FormatQuantity(req.Symbol, rawQty)
	qty, err := strconv.ParseFloat(qtyWire, 64)
	if err != nil || qty <= 0 || math.IsNaN(qty) {
		return nil, models.DomainError("orchestrator.quickTrade",
			"quantity %s rounds to zero at %f for %s", qtyWire, price, req.Symbol)
	}

	side := models.SideBuy
	if !long {
		side = models.SideSell
	}

	main, err := o.client.PlaceMarket(ctx, models.OrderRequest{
		Symbol:        req.Symbol,
		Side:          side,
		Type:          models.OrderTypeMarket,
		Quantity:      qtyWire,
		ClientOrderID: "qt-" + uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	result := &models.QuickTradeResult{MainOrder: main}
	o.placeProtection(ctx, req, price, long, result)

	if result.StopLossError != "" || result.TakeProfitError != "" {
		logger.Error("quickTrade %s %s: позиция не полностью защищена (sl=%q tp=%q)",
			o.client.Exchange(), req.Symbol, result.StopLossError, result.TakeProfitError)
		o.notifier.Sendf("⚠️ %s %s: позиция открыта, но защита встала не полностью\nSL: %s\nTP: %s",
			o.client.Exchange(), req.Symbol,
			legStatus(result.StopLoss, result.StopLossError),
			legStatus(result.TakeProfit, result.TakeProfitError))
	}
	return result, nil
}

// placeProtection ставит стоп и тейк closePosition-семантики. Каждая нога
// независима, её ошибка пишется в результат.
func (o *Orchestrator) placeProtection(ctx context.Context, req models.QuickTradeRequest, entry float64, long bool, result *models.QuickTradeResult) {
	closeSide := models.SideSell
	if !long {
		closeSide = models.SideBuy
	}

	slPrice := entry * (1 - req.StopLossPct/100)
	tpPrice := entry * (1 + req.TakeProfitPct/100)
	if !long {
		slPrice = entry * (1 + req.StopLossPct/100)
		tpPrice = entry * (1 - req.TakeProfitPct/100)
	}

	if req.StopLossPct > 0 {
		sl, err := o.client.PlaceStop(ctx, models.ConditionalRequest{
			Symbol:        req.Symbol,
			Side:          closeSide,
			Type:          models.OrderTypeStopMarket,
			TriggerPrice:  o.client.Meta().FormatPrice(req.Symbol, slPrice),
			ClosePosition: true,
		})
		if err != nil {
			result.StopLossError = err.Error()
		} else {
			result.StopLoss = &sl
		}
	}

	if req.TakeProfitPct > 0 {
		tp, err := o.client.PlaceStop(ctx, models.ConditionalRequest{
			Symbol:        req.Symbol,
			Side:          closeSide,
			Type:          models.OrderTypeTakeProfit,
			TriggerPrice:  o.client.Meta().FormatPrice(req.Symbol, tpPrice),
			ClosePosition: true,
		})
		if err != nil {
			result.TakeProfitError = err.Error()
		} else {
			result.TakeProfit = &tp
		}
	}
}

func legStatus(o *models.Order, errMsg string) string {
	if o != nil {
		return "ok #" + o.OrderID
	}
	if errMsg == "" {
		return "не запрошен"
	}
	return errMsg
}
