package models

// Канонические типы, в которые мапятся нативные ответы всех бирж.
// Клиенты бирж не должны отдавать наружу свои wire-структуры.

const (
	SideBuy  = "BUY"
	SideSell = "SELL"

	PositionLong  = "LONG"
	PositionShort = "SHORT"

	OrderTypeMarket     = "MARKET"
	OrderTypeLimit      = "LIMIT"
	OrderTypeStopMarket = "STOP_MARKET"
	OrderTypeTakeProfit = "TAKE_PROFIT_MARKET"
)

type Order struct {
	OrderID       string  `json:"orderId"`
	ClientOrderID string  `json:"clientOrderId,omitempty"`
	Symbol        string  `json:"symbol"`
	Side          string  `json:"side"`
	Type          string  `json:"type"`
	Status        string  `json:"status"`
	Price         float64 `json:"price"`
	Quantity      float64 `json:"quantity"`
	// Сразу после постановки биржа может не отдать executedQty —
	// тогда сюда кладётся origQty.
	ExecutedQuantity float64 `json:"executedQuantity"`
	Timestamp        int64   `json:"timestamp"`
}

type Position struct {
	Symbol           string  `json:"symbol"`
	Side             string  `json:"side"` // LONG / SHORT, от знака size
	Size             float64 `json:"size"`
	EntryPrice       float64 `json:"entryPrice"`
	MarkPrice        float64 `json:"markPrice,omitempty"`
	LiquidationPrice float64 `json:"liquidationPrice,omitempty"`
	UnrealizedPnl    float64 `json:"unrealizedPnl"`
	Leverage         int     `json:"leverage,omitempty"`
}

type Balance struct {
	Asset     string  `json:"asset"`
	Total     float64 `json:"total"`
	Available float64 `json:"available"`
}

// OrderRequest — запрос основного ордера (количество уже отформатировано
// под точность инструмента, см. metadata.Cache).
type OrderRequest struct {
	Symbol        string
	Side          string
	Type          string
	Quantity      string
	Price         string // пусто для market
	ReduceOnly    bool
	ClientOrderID string
}

// ConditionalRequest — стоп или тейк. ClosePosition=true означает
// "закрыть всю позицию по триггеру", без фиксированного количества.
type ConditionalRequest struct {
	Symbol        string
	Side          string
	Type          string // STOP_MARKET / TAKE_PROFIT_MARKET
	TriggerPrice  string
	ClosePosition bool
}

type QuickTradeRequest struct {
	Symbol         string  `json:"symbol"`
	UsdNotional    float64 `json:"usdNotional"`
	Leverage       int     `json:"leverage"`
	StopLossPct    float64 `json:"stopLossPct"`
	TakeProfitPct  float64 `json:"takeProfitPct"`
}

// QuickTradeResult — составной результат quick-trade. Защитные ноги
// best-effort: их отсутствие при заполненном MainOrder — это валидный
// успешный ответ, а не ошибка.
type QuickTradeResult struct {
	MainOrder       Order  `json:"mainOrder"`
	StopLoss        *Order `json:"stopLoss,omitempty"`
	TakeProfit      *Order `json:"takeProfit,omitempty"`
	StopLossError   string `json:"stopLossError,omitempty"`
	TakeProfitError string `json:"takeProfitError,omitempty"`
}

// Protected — обе защитные ноги стоят.
func (r *QuickTradeResult) Protected() bool {
	return r.StopLoss != nil && r.TakeProfit != nil
}
