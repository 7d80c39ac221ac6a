package service

import (
	"sort"
	"strconv"

	"trade_gateway/internal/models"
)

// sortedPairs — стабильный порядок параметров на проводе (map в Go
// порядок не гарантирует).
func sortedPairs(m map[string]string) [][2]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, m[k]})
	}
	return out
}

type orderResponse struct {
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	Type          string `json:"type"`
	Status        string `json:"status"`
	Price         string `json:"price"`
	AvgPrice      string `json:"avgPrice"`
	OrigQty       string `json:"origQty"`
	ExecutedQty   string `json:"executedQty"`
	UpdateTime    int64  `json:"updateTime"`
}

type positionRisk struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"`
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	LiquidationPrice string `json:"liquidationPrice"`
	UnRealizedProfit string `json:"unRealizedProfit"`
	Leverage         string `json:"leverage"`
}

func f(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func mapOrder(o orderResponse) models.Order {
	price := f(o.Price)
	if price == 0 {
		price = f(o.AvgPrice)
	}
	executed := f(o.ExecutedQty)
	if o.ExecutedQty == "" {
		executed = f(o.OrigQty)
	}
	return models.Order{
		OrderID:          strconv.FormatInt(o.OrderID, 10),
		ClientOrderID:    o.ClientOrderID,
		Symbol:           o.Symbol,
		Side:             o.Side,
		Type:             o.Type,
		Status:           o.Status,
		Price:            price,
		Quantity:         f(o.OrigQty),
		ExecutedQuantity: executed,
		Timestamp:        o.UpdateTime,
	}
}

func mapPosition(p positionRisk) (models.Position, bool) {
	size := f(p.PositionAmt)
	if size == 0 {
		return models.Position{}, false
	}
	side := models.PositionLong
	if size < 0 {
		side = models.PositionShort
	}
	lev, _ := strconv.Atoi(p.Leverage)
	return models.Position{
		Symbol:           p.Symbol,
		Side:             side,
		Size:             size,
		EntryPrice:       f(p.EntryPrice),
		MarkPrice:        f(p.MarkPrice),
		LiquidationPrice: f(p.LiquidationPrice),
		UnrealizedPnl:    f(p.UnRealizedProfit),
		Leverage:         lev,
	}, true
}
