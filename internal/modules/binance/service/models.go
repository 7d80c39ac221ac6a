package service

import (
	"strconv"

	"trade_gateway/internal/models"
)

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

type exchangeInfo struct {
	Symbols []struct {
		Symbol            string `json:"symbol"`
		Status            string `json:"status"`
		PricePrecision    int32  `json:"pricePrecision"`
		QuantityPrecision int32  `json:"quantityPrecision"`
	} `json:"symbols"`
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
	// сразу после постановки executedQty может отсутствовать
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
