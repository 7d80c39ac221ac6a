package service

import (
	"context"
	"net/http"

	"trade_gateway/internal/models"
)

func (c *Client) PlaceMarket(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	business := map[string]string{
		"symbol":   req.Symbol,
		"side":     req.Side,
		"type":     models.OrderTypeMarket,
		"quantity": req.Quantity,
	}
	if req.ReduceOnly {
		business["reduceOnly"] = "true"
	}
	if req.ClientOrderID != "" {
		business["newClientOrderId"] = req.ClientOrderID
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/fapi/v3/order", business, &resp); err != nil {
		return models.Order{}, err
	}
	return mapOrder(resp), nil
}

func (c *Client) PlaceLimit(ctx context.Context, req models.OrderRequest) (models.Order, error) {
	business := map[string]string{
		"symbol":      req.Symbol,
		"side":        req.Side,
		"type":        models.OrderTypeLimit,
		"timeInForce": "GTC",
		"quantity":    req.Quantity,
		"price":       req.Price,
	}
	if req.ReduceOnly {
		business["reduceOnly"] = "true"
	}
	if req.ClientOrderID != "" {
		business["newClientOrderId"] = req.ClientOrderID
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/fapi/v3/order", business, &resp); err != nil {
		return models.Order{}, err
	}
	return mapOrder(resp), nil
}

func (c *Client) PlaceStop(ctx context.Context, req models.ConditionalRequest) (models.Order, error) {
	business := map[string]string{
		"symbol":    req.Symbol,
		"side":      req.Side,
		"type":      req.Type,
		"stopPrice": req.TriggerPrice,
	}
	if req.ClosePosition {
		business["closePosition"] = "true"
	}

	var resp orderResponse
	if err := c.do(ctx, http.MethodPost, "/fapi/v3/order", business, &resp); err != nil {
		return models.Order{}, err
	}
	return mapOrder(resp), nil
}

func (c *Client) CancelAllOrders(ctx context.Context, symbol string) error {
	return c.do(ctx, http.MethodDelete, "/fapi/v3/allOpenOrders", map[string]string{"symbol": symbol}, nil)
}

func (c *Client) CancelOrder(ctx context.Context, symbol, orderID string) error {
	return c.do(ctx, http.MethodDelete, "/fapi/v3/order", map[string]string{
		"symbol":  symbol,
		"orderId": orderID,
	}, nil)
}

func (c *Client) OpenOrders(ctx context.Context, symbol string) ([]models.Order, error) {
	var resp []orderResponse
	if err := c.do(ctx, http.MethodGet, "/fapi/v3/openOrders", map[string]string{"symbol": symbol}, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Order, 0, len(resp))
	for _, o := range resp {
		out = append(out, mapOrder(o))
	}
	return out, nil
}
