package service

import (
	"context"
	"strconv"

	"trade_gateway/internal/models"
)

func (c *Client) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	asset, err := c.assetID(ctx, symbol)
	if err != nil {
		return err
	}
	var resp exchangeResponse
	return c.exchangeAction(ctx, leverageAction{
		Type:     "updateLeverage",
		Asset:    asset,
		IsCross:  true,
		Leverage: leverage,
	}, &resp)
}

func (c *Client) LastPrice(ctx context.Context, symbol string) (float64, error) {
	var mids map[string]string
	if err := c.info(ctx, map[string]any{"type": "allMids"}, &mids); err != nil {
		return 0, err
	}
	px, ok := mids[symbol]
	if !ok {
		return 0, models.DomainError("hyperliquid.price", "unknown symbol %s", symbol)
	}
	v, err := strconv.ParseFloat(px, 64)
	if err != nil {
		return 0, models.NetworkError("hyperliquid.price", err)
	}
	return v, nil
}

func (c *Client) state(ctx context.Context) (*clearinghouseState, error) {
	if c.creds.WalletAddress == "" {
		return nil, models.ConfigurationError("hyperliquid.state", "wallet address is not set")
	}
	var st clearinghouseState
	err := c.info(ctx, map[string]any{
		"type": "clearinghouseState",
		"user": c.creds.WalletAddress,
	}, &st)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) Positions(ctx context.Context, symbol string) ([]models.Position, error) {
	st, err := c.state(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Position, 0, len(st.AssetPositions))
	for _, ap := range st.AssetPositions {
		p := ap.Position
		if symbol != "" && p.Coin != symbol {
			continue
		}
		size, _ := strconv.ParseFloat(p.Szi, 64)
		if size == 0 {
			continue
		}
		side := models.PositionLong
		if size < 0 {
			side = models.PositionShort
		}
		entry, _ := strconv.ParseFloat(p.EntryPx, 64)
		liq, _ := strconv.ParseFloat(p.LiquidationPx, 64)
		upnl, _ := strconv.ParseFloat(p.UnrealizedPnl, 64)
		out = append(out, models.Position{
			Symbol:           p.Coin,
			Side:             side,
			Size:             size,
			EntryPrice:       entry,
			LiquidationPrice: liq,
			UnrealizedPnl:    upnl,
			Leverage:         p.Leverage.Value,
		})
	}
	return out, nil
}

func (c *Client) Balances(ctx context.Context) ([]models.Balance, error) {
	st, err := c.state(ctx)
	if err != nil {
		return nil, err
	}
	total, _ := strconv.ParseFloat(st.MarginSummary.AccountValue, 64)
	avail, _ := strconv.ParseFloat(st.Withdrawable, 64)
	return []models.Balance{{Asset: "USDC", Total: total, Available: avail}}, nil
}
