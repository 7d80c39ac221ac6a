package service

import (
	"context"
	"net/http"

	"trade_gateway/internal/metadata"
)

// fetchAssets загружает exchangeInfo целиком — кэш меты обновляется
// одной таблицей, а не по символу.
func (c *Client) fetchAssets(ctx context.Context) (map[string]metadata.Asset, error) {
	var info exchangeInfo
	if err := c.do(ctx, http.MethodGet, "/fapi/v1/exchangeInfo", nil, &info); err != nil {
		return nil, err
	}
	table := make(map[string]metadata.Asset, len(info.Symbols))
	for i, s := range info.Symbols {
		if s.Status != "" && s.Status != "TRADING" {
			continue
		}
		table[s.Symbol] = metadata.Asset{
			Symbol:            s.Symbol,
			AssetID:           i,
			PricePrecision:    s.PricePrecision,
			QuantityPrecision: s.QuantityPrecision,
		}
	}
	return table, nil
}
