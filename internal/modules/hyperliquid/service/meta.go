package service

import (
	"context"

	"trade_gateway/internal/metadata"
)

// Перпы Hyperliquid: assetId — индекс в universe, точность цены —
// не больше 6 знаков минус szDecimals.
func (c *Client) fetchAssets(ctx context.Context) (map[string]metadata.Asset, error) {
	var meta metaResponse
	if err := c.info(ctx, map[string]any{"type": "meta"}, &meta); err != nil {
		return nil, err
	}
	table := make(map[string]metadata.Asset, len(meta.Universe))
	for i, u := range meta.Universe {
		pricePrec := int32(6) - u.SzDecimals
		if pricePrec < 0 {
			pricePrec = 0
		}
		table[u.Name] = metadata.Asset{
			Symbol:            u.Name,
			AssetID:           i,
			PricePrecision:    pricePrec,
			QuantityPrecision: u.SzDecimals,
		}
	}
	return table, nil
}
