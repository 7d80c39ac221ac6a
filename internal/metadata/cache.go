package metadata

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"trade_gateway/internal/models"
)

const (
	DefaultTTL = time.Hour
	// Если меты нет — форматируем с запасом, а не валим вызов.
	fallbackPrecision = 8
)

type Asset struct {
	Symbol            string
	AssetID           int
	PricePrecision    int32
	QuantityPrecision int32
}

// FetchFunc загружает всю таблицу символов биржи за один вызов.
type FetchFunc func(ctx context.Context) (map[string]Asset, error)

// Cache — TTL-кэш меты инструментов. Обновление всегда целиком:
// таблица подменяется атомарно, читатели не видят полупустую мету.
type Cache struct {
	fetch FetchFunc
	ttl   time.Duration
	now   func() time.Time

	mu        sync.RWMutex
	table     map[string]Asset
	fetchedAt time.Time
}

func NewCache(fetch FetchFunc) *Cache {
	return &Cache{
		fetch: fetch,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
}

func (c *Cache) lookup(symbol string) (Asset, bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fresh := c.table != nil && c.now().Sub(c.fetchedAt) < c.ttl
	a, ok := c.table[symbol]
	return a, ok, fresh
}

// Get отдаёт мету символа, лениво перечитывая таблицу на промахе или
// протухании. Неизвестный после refresh символ — доменная ошибка.
func (c *Cache) Get(ctx context.Context, symbol string) (Asset, error) {
	if a, ok, fresh := c.lookup(symbol); ok && fresh {
		return a, nil
	}

	if err := c.Refresh(ctx); err != nil {
		return Asset{}, err
	}

	c.mu.RLock()
	a, ok := c.table[symbol]
	c.mu.RUnlock()
	if !ok {
		return Asset{}, models.DomainError("metadata.get", "unknown symbol %s", symbol)
	}
	return a, nil
}

// Refresh перечитывает таблицу целиком. Фетч идёт вне локов, подмена —
// одним присваиванием под локом.
func (c *Cache) Refresh(ctx context.Context) error {
	table, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.table = table
	c.fetchedAt = c.now()
	c.mu.Unlock()
	return nil
}

func (c *Cache) precisionOf(symbol string, quantity bool) int32 {
	c.mu.RLock()
	a, ok := c.table[symbol]
	c.mu.RUnlock()
	if !ok {
		return fallbackPrecision
	}
	if quantity {
		return a.QuantityPrecision
	}
	return a.PricePrecision
}

// FormatPrice приводит цену к точности инструмента (fixed-point строка).
func (c *Cache) FormatPrice(symbol string, v float64) string {
	p := c.precisionOf(symbol, false)
	return decimal.NewFromFloat(v).Round(p).StringFixed(p)
}

// FormatQuantity — то же для количества.
func (c *Cache) FormatQuantity(symbol string, v float64) string {
	p := c.precisionOf(symbol, true)
	return decimal.NewFromFloat(v).Round(p).StringFixed(p)
}
