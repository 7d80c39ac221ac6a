package service

import (
	"context"
	"sync"

	"trade_gateway/internal/metadata"
	"trade_gateway/internal/notify"
	"trade_gateway/pkg/logger"
)

// Warmuper прогревает мету всех бирж на старте, чтобы первый
// quick-trade не платил за ленивый refresh.
type Warmuper struct {
	caches map[string]*metadata.Cache
	n      notify.Notifier
}

func NewWarmuper(caches map[string]*metadata.Cache, n notify.Notifier) *Warmuper {
	return &Warmuper{caches: caches, n: n}
}

// Warmup параллельно перечитывает таблицы. Ошибка одной биржи не
// блокирует остальные и не валит старт: мета догрузится лениво.
func (w *Warmuper) Warmup(ctx context.Context) {
	var wg sync.WaitGroup
	for name, cache := range w.caches {
		wg.Add(1)
		go func(name string, cache *metadata.Cache) {
			defer wg.Done()
			if err := cache.Refresh(ctx); err != nil {
				logger.Error("warmup %s: %v", name, err)
				w.n.Sendf("⚠️ warmup %s: мета не прогрелась: %v", name, err)
				return
			}
			logger.Info("warmup %s: мета прогрета", name)
		}(name, cache)
	}
	wg.Wait()
}
