package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"trade_gateway/internal/modules/config"
	healthservice "trade_gateway/internal/modules/health/service"
	"trade_gateway/pkg/logger"
)

const (
	// Фиксированная пауза между переподключениями, без backoff.
	reconnectDelay = 5 * time.Second
	pingInterval   = 5 * time.Minute
)

type Tick struct {
	Symbol string
	Bid    float64
	Ask    float64
	Time   time.Time
}

// Stream — один WebSocket на все подписанные символы, fan-out тикеров
// по каналам подписчиков. Переподключение single-flight: повторный
// триггер во время уже идущего реконнекта схлопывается.
type Stream struct {
	wsURL   string
	symbols []string
	dialer  *websocket.Dialer
	state   *healthservice.State

	mu   sync.RWMutex
	subs map[chan Tick]struct{}

	reconnecting sync.Mutex
}

func NewStream(cfg *config.Config, state *healthservice.State) *Stream {
	wsURL := cfg.Binance.WsURL
	switch cfg.Stream.Exchange {
	case "aster":
		wsURL = cfg.Aster.WsURL
	case "hyperliquid":
		wsURL = cfg.Hyperliquid.WsURL
	}
	return &Stream{
		wsURL:   wsURL,
		symbols: cfg.Stream.Symbols,
		dialer:  &websocket.Dialer{},
		state:   state,
		subs:    make(map[chan Tick]struct{}),
	}
}

// Subscribe отдаёт буферизованный канал тикеров. Медленный подписчик
// теряет тики, а не тормозит остальных.
func (s *Stream) Subscribe() chan Tick {
	ch := make(chan Tick, 64)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	return ch
}

func (s *Stream) Unsubscribe(ch chan Tick) {
	s.mu.Lock()
	if _, ok := s.subs[ch]; ok {
		delete(s.subs, ch)
		close(ch)
	}
	s.mu.Unlock()
}

func (s *Stream) fanOut(t Tick) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- t:
		default: // переполненный подписчик пропускает тик
		}
	}
}

func (s *Stream) streamURL() string {
	if len(s.symbols) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.symbols))
	for _, sym := range s.symbols {
		parts = append(parts, strings.ToLower(sym)+"@bookTicker")
	}
	base := strings.TrimSuffix(s.wsURL, "/ws")
	return base + "/stream?streams=" + strings.Join(parts, "/")
}

// Run держит соединение до отмены контекста.
func (s *Stream) Run(ctx context.Context) {
	url := s.streamURL()
	if url == "" {
		logger.Info("market_stream: нет символов, стрим не запущен")
		return
	}

	for {
		if err := s.runOnce(ctx, url); err != nil {
			logger.Error("market_stream: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (s *Stream) runOnce(ctx context.Context, url string) error {
	// single-flight: второй конкурентный заход ждёт и выходит,
	// когда соединение уже восстановлено первым
	if !s.reconnecting.TryLock() {
		return nil
	}
	defer s.reconnecting.Unlock()

	conn, _, err := s.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	logger.Info("market_stream: подключено, символов: %d", len(s.symbols))
	s.state.SetWSConnected(true)
	defer s.state.SetWSConnected(false)

	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		t := time.NewTicker(pingInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stopPing:
				return
			case <-t.C:
				_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second))
			}
		}
	}()

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stopPing:
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		var frame struct {
			Stream string `json:"stream"`
			Data   struct {
				Symbol string `json:"s"`
				Bid    string `json:"b"`
				Ask    string `json:"a"`
				Time   int64  `json:"E"`
			} `json:"data"`
		}
		if err := json.Unmarshal(msg, &frame); err != nil || frame.Data.Symbol == "" {
			continue
		}

		bid, err1 := strconv.ParseFloat(frame.Data.Bid, 64)
		ask, err2 := strconv.ParseFloat(frame.Data.Ask, 64)
		if err1 != nil || err2 != nil {
			continue
		}

		tick := Tick{
			Symbol: frame.Data.Symbol,
			Bid:    bid,
			Ask:    ask,
			Time:   time.UnixMilli(frame.Data.Time),
		}
		s.state.TouchTick(tick.Time)
		s.fanOut(tick)
	}
}
