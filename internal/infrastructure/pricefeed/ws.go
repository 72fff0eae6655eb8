package pricefeed

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"defilens/internal/application/port"
	"defilens/internal/domain/model"
	"defilens/internal/infrastructure/config"
)

func init() {
	Register(config.SourceWebsocket, func(ctx context.Context, cfg *config.Config) (port.PriceSource, error) {
		src, err := NewTickerSource(cfg.Feed.WsURL, cfg.Arbitrage.Symbols)
		if err != nil {
			return nil, err
		}
		src.Start(ctx)
		return src, nil
	})
}

// TickerSource keeps the latest price per exchange and symbol from a
// websocket ticker stream.
type TickerSource struct {
	wsURL   string
	symbols []string

	mu     sync.RWMutex
	prices map[string]float64 // SYMBOL|exchange -> last price

	readyOnce sync.Once
	ready     chan struct{}
}

type subscribeMsg struct {
	Op      string   `json:"op"`
	Symbols []string `json:"symbols"`
}

type tickerMsg struct {
	Exchange string      `json:"exchange"`
	Symbol   string      `json:"symbol"`
	Price    json.Number `json:"price"`
}

func NewTickerSource(wsURL string, symbols []string) (*TickerSource, error) {
	wsURL = strings.TrimSpace(wsURL)
	if wsURL == "" {
		return nil, errors.New("ws_url empty")
	}
	if len(symbols) == 0 {
		return nil, errors.New("symbols empty")
	}
	return &TickerSource{
		wsURL:   wsURL,
		symbols: symbols,
		prices:  make(map[string]float64),
		ready:   make(chan struct{}),
	}, nil
}

func (s *TickerSource) Name() string { return config.SourceWebsocket }

// Start connects in the background and reconnects until ctx is done.
func (s *TickerSource) Start(ctx context.Context) {
	go s.run(ctx)
}

// WaitReady blocks until the first price arrives or ctx is done.
func (s *TickerSource) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *TickerSource) Quotes(_ context.Context, symbol string, exchanges []string) ([]model.ExchangeQuote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ExchangeQuote, 0, len(exchanges))
	for _, ex := range exchanges {
		if px, ok := s.prices[quoteKey(symbol, ex)]; ok {
			out = append(out, model.ExchangeQuote{Exchange: strings.ToLower(ex), Price: px})
		}
	}
	return out, nil
}

func (s *TickerSource) update(b []byte) {
	var msg tickerMsg
	if err := json.Unmarshal(b, &msg); err != nil {
		log.Error().Str("feed", s.Name()).Err(err).Msg("json unmarshal failed")
		return
	}
	if msg.Exchange == "" || msg.Symbol == "" || msg.Price == "" {
		return
	}
	px, err := msg.Price.Float64()
	if err != nil || px <= 0 {
		log.Warn().Str("feed", s.Name()).Str("symbol", msg.Symbol).Str("price", msg.Price.String()).Msg("bad price")
		return
	}

	s.mu.Lock()
	s.prices[quoteKey(msg.Symbol, msg.Exchange)] = px
	s.mu.Unlock()

	s.readyOnce.Do(func() { close(s.ready) })
}

func (s *TickerSource) run(ctx context.Context) {
	backoff := 500 * time.Millisecond
	maxBackoff := 10 * time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		log.Info().Str("feed", s.Name()).Str("url", s.wsURL).Msg("ws connecting")
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		conn, _, err := websocket.DefaultDialer.DialContext(cctx, s.wsURL, nil)
		cancel()
		if err != nil {
			log.Error().Str("feed", s.Name()).Err(err).Msg("ws dial failed")
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = minDur(backoff*2, maxBackoff)
			continue
		}

		backoff = 500 * time.Millisecond
		log.Info().Str("feed", s.Name()).Msg("ws connected")

		if err = conn.WriteJSON(subscribeMsg{Op: "subscribe", Symbols: s.symbols}); err == nil {
			err = readLoop(ctx, conn, s.update)
		}

		_ = conn.Close()

		if ctx.Err() != nil {
			return
		}

		log.Warn().Str("feed", s.Name()).Err(err).Msg("ws disconnected, reconnecting")
		if !sleepCtx(ctx, backoff) {
			return
		}
		backoff = minDur(backoff*2, maxBackoff)
	}
}

func readLoop(ctx context.Context, conn *websocket.Conn, onMsg func([]byte)) error {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	pingTicker := time.NewTicker(25 * time.Second)
	defer pingTicker.Stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			_, b, err := conn.ReadMessage()
			if err != nil {
				errCh <- err
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			onMsg(b)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case <-pingTicker.C:
			_ = conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second))
		}
	}
}

// sleepCtx reports false if ctx ended first
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func minDur(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}

var _ port.PriceSource = (*TickerSource)(nil)
