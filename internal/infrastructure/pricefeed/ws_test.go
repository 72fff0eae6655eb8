package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTickerServer(t *testing.T, messages []string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		var sub subscribeMsg
		if err := conn.ReadJSON(&sub); err != nil || sub.Op != "subscribe" {
			return
		}
		for _, m := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(m)); err != nil {
				return
			}
		}
		// hold the connection until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}

func TestTickerSourceCollectsLatestPrices(t *testing.T) {
	srv := newTickerServer(t, []string{
		`{"exchange":"binance","symbol":"ETH","price":2000}`,
		`{"exchange":"kraken","symbol":"eth","price":"1990.5"}`,
		`not json`,
		`{"exchange":"coinbase","symbol":"ETH","price":-1}`,
		`{"exchange":"binance","symbol":"ETH","price":2001.25}`,
	})
	defer srv.Close()

	src, err := NewTickerSource("ws"+strings.TrimPrefix(srv.URL, "http"), []string{"ETH"})
	if err != nil {
		t.Fatalf("NewTickerSource failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	src.Start(ctx)

	if err := src.WaitReady(ctx); err != nil {
		t.Fatalf("WaitReady failed: %v", err)
	}

	exchanges := []string{"kraken", "coinbase", "binance"}
	deadline := time.Now().Add(3 * time.Second)
	for {
		quotes, _ := src.Quotes(ctx, "ETH", exchanges)
		if len(quotes) == 2 && quotes[1].Price == 2001.25 {
			if quotes[0].Exchange != "kraken" || quotes[0].Price != 1990.5 {
				t.Errorf("unexpected first quote: %+v", quotes[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for quotes, last=%+v", quotes)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestNewTickerSourceValidation(t *testing.T) {
	if _, err := NewTickerSource(" ", []string{"ETH"}); err == nil {
		t.Error("expected error for empty url")
	}
	if _, err := NewTickerSource("ws://localhost:1", nil); err == nil {
		t.Error("expected error for empty symbols")
	}
}

func TestWaitReadyHonorsContext(t *testing.T) {
	src, _ := NewTickerSource("ws://127.0.0.1:1", []string{"ETH"})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := src.WaitReady(ctx); err == nil {
		t.Error("expected context error before any price arrives")
	}
}
