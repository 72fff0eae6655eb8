package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"defilens/internal/domain/model"
)

func TestArbitrageSignal(t *testing.T) {
	arb := &model.ArbitrageOpportunity{
		Token: "ETH", ProfitPercentage: 0.75, BuyExchange: "kraken", BuyPrice: 2000,
		SellExchange: "binance", SellPrice: 2015, Timestamp: 42,
	}
	s := ArbitrageSignal(arb)
	if s.Kind != "arbitrage" || s.Ref != "ETH" || s.Value != 0.75 || s.TsMs != 42 {
		t.Errorf("unexpected signal: %+v", s)
	}
	want := "buy kraken @ 2000.00000000 sell binance @ 2015.00000000"
	if s.Detail != want {
		t.Errorf("expected detail %q, got %q", want, s.Detail)
	}
}

func TestMEVSignal(t *testing.T) {
	op := model.MEVOpportunity{
		MEVCandidate: model.MEVCandidate{
			Type: model.MEVSandwich, TargetTransaction: "0xabc", ExecutionWindow: 2, ConfidenceScore: 0.85,
		},
		ProfitAfterGas: 120.5,
	}
	s := MEVSignal(100, op, 7)
	if s.Ref != "0xabc" || s.Value != 120.5 {
		t.Errorf("unexpected signal: %+v", s)
	}
	if s.Detail != "sandwich_attack block=100 window=2 confidence=0.85" {
		t.Errorf("unexpected detail: %q", s.Detail)
	}
}

func TestNewDefaults(t *testing.T) {
	r := New(nil, "", 0, "", "")
	if r.keyLatest != "defilens:latest" || r.signalStream != "defilens:signals" || r.signalChan != "defilens:signals:pub" {
		t.Errorf("unexpected defaults: %s %s %s", r.keyLatest, r.signalStream, r.signalChan)
	}
	if LatestField("liquidity", "0x1") != "liquidity:0x1" {
		t.Errorf("unexpected field: %s", LatestField("liquidity", "0x1"))
	}
}

// Requires a running server, e.g. DEFILENS_REDIS_ADDR=127.0.0.1:6379
func TestRepoAgainstServer(t *testing.T) {
	addr := os.Getenv("DEFILENS_REDIS_ADDR")
	if addr == "" {
		t.Skip("DEFILENS_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	ctx := context.Background()
	prefix := "defilens-test-" + time.Now().Format("150405.000")
	r := New(rdb, prefix, time.Minute, "", "")
	defer rdb.Del(ctx, r.keyLatest, r.signalStream)

	arb := &model.ArbitrageOpportunity{ID: "x", Token: "ETH", Profitable: true, ProfitPercentage: 1}
	if err := r.SaveArbitrageOpportunity(ctx, arb); err != nil {
		t.Fatalf("SaveArbitrageOpportunity failed: %v", err)
	}

	n, err := rdb.XLen(ctx, r.signalStream).Result()
	if err != nil {
		t.Fatalf("XLen failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 signal, got %d", n)
	}
	ok, err := rdb.HExists(ctx, r.keyLatest, "arbitrage:ETH").Result()
	if err != nil || !ok {
		t.Errorf("expected latest arbitrage entry, err=%v", err)
	}
}
