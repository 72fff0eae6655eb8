package pricefeed

import (
	"context"
	"errors"
	"testing"

	"defilens/internal/domain/model"
	"defilens/internal/infrastructure/config"
)

func testFixtures() config.Fixtures {
	return config.Fixtures{
		Quotes: []config.QuoteFixture{
			{Symbol: "ETH", Exchange: "binance", Price: 2010},
			{Symbol: "ETH", Exchange: "kraken", Price: 2000},
			{Symbol: "BTC", Exchange: "binance", Price: 43000},
		},
		Pools: []model.PoolData{
			{Address: "0x8ad599c3A0ff1De082011EFDDc58f1908eb6e6D8", Token0: "USDC", Token1: "WETH", APY: 12},
		},
		MEV: []config.MEVFixture{
			{Block: 100, MEVCandidate: model.MEVCandidate{Type: model.MEVArbitrage, EstimatedProfit: 300}},
			{Block: 100, MEVCandidate: model.MEVCandidate{Type: model.MEVLiquidation, EstimatedProfit: 600}},
			{Block: 101, MEVCandidate: model.MEVCandidate{Type: model.MEVSandwich, EstimatedProfit: 90}},
		},
	}
}

func TestFixtureQuotesFollowRequestedOrder(t *testing.T) {
	src := NewFixtureSource(testFixtures())

	quotes, err := src.Quotes(context.Background(), "eth", []string{"kraken", "coinbase", "BINANCE"})
	if err != nil {
		t.Fatalf("Quotes failed: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].Exchange != "kraken" || quotes[0].Price != 2000 {
		t.Errorf("unexpected first quote: %+v", quotes[0])
	}
	if quotes[1].Exchange != "binance" || quotes[1].Price != 2010 {
		t.Errorf("unexpected second quote: %+v", quotes[1])
	}
}

func TestFixturePoolLookupIgnoresCase(t *testing.T) {
	src := NewFixtureSource(testFixtures())
	ctx := context.Background()

	pool, err := src.Pool(ctx, "0x8AD599C3A0FF1DE082011EFDDC58F1908EB6E6D8")
	if err != nil {
		t.Fatalf("Pool failed: %v", err)
	}
	if pool.Token1 != "WETH" {
		t.Errorf("unexpected pool: %+v", pool)
	}

	_, err = src.Pool(ctx, "0x0000000000000000000000000000000000000000")
	if !errors.Is(err, ErrPoolNotFound) {
		t.Errorf("expected ErrPoolNotFound, got %v", err)
	}
}

func TestFixtureCandidatesByBlock(t *testing.T) {
	src := NewFixtureSource(testFixtures())
	ctx := context.Background()

	got, _ := src.Candidates(ctx, 100)
	if len(got) != 2 || got[0].Type != model.MEVArbitrage {
		t.Errorf("unexpected candidates for block 100: %+v", got)
	}
	got, _ = src.Candidates(ctx, 5)
	if len(got) != 0 {
		t.Errorf("expected no candidates for block 5, got %d", len(got))
	}
}

func TestRegistryHasBuiltinSources(t *testing.T) {
	for _, name := range []string{config.SourceFixture, config.SourceWebsocket} {
		if _, ok := Get(name); !ok {
			t.Errorf("source %q not registered", name)
		}
	}
	if len(Names()) < 2 {
		t.Errorf("expected at least 2 registered sources, got %v", Names())
	}

	factory, _ := Get(config.SourceFixture)
	src, err := factory(context.Background(), &config.Config{Fixtures: testFixtures()})
	if err != nil {
		t.Fatalf("fixture factory failed: %v", err)
	}
	if src.Name() != config.SourceFixture {
		t.Errorf("unexpected source name %q", src.Name())
	}
}
