package container

import (
	"context"
	"path/filepath"
	"testing"

	"defilens/internal/domain/model"
	dsvc "defilens/internal/domain/service"
	"defilens/internal/infrastructure/config"
	infracontainer "defilens/internal/infrastructure/container"
	"defilens/internal/infrastructure/pricefeed"

	"github.com/shopspring/decimal"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.Storage.SQLite.Enabled = true
	cfg.Storage.SQLite.Path = filepath.Join(t.TempDir(), "test_container.db")
	cfg.Fixtures.Quotes = []config.QuoteFixture{
		{Symbol: "ETH", Exchange: "binance", Price: 2020},
		{Symbol: "ETH", Exchange: "kraken", Price: 2000},
	}
	return cfg
}

func TestContainerWithSQLite(t *testing.T) {
	c, err := infracontainer.New(testConfig(t))
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	defer c.Close()

	if c.SQLiteRepo() == nil {
		t.Errorf("expected SQLiteRepo, got nil")
	}
	if c.MemoryRepo() != nil {
		t.Errorf("expected no memory repo when sqlite is enabled")
	}
}

func TestContainerMemoryFallback(t *testing.T) {
	c, err := infracontainer.New(&config.Config{})
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	defer c.Close()

	if c.MemoryRepo() == nil || c.Repository() == nil {
		t.Fatal("expected memory repository when no storage is enabled")
	}
}

func TestContainerServiceWorkflow(t *testing.T) {
	cfg := testConfig(t)
	infra, err := infracontainer.New(cfg)
	if err != nil {
		t.Fatalf("failed to create container: %v", err)
	}
	defer infra.Close()

	src := pricefeed.NewFixtureSource(cfg.Fixtures)
	c := New(infra.Repository(), dsvc.NewEngine(dsvc.DefaultParams()), Sources{Prices: src, Pools: src, MEV: src})
	svc := c.AnalyticsService()
	if svc != c.AnalyticsService() {
		t.Error("expected the analytics service to be built once")
	}

	ctx := context.Background()
	positions := []model.PortfolioPosition{
		{Token: "ETH", Amount: decimal.NewFromInt(2), EntryPrice: 1800, CurrentPrice: 2000, PnL: 400, AllocationPct: 100},
	}
	if _, err := svc.AnalyzePortfolio(ctx, positions); err != nil {
		t.Fatalf("AnalyzePortfolio failed: %v", err)
	}

	arb, err := svc.ScanArbitrage(ctx, "eth", []string{"binance", "kraken"})
	if err != nil {
		t.Fatalf("ScanArbitrage failed: %v", err)
	}
	if !arb.Profitable || arb.BuyExchange != "kraken" {
		t.Errorf("unexpected opportunity: %+v", arb)
	}

	reports, err := infra.SQLiteRepo().ListPortfolioReports(ctx, 10)
	if err != nil {
		t.Fatalf("ListPortfolioReports failed: %v", err)
	}
	if len(reports) != 1 || reports[0].LargestPosition != "ETH" {
		t.Errorf("expected one stored report for ETH, got %+v", reports)
	}

	stored, err := infra.SQLiteRepo().GetLatestArbitrage(ctx, "ETH")
	if err != nil {
		t.Fatalf("GetLatestArbitrage failed: %v", err)
	}
	if stored == nil || stored.ID != arb.ID {
		t.Errorf("expected stored opportunity %s, got %+v", arb.ID, stored)
	}
}
