package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"defilens/internal/application/container"
	"defilens/internal/application/usecase/report"
	dsvc "defilens/internal/domain/service"
	"defilens/internal/infrastructure/config"
	infracontainer "defilens/internal/infrastructure/container"
	"defilens/internal/infrastructure/logger"
	"defilens/internal/infrastructure/pricefeed"
	"defilens/internal/interfaces/console"

	"github.com/rs/zerolog/log"
)

type readyWaiter interface {
	WaitReady(ctx context.Context) error
}

func main() {
	logger.Setup("info")

	configPath := flag.String("config", "configs/config.toml", "path to config.toml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config", *configPath).Msg("load config failed")
	}
	logger.Setup(cfg.App.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infra, err := infracontainer.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("storage initialization failed")
	}
	defer infra.Close()

	// pools and mev candidates always come from fixtures
	fixtures := pricefeed.NewFixtureSource(cfg.Fixtures)

	factory, ok := pricefeed.Get(cfg.Feed.Source)
	if !ok {
		log.Fatal().Str("source", cfg.Feed.Source).Strs("known", pricefeed.Names()).Msg("unknown price source")
	}
	prices, err := factory(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.Feed.Source).Msg("price source init failed")
	}
	if w, ok := prices.(readyWaiter); ok {
		wctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Feed.WarmupSec)*time.Second)
		if err := w.WaitReady(wctx); err != nil {
			log.Warn().Err(err).Str("source", prices.Name()).Msg("no prices before warmup ended")
		}
		cancel()
	}

	engine := dsvc.NewEngine(cfg.EngineParams())
	p := engine.Params()
	log.Info().
		Float64("risk_free_rate", p.RiskFreeRate).
		Float64("profit_threshold", p.ProfitThreshold).
		Float64("reference_price", p.ReferencePrice).
		Float64("gas_price_gwei", p.GasPriceGwei).
		Float64("min_mev_profit", p.MinMEVProfit).
		Msg("engine configured")
	app := container.New(infra.Repository(), engine, container.Sources{
		Prices: prices,
		Pools:  fixtures,
		MEV:    fixtures,
	})

	moves := make([]report.RatioMove, 0, len(cfg.Liquidity.ILScenarios))
	for _, sc := range cfg.Liquidity.ILScenarios {
		moves = append(moves, report.RatioMove{Initial: sc.Initial, Current: sc.Current})
	}

	svc := report.NewService(report.ServiceDeps{
		Analytics:   app.AnalyticsService(),
		Sink:        console.NewSink(),
		Renderer:    console.NewFormatter(cfg.Arbitrage.ProfitThreshold),
		Positions:   cfg.Fixtures.PortfolioPositions(),
		Tokens:      cfg.Fixtures.Tokens,
		Symbols:     cfg.Arbitrage.Symbols,
		Exchanges:   cfg.Arbitrage.Exchanges,
		Pools:       cfg.Liquidity.Pools,
		Capital:     cfg.Liquidity.Capital,
		BlockNumber: cfg.App.BlockNumber,
		RatioMoves:  moves,
		Interval:    time.Duration(cfg.App.IntervalSec) * time.Second,
	})

	log.Info().
		Str("config", *configPath).
		Str("source", prices.Name()).
		Int("symbols", len(cfg.Arbitrage.Symbols)).
		Int("pools", len(cfg.Liquidity.Pools)).
		Uint64("block", cfg.App.BlockNumber).
		Bool("storage", cfg.StorageEnabled()).
		Msg("defilens started")

	if err := svc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("report service exited")
		infra.Close()
		os.Exit(1)
	}
}
