package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"defilens/internal/domain/model"
	dsvc "defilens/internal/domain/service"
)

type Config struct {
	App struct {
		LogLevel    string `toml:"log_level"`
		BlockNumber uint64 `toml:"block_number"`
		// 0 runs one analysis round and exits
		IntervalSec int `toml:"interval_sec"`
	} `toml:"app"`

	Engine struct {
		// nil means the default; an explicit 0 is kept
		RiskFreeRate *float64 `toml:"risk_free_rate"`
	} `toml:"engine"`

	Arbitrage struct {
		Symbols         []string `toml:"symbols"`
		Exchanges       []string `toml:"exchanges"`
		ProfitThreshold float64  `toml:"profit_threshold"`
		MinVolumeUSD    float64  `toml:"min_volume_usd"`
		GasCostUSD      float64  `toml:"gas_cost_usd"`
	} `toml:"arbitrage"`

	Liquidity struct {
		Pools              []string `toml:"pools"`
		Capital            float64  `toml:"capital"`
		ReferencePrice     float64  `toml:"reference_price"`
		DailyVolatility    float64  `toml:"daily_volatility"`
		MaxAllocationShare float64  `toml:"max_allocation_share"`
		MaxAllocationUSD   float64  `toml:"max_allocation_usd"`

		ILScenarios []ILScenario `toml:"il_scenarios"`
	} `toml:"liquidity"`

	MEV struct {
		GasPriceGwei float64 `toml:"gas_price_gwei"`
		EthPriceUSD  float64 `toml:"eth_price_usd"`
		MinProfitUSD float64 `toml:"min_profit_usd"`
	} `toml:"mev"`

	Feed struct {
		Source string `toml:"source"` // "fixture" or "websocket"
		WsURL  string `toml:"ws_url"`
		// seconds to wait for the first websocket quotes
		WarmupSec int `toml:"warmup_sec"`
	} `toml:"feed"`

	Storage struct {
		SQLite struct {
			Enabled bool   `toml:"enabled"`
			Path    string `toml:"path"`
		} `toml:"sqlite"`

		Postgres struct {
			Enabled bool   `toml:"enabled"`
			DSN     string `toml:"dsn"`
		} `toml:"postgres"`

		Redis struct {
			Enabled       bool   `toml:"enabled"`
			Addr          string `toml:"addr"`
			Password      string `toml:"password"`
			DB            int    `toml:"db"`
			Prefix        string `toml:"prefix"`
			TTLSeconds    int    `toml:"ttl_seconds"`
			SignalStream  string `toml:"signal_stream"`
			SignalChannel string `toml:"signal_channel"`
		} `toml:"redis"`
	} `toml:"storage"`

	Fixtures Fixtures `toml:"fixtures"`
}

// Fixtures deterministic market data used instead of live feeds
type Fixtures struct {
	Quotes    []QuoteFixture    `toml:"quotes"`
	Pools     []model.PoolData  `toml:"pools"`
	Positions []PositionFixture `toml:"positions"`
	MEV       []MEVFixture      `toml:"mev"`
	Tokens    []model.TokenData `toml:"tokens"`
}

// ILScenario price ratio move reported as impermanent loss
type ILScenario struct {
	Initial float64 `toml:"initial"`
	Current float64 `toml:"current"`
}

type QuoteFixture struct {
	Symbol   string  `toml:"symbol"`
	Exchange string  `toml:"exchange"`
	Price    float64 `toml:"price"`
}

type PositionFixture struct {
	Token         string  `toml:"token"`
	Amount        string  `toml:"amount"` // decimal string
	EntryPrice    float64 `toml:"entry_price"`
	CurrentPrice  float64 `toml:"current_price"`
	PnL           float64 `toml:"pnl"`
	AllocationPct float64 `toml:"allocation_pct"`
}

type MEVFixture struct {
	Block uint64 `toml:"block"`
	model.MEVCandidate
}

const (
	SourceFixture   = "fixture"
	SourceWebsocket = "websocket"
)

func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := dsvc.DefaultParams()

	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = "info"
	}
	if cfg.Engine.RiskFreeRate == nil {
		rf := def.RiskFreeRate
		cfg.Engine.RiskFreeRate = &rf
	}
	if cfg.Arbitrage.ProfitThreshold <= 0 {
		cfg.Arbitrage.ProfitThreshold = def.ProfitThreshold
	}
	if cfg.Arbitrage.MinVolumeUSD <= 0 {
		cfg.Arbitrage.MinVolumeUSD = def.MinVolumeUSD
	}
	if cfg.Arbitrage.GasCostUSD <= 0 {
		cfg.Arbitrage.GasCostUSD = def.GasCostUSD
	}
	if cfg.Liquidity.ReferencePrice <= 0 {
		cfg.Liquidity.ReferencePrice = def.ReferencePrice
	}
	if cfg.Liquidity.DailyVolatility <= 0 {
		cfg.Liquidity.DailyVolatility = def.DailyVolatility
	}
	if cfg.Liquidity.MaxAllocationShare <= 0 {
		cfg.Liquidity.MaxAllocationShare = def.MaxAllocationShare
	}
	if cfg.Liquidity.MaxAllocationUSD <= 0 {
		cfg.Liquidity.MaxAllocationUSD = def.MaxAllocationUSD
	}
	if cfg.MEV.GasPriceGwei <= 0 {
		cfg.MEV.GasPriceGwei = def.GasPriceGwei
	}
	if cfg.MEV.EthPriceUSD <= 0 {
		cfg.MEV.EthPriceUSD = def.EthPriceUSD
	}
	if cfg.MEV.MinProfitUSD <= 0 {
		cfg.MEV.MinProfitUSD = def.MinMEVProfit
	}
	if len(cfg.Liquidity.ILScenarios) == 0 {
		cfg.Liquidity.ILScenarios = []ILScenario{{Initial: 1, Current: 1.5}, {Initial: 1, Current: 2}}
	}
	if strings.TrimSpace(cfg.Feed.Source) == "" {
		cfg.Feed.Source = SourceFixture
	}
	if cfg.Feed.WarmupSec <= 0 {
		cfg.Feed.WarmupSec = 3
	}
	if cfg.Storage.Redis.Prefix == "" {
		cfg.Storage.Redis.Prefix = "defilens"
	}
}

func validate(cfg *Config) error {
	cfg.Arbitrage.Symbols = normalizeSymbols(cfg.Arbitrage.Symbols)
	cfg.Arbitrage.Exchanges = normalizeExchanges(cfg.Arbitrage.Exchanges)
	if len(cfg.Arbitrage.Symbols) > 0 && len(cfg.Arbitrage.Exchanges) == 0 {
		return errors.New("arbitrage.exchanges is empty")
	}
	if cfg.App.IntervalSec < 0 {
		return errors.New("app.interval_sec is negative")
	}
	if cfg.Liquidity.Capital < 0 {
		return errors.New("liquidity.capital is negative")
	}

	switch cfg.Feed.Source {
	case SourceFixture:
	case SourceWebsocket:
		if strings.TrimSpace(cfg.Feed.WsURL) == "" {
			return errors.New("feed.ws_url empty but websocket source selected")
		}
	default:
		return fmt.Errorf("feed.source %q unknown", cfg.Feed.Source)
	}

	if cfg.Storage.SQLite.Enabled && strings.TrimSpace(cfg.Storage.SQLite.Path) == "" {
		return errors.New("storage.sqlite.path empty but enabled")
	}
	if cfg.Storage.Postgres.Enabled && strings.TrimSpace(cfg.Storage.Postgres.DSN) == "" {
		return errors.New("storage.postgres.dsn empty but enabled")
	}
	if cfg.Storage.Redis.Enabled && strings.TrimSpace(cfg.Storage.Redis.Addr) == "" {
		return errors.New("storage.redis.addr empty but enabled")
	}

	if rf := *cfg.Engine.RiskFreeRate; !finite(rf) {
		return fmt.Errorf("engine.risk_free_rate %v is not finite", rf)
	}

	for i := range cfg.Fixtures.Quotes {
		q := &cfg.Fixtures.Quotes[i]
		q.Symbol = strings.ToUpper(strings.TrimSpace(q.Symbol))
		q.Exchange = strings.ToLower(strings.TrimSpace(q.Exchange))
		if q.Symbol == "" || q.Exchange == "" {
			return fmt.Errorf("fixtures.quotes[%d]: symbol and exchange required", i)
		}
		if !finite(q.Price) {
			return fmt.Errorf("fixtures.quotes[%d] price %v is not finite", i, q.Price)
		}
	}
	for i, p := range cfg.Fixtures.Positions {
		if _, err := decimal.NewFromString(p.Amount); err != nil {
			return fmt.Errorf("fixtures.positions[%d] amount %q: %w", i, p.Amount, err)
		}
		if !finite(p.EntryPrice, p.CurrentPrice, p.PnL, p.AllocationPct) {
			return fmt.Errorf("fixtures.positions[%d] (%s): prices, pnl and allocation must be finite", i, p.Token)
		}
	}
	for i, p := range cfg.Fixtures.Pools {
		if !finite(p.FeeTier, p.TVL, p.Volume24h, p.APY, p.ILRisk, p.Price) {
			return fmt.Errorf("fixtures.pools[%d] (%s): numeric fields must be finite", i, p.Address)
		}
	}
	for i, m := range cfg.Fixtures.MEV {
		if !finite(m.EstimatedProfit, m.ConfidenceScore) {
			return fmt.Errorf("fixtures.mev[%d]: profit and confidence must be finite", i)
		}
	}
	return nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// EngineParams builds engine tunables from the config
func (c *Config) EngineParams() dsvc.Params {
	rf := dsvc.DefaultRiskFreeRate
	if c.Engine.RiskFreeRate != nil {
		rf = *c.Engine.RiskFreeRate
	}
	return dsvc.Params{
		RiskFreeRate:       rf,
		ProfitThreshold:    c.Arbitrage.ProfitThreshold,
		MinVolumeUSD:       c.Arbitrage.MinVolumeUSD,
		GasCostUSD:         c.Arbitrage.GasCostUSD,
		ReferencePrice:     c.Liquidity.ReferencePrice,
		DailyVolatility:    c.Liquidity.DailyVolatility,
		MaxAllocationShare: c.Liquidity.MaxAllocationShare,
		MaxAllocationUSD:   c.Liquidity.MaxAllocationUSD,
		GasPriceGwei:       c.MEV.GasPriceGwei,
		EthPriceUSD:        c.MEV.EthPriceUSD,
		MinMEVProfit:       c.MEV.MinProfitUSD,
	}
}

// PortfolioPositions converts the position fixtures; amounts were checked by validate.
func (f Fixtures) PortfolioPositions() []model.PortfolioPosition {
	out := make([]model.PortfolioPosition, 0, len(f.Positions))
	for _, p := range f.Positions {
		out = append(out, model.PortfolioPosition{
			Token:         strings.ToUpper(strings.TrimSpace(p.Token)),
			Amount:        decimal.RequireFromString(p.Amount),
			EntryPrice:    p.EntryPrice,
			CurrentPrice:  p.CurrentPrice,
			PnL:           p.PnL,
			AllocationPct: p.AllocationPct,
		})
	}
	return out
}

// StorageEnabled reports whether any persistent backend is configured
func (c *Config) StorageEnabled() bool {
	return c.Storage.SQLite.Enabled || c.Storage.Postgres.Enabled || c.Storage.Redis.Enabled
}

func normalizeSymbols(in []string) []string {
	return normalize(in, strings.ToUpper)
}

func normalizeExchanges(in []string) []string {
	return normalize(in, strings.ToLower)
}

func normalize(in []string, fold func(string) string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, s := range in {
		u := fold(strings.TrimSpace(s))
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
