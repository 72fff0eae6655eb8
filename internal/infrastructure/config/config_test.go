package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"defilens/internal/domain/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("../../../configs/config.toml")
	require.NoError(t, err)

	assert.Equal(t, []string{"ETH", "BTC"}, cfg.Arbitrage.Symbols)
	assert.Equal(t, SourceFixture, cfg.Feed.Source)
	assert.Len(t, cfg.Fixtures.Quotes, 6)
	assert.Len(t, cfg.Fixtures.Pools, 1)
	assert.Equal(t, 6.2, cfg.Fixtures.Pools[0].ILRisk)
	require.Len(t, cfg.Fixtures.MEV, 3)
	assert.Equal(t, model.MEVArbitrage, cfg.Fixtures.MEV[0].Type)
	assert.Equal(t, uint64(18500000), cfg.Fixtures.MEV[0].Block)
	assert.Equal(t, "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", cfg.Fixtures.Tokens[0].ContractAddress)

	positions := cfg.Fixtures.PortfolioPositions()
	require.Len(t, positions, 3)
	assert.True(t, positions[1].Amount.Equal(decimal.RequireFromString("0.5")))

	require.Len(t, cfg.Liquidity.ILScenarios, 2)
	assert.Equal(t, 2.0, cfg.Liquidity.ILScenarios[1].Current)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[arbitrage]
symbols = [" eth ", "ETH", "btc", ""]
exchanges = ["Binance", "binance", "KRAKEN"]
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ETH", "BTC"}, cfg.Arbitrage.Symbols)
	assert.Equal(t, []string{"binance", "kraken"}, cfg.Arbitrage.Exchanges)
	assert.Equal(t, "info", cfg.App.LogLevel)

	p := cfg.EngineParams()
	assert.Equal(t, 0.02, p.RiskFreeRate)
	assert.Equal(t, 0.5, p.ProfitThreshold)
	assert.Equal(t, 2000.0, p.ReferencePrice)
	assert.Equal(t, 50.0, p.MinMEVProfit)
	assert.False(t, cfg.StorageEnabled())
	assert.Equal(t, 0, cfg.App.IntervalSec)
	assert.Len(t, cfg.Liquidity.ILScenarios, 2)
}

func TestLoadValidation(t *testing.T) {
	cases := map[string]string{
		"symbols without exchanges": `
[arbitrage]
symbols = ["ETH"]
`,
		"websocket without url": `
[feed]
source = "websocket"
`,
		"unknown source": `
[feed]
source = "carrier-pigeon"
`,
		"sqlite without path": `
[storage.sqlite]
enabled = true
`,
		"negative interval": `
[app]
interval_sec = -1
`,
		"nan quote": `
[[fixtures.quotes]]
symbol = "ETH"
exchange = "binance"
price = nan
`,
		"infinite position price": `
[[fixtures.positions]]
token = "ETH"
amount = "1"
entry_price = 1800
current_price = inf
`,
		"infinite pool tvl": `
[[fixtures.pools]]
address = "0x8ad599c3A0ff1De082011EFDDc58f1908eb6e6D8"
tvl = -inf
`,
		"bad amount": `
[[fixtures.positions]]
token = "ETH"
amount = "ten"
`,
		"quote without exchange": `
[[fixtures.quotes]]
symbol = "ETH"
price = 1
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadRiskFreeRate(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[engine]
risk_free_rate = 0
`))
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.EngineParams().RiskFreeRate)

	cfg, err = Load(writeConfig(t, `
[engine]
risk_free_rate = 0.035
`))
	require.NoError(t, err)
	assert.Equal(t, 0.035, cfg.EngineParams().RiskFreeRate)
}
