package service

// Params tunable constants of the metrics engine
type Params struct {
	RiskFreeRate float64 // subtracted from mean pnl in the Sharpe ratio

	// arbitrage
	ProfitThreshold float64 // minimum spread % to flag an opportunity as profitable
	MinVolumeUSD    float64 // volume needed for the spread to pay off
	GasCostUSD      float64 // estimated execution gas cost attached to reports

	// liquidity
	ReferencePrice     float64 // used when a pool carries no price
	DailyVolatility    float64 // half-width of the optimal range is 2x this
	MaxAllocationShare float64 // share of capital recommended for a single pool
	MaxAllocationUSD   float64 // hard cap on the recommended allocation

	// mev
	GasPriceGwei float64
	EthPriceUSD  float64
	MinMEVProfit float64 // USD, after gas
}

const DefaultRiskFreeRate = 0.02

func DefaultParams() Params {
	return Params{
		RiskFreeRate:       DefaultRiskFreeRate,
		ProfitThreshold:    0.5,
		MinVolumeUSD:       10000,
		GasCostUSD:         50,
		ReferencePrice:     2000,
		DailyVolatility:    0.05,
		MaxAllocationShare: 0.8,
		MaxAllocationUSD:   50000,
		GasPriceGwei:       20,
		EthPriceUSD:        2000,
		MinMEVProfit:       50,
	}
}
