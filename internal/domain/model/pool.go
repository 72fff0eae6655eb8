package model

// PoolData liquidity pool snapshot. All numeric fields are non-negative; no
// cross-field invariant is enforced.
type PoolData struct {
	Address   string  `json:"pool_address" toml:"address"`
	Token0    string  `json:"token0" toml:"token0"`
	Token1    string  `json:"token1" toml:"token1"`
	FeeTier   float64 `json:"fee_tier" toml:"fee_tier"`
	TVL       float64 `json:"tvl" toml:"tvl"`
	Volume24h float64 `json:"volume_24h" toml:"volume_24h"`
	APY       float64 `json:"apy" toml:"apy"`
	ILRisk    float64 `json:"impermanent_loss_risk" toml:"il_risk"`
	Price     float64 `json:"price,omitempty" toml:"price"` // 0 = use the engine reference price
}

// PriceRange concentrated-liquidity price band
type PriceRange struct {
	Lower   float64 `json:"lower_bound"`
	Upper   float64 `json:"upper_bound"`
	Current float64 `json:"current_price"`
}

// PositionMetrics expected performance of a liquidity position
type PositionMetrics struct {
	DailyFees  float64 `json:"daily_fees"`
	ILEstimate float64 `json:"il_estimate"`
	NetAPY     float64 `json:"net_apy"`
}

// LiquidityAnalysis result of a liquidity provision optimization
type LiquidityAnalysis struct {
	ID                      string         `json:"id"`
	Pool                    PoolData       `json:"pool_info"`
	Capital                 float64        `json:"capital"`
	RecommendedAllocation   float64        `json:"recommended_allocation"`
	OptimalRange            PriceRange     `json:"optimal_price_range"`
	ExpectedDailyFees       float64        `json:"expected_daily_fees"`
	ImpermanentLossEstimate float64        `json:"impermanent_loss_estimate"`
	NetAPY                  float64        `json:"net_apy_estimate"`
	RiskScore               float64        `json:"risk_score"`
	Recommendation          Recommendation `json:"recommendation"`
	Timestamp               int64          `json:"ts_ms"`
}
