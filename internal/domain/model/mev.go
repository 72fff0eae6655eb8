package model

// MEVType kind of extractable value
type MEVType string

const (
	MEVSandwich     MEVType = "sandwich_attack"
	MEVArbitrage    MEVType = "arbitrage"
	MEVLiquidation  MEVType = "liquidation"
	MEVFrontRunning MEVType = "front_running"
)

// MEVCandidate raw opportunity before gas accounting
type MEVCandidate struct {
	Type              MEVType `json:"type" toml:"type"`
	EstimatedProfit   float64 `json:"estimated_profit" toml:"estimated_profit"` // USD
	GasRequired       int64   `json:"gas_required" toml:"gas_required"`
	ConfidenceScore   float64 `json:"confidence_score" toml:"confidence_score"` // 0-1
	TargetTransaction string  `json:"target_transaction" toml:"target_transaction"`
	ExecutionWindow   int     `json:"execution_window" toml:"execution_window"` // blocks
}

// MEVOpportunity candidate that survived the profit-after-gas filter
type MEVOpportunity struct {
	MEVCandidate
	BlockNumber    uint64  `json:"block_number"`
	ProfitAfterGas float64 `json:"profit_after_gas"`
}
