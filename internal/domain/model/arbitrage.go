package model

// ExchangeQuote is one exchange's price for a symbol. Quotes are passed as an
// ordered slice so that ties between exchanges resolve the same way every run.
type ExchangeQuote struct {
	Exchange string  `json:"exchange" toml:"exchange"`
	Price    float64 `json:"price" toml:"price"`
}

// ArbitrageOpportunity cross-exchange spread report for a single token
type ArbitrageOpportunity struct {
	ID               string  `json:"id"`
	Token            string  `json:"token"`
	Profitable       bool    `json:"profitable"`
	ProfitPercentage float64 `json:"profit_percentage"` // (sell-buy)/buy*100, 4dp
	BuyExchange      string  `json:"buy_exchange"`      // cheapest quote
	SellExchange     string  `json:"sell_exchange"`     // most expensive quote
	BuyPrice         float64 `json:"buy_price"`
	SellPrice        float64 `json:"sell_price"`
	VolumeRequired   float64 `json:"volume_required"`   // USD
	GasCostEstimate  float64 `json:"gas_cost_estimate"` // USD
	Timestamp        int64   `json:"ts_ms"`
}
