package model

// TokenData descriptive token metadata. Only the contract address is ever
// validated.
type TokenData struct {
	Symbol          string  `json:"symbol" toml:"symbol"`
	Name            string  `json:"name" toml:"name"`
	ContractAddress string  `json:"contract_address" toml:"contract_address"`
	Decimals        int     `json:"decimals" toml:"decimals"`
	PriceUSD        float64 `json:"price_usd" toml:"price_usd"`
	MarketCap       float64 `json:"market_cap" toml:"market_cap"`
	Volume24h       float64 `json:"volume_24h" toml:"volume_24h"`
	Liquidity       float64 `json:"liquidity" toml:"liquidity"`
}
