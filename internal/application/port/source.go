package port

import (
	"context"

	"defilens/internal/domain/model"
)

// PriceSource quotes for a symbol, one per requested exchange that has a
// price, in the order the exchanges were requested.
type PriceSource interface {
	Name() string
	Quotes(ctx context.Context, symbol string, exchanges []string) ([]model.ExchangeQuote, error)
}

// PoolSource pool state lookup by address
type PoolSource interface {
	Pool(ctx context.Context, address string) (*model.PoolData, error)
}

// MEVSource raw MEV candidates observed in a block
type MEVSource interface {
	Candidates(ctx context.Context, blockNumber uint64) ([]model.MEVCandidate, error)
}
