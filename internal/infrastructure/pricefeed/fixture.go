package pricefeed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"defilens/internal/application/port"
	"defilens/internal/domain/model"
	"defilens/internal/infrastructure/config"
)

var ErrPoolNotFound = errors.New("pool not found")

func init() {
	Register(config.SourceFixture, func(_ context.Context, cfg *config.Config) (port.PriceSource, error) {
		return NewFixtureSource(cfg.Fixtures), nil
	})
}

// FixtureSource serves quotes, pools and MEV candidates from configured
// fixtures, so every analysis is reproducible.
type FixtureSource struct {
	quotes map[string]float64 // SYMBOL|exchange -> price
	pools  map[string]model.PoolData
	mev    map[uint64][]model.MEVCandidate
}

func NewFixtureSource(f config.Fixtures) *FixtureSource {
	s := &FixtureSource{
		quotes: make(map[string]float64, len(f.Quotes)),
		pools:  make(map[string]model.PoolData, len(f.Pools)),
		mev:    make(map[uint64][]model.MEVCandidate),
	}
	for _, q := range f.Quotes {
		s.quotes[quoteKey(q.Symbol, q.Exchange)] = q.Price
	}
	for _, p := range f.Pools {
		s.pools[strings.ToLower(p.Address)] = p
	}
	for _, m := range f.MEV {
		s.mev[m.Block] = append(s.mev[m.Block], m.MEVCandidate)
	}
	return s
}

func (s *FixtureSource) Name() string { return config.SourceFixture }

func (s *FixtureSource) Quotes(_ context.Context, symbol string, exchanges []string) ([]model.ExchangeQuote, error) {
	out := make([]model.ExchangeQuote, 0, len(exchanges))
	for _, ex := range exchanges {
		if px, ok := s.quotes[quoteKey(symbol, ex)]; ok {
			out = append(out, model.ExchangeQuote{Exchange: strings.ToLower(ex), Price: px})
		}
	}
	return out, nil
}

func (s *FixtureSource) Pool(_ context.Context, address string) (*model.PoolData, error) {
	p, ok := s.pools[strings.ToLower(address)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", address, ErrPoolNotFound)
	}
	return &p, nil
}

func (s *FixtureSource) Candidates(_ context.Context, blockNumber uint64) ([]model.MEVCandidate, error) {
	return append([]model.MEVCandidate(nil), s.mev[blockNumber]...), nil
}

func quoteKey(symbol, exchange string) string {
	return strings.ToUpper(strings.TrimSpace(symbol)) + "|" + strings.ToLower(strings.TrimSpace(exchange))
}

var (
	_ port.PriceSource = (*FixtureSource)(nil)
	_ port.PoolSource  = (*FixtureSource)(nil)
	_ port.MEVSource   = (*FixtureSource)(nil)
)
