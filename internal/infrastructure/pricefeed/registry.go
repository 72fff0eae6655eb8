package pricefeed

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"defilens/internal/application/port"
	"defilens/internal/infrastructure/config"
)

// Factory builds a price source from config; long-running sources are bound to ctx.
type Factory func(ctx context.Context, cfg *config.Config) (port.PriceSource, error)

// registry maps feed source names to their factories
var registry = make(map[string]Factory)

// Register is called from init() of each source implementation.
func Register(name string, factory Factory) {
	if factory == nil {
		log.Warn().Str("source", name).Msg("invalid price source factory")
		return
	}
	if _, exists := registry[name]; exists {
		log.Warn().Str("source", name).Msg("price source factory already registered, overwriting")
	}
	registry[name] = factory
	log.Debug().Str("source", name).Msg("price source factory registered")
}

func Get(name string) (Factory, bool) {
	factory, ok := registry[name]
	return factory, ok
}

// Names registered source names, sorted
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
