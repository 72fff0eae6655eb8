package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"defilens/internal/application/port"
	"defilens/internal/domain/model"
)

// Repo keeps the latest report of each kind in a hash and emits signals for
// profitable arbitrage and MEV opportunities on a stream and a pubsub channel.
type Repo struct {
	rdb          *redis.Client
	prefix       string
	ttl          time.Duration
	keyLatest    string // prefix + ":latest"
	signalStream string
	signalChan   string
}

// Signal payload published for consumers
type Signal struct {
	Kind   string  `json:"kind"` // "arbitrage" or "mev"
	Ref    string  `json:"ref"`  // token or target transaction
	Value  float64 `json:"value"`
	TsMs   int64   `json:"ts_ms"`
	Detail string  `json:"detail"`
}

func New(rdb *redis.Client, prefix string, ttl time.Duration, signalStream, signalChan string) *Repo {
	if strings.TrimSpace(prefix) == "" {
		prefix = "defilens"
	}
	if strings.TrimSpace(signalStream) == "" {
		signalStream = prefix + ":signals"
	}
	if strings.TrimSpace(signalChan) == "" {
		signalChan = prefix + ":signals:pub"
	}
	return &Repo{
		rdb:          rdb,
		prefix:       prefix,
		ttl:          ttl,
		keyLatest:    prefix + ":latest",
		signalStream: signalStream,
		signalChan:   signalChan,
	}
}

// Close is a no-op, the client is owned by the container.
func (r *Repo) Close() error { return nil }

func (r *Repo) setLatest(ctx context.Context, field string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, r.keyLatest, field, string(b))
	if r.ttl > 0 {
		pipe.Expire(ctx, r.keyLatest, r.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Repo) signal(ctx context.Context, s Signal) error {
	_, err := r.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: r.signalStream,
		Values: map[string]any{
			"kind":   s.Kind,
			"ref":    s.Ref,
			"value":  s.Value,
			"ts_ms":  s.TsMs,
			"detail": s.Detail,
		},
	}).Result()
	if err != nil {
		return err
	}

	msg, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Publish(ctx, r.signalChan, string(msg)).Err()
}

func (r *Repo) SavePortfolioReport(ctx context.Context, m *model.PortfolioMetrics) error {
	return r.setLatest(ctx, "portfolio", m)
}

func (r *Repo) SaveArbitrageOpportunity(ctx context.Context, arb *model.ArbitrageOpportunity) error {
	if err := r.setLatest(ctx, LatestField("arbitrage", arb.Token), arb); err != nil {
		return err
	}
	if !arb.Profitable {
		return nil
	}
	return r.signal(ctx, ArbitrageSignal(arb))
}

func (r *Repo) SaveLiquidityAnalysis(ctx context.Context, a *model.LiquidityAnalysis) error {
	return r.setLatest(ctx, LatestField("liquidity", a.Pool.Address), a)
}

func (r *Repo) SaveMEVOpportunities(ctx context.Context, blockNumber uint64, ops []model.MEVOpportunity) error {
	if err := r.setLatest(ctx, "mev", ops); err != nil {
		return err
	}
	ts := time.Now().UnixMilli()
	for _, op := range ops {
		if err := r.signal(ctx, MEVSignal(blockNumber, op, ts)); err != nil {
			return err
		}
	}
	return nil
}

// LatestField hash field name, e.g. "arbitrage:ETH"
func LatestField(kind, ref string) string {
	return fmt.Sprintf("%s:%s", kind, ref)
}

func ArbitrageSignal(arb *model.ArbitrageOpportunity) Signal {
	return Signal{
		Kind:   "arbitrage",
		Ref:    arb.Token,
		Value:  arb.ProfitPercentage,
		TsMs:   arb.Timestamp,
		Detail: fmt.Sprintf("buy %s @ %.8f sell %s @ %.8f", arb.BuyExchange, arb.BuyPrice, arb.SellExchange, arb.SellPrice),
	}
}

func MEVSignal(blockNumber uint64, op model.MEVOpportunity, ts int64) Signal {
	return Signal{
		Kind:   "mev",
		Ref:    op.TargetTransaction,
		Value:  op.ProfitAfterGas,
		TsMs:   ts,
		Detail: fmt.Sprintf("%s block=%d window=%d confidence=%.2f", op.Type, blockNumber, op.ExecutionWindow, op.ConfidenceScore),
	}
}

var _ port.ReportRepository = (*Repo)(nil)
