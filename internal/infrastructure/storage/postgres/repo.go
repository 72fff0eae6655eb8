package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/jackc/pgx/v5/stdlib"

	"defilens/internal/application/port"
	"defilens/internal/domain/model"
)

type Repo struct {
	db *sql.DB
}

func New(dsn string) (*Repo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS portfolio_reports (
  id TEXT PRIMARY KEY,
  total_value NUMERIC NOT NULL,
  total_invested NUMERIC NOT NULL,
  unrealized_pnl DOUBLE PRECISION NOT NULL,
  pnl_percentage DOUBLE PRECISION NOT NULL,
  position_count INTEGER NOT NULL,
  volatility DOUBLE PRECISION NOT NULL,
  sharpe_ratio DOUBLE PRECISION NOT NULL,
  largest_position TEXT NOT NULL,
  diversification_score DOUBLE PRECISION NOT NULL,
  ts_ms BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_portfolio_ts ON portfolio_reports(ts_ms);

CREATE TABLE IF NOT EXISTS arbitrage_opportunities (
  id TEXT PRIMARY KEY,
  token TEXT NOT NULL,
  profitable BOOLEAN NOT NULL,
  profit_percentage DOUBLE PRECISION NOT NULL,
  buy_exchange TEXT NOT NULL,
  sell_exchange TEXT NOT NULL,
  buy_price DOUBLE PRECISION NOT NULL,
  sell_price DOUBLE PRECISION NOT NULL,
  volume_required DOUBLE PRECISION NOT NULL,
  gas_cost_estimate DOUBLE PRECISION NOT NULL,
  ts_ms BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_arb_token_ts ON arbitrage_opportunities(token, ts_ms);

CREATE TABLE IF NOT EXISTS liquidity_analyses (
  id TEXT PRIMARY KEY,
  pool_address TEXT NOT NULL,
  pool JSONB NOT NULL,
  capital DOUBLE PRECISION NOT NULL,
  recommended_allocation DOUBLE PRECISION NOT NULL,
  range_lower DOUBLE PRECISION NOT NULL,
  range_upper DOUBLE PRECISION NOT NULL,
  range_current DOUBLE PRECISION NOT NULL,
  expected_daily_fees DOUBLE PRECISION NOT NULL,
  il_estimate DOUBLE PRECISION NOT NULL,
  net_apy DOUBLE PRECISION NOT NULL,
  risk_score DOUBLE PRECISION NOT NULL,
  recommendation TEXT NOT NULL,
  ts_ms BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_liq_pool ON liquidity_analyses(pool_address);

CREATE TABLE IF NOT EXISTS mev_opportunities (
  id BIGSERIAL PRIMARY KEY,
  block_number BIGINT NOT NULL,
  type TEXT NOT NULL,
  estimated_profit DOUBLE PRECISION NOT NULL,
  gas_required BIGINT NOT NULL,
  confidence_score DOUBLE PRECISION NOT NULL,
  target_transaction TEXT NOT NULL,
  execution_window INTEGER NOT NULL,
  profit_after_gas DOUBLE PRECISION NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mev_block ON mev_opportunities(block_number);
`)
	return err
}

func (r *Repo) SavePortfolioReport(ctx context.Context, m *model.PortfolioMetrics) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO portfolio_reports(id, total_value, total_invested, unrealized_pnl, pnl_percentage,
			position_count, volatility, sharpe_ratio, largest_position, diversification_score, ts_ms)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`, m.ID, m.TotalValue.String(), m.TotalInvested.String(), m.UnrealizedPnL, m.PnLPercentage,
		m.PositionCount, m.Volatility, m.SharpeRatio, m.LargestPosition, m.DiversificationScore, m.Timestamp)
	return err
}

func (r *Repo) SaveArbitrageOpportunity(ctx context.Context, arb *model.ArbitrageOpportunity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO arbitrage_opportunities(id, token, profitable, profit_percentage, buy_exchange, sell_exchange,
			buy_price, sell_price, volume_required, gas_cost_estimate, ts_ms)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING
	`, arb.ID, arb.Token, arb.Profitable, arb.ProfitPercentage, arb.BuyExchange, arb.SellExchange,
		arb.BuyPrice, arb.SellPrice, arb.VolumeRequired, arb.GasCostEstimate, arb.Timestamp)
	return err
}

func (r *Repo) SaveLiquidityAnalysis(ctx context.Context, a *model.LiquidityAnalysis) error {
	pool, err := json.Marshal(a.Pool)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO liquidity_analyses(id, pool_address, pool, capital, recommended_allocation,
			range_lower, range_upper, range_current, expected_daily_fees, il_estimate, net_apy,
			risk_score, recommendation, ts_ms)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO NOTHING
	`, a.ID, a.Pool.Address, string(pool), a.Capital, a.RecommendedAllocation,
		a.OptimalRange.Lower, a.OptimalRange.Upper, a.OptimalRange.Current, a.ExpectedDailyFees,
		a.ImpermanentLossEstimate, a.NetAPY, a.RiskScore, a.Recommendation.String(), a.Timestamp)
	return err
}

func (r *Repo) SaveMEVOpportunities(ctx context.Context, blockNumber uint64, ops []model.MEVOpportunity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, op := range ops {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO mev_opportunities(block_number, type, estimated_profit, gas_required,
				confidence_score, target_transaction, execution_window, profit_after_gas)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		`, int64(blockNumber), string(op.Type), op.EstimatedProfit, op.GasRequired,
			op.ConfidenceScore, op.TargetTransaction, op.ExecutionWindow, op.ProfitAfterGas); err != nil {
			return err
		}
	}
	return tx.Commit()
}

var _ port.ReportRepository = (*Repo)(nil)
