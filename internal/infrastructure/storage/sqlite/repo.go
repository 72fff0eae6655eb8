package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"defilens/internal/application/port"
	"defilens/internal/domain/model"
)

type Repo struct {
	db *sql.DB
}

func New(path string) (*Repo, error) {
	// ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) GetDB() *sql.DB {
	return r.db
}

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS portfolio_reports (
  id TEXT PRIMARY KEY,
  total_value TEXT NOT NULL,
  total_invested TEXT NOT NULL,
  unrealized_pnl REAL NOT NULL,
  pnl_percentage REAL NOT NULL,
  position_count INTEGER NOT NULL,
  volatility REAL NOT NULL,
  sharpe_ratio REAL NOT NULL,
  largest_position TEXT NOT NULL,
  diversification_score REAL NOT NULL,
  ts_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_portfolio_ts ON portfolio_reports(ts_ms);

CREATE TABLE IF NOT EXISTS arbitrage_opportunities (
  id TEXT PRIMARY KEY,
  token TEXT NOT NULL,
  profitable INTEGER NOT NULL,
  profit_percentage REAL NOT NULL,
  buy_exchange TEXT NOT NULL,
  sell_exchange TEXT NOT NULL,
  buy_price REAL NOT NULL,
  sell_price REAL NOT NULL,
  volume_required REAL NOT NULL,
  gas_cost_estimate REAL NOT NULL,
  ts_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_arb_token ON arbitrage_opportunities(token);
CREATE INDEX IF NOT EXISTS idx_arb_ts ON arbitrage_opportunities(ts_ms);

CREATE TABLE IF NOT EXISTS liquidity_analyses (
  id TEXT PRIMARY KEY,
  pool_address TEXT NOT NULL,
  pool_json TEXT NOT NULL,
  capital REAL NOT NULL,
  recommended_allocation REAL NOT NULL,
  range_lower REAL NOT NULL,
  range_upper REAL NOT NULL,
  range_current REAL NOT NULL,
  expected_daily_fees REAL NOT NULL,
  il_estimate REAL NOT NULL,
  net_apy REAL NOT NULL,
  risk_score REAL NOT NULL,
  recommendation TEXT NOT NULL,
  ts_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_liq_pool ON liquidity_analyses(pool_address);

CREATE TABLE IF NOT EXISTS mev_opportunities (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  block_number INTEGER NOT NULL,
  type TEXT NOT NULL,
  estimated_profit REAL NOT NULL,
  gas_required INTEGER NOT NULL,
  confidence_score REAL NOT NULL,
  target_transaction TEXT NOT NULL,
  execution_window INTEGER NOT NULL,
  profit_after_gas REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mev_block ON mev_opportunities(block_number);
`)
	return err
}

func (r *Repo) SavePortfolioReport(ctx context.Context, m *model.PortfolioMetrics) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO portfolio_reports(id, total_value, total_invested, unrealized_pnl, pnl_percentage,
			position_count, volatility, sharpe_ratio, largest_position, diversification_score, ts_ms)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.TotalValue.String(), m.TotalInvested.String(), m.UnrealizedPnL, m.PnLPercentage,
		m.PositionCount, m.Volatility, m.SharpeRatio, m.LargestPosition, m.DiversificationScore, m.Timestamp)
	return err
}

func (r *Repo) SaveArbitrageOpportunity(ctx context.Context, arb *model.ArbitrageOpportunity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO arbitrage_opportunities(id, token, profitable, profit_percentage, buy_exchange, sell_exchange,
			buy_price, sell_price, volume_required, gas_cost_estimate, ts_ms)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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
		INSERT INTO liquidity_analyses(id, pool_address, pool_json, capital, recommended_allocation,
			range_lower, range_upper, range_current, expected_daily_fees, il_estimate, net_apy,
			risk_score, recommendation, ts_ms)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
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

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO mev_opportunities(block_number, type, estimated_profit, gas_required,
			confidence_score, target_transaction, execution_window, profit_after_gas)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, op := range ops {
		if _, err := stmt.ExecContext(ctx, int64(blockNumber), string(op.Type), op.EstimatedProfit, op.GasRequired,
			op.ConfidenceScore, op.TargetTransaction, op.ExecutionWindow, op.ProfitAfterGas); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetLatestArbitrage most recent stored opportunity for token, nil if none
func (r *Repo) GetLatestArbitrage(ctx context.Context, token string) (*model.ArbitrageOpportunity, error) {
	var arb model.ArbitrageOpportunity
	err := r.db.QueryRowContext(ctx, `
		SELECT id, token, profitable, profit_percentage, buy_exchange, sell_exchange,
			buy_price, sell_price, volume_required, gas_cost_estimate, ts_ms
		FROM arbitrage_opportunities WHERE token=? ORDER BY ts_ms DESC, rowid DESC LIMIT 1
	`, token).Scan(&arb.ID, &arb.Token, &arb.Profitable, &arb.ProfitPercentage, &arb.BuyExchange, &arb.SellExchange,
		&arb.BuyPrice, &arb.SellPrice, &arb.VolumeRequired, &arb.GasCostEstimate, &arb.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &arb, nil
}

// ListPortfolioReports newest first
func (r *Repo) ListPortfolioReports(ctx context.Context, limit int) ([]*model.PortfolioMetrics, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, total_value, total_invested, unrealized_pnl, pnl_percentage, position_count,
			volatility, sharpe_ratio, largest_position, diversification_score, ts_ms
		FROM portfolio_reports ORDER BY ts_ms DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.PortfolioMetrics
	for rows.Next() {
		var m model.PortfolioMetrics
		var value, invested string
		if err := rows.Scan(&m.ID, &value, &invested, &m.UnrealizedPnL, &m.PnLPercentage, &m.PositionCount,
			&m.Volatility, &m.SharpeRatio, &m.LargestPosition, &m.DiversificationScore, &m.Timestamp); err != nil {
			return nil, err
		}
		if m.TotalValue, err = decimal.NewFromString(value); err != nil {
			return nil, err
		}
		if m.TotalInvested, err = decimal.NewFromString(invested); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// ListMEVOpportunities stored opportunities of a block, best first
func (r *Repo) ListMEVOpportunities(ctx context.Context, blockNumber uint64) ([]model.MEVOpportunity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT type, estimated_profit, gas_required, confidence_score, target_transaction,
			execution_window, profit_after_gas
		FROM mev_opportunities WHERE block_number=? ORDER BY profit_after_gas DESC, id ASC
	`, int64(blockNumber))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MEVOpportunity
	for rows.Next() {
		op := model.MEVOpportunity{BlockNumber: blockNumber}
		var typ string
		if err := rows.Scan(&typ, &op.EstimatedProfit, &op.GasRequired, &op.ConfidenceScore,
			&op.TargetTransaction, &op.ExecutionWindow, &op.ProfitAfterGas); err != nil {
			return nil, err
		}
		op.Type = model.MEVType(typ)
		out = append(out, op)
	}
	return out, rows.Err()
}

var _ port.ReportRepository = (*Repo)(nil)
