package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/model"
)

// HoldingsRepository provides data access methods for the holding table.
type HoldingsRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewHoldingsRepository creates a new HoldingsRepository with the provided
// database connection.
func NewHoldingsRepository(db *sql.DB) *HoldingsRepository {
	return &HoldingsRepository{db: db}
}

func (r *HoldingsRepository) WithTx(tx *sql.Tx) *HoldingsRepository {
	return &HoldingsRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *HoldingsRepository) getQuerier() interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const holdingColumns = `
    id, code, name, nav, estimate, growth_percent, update_time, nav_date,
    shares, cost_basis, source, broker_nav, broker_import_time,
    look_through_estimate, look_through_growth,
    accumulated_nav, accumulated_nav_date,
    return_1m, return_3m, return_6m, return_1y,
    nav_updated, nav_update_growth, nav_update_date`

// List retrieves all holdings ordered by creation time.
// Returns an empty slice if no holdings exist.
func (r *HoldingsRepository) List(ctx context.Context) ([]model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding ORDER BY created_at, code`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holdings: %w", err)
	}
	return holdings, nil
}

// GetByCode retrieves one holding by its fund code.
// Returns apperrors.ErrHoldingNotFound if no holding exists for the code.
func (r *HoldingsRepository) GetByCode(ctx context.Context, code string) (model.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holding WHERE code = ?`

	holding, err := scanHolding(r.getQuerier().QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Holding{}, apperrors.ErrHoldingNotFound
		}
		return model.Holding{}, err
	}
	return holding, nil
}

// Insert stores a new holding, assigning an ID when the caller left it empty.
func (r *HoldingsRepository) Insert(ctx context.Context, holding model.Holding) (model.Holding, error) {
	if holding.ID == "" {
		holding.ID = uuid.New().String()
	}

	query := `
        INSERT INTO holding (` + holdingColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.getQuerier().ExecContext(ctx, query,
		holding.ID, holding.Code, holding.Name, holding.Nav, holding.Estimate,
		holding.GrowthPercent, holding.UpdateTime, holding.NavDate,
		holding.Shares, holding.CostBasis, holding.Source,
		holding.BrokerNav, holding.BrokerImportTime,
		holding.LookThroughEstimate, holding.LookThroughGrowth,
		holding.AccumulatedNav, holding.AccumulatedNavDate,
		holding.Return1M, holding.Return3M, holding.Return6M, holding.Return1Y,
		holding.NavUpdated, holding.NavUpdateGrowth, holding.NavUpdateDate,
	)
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to insert holding: %w", err)
	}
	return holding, nil
}

// Update replaces every mutable column of the holding identified by its code.
func (r *HoldingsRepository) Update(ctx context.Context, holding model.Holding) error {
	query := `
        UPDATE holding SET
            name = ?, nav = ?, estimate = ?, growth_percent = ?,
            update_time = ?, nav_date = ?,
            shares = ?, cost_basis = ?, source = ?,
            broker_nav = ?, broker_import_time = ?,
            look_through_estimate = ?, look_through_growth = ?,
            accumulated_nav = ?, accumulated_nav_date = ?,
            return_1m = ?, return_3m = ?, return_6m = ?, return_1y = ?,
            nav_updated = ?, nav_update_growth = ?, nav_update_date = ?
        WHERE code = ?`

	result, err := r.getQuerier().ExecContext(ctx, query,
		holding.Name, holding.Nav, holding.Estimate, holding.GrowthPercent,
		holding.UpdateTime, holding.NavDate,
		holding.Shares, holding.CostBasis, holding.Source,
		holding.BrokerNav, holding.BrokerImportTime,
		holding.LookThroughEstimate, holding.LookThroughGrowth,
		holding.AccumulatedNav, holding.AccumulatedNavDate,
		holding.Return1M, holding.Return3M, holding.Return6M, holding.Return1Y,
		holding.NavUpdated, holding.NavUpdateGrowth, holding.NavUpdateDate,
		holding.Code,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}
	return requireRow(result)
}

// UpdateQuote overwrites only the live quote columns of one holding, leaving
// shares, cost, broker, and confirmed-NAV columns untouched. Last write wins.
func (r *HoldingsRepository) UpdateQuote(ctx context.Context, code string, quote model.FundQuote) error {
	query := `
        UPDATE holding SET
            name = ?, nav = ?, estimate = ?, growth_percent = ?,
            update_time = ?, nav_date = ?
        WHERE code = ?`

	result, err := r.getQuerier().ExecContext(ctx, query,
		quote.Name, quote.Nav, quote.Estimate, quote.GrowthPercent,
		quote.UpdateTime, quote.NavDate, code,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding quote: %w", err)
	}
	return requireRow(result)
}

// Delete removes one holding by its fund code.
// Returns apperrors.ErrHoldingNotFound if no holding exists for the code.
func (r *HoldingsRepository) Delete(ctx context.Context, code string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM holding WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanHolding(row scanner) (model.Holding, error) {
	var holding model.Holding
	err := row.Scan(
		&holding.ID, &holding.Code, &holding.Name, &holding.Nav,
		&holding.Estimate, &holding.GrowthPercent, &holding.UpdateTime,
		&holding.NavDate, &holding.Shares, &holding.CostBasis, &holding.Source,
		&holding.BrokerNav, &holding.BrokerImportTime,
		&holding.LookThroughEstimate, &holding.LookThroughGrowth,
		&holding.AccumulatedNav, &holding.AccumulatedNavDate,
		&holding.Return1M, &holding.Return3M, &holding.Return6M, &holding.Return1Y,
		&holding.NavUpdated, &holding.NavUpdateGrowth, &holding.NavUpdateDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Holding{}, err
		}
		return model.Holding{}, fmt.Errorf("failed to scan holding: %w", err)
	}
	return holding, nil
}
