package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chorddesign/fundmatrix/internal/apperrors"
)

// Setting keys in use.
const (
	SettingDataSource    = "fund_data_source"
	SettingIndexSnapshot = "market_indices_cache"
)

// SettingsRepository provides data access methods for the setting table,
// a small key-value store.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new SettingsRepository with the provided
// database connection.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves one setting value by key.
// Returns apperrors.ErrSettingNotFound if the key has never been stored.
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", apperrors.ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	return value, nil
}

// Put stores one setting value, replacing any previous value for the key.
func (r *SettingsRepository) Put(ctx context.Context, key, value string) error {
	query := `
        INSERT INTO setting (key, value, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}
