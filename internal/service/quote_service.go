package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/batch"
	"github.com/chorddesign/fundmatrix/internal/eastmoney"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/repository"
)

// QuoteService resolves fund quotes through the currently selected data
// source. The selection is persisted, so it survives restarts.
type QuoteService struct {
	fundClient  eastmoney.Client
	lookThrough *LookThroughService
	settings    *repository.SettingsRepository
}

// NewQuoteService creates a new QuoteService.
func NewQuoteService(
	fundClient eastmoney.Client,
	lookThrough *LookThroughService,
	settings *repository.SettingsRepository,
) *QuoteService {
	return &QuoteService{
		fundClient:  fundClient,
		lookThrough: lookThrough,
		settings:    settings,
	}
}

// DataSource returns the persisted data source selection. A missing or
// unrecognized stored value falls back to the default instead of failing,
// so a stale selection can never brick the dashboard.
func (s *QuoteService) DataSource(ctx context.Context) model.DataSource {
	value, err := s.settings.Get(ctx, repository.SettingDataSource)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSettingNotFound) {
			log.Printf("Data source read failed: %v", err)
		}
		return model.DefaultDataSource
	}

	source := model.DataSource(value)
	if !source.Valid() {
		return model.DefaultDataSource
	}
	return source
}

// SetDataSource validates and persists a new data source selection.
// Returns apperrors.ErrInvalidDataSource for unknown identifiers.
func (s *QuoteService) SetDataSource(ctx context.Context, source model.DataSource) error {
	if !source.Valid() {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidDataSource, source)
	}
	return s.settings.Put(ctx, repository.SettingDataSource, string(source))
}

// Sources returns the selectable data source catalog.
func (s *QuoteService) Sources() []model.DataSourceInfo {
	return model.DataSources
}

// FetchQuote retrieves one fund quote through the selected data source.
//
// The tiantian and eastmoney sources both resolve to the intraday estimate
// endpoint; they are kept distinct selections because they may diverge
// again. The calculated source replaces the provider's estimate with the
// look-through valuation over the official NAV, falling back to the
// provider estimate when no position data exists.
//
// Parameters:
//   - ctx: context for cancellation
//   - code: 6-digit fund code
//
// Returns:
//   - model.FundQuote: the resolved quote
//   - error: fetch taxonomy error when every path failed
func (s *QuoteService) FetchQuote(ctx context.Context, code string) (model.FundQuote, error) {
	payload, err := s.fundClient.FetchEstimate(ctx, code)
	if err != nil {
		return model.FundQuote{}, err
	}
	quote := payload.Quote()

	switch s.DataSource(ctx) {
	case model.DataSourceTiantian, model.DataSourceEastmoney:
		return quote, nil
	case model.DataSourceCalculated:
		result := s.lookThrough.Compute(ctx, code, quote.Nav)
		if len(result.Positions) == 0 {
			return quote, nil
		}
		quote.Estimate = result.Estimate
		quote.GrowthPercent = result.GrowthPercent
		return quote, nil
	default:
		return quote, nil
	}
}

// BatchQuotes retrieves quotes for many funds with bounded concurrency and
// request staggering. Funds whose fetch fails are absent from the result.
func (s *QuoteService) BatchQuotes(ctx context.Context, codes []string) []model.FundQuote {
	return batch.FetchAll(ctx, codes, s.FetchQuote)
}
