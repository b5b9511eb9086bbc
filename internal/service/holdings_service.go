package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/broker"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/repository"
)

const defaultShares = 1000

// HoldingsService is the reconciliation engine for the user's portfolio:
// it merges persisted positions with freshly fetched estimates, look-through
// valuations, and NAV update statuses.
type HoldingsService struct {
	holdings    *repository.HoldingsRepository
	quotes      *QuoteService
	lookThrough *LookThroughService
	details     *DetailService
	navStatus   *NavStatusService
	now         func() time.Time
}

// NewHoldingsService creates a new HoldingsService.
func NewHoldingsService(
	holdings *repository.HoldingsRepository,
	quotes *QuoteService,
	lookThrough *LookThroughService,
	details *DetailService,
	navStatus *NavStatusService,
) *HoldingsService {
	return &HoldingsService{
		holdings:    holdings,
		quotes:      quotes,
		lookThrough: lookThrough,
		details:     details,
		navStatus:   navStatus,
		now:         time.Now,
	}
}

// List retrieves all holdings.
func (s *HoldingsService) List(ctx context.Context) ([]model.Holding, error) {
	return s.holdings.List(ctx)
}

// Add creates a holding for the fund with a starter position of 1000 shares
// at the current value. Adding a fund that is already held is a no-op
// returning the existing holding.
//
// The quote is required; the enrichments (accumulated NAV and trailing
// returns, NAV update status, look-through valuation) are fetched
// concurrently and are each best-effort, so one slow or failing endpoint
// never blocks adding the position.
//
// Parameters:
//   - ctx: context for cancellation
//   - code: 6-digit fund code
//
// Returns:
//   - model.Holding: the created or existing holding
//   - error: validation or fetch failure
func (s *HoldingsService) Add(ctx context.Context, code string) (model.Holding, error) {
	if err := validateFundCode(code); err != nil {
		return model.Holding{}, err
	}

	existing, err := s.holdings.GetByCode(ctx, code)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrHoldingNotFound) {
		return model.Holding{}, err
	}

	quote, err := s.quotes.FetchQuote(ctx, code)
	if err != nil {
		return model.Holding{}, err
	}

	holding := model.Holding{
		FundQuote: quote,
		Shares:    defaultShares,
		Source:    model.SourceManual,
	}
	holding.CostBasis = holding.CurrentValue()

	s.enrich(ctx, &holding)
	return s.holdings.Insert(ctx, holding)
}

// enrich fills the best-effort fields of a fresh holding in parallel.
// Failures only log; the holding stays valid without them.
func (s *HoldingsService) enrich(ctx context.Context, holding *model.Holding) {
	baselineNav := holding.Nav

	var detail model.FundDetail
	var detailOK bool
	var lookThrough model.LookThroughResult
	var lookThroughOK bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.details.Detail(gctx, holding.Code)
		if err != nil {
			log.Printf("Detail enrichment failed for %s: %v", holding.Code, err)
			return nil
		}
		detail = d
		detailOK = true
		return nil
	})
	g.Go(func() error {
		result := s.lookThrough.Compute(gctx, holding.Code, baselineNav)
		if len(result.Positions) > 0 {
			lookThrough = result
			lookThroughOK = true
		}
		return nil
	})
	_ = g.Wait()

	if detailOK {
		if detail.AccumulatedNav > 0 {
			holding.AccumulatedNav = &detail.AccumulatedNav
			holding.AccumulatedNavDate = &detail.AccumulatedNavDate
		}
		holding.Return1M = &detail.Return1M
		holding.Return3M = &detail.Return3M
		holding.Return6M = &detail.Return6M
		holding.Return1Y = &detail.Return1Y

		status := s.navStatus.StatusFromHistory(detail.NavHistory)
		holding.NavUpdated = &status.Updated
		holding.NavUpdateGrowth = status.GrowthPercent
		holding.NavUpdateDate = status.Date
	}
	if lookThroughOK {
		holding.LookThroughEstimate = &lookThrough.Estimate
		holding.LookThroughGrowth = &lookThrough.GrowthPercent
	}
}

// ImportBroker merges a pasted broker export into the portfolio. Existing
// holdings keep their confirmed NAV and look-through fields and take the
// imported shares, cost, and broker NAV; unknown funds become new holdings
// sourced from the import, quoted best-effort.
//
// Parameters:
//   - ctx: context for cancellation
//   - text: raw pasted export, one position per line
//
// Returns:
//   - []model.Holding: the holdings as stored after the merge
//   - error: apperrors.ErrEmptyImport when no line parsed
func (s *HoldingsService) ImportBroker(ctx context.Context, text string) ([]model.Holding, error) {
	positions, err := broker.ParsePositions(text)
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(positions))
	for _, position := range positions {
		codes = append(codes, position.Code)
	}
	quotes := s.quotes.BatchQuotes(ctx, codes)
	quoteByCode := make(map[string]model.FundQuote, len(quotes))
	for _, quote := range quotes {
		quoteByCode[quote.Code] = quote
	}

	importTime := s.now().Format("15:04")
	merged := make([]model.Holding, 0, len(positions))
	for _, position := range positions {
		holding, err := s.mergePosition(ctx, position, quoteByCode, importTime)
		if err != nil {
			return nil, err
		}
		merged = append(merged, holding)
	}
	return merged, nil
}

func (s *HoldingsService) mergePosition(
	ctx context.Context,
	position broker.Position,
	quoteByCode map[string]model.FundQuote,
	importTime string,
) (model.Holding, error) {
	brokerNav := position.Nav

	existing, err := s.holdings.GetByCode(ctx, position.Code)
	if err == nil {
		existing.Shares = position.Shares
		existing.CostBasis = position.CostBasis
		existing.Source = model.SourceBrokerImport
		existing.BrokerNav = &brokerNav
		existing.BrokerImportTime = &importTime
		if err := s.holdings.Update(ctx, existing); err != nil {
			return model.Holding{}, err
		}
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrHoldingNotFound) {
		return model.Holding{}, err
	}

	holding := model.Holding{
		FundQuote: model.FundQuote{
			Code:       position.Code,
			Name:       position.Name,
			Nav:        position.Nav,
			Estimate:   position.Nav,
			UpdateTime: "--:--",
		},
		Shares:           position.Shares,
		CostBasis:        position.CostBasis,
		Source:           model.SourceBrokerImport,
		BrokerNav:        &brokerNav,
		BrokerImportTime: &importTime,
	}
	if quote, ok := quoteByCode[position.Code]; ok {
		holding.FundQuote = quote
		if holding.Name == "" {
			holding.Name = position.Name
		}
	}
	return s.holdings.Insert(ctx, holding)
}

// Refresh re-fetches quotes for all holdings and overwrites only the quote
// fields, leaving shares, cost, broker, and confirmed NAV state untouched.
// Funds whose fetch failed keep their previous quote.
func (s *HoldingsService) Refresh(ctx context.Context) ([]model.Holding, error) {
	holdings, err := s.holdings.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(holdings) == 0 {
		return holdings, nil
	}

	codes := make([]string, 0, len(holdings))
	for _, holding := range holdings {
		codes = append(codes, holding.Code)
	}

	for _, quote := range s.quotes.BatchQuotes(ctx, codes) {
		if err := s.holdings.UpdateQuote(ctx, quote.Code, quote); err != nil {
			log.Printf("Quote update failed for %s: %v", quote.Code, err)
		}
	}
	return s.holdings.List(ctx)
}

// RefreshNavStatus recomputes the NAV update status of every holding and
// persists the result.
func (s *HoldingsService) RefreshNavStatus(ctx context.Context) error {
	holdings, err := s.holdings.List(ctx)
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(holdings))
	for _, holding := range holdings {
		codes = append(codes, holding.Code)
	}
	statuses := s.navStatus.BatchStatus(ctx, codes)

	for _, holding := range holdings {
		status, ok := statuses[holding.Code]
		if !ok {
			continue
		}
		holding.NavUpdated = &status.Updated
		holding.NavUpdateGrowth = status.GrowthPercent
		holding.NavUpdateDate = status.Date
		if err := s.holdings.Update(ctx, holding); err != nil {
			log.Printf("NAV status update failed for %s: %v", holding.Code, err)
		}
	}
	return nil
}

// SetShares replaces the share count of one holding.
func (s *HoldingsService) SetShares(ctx context.Context, code string, shares float64) (model.Holding, error) {
	return s.updateHolding(ctx, code, func(holding *model.Holding) {
		if shares < 0 {
			shares = 0
		}
		holding.Shares = shares
	})
}

// SetCost replaces the per-unit cost basis of one holding.
func (s *HoldingsService) SetCost(ctx context.Context, code string, cost float64) (model.Holding, error) {
	return s.updateHolding(ctx, code, func(holding *model.Holding) {
		if cost < 0 {
			cost = 0
		}
		holding.CostBasis = cost
	})
}

// SetAmount back-solves the share count from a target market amount at the
// current per-unit value: shares = amount / value, rounded to 2 decimals.
// A holding with no usable value gets zero shares rather than infinity.
func (s *HoldingsService) SetAmount(ctx context.Context, code string, amount float64) (model.Holding, error) {
	if amount < 0 {
		return model.Holding{}, apperrors.ErrNegativeAmount
	}
	return s.updateHolding(ctx, code, func(holding *model.Holding) {
		value := holding.CurrentValue()
		if value <= 0 {
			holding.Shares = 0
			return
		}
		holding.Shares = roundTo(amount/value, 2)
	})
}

func (s *HoldingsService) updateHolding(ctx context.Context, code string, mutate func(*model.Holding)) (model.Holding, error) {
	holding, err := s.holdings.GetByCode(ctx, code)
	if err != nil {
		return model.Holding{}, err
	}
	mutate(&holding)
	if err := s.holdings.Update(ctx, holding); err != nil {
		return model.Holding{}, err
	}
	return holding, nil
}

// Remove deletes one holding.
func (s *HoldingsService) Remove(ctx context.Context, code string) error {
	return s.holdings.Delete(ctx, code)
}

// Summary computes the portfolio aggregates from the current holdings.
//
// Per holding: value = shares x current value, profit = shares x (current
// value - cost), today = shares x current value x growth/100. The profit
// rate divides total profit by total cost, guarded to 1 when the cost
// denominator is zero.
func (s *HoldingsService) Summary(ctx context.Context) (model.PortfolioSummary, error) {
	holdings, err := s.holdings.List(ctx)
	if err != nil {
		return model.PortfolioSummary{}, err
	}

	var summary model.PortfolioSummary
	var totalCost float64
	for i := range holdings {
		holding := &holdings[i]
		value := holding.CurrentValue()

		summary.TotalValue += holding.Shares * value
		summary.TotalProfit += holding.Shares * (value - holding.CostBasis)
		summary.TodayProfit += holding.Shares * value * holding.GrowthPercent / 100
		totalCost += holding.Shares * holding.CostBasis
	}
	summary.HoldingCount = len(holdings)

	if totalCost == 0 {
		totalCost = 1
	}
	summary.ProfitRatePercent = roundTo(summary.TotalProfit/totalCost*100, 2)
	return summary, nil
}

func validateFundCode(code string) error {
	if len(code) != 6 {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidFundCode, code)
	}
	if _, err := strconv.Atoi(code); err != nil {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidFundCode, code)
	}
	return nil
}
