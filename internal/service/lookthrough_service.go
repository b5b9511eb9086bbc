package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/chorddesign/fundmatrix/internal/cache"
	"github.com/chorddesign/fundmatrix/internal/eastmoney"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/sina"
)

const positionsCacheTTL = 5 * time.Minute

// LookThroughService values a fund through its disclosed stock positions:
// the weighted live change of the top positions applied to a baseline NAV.
// It is the engine behind the "calculated" data source.
type LookThroughService struct {
	fundClient  eastmoney.Client
	stockClient sina.Client
	positions   *cache.Cache[string, []model.StockPosition]
	now         func() time.Time
}

// NewLookThroughService creates a new LookThroughService.
func NewLookThroughService(fundClient eastmoney.Client, stockClient sina.Client) *LookThroughService {
	return &LookThroughService{
		fundClient:  fundClient,
		stockClient: stockClient,
		positions:   cache.New[string, []model.StockPosition](positionsCacheTTL),
		now:         time.Now,
	}
}

// Positions returns the fund's disclosed top stock positions, trying sources
// in order until one answers: the short-term cache, the fund detail bundle,
// the quarterly archive for the current then previous year, and finally the
// built-in preset tables. A fund with no position data anywhere yields an
// empty slice, never an error.
//
// Parameters:
//   - ctx: context for cancellation
//   - code: 6-digit fund code
//
// Returns:
//   - []model.StockPosition: top positions, possibly empty
func (s *LookThroughService) Positions(ctx context.Context, code string) []model.StockPosition {
	if cached, ok := s.positions.Get(code); ok {
		return cached
	}

	if positions := s.fetchPositions(ctx, code); len(positions) > 0 {
		s.positions.Put(code, positions)
		return positions
	}

	if preset, ok := presetPositions[code]; ok {
		s.positions.Put(code, preset)
		return preset
	}
	return []model.StockPosition{}
}

func (s *LookThroughService) fetchPositions(ctx context.Context, code string) []model.StockPosition {
	bundle, err := s.fundClient.FetchDetail(ctx, code)
	if err != nil {
		log.Printf("Position detail fetch failed for %s: %v", code, err)
	} else if positions := bundle.Positions(); len(positions) > 0 {
		return positions
	}

	// Early in a year the current-year archive can still be empty.
	year := s.now().Year()
	for _, y := range []int{year, year - 1} {
		positions, err := s.fundClient.FetchArchivePositions(ctx, code, y)
		if err != nil {
			log.Printf("Archive fetch failed for %s year %d: %v", code, y, err)
			continue
		}
		if len(positions) > 0 {
			return positions
		}
	}
	return nil
}

// Compute values the fund from its positions' live quotes.
//
// The estimated change is the position-weighted average of the live stock
// changes over the answered weights; positions without a live quote count
// neither in the numerator nor the denominator. When no weight answers at
// all, a nominal top-ten coverage of 50 percent keeps the division defined.
// The result falls back to the baseline NAV unchanged when the fund has no
// position data, so this method never fails the caller.
//
// Parameters:
//   - ctx: context for cancellation
//   - code: 6-digit fund code
//   - baselineNav: the official NAV the change is applied to
//
// Returns:
//   - model.LookThroughResult: estimate rounded to 4 decimals, growth to 2,
//     and the positions annotated with live prices where available
func (s *LookThroughService) Compute(ctx context.Context, code string, baselineNav float64) model.LookThroughResult {
	positions := s.Positions(ctx, code)
	if len(positions) == 0 {
		return model.LookThroughResult{
			Estimate:      baselineNav,
			GrowthPercent: 0,
			Positions:     []model.StockPosition{},
		}
	}

	codes := make([]string, 0, len(positions))
	for _, position := range positions {
		codes = append(codes, position.StockCode)
	}

	quotes, err := s.stockClient.FetchQuotes(ctx, codes)
	if err != nil {
		log.Printf("Stock quote fetch failed for %s: %v", code, err)
		quotes = map[string]model.StockQuote{}
	}

	totalWeightedChange := 0.0
	totalWeight := 0.0
	annotated := make([]model.StockPosition, len(positions))
	for i, position := range positions {
		annotated[i] = position
		quote, ok := quotes[position.StockCode]
		if !ok {
			continue
		}
		price := quote.Price
		change := quote.ChangePercent
		annotated[i].LivePrice = &price
		annotated[i].LiveChangePercent = &change

		totalWeightedChange += position.WeightPercent * change
		totalWeight += position.WeightPercent
	}

	effectiveWeight := totalWeight
	if effectiveWeight <= 0 {
		effectiveWeight = 50
	}
	growth := totalWeightedChange / effectiveWeight
	estimate := baselineNav * (1 + growth/100)

	return model.LookThroughResult{
		Estimate:      roundTo(estimate, 4),
		GrowthPercent: roundTo(growth, 2),
		Positions:     annotated,
	}
}

func roundTo(v float64, places int) float64 {
	s := strconv.FormatFloat(v, 'f', places, 64)
	r, _ := strconv.ParseFloat(s, 64)
	return r
}
