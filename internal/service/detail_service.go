package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chorddesign/fundmatrix/internal/cache"
	"github.com/chorddesign/fundmatrix/internal/eastmoney"
	"github.com/chorddesign/fundmatrix/internal/model"
)

const (
	detailCacheTTL   = 5 * time.Minute
	navHistoryLength = 30
)

// DetailService assembles the per-fund detail bundle from the detail and
// estimate endpoints, cached short-term so repeated views and the NAV
// status checks share one fetch.
type DetailService struct {
	fundClient eastmoney.Client
	details    *cache.Cache[string, model.FundDetail]
}

// NewDetailService creates a new DetailService.
func NewDetailService(fundClient eastmoney.Client) *DetailService {
	return &DetailService{
		fundClient: fundClient,
		details:    cache.New[string, model.FundDetail](detailCacheTTL),
	}
}

// Detail retrieves the assembled detail for one fund.
//
// The detail bundle and the live estimate are fetched concurrently. The
// bundle is required; a failed estimate degrades to NAV-only display rather
// than failing the whole view.
//
// Parameters:
//   - ctx: context for cancellation
//   - code: 6-digit fund code
//
// Returns:
//   - model.FundDetail: name, live estimate, trailing returns, manager,
//     recent NAV history, and top positions
//   - error: fetch taxonomy error when the detail bundle is unavailable
func (s *DetailService) Detail(ctx context.Context, code string) (model.FundDetail, error) {
	if cached, ok := s.details.Get(code); ok {
		return cached, nil
	}

	var bundle eastmoney.DetailBundle
	var quote model.FundQuote

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bundle, err = s.fundClient.FetchDetail(gctx, code)
		return err
	})
	g.Go(func() error {
		payload, err := s.fundClient.FetchEstimate(gctx, code)
		if err == nil {
			quote = payload.Quote()
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.FundDetail{}, err
	}

	detail := model.FundDetail{
		Code:           code,
		Name:           bundle.Name,
		Nav:            quote.Nav,
		NavDate:        quote.NavDate,
		Estimate:       quote.Estimate,
		EstimateGrowth: quote.GrowthPercent,
		EstimateTime:   quote.UpdateTime,
		Return1M:       bundle.Return1M,
		Return3M:       bundle.Return3M,
		Return6M:       bundle.Return6M,
		Return1Y:       bundle.Return1Y,
		NavHistory:     bundle.NavHistory(navHistoryLength),
		TopPositions:   bundle.Positions(),
	}
	if quote.Name != "" && detail.Name == "" {
		detail.Name = quote.Name
	}

	if acc, date, ok := bundle.AccumulatedNav(); ok {
		detail.AccumulatedNav = acc
		detail.AccumulatedNavDate = date
	}
	if mgr, ok := bundle.Manager(); ok {
		detail.ManagerName = mgr.Name
		detail.ManagerTenure = mgr.WorkTime
		detail.FundSize = mgr.FundSize
	}

	// The detail bundle posts yesterday's NAV even when the estimate call
	// failed; fall back to the last history record.
	if detail.Nav == 0 && len(detail.NavHistory) > 0 {
		last := detail.NavHistory[len(detail.NavHistory)-1]
		detail.Nav = last.Nav
		detail.NavDate = last.Date
	}

	s.details.Put(code, detail)
	return detail, nil
}
