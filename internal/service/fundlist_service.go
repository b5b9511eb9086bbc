package service

import (
	"context"
	"strings"
	"sync"

	"github.com/chorddesign/fundmatrix/internal/eastmoney"
	"github.com/chorddesign/fundmatrix/internal/model"
)

const defaultSearchLimit = 20

// FundListService serves keyword search over the full fund catalog. The
// catalog changes at most daily and weighs several megabytes, so it is
// fetched once and kept for the process lifetime.
type FundListService struct {
	fundClient eastmoney.Client
	quotes     *QuoteService

	mu    sync.Mutex
	funds []eastmoney.FundListEntry
}

// NewFundListService creates a new FundListService.
func NewFundListService(fundClient eastmoney.Client, quotes *QuoteService) *FundListService {
	return &FundListService{
		fundClient: fundClient,
		quotes:     quotes,
	}
}

func (s *FundListService) allFunds(ctx context.Context) ([]eastmoney.FundListEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.funds != nil {
		return s.funds, nil
	}

	funds, err := s.fundClient.FetchFundList(ctx)
	if err != nil {
		return nil, err
	}
	s.funds = funds
	return funds, nil
}

// Search filters the catalog by code, name, or pinyin substring and
// enriches the matches with live quotes.
//
// Parameters:
//   - ctx: context for cancellation
//   - keyword: case-insensitive search term; blank returns no results
//   - limit: maximum matches, 0 for the default of 20
//
// Returns:
//   - []model.FundSearchResult: matches with live quotes where available
//   - error: fetch taxonomy error when the catalog is unavailable
func (s *FundListService) Search(ctx context.Context, keyword string, limit int) ([]model.FundSearchResult, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return []model.FundSearchResult{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	funds, err := s.allFunds(ctx)
	if err != nil {
		return nil, err
	}

	results := []model.FundSearchResult{}
	for _, fund := range funds {
		if len(results) >= limit {
			break
		}
		if !strings.Contains(fund.Code, keyword) &&
			!strings.Contains(fund.Name, keyword) &&
			!strings.Contains(strings.ToLower(fund.Pinyin), keyword) &&
			!strings.Contains(strings.ToLower(fund.FullPinyin), keyword) {
			continue
		}
		results = append(results, model.FundSearchResult{
			Code:       fund.Code,
			Name:       fund.Name,
			Type:       fund.Type,
			Pinyin:     fund.Pinyin,
			FullPinyin: fund.FullPinyin,
			UpdateTime: "--:--",
		})
	}
	if len(results) == 0 {
		return results, nil
	}

	codes := make([]string, 0, len(results))
	for _, result := range results {
		codes = append(codes, result.Code)
	}

	quoteByCode := make(map[string]model.FundQuote, len(codes))
	for _, quote := range s.quotes.BatchQuotes(ctx, codes) {
		quoteByCode[quote.Code] = quote
	}
	for i := range results {
		quote, ok := quoteByCode[results[i].Code]
		if !ok {
			continue
		}
		results[i].Nav = quote.Nav
		results[i].Estimate = quote.Estimate
		results[i].GrowthPercent = quote.GrowthPercent
		results[i].UpdateTime = quote.UpdateTime
	}
	return results, nil
}

// HotQuotes retrieves live quotes for the discovery board funds. An empty
// result means every source failed and the caller should surface the retry
// banner.
func (s *FundListService) HotQuotes(ctx context.Context) []model.FundQuote {
	return s.quotes.BatchQuotes(ctx, HotFundCodes)
}
