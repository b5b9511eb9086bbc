package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/chorddesign/fundmatrix/internal/eastmoney"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/sina"
)

// MockFundClient is a mock implementation of eastmoney.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockFundClient struct {
	mu sync.Mutex

	// Estimates maps fund code to the estimate payload to return.
	Estimates map[string]eastmoney.EstimatePayload
	// EstimateErr is returned from FetchEstimate for codes absent from
	// Estimates, and for every code when Estimates is nil.
	EstimateErr error

	// FundList is returned from FetchFundList.
	FundList    []eastmoney.FundListEntry
	FundListErr error

	// Details maps fund code to the detail bundle to return.
	Details   map[string]eastmoney.DetailBundle
	DetailErr error

	// ArchivePositions maps "code/year" to the archive result.
	ArchivePositions map[string][]model.StockPosition
	ArchiveErr       error

	// Indices maps secid to the index quote to return.
	Indices  map[string]eastmoney.IndexQuote
	IndexErr error

	// EstimateCalls counts FetchEstimate invocations.
	EstimateCalls int
	// DetailCalls counts FetchDetail invocations.
	DetailCalls int
}

var _ eastmoney.Client = (*MockFundClient)(nil)

// NewMockFundClient creates a mock fund client with empty fixtures.
func NewMockFundClient() *MockFundClient {
	return &MockFundClient{
		Estimates:        map[string]eastmoney.EstimatePayload{},
		Details:          map[string]eastmoney.DetailBundle{},
		ArchivePositions: map[string][]model.StockPosition{},
		Indices:          map[string]eastmoney.IndexQuote{},
	}
}

// WithEstimate registers a canned estimate for one fund code.
func (m *MockFundClient) WithEstimate(code, name, nav, estimate, growth string) *MockFundClient {
	m.Estimates[code] = eastmoney.EstimatePayload{
		FundCode:      code,
		Name:          name,
		Nav:           nav,
		Estimate:      estimate,
		GrowthPercent: growth,
		EstimateTime:  "2026-08-28 14:30",
		NavDate:       "2026-08-27",
	}
	return m
}

func (m *MockFundClient) FetchEstimate(_ context.Context, fundCode string) (eastmoney.EstimatePayload, error) {
	m.mu.Lock()
	m.EstimateCalls++
	m.mu.Unlock()

	if payload, ok := m.Estimates[fundCode]; ok {
		return payload, nil
	}
	if m.EstimateErr != nil {
		return eastmoney.EstimatePayload{}, m.EstimateErr
	}
	return eastmoney.EstimatePayload{}, errNotConfigured("estimate", fundCode)
}

func (m *MockFundClient) FetchFundList(_ context.Context) ([]eastmoney.FundListEntry, error) {
	if m.FundListErr != nil {
		return nil, m.FundListErr
	}
	return m.FundList, nil
}

func (m *MockFundClient) FetchDetail(_ context.Context, fundCode string) (eastmoney.DetailBundle, error) {
	m.mu.Lock()
	m.DetailCalls++
	m.mu.Unlock()

	if bundle, ok := m.Details[fundCode]; ok {
		return bundle, nil
	}
	if m.DetailErr != nil {
		return eastmoney.DetailBundle{}, m.DetailErr
	}
	return eastmoney.DetailBundle{}, errNotConfigured("detail", fundCode)
}

func (m *MockFundClient) FetchArchivePositions(_ context.Context, fundCode string, year int) ([]model.StockPosition, error) {
	if m.ArchiveErr != nil {
		return nil, m.ArchiveErr
	}
	key := archiveKey(fundCode, year)
	if positions, ok := m.ArchivePositions[key]; ok {
		return positions, nil
	}
	return nil, nil
}

func (m *MockFundClient) FetchIndex(_ context.Context, secID string) (eastmoney.IndexQuote, error) {
	if quote, ok := m.Indices[secID]; ok {
		return quote, nil
	}
	if m.IndexErr != nil {
		return eastmoney.IndexQuote{}, m.IndexErr
	}
	return eastmoney.IndexQuote{}, errNotConfigured("index", secID)
}

// MockStockClient is a mock implementation of sina.Client for testing.
type MockStockClient struct {
	// Quotes maps stock code to the live quote to return. Codes absent
	// from the map are omitted from results, mirroring the real venue.
	Quotes map[string]model.StockQuote
	// Err fails every call when set.
	Err error
	// Calls counts FetchQuotes invocations.
	Calls int
}

var _ sina.Client = (*MockStockClient)(nil)

// NewMockStockClient creates a mock stock client with empty fixtures.
func NewMockStockClient() *MockStockClient {
	return &MockStockClient{Quotes: map[string]model.StockQuote{}}
}

// WithQuote registers a canned live quote for one stock code.
func (m *MockStockClient) WithQuote(code, name string, price, changePercent float64) *MockStockClient {
	m.Quotes[code] = model.StockQuote{
		Code:          code,
		Name:          name,
		Price:         price,
		ChangePercent: changePercent,
	}
	return m
}

func (m *MockStockClient) FetchQuotes(_ context.Context, codes []string) (map[string]model.StockQuote, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}

	quotes := make(map[string]model.StockQuote, len(codes))
	for _, code := range codes {
		if quote, ok := m.Quotes[code]; ok {
			quotes[code] = quote
		}
	}
	return quotes, nil
}

func archiveKey(code string, year int) string {
	return fmt.Sprintf("%s/%d", code, year)
}

// WithArchive registers canned archive positions for one fund code and year.
func (m *MockFundClient) WithArchive(code string, year int, positions []model.StockPosition) *MockFundClient {
	m.ArchivePositions[archiveKey(code, year)] = positions
	return m
}

func errNotConfigured(kind, key string) error {
	return fmt.Errorf("no mock %s configured for %s", kind, key)
}
