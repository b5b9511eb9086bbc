// Package eastmoney is the client for the Eastmoney/Tiantian family of fund
// data endpoints: real-time estimates, the full fund list, per-fund detail
// bundles, quarterly archive positions, and market index quotes. Each
// endpoint is a fixed external contract; this package owns the parsing of
// exactly those wire shapes into typed records.
package eastmoney

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/model"
)

// Per-endpoint timeouts, proportional to payload size. The fund list is a
// multi-megabyte script; the archive and index payloads are small.
const (
	estimateTimeout = 10 * time.Second
	fundListTimeout = 15 * time.Second
	detailTimeout   = 10 * time.Second
	archiveTimeout  = 8 * time.Second
	indexTimeout    = 5 * time.Second
)

// Client defines the interface for fetching fund data from Eastmoney.
// This interface enables dependency injection and testing with mock
// implementations.
type Client interface {
	FetchEstimate(ctx context.Context, fundCode string) (EstimatePayload, error)
	FetchFundList(ctx context.Context) ([]FundListEntry, error)
	FetchDetail(ctx context.Context, fundCode string) (DetailBundle, error)
	FetchArchivePositions(ctx context.Context, fundCode string, year int) ([]model.StockPosition, error)
	FetchIndex(ctx context.Context, secID string) (IndexQuote, error)
}

// FinanceClient provides methods for fetching fund data from the Eastmoney
// endpoints. It wraps an HTTP client and never returns an uncategorized
// error: every failure is wrapped as one of the apperrors fetch sentinels.
type FinanceClient struct {
	httpClient *http.Client
}

// NewFinanceClient creates a new Eastmoney client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{},
	}
}

// FetchEstimate retrieves the real-time intraday estimate for one fund.
//
// Endpoint: https://fundgz.1234567.com.cn/js/{code}.js (JSONP, fixed
// jsonpgz callback). Returns ErrNoData for unknown codes, which the endpoint
// reports as an empty wrapper rather than an HTTP error.
func (c *FinanceClient) FetchEstimate(ctx context.Context, fundCode string) (EstimatePayload, error) {
	url := fmt.Sprintf("https://fundgz.1234567.com.cn/js/%s.js?rt=%d", fundCode, time.Now().UnixMilli())
	body, err := c.get(ctx, url, estimateTimeout)
	if err != nil {
		return EstimatePayload{}, err
	}
	return ParseEstimate(body)
}

// FetchFundList retrieves the full fund list: every listed fund's code,
// name, type, and pinyin keys. The payload changes rarely; callers cache it
// for the process lifetime.
func (c *FinanceClient) FetchFundList(ctx context.Context) ([]FundListEntry, error) {
	body, err := c.get(ctx, "https://fund.eastmoney.com/js/fundcode_search.js", fundListTimeout)
	if err != nil {
		return nil, err
	}
	return ParseFundList(body)
}

// FetchDetail retrieves the per-fund detail bundle: NAV history, accumulated
// NAV series, trailing returns, manager info, and disclosed top positions.
func (c *FinanceClient) FetchDetail(ctx context.Context, fundCode string) (DetailBundle, error) {
	url := fmt.Sprintf("https://fund.eastmoney.com/pingzhongdata/%s.js?v=%d", fundCode, time.Now().UnixMilli())
	body, err := c.get(ctx, url, detailTimeout)
	if err != nil {
		return DetailBundle{}, err
	}
	return ParseDetail(body)
}

// FetchArchivePositions retrieves a fund's disclosed top positions from the
// quarterly archive for the given reporting year. The archive lags detail
// data but covers funds whose detail bundle omits positions.
func (c *FinanceClient) FetchArchivePositions(ctx context.Context, fundCode string, year int) ([]model.StockPosition, error) {
	url := fmt.Sprintf(
		"https://fundf10.eastmoney.com/FundArchivesDatas.aspx?type=jjcc&code=%s&topline=10&year=%d&month=12,9,6,3&rt=%d",
		fundCode, year, time.Now().UnixMilli(),
	)
	body, err := c.get(ctx, url, archiveTimeout)
	if err != nil {
		return nil, err
	}
	return ParseArchivePositions(body)
}

// FetchIndex retrieves one market index quote by provider security ID
// (e.g. "1.000001" for the Shanghai Composite).
func (c *FinanceClient) FetchIndex(ctx context.Context, secID string) (IndexQuote, error) {
	url := fmt.Sprintf(
		"https://push2.eastmoney.com/api/qt/stock/get?secid=%s&fields=f43,f44,f45,f46,f47,f48,f57,f58,f169,f170&_=%d",
		secID, time.Now().UnixMilli(),
	)
	body, err := c.get(ctx, url, indexTimeout)
	if err != nil {
		return IndexQuote{}, err
	}
	return ParseIndex(body)
}

// get executes a GET request with the given deadline and returns the raw
// body. Failures are classified into the apperrors fetch taxonomy.
func (c *FinanceClient) get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://fund.eastmoney.com/")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", apperrors.ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	return body, nil
}

// classifyTransportError maps a transport failure onto the fetch taxonomy:
// deadline expiry becomes ErrTimeout, anything else ErrNetwork.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", apperrors.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
}
