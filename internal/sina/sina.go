package sina

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/model"
)

const (
	quoteURL     = "https://hq.sinajs.cn/list=%s"
	batchTimeout = 5 * time.Second
)

// Client fetches live stock quotes used for look-through valuation.
type Client interface {
	// FetchQuotes returns live quotes for the given 6-digit stock codes,
	// keyed by code. Codes the venue does not answer for are absent from
	// the result; an empty input returns an empty map without a request.
	FetchQuotes(ctx context.Context, codes []string) (map[string]model.StockQuote, error)
}

// QuoteClient is the production Client backed by the Sina HQ endpoint.
type QuoteClient struct {
	httpClient *http.Client
}

// NewQuoteClient creates a quote client with sane HTTP defaults.
func NewQuoteClient() *QuoteClient {
	return &QuoteClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchQuotes requests all codes in a single batched call. The endpoint
// answers one `var hq_str_<symbol>="...";` line per symbol.
//
// Parameters:
//   - ctx: context for cancellation
//   - codes: 6-digit mainland stock codes
//
// Returns:
//   - map[string]model.StockQuote: quotes keyed by stock code
//   - error: network, timeout, or parse failure
func (c *QuoteClient) FetchQuotes(ctx context.Context, codes []string) (map[string]model.StockQuote, error) {
	if len(codes) == 0 {
		return map[string]model.StockQuote{}, nil
	}

	symbols := make([]string, 0, len(codes))
	for _, code := range codes {
		symbols = append(symbols, Symbol(code))
	}

	ctx, cancel := context.WithTimeout(ctx, batchTimeout)
	defer cancel()

	url := fmt.Sprintf(quoteURL, strings.Join(symbols, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}
	// The endpoint rejects requests without a finance referer.
	req.Header.Set("Referer", "https://finance.sina.com.cn")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; fundmatrix)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: quote endpoint returned %d", apperrors.ErrNetwork, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNetwork, err)
	}

	return ParseQuotes(body)
}

// Symbol maps a 6-digit stock code to its venue-prefixed symbol: codes
// starting with 6 or 9 trade in Shanghai, everything else in Shenzhen.
func Symbol(code string) string {
	if strings.HasPrefix(code, "6") || strings.HasPrefix(code, "9") {
		return "sh" + code
	}
	return "sz" + code
}

// ParseQuotes decodes the HQ response body. Each line has the shape
//
//	var hq_str_sh600519="贵州茅台,open,prevClose,current,high,low,...";
//
// Lines with an empty payload or a non-positive current price are skipped:
// the venue answers with empty strings for unknown or suspended symbols.
func ParseQuotes(body []byte) (map[string]model.StockQuote, error) {
	quotes := make(map[string]model.StockQuote)

	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		symbol, payload, ok := splitQuoteLine(line)
		if !ok {
			continue
		}
		if len(symbol) < 3 {
			continue
		}
		code := symbol[2:]

		fields := strings.Split(payload, ",")
		if len(fields) < 4 {
			continue
		}

		name := fields[0]
		prevClose := parseFloat(fields[2])
		current := parseFloat(fields[3])
		if current <= 0 {
			continue
		}

		changePercent := 0.0
		if prevClose > 0 {
			changePercent = (current - prevClose) / prevClose * 100
		}

		quotes[code] = model.StockQuote{
			Code:          code,
			Name:          name,
			Price:         current,
			PrevClose:     prevClose,
			ChangePercent: changePercent,
		}
	}

	if len(quotes) == 0 {
		return nil, apperrors.ErrNoData
	}
	return quotes, nil
}

// splitQuoteLine separates `var hq_str_<symbol>="<payload>";` into its
// symbol and quoted payload.
func splitQuoteLine(line string) (symbol, payload string, ok bool) {
	const prefix = "var hq_str_"
	if !strings.HasPrefix(line, prefix) {
		return "", "", false
	}
	rest := line[len(prefix):]

	eq := strings.Index(rest, "=")
	if eq < 0 {
		return "", "", false
	}
	symbol = strings.TrimSpace(rest[:eq])

	value := strings.TrimSpace(rest[eq+1:])
	value = strings.TrimSuffix(value, ";")
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", "", false
	}
	payload = value[1 : len(value)-1]
	if payload == "" {
		return "", "", false
	}
	return symbol, payload, true
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}
