package testutil

import (
	"database/sql"
	"testing"

	"github.com/chorddesign/fundmatrix/internal/repository"
	"github.com/chorddesign/fundmatrix/internal/service"
)

// Services bundles the fully wired service layer over mock clients, for
// handler and service tests that need the whole stack.
type Services struct {
	FundClient  *MockFundClient
	StockClient *MockStockClient
	Holdings    *service.HoldingsService
	Quotes      *service.QuoteService
	LookThrough *service.LookThroughService
	Details     *service.DetailService
	NavStatus   *service.NavStatusService
	FundList    *service.FundListService
	Market      *service.MarketService
}

// NewTestServices wires the service layer against the given test database
// and fresh mock clients.
func NewTestServices(t *testing.T, db *sql.DB) *Services {
	t.Helper()

	fundClient := NewMockFundClient()
	stockClient := NewMockStockClient()

	holdingsRepo := repository.NewHoldingsRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	lookThrough := service.NewLookThroughService(fundClient, stockClient)
	quotes := service.NewQuoteService(fundClient, lookThrough, settingsRepo)
	details := service.NewDetailService(fundClient)
	navStatus := service.NewNavStatusService(details, 5)
	holdings := service.NewHoldingsService(holdingsRepo, quotes, lookThrough, details, navStatus)
	fundList := service.NewFundListService(fundClient, quotes)
	market := service.NewMarketService(fundClient, settingsRepo)

	return &Services{
		FundClient:  fundClient,
		StockClient: stockClient,
		Holdings:    holdings,
		Quotes:      quotes,
		LookThrough: lookThrough,
		Details:     details,
		NavStatus:   navStatus,
		FundList:    fundList,
		Market:      market,
	}
}
