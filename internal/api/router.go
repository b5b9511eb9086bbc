package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chorddesign/fundmatrix/internal/api/handlers"
	custommiddleware "github.com/chorddesign/fundmatrix/internal/api/middleware"
	"github.com/chorddesign/fundmatrix/internal/config"
	"github.com/chorddesign/fundmatrix/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System      *service.SystemService
	Holdings    *service.HoldingsService
	Quotes      *service.QuoteService
	Details     *service.DetailService
	LookThrough *service.LookThroughService
	FundList    *service.FundListService
	Market      *service.MarketService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/holdings", func(r chi.Router) {
			holdingsHandler := handlers.NewHoldingsHandler(svc.Holdings)
			r.Get("/", holdingsHandler.Holdings)
			r.Post("/", holdingsHandler.AddHolding)
			r.Get("/summary", holdingsHandler.Summary)
			r.Post("/import", holdingsHandler.ImportHoldings)
			r.Post("/refresh", holdingsHandler.RefreshHoldings)
			r.Put("/{code}", holdingsHandler.UpdateHolding)
			r.Delete("/{code}", holdingsHandler.DeleteHolding)
		})

		r.Route("/datasource", func(r chi.Router) {
			dataSourceHandler := handlers.NewDataSourceHandler(svc.Quotes)
			r.Get("/", dataSourceHandler.DataSource)
			r.Put("/", dataSourceHandler.SetDataSource)
		})

		r.Route("/fund", func(r chi.Router) {
			fundHandler := handlers.NewFundHandler(svc.Quotes, svc.Details, svc.LookThrough, svc.FundList)
			r.Get("/search", fundHandler.Search)
			r.Get("/hot", fundHandler.Hot)
			r.Get("/{code}/estimate", fundHandler.Estimate)
			r.Get("/{code}/detail", fundHandler.Detail)
			r.Get("/{code}/lookthrough", fundHandler.LookThrough)
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(svc.Market)
			r.Get("/indices", marketHandler.Indices)
		})
	})

	return r
}
