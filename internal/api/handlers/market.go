package handlers

import (
	"net/http"

	"github.com/chorddesign/fundmatrix/internal/api/response"
	"github.com/chorddesign/fundmatrix/internal/service"
)

// MarketHandler handles HTTP requests for the market indices endpoint.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler with the provided service dependency.
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Indices handles GET requests for the tracked market indices. Every index
// always yields a row; unreachable ones degrade to the cached snapshot or
// the static fallback table, so this endpoint never fails.
//
// Endpoint: GET /api/market/indices
// Response: 200 OK with array of MarketIndex
func (h *MarketHandler) Indices(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.marketService.Indices(r.Context()))
}
