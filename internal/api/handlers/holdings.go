package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chorddesign/fundmatrix/internal/api/request"
	"github.com/chorddesign/fundmatrix/internal/api/response"
	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/service"
)

// HoldingsHandler handles HTTP requests for the holdings endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the holdingsService.
type HoldingsHandler struct {
	holdingsService *service.HoldingsService
}

// NewHoldingsHandler creates a new HoldingsHandler with the provided service dependency.
func NewHoldingsHandler(holdingsService *service.HoldingsService) *HoldingsHandler {
	return &HoldingsHandler{
		holdingsService: holdingsService,
	}
}

// Holdings handles GET requests to retrieve all tracked positions.
//
// Endpoint: GET /api/holdings
// Response: 200 OK with array of Holding
func (h *HoldingsHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingsService.List(r.Context())
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// AddHolding handles POST requests to start tracking a fund by code.
// Adding an already tracked code returns the existing position unchanged.
//
// Endpoint: POST /api/holdings
// Request: AddHoldingRequest
// Response: 201 Created with the new Holding
func (h *HoldingsHandler) AddHolding(w http.ResponseWriter, r *http.Request) {
	var req request.AddHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holding, err := h.holdingsService.Add(r.Context(), req.Code)
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, holding)
}

// UpdateHolding handles PUT requests to adjust a position. The body carries
// shares, cost, or amount; shares wins over cost, which wins over amount.
//
// Endpoint: PUT /api/holdings/{code}
// Request: UpdateHoldingRequest
// Response: 200 OK with the updated Holding
func (h *HoldingsHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req request.UpdateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var holding model.Holding
	var err error
	switch {
	case req.Shares != nil:
		holding, err = h.holdingsService.SetShares(r.Context(), code, *req.Shares)
	case req.Cost != nil:
		holding, err = h.holdingsService.SetCost(r.Context(), code, *req.Cost)
	case req.Amount != nil:
		holding, err = h.holdingsService.SetAmount(r.Context(), code, *req.Amount)
	default:
		response.RespondServiceError(w, apperrors.ErrMissingRequiredField)
		return
	}
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, holding)
}

// DeleteHolding handles DELETE requests to stop tracking a fund.
//
// Endpoint: DELETE /api/holdings/{code}
// Response: 204 No Content
func (h *HoldingsHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.holdingsService.Remove(r.Context(), code); err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// ImportHoldings handles POST requests carrying pasted broker position text.
// Parsed positions are merged into the tracked set.
//
// Endpoint: POST /api/holdings/import
// Request: ImportHoldingsRequest
// Response: 200 OK with the full holdings list after the merge
func (h *HoldingsHandler) ImportHoldings(w http.ResponseWriter, r *http.Request) {
	var req request.ImportHoldingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	holdings, err := h.holdingsService.ImportBroker(r.Context(), req.Text)
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// RefreshHoldings handles POST requests to re-fetch estimates for every
// tracked fund. Funds whose fetch fails keep their stored values.
//
// Endpoint: POST /api/holdings/refresh
// Response: 200 OK with the refreshed holdings list
func (h *HoldingsHandler) RefreshHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingsService.Refresh(r.Context())
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// Summary handles GET requests for the portfolio aggregate figures.
//
// Endpoint: GET /api/holdings/summary
// Response: 200 OK with PortfolioSummary
func (h *HoldingsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.holdingsService.Summary(r.Context())
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
