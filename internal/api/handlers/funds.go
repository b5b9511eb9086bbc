package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chorddesign/fundmatrix/internal/api/response"
	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/service"
)

// FundHandler handles HTTP requests for fund lookup endpoints: search,
// the hot funds board, single estimates, the detail bundle, and the
// look-through valuation.
type FundHandler struct {
	quoteService       *service.QuoteService
	detailService      *service.DetailService
	lookThroughService *service.LookThroughService
	fundListService    *service.FundListService
}

// NewFundHandler creates a new FundHandler with the provided service dependencies.
func NewFundHandler(
	quoteService *service.QuoteService,
	detailService *service.DetailService,
	lookThroughService *service.LookThroughService,
	fundListService *service.FundListService,
) *FundHandler {
	return &FundHandler{
		quoteService:       quoteService,
		detailService:      detailService,
		lookThroughService: lookThroughService,
		fundListService:    fundListService,
	}
}

// Search handles GET requests to search the fund catalog by code, name,
// or pinyin abbreviation.
//
// Endpoint: GET /api/fund/search?q={keyword}&limit={n}
// Response: 200 OK with array of FundSearchResult
func (h *FundHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.RespondError(w, http.StatusBadRequest, "limit must be a non-negative integer", nil)
			return
		}
		limit = parsed
	}

	results, err := h.fundListService.Search(r.Context(), keyword, limit)
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, results)
}

// Hot handles GET requests for the fixed hot funds board. An entirely
// failed batch is the one coarse failure surfaced to users.
//
// Endpoint: GET /api/fund/hot
// Response: 200 OK with array of FundQuote
// Error: 503 Service Unavailable when no fund could be fetched
func (h *FundHandler) Hot(w http.ResponseWriter, r *http.Request) {
	quotes := h.fundListService.HotQuotes(r.Context())
	if len(quotes) == 0 {
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrAllSourcesFailed.Error(), nil)
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// Estimate handles GET requests for a single fund's live estimate through
// the currently selected data source.
//
// Endpoint: GET /api/fund/{code}/estimate
// Response: 200 OK with FundQuote
func (h *FundHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	quote, err := h.quoteService.FetchQuote(r.Context(), code)
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, quote)
}

// Detail handles GET requests for the fund detail bundle: nav history,
// accumulated nav, manager info, trailing returns, and top positions.
//
// Endpoint: GET /api/fund/{code}/detail
// Response: 200 OK with FundDetail
func (h *FundHandler) Detail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	detail, err := h.detailService.Detail(r.Context(), code)
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, detail)
}

// LookThrough handles GET requests for the position-weighted estimate of a
// fund. The provider NAV anchors the calculation; positions without a live
// quote fall back to their disclosed weight.
//
// Endpoint: GET /api/fund/{code}/lookthrough
// Response: 200 OK with LookThroughResult
func (h *FundHandler) LookThrough(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	quote, err := h.quoteService.FetchQuote(r.Context(), code)
	if err != nil {
		response.RespondServiceError(w, err)
		return
	}

	result := h.lookThroughService.Compute(r.Context(), code, quote.Nav)
	response.RespondJSON(w, http.StatusOK, result)
}
