package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/chorddesign/fundmatrix/internal/api/request"
	"github.com/chorddesign/fundmatrix/internal/api/response"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/service"
)

// DataSourceHandler handles HTTP requests for the estimate data source
// selection endpoints.
type DataSourceHandler struct {
	quoteService *service.QuoteService
}

// NewDataSourceHandler creates a new DataSourceHandler with the provided service dependency.
func NewDataSourceHandler(quoteService *service.QuoteService) *DataSourceHandler {
	return &DataSourceHandler{
		quoteService: quoteService,
	}
}

// DataSourceResponse represents the data source selection response.
type DataSourceResponse struct {
	Current model.DataSource       `json:"current"`
	Sources []model.DataSourceInfo `json:"sources"`
}

// DataSource handles GET requests for the current selection and the
// catalog of selectable sources.
//
// Endpoint: GET /api/datasource
// Response: 200 OK with DataSourceResponse
func (h *DataSourceHandler) DataSource(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, DataSourceResponse{
		Current: h.quoteService.DataSource(r.Context()),
		Sources: h.quoteService.Sources(),
	})
}

// SetDataSource handles PUT requests to switch the estimate data source.
// The selection is persisted and survives restarts.
//
// Endpoint: PUT /api/datasource
// Request: SetDataSourceRequest
// Response: 200 OK with DataSourceResponse
// Error: 400 Bad Request for an unrecognized source
func (h *DataSourceHandler) SetDataSource(w http.ResponseWriter, r *http.Request) {
	var req request.SetDataSourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.quoteService.SetDataSource(r.Context(), model.DataSource(req.Source)); err != nil {
		response.RespondServiceError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, DataSourceResponse{
		Current: h.quoteService.DataSource(r.Context()),
		Sources: h.quoteService.Sources(),
	})
}
