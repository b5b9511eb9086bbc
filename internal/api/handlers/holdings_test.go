package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chorddesign/fundmatrix/internal/api/handlers"
	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/testutil"
)

// TestHoldingsHandler_Holdings tests the GET /api/holdings endpoint.
//
// WHY: This is the dashboard's primary data source. The frontend depends on
// this returning correct data with proper HTTP status codes and JSON
// formatting.
func TestHoldingsHandler_Holdings(t *testing.T) {
	t.Run("GET /api/holdings returns 200 with empty array", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		req := httptest.NewRequest(http.MethodGet, "/api/holdings/", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Holdings(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		contentType := w.Header().Get("Content-Type")
		if contentType != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", contentType)
		}

		var response []model.Holding
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 0 {
			t.Errorf("Expected empty array, got %d items", len(response))
		}
	})

	t.Run("GET /api/holdings returns all holdings", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		h1 := testutil.CreateHolding(t, db, "110011")
		h2 := testutil.CreateHolding(t, db, "161725")

		req := httptest.NewRequest(http.MethodGet, "/api/holdings/", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Holdings(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}

		var response []model.Holding
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 2 {
			t.Fatalf("Expected 2 holdings, got %d", len(response))
		}
		if response[0].Code != h1.Code {
			t.Errorf("Expected first holding code %s, got %s", h1.Code, response[0].Code)
		}
		if response[1].Code != h2.Code {
			t.Errorf("Expected second holding code %s, got %s", h2.Code, response[1].Code)
		}
	})
}

// TestHoldingsHandler_AddHolding tests the POST /api/holdings endpoint.
func TestHoldingsHandler_AddHolding(t *testing.T) {
	t.Run("POST /api/holdings creates a starter position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.WithEstimate("110011", "易方达中小盘", "1.5000", "1.5300", "2.00")
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		body := strings.NewReader(`{"code":"110011"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/holdings/", body)
		w := httptest.NewRecorder()

		// Execute
		handler.AddHolding(w, req)

		// Assert
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Holding
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Code != "110011" {
			t.Errorf("Expected code 110011, got %s", response.Code)
		}
		if response.Shares != 1000 {
			t.Errorf("Expected default 1000 shares, got %v", response.Shares)
		}
	})

	t.Run("POST /api/holdings rejects an invalid code", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		body := strings.NewReader(`{"code":"abc"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/holdings/", body)
		w := httptest.NewRecorder()

		// Execute
		handler.AddHolding(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("POST /api/holdings rejects malformed JSON", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		body := strings.NewReader(`{"code":`)
		req := httptest.NewRequest(http.MethodPost, "/api/holdings/", body)
		w := httptest.NewRecorder()

		// Execute
		handler.AddHolding(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("POST /api/holdings returns 502 when no source answers", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.EstimateErr = apperrors.ErrNoData
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		body := strings.NewReader(`{"code":"999999"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/holdings/", body)
		w := httptest.NewRecorder()

		// Execute
		handler.AddHolding(w, req)

		// Assert
		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}
	})
}

// TestHoldingsHandler_UpdateHolding tests the PUT /api/holdings/{code} endpoint.
func TestHoldingsHandler_UpdateHolding(t *testing.T) {
	t.Run("PUT /api/holdings/{code} updates shares", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)
		testutil.CreateHolding(t, db, "110011")

		req := testutil.NewRequestWithURLParams(
			http.MethodPut,
			"/api/holdings/110011",
			map[string]string{"code": "110011"},
		)
		req = requestWithBody(req, `{"shares":2500}`)
		w := httptest.NewRecorder()

		// Execute
		handler.UpdateHolding(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.Holding
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Shares != 2500 {
			t.Errorf("Expected 2500 shares, got %v", response.Shares)
		}
	})

	t.Run("PUT /api/holdings/{code} prefers shares over amount", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)
		testutil.CreateHolding(t, db, "110011")

		req := testutil.NewRequestWithURLParams(
			http.MethodPut,
			"/api/holdings/110011",
			map[string]string{"code": "110011"},
		)
		req = requestWithBody(req, `{"shares":2000,"amount":99999}`)
		w := httptest.NewRecorder()

		// Execute
		handler.UpdateHolding(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response model.Holding
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Shares != 2000 {
			t.Errorf("Expected 2000 shares, got %v", response.Shares)
		}
	})

	t.Run("PUT /api/holdings/{code} with no field returns 400", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)
		testutil.CreateHolding(t, db, "110011")

		req := testutil.NewRequestWithURLParams(
			http.MethodPut,
			"/api/holdings/110011",
			map[string]string{"code": "110011"},
		)
		req = requestWithBody(req, `{}`)
		w := httptest.NewRecorder()

		// Execute
		handler.UpdateHolding(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("PUT /api/holdings/{code} for unknown code returns 404", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		req := testutil.NewRequestWithURLParams(
			http.MethodPut,
			"/api/holdings/999999",
			map[string]string{"code": "999999"},
		)
		req = requestWithBody(req, `{"shares":2500}`)
		w := httptest.NewRecorder()

		// Execute
		handler.UpdateHolding(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestHoldingsHandler_DeleteHolding tests the DELETE /api/holdings/{code} endpoint.
func TestHoldingsHandler_DeleteHolding(t *testing.T) {
	t.Run("DELETE /api/holdings/{code} removes the position", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)
		testutil.CreateHolding(t, db, "110011")

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/holdings/110011",
			map[string]string{"code": "110011"},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteHolding(w, req)

		// Assert
		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}

		holdings, err := svc.Holdings.List(req.Context())
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(holdings) != 0 {
			t.Errorf("Expected no holdings after delete, got %d", len(holdings))
		}
	})

	t.Run("DELETE /api/holdings/{code} for unknown code returns 404", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/holdings/999999",
			map[string]string{"code": "999999"},
		)
		w := httptest.NewRecorder()

		// Execute
		handler.DeleteHolding(w, req)

		// Assert
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})
}

// TestHoldingsHandler_ImportHoldings tests the POST /api/holdings/import endpoint.
func TestHoldingsHandler_ImportHoldings(t *testing.T) {
	t.Run("POST /api/holdings/import creates positions from broker text", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.WithEstimate("110011", "易方达中小盘", "1.5000", "1.5300", "2.00")
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		body := `{"text":"易方达中小盘\t110011\t1.5000\t2000\t1.4000"}`
		req := httptest.NewRequest(http.MethodPost, "/api/holdings/import", strings.NewReader(body))
		w := httptest.NewRecorder()

		// Execute
		handler.ImportHoldings(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.Holding
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(response))
		}
		if response[0].Shares != 2000 {
			t.Errorf("Expected 2000 shares, got %v", response[0].Shares)
		}
		if response[0].Source != model.SourceBrokerImport {
			t.Errorf("Expected source %s, got %s", model.SourceBrokerImport, response[0].Source)
		}
	})

	t.Run("POST /api/holdings/import with no parseable line returns 400", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		req := httptest.NewRequest(http.MethodPost, "/api/holdings/import",
			strings.NewReader(`{"text":"账户总览\n没有持仓数据"}`))
		w := httptest.NewRecorder()

		// Execute
		handler.ImportHoldings(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestHoldingsHandler_Summary tests the GET /api/holdings/summary endpoint.
func TestHoldingsHandler_Summary(t *testing.T) {
	t.Run("GET /api/holdings/summary returns the aggregates", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		testutil.NewHolding("110011").
			WithNav(1.5).
			WithEstimate(1.55, 2.0).
			WithShares(1000).
			WithCostBasis(1.4).
			Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/holdings/summary", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Summary(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response model.PortfolioSummary
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.TotalValue != 1550 {
			t.Errorf("Expected total value 1550, got %v", response.TotalValue)
		}
		if response.HoldingCount != 1 {
			t.Errorf("Expected 1 holding, got %d", response.HoldingCount)
		}
	})
}

// TestHoldingsHandler_RefreshHoldings tests the POST /api/holdings/refresh endpoint.
func TestHoldingsHandler_RefreshHoldings(t *testing.T) {
	t.Run("POST /api/holdings/refresh re-fetches estimates", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewHoldingsHandler(svc.Holdings)

		testutil.NewHolding("110011").WithEstimate(1.53, 2.0).Build(t, db)
		svc.FundClient.WithEstimate("110011", "易方达中小盘", "1.5000", "1.6000", "4.00")

		req := httptest.NewRequest(http.MethodPost, "/api/holdings/refresh", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.RefreshHoldings(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response []model.Holding
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("Expected 1 holding, got %d", len(response))
		}
		if response[0].Estimate != 1.6 {
			t.Errorf("Expected refreshed estimate 1.6, got %v", response[0].Estimate)
		}
	})
}

// requestWithBody attaches a JSON body to a request built by the URL-param
// helper, which only covers bodiless requests.
func requestWithBody(req *http.Request, body string) *http.Request {
	clone := httptest.NewRequest(req.Method, req.URL.String(), strings.NewReader(body))
	return clone.WithContext(req.Context())
}
