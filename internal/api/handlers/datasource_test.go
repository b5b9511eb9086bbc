package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chorddesign/fundmatrix/internal/api/handlers"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/testutil"
)

// TestDataSourceHandler tests the GET and PUT /api/datasource endpoints.
//
// WHY: the selection must round-trip through persistence; a selection the
// UI cannot read back or that silently resets would flip users' estimates
// between providers.
func TestDataSourceHandler(t *testing.T) {
	t.Run("GET /api/datasource returns the default and the catalog", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewDataSourceHandler(svc.Quotes)

		req := httptest.NewRequest(http.MethodGet, "/api/datasource/", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.DataSource(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response handlers.DataSourceResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Current != model.DefaultDataSource {
			t.Errorf("Expected default source %s, got %s", model.DefaultDataSource, response.Current)
		}
		if len(response.Sources) != 3 {
			t.Errorf("Expected 3 selectable sources, got %d", len(response.Sources))
		}
	})

	t.Run("PUT /api/datasource persists the selection", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewDataSourceHandler(svc.Quotes)

		req := httptest.NewRequest(http.MethodPut, "/api/datasource/",
			strings.NewReader(`{"source":"calculated"}`))
		w := httptest.NewRecorder()

		// Execute
		handler.SetDataSource(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response handlers.DataSourceResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Current != model.DataSourceCalculated {
			t.Errorf("Expected source calculated, got %s", response.Current)
		}

		// A fresh read must see the stored value.
		if got := svc.Quotes.DataSource(req.Context()); got != model.DataSourceCalculated {
			t.Errorf("Expected stored source calculated, got %s", got)
		}
	})

	t.Run("PUT /api/datasource rejects an unknown source", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := handlers.NewDataSourceHandler(svc.Quotes)

		req := httptest.NewRequest(http.MethodPut, "/api/datasource/",
			strings.NewReader(`{"source":"bloomberg"}`))
		w := httptest.NewRecorder()

		// Execute
		handler.SetDataSource(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
		if got := svc.Quotes.DataSource(req.Context()); got != model.DefaultDataSource {
			t.Errorf("Expected selection unchanged, got %s", got)
		}
	})
}
