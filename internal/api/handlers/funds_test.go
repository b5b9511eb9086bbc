package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chorddesign/fundmatrix/internal/api/handlers"
	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/eastmoney"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/testutil"
)

func newFundHandler(svc *testutil.Services) *handlers.FundHandler {
	return handlers.NewFundHandler(svc.Quotes, svc.Details, svc.LookThrough, svc.FundList)
}

// TestFundHandler_Search tests the GET /api/fund/search endpoint.
func TestFundHandler_Search(t *testing.T) {
	t.Run("GET /api/fund/search matches by code", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.FundList = []eastmoney.FundListEntry{
			{Code: "110011", Pinyin: "YFDZXP", Name: "易方达中小盘", Type: "混合型", FullPinyin: "YIFANGDAZHONGXIAOPAN"},
			{Code: "161725", Pinyin: "ZZBJ", Name: "招商中证白酒", Type: "指数型", FullPinyin: "ZHAOSHANGZHONGZHENGBAIJIU"},
		}
		svc.FundClient.WithEstimate("110011", "易方达中小盘", "1.5000", "1.5300", "2.00")
		handler := newFundHandler(svc)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/fund/search",
			map[string]string{"q": "110011"})
		w := httptest.NewRecorder()

		// Execute
		handler.Search(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []model.FundSearchResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 1 {
			t.Fatalf("Expected 1 result, got %d", len(response))
		}
		if response[0].Code != "110011" {
			t.Errorf("Expected code 110011, got %s", response[0].Code)
		}
		if response[0].Estimate != 1.53 {
			t.Errorf("Expected enriched estimate 1.53, got %v", response[0].Estimate)
		}
	})

	t.Run("GET /api/fund/search rejects a negative limit", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := newFundHandler(svc)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/fund/search",
			map[string]string{"q": "白酒", "limit": "-1"})
		w := httptest.NewRecorder()

		// Execute
		handler.Search(w, req)

		// Assert
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("GET /api/fund/search with a blank keyword returns 200 empty", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		handler := newFundHandler(svc)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/fund/search",
			map[string]string{"q": "  "})
		w := httptest.NewRecorder()

		// Execute
		handler.Search(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response []model.FundSearchResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 0 {
			t.Errorf("Expected no results, got %d", len(response))
		}
	})
}

// TestFundHandler_Hot tests the GET /api/fund/hot endpoint.
//
// WHY: the hot board degrades per fund, but a batch where nothing could be
// fetched is the single user-visible coarse failure and must surface as 503.
func TestFundHandler_Hot(t *testing.T) {
	t.Run("GET /api/fund/hot returns the fetched subset", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.EstimateErr = apperrors.ErrNoData
		svc.FundClient.WithEstimate("110011", "易方达中小盘", "1.5000", "1.5300", "2.00")
		svc.FundClient.WithEstimate("161725", "招商中证白酒", "0.9000", "0.9100", "1.10")
		handler := newFundHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/fund/hot", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Hot(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response []model.FundQuote
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(response) != 2 {
			t.Errorf("Expected 2 quotes, got %d", len(response))
		}
	})

	t.Run("GET /api/fund/hot with nothing fetchable returns 503", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.EstimateErr = apperrors.ErrNoData
		handler := newFundHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/fund/hot", nil)
		w := httptest.NewRecorder()

		// Execute
		handler.Hot(w, req)

		// Assert
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})
}

// TestFundHandler_Estimate tests the GET /api/fund/{code}/estimate endpoint.
func TestFundHandler_Estimate(t *testing.T) {
	t.Run("GET /api/fund/{code}/estimate returns the quote", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.WithEstimate("110011", "易方达中小盘", "1.5000", "1.5300", "2.00")
		handler := newFundHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/110011/estimate",
			map[string]string{"code": "110011"})
		w := httptest.NewRecorder()

		// Execute
		handler.Estimate(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.FundQuote
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Estimate != 1.53 {
			t.Errorf("Expected estimate 1.53, got %v", response.Estimate)
		}
		if response.GrowthPercent != 2.0 {
			t.Errorf("Expected growth 2.0, got %v", response.GrowthPercent)
		}
	})

	t.Run("GET /api/fund/{code}/estimate surfaces a failed fetch as 502", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.EstimateErr = apperrors.ErrNoData
		handler := newFundHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/999999/estimate",
			map[string]string{"code": "999999"})
		w := httptest.NewRecorder()

		// Execute
		handler.Estimate(w, req)

		// Assert
		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}
	})
}

// TestFundHandler_Detail tests the GET /api/fund/{code}/detail endpoint.
func TestFundHandler_Detail(t *testing.T) {
	t.Run("GET /api/fund/{code}/detail returns the bundle", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.WithEstimate("110011", "易方达中小盘", "1.5000", "1.5300", "2.00")
		svc.FundClient.Details["110011"] = testutil.DetailBundleFixture(t, "易方达中小盘",
			[]model.NavRecord{
				{Date: "2026-08-26", Nav: 1.48, AccumulatedNav: 3.08, GrowthPercent: -0.5},
				{Date: "2026-08-27", Nav: 1.5, AccumulatedNav: 3.1, GrowthPercent: 1.35},
			},
			[]model.StockPosition{
				{StockCode: "600519", StockName: "贵州茅台", WeightPercent: 9.5},
			})
		handler := newFundHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/110011/detail",
			map[string]string{"code": "110011"})
		w := httptest.NewRecorder()

		// Execute
		handler.Detail(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.FundDetail
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Name != "易方达中小盘" {
			t.Errorf("Expected fund name, got %s", response.Name)
		}
		if len(response.NavHistory) != 2 {
			t.Errorf("Expected 2 nav records, got %d", len(response.NavHistory))
		}
		if len(response.TopPositions) != 1 {
			t.Errorf("Expected 1 position, got %d", len(response.TopPositions))
		}
	})

	t.Run("GET /api/fund/{code}/detail surfaces a failed fetch as 502", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.DetailErr = apperrors.ErrNoData
		svc.FundClient.EstimateErr = apperrors.ErrNoData
		handler := newFundHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/999999/detail",
			map[string]string{"code": "999999"})
		w := httptest.NewRecorder()

		// Execute
		handler.Detail(w, req)

		// Assert
		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d", w.Code)
		}
	})
}

// TestFundHandler_LookThrough tests the GET /api/fund/{code}/lookthrough endpoint.
func TestFundHandler_LookThrough(t *testing.T) {
	t.Run("GET /api/fund/{code}/lookthrough anchors on the provider NAV", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestServices(t, db)
		svc.FundClient.WithEstimate("110011", "易方达中小盘", "2.0000", "2.0400", "2.00")
		svc.FundClient.Details["110011"] = testutil.DetailBundleFixture(t, "易方达中小盘", nil,
			[]model.StockPosition{
				{StockCode: "600519", StockName: "贵州茅台", WeightPercent: 50},
				{StockCode: "000858", StockName: "五粮液", WeightPercent: 50},
			})
		svc.StockClient.
			WithQuote("600519", "贵州茅台", 1800, 1.0).
			WithQuote("000858", "五粮液", 150, -0.6)
		handler := newFundHandler(svc)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/fund/110011/lookthrough",
			map[string]string{"code": "110011"})
		w := httptest.NewRecorder()

		// Execute
		handler.LookThrough(w, req)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response model.LookThroughResult
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		// (50*1.0 + 50*-0.6) / 100 = 0.2% on a 2.0 NAV.
		if response.GrowthPercent != 0.2 {
			t.Errorf("Expected growth 0.2, got %v", response.GrowthPercent)
		}
		if response.Estimate != 2.004 {
			t.Errorf("Expected estimate 2.004, got %v", response.Estimate)
		}
		if len(response.Positions) != 2 {
			t.Errorf("Expected 2 positions, got %d", len(response.Positions))
		}
	})
}
