package testutil

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/chorddesign/fundmatrix/internal/eastmoney"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/repository"
)

// HoldingBuilder builds holdings for tests using a fluent interface.
//
// Example:
//
//	holding := testutil.NewHolding("110011").
//	    WithName("测试基金").
//	    WithShares(500).
//	    Build(t, db)
type HoldingBuilder struct {
	holding model.Holding
}

// NewHolding creates a builder with sensible defaults for the given code.
func NewHolding(code string) *HoldingBuilder {
	return &HoldingBuilder{
		holding: model.Holding{
			FundQuote: model.FundQuote{
				Code:          code,
				Name:          "基金" + code,
				Nav:           1.5,
				Estimate:      1.53,
				GrowthPercent: 2.0,
				UpdateTime:    "14:30",
				NavDate:       "2026-08-27",
			},
			Shares:    1000,
			CostBasis: 1.4,
			Source:    model.SourceManual,
		},
	}
}

func (b *HoldingBuilder) WithName(name string) *HoldingBuilder {
	b.holding.Name = name
	return b
}

func (b *HoldingBuilder) WithNav(nav float64) *HoldingBuilder {
	b.holding.Nav = nav
	return b
}

func (b *HoldingBuilder) WithEstimate(estimate, growthPercent float64) *HoldingBuilder {
	b.holding.Estimate = estimate
	b.holding.GrowthPercent = growthPercent
	return b
}

func (b *HoldingBuilder) WithShares(shares float64) *HoldingBuilder {
	b.holding.Shares = shares
	return b
}

func (b *HoldingBuilder) WithCostBasis(cost float64) *HoldingBuilder {
	b.holding.CostBasis = cost
	return b
}

func (b *HoldingBuilder) WithSource(source string) *HoldingBuilder {
	b.holding.Source = source
	return b
}

func (b *HoldingBuilder) WithNavUpdate(updated bool, growth float64, date string) *HoldingBuilder {
	b.holding.NavUpdated = &updated
	b.holding.NavUpdateGrowth = &growth
	b.holding.NavUpdateDate = &date
	return b
}

func (b *HoldingBuilder) WithLookThrough(estimate, growth float64) *HoldingBuilder {
	b.holding.LookThroughEstimate = &estimate
	b.holding.LookThroughGrowth = &growth
	return b
}

// Build inserts the holding into the database and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	repo := repository.NewHoldingsRepository(db)
	holding, err := repo.Insert(context.Background(), b.holding)
	if err != nil {
		t.Fatalf("Failed to insert test holding: %v", err)
	}
	return holding
}

// CreateHolding inserts a default holding for the code.
func CreateHolding(t *testing.T, db *sql.DB, code string) model.Holding {
	t.Helper()
	return NewHolding(code).Build(t, db)
}

// DetailBundleFixture assembles a detail bundle from plain values by
// rendering the provider's JS payload and running it through the real
// parser, so fixtures exercise the same code path as production data.
func DetailBundleFixture(t *testing.T, name string, history []model.NavRecord, positions []model.StockPosition) eastmoney.DetailBundle {
	t.Helper()

	var src strings.Builder
	nameJSON, _ := json.Marshal(name)
	fmt.Fprintf(&src, "var fS_name = %s;", nameJSON)

	trend := make([]string, 0, len(history))
	acTrend := make([]string, 0, len(history))
	for _, record := range history {
		date, err := time.Parse("2006-01-02", record.Date)
		if err != nil {
			t.Fatalf("Bad fixture date %q: %v", record.Date, err)
		}
		ts := date.UnixMilli()
		trend = append(trend, fmt.Sprintf(`{"x":%d,"y":%g,"equityReturn":%g}`, ts, record.Nav, record.GrowthPercent))
		acTrend = append(acTrend, fmt.Sprintf(`[%d,%g]`, ts, record.AccumulatedNav))
	}
	fmt.Fprintf(&src, "var Data_netWorthTrend = [%s];", strings.Join(trend, ","))
	fmt.Fprintf(&src, "var Data_ACWorthTrend = [%s];", strings.Join(acTrend, ","))

	stocks := make([]string, 0, len(positions))
	for _, position := range positions {
		stocks = append(stocks, fmt.Sprintf(`{"GPDM":"%s","GPJC":"%s","JZBL":"%g"}`,
			position.StockCode, position.StockName, position.WeightPercent))
	}
	fmt.Fprintf(&src, "var Data_fundStocks = [%s];", strings.Join(stocks, ","))

	bundle, err := eastmoney.ParseDetail([]byte(src.String()))
	if err != nil {
		t.Fatalf("Failed to parse fixture detail payload: %v", err)
	}
	return bundle
}
