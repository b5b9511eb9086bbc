package model

// FundQuote is a point-in-time valuation snapshot for one fund.
// Estimate defaults to Nav when no intraday projection is available and
// GrowthPercent is 0 when unknown, never NaN.
type FundQuote struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Nav           float64 `json:"nav"`
	Estimate      float64 `json:"estimate"`
	GrowthPercent float64 `json:"growthPercent"`
	UpdateTime    string  `json:"updateTime"`
	NavDate       string  `json:"navDate"`
}

// Holding source values.
const (
	SourceManual       = "manual"
	SourceBrokerImport = "broker-import"
)

// Holding is a user's position in one fund. At most one Holding exists per
// fund code. Broker fields record the last imported broker export and are
// never overwritten by live fetches; confirmed-NAV and look-through fields
// are populated once per trading day and carried over on quote refreshes.
type Holding struct {
	ID string `json:"id"`
	FundQuote

	Shares    float64 `json:"shares"`
	CostBasis float64 `json:"costBasis"`
	Source    string  `json:"source"`

	BrokerNav        *float64 `json:"brokerNav,omitempty"`
	BrokerImportTime *string  `json:"brokerImportTime,omitempty"`

	LookThroughEstimate *float64 `json:"lookThroughEstimate,omitempty"`
	LookThroughGrowth   *float64 `json:"lookThroughGrowth,omitempty"`

	AccumulatedNav     *float64 `json:"accumulatedNav,omitempty"`
	AccumulatedNavDate *string  `json:"accumulatedNavDate,omitempty"`
	Return1M           *float64 `json:"return1M,omitempty"`
	Return3M           *float64 `json:"return3M,omitempty"`
	Return6M           *float64 `json:"return6M,omitempty"`
	Return1Y           *float64 `json:"return1Y,omitempty"`

	NavUpdated      *bool    `json:"navUpdated,omitempty"`
	NavUpdateGrowth *float64 `json:"navUpdateGrowth,omitempty"`
	NavUpdateDate   *string  `json:"navUpdateDate,omitempty"`
}

// CurrentValue returns the per-unit value used for all derived amounts:
// the intraday estimate when present, the official NAV otherwise.
func (h *Holding) CurrentValue() float64 {
	if h.Estimate > 0 {
		return h.Estimate
	}
	return h.Nav
}

// StockPosition is one constituent holding disclosed by a fund.
// Ephemeral: recomputed per look-through request and cached short-term,
// never persisted as portfolio state.
type StockPosition struct {
	StockCode         string   `json:"stockCode"`
	StockName         string   `json:"stockName"`
	WeightPercent     float64  `json:"weightPercent"`
	LivePrice         *float64 `json:"livePrice,omitempty"`
	LiveChangePercent *float64 `json:"liveChangePercent,omitempty"`
}

// LookThroughResult is the output of the look-through calculator.
type LookThroughResult struct {
	Estimate      float64         `json:"estimate"`
	GrowthPercent float64         `json:"growthPercent"`
	Positions     []StockPosition `json:"positions"`
}

// NavRecord is one historical NAV observation.
type NavRecord struct {
	Date           string  `json:"date"`
	Nav            float64 `json:"nav"`
	AccumulatedNav float64 `json:"accumulatedNav"`
	GrowthPercent  float64 `json:"growthPercent"`
}

// NavUpdateStatus reports whether the official daily NAV has posted within
// the freshness window. Growth and Date mirror the most recent record
// regardless of Updated, so callers can show "last known" even when stale.
type NavUpdateStatus struct {
	Updated       bool     `json:"navUpdated"`
	GrowthPercent *float64 `json:"navUpdateGrowth,omitempty"`
	Date          *string  `json:"navUpdateDate,omitempty"`
}

// FundDetail is the assembled per-fund detail bundle.
type FundDetail struct {
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Nav                float64         `json:"nav"`
	NavDate            string          `json:"navDate"`
	Estimate           float64         `json:"estimate"`
	EstimateGrowth     float64         `json:"estimateGrowth"`
	EstimateTime       string          `json:"estimateTime"`
	AccumulatedNav     float64         `json:"accumulatedNav"`
	AccumulatedNavDate string          `json:"accumulatedNavDate"`
	Return1M           float64         `json:"return1M"`
	Return3M           float64         `json:"return3M"`
	Return6M           float64         `json:"return6M"`
	Return1Y           float64         `json:"return1Y"`
	ManagerName        string          `json:"managerName"`
	ManagerTenure      string          `json:"managerTenure"`
	FundSize           string          `json:"fundSize"`
	NavHistory         []NavRecord     `json:"navHistory"`
	TopPositions       []StockPosition `json:"topPositions"`
}

// FundSearchResult is one entry of the full fund list, optionally enriched
// with a live quote.
type FundSearchResult struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Pinyin        string  `json:"pinyin"`
	FullPinyin    string  `json:"fullPinyin"`
	Nav           float64 `json:"nav"`
	Estimate      float64 `json:"estimate"`
	GrowthPercent float64 `json:"growthPercent"`
	UpdateTime    string  `json:"updateTime"`
}

// MarketIndex is a snapshot of one market index.
type MarketIndex struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PrevClose     float64 `json:"prevClose"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	UpdateTime    string  `json:"updateTime"`
	Closed        bool    `json:"closed"`
}

// StockQuote is a live quote for one stock.
type StockQuote struct {
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PrevClose     float64 `json:"prevClose"`
	ChangePercent float64 `json:"changePercent"`
}

// PortfolioSummary holds the derived portfolio aggregates. Always recomputed
// from the current holdings, never stored.
type PortfolioSummary struct {
	TotalValue        float64 `json:"totalValue"`
	TotalProfit       float64 `json:"totalProfit"`
	TodayProfit       float64 `json:"todayProfit"`
	ProfitRatePercent float64 `json:"profitRatePercent"`
	HoldingCount      int     `json:"holdingCount"`
}
