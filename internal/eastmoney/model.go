package eastmoney

// EstimatePayload is the raw JSONP body of the real-time estimate endpoint.
// All numeric fields arrive as strings; Quote performs the conversion.
type EstimatePayload struct {
	FundCode      string `json:"fundcode"`
	Name          string `json:"name"`
	Nav           string `json:"dwjz"`
	Estimate      string `json:"gsz"`
	GrowthPercent string `json:"gszzl"`
	EstimateTime  string `json:"gztime"`
	NavDate       string `json:"jzrq"`
}

// FundListEntry is one row of the full fund list payload:
// [code, pinyin, name, type, full pinyin].
type FundListEntry struct {
	Code       string
	Pinyin     string
	Name       string
	Type       string
	FullPinyin string
}

// navPoint is one entry of the Data_netWorthTrend series.
type navPoint struct {
	X            int64   `json:"x"` // epoch milliseconds
	Y            float64 `json:"y"`
	EquityReturn float64 `json:"equityReturn"`
}

// FundManager is one entry of the Data_currentFundManager series.
type FundManager struct {
	Name     string `json:"name"`
	WorkTime string `json:"workTime"`
	FundSize string `json:"fundSize"`
}

// fundStock is one entry of the Data_fundStocks series.
type fundStock struct {
	Code   string `json:"GPDM"`
	Name   string `json:"GPJC"`
	Weight string `json:"JZBL"`
}

// DetailBundle is the parsed per-fund detail payload. The provider ships it
// as a JavaScript file assigning a few dozen global variables; only the
// variables this system consumes are extracted.
type DetailBundle struct {
	Name string

	// Trailing returns as reported by the provider (percent).
	Return1M float64
	Return3M float64
	Return6M float64
	Return1Y float64

	navTrend     []navPoint
	acWorthTrend [][]*float64
	managers     []FundManager
	stocks       []fundStock
}

// IndexQuote is a parsed market index snapshot. Price and change fields are
// already descaled (the wire carries them as integers times 100).
type IndexQuote struct {
	Price         float64
	Change        float64
	ChangePercent float64
}

// indexPayload is the raw index endpoint response.
type indexPayload struct {
	RC   int `json:"rc"`
	Data *struct {
		F43  float64 `json:"f43"`  // latest price x100
		F169 float64 `json:"f169"` // change x100
		F170 float64 `json:"f170"` // change percent x100
	} `json:"data"`
}
