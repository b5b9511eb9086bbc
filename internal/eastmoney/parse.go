package eastmoney

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chorddesign/fundmatrix/internal/apperrors"
	"github.com/chorddesign/fundmatrix/internal/model"
)

// UnwrapJSONP strips a JSONP callback wrapper, returning the inner argument.
// Accepts both `cb({...});` and a bare `{...}` body.
func UnwrapJSONP(body []byte) ([]byte, error) {
	s := strings.TrimSpace(string(body))
	open := strings.Index(s, "(")
	if open < 0 {
		if strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") {
			return []byte(s), nil
		}
		return nil, fmt.Errorf("%w: no callback wrapper or JSON body", apperrors.ErrParse)
	}
	close := strings.LastIndex(s, ")")
	if close < open {
		return nil, fmt.Errorf("%w: unbalanced callback wrapper", apperrors.ErrParse)
	}
	return []byte(s[open+1 : close]), nil
}

// ParseEstimate decodes the real-time estimate JSONP payload.
// A body whose fund code field is empty is reported as ErrNoData: the
// endpoint answers with an empty wrapper for unknown codes.
func ParseEstimate(body []byte) (EstimatePayload, error) {
	inner, err := UnwrapJSONP(body)
	if err != nil {
		return EstimatePayload{}, err
	}

	var payload EstimatePayload
	if err := json.Unmarshal(inner, &payload); err != nil {
		return EstimatePayload{}, fmt.Errorf("%w: estimate body: %v", apperrors.ErrParse, err)
	}
	if payload.FundCode == "" {
		return EstimatePayload{}, apperrors.ErrNoData
	}
	return payload, nil
}

// Quote converts the raw string payload into a FundQuote. Missing numeric
// fields become zero, and the estimate falls back to the NAV so downstream
// consumers never divide by, or display, an absent projection.
func (p EstimatePayload) Quote() model.FundQuote {
	nav := parseFloat(p.Nav)
	estimate := parseFloat(p.Estimate)
	if estimate == 0 {
		estimate = nav
	}

	updateTime := p.EstimateTime
	// The provider timestamps estimates as "2006-01-02 15:04"; keep only the
	// clock for display, matching the NAV date being a separate field.
	if len(updateTime) >= 16 {
		updateTime = updateTime[11:16]
	}

	return model.FundQuote{
		Code:          p.FundCode,
		Name:          p.Name,
		Nav:           nav,
		Estimate:      estimate,
		GrowthPercent: parseFloat(p.GrowthPercent),
		UpdateTime:    updateTime,
		NavDate:       p.NavDate,
	}
}

// ParseFundList decodes the full fund list payload, a JS assignment of a
// nested string array: var r = [["000001","HXCZ","华夏成长","混合型",...],...];
func ParseFundList(body []byte) ([]FundListEntry, error) {
	raw, ok := extractAssignment(string(body), "r")
	if !ok {
		return nil, fmt.Errorf("%w: fund list variable missing", apperrors.ErrParse)
	}

	var rows [][]string
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("%w: fund list body: %v", apperrors.ErrParse, err)
	}

	entries := make([]FundListEntry, 0, len(rows))
	for _, row := range rows {
		if len(row) < 5 || row[0] == "" {
			continue
		}
		entries = append(entries, FundListEntry{
			Code:       row[0],
			Pinyin:     row[1],
			Name:       row[2],
			Type:       row[3],
			FullPinyin: row[4],
		})
	}
	if len(entries) == 0 {
		return nil, apperrors.ErrNoData
	}
	return entries, nil
}

// ParseDetail extracts the consumed variables from the detail payload, a JS
// file of the form `var fS_name = "...";var Data_netWorthTrend = [...];...`.
// Individual missing variables are tolerated; a payload without even a fund
// name is reported as ErrNoData.
func ParseDetail(body []byte) (DetailBundle, error) {
	src := string(body)

	var bundle DetailBundle
	if raw, ok := extractAssignment(src, "fS_name"); ok {
		_ = json.Unmarshal([]byte(raw), &bundle.Name)
	}
	if bundle.Name == "" {
		return DetailBundle{}, apperrors.ErrNoData
	}

	// Trailing returns arrive under historical variable names: syl_1n is the
	// one-year figure, syl_6y six months, syl_3y three months, syl_1y one month.
	bundle.Return1Y = parseQuotedFloat(src, "syl_1n")
	bundle.Return6M = parseQuotedFloat(src, "syl_6y")
	bundle.Return3M = parseQuotedFloat(src, "syl_3y")
	bundle.Return1M = parseQuotedFloat(src, "syl_1y")

	if raw, ok := extractAssignment(src, "Data_netWorthTrend"); ok {
		_ = json.Unmarshal([]byte(raw), &bundle.navTrend)
	}
	if raw, ok := extractAssignment(src, "Data_ACWorthTrend"); ok {
		_ = json.Unmarshal([]byte(raw), &bundle.acWorthTrend)
	}
	if raw, ok := extractAssignment(src, "Data_currentFundManager"); ok {
		_ = json.Unmarshal([]byte(raw), &bundle.managers)
	}
	if raw, ok := extractAssignment(src, "Data_fundStocks"); ok {
		_ = json.Unmarshal([]byte(raw), &bundle.stocks)
	}

	return bundle, nil
}

// NavHistory returns the most recent limit NAV records, oldest first, with
// the accumulated NAV joined from the ACWorth series by timestamp.
func (b DetailBundle) NavHistory(limit int) []model.NavRecord {
	trend := b.navTrend
	if limit > 0 && len(trend) > limit {
		trend = trend[len(trend)-limit:]
	}

	acByTS := make(map[int64]float64, len(b.acWorthTrend))
	for _, point := range b.acWorthTrend {
		if len(point) == 2 && point[0] != nil && point[1] != nil {
			acByTS[int64(*point[0])] = *point[1]
		}
	}

	history := make([]model.NavRecord, 0, len(trend))
	for _, point := range trend {
		acc := point.Y
		if v, ok := acByTS[point.X]; ok {
			acc = v
		}
		history = append(history, model.NavRecord{
			Date:           time.UnixMilli(point.X).UTC().Format("2006-01-02"),
			Nav:            round(point.Y, 4),
			AccumulatedNav: round(acc, 4),
			GrowthPercent:  round(point.EquityReturn, 2),
		})
	}
	return history
}

// AccumulatedNav returns the latest accumulated NAV and its date, or false
// when the series is absent.
func (b DetailBundle) AccumulatedNav() (float64, string, bool) {
	for i := len(b.acWorthTrend) - 1; i >= 0; i-- {
		point := b.acWorthTrend[i]
		if len(point) == 2 && point[0] != nil && point[1] != nil {
			date := time.UnixMilli(int64(*point[0])).UTC().Format("2006-01-02")
			return *point[1], date, true
		}
	}
	return 0, "", false
}

// Manager returns the current fund manager, or false when undisclosed.
func (b DetailBundle) Manager() (FundManager, bool) {
	if len(b.managers) == 0 {
		return FundManager{}, false
	}
	return b.managers[0], true
}

// Positions returns the disclosed top stock positions, at most ten, dropping
// entries without a code, name, or positive weight.
func (b DetailBundle) Positions() []model.StockPosition {
	positions := make([]model.StockPosition, 0, len(b.stocks))
	for _, stock := range b.stocks {
		if len(positions) >= 10 {
			break
		}
		weight := parseFloat(stock.Weight)
		if stock.Code == "" || stock.Name == "" || weight <= 0 {
			continue
		}
		positions = append(positions, model.StockPosition{
			StockCode:     stock.Code,
			StockName:     stock.Name,
			WeightPercent: weight,
		})
	}
	return positions
}

var (
	tableRowPattern  = regexp.MustCompile(`(?s)<tr[^>]*>(.*?)</tr>`)
	tableCellPattern = regexp.MustCompile(`(?s)<td[^>]*>(.*?)</td>`)
	htmlTagPattern   = regexp.MustCompile(`<[^>]*>`)
)

var archiveContentPattern = regexp.MustCompile(`content\s*:\s*"`)

// ParseArchivePositions decodes the quarterly-archive payload: a JS
// assignment `var apidata={ content:"<table>...</table>",...};` whose content
// is an HTML table of the latest disclosed positions. The object literal uses
// unquoted keys, so the content string is carved out directly rather than
// decoded as JSON. Returns at most ten positions; an empty table is not an
// error, just an empty slice.
func ParseArchivePositions(body []byte) ([]model.StockPosition, error) {
	src := string(body)
	if _, ok := extractAssignment(src, "apidata"); !ok {
		return nil, fmt.Errorf("%w: archive variable missing", apperrors.ErrParse)
	}

	loc := archiveContentPattern.FindStringIndex(src)
	if loc == nil {
		return nil, nil
	}
	end, ok := matchString(src[loc[1]-1:])
	if !ok {
		return nil, fmt.Errorf("%w: unterminated archive content", apperrors.ErrParse)
	}

	var content string
	if err := json.Unmarshal([]byte(src[loc[1]-1:loc[1]-1+end]), &content); err != nil {
		return nil, fmt.Errorf("%w: archive content: %v", apperrors.ErrParse, err)
	}
	if content == "" {
		return nil, nil
	}

	return parsePositionsTable(content), nil
}

// parsePositionsTable extracts positions from the first table of the archive
// HTML. Row layout: sequence number, stock code, stock name, weight percent.
func parsePositionsTable(html string) []model.StockPosition {
	positions := []model.StockPosition{}

	for _, row := range tableRowPattern.FindAllStringSubmatch(html, -1) {
		if len(positions) >= 10 {
			break
		}
		cells := tableCellPattern.FindAllStringSubmatch(row[1], -1)
		if len(cells) < 4 {
			continue
		}

		code := cellText(cells[1][1])
		name := cellText(cells[2][1])
		weight := parseFloat(strings.TrimSuffix(cellText(cells[3][1]), "%"))
		if code == "" || name == "" || weight <= 0 {
			continue
		}

		// Archive codes occasionally drop leading zeros.
		for len(code) < 6 {
			code = "0" + code
		}
		positions = append(positions, model.StockPosition{
			StockCode:     code,
			StockName:     name,
			WeightPercent: weight,
		})
	}

	return positions
}

func cellText(cell string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(cell, ""))
}

// ParseIndex decodes the index quote payload and descales its integer fields.
func ParseIndex(body []byte) (IndexQuote, error) {
	inner, err := UnwrapJSONP(body)
	if err != nil {
		return IndexQuote{}, err
	}

	var payload indexPayload
	if err := json.Unmarshal(inner, &payload); err != nil {
		return IndexQuote{}, fmt.Errorf("%w: index body: %v", apperrors.ErrParse, err)
	}
	if payload.RC != 0 || payload.Data == nil {
		return IndexQuote{}, apperrors.ErrNoData
	}

	quote := IndexQuote{
		Price:         payload.Data.F43 / 100,
		Change:        payload.Data.F169 / 100,
		ChangePercent: payload.Data.F170 / 100,
	}
	if quote.Price <= 0 {
		return IndexQuote{}, apperrors.ErrNoData
	}
	return quote, nil
}

// extractAssignment finds `var <name> = <value>` in a JS source and returns
// the value text without the trailing semicolon. Values that open with a
// bracket or quote are scanned to their matching close, honoring string
// escapes, so payload semicolons do not truncate the value.
func extractAssignment(src, name string) (string, bool) {
	pattern := regexp.MustCompile(`(?:var\s+|[;\s]|^)` + regexp.QuoteMeta(name) + `\s*=\s*`)
	loc := pattern.FindStringIndex(src)
	if loc == nil {
		return "", false
	}

	rest := src[loc[1]:]
	if rest == "" {
		return "", false
	}

	switch rest[0] {
	case '[', '{':
		end, ok := matchBracket(rest)
		if !ok {
			return "", false
		}
		return rest[:end], true
	case '"', '\'':
		end, ok := matchString(rest)
		if !ok {
			return "", false
		}
		return rest[:end], true
	default:
		if i := strings.IndexByte(rest, ';'); i >= 0 {
			return strings.TrimSpace(rest[:i]), true
		}
		return strings.TrimSpace(rest), true
	}
}

// matchBracket returns the index one past the close bracket matching src[0].
func matchBracket(src string) (int, bool) {
	depth := 0
	inString := false
	var quote byte
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == quote {
				inString = false
			}
			continue
		}
		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

// matchString returns the index one past the quote closing src[0].
func matchString(src string) (int, bool) {
	quote := src[0]
	for i := 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i + 1, true
		}
	}
	return 0, false
}

func parseQuotedFloat(src, name string) float64 {
	raw, ok := extractAssignment(src, name)
	if !ok {
		return 0
	}
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return 0
	}
	return parseFloat(s)
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func round(v float64, places int) float64 {
	s := strconv.FormatFloat(v, 'f', places, 64)
	r, _ := strconv.ParseFloat(s, 64)
	return r
}
