package service

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/chorddesign/fundmatrix/internal/eastmoney"
	"github.com/chorddesign/fundmatrix/internal/model"
	"github.com/chorddesign/fundmatrix/internal/repository"
)

// indexSpec identifies one tracked market index.
type indexSpec struct {
	secID  string
	name   string
	market string
	code   string
}

// trackedIndices are the dashboard's market strip, in display order.
var trackedIndices = []indexSpec{
	{secID: "1.000001", name: "上证指数", market: "sh", code: "000001"},
	{secID: "0.399006", name: "创业板指", market: "sz", code: "399006"},
	{secID: "1.000688", name: "科创50", market: "sh", code: "000688"},
	{secID: "100.HSI", name: "恒生指数", market: "hk", code: "HSI"},
	{secID: "100.NDX", name: "纳斯达克", market: "us", code: "NDX"},
}

// staticIndexFallback is the last resort when an index has never been
// fetched successfully, so the strip renders instead of going blank.
var staticIndexFallback = map[string]struct {
	price  float64
	change float64
}{
	"上证指数": {price: 3350.44, change: 0.23},
	"创业板指": {price: 2156.78, change: -0.45},
	"科创50":  {price: 1023.56, change: 0.67},
	"恒生指数": {price: 20312.45, change: -0.12},
	"纳斯达克": {price: 19478.23, change: 0.89},
}

// MarketService serves the market index strip. Each index degrades
// gracefully: live quote, then the last snapshot persisted across restarts,
// then a static placeholder.
type MarketService struct {
	fundClient eastmoney.Client
	settings   *repository.SettingsRepository
	now        func() time.Time

	mu       sync.Mutex
	snapshot map[string]model.MarketIndex
}

// NewMarketService creates a new MarketService, loading the persisted index
// snapshot so the first render after a restart is not empty.
func NewMarketService(fundClient eastmoney.Client, settings *repository.SettingsRepository) *MarketService {
	s := &MarketService{
		fundClient: fundClient,
		settings:   settings,
		now:        time.Now,
		snapshot:   map[string]model.MarketIndex{},
	}
	s.loadSnapshot()
	return s
}

func (s *MarketService) loadSnapshot() {
	value, err := s.settings.Get(context.Background(), repository.SettingIndexSnapshot)
	if err != nil {
		return
	}
	var snapshot map[string]model.MarketIndex
	if err := json.Unmarshal([]byte(value), &snapshot); err != nil {
		log.Printf("Index snapshot decode failed: %v", err)
		return
	}
	s.snapshot = snapshot
}

// Indices retrieves the tracked market indices, always returning one entry
// per index in display order. Never fails; unreachable indices fall back to
// the persisted snapshot tagged "(缓存)", then to static placeholders.
func (s *MarketService) Indices(ctx context.Context) []model.MarketIndex {
	indices := make([]model.MarketIndex, 0, len(trackedIndices))
	updated := false

	for _, spec := range trackedIndices {
		quote, err := s.fundClient.FetchIndex(ctx, spec.secID)
		if err != nil {
			log.Printf("Index fetch failed for %s: %v", spec.name, err)
			indices = append(indices, s.fallback(spec))
			continue
		}

		index := model.MarketIndex{
			Code:          spec.code,
			Name:          spec.name,
			Price:         quote.Price,
			PrevClose:     quote.Price - quote.Change,
			Change:        quote.Change,
			ChangePercent: quote.ChangePercent,
			UpdateTime:    s.now().Format("15:04:05"),
			Closed:        !s.marketOpen(spec.market),
		}
		indices = append(indices, index)

		s.mu.Lock()
		s.snapshot[spec.code] = index
		s.mu.Unlock()
		updated = true
	}

	if updated {
		s.persistSnapshot(ctx)
	}
	return indices
}

func (s *MarketService) fallback(spec indexSpec) model.MarketIndex {
	s.mu.Lock()
	cached, ok := s.snapshot[spec.code]
	s.mu.Unlock()
	if ok {
		cached.Closed = !s.marketOpen(spec.market)
		cached.UpdateTime += " (缓存)"
		return cached
	}

	static := staticIndexFallback[spec.name]
	return model.MarketIndex{
		Code:          spec.code,
		Name:          spec.name,
		Price:         static.price,
		PrevClose:     static.price / (1 + static.change/100),
		Change:        static.price * static.change / 100,
		ChangePercent: static.change,
		UpdateTime:    "--:--",
		Closed:        !s.marketOpen(spec.market),
	}
}

func (s *MarketService) persistSnapshot(ctx context.Context) {
	s.mu.Lock()
	data, err := json.Marshal(s.snapshot)
	s.mu.Unlock()
	if err != nil {
		return
	}
	if err := s.settings.Put(ctx, repository.SettingIndexSnapshot, string(data)); err != nil {
		log.Printf("Index snapshot persist failed: %v", err)
	}
}

var beijing = time.FixedZone("CST", 8*60*60)

// marketOpen reports whether the venue is in a trading session, evaluated
// on Beijing time. US hours are the Beijing-clock overnight session.
func (s *MarketService) marketOpen(market string) bool {
	now := s.now().In(beijing)
	weekday := now.Weekday()
	clock := now.Hour()*100 + now.Minute()

	if (market == "sh" || market == "sz" || market == "hk") &&
		(weekday == time.Saturday || weekday == time.Sunday) {
		return false
	}

	switch market {
	case "sh", "sz":
		return (clock >= 930 && clock <= 1130) || (clock >= 1300 && clock <= 1500)
	case "hk":
		return (clock >= 930 && clock <= 1200) || (clock >= 1300 && clock <= 1600)
	case "us":
		return clock >= 2130 || clock <= 400
	default:
		return true
	}
}
