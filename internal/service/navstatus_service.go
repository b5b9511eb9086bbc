package service

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chorddesign/fundmatrix/internal/model"
)

// NavStatusService detects whether a fund's official daily NAV has posted
// recently. Estimates live intraday, but the confirmed NAV for a trading day
// arrives hours after close; the dashboard marks each holding accordingly.
type NavStatusService struct {
	details       *DetailService
	freshnessDays int
	now           func() time.Time
}

// NewNavStatusService creates a new NavStatusService. freshnessDays is how
// old the newest NAV record may be while still counting as updated; the
// window absorbs weekends and market holidays.
func NewNavStatusService(details *DetailService, freshnessDays int) *NavStatusService {
	return &NavStatusService{
		details:       details,
		freshnessDays: freshnessDays,
		now:           time.Now,
	}
}

// StatusFromHistory derives the update status from a NAV history. The
// growth and date of the newest record are reported regardless of
// freshness, so a stale fund still shows its last known NAV day.
func (s *NavStatusService) StatusFromHistory(history []model.NavRecord) model.NavUpdateStatus {
	if len(history) == 0 {
		return model.NavUpdateStatus{Updated: false}
	}

	sorted := make([]model.NavRecord, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	latest := sorted[0]

	latestDate, err := time.Parse("2006-01-02", latest.Date)
	if err != nil {
		return model.NavUpdateStatus{Updated: false}
	}
	days := int(s.now().Sub(latestDate).Hours() / 24)

	growth := latest.GrowthPercent
	date := latest.Date
	return model.NavUpdateStatus{
		Updated:       days <= s.freshnessDays,
		GrowthPercent: &growth,
		Date:          &date,
	}
}

// Status retrieves the update status for one fund, reusing the cached
// detail bundle when present.
func (s *NavStatusService) Status(ctx context.Context, code string) model.NavUpdateStatus {
	detail, err := s.details.Detail(ctx, code)
	if err != nil {
		log.Printf("NAV status fetch failed for %s: %v", code, err)
		return model.NavUpdateStatus{Updated: false}
	}
	return s.StatusFromHistory(detail.NavHistory)
}

// BatchStatus retrieves update statuses for many funds concurrently. Every
// requested code appears in the result; funds whose detail could not be
// fetched report not-updated rather than failing the batch.
func (s *NavStatusService) BatchStatus(ctx context.Context, codes []string) map[string]model.NavUpdateStatus {
	statuses := make(map[string]model.NavUpdateStatus, len(codes))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, code := range codes {
		code := code
		g.Go(func() error {
			status := s.Status(gctx, code)
			mu.Lock()
			statuses[code] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return statuses
}
