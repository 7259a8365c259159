package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"nexus-service/internal/model"
	"nexus-service/internal/store"
)

// Stats is the per-user dashboard summary
type Stats struct {
	Tasks struct {
		Total     int64 `json:"total"`
		Completed int64 `json:"completed"`
	} `json:"tasks"`
	Study struct {
		ActivePlans int64 `json:"active_plans"`
		Consistency int   `json:"consistency"`
	} `json:"study"`
	Resources struct {
		Total int64 `json:"total"`
	} `json:"resources"`
	Wellness struct {
		TodayWater     float64 `json:"today_water"`
		TodayPomodoros int64   `json:"today_pomodoros"`
	} `json:"wellness"`
}

// DashboardService aggregates the caller's data across stores
type DashboardService struct {
	stores *store.Stores
	now    func() time.Time
}

func NewDashboardService(stores *store.Stores) *DashboardService {
	return &DashboardService{stores: stores, now: time.Now}
}

// WithClock replaces the time source that defines "today"
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Stats recomputes the dashboard for ownerID. "Today" is
// [midnight UTC, now).
func (s *DashboardService) Stats(ctx context.Context, ownerID string) (*Stats, error) {
	var stats Stats

	total, completed, err := s.stores.Tasks.Counts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	stats.Tasks.Total = total
	stats.Tasks.Completed = completed

	plans, err := s.stores.Plans.Totals(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	stats.Study.ActivePlans = plans.Count
	stats.Study.Consistency = Consistency(plans.LoggedHours, plans.TargetHours)

	if stats.Resources.Total, err = s.stores.Resources.Count(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	now := s.now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if stats.Wellness.TodayWater, err = s.stores.Wellness.SumBetween(ctx, ownerID, model.WellnessWater, midnight, now); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if stats.Wellness.TodayPomodoros, err = s.stores.Pomodoros.CountBetween(ctx, ownerID, midnight, now); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	return &stats, nil
}

// Consistency is floor(100 * logged / target) clamped to [0, 100], or 0
// when there is no positive target.
func Consistency(logged, target float64) int {
	if target <= 0 {
		return 0
	}
	pct := math.Floor(100 * logged / target)
	return int(math.Max(0, math.Min(100, pct)))
}
