package service

import (
	"context"
	"time"

	"github.com/xolan/lifelog/internal/record"
	"github.com/xolan/lifelog/internal/stats"
	"github.com/xolan/lifelog/internal/storage"
)

// StatsService computes the dashboard and profile figures
type StatsService struct {
	store storage.Store
	loc   *time.Location
	now   func() time.Time
}

// NewStatsService creates a new StatsService
func NewStatsService(store storage.Store, loc *time.Location, now func() time.Time) *StatsService {
	return &StatsService{
		store: store,
		loc:   loc,
		now:   now,
	}
}

// Now returns the current time in the configured timezone
func (s *StatsService) Now() time.Time {
	return s.now().In(s.loc)
}

// Dashboard returns the statistics view for tr
func (s *StatsService) Dashboard(ctx context.Context, tr stats.TimeRange) stats.Dashboard {
	return stats.BuildDashboard(s.store.ReadAll(ctx), tr, s.Now())
}

// Profile returns the overall totals and the most recent records
func (s *StatsService) Profile(ctx context.Context) ProfileResult {
	all := s.store.ReadAll(ctx)
	return ProfileResult{
		Summary: stats.Summarize(all),
		Recent:  record.Recent(all, RecentLimit, s.loc),
	}
}
