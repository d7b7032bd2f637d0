// Package service computes the dashboard and analytics views from grouped
// lead counts. Independent reads run concurrently; any failure fails the
// whole view.
package service

import (
	"context"
	"time"

	"sales_portal_backend/internal/analytics/repository"
	"sales_portal_backend/platform/random"
)

const (
	msgServerError = "server error"

	opDashboard = "analytics.Dashboard"
	opAnalytics = "analytics.Analytics"
)

// Store is the grouped-count surface of the lead store.
type Store interface {
	StatusTotals(ctx context.Context, newSince, newBefore time.Time) (repository.StatusTotals, error)
	CountByWeekday(ctx context.Context, since time.Time, tz string) (map[int]int, error)
	CountByIndustry(ctx context.Context, limit int) ([]repository.GroupCount, error)
	CountByStatus(ctx context.Context) ([]repository.GroupCount, error)
	CreationWindow(ctx context.Context, recentSince, previousSince time.Time) (repository.CreationWindow, error)
	BestMonth(ctx context.Context, tz string) (month int, ok bool, err error)
}

// Options tune the service. Zero values fall back to UTC, the global random
// source and time.Now.
type Options struct {
	Location *time.Location
	Random   random.Source
	Now      func() time.Time
}

type Service struct {
	store Store
	loc   *time.Location
	rnd   random.Source
	now   func() time.Time
}

func New(store Store, opts Options) *Service {
	s := &Service{store: store, loc: opts.Location, rnd: opts.Random, now: opts.Now}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.rnd == nil {
		s.rnd = random.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}
