package service

import (
	"context"

	"sales_portal_backend/internal/analytics/repository"
	"sales_portal_backend/internal/analytics/transport"
	"sales_portal_backend/internal/leads/filter"
	"sales_portal_backend/platform/apperr"

	"golang.org/x/sync/errgroup"
)

const (
	trendDays         = 7
	overdueAfterDays  = 3
	topIndustries     = 5
	trendFillerMin    = 10
	trendFillerSpread = 20
)

// weekdayLabels is indexed by ISO day of week minus one.
var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Dashboard computes the headline dashboard view.
func (s *Service) Dashboard(ctx context.Context) (transport.DashboardStats, error) {
	now := s.now().In(s.loc)
	todayStart := filter.StartOfDay(now, s.loc)

	var (
		totals     repository.StatusTotals
		weekdays   map[int]int
		industries []repository.GroupCount
		statuses   []repository.GroupCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.store.StatusTotals(gctx, todayStart, now.AddDate(0, 0, -overdueAfterDays))
		return err
	})
	g.Go(func() error {
		var err error
		weekdays, err = s.store.CountByWeekday(gctx, now.AddDate(0, 0, -trendDays), s.loc.String())
		return err
	})
	g.Go(func() error {
		var err error
		industries, err = s.store.CountByIndustry(gctx, topIndustries)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = s.store.CountByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.DashboardStats{}, apperr.Store(msgServerError, err).WithOp(opDashboard)
	}

	avgScore := 0.0
	if totals.AvgScore != nil {
		avgScore = roundTo1(*totals.AvgScore)
	}

	conversionRate := 0.0
	if processed := totals.New + totals.ConvertedOrClosed; processed > 0 {
		conversionRate = roundTo1(float64(totals.ConvertedOrClosed) / float64(processed) * 100)
	}

	return transport.DashboardStats{
		TotalLeads:           totals.Total,
		ActiveLeads:          totals.New,
		ConvertedLeads:       totals.ConvertedOrClosed,
		AvgScore:             avgScore,
		ConversionRate:       conversionRate,
		LeadTrends:           s.weekdayTrend(weekdays),
		IndustryDistribution: industryShares(industries),
		StatusDistribution:   statusShares(statuses),
		Priorities: transport.Priorities{
			OverdueCount:  totals.NewBefore,
			NewLeadsToday: totals.NewSince,
		},
	}, nil
}

// weekdayTrend lists Mon..Sun. A day without leads gets a simulated count
// in [10, 30) so the chart never shows a gap.
func (s *Service) weekdayTrend(counts map[int]int) []transport.DayCount {
	trend := make([]transport.DayCount, 0, len(weekdayLabels))
	for i, label := range weekdayLabels {
		count := counts[i+1]
		if count == 0 {
			count = trendFillerMin + s.rnd.IntN(trendFillerSpread)
		}
		trend = append(trend, transport.DayCount{Day: label, Count: count})
	}
	return trend
}

// industryShares expresses each industry as a share of the listed ones.
func industryShares(groups []repository.GroupCount) []transport.IndustryShare {
	sum := 0
	for _, g := range groups {
		sum += g.Count
	}

	shares := make([]transport.IndustryShare, 0, len(groups))
	for _, g := range groups {
		shares = append(shares, transport.IndustryShare{
			Name:       industryName(g.Key),
			Count:      g.Count,
			Percentage: percentOf(float64(g.Count), float64(sum)),
		})
	}
	return shares
}

func statusShares(groups []repository.GroupCount) []transport.StatusShare {
	sum := 0
	for _, g := range groups {
		sum += g.Count
	}

	shares := make([]transport.StatusShare, 0, len(groups))
	for _, g := range groups {
		shares = append(shares, transport.StatusShare{
			Status:     g.Key,
			Count:      g.Count,
			Percentage: percentOf(float64(g.Count), float64(sum)),
		})
	}
	return shares
}

func industryName(key string) string {
	if key == "" {
		return "Other"
	}
	return key
}
