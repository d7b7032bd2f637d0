package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"sales_portal_backend/internal/analytics/repository"
	"sales_portal_backend/internal/analytics/transport"
	"sales_portal_backend/internal/leads/domain"
	"sales_portal_backend/platform/apperr"

	"golang.org/x/sync/errgroup"
)

const (
	comparisonWindowDays = 30
	topIndustryStats     = 6
	defaultBestMonth     = "February"
	defaultIcon          = "👤"
	defaultStatusColor   = "bg-slate-300"
	growthMin            = 8.0
	growthSpread         = 15.0
	proposalFactor       = 1.5
)

var industryIcons = map[string]string{
	"Manufacturing": "🏭",
	"Logistics":     "🚚",
	"Technology":    "💻",
	"Oil & Gas":     "🛢️",
	"Construction":  "🏗️",
	"Finance":       "💰",
	"Healthcare":    "🏥",
	"Retail":        "🛒",
	"Other":         defaultIcon,
}

var statusLabels = map[domain.Status]string{
	domain.StatusNew:       "New",
	domain.StatusContacted: "Contacted",
	domain.StatusQualified: "Qualified",
	domain.StatusConverted: "Closed",
	domain.StatusClosed:    "Other",
}

var statusColors = map[domain.Status]string{
	domain.StatusNew:       "bg-indigo-500",
	domain.StatusContacted: "bg-purple-500",
	domain.StatusQualified: "bg-sky-400",
	domain.StatusConverted: "bg-green-500",
	domain.StatusClosed:    defaultStatusColor,
}

// Analytics computes the reporting view: growth, monthly pace, industry
// performance, status mix and the conversion funnel.
func (s *Service) Analytics(ctx context.Context) (transport.AnalyticsStats, error) {
	now := s.now().In(s.loc)

	var (
		window     repository.CreationWindow
		bestMonth  int
		hasMonth   bool
		industries []repository.GroupCount
		statuses   []repository.GroupCount
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		window, err = s.store.CreationWindow(gctx,
			now.AddDate(0, 0, -comparisonWindowDays),
			now.AddDate(0, 0, -2*comparisonWindowDays),
		)
		return err
	})
	g.Go(func() error {
		var err error
		bestMonth, hasMonth, err = s.store.BestMonth(gctx, s.loc.String())
		return err
	})
	g.Go(func() error {
		var err error
		industries, err = s.store.CountByIndustry(gctx, topIndustryStats)
		return err
	})
	g.Go(func() error {
		var err error
		statuses, err = s.store.CountByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return transport.AnalyticsStats{}, apperr.Store(msgServerError, err).WithOp(opAnalytics)
	}

	month := defaultBestMonth
	if hasMonth && bestMonth >= 1 && bestMonth <= 12 {
		month = monthName(bestMonth)
	}

	return transport.AnalyticsStats{
		LeadsIncrease:       formatIncrease(window.Recent, window.Previous),
		TotalLeads:          FormatCount(window.Total),
		AvgPerMonth:         FormatCount(averagePerMonth(window.Total, window.Oldest, now)),
		BestMonth:           month,
		IndustryPerformance: s.industryPerformance(industries),
		StatusDistribution:  statusSlices(statuses),
		FunnelData:          funnel(window.Total, statuses),
	}, nil
}

// industryPerformance attaches a growth figure drawn uniformly from
// [8%, 23%). It is a display placeholder, not a measurement.
func (s *Service) industryPerformance(groups []repository.GroupCount) []transport.IndustryPerformance {
	items := make([]transport.IndustryPerformance, 0, len(groups))
	for _, g := range groups {
		icon, ok := industryIcons[g.Key]
		if !ok {
			icon = defaultIcon
		}
		items = append(items, transport.IndustryPerformance{
			Name:   industryName(g.Key),
			Value:  formatGrouped(g.Count),
			Growth: fmt.Sprintf("+%.1f%%", growthMin+growthSpread*s.rnd.Float64()),
			Icon:   icon,
		})
	}
	return items
}

func statusSlices(groups []repository.GroupCount) []transport.StatusSlice {
	sum := 0
	for _, g := range groups {
		sum += g.Count
	}

	items := make([]transport.StatusSlice, 0, len(groups))
	for _, g := range groups {
		status := domain.Status(g.Key)
		label, ok := statusLabels[status]
		if !ok {
			label = g.Key
		}
		color, ok := statusColors[status]
		if !ok {
			color = defaultStatusColor
		}
		items = append(items, transport.StatusSlice{
			Label:   label,
			Percent: percentOf(float64(g.Count), float64(sum)),
			Count:   formatGrouped(g.Count),
			Color:   color,
		})
	}
	return items
}

// funnel builds Leads > Contacted > Qualified > Proposal > Converted.
// Contacted counts every lead at or past contacted, Qualified every lead at
// or past qualified. Proposal is synthesized as 1.5x converted, capped at
// the Qualified count so the stages never widen.
func funnel(total int, groups []repository.GroupCount) []transport.FunnelStage {
	byStatus := make(map[domain.Status]int, len(groups))
	for _, g := range groups {
		byStatus[domain.Status(g.Key)] += g.Count
	}

	converted := byStatus[domain.StatusConverted]
	qualified := byStatus[domain.StatusQualified] + converted
	contacted := byStatus[domain.StatusContacted] + qualified
	proposal := int(math.Floor(float64(converted) * proposalFactor))
	if proposal > qualified {
		proposal = qualified
	}

	denominator := float64(total)
	if total == 0 {
		denominator = 1
	}
	stage := func(label string, count int, x string) transport.FunnelStage {
		return transport.FunnelStage{
			Label:   label,
			Value:   FormatCount(count),
			Percent: fmt.Sprintf("%d%%", percentOf(float64(count), denominator)),
			X:       x,
		}
	}

	leads := stage("Leads", total, "0%")
	leads.Percent = "100%"

	return []transport.FunnelStage{
		leads,
		stage("Contacted", contacted, "20%"),
		stage("Qualified", qualified, "40%"),
		stage("Proposal", proposal, "60%"),
		stage("Converted", converted, "80%"),
	}
}

func monthName(month int) string {
	return time.Month(month).String()
}
