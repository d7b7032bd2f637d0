// Package repository runs the grouped lead queries behind the dashboard and
// analytics views. Calendar fields are evaluated in the reporting time zone.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GroupCount is one row of a GROUP BY count.
type GroupCount struct {
	Key   string
	Count int
}

// StatusTotals are the headline counts of the dashboard.
type StatusTotals struct {
	Total             int
	New               int
	ConvertedOrClosed int
	NewSince          int
	NewBefore         int
	AvgScore          *float64
}

// CreationWindow summarises lead creation over two consecutive windows.
type CreationWindow struct {
	Total    int
	Recent   int
	Previous int
	Oldest   *time.Time
}

// StatusTotals counts all leads, new ones, converted-or-closed ones, new ones
// created at or after newSince, and new ones created before newBefore.
func (r *Repository) StatusTotals(ctx context.Context, newSince, newBefore time.Time) (StatusTotals, error) {
	var totals StatusTotals
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE lower(status) = 'new'),
			COUNT(*) FILTER (WHERE lower(status) IN ('converted', 'closed')),
			COUNT(*) FILTER (WHERE lower(status) = 'new' AND created_at >= $1),
			COUNT(*) FILTER (WHERE lower(status) = 'new' AND created_at < $2),
			AVG(match_score)::float8
		FROM leads
	`, newSince, newBefore).Scan(
		&totals.Total, &totals.New, &totals.ConvertedOrClosed,
		&totals.NewSince, &totals.NewBefore, &totals.AvgScore,
	)
	return totals, err
}

// CountByWeekday groups leads created at or after since by ISO day of week
// (1 = Monday, 7 = Sunday) in tz.
func (r *Repository) CountByWeekday(ctx context.Context, since time.Time, tz string) (map[int]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(ISODOW FROM created_at AT TIME ZONE $2)::int AS dow, COUNT(*)
		FROM leads
		WHERE created_at >= $1
		GROUP BY dow
	`, since, tz)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int, 7)
	for rows.Next() {
		var dow, count int
		if err := rows.Scan(&dow, &count); err != nil {
			return nil, err
		}
		counts[dow] = count
	}
	return counts, rows.Err()
}

// CountByIndustry returns the limit largest industries, biggest first.
func (r *Repository) CountByIndustry(ctx context.Context, limit int) ([]GroupCount, error) {
	return r.groupCounts(ctx, `
		SELECT industry, COUNT(*) AS c FROM leads GROUP BY industry ORDER BY c DESC LIMIT $1
	`, limit)
}

// CountByStatus returns the statuses present in the data, biggest first.
func (r *Repository) CountByStatus(ctx context.Context) ([]GroupCount, error) {
	return r.groupCounts(ctx, `
		SELECT lower(status) AS s, COUNT(*) AS c FROM leads GROUP BY s ORDER BY c DESC
	`)
}

// CreationWindow counts leads created in [recentSince, now) and
// [previousSince, recentSince), plus the overall total and oldest timestamp.
func (r *Repository) CreationWindow(ctx context.Context, recentSince, previousSince time.Time) (CreationWindow, error) {
	var window CreationWindow
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE created_at >= $1),
			COUNT(*) FILTER (WHERE created_at >= $2 AND created_at < $1),
			MIN(created_at)
		FROM leads
	`, recentSince, previousSince).Scan(&window.Total, &window.Recent, &window.Previous, &window.Oldest)
	return window, err
}

// BestMonth returns the calendar month (1-12) with the most leads in tz.
// ok is false when there are no leads.
func (r *Repository) BestMonth(ctx context.Context, tz string) (month int, ok bool, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT EXTRACT(MONTH FROM created_at AT TIME ZONE $1)::int AS m
		FROM leads
		GROUP BY m
		ORDER BY COUNT(*) DESC
		LIMIT 1
	`, tz).Scan(&month)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return month, true, nil
}

func (r *Repository) groupCounts(ctx context.Context, query string, args ...any) ([]GroupCount, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GroupCount, 0)
	for rows.Next() {
		var item GroupCount
		if err := rows.Scan(&item.Key, &item.Count); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return items, nil
}
