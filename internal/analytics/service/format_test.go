package service

import (
	"testing"
	"time"
)

func TestFormatCount(t *testing.T) {
	cases := map[int]string{
		0:      "0",
		950:    "950",
		999:    "999",
		1000:   "1K",
		1050:   "1.1K",
		15200:  "15.2K",
		999999: "1000K",
	}

	for in, want := range cases {
		if got := FormatCount(in); got != want {
			t.Fatalf("FormatCount(%d): expected %q, got %q", in, want, got)
		}
	}
}

func TestFormatGrouped(t *testing.T) {
	if got := formatGrouped(12400); got != "12,400" {
		t.Fatalf("expected 12,400, got %q", got)
	}
	if got := formatGrouped(7); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}
}

func TestFormatIncrease(t *testing.T) {
	cases := []struct {
		recent, previous int
		want             string
	}{
		{0, 0, "+0%"},
		{5, 0, "+100%"},
		{15, 10, "+50.0%"},
		{10, 10, "+0.0%"},
		{4, 10, "-60.0%"},
		{1, 3, "-66.7%"},
	}

	for _, tc := range cases {
		if got := formatIncrease(tc.recent, tc.previous); got != tc.want {
			t.Fatalf("formatIncrease(%d, %d): expected %q, got %q", tc.recent, tc.previous, tc.want, got)
		}
	}
}

func TestAveragePerMonth(t *testing.T) {
	now := time.Date(2026, time.March, 18, 0, 0, 0, 0, time.UTC)

	if got := averagePerMonth(12, nil, now); got != 12 {
		t.Fatalf("expected total when no oldest lead, got %d", got)
	}

	recent := now.Add(-48 * time.Hour)
	if got := averagePerMonth(12, &recent, now); got != 12 {
		t.Fatalf("expected at least one month, got %d", got)
	}

	// 61 days is three 30-day periods once rounded up.
	old := now.AddDate(0, 0, -61)
	if got := averagePerMonth(100, &old, now); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
}
