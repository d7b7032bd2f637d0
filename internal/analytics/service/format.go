package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatCount renders n for display: values from 1000 up become thousands
// with one decimal and a K suffix ("15.2K", "1K"); smaller values are plain.
// There is no M step, so 999999 renders as "1000K".
func FormatCount(n int) string {
	if n >= 1000 {
		s := strconv.FormatFloat(float64(n)/1000, 'f', 1, 64)
		return strings.TrimSuffix(s, ".0") + "K"
	}
	return strconv.Itoa(n)
}

// formatGrouped renders n with thousands separators ("12,400").
func formatGrouped(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// percentOf is part/whole as a whole-number percentage, 0 when whole is 0.
func percentOf(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(part / whole * 100))
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// formatIncrease renders the change from previous to recent as a signed
// percentage. With no previous leads it is "+100%" if any arrived since,
// else "+0%".
func formatIncrease(recent, previous int) string {
	switch {
	case previous > 0:
		increase := float64(recent-previous) / float64(previous) * 100
		sign := ""
		if increase >= 0 {
			sign = "+"
		}
		return sign + strconv.FormatFloat(increase, 'f', 1, 64) + "%"
	case recent > 0:
		return "+100%"
	default:
		return "+0%"
	}
}

// averagePerMonth spreads total over the 30-day periods since oldest, at
// least one.
func averagePerMonth(total int, oldest *time.Time, now time.Time) int {
	if oldest == nil {
		return total
	}
	months := math.Ceil(now.Sub(*oldest).Hours() / 24 / 30)
	if months < 1 {
		months = 1
	}
	return int(math.Round(float64(total) / months))
}
