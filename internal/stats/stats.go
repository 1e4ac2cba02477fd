// Package stats computes derived statistics over weight entry series:
// percent changes, moving averages, week/month rollups, and goal progress.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/weighttrack/weighttrack-go/internal/model"
)

// DefaultWindow is the moving-average window in days.
const DefaultWindow = 7

// DailyPoint is one representative measurement per calendar date, produced
// by collapsing same-date entries.
type DailyPoint struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	Weight float64 `json:"weight"`
	Memo   string  `json:"memo,omitempty"`
}

// ChangePercent returns the percent change from previous to current.
// A zero previous value means no prior measurement; the change is 0.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// MovingAverage returns the mean of the up-to-window points ending at index.
// Points must be in chronological order. With fewer than window points
// available, all of them are used.
func MovingAverage(weights []float64, index, window int) float64 {
	if index < 0 || index >= len(weights) || window <= 0 {
		return 0
	}

	start := index - window + 1
	if start < 0 {
		start = 0
	}

	var sum float64
	for _, w := range weights[start : index+1] {
		sum += w
	}
	return sum / float64(index-start+1)
}

// RemainingToGoal returns how far the current weight is above the target.
// The goal counts as reached when the remainder is zero or negative.
func RemainingToGoal(current, target float64) (remaining float64, reached bool) {
	remaining = current - target
	return remaining, remaining <= 0
}

// CollapseSameDate reduces entries to one point per calendar date by
// averaging weights (rounded to two decimals) and keeping the first memo.
// The result is in chronological order.
func CollapseSameDate(entries []model.WeightEntry) []DailyPoint {
	type group struct {
		sum   float64
		count int
		memo  string
	}

	groups := make(map[string]*group)
	for _, e := range entries {
		g, ok := groups[e.Date]
		if !ok {
			g = &group{}
			groups[e.Date] = g
		}
		g.sum += e.Weight
		g.count++
		if g.memo == "" && e.Memo != "" {
			g.memo = e.Memo
		}
	}

	points := make([]DailyPoint, 0, len(groups))
	for date, g := range groups {
		points = append(points, DailyPoint{
			Date:   date,
			Weight: math.Round(g.sum/float64(g.count)*100) / 100,
			Memo:   g.memo,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// WeekBucket is the average weight over one week of a month. Weeks are
// day-of-month buckets: days 1-7 are week 1, 8-14 week 2, and so on.
type WeekBucket struct {
	Week    int     `json:"week"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// WeeklyAverages partitions one month's points into week buckets and
// averages each bucket. Points with undecodable dates are skipped.
func WeeklyAverages(points []DailyPoint) []WeekBucket {
	type agg struct {
		sum   float64
		count int
	}

	buckets := make(map[int]*agg)
	for _, p := range points {
		t, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		week := (t.Day() + 6) / 7
		a, ok := buckets[week]
		if !ok {
			a = &agg{}
			buckets[week] = a
		}
		a.sum += p.Weight
		a.count++
	}

	weeks := make([]int, 0, len(buckets))
	for w := range buckets {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	out := make([]WeekBucket, 0, len(weeks))
	for _, w := range weeks {
		a := buckets[w]
		out = append(out, WeekBucket{Week: w, Average: a.sum / float64(a.count), Count: a.count})
	}
	return out
}

// MonthlyAverage returns the mean weight over all points.
func MonthlyAverage(points []DailyPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Weight
	}
	return sum / float64(len(points))
}

// FormatPercent renders a percent change with one decimal and an explicit
// sign for increases, e.g. "+1.2%", "-2.0%", "0.0%".
func FormatPercent(v float64) string {
	if v == 0 {
		return "0.0%"
	}
	if v > 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// DaysRemaining returns the number of whole days from now until the
// deadline, rounded up. Past deadlines yield negative values.
func DaysRemaining(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}

// RequiredPace computes the weight change per day, week, and month needed
// to move from current to target by the deadline. Zero or negative days
// remaining yields a zero pace.
func RequiredPace(current, target float64, daysRemaining int) (daily, weekly, monthly float64) {
	if daysRemaining <= 0 {
		return 0, 0, 0
	}
	daily = (current - target) / float64(daysRemaining)
	return daily, daily * 7, daily * 30
}
