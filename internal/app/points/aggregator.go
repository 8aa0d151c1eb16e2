package points

import (
	"fmt"
	"math"
	"time"

	"github.com/ritual-sh/ritual/internal/domain"
	"github.com/ritual-sh/ritual/internal/infra/metrics"
)

// Calculator derives point breakdowns and period summaries from the
// module rules. It holds no state of its own — every call recomputes
// from the store, so results are always consistent with the logs.
type Calculator struct {
	store Store
	rules []Rule
}

// NewCalculator builds a calculator over the standard rule registry.
func NewCalculator(store Store) *Calculator {
	return &Calculator{store: store, rules: Rules(store)}
}

// Daily computes the point breakdown for one day by running every
// module rule. Idempotent, no side effects.
func (c *Calculator) Daily(day domain.Day) (domain.DailyPoints, error) {
	p := domain.DailyPoints{Day: day}

	for _, rule := range c.rules {
		pts, err := rule.Points(day)
		if err != nil {
			return p, fmt.Errorf("rule %s: %w", rule.Key(), err)
		}
		switch rule.Key() {
		case "body":
			p.Body = pts
		case "photos":
			p.Photos = pts
		case "time":
			p.Time = pts
		case "medication":
			p.Medication = pts
		case "oral":
			p.Oral = pts
		case "pushups":
			p.Pushups = pts
		}
		p.Total += pts
	}

	metrics.PointsComputed.WithLabelValues("daily").Inc()
	return p, nil
}

// Weekly summarizes the last 7 days ending at today, oldest first.
// The consistency multiplier rewards showing up: 2.0 for all 7 days,
// 1.5 for 5–6, 1.25 for 3–4, otherwise 1.0. The weekly score rounds
// after multiplication, not before.
func (c *Calculator) Weekly(today domain.Day) (domain.WeeklySummary, error) {
	defer observe("weekly", time.Now())

	var s domain.WeeklySummary
	for i := 6; i >= 0; i-- {
		day, err := c.Daily(today.AddDays(-i))
		if err != nil {
			return s, err
		}
		s.Days = append(s.Days, day)
		s.TotalBasePoints += day.Total
		if day.Total > 0 {
			s.DaysWithActivity++
		}
	}

	s.ConsistencyMultiplier = consistencyMultiplier(s.DaysWithActivity)
	s.WeeklyScore = int(math.Round(float64(s.TotalBasePoints) * s.ConsistencyMultiplier))

	metrics.PointsComputed.WithLabelValues("weekly").Inc()
	return s, nil
}

// consistencyMultiplier maps active-day counts to the weekly bonus.
// Thresholds are checked highest first; the first match wins.
func consistencyMultiplier(daysWithActivity int) float64 {
	switch {
	case daysWithActivity >= 7:
		return 2.0
	case daysWithActivity >= 5:
		return 1.5
	case daysWithActivity >= 3:
		return 1.25
	default:
		return 1.0
	}
}

// Monthly summarizes one calendar month. For the current month it
// covers day 1 through today; for past months, the whole month.
func (c *Calculator) Monthly(year, month int, today domain.Day) (domain.MonthlySummary, error) {
	defer observe("monthly", time.Now())

	if month < 1 || month > 12 || year < 1 {
		return domain.MonthlySummary{}, fmt.Errorf("%w: month %d/%d", domain.ErrInvalidRange, year, month)
	}

	s := domain.MonthlySummary{
		Year:        year,
		Month:       month,
		DaysInMonth: domain.DaysInMonth(year, month),
	}

	now := today.Time()
	s.DaysElapsed = s.DaysInMonth
	if year == now.Year() && month == int(now.Month()) {
		s.DaysElapsed = now.Day()
	}

	for dayNum := 1; dayNum <= s.DaysElapsed; dayNum++ {
		day := domain.DayOf(time.Date(year, time.Month(month), dayNum, 0, 0, 0, 0, time.Local))
		p, err := c.Daily(day)
		if err != nil {
			return s, err
		}
		s.TotalPoints += p.Total
		if p.Total > 0 {
			s.DaysWithActivity++
		}
		s.CategoryTotals.Add(p)
	}

	if s.DaysElapsed > 0 {
		s.CompletionRate = int(math.Round(float64(s.DaysWithActivity) / float64(s.DaysElapsed) * 100))
	}

	metrics.PointsComputed.WithLabelValues("monthly").Inc()
	return s, nil
}

// Lifetime summarizes every day from the earliest log through today.
// With no logs anywhere it returns a zeroed summary without iterating.
func (c *Calculator) Lifetime(today domain.Day) (domain.LifetimeSummary, error) {
	defer observe("lifetime", time.Now())

	var s domain.LifetimeSummary

	start, err := c.earliestLogDay()
	if err != nil {
		return s, err
	}
	if start.IsZero() || start.After(today) {
		return s, nil
	}

	s.StartDate = start
	s.DaysSinceStart = domain.DaysBetween(start, today)

	for day := start; !day.After(today); day = day.AddDays(1) {
		p, err := c.Daily(day)
		if err != nil {
			return s, err
		}
		s.TotalPoints += p.Total
		if p.Total > 0 {
			s.DaysWithActivity++
		}
		s.CategoryTotals.Add(p)
	}

	metrics.PointsComputed.WithLabelValues("lifetime").Inc()
	return s, nil
}

// earliestLogDay returns the minimum first-record day across all six
// module collaborators, or the zero day when nothing was ever logged.
func (c *Calculator) earliestLogDay() (domain.Day, error) {
	earliest := []func() (domain.Day, error){
		c.store.EarliestBodyDay,
		c.store.EarliestPhotoDay,
		c.store.EarliestTimeEntryDay,
		c.store.EarliestMedicationLogDay,
		c.store.EarliestOralLogDay,
		c.store.EarliestPushupDay,
	}

	var min domain.Day
	for _, fn := range earliest {
		day, err := fn()
		if err != nil {
			return "", fmt.Errorf("earliest log day: %w", err)
		}
		if day.IsZero() {
			continue
		}
		if min.IsZero() || day.Before(min) {
			min = day
		}
	}
	return min, nil
}

func observe(window string, start time.Time) {
	metrics.AggregationDuration.WithLabelValues(window).Observe(time.Since(start).Seconds())
}
