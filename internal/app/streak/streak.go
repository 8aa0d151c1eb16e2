// Package streak computes consecutive-day statistics over boolean day
// predicates. The calculator walks backward from today across a fixed
// 365-day window — a deliberate bounded-cost cap, so history older
// than a year never contributes to either statistic.
package streak

import (
	"fmt"

	"github.com/ritual-sh/ritual/internal/domain"
	"github.com/ritual-sh/ritual/internal/infra/metrics"
)

// WindowDays is the hard lookback cap for every streak scan.
const WindowDays = 365

// Predicate decides whether a single day qualifies for a streak.
type Predicate interface {
	Key() string
	Matches(day domain.Day) (bool, error)
}

// Calculate scans backward from today and returns the streak result
// for one predicate. The current streak only grows while every day
// from today backward matches; the longest streak is tracked across
// the whole window regardless of where the current run broke.
func Calculate(pred Predicate, today domain.Day) (domain.StreakResult, error) {
	var result domain.StreakResult

	streakBroken := false
	tempStreak := 0

	for i := 0; i < WindowDays; i++ {
		day := today.AddDays(-i)

		matches, err := pred.Matches(day)
		if err != nil {
			return result, fmt.Errorf("predicate %s on %s: %w", pred.Key(), day, err)
		}

		if matches {
			if !streakBroken {
				result.CurrentStreak++
				if result.LastDate.IsZero() {
					result.LastDate = day
				}
			}
			tempStreak++
			if tempStreak > result.LongestStreak {
				result.LongestStreak = tempStreak
			}
		} else {
			streakBroken = true
			tempStreak = 0
		}
	}

	metrics.StreakScans.WithLabelValues(pred.Key()).Inc()
	return result, nil
}

// Store is the read surface the standing predicates need.
// *sqlite.DB satisfies it.
type Store interface {
	BodyMetricOn(day domain.Day) (*domain.BodyMetric, error)
	PhotoAnglesOn(day domain.Day) ([]domain.PhotoAngle, error)
	TimeEntriesOn(day domain.Day) ([]domain.TimeEntry, error)
	MaxWasteMinutes() (int, error)
	ActiveMedications() ([]domain.Medication, error)
	MedicationLogsOn(day domain.Day) ([]domain.MedicationLog, error)
	OralLogOn(day domain.Day) (*domain.OralLog, error)
	PushupLogsOn(day domain.Day) ([]domain.PushupLog, error)
}

// Service bundles the four standing predicates over one store.
type Service struct {
	store Store
}

// NewService creates a streak service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// All computes the four standing streaks for today.
// Keys: perfect_day, showed_up, oral_hygiene, pushups.
func (s *Service) All(today domain.Day) (map[string]domain.StreakResult, error) {
	preds := []struct {
		pred        Predicate
		description string
	}{
		{PerfectDay(s.store), "Consecutive days completing all modules"},
		{ShowedUp(s.store), "Consecutive days with any activity"},
		{OralHygiene(s.store), "Consecutive days with perfect oral hygiene"},
		{Pushups(s.store), "Consecutive days doing pushups"},
	}

	results := make(map[string]domain.StreakResult, len(preds))
	for _, p := range preds {
		r, err := Calculate(p.pred, today)
		if err != nil {
			return nil, err
		}
		r.Description = p.description
		results[p.pred.Key()] = r
	}
	return results, nil
}
