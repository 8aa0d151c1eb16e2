// Package points implements the daily completion rules and the
// day/week/month/lifetime point aggregators.
// Each tracked module contributes a small point value per day; the
// aggregators fold those values into summaries with a weekly
// consistency bonus.
package points

import (
	"fmt"

	"github.com/ritual-sh/ritual/internal/domain"
)

// Store is the read surface the rules need from the log store.
// *sqlite.DB satisfies it; tests may substitute fakes.
type Store interface {
	BodyMetricOn(day domain.Day) (*domain.BodyMetric, error)
	EarliestBodyDay() (domain.Day, error)

	PhotoAnglesOn(day domain.Day) ([]domain.PhotoAngle, error)
	EarliestPhotoDay() (domain.Day, error)

	TimeEntriesOn(day domain.Day) ([]domain.TimeEntry, error)
	EarliestTimeEntryDay() (domain.Day, error)
	MaxWasteMinutes() (int, error)

	ActiveMedications() ([]domain.Medication, error)
	MedicationLogsOn(day domain.Day) ([]domain.MedicationLog, error)
	EarliestMedicationLogDay() (domain.Day, error)

	OralLogOn(day domain.Day) (*domain.OralLog, error)
	EarliestOralLogDay() (domain.Day, error)

	PushupLogsOn(day domain.Day) ([]domain.PushupLog, error)
	EarliestPushupDay() (domain.Day, error)
}

// Rule computes one module's completion points for a single day.
// A day with no logs scores 0 — absence is never an error.
type Rule interface {
	Key() string
	Points(day domain.Day) (int, error)
}

// Rules returns the full registry, in breakdown order. The daily
// aggregator iterates this; adding a seventh module means adding a
// rule here, not touching aggregation.
func Rules(store Store) []Rule {
	return []Rule{
		bodyRule{store},
		photosRule{store},
		timeRule{store},
		medicationRule{store},
		oralRule{store},
		pushupsRule{store},
	}
}

// ─── Body ───────────────────────────────────────────────────────────────────

// bodyRule scores 1 iff weight, body fat, and muscle are all recorded.
type bodyRule struct{ store Store }

func (r bodyRule) Key() string { return "body" }

func (r bodyRule) Points(day domain.Day) (int, error) {
	m, err := r.store.BodyMetricOn(day)
	if err != nil {
		return 0, fmt.Errorf("body metric on %s: %w", day, err)
	}
	if m != nil && m.Complete() {
		return 1, nil
	}
	return 0, nil
}

// ─── Photos ─────────────────────────────────────────────────────────────────

// photosRule scores 1 iff all three angles were photographed.
type photosRule struct{ store Store }

func (r photosRule) Key() string { return "photos" }

func (r photosRule) Points(day domain.Day) (int, error) {
	angles, err := r.store.PhotoAnglesOn(day)
	if err != nil {
		return 0, fmt.Errorf("photos on %s: %w", day, err)
	}
	have := make(map[domain.PhotoAngle]bool, len(angles))
	for _, a := range angles {
		have[a] = true
	}
	for _, want := range domain.AllAngles {
		if !have[want] {
			return 0, nil
		}
	}
	return 1, nil
}

// ─── Time ───────────────────────────────────────────────────────────────────

// timeRule scores 1 iff time was logged and wasteful minutes stayed at
// or under the configured daily ceiling. A day with no entries scores
// 0 like every other absent log — an untracked day is not a win.
type timeRule struct{ store Store }

func (r timeRule) Key() string { return "time" }

func (r timeRule) Points(day domain.Day) (int, error) {
	ceiling, err := r.store.MaxWasteMinutes()
	if err != nil {
		return 0, fmt.Errorf("time goal: %w", err)
	}
	entries, err := r.store.TimeEntriesOn(day)
	if err != nil {
		return 0, fmt.Errorf("time entries on %s: %w", day, err)
	}
	if len(entries) == 0 {
		return 0, nil
	}

	wasted := 0
	for _, e := range entries {
		if e.Wasteful {
			wasted += e.Minutes
		}
	}
	if wasted <= ceiling {
		return 1, nil
	}
	return 0, nil
}

// ─── Medication ─────────────────────────────────────────────────────────────

// medicationRule scores 1 point per active medication whose full slot
// set is marked taken for the day.
type medicationRule struct{ store Store }

func (r medicationRule) Key() string { return "medication" }

func (r medicationRule) Points(day domain.Day) (int, error) {
	meds, err := r.store.ActiveMedications()
	if err != nil {
		return 0, fmt.Errorf("active medications: %w", err)
	}
	if len(meds) == 0 {
		return 0, nil
	}
	logs, err := r.store.MedicationLogsOn(day)
	if err != nil {
		return 0, fmt.Errorf("medication logs on %s: %w", day, err)
	}

	points := 0
	for _, med := range meds {
		if medicationComplete(med, logs) {
			points++
		}
	}
	return points, nil
}

// medicationComplete reports whether every expected slot of the
// medication is marked taken in the day's logs.
func medicationComplete(med domain.Medication, logs []domain.MedicationLog) bool {
	expected := med.Frequency.Slots()
	taken := 0
	for _, slot := range expected {
		for _, l := range logs {
			if l.MedicationID == med.ID && l.Slot == slot && l.Taken {
				taken++
				break
			}
		}
	}
	return taken >= len(expected) && len(expected) > 0
}

// ─── Oral Hygiene ───────────────────────────────────────────────────────────

// oralRule scores one point per checked item (0–3).
type oralRule struct{ store Store }

func (r oralRule) Key() string { return "oral" }

func (r oralRule) Points(day domain.Day) (int, error) {
	log, err := r.store.OralLogOn(day)
	if err != nil {
		return 0, fmt.Errorf("oral log on %s: %w", day, err)
	}
	if log == nil {
		return 0, nil
	}
	return log.Checked(), nil
}

// ─── Pushups ────────────────────────────────────────────────────────────────

// pushupsRule is reserved. Pushups are tracked against a yearly goal,
// not the daily breakdown, so the rule always contributes 0.
// TODO: score milestone days (e.g. 100 pushups) once the milestone
// thresholds are settled.
type pushupsRule struct{ store Store }

func (r pushupsRule) Key() string { return "pushups" }

func (r pushupsRule) Points(domain.Day) (int, error) { return 0, nil }
