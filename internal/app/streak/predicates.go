package streak

import "github.com/ritual-sh/ritual/internal/domain"

// The four standing predicates. Each is a small view over the log
// store; they share the module completion semantics of the points
// rules but answer yes/no instead of scoring.

// funcPredicate adapts a closure into a Predicate.
type funcPredicate struct {
	key string
	fn  func(day domain.Day) (bool, error)
}

func (p funcPredicate) Key() string { return p.key }

func (p funcPredicate) Matches(day domain.Day) (bool, error) { return p.fn(day) }

// ShowedUp matches any day on which any module has any log at all.
func ShowedUp(store Store) Predicate {
	return funcPredicate{key: "showed_up", fn: func(day domain.Day) (bool, error) {
		if m, err := store.BodyMetricOn(day); err != nil {
			return false, err
		} else if m != nil {
			return true, nil
		}
		if angles, err := store.PhotoAnglesOn(day); err != nil {
			return false, err
		} else if len(angles) > 0 {
			return true, nil
		}
		if entries, err := store.TimeEntriesOn(day); err != nil {
			return false, err
		} else if len(entries) > 0 {
			return true, nil
		}
		if logs, err := store.MedicationLogsOn(day); err != nil {
			return false, err
		} else if len(logs) > 0 {
			return true, nil
		}
		if oral, err := store.OralLogOn(day); err != nil {
			return false, err
		} else if oral != nil {
			return true, nil
		}
		if pushups, err := store.PushupLogsOn(day); err != nil {
			return false, err
		} else if len(pushups) > 0 {
			return true, nil
		}
		return false, nil
	}}
}

// PerfectDay matches only when every module's completion condition
// holds at once: full body metrics, all photo angles, time under the
// waste ceiling, every active medication fully taken (vacuously true
// with no active medications), and all three oral items checked.
func PerfectDay(store Store) Predicate {
	return funcPredicate{key: "perfect_day", fn: func(day domain.Day) (bool, error) {
		m, err := store.BodyMetricOn(day)
		if err != nil {
			return false, err
		}
		if m == nil || !m.Complete() {
			return false, nil
		}

		angles, err := store.PhotoAnglesOn(day)
		if err != nil {
			return false, err
		}
		have := make(map[domain.PhotoAngle]bool, len(angles))
		for _, a := range angles {
			have[a] = true
		}
		for _, want := range domain.AllAngles {
			if !have[want] {
				return false, nil
			}
		}

		ceiling, err := store.MaxWasteMinutes()
		if err != nil {
			return false, err
		}
		entries, err := store.TimeEntriesOn(day)
		if err != nil {
			return false, err
		}
		if len(entries) == 0 {
			return false, nil
		}
		wasted := 0
		for _, e := range entries {
			if e.Wasteful {
				wasted += e.Minutes
			}
		}
		if wasted > ceiling {
			return false, nil
		}

		meds, err := store.ActiveMedications()
		if err != nil {
			return false, err
		}
		if len(meds) > 0 {
			logs, err := store.MedicationLogsOn(day)
			if err != nil {
				return false, err
			}
			for _, med := range meds {
				if !medicationComplete(med, logs) {
					return false, nil
				}
			}
		}

		oral, err := store.OralLogOn(day)
		if err != nil {
			return false, err
		}
		return oral != nil && oral.AllChecked(), nil
	}}
}

// medicationComplete reports whether every expected slot is taken.
func medicationComplete(med domain.Medication, logs []domain.MedicationLog) bool {
	for _, slot := range med.Frequency.Slots() {
		found := false
		for _, l := range logs {
			if l.MedicationID == med.ID && l.Slot == slot && l.Taken {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// OralHygiene matches days with all three checklist items done.
func OralHygiene(store Store) Predicate {
	return funcPredicate{key: "oral_hygiene", fn: func(day domain.Day) (bool, error) {
		log, err := store.OralLogOn(day)
		if err != nil {
			return false, err
		}
		return log != nil && log.AllChecked(), nil
	}}
}

// Pushups matches days with at least one pushup logged.
func Pushups(store Store) Predicate {
	return funcPredicate{key: "pushups", fn: func(day domain.Day) (bool, error) {
		logs, err := store.PushupLogsOn(day)
		if err != nil {
			return false, err
		}
		total := 0
		for _, l := range logs {
			total += l.Count
		}
		return total > 0, nil
	}}
}
