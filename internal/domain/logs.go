package domain

import "time"

// ─── Module Log Records ─────────────────────────────────────────────────────
// One record type per tracked life-habit module. The engine only reads
// these; data entry lives in the surrounding application.

// BodyMetric is a single day's body measurement. Any field may be
// missing — the day only counts when all three are present.
type BodyMetric struct {
	Day     Day      `json:"day"`
	Weight  *float64 `json:"weight"`
	BodyFat *float64 `json:"body_fat"`
	Muscle  *float64 `json:"muscle"`
}

// Complete reports whether all three metrics were recorded.
func (m BodyMetric) Complete() bool {
	return m.Weight != nil && m.BodyFat != nil && m.Muscle != nil
}

// PhotoAngle identifies a progress photo angle.
type PhotoAngle string

const (
	AngleFront PhotoAngle = "front"
	AngleBack  PhotoAngle = "back"
	AngleSide  PhotoAngle = "side"
)

// AllAngles is the full set a complete photo day requires.
var AllAngles = []PhotoAngle{AngleFront, AngleBack, AngleSide}

// TimeEntry is one logged block of time for a day.
type TimeEntry struct {
	ID       int64  `json:"id"`
	Day      Day    `json:"day"`
	Activity string `json:"activity"`
	Wasteful bool   `json:"wasteful"`
	Minutes  int    `json:"minutes"`
}

// DefaultMaxWasteMinutes is the lazily materialized daily waste ceiling.
const DefaultMaxWasteMinutes = 60

// Frequency is a medication's daily dosing tier.
type Frequency string

const (
	FreqOnce   Frequency = "ONCE"
	FreqTwice  Frequency = "TWICE"
	FreqThrice Frequency = "THRICE"
)

// Slots returns the expected dose slots for the tier.
func (f Frequency) Slots() []string {
	switch f {
	case FreqOnce:
		return []string{"morning"}
	case FreqTwice:
		return []string{"morning", "evening"}
	case FreqThrice:
		return []string{"morning", "afternoon", "evening"}
	}
	return nil
}

// Valid reports whether the tier is one of the three known values.
func (f Frequency) Valid() bool {
	switch f {
	case FreqOnce, FreqTwice, FreqThrice:
		return true
	}
	return false
}

// Medication is a tracked medication. Only active medications
// participate in points and the perfect-day predicate.
type Medication struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Frequency Frequency `json:"frequency"`
	Active    bool      `json:"active"`
}

// MedicationLog marks one dose slot of one medication on one day.
type MedicationLog struct {
	Day          Day    `json:"day"`
	MedicationID int64  `json:"medication_id"`
	Slot         string `json:"slot"`
	Taken        bool   `json:"taken"`
}

// OralLog is the three-item oral hygiene checklist for a day.
type OralLog struct {
	Day          Day  `json:"day"`
	MorningBrush bool `json:"morning_brush"`
	EveningBrush bool `json:"evening_brush"`
	EveningFloss bool `json:"evening_floss"`
}

// Checked returns how many checklist items are done (0–3).
func (o OralLog) Checked() int {
	n := 0
	for _, b := range []bool{o.MorningBrush, o.EveningBrush, o.EveningFloss} {
		if b {
			n++
		}
	}
	return n
}

// AllChecked reports whether every checklist item is done.
func (o OralLog) AllChecked() bool {
	return o.Checked() == 3
}

// PushupLog is one set of pushups logged on a day.
type PushupLog struct {
	ID    int64 `json:"id"`
	Day   Day   `json:"day"`
	Count int   `json:"count"`
}

// FreezeToken is a bankable streak-protection credit.
// Available iff UsedAt is nil. Consumed oldest-first.
type FreezeToken struct {
	ID       string     `json:"id"`
	EarnedAt time.Time  `json:"earned_at"`
	UsedAt   *time.Time `json:"used_at"`
}

// Available reports whether the token can still be spent.
func (t FreezeToken) Available() bool { return t.UsedAt == nil }
