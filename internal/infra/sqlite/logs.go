package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/ritual-sh/ritual/internal/domain"
)

// Per-module log repositories. These realize the collaborator read
// interface the gamification engine consumes: a point-in-time read per
// day plus the earliest recorded day for lifetime aggregation. Absence
// of a log is never an error — readers get a nil record or empty slice.

// ─── Body Metrics ───────────────────────────────────────────────────────────

// UpsertBodyMetric inserts or replaces the day's measurement.
func (d *DB) UpsertBodyMetric(m domain.BodyMetric) error {
	_, err := d.db.Exec(
		`INSERT INTO body_metrics (day, weight, body_fat, muscle) VALUES (?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET
			weight=excluded.weight,
			body_fat=excluded.body_fat,
			muscle=excluded.muscle`,
		string(m.Day), m.Weight, m.BodyFat, m.Muscle,
	)
	return err
}

// BodyMetricOn returns the day's measurement, or nil when none exists.
func (d *DB) BodyMetricOn(day domain.Day) (*domain.BodyMetric, error) {
	row := d.db.QueryRow(
		`SELECT day, weight, body_fat, muscle FROM body_metrics WHERE day = ?`,
		string(day),
	)

	var m domain.BodyMetric
	var weight, bodyFat, muscle sql.NullFloat64
	err := row.Scan(&m.Day, &weight, &bodyFat, &muscle)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	m.Weight = nullableFloat(weight)
	m.BodyFat = nullableFloat(bodyFat)
	m.Muscle = nullableFloat(muscle)
	return &m, nil
}

// EarliestBodyDay returns the first recorded day, or "" when empty.
func (d *DB) EarliestBodyDay() (domain.Day, error) {
	return d.earliestDay(`SELECT MIN(day) FROM body_metrics`)
}

// ─── Progress Photos ────────────────────────────────────────────────────────

// AddPhoto records a progress photo angle for the day. Re-uploading the
// same angle is a no-op.
func (d *DB) AddPhoto(day domain.Day, angle domain.PhotoAngle) error {
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO progress_photos (day, angle) VALUES (?, ?)`,
		string(day), string(angle),
	)
	return err
}

// PhotoAnglesOn returns the distinct angles photographed on the day.
func (d *DB) PhotoAnglesOn(day domain.Day) ([]domain.PhotoAngle, error) {
	rows, err := d.db.Query(
		`SELECT angle FROM progress_photos WHERE day = ? ORDER BY angle`,
		string(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var angles []domain.PhotoAngle
	for rows.Next() {
		var a domain.PhotoAngle
		if err := rows.Scan(&a); err != nil {
			return nil, err
		}
		angles = append(angles, a)
	}
	return angles, rows.Err()
}

// EarliestPhotoDay returns the first recorded day, or "" when empty.
func (d *DB) EarliestPhotoDay() (domain.Day, error) {
	return d.earliestDay(`SELECT MIN(day) FROM progress_photos`)
}

// ─── Time Entries ───────────────────────────────────────────────────────────

// AddTimeEntry records one block of logged time and returns its id.
func (d *DB) AddTimeEntry(e domain.TimeEntry) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO time_entries (day, activity, wasteful, minutes) VALUES (?, ?, ?, ?)`,
		string(e.Day), e.Activity, e.Wasteful, e.Minutes,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// TimeEntriesOn returns all entries logged for the day.
func (d *DB) TimeEntriesOn(day domain.Day) ([]domain.TimeEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, day, activity, wasteful, minutes FROM time_entries WHERE day = ? ORDER BY id`,
		string(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		if err := rows.Scan(&e.ID, &e.Day, &e.Activity, &e.Wasteful, &e.Minutes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// EarliestTimeEntryDay returns the first recorded day, or "" when empty.
func (d *DB) EarliestTimeEntryDay() (domain.Day, error) {
	return d.earliestDay(`SELECT MIN(day) FROM time_entries`)
}

// MaxWasteMinutes returns the daily waste ceiling, materializing the
// singleton row with the default on first read.
func (d *DB) MaxWasteMinutes() (int, error) {
	var minutes int
	err := d.db.QueryRow(`SELECT max_waste_minutes FROM time_goal WHERE id = 1`).Scan(&minutes)
	if err == sql.ErrNoRows {
		if _, err := d.db.Exec(
			`INSERT OR IGNORE INTO time_goal (id, max_waste_minutes) VALUES (1, ?)`,
			domain.DefaultMaxWasteMinutes,
		); err != nil {
			return 0, fmt.Errorf("seed time goal: %w", err)
		}
		return domain.DefaultMaxWasteMinutes, nil
	}
	return minutes, err
}

// SetMaxWasteMinutes updates the daily waste ceiling.
func (d *DB) SetMaxWasteMinutes(minutes int) error {
	_, err := d.db.Exec(
		`INSERT INTO time_goal (id, max_waste_minutes) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET max_waste_minutes=excluded.max_waste_minutes`,
		minutes,
	)
	return err
}

// ─── Medications ────────────────────────────────────────────────────────────

// AddMedication registers a medication and returns its id.
func (d *DB) AddMedication(m domain.Medication) (int64, error) {
	if !m.Frequency.Valid() {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidFrequency, m.Frequency)
	}
	result, err := d.db.Exec(
		`INSERT INTO medications (name, frequency, active) VALUES (?, ?, ?)`,
		m.Name, string(m.Frequency), m.Active,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// SetMedicationActive toggles whether a medication is tracked.
func (d *DB) SetMedicationActive(id int64, active bool) error {
	_, err := d.db.Exec(`UPDATE medications SET active = ? WHERE id = ?`, active, id)
	return err
}

// ActiveMedications returns all medications currently being tracked.
func (d *DB) ActiveMedications() ([]domain.Medication, error) {
	rows, err := d.db.Query(
		`SELECT id, name, frequency, active FROM medications WHERE active = 1 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []domain.Medication
	for rows.Next() {
		var m domain.Medication
		if err := rows.Scan(&m.ID, &m.Name, &m.Frequency, &m.Active); err != nil {
			return nil, err
		}
		meds = append(meds, m)
	}
	return meds, rows.Err()
}

// LogMedication marks one dose slot taken or untaken for the day.
func (d *DB) LogMedication(l domain.MedicationLog) error {
	_, err := d.db.Exec(
		`INSERT INTO medication_logs (day, medication_id, slot, taken) VALUES (?, ?, ?, ?)
		 ON CONFLICT(day, medication_id, slot) DO UPDATE SET taken=excluded.taken`,
		string(l.Day), l.MedicationID, l.Slot, l.Taken,
	)
	return err
}

// MedicationLogsOn returns all dose logs for the day.
func (d *DB) MedicationLogsOn(day domain.Day) ([]domain.MedicationLog, error) {
	rows, err := d.db.Query(
		`SELECT day, medication_id, slot, taken FROM medication_logs WHERE day = ?`,
		string(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.MedicationLog
	for rows.Next() {
		var l domain.MedicationLog
		if err := rows.Scan(&l.Day, &l.MedicationID, &l.Slot, &l.Taken); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// EarliestMedicationLogDay returns the first recorded day, or "" when empty.
func (d *DB) EarliestMedicationLogDay() (domain.Day, error) {
	return d.earliestDay(`SELECT MIN(day) FROM medication_logs`)
}

// ─── Oral Hygiene ───────────────────────────────────────────────────────────

// UpsertOralLog inserts or replaces the day's checklist.
func (d *DB) UpsertOralLog(o domain.OralLog) error {
	_, err := d.db.Exec(
		`INSERT INTO oral_logs (day, morning_brush, evening_brush, evening_floss) VALUES (?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET
			morning_brush=excluded.morning_brush,
			evening_brush=excluded.evening_brush,
			evening_floss=excluded.evening_floss`,
		string(o.Day), o.MorningBrush, o.EveningBrush, o.EveningFloss,
	)
	return err
}

// OralLogOn returns the day's checklist, or nil when none exists.
func (d *DB) OralLogOn(day domain.Day) (*domain.OralLog, error) {
	row := d.db.QueryRow(
		`SELECT day, morning_brush, evening_brush, evening_floss FROM oral_logs WHERE day = ?`,
		string(day),
	)

	var o domain.OralLog
	err := row.Scan(&o.Day, &o.MorningBrush, &o.EveningBrush, &o.EveningFloss)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// EarliestOralLogDay returns the first recorded day, or "" when empty.
func (d *DB) EarliestOralLogDay() (domain.Day, error) {
	return d.earliestDay(`SELECT MIN(day) FROM oral_logs`)
}

// ─── Pushups ────────────────────────────────────────────────────────────────

// AddPushups records one set of pushups and returns its id.
func (d *DB) AddPushups(day domain.Day, count int) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO pushup_logs (day, count) VALUES (?, ?)`,
		string(day), count,
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// PushupLogsOn returns all sets logged for the day.
func (d *DB) PushupLogsOn(day domain.Day) ([]domain.PushupLog, error) {
	rows, err := d.db.Query(
		`SELECT id, day, count FROM pushup_logs WHERE day = ? ORDER BY id`,
		string(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.PushupLog
	for rows.Next() {
		var l domain.PushupLog
		if err := rows.Scan(&l.ID, &l.Day, &l.Count); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// EarliestPushupDay returns the first recorded day, or "" when empty.
func (d *DB) EarliestPushupDay() (domain.Day, error) {
	return d.earliestDay(`SELECT MIN(day) FROM pushup_logs`)
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func (d *DB) earliestDay(query string) (domain.Day, error) {
	var day sql.NullString
	if err := d.db.QueryRow(query).Scan(&day); err != nil {
		return "", err
	}
	if !day.Valid {
		return "", nil
	}
	return domain.Day(day.String), nil
}

func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
