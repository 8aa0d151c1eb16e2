// Package sqlite provides SQLite-based persistent storage for ritual.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer; one connection also serializes the
	// check-then-write sequences in the unlock and freeze paths.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// ─── Module logs ───────────────────────────────────────────────
		// One table per tracked module. Days are civil dates
		// ("YYYY-MM-DD") so day boundaries never depend on timezones.

		`CREATE TABLE IF NOT EXISTS body_metrics (
			day       TEXT PRIMARY KEY,
			weight    REAL,
			body_fat  REAL,
			muscle    REAL
		)`,

		`CREATE TABLE IF NOT EXISTS progress_photos (
			day   TEXT NOT NULL,
			angle TEXT NOT NULL CHECK (angle IN ('front', 'back', 'side')),
			PRIMARY KEY (day, angle)
		)`,

		`CREATE TABLE IF NOT EXISTS time_entries (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			day      TEXT NOT NULL,
			activity TEXT NOT NULL DEFAULT '',
			wasteful BOOLEAN NOT NULL DEFAULT 0,
			minutes  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_time_entries_day ON time_entries(day)`,

		// Singleton row, lazily materialized with the default ceiling.
		`CREATE TABLE IF NOT EXISTS time_goal (
			id                INTEGER PRIMARY KEY CHECK (id = 1),
			max_waste_minutes INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS medications (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			name      TEXT NOT NULL,
			frequency TEXT NOT NULL CHECK (frequency IN ('ONCE', 'TWICE', 'THRICE')),
			active    BOOLEAN NOT NULL DEFAULT 1
		)`,

		`CREATE TABLE IF NOT EXISTS medication_logs (
			day           TEXT NOT NULL,
			medication_id INTEGER NOT NULL,
			slot          TEXT NOT NULL,
			taken         BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (day, medication_id, slot)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_medication_logs_day ON medication_logs(day)`,

		`CREATE TABLE IF NOT EXISTS oral_logs (
			day           TEXT PRIMARY KEY,
			morning_brush BOOLEAN NOT NULL DEFAULT 0,
			evening_brush BOOLEAN NOT NULL DEFAULT 0,
			evening_floss BOOLEAN NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS pushup_logs (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			day   TEXT NOT NULL,
			count INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pushup_logs_day ON pushup_logs(day)`,

		// ─── Gamification state ────────────────────────────────────────

		// XP ledger singleton. current_level is a cache of
		// domain.LevelForXP(current_xp), never the source of truth.
		`CREATE TABLE IF NOT EXISTS level (
			id            INTEGER PRIMARY KEY CHECK (id = 1),
			current_xp    INTEGER NOT NULL DEFAULT 0,
			current_level INTEGER NOT NULL DEFAULT 1
		)`,

		// At most one unlock per achievement, ever. The row's
		// existence is the sole witness of "already unlocked".
		`CREATE TABLE IF NOT EXISTS achievement_unlocks (
			key         TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS freeze_tokens (
			id        TEXT PRIMARY KEY,
			earned_at INTEGER NOT NULL,
			used_at   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_freeze_earned ON freeze_tokens(earned_at)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}
