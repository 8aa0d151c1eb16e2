package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ritual-sh/ritual/internal/domain"
)

// ─── XP Ledger ──────────────────────────────────────────────────────────────

// LevelState returns the XP ledger singleton, materializing it at
// (0 XP, level 1) on first read.
func (d *DB) LevelState() (domain.LevelState, error) {
	var state domain.LevelState
	err := d.db.QueryRow(
		`SELECT current_xp, current_level FROM level WHERE id = 1`,
	).Scan(&state.CurrentXP, &state.CurrentLevel)
	if err == sql.ErrNoRows {
		if _, err := d.db.Exec(
			`INSERT OR IGNORE INTO level (id, current_xp, current_level) VALUES (1, 0, 1)`,
		); err != nil {
			return state, fmt.Errorf("seed level row: %w", err)
		}
		return domain.LevelState{CurrentXP: 0, CurrentLevel: 1}, nil
	}
	return state, err
}

// AddXP credits XP to the ledger in one transaction and returns the
// pre-increment and updated states. The stored level is recomputed
// from the new XP, never carried forward. Returning both states from
// the same transaction lets callers detect a level crossing without a
// separate read that another credit could slip between.
func (d *DB) AddXP(amount int) (before, after domain.LevelState, err error) {
	tx, err := d.db.Begin()
	if err != nil {
		return before, after, err
	}
	defer tx.Rollback()

	before, after, err = creditXP(tx, amount)
	if err != nil {
		return before, after, err
	}

	if err := tx.Commit(); err != nil {
		return before, after, err
	}
	return before, after, nil
}

// creditXP performs the serialized increment inside an open transaction,
// returning the ledger state on both sides of the credit.
func creditXP(tx *sql.Tx, amount int) (before, after domain.LevelState, err error) {
	if _, err := tx.Exec(
		`INSERT OR IGNORE INTO level (id, current_xp, current_level) VALUES (1, 0, 1)`,
	); err != nil {
		return before, after, fmt.Errorf("seed level row: %w", err)
	}

	if err := tx.QueryRow(
		`SELECT current_xp FROM level WHERE id = 1`,
	).Scan(&before.CurrentXP); err != nil {
		return before, after, fmt.Errorf("read xp: %w", err)
	}
	before.CurrentLevel = domain.LevelForXP(before.CurrentXP)

	after.CurrentXP = before.CurrentXP + amount
	after.CurrentLevel = domain.LevelForXP(after.CurrentXP)

	if _, err := tx.Exec(
		`UPDATE level SET current_xp = ?, current_level = ? WHERE id = 1`,
		after.CurrentXP, after.CurrentLevel,
	); err != nil {
		return before, after, fmt.Errorf("save xp: %w", err)
	}

	return before, after, nil
}

// ─── Achievement Unlocks ────────────────────────────────────────────────────

// UnlockAndCredit records the unlock and credits its XP reward in a
// single transaction. Returns newly=false with the untouched ledger
// state when the unlock row already exists — the idempotence contract.
func (d *DB) UnlockAndCredit(key string, xpReward int, at time.Time) (bool, domain.LevelState, error) {
	var state domain.LevelState

	tx, err := d.db.Begin()
	if err != nil {
		return false, state, err
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT OR IGNORE INTO achievement_unlocks (key, unlocked_at) VALUES (?, ?)`,
		key, at.Unix(),
	)
	if err != nil {
		return false, state, fmt.Errorf("insert unlock: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		// Already unlocked — no XP, no mutation.
		if err := tx.QueryRow(
			`SELECT current_xp, current_level FROM level WHERE id = 1`,
		).Scan(&state.CurrentXP, &state.CurrentLevel); err != nil && err != sql.ErrNoRows {
			return false, state, err
		}
		if state.CurrentLevel == 0 {
			state.CurrentLevel = 1
		}
		return false, state, tx.Commit()
	}

	_, state, err = creditXP(tx, xpReward)
	if err != nil {
		return false, state, err
	}

	if err := tx.Commit(); err != nil {
		return false, state, err
	}
	return true, state, nil
}

// UnlockTime returns when an achievement was unlocked, or nil if it
// never was.
func (d *DB) UnlockTime(key string) (*time.Time, error) {
	var at int64
	err := d.db.QueryRow(
		`SELECT unlocked_at FROM achievement_unlocks WHERE key = ?`, key,
	).Scan(&at)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := time.Unix(at, 0)
	return &t, nil
}

// Unlocks returns all unlocks, most recent first.
func (d *DB) Unlocks() ([]domain.Unlock, error) {
	rows, err := d.db.Query(
		`SELECT key, unlocked_at FROM achievement_unlocks ORDER BY unlocked_at DESC, key`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocks []domain.Unlock
	for rows.Next() {
		var u domain.Unlock
		var at int64
		if err := rows.Scan(&u.Key, &at); err != nil {
			return nil, err
		}
		u.UnlockedAt = time.Unix(at, 0)
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

// ─── Freeze Tokens ──────────────────────────────────────────────────────────

// InsertFreezeToken stores a newly earned token.
func (d *DB) InsertFreezeToken(t domain.FreezeToken) error {
	_, err := d.db.Exec(
		`INSERT INTO freeze_tokens (id, earned_at, used_at) VALUES (?, ?, NULL)`,
		t.ID, t.EarnedAt.Unix(),
	)
	return err
}

// UseOldestFreezeToken marks the oldest available token used (FIFO by
// earned_at) in one transaction. Returns the spent token and the count
// of tokens still available, or domain.ErrNoFreezeToken.
func (d *DB) UseOldestFreezeToken(at time.Time) (*domain.FreezeToken, int, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var token domain.FreezeToken
	var earnedAt int64
	err = tx.QueryRow(
		`SELECT id, earned_at FROM freeze_tokens WHERE used_at IS NULL
		 ORDER BY earned_at, id LIMIT 1`,
	).Scan(&token.ID, &earnedAt)
	if err == sql.ErrNoRows {
		return nil, 0, domain.ErrNoFreezeToken
	}
	if err != nil {
		return nil, 0, err
	}
	token.EarnedAt = time.Unix(earnedAt, 0)

	if _, err := tx.Exec(
		`UPDATE freeze_tokens SET used_at = ? WHERE id = ?`, at.Unix(), token.ID,
	); err != nil {
		return nil, 0, fmt.Errorf("mark token used: %w", err)
	}
	used := at
	token.UsedAt = &used

	var remaining int
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM freeze_tokens WHERE used_at IS NULL`,
	).Scan(&remaining); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return &token, remaining, nil
}

// ListFreezeTokens returns every token, most recently earned first.
func (d *DB) ListFreezeTokens() ([]domain.FreezeToken, error) {
	rows, err := d.db.Query(
		`SELECT id, earned_at, used_at FROM freeze_tokens ORDER BY earned_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []domain.FreezeToken
	for rows.Next() {
		var t domain.FreezeToken
		var earnedAt int64
		var usedAt sql.NullInt64
		if err := rows.Scan(&t.ID, &earnedAt, &usedAt); err != nil {
			return nil, err
		}
		t.EarnedAt = time.Unix(earnedAt, 0)
		if usedAt.Valid {
			used := time.Unix(usedAt.Int64, 0)
			t.UsedAt = &used
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

// AvailableFreezeTokens counts tokens not yet spent.
func (d *DB) AvailableFreezeTokens() (int, error) {
	var n int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM freeze_tokens WHERE used_at IS NULL`,
	).Scan(&n)
	return n, err
}
