package domain

import "time"

// ─── Points Types ───────────────────────────────────────────────────────────

// DailyPoints is the per-module point breakdown for one day.
// Derived, never persisted — recomputable at any time from the logs.
type DailyPoints struct {
	Day        Day `json:"date"`
	Body       int `json:"body"`
	Photos     int `json:"photos"`
	Time       int `json:"time"`
	Medication int `json:"medication"`
	Oral       int `json:"oral"`
	Pushups    int `json:"pushups"`
	Total      int `json:"total"`
}

// CategoryTotals accumulates per-module points over a period.
type CategoryTotals struct {
	Body       int `json:"body"`
	Photos     int `json:"photos"`
	Time       int `json:"time"`
	Medication int `json:"medication"`
	Oral       int `json:"oral"`
	Pushups    int `json:"pushups"`
}

// Add folds one day's breakdown into the totals.
func (c *CategoryTotals) Add(p DailyPoints) {
	c.Body += p.Body
	c.Photos += p.Photos
	c.Time += p.Time
	c.Medication += p.Medication
	c.Oral += p.Oral
	c.Pushups += p.Pushups
}

// WeeklySummary covers the last seven days, oldest to newest.
type WeeklySummary struct {
	Days                  []DailyPoints `json:"days"`
	TotalBasePoints       int           `json:"total_base_points"`
	DaysWithActivity      int           `json:"days_with_activity"`
	ConsistencyMultiplier float64       `json:"consistency_multiplier"`
	WeeklyScore           int           `json:"weekly_score"`
}

// MonthlySummary covers one calendar month up to the current day
// (or the whole month, for past months).
type MonthlySummary struct {
	Year             int            `json:"year"`
	Month            int            `json:"month"`
	DaysInMonth      int            `json:"days_in_month"`
	DaysElapsed      int            `json:"days_elapsed"`
	TotalPoints      int            `json:"total_points"`
	DaysWithActivity int            `json:"days_with_activity"`
	CompletionRate   int            `json:"completion_rate"`
	CategoryTotals   CategoryTotals `json:"category_totals"`
}

// LifetimeSummary covers every day since the earliest log.
type LifetimeSummary struct {
	StartDate        Day            `json:"start_date,omitempty"`
	DaysSinceStart   int            `json:"days_since_start"`
	TotalPoints      int            `json:"total_points"`
	DaysWithActivity int            `json:"days_with_activity"`
	CategoryTotals   CategoryTotals `json:"category_totals"`
}

// ─── Streak Types ───────────────────────────────────────────────────────────

// StreakResult is one predicate's streak statistics.
// CurrentStreak counts only the contiguous run ending at today;
// LongestStreak is the maximum run inside the lookback window.
type StreakResult struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	LastDate      Day    `json:"last_date,omitempty"`
	Description   string `json:"description,omitempty"`
}

// ─── Level / XP Types ───────────────────────────────────────────────────────

// LevelProgress is the pure inversion of cumulative XP into a level
// and its surrounding thresholds.
type LevelProgress struct {
	Level               int `json:"level"`
	XPForCurrentLevel   int `json:"xp_for_current_level"`
	XPToNextLevel       int `json:"xp_to_next_level"`
	TotalXPForNextLevel int `json:"total_xp_for_next_level"`
}

// LevelState is the persisted XP ledger singleton. CurrentLevel is a
// cache — always recomputed from CurrentXP before use.
type LevelState struct {
	CurrentXP    int `json:"current_xp"`
	CurrentLevel int `json:"current_level"`
}

// ─── Achievement Types ──────────────────────────────────────────────────────

// Achievement is an immutable catalog entry.
type Achievement struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	XPReward    int    `json:"xp_reward"`
	Hidden      bool   `json:"is_hidden"`
}

// Unlock is the sole witness that an achievement was earned.
// At most one exists per achievement, ever.
type Unlock struct {
	Key        string    `json:"key"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
