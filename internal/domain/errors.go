package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Achievement errors
	ErrAchievementNotFound = errors.New("achievement not found")

	// Streak-freeze errors
	ErrNoFreezeToken = errors.New("no streak freeze tokens available")

	// Caller input errors
	ErrInvalidRange = errors.New("invalid date or range")

	// XP ledger errors
	ErrNegativeXP = errors.New("xp amount must not be negative")

	// Medication errors
	ErrInvalidFrequency = errors.New("invalid medication frequency")
)
