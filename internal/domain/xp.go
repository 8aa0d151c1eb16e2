package domain

// ─── XP Curve ───────────────────────────────────────────────────────────────
// Level 1 costs 100 XP, and each level after that costs 50 more:
//   L1: 0–99, L2: 100–249, L3: 250–449, L4: 450–699, …
// The curve is strictly increasing, so the inversion below terminates.

// CostOf returns the XP required to clear the given level.
func CostOf(level int) int {
	return 100 + (level-1)*50
}

// ProgressForXP inverts cumulative XP into a level and its thresholds.
// Pure — the persisted level cache must always agree with this.
func ProgressForXP(xp int) LevelProgress {
	level := 1
	totalXP := 0

	for xp >= totalXP+CostOf(level) {
		totalXP += CostOf(level)
		level++
	}

	forCurrent := xp - totalXP
	return LevelProgress{
		Level:               level,
		XPForCurrentLevel:   forCurrent,
		XPToNextLevel:       CostOf(level) - forCurrent,
		TotalXPForNextLevel: totalXP + CostOf(level),
	}
}

// LevelForXP returns just the level for a given XP amount.
func LevelForXP(xp int) int {
	return ProgressForXP(xp).Level
}
