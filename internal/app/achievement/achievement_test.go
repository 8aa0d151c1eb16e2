package achievement_test

import (
	"errors"
	"testing"

	"github.com/ritual-sh/ritual/internal/app/achievement"
	"github.com/ritual-sh/ritual/internal/domain"
	"github.com/ritual-sh/ritual/internal/infra/sqlite"
)

// testDB creates a temporary SQLite database for testing.
func testDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// ═══════════════════════════════════════════════════════════════════════════
// Catalog
// ═══════════════════════════════════════════════════════════════════════════

func TestCatalogKeysUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range achievement.Catalog() {
		if seen[a.Key] {
			t.Errorf("duplicate catalog key %q", a.Key)
		}
		seen[a.Key] = true
		if a.Name == "" || a.Description == "" || a.Icon == "" {
			t.Errorf("catalog entry %q has empty fields", a.Key)
		}
		if a.XPReward <= 0 {
			t.Errorf("catalog entry %q has non-positive reward %d", a.Key, a.XPReward)
		}
	}
	if len(seen) != 20 {
		t.Errorf("catalog has %d entries, want 20", len(seen))
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Unlock
// ═══════════════════════════════════════════════════════════════════════════

func TestUnlockGrantsXPOnce(t *testing.T) {
	db := testDB(t)
	svc := achievement.NewService(db)

	first, err := svc.Unlock("first_steps")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if !first.Newly {
		t.Error("first unlock should be newly unlocked")
	}
	if first.XPAwarded != 50 {
		t.Errorf("XPAwarded = %d, want 50", first.XPAwarded)
	}
	if first.CurrentXP != 50 {
		t.Errorf("CurrentXP = %d, want 50", first.CurrentXP)
	}

	second, err := svc.Unlock("first_steps")
	if err != nil {
		t.Fatalf("repeat unlock: %v", err)
	}
	if second.Newly {
		t.Error("repeat unlock should not be newly unlocked")
	}
	if second.XPAwarded != 0 {
		t.Errorf("repeat XPAwarded = %d, want 0", second.XPAwarded)
	}
	if second.CurrentXP != 50 {
		t.Errorf("CurrentXP after repeat = %d, want 50 (unchanged)", second.CurrentXP)
	}
	// Stored timestamps have second precision.
	if second.UnlockedAt.Unix() != first.UnlockedAt.Unix() {
		t.Errorf("repeat UnlockedAt = %v, want original %v", second.UnlockedAt, first.UnlockedAt)
	}
}

func TestUnlockUnknownKey(t *testing.T) {
	db := testDB(t)
	svc := achievement.NewService(db)

	_, err := svc.Unlock("no_such_achievement")
	if !errors.Is(err, domain.ErrAchievementNotFound) {
		t.Errorf("err = %v, want ErrAchievementNotFound", err)
	}
}

func TestUnlockCrossesLevelThreshold(t *testing.T) {
	db := testDB(t)
	svc := achievement.NewService(db)

	// pushup_champion rewards 1000 XP: level 1 needs 100, level 2
	// needs 150, level 3 needs 200, level 4 needs 250, level 5 needs
	// 300 -- 1000 exhausts the first four costs exactly, landing at
	// level 5 with 300 XP remaining.
	res, err := svc.Unlock("pushup_champion")
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if res.CurrentLevel != 5 {
		t.Errorf("CurrentLevel = %d, want 5", res.CurrentLevel)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// List & Masking
// ═══════════════════════════════════════════════════════════════════════════

func TestListMasksLockedHidden(t *testing.T) {
	db := testDB(t)
	svc := achievement.NewService(db)

	entries, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != len(achievement.Catalog()) {
		t.Fatalf("list returned %d entries, want %d", len(entries), len(achievement.Catalog()))
	}

	var maskedHidden int
	for _, e := range entries {
		if e.Unlocked {
			t.Errorf("%q unlocked on fresh database", e.Key)
		}
		if e.Hidden {
			if e.Name != "???" || e.Description != "Hidden achievement" {
				t.Errorf("hidden entry %q not masked: name=%q desc=%q", e.Key, e.Name, e.Description)
			}
			maskedHidden++
		}
	}
	if maskedHidden == 0 {
		t.Error("catalog has no hidden achievements to mask")
	}
}

func TestListRevealsUnlockedHidden(t *testing.T) {
	db := testDB(t)
	svc := achievement.NewService(db)

	if _, err := svc.Unlock("comeback_kid"); err != nil {
		t.Fatalf("unlock: %v", err)
	}

	entries, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, e := range entries {
		if e.Key != "comeback_kid" {
			continue
		}
		if !e.Unlocked || e.UnlockedAt == nil {
			t.Fatal("comeback_kid should be unlocked")
		}
		if e.Name != "Comeback Kid" {
			t.Errorf("unlocked hidden entry still masked: name=%q", e.Name)
		}
		return
	}
	t.Fatal("comeback_kid missing from list")
}

// ═══════════════════════════════════════════════════════════════════════════
// Recent
// ═══════════════════════════════════════════════════════════════════════════

func TestRecentOrdersAndLimits(t *testing.T) {
	db := testDB(t)
	svc := achievement.NewService(db)

	for _, key := range []string{"first_steps", "week_warrior", "century_club"} {
		if _, err := svc.Unlock(key); err != nil {
			t.Fatalf("unlock %s: %v", key, err)
		}
	}

	recent, err := svc.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("recent returned %d entries, want 2", len(recent))
	}
	for _, e := range recent {
		if !e.Unlocked {
			t.Errorf("recent entry %q not marked unlocked", e.Key)
		}
	}

	all, err := svc.Recent(0)
	if err != nil {
		t.Fatalf("recent all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("recent(0) returned %d entries, want 3", len(all))
	}
}
