package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ritual-sh/ritual/internal/api"
	"github.com/ritual-sh/ritual/internal/app/achievement"
	"github.com/ritual-sh/ritual/internal/app/freeze"
	"github.com/ritual-sh/ritual/internal/app/level"
	"github.com/ritual-sh/ritual/internal/app/points"
	"github.com/ritual-sh/ritual/internal/app/streak"
	"github.com/ritual-sh/ritual/internal/domain"
	"github.com/ritual-sh/ritual/internal/infra/sqlite"
)

// newTestServer wires the full stack over a temporary database and
// returns the handler plus the database for seeding.
func newTestServer(t *testing.T) (http.Handler, *sqlite.DB) {
	t.Helper()
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	srv := api.NewServer(
		points.NewCalculator(db),
		streak.NewService(db),
		level.NewService(db),
		achievement.NewService(db),
		freeze.NewService(db),
		"test",
	)
	return srv.Handler(), db
}

// doJSON performs a request against the handler and decodes the JSON
// body into out (when out is non-nil).
func doJSON(t *testing.T, h http.Handler, method, path, body string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s response: %v", method, path, err)
		}
	}
	return rec
}

// ═══════════════════════════════════════════════════════════════════════════
// Health & Version
// ═══════════════════════════════════════════════════════════════════════════

func TestHealthEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	var body map[string]string
	rec := doJSON(t, h, "GET", "/health", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["status"] != "ok" {
		t.Errorf("status body = %q, want ok", body["status"])
	}
}

func TestVersionEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	var body map[string]string
	doJSON(t, h, "GET", "/api/version", "", &body)
	if body["version"] != "test" {
		t.Errorf("version = %q, want test", body["version"])
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Points
// ═══════════════════════════════════════════════════════════════════════════

func TestDailyPointsEmptyDay(t *testing.T) {
	h, _ := newTestServer(t)

	var body domain.DailyPoints
	rec := doJSON(t, h, "GET", "/api/gamification/points?date=2026-08-15", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body.Total != 0 {
		t.Errorf("total = %d, want 0 on empty day", body.Total)
	}
	if body.Day != domain.Day("2026-08-15") {
		t.Errorf("date = %s, want 2026-08-15", body.Day)
	}
}

func TestDailyPointsWithLogs(t *testing.T) {
	h, db := newTestServer(t)

	day := domain.Day("2026-08-15")
	if err := db.UpsertOralLog(domain.OralLog{
		Day: day, MorningBrush: true, EveningBrush: true, EveningFloss: true,
	}); err != nil {
		t.Fatalf("seed oral: %v", err)
	}

	var body domain.DailyPoints
	doJSON(t, h, "GET", "/api/gamification/points?date=2026-08-15", "", &body)
	if body.Oral != 3 || body.Total != 3 {
		t.Errorf("oral/total = %d/%d, want 3/3", body.Oral, body.Total)
	}
}

func TestDailyPointsRejectsBadDate(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, "GET", "/api/gamification/points?date=15-08-2026", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestWeeklyPointsShape(t *testing.T) {
	h, _ := newTestServer(t)

	var body domain.WeeklySummary
	rec := doJSON(t, h, "GET", "/api/gamification/points/weekly?date=2026-08-15", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(body.Days) != 7 {
		t.Errorf("weekly window has %d days, want 7", len(body.Days))
	}
	if body.ConsistencyMultiplier != 1.0 {
		t.Errorf("multiplier = %v, want 1.0 on empty week", body.ConsistencyMultiplier)
	}
}

func TestMonthlyPointsRejectsBadMonth(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, "GET", "/api/gamification/points/monthly?year=2026&month=13", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestLifetimePointsEmpty(t *testing.T) {
	h, _ := newTestServer(t)

	var body domain.LifetimeSummary
	rec := doJSON(t, h, "GET", "/api/gamification/points/lifetime", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body.TotalPoints != 0 || body.DaysSinceStart != 0 {
		t.Errorf("lifetime on empty db = %+v, want zero summary", body)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Streaks
// ═══════════════════════════════════════════════════════════════════════════

func TestStreaksReturnsAllPredicates(t *testing.T) {
	h, _ := newTestServer(t)

	var body map[string]domain.StreakResult
	rec := doJSON(t, h, "GET", "/api/gamification/streaks", "", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	for _, key := range []string{"perfect_day", "showed_up", "oral_hygiene", "pushups"} {
		if _, ok := body[key]; !ok {
			t.Errorf("streaks response missing %q", key)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Level
// ═══════════════════════════════════════════════════════════════════════════

func TestLevelLifecycle(t *testing.T) {
	h, _ := newTestServer(t)

	var status level.Status
	doJSON(t, h, "GET", "/api/gamification/level", "", &status)
	if status.CurrentLevel != 1 || status.Title != "Novice" {
		t.Errorf("fresh level = %d %q, want 1 Novice", status.CurrentLevel, status.Title)
	}

	var grant level.GrantResult
	rec := doJSON(t, h, "POST", "/api/gamification/level/xp", `{"amount":120}`, &grant)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !grant.LeveledUp || grant.CurrentLevel != 2 {
		t.Errorf("grant = leveledUp %v level %d, want up to 2", grant.LeveledUp, grant.CurrentLevel)
	}
}

func TestAddXPRejectsNegative(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, "POST", "/api/gamification/level/xp", `{"amount":-5}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Achievements
// ═══════════════════════════════════════════════════════════════════════════

func TestUnlockAchievementEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	var result achievement.UnlockResult
	rec := doJSON(t, h, "POST", "/api/gamification/achievements/first_steps/unlock", "", &result)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !result.Newly || result.XPAwarded != 50 {
		t.Errorf("unlock = newly %v xp %d, want newly with 50 XP", result.Newly, result.XPAwarded)
	}

	// Second unlock is a no-op, still 200.
	var repeat achievement.UnlockResult
	doJSON(t, h, "POST", "/api/gamification/achievements/first_steps/unlock", "", &repeat)
	if repeat.Newly || repeat.XPAwarded != 0 {
		t.Errorf("repeat unlock = newly %v xp %d, want no-op", repeat.Newly, repeat.XPAwarded)
	}
}

func TestUnlockUnknownAchievement(t *testing.T) {
	h, _ := newTestServer(t)

	rec := doJSON(t, h, "POST", "/api/gamification/achievements/bogus/unlock", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestListAchievementsMasksHidden(t *testing.T) {
	h, _ := newTestServer(t)

	var body struct {
		Achievements []achievement.Entry `json:"achievements"`
	}
	doJSON(t, h, "GET", "/api/gamification/achievements", "", &body)
	if len(body.Achievements) == 0 {
		t.Fatal("empty achievement list")
	}
	for _, e := range body.Achievements {
		if e.Hidden && !e.Unlocked && e.Name != "???" {
			t.Errorf("locked hidden achievement %q not masked", e.Key)
		}
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Freeze Tokens
// ═══════════════════════════════════════════════════════════════════════════

func TestFreezeLifecycle(t *testing.T) {
	h, _ := newTestServer(t)

	var earn freeze.EarnResult
	rec := doJSON(t, h, "POST", "/api/gamification/freeze/earn", "", &earn)
	if rec.Code != http.StatusOK {
		t.Fatalf("earn status = %d, want 200", rec.Code)
	}
	if earn.Available != 1 {
		t.Errorf("available = %d, want 1", earn.Available)
	}

	var use freeze.UseResult
	doJSON(t, h, "POST", "/api/gamification/freeze/use", "", &use)
	if use.Token.ID != earn.Token.ID {
		t.Errorf("spent token %q, want %q", use.Token.ID, earn.Token.ID)
	}
	if use.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", use.Remaining)
	}

	rec = doJSON(t, h, "POST", "/api/gamification/freeze/use", "", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("use on empty ledger status = %d, want 409", rec.Code)
	}
}

func TestFreezeStatusEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	doJSON(t, h, "POST", "/api/gamification/freeze/earn", "", nil)
	doJSON(t, h, "POST", "/api/gamification/freeze/earn", "", nil)
	doJSON(t, h, "POST", "/api/gamification/freeze/use", "", nil)

	var status freeze.Status
	doJSON(t, h, "GET", "/api/gamification/freeze", "", &status)
	if status.Total != 2 || status.Available != 1 || status.Used != 1 {
		t.Errorf("status = total %d / available %d / used %d, want 2/1/1",
			status.Total, status.Available, status.Used)
	}
}
