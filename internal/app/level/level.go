// Package level manages the XP ledger and its derived level.
// The curve itself lives in domain (pure and recomputable); this
// service adds persistence, titles, and progress reporting.
package level

import (
	"fmt"
	"math"

	"github.com/ritual-sh/ritual/internal/domain"
	"github.com/ritual-sh/ritual/internal/infra/metrics"
)

// Store is the ledger persistence the service needs.
// *sqlite.DB satisfies it.
type Store interface {
	LevelState() (domain.LevelState, error)
	AddXP(amount int) (before, after domain.LevelState, err error)
}

// Service reads and mutates the XP ledger singleton.
type Service struct {
	store Store
}

// NewService creates a level service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Status is the full level view exposed to callers.
type Status struct {
	CurrentXP           int    `json:"current_xp"`
	CurrentLevel        int    `json:"current_level"`
	Title               string `json:"title"`
	XPForCurrentLevel   int    `json:"xp_for_current_level"`
	XPToNextLevel       int    `json:"xp_to_next_level"`
	TotalXPForNextLevel int    `json:"total_xp_for_next_level"`
	ProgressPercent     int    `json:"progress_percent"`
}

// GrantResult reports the outcome of an XP credit.
type GrantResult struct {
	Status
	XPAdded   int  `json:"xp_added"`
	LeveledUp bool `json:"leveled_up"`
}

// Current returns the ledger status. The level is always recomputed
// from XP — the persisted level column is only a cache.
func (s *Service) Current() (Status, error) {
	state, err := s.store.LevelState()
	if err != nil {
		return Status{}, fmt.Errorf("level state: %w", err)
	}
	return statusFor(state.CurrentXP), nil
}

// AddXP credits experience to the ledger and reports whether the
// credit crossed a level threshold. Negative amounts are rejected.
// Both sides of the crossing come from the store's transaction, so a
// concurrent credit cannot make LeveledUp misreport.
func (s *Service) AddXP(amount int) (GrantResult, error) {
	if amount < 0 {
		return GrantResult{}, fmt.Errorf("%w: %d", domain.ErrNegativeXP, amount)
	}

	before, after, err := s.store.AddXP(amount)
	if err != nil {
		return GrantResult{}, fmt.Errorf("add xp: %w", err)
	}

	metrics.XPGranted.Add(float64(amount))
	metrics.CurrentLevel.Set(float64(after.CurrentLevel))

	return GrantResult{
		Status:    statusFor(after.CurrentXP),
		XPAdded:   amount,
		LeveledUp: after.CurrentLevel > before.CurrentLevel,
	}, nil
}

func statusFor(xp int) Status {
	p := domain.ProgressForXP(xp)

	span := p.XPForCurrentLevel + p.XPToNextLevel
	percent := 0
	if span > 0 {
		percent = int(math.Round(float64(p.XPForCurrentLevel) / float64(span) * 100))
	}

	return Status{
		CurrentXP:           xp,
		CurrentLevel:        p.Level,
		Title:               TitleOf(p.Level),
		XPForCurrentLevel:   p.XPForCurrentLevel,
		XPToNextLevel:       p.XPToNextLevel,
		TotalXPForNextLevel: p.TotalXPForNextLevel,
		ProgressPercent:     percent,
	}
}

// TitleOf maps a level to its cosmetic title. Monotonic step function,
// never used in comparisons.
func TitleOf(level int) string {
	switch {
	case level >= 50:
		return "Legendary"
	case level >= 40:
		return "Master"
	case level >= 30:
		return "Expert"
	case level >= 20:
		return "Advanced"
	case level >= 15:
		return "Skilled"
	case level >= 10:
		return "Experienced"
	case level >= 5:
		return "Journeyman"
	case level >= 3:
		return "Apprentice"
	default:
		return "Novice"
	}
}
