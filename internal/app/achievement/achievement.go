// Package achievement manages the one-time unlock ledger over the
// fixed catalog. Unlocking is idempotent: the first unlock of a key
// records the event and credits its XP reward atomically; every later
// attempt is a no-op that reports the existing state.
package achievement

import (
	"fmt"
	"time"

	"github.com/ritual-sh/ritual/internal/domain"
	"github.com/ritual-sh/ritual/internal/infra/metrics"
)

// Store is the unlock and ledger persistence the service needs.
// *sqlite.DB satisfies it.
type Store interface {
	UnlockAndCredit(key string, xpReward int, at time.Time) (bool, domain.LevelState, error)
	UnlockTime(key string) (*time.Time, error)
	Unlocks() ([]domain.Unlock, error)
}

// Service mediates between the catalog and the unlock store.
type Service struct {
	store   Store
	catalog map[string]domain.Achievement
	order   []string
	now     func() time.Time
}

// NewService creates an achievement service over the built-in catalog.
func NewService(store Store) *Service {
	s := &Service{
		store:   store,
		catalog: make(map[string]domain.Achievement),
		now:     time.Now,
	}
	for _, a := range Catalog() {
		s.catalog[a.Key] = a
		s.order = append(s.order, a.Key)
	}
	return s
}

// Entry is an achievement joined with its unlock state. Hidden
// achievements that are still locked carry masked name and
// description so the surprise survives a list call.
type Entry struct {
	domain.Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// UnlockResult reports the outcome of an unlock attempt.
type UnlockResult struct {
	Achievement  domain.Achievement `json:"achievement"`
	Newly        bool               `json:"newly_unlocked"`
	UnlockedAt   time.Time          `json:"unlocked_at"`
	XPAwarded    int                `json:"xp_awarded"`
	CurrentXP    int                `json:"current_xp"`
	CurrentLevel int                `json:"current_level"`
}

// Unlock records the achievement as earned, crediting its XP reward
// exactly once. Unknown keys return domain.ErrAchievementNotFound.
func (s *Service) Unlock(key string) (UnlockResult, error) {
	ach, ok := s.catalog[key]
	if !ok {
		return UnlockResult{}, fmt.Errorf("%w: %s", domain.ErrAchievementNotFound, key)
	}

	at := s.now()
	newly, state, err := s.store.UnlockAndCredit(key, ach.XPReward, at)
	if err != nil {
		return UnlockResult{}, fmt.Errorf("unlock %s: %w", key, err)
	}

	result := UnlockResult{
		Achievement:  ach,
		Newly:        newly,
		UnlockedAt:   at,
		CurrentXP:    state.CurrentXP,
		CurrentLevel: state.CurrentLevel,
	}
	if newly {
		result.XPAwarded = ach.XPReward
		metrics.AchievementsUnlocked.Inc()
		metrics.CurrentLevel.Set(float64(state.CurrentLevel))
	} else if prev, err := s.store.UnlockTime(key); err == nil && prev != nil {
		result.UnlockedAt = *prev
	}
	return result, nil
}

// List returns every achievement in catalog order with its unlock
// state. Locked hidden achievements are masked.
func (s *Service) List() ([]Entry, error) {
	unlocks, err := s.store.Unlocks()
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	at := make(map[string]time.Time, len(unlocks))
	for _, u := range unlocks {
		at[u.Key] = u.UnlockedAt
	}

	entries := make([]Entry, 0, len(s.order))
	for _, key := range s.order {
		e := Entry{Achievement: s.catalog[key]}
		if when, ok := at[key]; ok {
			when := when
			e.Unlocked = true
			e.UnlockedAt = &when
		} else if e.Hidden {
			e.Name = "???"
			e.Description = "Hidden achievement"
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Recent returns the most recent unlocks joined with their catalog
// entries, newest first. limit <= 0 means all.
func (s *Service) Recent(limit int) ([]Entry, error) {
	unlocks, err := s.store.Unlocks()
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	if limit > 0 && len(unlocks) > limit {
		unlocks = unlocks[:limit]
	}

	entries := make([]Entry, 0, len(unlocks))
	for _, u := range unlocks {
		ach, ok := s.catalog[u.Key]
		if !ok {
			// Unlock for a key no longer in the catalog; skip it.
			continue
		}
		when := u.UnlockedAt
		entries = append(entries, Entry{Achievement: ach, Unlocked: true, UnlockedAt: &when})
	}
	return entries, nil
}
