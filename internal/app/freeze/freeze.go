// Package freeze manages the streak freeze token ledger. Tokens are
// earned one at a time and spent strictly oldest-first; a spent token
// is never reusable. The ledger is independent bookkeeping — spending
// a token does not feed back into the streak calculator.
package freeze

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ritual-sh/ritual/internal/domain"
	"github.com/ritual-sh/ritual/internal/infra/metrics"
)

// Store is the token persistence the service needs.
// *sqlite.DB satisfies it.
type Store interface {
	InsertFreezeToken(t domain.FreezeToken) error
	UseOldestFreezeToken(at time.Time) (*domain.FreezeToken, int, error)
	ListFreezeTokens() ([]domain.FreezeToken, error)
	AvailableFreezeTokens() (int, error)
}

// Service reads and mutates the freeze token ledger.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a freeze token service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// EarnResult reports a newly minted token and the resulting balance.
type EarnResult struct {
	Token     domain.FreezeToken `json:"token"`
	Available int                `json:"available"`
}

// UseResult reports the spent token and the remaining balance.
type UseResult struct {
	Token     domain.FreezeToken `json:"token"`
	Remaining int                `json:"remaining"`
}

// Status is the full ledger view: counts plus every token,
// most recently earned first.
type Status struct {
	Available int                  `json:"available"`
	Used      int                  `json:"used"`
	Total     int                  `json:"total"`
	Tokens    []domain.FreezeToken `json:"tokens"`
}

// Earn mints a new token and appends it to the ledger.
func (s *Service) Earn() (EarnResult, error) {
	token := domain.FreezeToken{
		ID:       uuid.NewString(),
		EarnedAt: s.now(),
	}
	if err := s.store.InsertFreezeToken(token); err != nil {
		return EarnResult{}, fmt.Errorf("insert token: %w", err)
	}
	metrics.FreezeTokensEarned.Inc()

	available, err := s.store.AvailableFreezeTokens()
	if err != nil {
		return EarnResult{}, fmt.Errorf("count tokens: %w", err)
	}
	return EarnResult{Token: token, Available: available}, nil
}

// Use spends the oldest available token. An empty ledger returns
// domain.ErrNoFreezeToken and changes nothing.
func (s *Service) Use() (UseResult, error) {
	token, remaining, err := s.store.UseOldestFreezeToken(s.now())
	if err != nil {
		return UseResult{}, err
	}
	metrics.FreezeTokensUsed.Inc()
	return UseResult{Token: *token, Remaining: remaining}, nil
}

// Current returns the ledger status.
func (s *Service) Current() (Status, error) {
	tokens, err := s.store.ListFreezeTokens()
	if err != nil {
		return Status{}, fmt.Errorf("list tokens: %w", err)
	}

	status := Status{Total: len(tokens), Tokens: tokens}
	for _, t := range tokens {
		if t.Available() {
			status.Available++
		} else {
			status.Used++
		}
	}
	return status, nil
}
