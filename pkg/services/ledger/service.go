package ledger

import (
	"time"

	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/google/uuid"
)

// Service owns balance mutations. Every change to a profile's coins or
// gems goes through Apply, which produces the append-only transaction
// record alongside the new balance.
type Service struct{}

// NewService creates a new ledger service
func NewService() *Service {
	return &Service{}
}

// Apply adds the signed deltas to the profile's balance, clamping each
// field at zero on over-debit rather than failing. The returned transaction
// records the deltas as requested, before clamping, so the audit trail is
// honest about what was asked for. Callers that need a hard failure on
// insufficient funds must check CanAfford first; Apply itself never
// rejects.
func (s *Service) Apply(profile *entities.Profile, coinDelta, gemDelta int64, reason string, now time.Time) (entities.Balance, *entities.Transaction) {
	newCoins := profile.Balance.Coins + coinDelta
	if newCoins < 0 {
		newCoins = 0
	}
	newGems := profile.Balance.Gems + gemDelta
	if newGems < 0 {
		newGems = 0
	}

	profile.Balance.Coins = newCoins
	profile.Balance.Gems = newGems

	tx := &entities.Transaction{
		ID:         uuid.New().String(),
		UserID:     profile.UserID,
		CoinDelta:  coinDelta,
		GemDelta:   gemDelta,
		Reason:     reason,
		Timestamp:  now,
		CoinsAfter: newCoins,
		GemsAfter:  newGems,
	}

	return profile.Balance, tx
}

// Balance returns the current balance, read-only.
func (s *Service) Balance(profile *entities.Profile) entities.Balance {
	return profile.Balance
}

// CanAfford reports whether the coin balance covers cost.
func (s *Service) CanAfford(profile *entities.Profile, cost int64) bool {
	return profile.Balance.Coins >= cost
}
