package bonus

import (
	"fmt"
	"time"

	"github.com/fadedpez/eldorado/internal/types"
	"github.com/fadedpez/eldorado/pkg/clock"
	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/fadedpez/eldorado/pkg/services/ledger"
)

// Default bonus amounts. amount = base + streak * perStreak after the
// streak has been incremented for the claim.
const (
	DefaultBaseAmount      int64 = 500
	DefaultPerStreakAmount int64 = 50
)

// Status describes daily bonus eligibility at a point in time.
type Status struct {
	Available       bool
	Amount          int64 // amount the next claim would credit
	Streak          int
	NextAvailableAt time.Time // zero when Available
}

// Claim is the result of a successful bonus claim.
type Claim struct {
	Amount int64
	Streak int
}

// Service computes daily bonus eligibility and applies claims. Eligibility
// is gated by calendar date: a user may claim once per local day, and the
// window reopens at midnight rather than 24 hours after the last claim.
// A skipped day does not reset the streak; only same-day re-claims are
// rejected.
type Service struct {
	baseAmount      int64
	perStreakAmount int64
}

// NewService creates a bonus service with the default amounts.
func NewService() *Service {
	return &Service{
		baseAmount:      DefaultBaseAmount,
		perStreakAmount: DefaultPerStreakAmount,
	}
}

// NewServiceWithAmounts creates a bonus service with custom amounts.
func NewServiceWithAmounts(base, perStreak int64) *Service {
	return &Service{
		baseAmount:      base,
		perStreakAmount: perStreak,
	}
}

// CheckStatus reports whether the bonus is claimable at now, the amount a
// claim would credit, and when the next claim unlocks otherwise.
func (s *Service) CheckStatus(profile *entities.Profile, now time.Time) Status {
	state := profile.DailyBonus

	if state.Claimed() && clock.SameDay(now, state.LastClaim) {
		return Status{
			Available:       false,
			Streak:          state.Streak,
			NextAvailableAt: clock.NextMidnight(now),
		}
	}

	nextStreak := state.Streak + 1
	return Status{
		Available: true,
		Amount:    s.baseAmount + int64(nextStreak)*s.perStreakAmount,
		Streak:    state.Streak,
	}
}

// ClaimBonus credits the daily bonus through the ledger and advances the
// claim state. Returns ALREADY_CLAIMED if the bonus was already taken on
// now's calendar date; callers are expected to CheckStatus first, this is
// a defensive re-check.
func (s *Service) ClaimBonus(profile *entities.Profile, led *ledger.Service, now time.Time) (*Claim, *entities.Transaction, error) {
	status := s.CheckStatus(profile, now)
	if !status.Available {
		return nil, nil, types.NewEconomyError(types.ErrAlreadyClaimed,
			"daily bonus already claimed today")
	}

	streak := profile.DailyBonus.Streak + 1
	amount := s.baseAmount + int64(streak)*s.perStreakAmount

	_, tx := led.Apply(profile, amount, 0, fmt.Sprintf("daily bonus day %d", streak), now)

	profile.DailyBonus.LastClaim = now
	profile.DailyBonus.Streak = streak

	return &Claim{Amount: amount, Streak: streak}, tx, nil
}
