package bonus

import (
	"testing"
	"time"

	"github.com/fadedpez/eldorado/internal/types"
	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/fadedpez/eldorado/pkg/services/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day1 = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

func setup() (*Service, *ledger.Service, *entities.Profile) {
	return NewService(), ledger.NewService(), entities.NewProfile("user-1", day1)
}

func TestCheckStatusNeverClaimed(t *testing.T) {
	svc, _, p := setup()

	status := svc.CheckStatus(p, day1)

	assert.True(t, status.Available)
	assert.Equal(t, int64(550), status.Amount) // 500 + 1*50
	assert.Equal(t, 0, status.Streak)
}

func TestFirstClaim(t *testing.T) {
	svc, led, p := setup()

	claim, tx, err := svc.ClaimBonus(p, led, day1)

	require.NoError(t, err)
	assert.Equal(t, int64(550), claim.Amount)
	assert.Equal(t, 1, claim.Streak)
	assert.Equal(t, int64(1550), p.Balance.Coins)
	assert.Equal(t, 1, p.DailyBonus.Streak)
	require.NotNil(t, tx)
	assert.Equal(t, int64(550), tx.CoinDelta)
	assert.Equal(t, "daily bonus day 1", tx.Reason)
}

func TestSameDayReclaimFails(t *testing.T) {
	svc, led, p := setup()

	_, _, err := svc.ClaimBonus(p, led, day1)
	require.NoError(t, err)

	// Later the same calendar day
	_, _, err = svc.ClaimBonus(p, led, day1.Add(8*time.Hour))
	require.Error(t, err)
	assert.True(t, types.IsEconomyError(err, types.ErrAlreadyClaimed))

	// Balance and streak unchanged by the failed claim
	assert.Equal(t, int64(1550), p.Balance.Coins)
	assert.Equal(t, 1, p.DailyBonus.Streak)
}

func TestClaimResetsAtMidnightNotAfter24h(t *testing.T) {
	svc, led, p := setup()

	late := time.Date(2024, 3, 15, 23, 50, 0, 0, time.UTC)
	_, _, err := svc.ClaimBonus(p, led, late)
	require.NoError(t, err)

	// Ten minutes later it is a new calendar day, so the claim is open
	// even though nowhere near 24 hours have passed.
	earlyNextDay := time.Date(2024, 3, 16, 0, 10, 0, 0, time.UTC)
	status := svc.CheckStatus(p, earlyNextDay)
	assert.True(t, status.Available)

	claim, _, err := svc.ClaimBonus(p, led, earlyNextDay)
	require.NoError(t, err)
	assert.Equal(t, 2, claim.Streak)
	assert.Equal(t, int64(600), claim.Amount) // 500 + 2*50
}

func TestStreakGrowsPerDistinctDay(t *testing.T) {
	svc, led, p := setup()

	for day := 0; day < 5; day++ {
		now := day1.AddDate(0, 0, day)
		claim, _, err := svc.ClaimBonus(p, led, now)
		require.NoError(t, err)
		assert.Equal(t, day+1, claim.Streak)
		assert.Equal(t, int64(500+int64(day+1)*50), claim.Amount)
	}
}

func TestSkippedDayDoesNotResetStreak(t *testing.T) {
	svc, led, p := setup()

	_, _, err := svc.ClaimBonus(p, led, day1)
	require.NoError(t, err)

	// Three days later; eligibility only checks "not today", so the
	// streak continues.
	claim, _, err := svc.ClaimBonus(p, led, day1.AddDate(0, 0, 3))
	require.NoError(t, err)
	assert.Equal(t, 2, claim.Streak)
}

func TestCheckStatusCooldown(t *testing.T) {
	svc, led, p := setup()

	_, _, err := svc.ClaimBonus(p, led, day1)
	require.NoError(t, err)

	status := svc.CheckStatus(p, day1.Add(time.Hour))
	assert.False(t, status.Available)
	assert.Equal(t, 1, status.Streak)
	assert.Equal(t, time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), status.NextAvailableAt)
}

func TestCustomAmounts(t *testing.T) {
	svc := NewServiceWithAmounts(100, 10)
	led := ledger.NewService()
	p := entities.NewProfile("user-1", day1)

	claim, _, err := svc.ClaimBonus(p, led, day1)
	require.NoError(t, err)
	assert.Equal(t, int64(110), claim.Amount)
}
