package ledger

import (
	"testing"
	"time"

	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestProfile() *entities.Profile {
	return entities.NewProfile("user-1", testTime)
}

func TestApplyCredit(t *testing.T) {
	svc := NewService()
	p := newTestProfile()

	balance, tx := svc.Apply(p, 500, 10, "test credit", testTime)

	assert.Equal(t, int64(1500), balance.Coins)
	assert.Equal(t, int64(10), balance.Gems)
	require.NotNil(t, tx)
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, "user-1", tx.UserID)
	assert.Equal(t, int64(500), tx.CoinDelta)
	assert.Equal(t, int64(10), tx.GemDelta)
	assert.Equal(t, "test credit", tx.Reason)
	assert.Equal(t, testTime, tx.Timestamp)
	assert.Equal(t, int64(1500), tx.CoinsAfter)
	assert.Equal(t, int64(10), tx.GemsAfter)
}

func TestApplyDebit(t *testing.T) {
	svc := NewService()
	p := newTestProfile()

	balance, _ := svc.Apply(p, -300, 0, "test debit", testTime)

	assert.Equal(t, int64(700), balance.Coins)
	assert.Equal(t, int64(0), balance.Gems)
}

func TestApplyClampsOnOverDebit(t *testing.T) {
	svc := NewService()
	p := newTestProfile() // 1000 coins

	balance, tx := svc.Apply(p, -5000, -10, "over debit", testTime)

	// Over-debit clamps to zero rather than failing
	assert.Equal(t, int64(0), balance.Coins)
	assert.Equal(t, int64(0), balance.Gems)

	// The audit record keeps the requested deltas, not the applied ones
	assert.Equal(t, int64(-5000), tx.CoinDelta)
	assert.Equal(t, int64(-10), tx.GemDelta)
	assert.Equal(t, int64(0), tx.CoinsAfter)
	assert.Equal(t, int64(0), tx.GemsAfter)
}

func TestBalanceNeverNegative(t *testing.T) {
	svc := NewService()
	p := newTestProfile()

	deltas := []struct{ coins, gems int64 }{
		{-2000, 5},
		{100, -50},
		{-1, -1},
		{300, 0},
		{-10000, -10000},
		{7, 7},
	}

	for _, d := range deltas {
		balance, _ := svc.Apply(p, d.coins, d.gems, "sequence", testTime)
		assert.GreaterOrEqual(t, balance.Coins, int64(0))
		assert.GreaterOrEqual(t, balance.Gems, int64(0))
	}
}

func TestCanAfford(t *testing.T) {
	svc := NewService()
	p := newTestProfile() // 1000 coins

	assert.True(t, svc.CanAfford(p, 999))
	assert.True(t, svc.CanAfford(p, 1000))
	assert.False(t, svc.CanAfford(p, 1001))
}

func TestBalanceIsReadOnly(t *testing.T) {
	svc := NewService()
	p := newTestProfile()

	balance := svc.Balance(p)
	balance.Coins = 0

	assert.Equal(t, int64(1000), p.Balance.Coins)
}
