package profile

import (
	"context"
	"testing"
	"time"

	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func TestMemoryGetProfileNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetProfile(context.Background(), "nobody")

	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestMemorySaveAndGetProfile(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	p := entities.NewProfile("user-1", testTime)
	p.Balance.Coins = 901
	p.Inventory = append(p.Inventory, &entities.OwnedItem{
		Item:         entities.Item{ID: "dark_theme", Type: entities.ItemTypeTheme, Price: 99},
		PurchaseDate: testTime,
	})
	p.Active.Theme = "dark_theme"
	p.Timers.Start("double_xp", testTime.Add(24*time.Hour))
	p.DailyBonus = entities.DailyBonusState{LastClaim: testTime, Streak: 3}

	require.NoError(t, repo.SaveProfile(ctx, p))

	loaded, err := repo.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(901), loaded.Balance.Coins)
	require.Len(t, loaded.Inventory, 1)
	assert.Equal(t, "dark_theme", loaded.Inventory[0].Item.ID)
	assert.Equal(t, "dark_theme", loaded.Active.Theme)
	assert.Equal(t, 3, loaded.DailyBonus.Streak)

	expiry, ok := loaded.Timers.ExpiresAt("double_xp")
	require.True(t, ok)
	assert.True(t, expiry.Equal(testTime.Add(24*time.Hour)))
}

func TestMemoryReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	p := entities.NewProfile("user-1", testTime)
	require.NoError(t, repo.SaveProfile(ctx, p))

	// Mutating a loaded profile must not leak into the stored one
	loaded, err := repo.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	loaded.Balance.Coins = 0
	loaded.Active.Theme = "dark_theme"
	loaded.Timers.Start("double_xp", testTime)

	fresh, err := repo.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), fresh.Balance.Coins)
	assert.Empty(t, fresh.Active.Theme)
	_, ok := fresh.Timers.ExpiresAt("double_xp")
	assert.False(t, ok)

	// The caller's copy is also isolated from later saves
	p.Balance.Coins = 5
	require.NoError(t, repo.SaveProfile(ctx, p))
	assert.Equal(t, int64(0), loaded.Balance.Coins)
}

func TestMemoryTransactions(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		tx := &entities.Transaction{
			UserID:    "user-1",
			CoinDelta: int64(i),
			Reason:    "test",
			Timestamp: testTime.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.AddTransaction(ctx, tx))
		assert.NotEmpty(t, tx.ID, "missing id should be generated")
	}

	// Newest first, limited
	txs, err := repo.GetTransactions(ctx, "user-1", 3)
	require.NoError(t, err)
	require.Len(t, txs, 3)
	assert.Equal(t, int64(4), txs[0].CoinDelta)
	assert.Equal(t, int64(3), txs[1].CoinDelta)
	assert.Equal(t, int64(2), txs[2].CoinDelta)

	// Unknown user has an empty history
	txs, err = repo.GetTransactions(ctx, "nobody", 10)
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestMemoryListUserIDs(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	users, err := repo.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	require.NoError(t, repo.SaveProfile(ctx, entities.NewProfile("user-1", testTime)))
	require.NoError(t, repo.SaveProfile(ctx, entities.NewProfile("user-2", testTime)))

	users, err = repo.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, users)
}
