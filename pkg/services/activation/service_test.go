package activation

import (
	"testing"
	"time"

	"github.com/fadedpez/eldorado/internal/types"
	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/fadedpez/eldorado/pkg/services/inventory"
	"github.com/fadedpez/eldorado/pkg/services/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

var (
	darkTheme  = &entities.Item{ID: "dark_theme", Type: entities.ItemTypeTheme, Price: 99}
	lightTheme = &entities.Item{ID: "light_theme", Type: entities.ItemTypeTheme, Price: 99}
	robotSkin  = &entities.Item{ID: "robot_skin", Type: entities.ItemTypeAvatar, Price: 150}
	doubleXP   = &entities.Item{ID: "double_xp", Type: entities.ItemTypePowerup, Price: 250, DurationHours: 24}
	luckBoost  = &entities.Item{ID: "luck_boost", Type: entities.ItemTypePowerup, Price: 100, DurationHours: 1}
)

// setup returns a profile that already owns the given items.
func setup(t *testing.T, items ...*entities.Item) (*Service, *inventory.Service, *entities.Profile) {
	t.Helper()
	svc := NewService()
	inv := inventory.NewService()
	led := ledger.NewService()
	p := entities.NewProfile("user-1", testTime)
	p.Balance.Coins = 100000
	for _, item := range items {
		_, _, err := inv.Purchase(p, item, led, testTime)
		require.NoError(t, err)
	}
	return svc, inv, p
}

func TestActivateNotOwned(t *testing.T) {
	svc, inv, p := setup(t)

	err := svc.Activate(p, darkTheme, inv, testTime)

	require.Error(t, err)
	assert.True(t, types.IsEconomyError(err, types.ErrNotOwned))
	assert.Empty(t, p.Active.Theme)
}

func TestActivateSingletonReplacesSlot(t *testing.T) {
	svc, inv, p := setup(t, darkTheme, lightTheme, robotSkin)

	require.NoError(t, svc.Activate(p, darkTheme, inv, testTime))
	assert.Equal(t, "dark_theme", p.Active.Theme)
	assert.True(t, svc.IsActive(p, "dark_theme", entities.ItemTypeTheme, testTime))

	// Activating another theme replaces, never stacks
	require.NoError(t, svc.Activate(p, lightTheme, inv, testTime))
	assert.Equal(t, "light_theme", p.Active.Theme)
	assert.False(t, svc.IsActive(p, "dark_theme", entities.ItemTypeTheme, testTime))

	// Slots are independent per type
	require.NoError(t, svc.Activate(p, robotSkin, inv, testTime))
	assert.Equal(t, "light_theme", p.Active.Theme)
	assert.Equal(t, "robot_skin", p.Active.Avatar)
}

func TestActivatePowerupSetsTimer(t *testing.T) {
	svc, inv, p := setup(t, doubleXP)

	require.NoError(t, svc.Activate(p, doubleXP, inv, testTime))

	assert.True(t, p.Active.HasPowerup("double_xp"))
	expiresAt, ok := p.Timers.ExpiresAt("double_xp")
	require.True(t, ok)
	assert.Equal(t, testTime.Add(24*time.Hour), expiresAt)
}

func TestPowerupsStack(t *testing.T) {
	svc, inv, p := setup(t, doubleXP, luckBoost)

	require.NoError(t, svc.Activate(p, doubleXP, inv, testTime))
	require.NoError(t, svc.Activate(p, luckBoost, inv, testTime))

	assert.True(t, svc.IsActive(p, "double_xp", entities.ItemTypePowerup, testTime))
	assert.True(t, svc.IsActive(p, "luck_boost", entities.ItemTypePowerup, testTime))
	assert.Len(t, p.Active.Powerups, 2)
}

func TestReactivateResetsExpiry(t *testing.T) {
	svc, inv, p := setup(t, doubleXP)

	require.NoError(t, svc.Activate(p, doubleXP, inv, testTime))
	later := testTime.Add(6 * time.Hour)
	require.NoError(t, svc.Activate(p, doubleXP, inv, later))

	// Single set entry, expiry reset from the second activation
	assert.Len(t, p.Active.Powerups, 1)
	expiresAt, _ := p.Timers.ExpiresAt("double_xp")
	assert.Equal(t, later.Add(24*time.Hour), expiresAt)
}

func TestActivateUnknownTypeFails(t *testing.T) {
	svc, inv, p := setup(t)

	badge := &entities.Item{ID: "founder_badge", Type: entities.ItemType("badge"), Price: 10}
	p.Inventory = append(p.Inventory, &entities.OwnedItem{Item: *badge, PurchaseDate: testTime})

	err := svc.Activate(p, badge, inv, testTime)

	require.Error(t, err)
	assert.True(t, types.IsEconomyError(err, types.ErrUnknownItemType))
}

func TestPowerupExpiryBoundary(t *testing.T) {
	svc, inv, p := setup(t, luckBoost) // 1 hour duration

	require.NoError(t, svc.Activate(p, luckBoost, inv, testTime))
	expiry := testTime.Add(time.Hour)

	assert.True(t, svc.IsActive(p, "luck_boost", entities.ItemTypePowerup, expiry.Add(-time.Second)))
	// At and past the expiry instant the powerup reads inactive even
	// though no sweep has run yet.
	assert.False(t, svc.IsActive(p, "luck_boost", entities.ItemTypePowerup, expiry))
	assert.False(t, svc.IsActive(p, "luck_boost", entities.ItemTypePowerup, expiry.Add(time.Second)))
}

func TestDeactivateSlot(t *testing.T) {
	svc, inv, p := setup(t, darkTheme)

	require.NoError(t, svc.Activate(p, darkTheme, inv, testTime))
	require.NoError(t, svc.DeactivateSlot(p, entities.ItemTypeTheme))
	assert.Empty(t, p.Active.Theme)

	// Clearing an already-empty slot is a no-op
	require.NoError(t, svc.DeactivateSlot(p, entities.ItemTypeTheme))

	// Powerups are not a slot
	err := svc.DeactivateSlot(p, entities.ItemTypePowerup)
	require.Error(t, err)
	assert.True(t, types.IsEconomyError(err, types.ErrUnknownItemType))
}

func TestDeactivatePowerup(t *testing.T) {
	svc, inv, p := setup(t, doubleXP)

	require.NoError(t, svc.Activate(p, doubleXP, inv, testTime))
	svc.DeactivatePowerup(p, "double_xp")

	assert.False(t, p.Active.HasPowerup("double_xp"))
	_, ok := p.Timers.ExpiresAt("double_xp")
	assert.False(t, ok)

	// Deactivating an absent powerup is a no-op
	svc.DeactivatePowerup(p, "double_xp")
}

func TestActivePowerups(t *testing.T) {
	svc, inv, p := setup(t, doubleXP, luckBoost)

	require.NoError(t, svc.Activate(p, doubleXP, inv, testTime))
	require.NoError(t, svc.Activate(p, luckBoost, inv, testTime))

	active := svc.ActivePowerups(p, testTime.Add(30*time.Minute))
	require.Len(t, active, 2)
	// Sorted by soonest expiry
	assert.Equal(t, "luck_boost", active[0].Item.ID)
	assert.Equal(t, 30*time.Minute, active[0].Remaining)
	assert.Equal(t, "double_xp", active[1].Item.ID)

	// After luck_boost expires only double_xp remains, and the query
	// must not have mutated state.
	active = svc.ActivePowerups(p, testTime.Add(2*time.Hour))
	require.Len(t, active, 1)
	assert.Equal(t, "double_xp", active[0].Item.ID)
	assert.Len(t, p.Active.Powerups, 2)
}

func TestSweep(t *testing.T) {
	svc, inv, p := setup(t, doubleXP, luckBoost)

	require.NoError(t, svc.Activate(p, doubleXP, inv, testTime))
	require.NoError(t, svc.Activate(p, luckBoost, inv, testTime))

	expired := svc.Sweep(p, testTime.Add(2*time.Hour))

	assert.Equal(t, []string{"luck_boost"}, expired)
	assert.False(t, p.Active.HasPowerup("luck_boost"))
	_, ok := p.Timers.ExpiresAt("luck_boost")
	assert.False(t, ok)

	// Unexpired powerup survives with its timer intact
	assert.True(t, p.Active.HasPowerup("double_xp"))
	_, ok = p.Timers.ExpiresAt("double_xp")
	assert.True(t, ok)
}

func TestSweepRemovesOrphanedPowerups(t *testing.T) {
	svc, inv, p := setup(t, doubleXP)

	require.NoError(t, svc.Activate(p, doubleXP, inv, testTime))
	// Simulate drift: set membership without a timer
	delete(p.Timers, "double_xp")

	expired := svc.Sweep(p, testTime)

	assert.Equal(t, []string{"double_xp"}, expired)
	assert.Empty(t, p.Active.Powerups)
}

func TestSweepNothingExpired(t *testing.T) {
	svc, inv, p := setup(t, doubleXP)

	require.NoError(t, svc.Activate(p, doubleXP, inv, testTime))

	expired := svc.Sweep(p, testTime.Add(time.Hour))
	assert.Empty(t, expired)
	assert.True(t, p.Active.HasPowerup("double_xp"))
}
