package entities

import "time"

// ActiveState tracks which owned items are currently in use. Theme, avatar
// and effect are singleton slots holding at most one item id; activating a
// new item of the same type replaces the prior occupant. Powerups form a
// set keyed by item id.
type ActiveState struct {
	Theme    string   `json:"theme,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
	Effect   string   `json:"effect,omitempty"`
	Powerups []string `json:"powerups,omitempty"`
}

// Slot returns a pointer to the singleton slot for t, or nil for non-slot
// types.
func (a *ActiveState) Slot(t ItemType) *string {
	switch t {
	case ItemTypeTheme:
		return &a.Theme
	case ItemTypeAvatar:
		return &a.Avatar
	case ItemTypeEffect:
		return &a.Effect
	}
	return nil
}

// HasPowerup reports whether itemID is in the active powerup set.
func (a *ActiveState) HasPowerup(itemID string) bool {
	for _, id := range a.Powerups {
		if id == itemID {
			return true
		}
	}
	return false
}

// AddPowerup inserts itemID into the powerup set. No-op if already present.
func (a *ActiveState) AddPowerup(itemID string) {
	if a.HasPowerup(itemID) {
		return
	}
	a.Powerups = append(a.Powerups, itemID)
}

// RemovePowerup deletes itemID from the powerup set. No-op if absent.
func (a *ActiveState) RemovePowerup(itemID string) {
	for i, id := range a.Powerups {
		if id == itemID {
			a.Powerups = append(a.Powerups[:i], a.Powerups[i+1:]...)
			return
		}
	}
}

// PowerupTimers maps an active powerup's item id to its expiry instant.
// Entries are created on activation, consulted on every active-state query
// and removed by sweep or explicit deactivation. The timer map and the
// ActiveState powerup set must stay consistent.
type PowerupTimers map[string]time.Time

// Start upserts the timer for itemID. Restarting a running timer resets
// its expiry rather than stacking durations.
func (t PowerupTimers) Start(itemID string, expiresAt time.Time) {
	t[itemID] = expiresAt
}

// ExpiresAt returns the expiry for itemID and whether a timer exists.
func (t PowerupTimers) ExpiresAt(itemID string) (time.Time, bool) {
	exp, ok := t[itemID]
	return exp, ok
}

// Stop removes the timer for itemID.
func (t PowerupTimers) Stop(itemID string) {
	delete(t, itemID)
}

// Sweep removes every timer with expiresAt <= now and returns the removed
// ids so the caller can reconcile the active powerup set.
func (t PowerupTimers) Sweep(now time.Time) []string {
	var expired []string
	for id, exp := range t {
		if !exp.After(now) {
			expired = append(expired, id)
			delete(t, id)
		}
	}
	return expired
}
