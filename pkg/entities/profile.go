package entities

import "time"

// Starting grant for a freshly created profile.
const (
	StartingCoins int64 = 1000
	StartingGems  int64 = 0
)

// Profile is the per-user economy aggregate: balance, owned items, active
// state, powerup timers and daily bonus history. All mutating operations
// read the profile, compute the next state and persist it as a single unit;
// there is no cross-user sharing.
type Profile struct {
	UserID     string          `json:"user_id"`
	Balance    Balance         `json:"balance"`
	Inventory  []*OwnedItem    `json:"inventory"` // purchase order, stable
	Active     ActiveState     `json:"active_state"`
	Timers     PowerupTimers   `json:"powerup_timers"`
	DailyBonus DailyBonusState `json:"daily_bonus"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// NewProfile creates a profile with the starting grant, an empty inventory,
// nothing active and no bonus history.
func NewProfile(userID string, now time.Time) *Profile {
	return &Profile{
		UserID: userID,
		Balance: Balance{
			Coins: StartingCoins,
			Gems:  StartingGems,
		},
		Inventory: make([]*OwnedItem, 0),
		Timers:    make(PowerupTimers),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Owned returns the owned item for itemID, or nil.
func (p *Profile) Owned(itemID string) *OwnedItem {
	for _, owned := range p.Inventory {
		if owned.Item.ID == itemID {
			return owned
		}
	}
	return nil
}

// Clone returns a deep copy of the profile. Repositories hand out copies so
// callers never alias stored state.
func (p *Profile) Clone() *Profile {
	cp := *p

	cp.Inventory = make([]*OwnedItem, len(p.Inventory))
	for i, owned := range p.Inventory {
		ownedCopy := *owned
		cp.Inventory[i] = &ownedCopy
	}

	cp.Active.Powerups = append([]string(nil), p.Active.Powerups...)

	cp.Timers = make(PowerupTimers, len(p.Timers))
	for id, exp := range p.Timers {
		cp.Timers[id] = exp
	}

	return &cp
}
