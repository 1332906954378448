package activation

import (
	"fmt"
	"sort"
	"time"

	"github.com/fadedpez/eldorado/internal/types"
	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/fadedpez/eldorado/pkg/services/inventory"
)

// ActivePowerup joins an active powerup with its timer for display.
type ActivePowerup struct {
	Item      entities.Item
	ExpiresAt time.Time
	Remaining time.Duration
}

// Service manages the currently-active item state on a profile: the three
// singleton slots (theme, avatar, effect) and the TTL-bearing powerup set.
// Powerup expiry is evaluated lazily against the caller's clock; there are
// no background timers.
type Service struct{}

// NewService creates a new activation service
func NewService() *Service {
	return &Service{}
}

// Activate puts an owned item into use. Singleton types replace the slot's
// prior occupant unconditionally. Powerups join the active set (no-op when
// already present) and get a timer of the item's duration; re-activating a
// running powerup resets its expiry rather than stacking durations.
// Dispatch over item type is exhaustive: a type outside the four known
// values is a hard UNKNOWN_ITEM_TYPE error, never silently ignored.
func (s *Service) Activate(profile *entities.Profile, item *entities.Item, inv *inventory.Service, now time.Time) error {
	if !inv.IsOwned(profile, item.ID) {
		return types.NewEconomyError(types.ErrNotOwned,
			fmt.Sprintf("item %s is not owned", item.ID))
	}

	switch item.Type {
	case entities.ItemTypeTheme, entities.ItemTypeAvatar, entities.ItemTypeEffect:
		*profile.Active.Slot(item.Type) = item.ID
	case entities.ItemTypePowerup:
		profile.Active.AddPowerup(item.ID)
		if profile.Timers == nil {
			profile.Timers = make(entities.PowerupTimers)
		}
		profile.Timers.Start(item.ID, now.Add(item.Duration()))
	default:
		return types.NewEconomyError(types.ErrUnknownItemType,
			fmt.Sprintf("item %s has unknown type %q", item.ID, item.Type))
	}

	return nil
}

// DeactivateSlot clears a singleton slot. Clearing an empty slot is a
// no-op, not an error.
func (s *Service) DeactivateSlot(profile *entities.Profile, itemType entities.ItemType) error {
	slot := profile.Active.Slot(itemType)
	if slot == nil {
		return types.NewEconomyError(types.ErrUnknownItemType,
			fmt.Sprintf("type %q is not a singleton slot", itemType))
	}
	*slot = ""
	return nil
}

// DeactivatePowerup removes a powerup from the active set and clears its
// timer. Deactivating an absent powerup is a no-op.
func (s *Service) DeactivatePowerup(profile *entities.Profile, itemID string) {
	profile.Active.RemovePowerup(itemID)
	profile.Timers.Stop(itemID)
}

// IsActive reports whether itemID is in use at now. Singleton slots are an
// equality check; powerups require set membership and an unexpired timer,
// so an expired powerup reads as inactive even before a sweep runs.
func (s *Service) IsActive(profile *entities.Profile, itemID string, itemType entities.ItemType, now time.Time) bool {
	switch itemType {
	case entities.ItemTypeTheme, entities.ItemTypeAvatar, entities.ItemTypeEffect:
		return *profile.Active.Slot(itemType) == itemID
	case entities.ItemTypePowerup:
		if !profile.Active.HasPowerup(itemID) {
			return false
		}
		expiresAt, ok := profile.Timers.ExpiresAt(itemID)
		return ok && expiresAt.After(now)
	}
	return false
}

// ActivePowerups lists unexpired powerups with their expiry and remaining
// time, joined with inventory data for display. The query never mutates
// state; purging expired entries is Sweep's job.
func (s *Service) ActivePowerups(profile *entities.Profile, now time.Time) []ActivePowerup {
	active := make([]ActivePowerup, 0)
	for _, id := range profile.Active.Powerups {
		expiresAt, ok := profile.Timers.ExpiresAt(id)
		if !ok || !expiresAt.After(now) {
			continue
		}
		owned := profile.Owned(id)
		if owned == nil {
			continue
		}
		active = append(active, ActivePowerup{
			Item:      owned.Item,
			ExpiresAt: expiresAt,
			Remaining: expiresAt.Sub(now),
		})
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].ExpiresAt.Before(active[j].ExpiresAt)
	})
	return active
}

// Sweep purges expired powerup timers and removes the same ids from the
// active powerup set, keeping the two consistent. Returns the expired ids.
func (s *Service) Sweep(profile *entities.Profile, now time.Time) []string {
	expired := profile.Timers.Sweep(now)
	for _, id := range expired {
		profile.Active.RemovePowerup(id)
	}
	// An active powerup with no timer would never expire; drop any such
	// orphans so the set and the registry cannot drift apart.
	for _, id := range append([]string(nil), profile.Active.Powerups...) {
		if _, ok := profile.Timers.ExpiresAt(id); !ok {
			profile.Active.RemovePowerup(id)
			expired = append(expired, id)
		}
	}
	return expired
}
