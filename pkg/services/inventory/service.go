package inventory

import (
	"fmt"
	"time"

	"github.com/fadedpez/eldorado/internal/types"
	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/fadedpez/eldorado/pkg/payment"
	"github.com/fadedpez/eldorado/pkg/services/ledger"
)

// Service owns the set of purchased items on a profile. An item id can be
// owned at most once; the owned set preserves purchase order.
type Service struct{}

// NewService creates a new inventory service
func NewService() *Service {
	return &Service{}
}

// Purchase buys a coin-priced item. Affordability is a hard precondition
// checked before any debit, so a failed purchase never touches the
// balance; this is deliberately stricter than the ledger's clamping Apply.
// Debit and ownership insertion happen on the same in-memory profile, so
// the pair persists (or fails) as one unit when the caller saves.
func (s *Service) Purchase(profile *entities.Profile, item *entities.Item, led *ledger.Service, now time.Time) (*entities.OwnedItem, *entities.Transaction, error) {
	if item.PriceCurrency() != entities.CurrencyCoins {
		return nil, nil, types.NewEconomyError(types.ErrPaymentRequired,
			fmt.Sprintf("item %s is priced in real currency and requires an authorized payment", item.ID))
	}

	if profile.Owned(item.ID) != nil {
		return nil, nil, types.NewEconomyError(types.ErrAlreadyOwned,
			fmt.Sprintf("item %s is already owned", item.ID))
	}

	if !led.CanAfford(profile, item.Price) {
		return nil, nil, types.NewEconomyError(types.ErrInsufficientFunds,
			fmt.Sprintf("item %s costs %d coins, balance is %d", item.ID, item.Price, profile.Balance.Coins))
	}

	_, tx := led.Apply(profile, -item.Price, 0, fmt.Sprintf("purchase %s", item.ID), now)

	owned := &entities.OwnedItem{
		Item:          *item,
		PurchaseDate:  now,
		TransactionID: tx.ID,
	}
	profile.Inventory = append(profile.Inventory, owned)

	return owned, tx, nil
}

// PurchaseWithPayment records ownership of a real-currency item (gem pack,
// subscription) backed by an already-authorized payment result. Gem packs
// credit their gem amount through the ledger; the coin balance is never
// debited.
func (s *Service) PurchaseWithPayment(profile *entities.Profile, item *entities.Item, result *payment.Result, led *ledger.Service, now time.Time) (*entities.OwnedItem, *entities.Transaction, error) {
	if item.PriceCurrency() != entities.CurrencyReal {
		return nil, nil, types.NewEconomyError(types.ErrInvalidArgument,
			fmt.Sprintf("item %s is coin-priced; use Purchase", item.ID))
	}

	if result == nil || !result.Success {
		return nil, nil, types.NewEconomyError(types.ErrPaymentDeclined,
			fmt.Sprintf("payment for item %s was not authorized", item.ID))
	}

	if profile.Owned(item.ID) != nil {
		return nil, nil, types.NewEconomyError(types.ErrAlreadyOwned,
			fmt.Sprintf("item %s is already owned", item.ID))
	}

	var tx *entities.Transaction
	if item.GemAmount > 0 {
		_, tx = led.Apply(profile, 0, item.GemAmount, fmt.Sprintf("gem pack %s", item.ID), now)
	}

	owned := &entities.OwnedItem{
		Item:          *item,
		PurchaseDate:  now,
		TransactionID: result.TransactionID,
	}
	profile.Inventory = append(profile.Inventory, owned)

	return owned, tx, nil
}

// IsOwned reports whether the profile owns itemID.
func (s *Service) IsOwned(profile *entities.Profile, itemID string) bool {
	return profile.Owned(itemID) != nil
}

// ItemsByType returns owned items of the given type in purchase order.
func (s *Service) ItemsByType(profile *entities.Profile, itemType entities.ItemType) []*entities.OwnedItem {
	items := make([]*entities.OwnedItem, 0)
	for _, owned := range profile.Inventory {
		if owned.Item.Type == itemType {
			items = append(items, owned)
		}
	}
	return items
}
