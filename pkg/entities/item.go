package entities

import "time"

// ItemType categorizes catalog items. Theme, avatar and effect occupy
// singleton active slots; powerups are time-limited and stack side by side.
type ItemType string

const (
	ItemTypeTheme   ItemType = "theme"
	ItemTypeAvatar  ItemType = "avatar"
	ItemTypeEffect  ItemType = "effect"
	ItemTypePowerup ItemType = "powerup"
)

// ItemTypes lists every valid item type, in display order.
var ItemTypes = []ItemType{ItemTypeTheme, ItemTypeAvatar, ItemTypeEffect, ItemTypePowerup}

// Valid reports whether t is one of the known item types.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeTheme, ItemTypeAvatar, ItemTypeEffect, ItemTypePowerup:
		return true
	}
	return false
}

// Singleton reports whether items of this type occupy a single active slot.
func (t ItemType) Singleton() bool {
	switch t {
	case ItemTypeTheme, ItemTypeAvatar, ItemTypeEffect:
		return true
	}
	return false
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

// Currency denominates an item's price. Most items cost coins; gem packs
// and subscriptions are bought with real money through the payment
// processor and never touch the coin balance.
type Currency string

const (
	CurrencyCoins Currency = "coins"
	CurrencyReal  Currency = "real"
)

// Item is a catalog entry. Catalog items are externally supplied and
// immutable; the engine never mutates one.
type Item struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          ItemType `json:"type"`
	Rarity        Rarity   `json:"rarity"`
	Price         int64    `json:"price"`
	Currency      Currency `json:"currency,omitempty"`       // defaults to coins
	DurationHours int      `json:"duration_hours,omitempty"` // powerups only
	GemAmount     int64    `json:"gem_amount,omitempty"`     // gem packs only
}

// PriceCurrency returns the item's currency, defaulting to coins when the
// catalog omits the field.
func (i *Item) PriceCurrency() Currency {
	if i.Currency == "" {
		return CurrencyCoins
	}
	return i.Currency
}

// Duration returns the active lifetime of a powerup.
func (i *Item) Duration() time.Duration {
	return time.Duration(i.DurationHours) * time.Hour
}

// OwnedItem records a successful purchase. Created exactly once per item id
// per user; ownership is independent of whether the item is active.
type OwnedItem struct {
	Item          Item      `json:"item"`
	PurchaseDate  time.Time `json:"purchase_date"`
	TransactionID string    `json:"transaction_id"`
}
