package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fadedpez/eldorado/pkg/entities"
)

// Catalog holds the externally supplied item definitions. Items are
// immutable once loaded; the engine only reads them.
type Catalog struct {
	items map[string]*entities.Item
	order []string // catalog file order, for stable listings
}

// New builds a catalog from items, validating each entry.
func New(items []*entities.Item) (*Catalog, error) {
	c := &Catalog{
		items: make(map[string]*entities.Item, len(items)),
		order: make([]string, 0, len(items)),
	}

	for _, item := range items {
		if err := Validate(item); err != nil {
			return nil, err
		}
		if _, exists := c.items[item.ID]; exists {
			return nil, fmt.Errorf("duplicate item id %q", item.ID)
		}
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}

	return c, nil
}

// LoadFromFile reads a JSON array of items from path.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog file: %w", err)
	}

	var items []*entities.Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("error parsing catalog file: %w", err)
	}

	return New(items)
}

// Validate checks a single catalog entry for internal consistency.
func Validate(item *entities.Item) error {
	if item.ID == "" {
		return fmt.Errorf("catalog item has empty id")
	}
	if item.Name == "" {
		return fmt.Errorf("item %q has empty name", item.ID)
	}
	if !item.Type.Valid() {
		return fmt.Errorf("item %q has unknown type %q", item.ID, item.Type)
	}
	if !item.Rarity.Valid() {
		return fmt.Errorf("item %q has unknown rarity %q", item.ID, item.Rarity)
	}
	if item.Price < 0 {
		return fmt.Errorf("item %q has negative price", item.ID)
	}

	// Duration belongs to powerups and nothing else.
	if item.Type == entities.ItemTypePowerup && item.DurationHours <= 0 {
		return fmt.Errorf("powerup %q must have a positive duration", item.ID)
	}
	if item.Type != entities.ItemTypePowerup && item.DurationHours != 0 {
		return fmt.Errorf("item %q is not a powerup and cannot have a duration", item.ID)
	}

	if item.GemAmount > 0 && item.PriceCurrency() != entities.CurrencyReal {
		return fmt.Errorf("gem pack %q must be priced in real currency", item.ID)
	}

	switch item.PriceCurrency() {
	case entities.CurrencyCoins, entities.CurrencyReal:
	default:
		return fmt.Errorf("item %q has unknown currency %q", item.ID, item.Currency)
	}

	return nil
}

// Item looks up an item by id.
func (c *Catalog) Item(id string) (*entities.Item, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns every item in catalog order.
func (c *Catalog) Items() []*entities.Item {
	items := make([]*entities.Item, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}
	return items
}

// ItemsByType returns items of the given type in catalog order.
func (c *Catalog) ItemsByType(t entities.ItemType) []*entities.Item {
	items := make([]*entities.Item, 0)
	for _, id := range c.order {
		if c.items[id].Type == t {
			items = append(items, c.items[id])
		}
	}
	return items
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.order)
}
