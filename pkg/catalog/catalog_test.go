package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItems() []*entities.Item {
	return []*entities.Item{
		{ID: "dark_theme", Name: "Dark Theme", Type: entities.ItemTypeTheme, Rarity: entities.RarityCommon, Price: 99},
		{ID: "double_xp", Name: "Double XP", Type: entities.ItemTypePowerup, Rarity: entities.RarityRare, Price: 250, DurationHours: 24},
		{ID: "robot_skin", Name: "Robot Skin", Type: entities.ItemTypeAvatar, Rarity: entities.RarityEpic, Price: 150},
	}
}

func TestNew(t *testing.T) {
	cat, err := New(validItems())

	require.NoError(t, err)
	assert.Equal(t, 3, cat.Len())

	item, ok := cat.Item("double_xp")
	require.True(t, ok)
	assert.Equal(t, "Double XP", item.Name)

	_, ok = cat.Item("nope")
	assert.False(t, ok)
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	items := validItems()
	items = append(items, &entities.Item{ID: "dark_theme", Name: "Copy", Type: entities.ItemTypeTheme, Rarity: entities.RarityCommon, Price: 1})

	_, err := New(items)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate item id")
}

func TestItemsPreserveOrder(t *testing.T) {
	cat, err := New(validItems())
	require.NoError(t, err)

	items := cat.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "dark_theme", items[0].ID)
	assert.Equal(t, "double_xp", items[1].ID)
	assert.Equal(t, "robot_skin", items[2].ID)

	powerups := cat.ItemsByType(entities.ItemTypePowerup)
	require.Len(t, powerups, 1)
	assert.Equal(t, "double_xp", powerups[0].ID)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		item    *entities.Item
		wantErr string
	}{
		{
			name: "valid theme",
			item: &entities.Item{ID: "t", Name: "T", Type: entities.ItemTypeTheme, Rarity: entities.RarityCommon, Price: 10},
		},
		{
			name: "valid gem pack",
			item: &entities.Item{ID: "g", Name: "G", Type: entities.ItemTypeTheme, Rarity: entities.RarityCommon, Price: 499, Currency: entities.CurrencyReal, GemAmount: 100},
		},
		{
			name:    "empty id",
			item:    &entities.Item{Name: "T", Type: entities.ItemTypeTheme, Rarity: entities.RarityCommon},
			wantErr: "empty id",
		},
		{
			name:    "empty name",
			item:    &entities.Item{ID: "t", Type: entities.ItemTypeTheme, Rarity: entities.RarityCommon},
			wantErr: "empty name",
		},
		{
			name:    "unknown type",
			item:    &entities.Item{ID: "t", Name: "T", Type: entities.ItemType("badge"), Rarity: entities.RarityCommon},
			wantErr: "unknown type",
		},
		{
			name:    "negative price",
			item:    &entities.Item{ID: "t", Name: "T", Type: entities.ItemTypeTheme, Rarity: entities.RarityCommon, Price: -1},
			wantErr: "negative price",
		},
		{
			name:    "powerup without duration",
			item:    &entities.Item{ID: "p", Name: "P", Type: entities.ItemTypePowerup, Rarity: entities.RarityCommon, Price: 10},
			wantErr: "positive duration",
		},
		{
			name:    "duration on non-powerup",
			item:    &entities.Item{ID: "t", Name: "T", Type: entities.ItemTypeTheme, Rarity: entities.RarityCommon, Price: 10, DurationHours: 5},
			wantErr: "cannot have a duration",
		},
		{
			name:    "coin-priced gem pack",
			item:    &entities.Item{ID: "g", Name: "G", Type: entities.ItemTypeTheme, Rarity: entities.RarityCommon, Price: 10, GemAmount: 100},
			wantErr: "real currency",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.item)
			if tc.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `[
		{"id": "dark_theme", "name": "Dark Theme", "type": "theme", "rarity": "common", "price": 99},
		{"id": "double_xp", "name": "Double XP", "type": "powerup", "rarity": "rare", "price": 250, "duration_hours": 24}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cat, err := LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	item, ok := cat.Item("double_xp")
	require.True(t, ok)
	assert.Equal(t, 24, item.DurationHours)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadFromFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}
