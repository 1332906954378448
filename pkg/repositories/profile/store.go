package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/fadedpez/eldorado/pkg/storage"
	"github.com/google/uuid"
)

// storeMeta carries the profile fields that have no sub-key of their own.
const keyMeta = "meta"

type storeMeta struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreRepository implements Repository on top of any storage.Store,
// mapping the profile aggregate onto the store's per-user sub-keys
// (balance, inventory, activeState, powerupTimers, dailyBonus,
// transactions).
type StoreRepository struct {
	store storage.Store
}

// NewStoreRepository creates a repository backed by the given store.
func NewStoreRepository(store storage.Store) *StoreRepository {
	return &StoreRepository{store: store}
}

// GetProfile retrieves a profile by user ID
func (r *StoreRepository) GetProfile(ctx context.Context, userID string) (*entities.Profile, error) {
	p := &entities.Profile{UserID: userID}

	// The balance sub-key is written by every save; its absence means the
	// profile does not exist.
	if err := r.get(ctx, userID, storage.KeyBalance, &p.Balance, true); err != nil {
		return nil, err
	}

	if err := r.get(ctx, userID, storage.KeyInventory, &p.Inventory, false); err != nil {
		return nil, err
	}
	if err := r.get(ctx, userID, storage.KeyActiveState, &p.Active, false); err != nil {
		return nil, err
	}
	if err := r.get(ctx, userID, storage.KeyPowerupTimers, &p.Timers, false); err != nil {
		return nil, err
	}
	if err := r.get(ctx, userID, storage.KeyDailyBonus, &p.DailyBonus, false); err != nil {
		return nil, err
	}

	var meta storeMeta
	if err := r.get(ctx, userID, keyMeta, &meta, false); err != nil {
		return nil, err
	}
	p.CreatedAt = meta.CreatedAt
	p.UpdatedAt = meta.UpdatedAt

	if p.Inventory == nil {
		p.Inventory = make([]*entities.OwnedItem, 0)
	}
	if p.Timers == nil {
		p.Timers = make(entities.PowerupTimers)
	}

	return p, nil
}

// SaveProfile creates or updates a profile. All sub-keys go down in a
// single store write, so a debited balance can never persist without the
// inventory change it paid for (and vice versa).
func (r *StoreRepository) SaveProfile(ctx context.Context, profile *entities.Profile) error {
	profile.UpdatedAt = time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}

	values := make(map[string][]byte, 6)
	fields := map[string]interface{}{
		storage.KeyBalance:       profile.Balance,
		storage.KeyInventory:     profile.Inventory,
		storage.KeyActiveState:   profile.Active,
		storage.KeyPowerupTimers: profile.Timers,
		storage.KeyDailyBonus:    profile.DailyBonus,
		keyMeta: storeMeta{
			CreatedAt: profile.CreatedAt,
			UpdatedAt: profile.UpdatedAt,
		},
	}
	for key, value := range fields {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("error marshaling %s for %s: %w", key, profile.UserID, err)
		}
		values[key] = data
	}

	if err := r.store.SetMany(ctx, profile.UserID, values); err != nil {
		return fmt.Errorf("error writing profile for %s: %w", profile.UserID, err)
	}
	return nil
}

// AddTransaction appends a transaction to the user's audit log
func (r *StoreRepository) AddTransaction(ctx context.Context, tx *entities.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now()
	}

	var transactions []*entities.Transaction
	if err := r.get(ctx, tx.UserID, storage.KeyTransactions, &transactions, false); err != nil {
		return err
	}

	transactions = append(transactions, tx)
	return r.set(ctx, tx.UserID, storage.KeyTransactions, transactions)
}

// GetTransactions retrieves recent transactions for a user, newest first
func (r *StoreRepository) GetTransactions(ctx context.Context, userID string, limit int) ([]*entities.Transaction, error) {
	var transactions []*entities.Transaction
	if err := r.get(ctx, userID, storage.KeyTransactions, &transactions, false); err != nil {
		return nil, err
	}

	result := make([]*entities.Transaction, 0, limit)
	for i := len(transactions) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, transactions[i])
	}

	return result, nil
}

// ListUserIDs lists every user with a persisted record
func (r *StoreRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	return r.store.Users(ctx)
}

// Close closes the underlying store
func (r *StoreRepository) Close() error {
	return r.store.Close()
}

// Helper functions

func (r *StoreRepository) get(ctx context.Context, userID, key string, out interface{}, required bool) error {
	data, err := r.store.Get(ctx, userID, key)
	if errors.Is(err, storage.ErrKeyNotFound) {
		if required {
			return ErrProfileNotFound
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading %s for %s: %w", key, userID, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("error parsing %s for %s: %w", key, userID, err)
	}
	return nil
}

func (r *StoreRepository) set(ctx context.Context, userID, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshaling %s for %s: %w", key, userID, err)
	}

	if err := r.store.Set(ctx, userID, key, data); err != nil {
		return fmt.Errorf("error writing %s for %s: %w", key, userID, err)
	}
	return nil
}
