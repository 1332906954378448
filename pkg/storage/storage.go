package storage

import "context"

// Keys for the per-user sub-documents of the persisted record.
const (
	KeyBalance       = "balance"
	KeyTransactions  = "transactions"
	KeyInventory     = "inventory"
	KeyActiveState   = "activeState"
	KeyPowerupTimers = "powerupTimers"
	KeyDailyBonus    = "dailyBonus"
)

// Store is the durable key-value persistence abstraction. One logical
// record per user, addressable by user id, holding JSON sub-documents
// under well-known keys. Implementations must make Set durable before
// returning; a Set error means the write did not happen.
type Store interface {
	// Get returns the JSON value under key for userID, or ErrKeyNotFound.
	Get(ctx context.Context, userID, key string) ([]byte, error)

	// Set durably writes the JSON value under key for userID.
	Set(ctx context.Context, userID, key string, value []byte) error

	// SetMany durably writes several sub-keys for userID as one record
	// update: either every key lands or none do.
	SetMany(ctx context.Context, userID string, values map[string][]byte) error

	// Users lists every user id with a persisted record.
	Users(ctx context.Context) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}
