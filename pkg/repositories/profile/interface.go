package profile

import (
	"context"
	"errors"

	"github.com/fadedpez/eldorado/pkg/entities"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

//go:generate mockgen -source=interface.go -destination=mock/mock.go -package=mock_profile

// Repository defines the interface for profile persistence. Implementations
// persist the per-user aggregate as a unit and keep the transaction log
// append-only.
type Repository interface {
	// GetProfile retrieves a profile by user ID, or ErrProfileNotFound.
	GetProfile(ctx context.Context, userID string) (*entities.Profile, error)

	// SaveProfile creates or updates a profile.
	SaveProfile(ctx context.Context, profile *entities.Profile) error

	// AddTransaction appends a transaction to the user's audit log.
	AddTransaction(ctx context.Context, tx *entities.Transaction) error

	// GetTransactions retrieves recent transactions, newest first.
	GetTransactions(ctx context.Context, userID string, limit int) ([]*entities.Transaction, error)

	// ListUserIDs lists every user with a persisted profile.
	ListUserIDs(ctx context.Context) ([]string, error)

	// Close releases any resources held by the repository.
	Close() error
}
