package profile

import (
	"context"
	"sync"
	"time"

	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/google/uuid"
)

// MemoryRepository implements Repository using in-memory storage
type MemoryRepository struct {
	profiles     map[string]*entities.Profile
	transactions map[string][]*entities.Transaction
	mu           sync.RWMutex
}

// NewMemoryRepository creates a new in-memory profile repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		profiles:     make(map[string]*entities.Profile),
		transactions: make(map[string][]*entities.Transaction),
	}
}

// GetProfile retrieves a profile by user ID
func (r *MemoryRepository) GetProfile(ctx context.Context, userID string) (*entities.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[userID]
	if !exists {
		return nil, ErrProfileNotFound
	}

	// Return a copy to prevent concurrent modification
	return profile.Clone(), nil
}

// SaveProfile creates or updates a profile
func (r *MemoryRepository) SaveProfile(ctx context.Context, profile *entities.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile.UpdatedAt = time.Now()

	// Store a copy to prevent concurrent modification
	r.profiles[profile.UserID] = profile.Clone()

	return nil
}

// AddTransaction records a new transaction
func (r *MemoryRepository) AddTransaction(ctx context.Context, tx *entities.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Generate a UUID if not provided
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}

	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now()
	}

	txCopy := *tx
	r.transactions[tx.UserID] = append(r.transactions[tx.UserID], &txCopy)

	return nil
}

// GetTransactions retrieves recent transactions for a user, newest first
func (r *MemoryRepository) GetTransactions(ctx context.Context, userID string, limit int) ([]*entities.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	transactions := r.transactions[userID]

	result := make([]*entities.Transaction, 0, limit)
	for i := len(transactions) - 1; i >= 0 && len(result) < limit; i-- {
		txCopy := *transactions[i]
		result = append(result, &txCopy)
	}

	return result, nil
}

// ListUserIDs lists every user with a stored profile
func (r *MemoryRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.profiles))
	for userID := range r.profiles {
		users = append(users, userID)
	}

	return users, nil
}

// Close is a no-op for the in-memory repository
func (r *MemoryRepository) Close() error {
	return nil
}
