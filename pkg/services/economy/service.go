package economy

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fadedpez/eldorado/internal/logging"
	"github.com/fadedpez/eldorado/internal/types"
	"github.com/fadedpez/eldorado/pkg/catalog"
	"github.com/fadedpez/eldorado/pkg/clock"
	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/fadedpez/eldorado/pkg/payment"
	"github.com/fadedpez/eldorado/pkg/repositories/profile"
	"github.com/fadedpez/eldorado/pkg/services/activation"
	"github.com/fadedpez/eldorado/pkg/services/bonus"
	"github.com/fadedpez/eldorado/pkg/services/inventory"
	"github.com/fadedpez/eldorado/pkg/services/ledger"
)

// TransactionSink receives a copy of each ledger transaction after it has
// been durably persisted. Sink failures are logged, never fatal; the
// repository's transaction log is the authoritative record.
type TransactionSink interface {
	IndexTransaction(ctx context.Context, tx *entities.Transaction) error
}

// Service is the user-facing economy facade. Every mutating operation is a
// single logical transaction against the per-user aggregate: acquire the
// user's lock, load the profile, run the component logic on the in-memory
// copy, persist once. Two concurrent callers for the same user serialize
// on the lock, so no interleaved read sees a half-applied operation.
type Service struct {
	repo    profile.Repository
	clk     clock.Clock
	catalog *catalog.Catalog
	logger  *logging.Logger
	sink    TransactionSink // optional

	ledger     *ledger.Service
	bonus      *bonus.Service
	inventory  *inventory.Service
	activation *activation.Service

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates the economy facade.
func NewService(repo profile.Repository, clk clock.Clock, cat *catalog.Catalog, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default
	}
	return &Service{
		repo:       repo,
		clk:        clk,
		catalog:    cat,
		logger:     logger,
		ledger:     ledger.NewService(),
		bonus:      bonus.NewService(),
		inventory:  inventory.NewService(),
		activation: activation.NewService(),
		locks:      make(map[string]*sync.Mutex),
	}
}

// SetTransactionSink attaches an optional audit sink. Must be called
// before the service starts handling requests.
func (s *Service) SetTransactionSink(sink TransactionSink) {
	s.sink = sink
}

// lockUser returns the mutex guarding userID's aggregate, creating it on
// first use.
func (s *Service) lockUser(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	return mu
}

// getOrCreateProfile loads the user's profile, creating it with the
// starting grant on first access. Expired powerups are swept on load.
func (s *Service) getOrCreateProfile(ctx context.Context, userID string) (*entities.Profile, bool, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err == nil {
		if expired := s.activation.Sweep(p, s.clk.Now()); len(expired) > 0 {
			s.logger.Debug("swept %d expired powerups for user %s on load", len(expired), userID)
		}
		return p, false, nil
	}

	if !errors.Is(err, profile.ErrProfileNotFound) {
		return nil, false, types.WrapError(types.ErrStorageError, "failed to load profile", err)
	}

	p = entities.NewProfile(userID, s.clk.Now())
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, false, types.WrapError(types.ErrStorageError, "failed to create profile", err)
	}
	s.logger.Info("created profile for user %s with starting grant", userID)

	return p, true, nil
}

// save persists the profile and then records any transactions produced by
// the operation.
func (s *Service) save(ctx context.Context, p *entities.Profile, txs ...*entities.Transaction) error {
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return types.WrapError(types.ErrStorageError, "failed to save profile", err)
	}

	for _, tx := range txs {
		if tx == nil {
			continue
		}
		if err := s.repo.AddTransaction(ctx, tx); err != nil {
			// Balance change is already durable; a missing log entry is an
			// audit gap, not a failed operation.
			s.logger.Warn("failed to record transaction %s for user %s: %v", tx.ID, tx.UserID, err)
			continue
		}
		if s.sink != nil {
			if err := s.sink.IndexTransaction(ctx, tx); err != nil {
				s.logger.Warn("failed to index transaction %s: %v", tx.ID, err)
			}
		}
	}

	return nil
}

// resolveItem looks up a catalog item.
func (s *Service) resolveItem(itemID string) (*entities.Item, error) {
	item, ok := s.catalog.Item(itemID)
	if !ok {
		return nil, types.NewEconomyError(types.ErrItemNotFound,
			fmt.Sprintf("item %s is not in the catalog", itemID))
	}
	return item, nil
}

// Balance returns the user's current balance, creating the profile on
// first access.
func (s *Service) Balance(ctx context.Context, userID string) (entities.Balance, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return entities.Balance{}, err
	}
	return s.ledger.Balance(p), nil
}

// Purchase buys a coin-priced catalog item for the user. The debit and the
// ownership record persist together or not at all.
func (s *Service) Purchase(ctx context.Context, userID, itemID string) (*entities.OwnedItem, entities.Balance, error) {
	item, err := s.resolveItem(itemID)
	if err != nil {
		return nil, entities.Balance{}, err
	}

	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, entities.Balance{}, err
	}

	owned, tx, err := s.inventory.Purchase(p, item, s.ledger, s.clk.Now())
	if err != nil {
		return nil, p.Balance, err
	}

	if err := s.save(ctx, p, tx); err != nil {
		return nil, entities.Balance{}, err
	}

	s.logger.Info("user %s purchased %s for %d coins", userID, item.ID, item.Price)
	return owned, p.Balance, nil
}

// PurchaseWithPayment records ownership of a real-currency item backed by
// an authorized payment result (gem packs, subscriptions).
func (s *Service) PurchaseWithPayment(ctx context.Context, userID, itemID string, result *payment.Result) (*entities.OwnedItem, error) {
	item, err := s.resolveItem(itemID)
	if err != nil {
		return nil, err
	}

	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned, tx, err := s.inventory.PurchaseWithPayment(p, item, result, s.ledger, s.clk.Now())
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, p, tx); err != nil {
		return nil, err
	}

	s.logger.Info("user %s purchased %s via payment %s", userID, item.ID, result.TransactionID)
	return owned, nil
}

// BonusStatus reports daily bonus eligibility.
func (s *Service) BonusStatus(ctx context.Context, userID string) (bonus.Status, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return bonus.Status{}, err
	}
	return s.bonus.CheckStatus(p, s.clk.Now()), nil
}

// ClaimDailyBonus claims the daily bonus if available.
func (s *Service) ClaimDailyBonus(ctx context.Context, userID string) (*bonus.Claim, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	claim, tx, err := s.bonus.ClaimBonus(p, s.ledger, s.clk.Now())
	if err != nil {
		return nil, err
	}

	if err := s.save(ctx, p, tx); err != nil {
		return nil, err
	}

	s.logger.Info("user %s claimed daily bonus: %d coins, streak %d", userID, claim.Amount, claim.Streak)
	return claim, nil
}

// Activate puts an owned item into use.
func (s *Service) Activate(ctx context.Context, userID, itemID string) error {
	item, err := s.resolveItem(itemID)
	if err != nil {
		return err
	}

	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.activation.Activate(p, item, s.inventory, s.clk.Now()); err != nil {
		return err
	}

	return s.save(ctx, p)
}

// DeactivateSlot clears a singleton active slot (theme, avatar, effect).
func (s *Service) DeactivateSlot(ctx context.Context, userID string, itemType entities.ItemType) error {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.activation.DeactivateSlot(p, itemType); err != nil {
		return err
	}

	return s.save(ctx, p)
}

// DeactivatePowerup removes a powerup from the active set and clears its
// timer.
func (s *Service) DeactivatePowerup(ctx context.Context, userID, itemID string) error {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return err
	}

	s.activation.DeactivatePowerup(p, itemID)

	return s.save(ctx, p)
}

// IsActive reports whether itemID of the given type is in use right now.
func (s *Service) IsActive(ctx context.Context, userID, itemID string, itemType entities.ItemType) (bool, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return false, err
	}
	return s.activation.IsActive(p, itemID, itemType, s.clk.Now()), nil
}

// ActiveState returns the user's active slots and unexpired powerups.
func (s *Service) ActiveState(ctx context.Context, userID string) (entities.ActiveState, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return entities.ActiveState{}, err
	}
	return p.Active, nil
}

// ActivePowerups lists the user's unexpired powerups with remaining time.
func (s *Service) ActivePowerups(ctx context.Context, userID string) ([]activation.ActivePowerup, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.activation.ActivePowerups(p, s.clk.Now()), nil
}

// OwnedItems returns the user's inventory, optionally filtered by type,
// in purchase order.
func (s *Service) OwnedItems(ctx context.Context, userID string, itemType entities.ItemType) ([]*entities.OwnedItem, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, _, err := s.getOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if itemType == "" {
		return p.Inventory, nil
	}
	return s.inventory.ItemsByType(p, itemType), nil
}

// History returns the user's most recent ledger transactions, newest
// first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]*entities.Transaction, error) {
	txs, err := s.repo.GetTransactions(ctx, userID, limit)
	if err != nil {
		return nil, types.WrapError(types.ErrStorageError, "failed to load transactions", err)
	}
	return txs, nil
}

// Sweep purges the user's expired powerups and persists the result.
// Returns the expired item ids.
func (s *Service) Sweep(ctx context.Context, userID string) ([]string, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	p, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, types.WrapError(types.ErrStorageError, "failed to load profile", err)
	}

	expired := s.activation.Sweep(p, s.clk.Now())
	if len(expired) == 0 {
		return nil, nil
	}

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}

	return expired, nil
}

// SweepAll sweeps every persisted user. Used by the periodic sweep task;
// lazy expiry on queries keeps correctness even if this never runs.
func (s *Service) SweepAll(ctx context.Context) error {
	users, err := s.repo.ListUserIDs(ctx)
	if err != nil {
		return types.WrapError(types.ErrStorageError, "failed to list users", err)
	}

	for _, userID := range users {
		expired, err := s.Sweep(ctx, userID)
		if err != nil {
			s.logger.Warn("sweep failed for user %s: %v", userID, err)
			continue
		}
		if len(expired) > 0 {
			s.logger.Info("swept %d expired powerups for user %s", len(expired), userID)
		}
	}

	return nil
}
