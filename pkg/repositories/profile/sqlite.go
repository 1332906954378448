package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/eldorado/pkg/entities"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite table schemas
const (
	createProfilesTableSQL = `
	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		coins INTEGER NOT NULL DEFAULT 0,
		gems INTEGER NOT NULL DEFAULT 0,
		inventory TEXT NOT NULL DEFAULT '[]',
		active_state TEXT NOT NULL DEFAULT '{}',
		powerup_timers TEXT NOT NULL DEFAULT '{}',
		daily_bonus TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`

	createTransactionsTableSQL = `
	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		coin_delta INTEGER NOT NULL,
		gem_delta INTEGER NOT NULL,
		reason TEXT,
		timestamp TEXT NOT NULL,
		coins_after INTEGER NOT NULL,
		gems_after INTEGER NOT NULL,
		FOREIGN KEY (user_id) REFERENCES profiles(user_id)
	)`

	createTransactionIndexesSQL = `
	CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id);
	CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp DESC)
	`
)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	// Ensure directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	for _, schema := range []string{createProfilesTableSQL, createTransactionsTableSQL, createTransactionIndexesSQL} {
		if _, err := db.Exec(schema); err != nil {
			db.Close()
			return nil, fmt.Errorf("error creating schema: %w", err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

// GetProfile retrieves a profile by user ID
func (r *SQLiteRepository) GetProfile(ctx context.Context, userID string) (*entities.Profile, error) {
	query := `
		SELECT user_id, coins, gems, inventory, active_state, powerup_timers, daily_bonus, created_at, updated_at
		FROM profiles WHERE user_id = ?
	`

	var (
		p                    entities.Profile
		inventoryJSON        string
		activeJSON           string
		timersJSON           string
		bonusJSON            string
		createdAt, updatedAt string
	)

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.Balance.Coins,
		&p.Balance.Gems,
		&inventoryJSON,
		&activeJSON,
		&timersJSON,
		&bonusJSON,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting profile: %w", err)
	}

	if err := json.Unmarshal([]byte(inventoryJSON), &p.Inventory); err != nil {
		return nil, fmt.Errorf("error parsing inventory: %w", err)
	}
	if err := json.Unmarshal([]byte(activeJSON), &p.Active); err != nil {
		return nil, fmt.Errorf("error parsing active state: %w", err)
	}
	if err := json.Unmarshal([]byte(timersJSON), &p.Timers); err != nil {
		return nil, fmt.Errorf("error parsing powerup timers: %w", err)
	}
	if err := json.Unmarshal([]byte(bonusJSON), &p.DailyBonus); err != nil {
		return nil, fmt.Errorf("error parsing daily bonus: %w", err)
	}
	if p.Inventory == nil {
		p.Inventory = make([]*entities.OwnedItem, 0)
	}
	if p.Timers == nil {
		p.Timers = make(entities.PowerupTimers)
	}

	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("error parsing created_at %q: %w", createdAt, err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("error parsing updated_at %q: %w", updatedAt, err)
	}

	return &p, nil
}

// SaveProfile creates or updates a profile
func (r *SQLiteRepository) SaveProfile(ctx context.Context, profile *entities.Profile) error {
	profile.UpdatedAt = time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}

	inventoryJSON, err := json.Marshal(profile.Inventory)
	if err != nil {
		return fmt.Errorf("error marshaling inventory: %w", err)
	}
	activeJSON, err := json.Marshal(profile.Active)
	if err != nil {
		return fmt.Errorf("error marshaling active state: %w", err)
	}
	timersJSON, err := json.Marshal(profile.Timers)
	if err != nil {
		return fmt.Errorf("error marshaling powerup timers: %w", err)
	}
	bonusJSON, err := json.Marshal(profile.DailyBonus)
	if err != nil {
		return fmt.Errorf("error marshaling daily bonus: %w", err)
	}

	query := `
		INSERT INTO profiles (user_id, coins, gems, inventory, active_state, powerup_timers, daily_bonus, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			coins = excluded.coins,
			gems = excluded.gems,
			inventory = excluded.inventory,
			active_state = excluded.active_state,
			powerup_timers = excluded.powerup_timers,
			daily_bonus = excluded.daily_bonus,
			updated_at = excluded.updated_at
	`

	_, err = r.db.ExecContext(ctx, query,
		profile.UserID,
		profile.Balance.Coins,
		profile.Balance.Gems,
		string(inventoryJSON),
		string(activeJSON),
		string(timersJSON),
		string(bonusJSON),
		profile.CreatedAt.Format(time.RFC3339Nano),
		profile.UpdatedAt.Format(time.RFC3339Nano),
	)

	if err != nil {
		return fmt.Errorf("error saving profile: %w", err)
	}

	return nil
}

// AddTransaction records a new transaction
func (r *SQLiteRepository) AddTransaction(ctx context.Context, tx *entities.Transaction) error {
	// Generate ID if not provided
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}

	if tx.Timestamp.IsZero() {
		tx.Timestamp = time.Now()
	}

	query := `
		INSERT INTO transactions (id, user_id, coin_delta, gem_delta, reason, timestamp, coins_after, gems_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID,
		tx.UserID,
		tx.CoinDelta,
		tx.GemDelta,
		tx.Reason,
		tx.Timestamp.Format(time.RFC3339Nano),
		tx.CoinsAfter,
		tx.GemsAfter,
	)

	if err != nil {
		return fmt.Errorf("error adding transaction: %w", err)
	}

	return nil
}

// GetTransactions retrieves recent transactions for a user, newest first
func (r *SQLiteRepository) GetTransactions(ctx context.Context, userID string, limit int) ([]*entities.Transaction, error) {
	query := `
		SELECT id, user_id, coin_delta, gem_delta, reason, timestamp, coins_after, gems_after
		FROM transactions
		WHERE user_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*entities.Transaction

	for rows.Next() {
		var tx entities.Transaction
		var timestamp string

		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.CoinDelta,
			&tx.GemDelta,
			&tx.Reason,
			&timestamp,
			&tx.CoinsAfter,
			&tx.GemsAfter,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}

		if tx.Timestamp, err = time.Parse(time.RFC3339Nano, timestamp); err != nil {
			return nil, fmt.Errorf("error parsing timestamp %q: %w", timestamp, err)
		}

		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}

// ListUserIDs lists every user with a stored profile
func (r *SQLiteRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("error querying profiles: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("error scanning profile row: %w", err)
		}
		users = append(users, userID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return users, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
