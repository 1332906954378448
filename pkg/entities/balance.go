package entities

import (
	"time"
)

// Balance holds a player's virtual currency. Both fields are invariantly
// non-negative; the ledger clamps rather than underflows.
type Balance struct {
	Coins int64 `json:"coins"`
	Gems  int64 `json:"gems"`
}

// Transaction represents a single balance mutation. Entries are append-only
// and record the deltas as requested, before any clamping, so the audit
// trail shows what the caller asked for.
type Transaction struct {
	ID         string    `json:"id"`         // Unique identifier
	UserID     string    `json:"user_id"`    // User associated with the transaction
	CoinDelta  int64     `json:"coin_delta"` // Requested coin delta (pre-clamp)
	GemDelta   int64     `json:"gem_delta"`  // Requested gem delta (pre-clamp)
	Reason     string    `json:"reason"`     // Human-readable description
	Timestamp  time.Time `json:"timestamp"`  // When the transaction occurred
	CoinsAfter int64     `json:"coins_after"`
	GemsAfter  int64     `json:"gems_after"`
}
