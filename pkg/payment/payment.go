package payment

import "context"

// Result is the outcome of an already-authorized real-money charge.
type Result struct {
	Success       bool
	TransactionID string
}

// Processor charges real money through an external gateway. The engine
// never initiates charges itself; purchase flows for real-currency items
// accept a Result produced by the gateway as a precondition.
type Processor interface {
	Charge(ctx context.Context, amount int64, currency string, description string) (*Result, error)
}
