package mock

import (
	"context"

	"github.com/fadedpez/eldorado/pkg/payment"
	"github.com/stretchr/testify/mock"
)

// Processor is a mock implementation of payment.Processor
type Processor struct {
	mock.Mock
}

func New() *Processor {
	return &Processor{}
}

func (p *Processor) Charge(ctx context.Context, amount int64, currency string, description string) (*payment.Result, error) {
	args := p.Called(ctx, amount, currency, description)
	if result, ok := args.Get(0).(*payment.Result); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}
