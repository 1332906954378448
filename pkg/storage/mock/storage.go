package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of storage.Store
type Store struct {
	mock.Mock
}

func New() *Store {
	return &Store{}
}

func (s *Store) Get(ctx context.Context, userID, key string) ([]byte, error) {
	args := s.Called(ctx, userID, key)
	if value, ok := args.Get(0).([]byte); ok {
		return value, args.Error(1)
	}
	return nil, args.Error(1)
}

func (s *Store) Set(ctx context.Context, userID, key string, value []byte) error {
	args := s.Called(ctx, userID, key, value)
	return args.Error(0)
}

func (s *Store) SetMany(ctx context.Context, userID string, values map[string][]byte) error {
	args := s.Called(ctx, userID, values)
	return args.Error(0)
}

func (s *Store) Users(ctx context.Context) ([]string, error) {
	args := s.Called(ctx)
	if users, ok := args.Get(0).([]string); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

func (s *Store) Close() error {
	args := s.Called()
	return args.Error(0)
}
