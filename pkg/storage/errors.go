package storage

import "errors"

var (
	// ErrKeyNotFound is returned by Get when no value exists for the key.
	ErrKeyNotFound = errors.New("key not found")
)
