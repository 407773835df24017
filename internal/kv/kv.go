// Package kv provides the opaque key-value substrate the ledger is persisted
// on. Implementations must be safe for concurrent use.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is an asynchronous key-to-value mapping. Values are opaque bytes;
// the ledger layer owns their encoding.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
}
