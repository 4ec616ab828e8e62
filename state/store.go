// Package state persists small per-tenant UI state blobs behind an explicit
// storage adapter, instead of globals mirrored into browser local storage.
package state

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("state: key not found")

// Store is the key-value adapter for UI state. Implementations must be safe
// for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
