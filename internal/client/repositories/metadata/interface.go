// Package metadata is the client's small key/value store. It holds the
// access token and its bookkeeping.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns the value stored under key; found is false when the key
	// has never been set or was deleted.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
}
