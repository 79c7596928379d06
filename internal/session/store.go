// Package session keeps per-user state, such as the active character, for
// the lifetime of the process.
package session

import "context"

// Store is a keyed state store.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
	NewID() string
}
