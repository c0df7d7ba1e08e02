// Package storage provides the durable key-value storage the session stores
// write through to. Collections are serialized as whole JSON blobs under
// fixed keys; there is no incremental patching.
package storage

import "context"

// KV is the interface for durable key-value storage backends.
type KV interface {
	// Get retrieves the blob stored under key. Returns an error wrapping
	// errors.ErrNotFound when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the blob under key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
