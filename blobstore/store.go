// Package blobstore stores sieve artifacts — serialised prime lists,
// segment bitmaps and VX6 gap files — as immutable named blobs. The
// artifacts are written once, read whole and validated against their
// embedded content hash by the format readers; stores never interpret
// the payload.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a named artifact does not exist.
// Implementations return an error satisfying errors.Is(err,
// ErrNotFound).
var ErrNotFound = errors.New("blobstore: not found")

// Store is an abstraction over artifact storage backends.
type Store interface {
	// Put writes an artifact atomically, replacing any previous
	// content under the same name.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a whole artifact.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes an artifact. Deleting a missing artifact is not
	// an error.
	Delete(ctx context.Context, name string) error

	// List returns the artifact names under the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
