// Package store abstracts the backing object store that holds episode media.
// The delivery path needs exactly three capabilities from it: object size
// lookup, whole-object streaming, and partial reads of an exact byte window.
package store

import (
	"context"
	"errors"
	"io"
)

var (
	// ErrObjectNotFound distinguishes "object absent" (a 404 to the client)
	// from an unavailable or erroring store (a 5xx).
	ErrObjectNotFound = errors.New("object not found")

	ErrEmptyKey   = errors.New("key cannot be empty")
	ErrInvalidKey = errors.New("key contains invalid characters")
)

// ObjectInfo holds per-object metadata. It is fetched on demand and never
// cached, so the size always reflects the currently stored object.
type ObjectInfo struct {
	Size int64
}

// ObjectStore is the read-only interface the delivery handler consumes.
// Implementations must support true partial reads: GetRange returns a reader
// over exactly the requested window without materializing the whole object.
type ObjectStore interface {
	// Stat returns metadata for the object at key.
	Stat(ctx context.Context, key string) (ObjectInfo, error)

	// Get returns a reader over the whole object.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// GetRange returns a reader over length bytes starting at offset.
	GetRange(ctx context.Context, key string, offset, length int64) (io.ReadCloser, error)
}
