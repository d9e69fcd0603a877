// Package storage holds the object store backends blobs are written to.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when the object does not exist.
var ErrNotFound = errors.New("object not found")

// ObjectStore stores blobs by path and hands out time-limited read URLs.
type ObjectStore interface {
	Upload(ctx context.Context, path string, r io.Reader, contentType string) error
	Delete(ctx context.Context, path string) error
	SignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
