package object

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the requested key does not exist in the store.
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the contract for reading and writing reference documents.
type ObjectStore interface {
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
}
