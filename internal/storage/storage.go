// Package storage is the resume blob-store boundary: callers hand over raw
// file content and keep only the returned URL.
package storage

import (
	"context"
	"io"
)

type BlobStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}
