// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider
// (MinIO, DigitalOcean Spaces, AWS S3).
package storage

import (
	"context"
	"io"
)

// PutOptions carries the per-object metadata recorded alongside the blob.
type PutOptions struct {
	// ContentType is stored as the object's Content-Type header.
	ContentType string
	// ContentDisposition, when non-empty, is stored as the object's
	// Content-Disposition header.
	ContentDisposition string
	// UserID is the uploader's subject, recorded as object metadata.
	UserID string
}

// Storage is the interface for writing objects to the blob store.
type Storage interface {
	// Put streams data to the store under the given key with public-read
	// access. size must be the exact byte count, or -1 when unknown.
	Put(ctx context.Context, key string, reader io.Reader, size int64, opts PutOptions) error
}
