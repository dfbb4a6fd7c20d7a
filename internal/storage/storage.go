// Package storage wraps S3-compatible object storage used for uploaded images.
package storage

import (
	"context"
	"io"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known, or -1.
type PutObjectOptions struct {
	Size        int64
	ContentType string
}

// ObjectInfo describes a stored object and where clients can fetch it.
type ObjectInfo struct {
	Key  string
	Size int64
	URL  string
}

// Storage is the object storage client used by the services.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error
}
