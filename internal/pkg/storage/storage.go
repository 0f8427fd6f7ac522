package storage

import (
	"context"
	"io"
)

// Storage defines the minimal interface for file storage backends.
// Intentionally simple: put a file, delete a file, get its URL.
type Storage interface {
	// Put stores a file under the given key.
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes a file by key. Returns nil if the file doesn't exist.
	Delete(ctx context.Context, key string) error

	// URL returns the URL for a stored key. Local storage returns a
	// path relative to the serving host ("/uploads/<key>"); S3 returns
	// an absolute public URL.
	URL(key string) string
}

// Config holds backend settings for storage constructors
type Config struct {
	// Local
	BasePath string
	BaseURL  string

	// S3 / MinIO
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}
