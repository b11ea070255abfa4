// Package fsx abstracts file storage behind small read/write interfaces
// so services stay independent of the backing store.
package fsx

import (
	"context"
	"io"
)

// FileReader reads whole files from storage.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileSystem is the full storage surface used by upload handling.
type FileSystem interface {
	FileReader

	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
	DeleteFile(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)

	// Join builds a storage path from segments using the backend's
	// separator conventions.
	Join(parts ...string) string
}
