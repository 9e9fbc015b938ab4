package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested file does not exist.
var ErrNotFound = errors.New("file not found")

// PageStore defines the storage operations for published pages
type PageStore interface {
	// Close closes the storage client
	Close() error

	// StorePage writes a rendered page and returns its index.html path
	StorePage(ctx context.Context, slug string, html []byte, timestamp time.Time) (string, error)

	// StoreFile stores a file at the specified path
	StoreFile(ctx context.Context, filePath string, fileData []byte) error

	// GetFile retrieves a file from the specified path
	GetFile(ctx context.Context, filePath string) ([]byte, error)

	// ListPages lists index.html paths, newest first
	ListPages(ctx context.Context, limit int) ([]string, error)
}
