package storage

import (
	"context"
	"fmt"

	"gchart/internal/config"
)

// NewPageStore creates a page store for the configured backend
func NewPageStore(ctx context.Context, cfg *config.Config) (PageStore, error) {
	switch cfg.StorageBackend {
	case config.BackendLocal, "":
		pagesDir := cfg.LocalPagesDir
		if pagesDir == "" {
			pagesDir = "pages"
		}
		localClient, err := NewLocalStorageClient(pagesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage client: %w", err)
		}
		return localClient, nil

	case config.BackendGCS:
		gcsClient, err := NewGCSClient(ctx, cfg.GCPProjectID, cfg.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize GCS client: %w", err)
		}
		return gcsClient, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", cfg.StorageBackend)
	}
}
