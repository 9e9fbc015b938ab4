package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"
)

// LocalStorageClient handles local file system storage operations
type LocalStorageClient struct {
	baseDir string
}

// NewLocalStorageClient creates a new local storage client
func NewLocalStorageClient(baseDir string) (*LocalStorageClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}
	return &LocalStorageClient{baseDir: baseDir}, nil
}

// Close is a no-op for local storage
func (l *LocalStorageClient) Close() error {
	return nil
}

// StorePage writes html as index.html in a new page folder.
func (l *LocalStorageClient) StorePage(ctx context.Context, slug string, html []byte, timestamp time.Time) (string, error) {
	pagePath := path.Join(GeneratePageFolderPath(slug, timestamp), "index.html")
	if err := l.StoreFile(ctx, pagePath, html); err != nil {
		return "", err
	}
	return pagePath, nil
}

// StoreFile stores a file below the base directory
func (l *LocalStorageClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	clean, err := CleanPath(filePath)
	if err != nil {
		return err
	}
	fullPath := filepath.Join(l.baseDir, filepath.FromSlash(clean))

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(fullPath, fileData, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}
	return nil
}

// GetFile retrieves a file from below the base directory
func (l *LocalStorageClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	clean, err := CleanPath(filePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(l.baseDir, filepath.FromSlash(clean)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", clean, err)
	}
	return data, nil
}

// ListPages lists published pages, newest first
func (l *LocalStorageClient) ListPages(ctx context.Context, limit int) ([]string, error) {
	root := filepath.Join(l.baseDir, PagesPrefix)
	var pagePaths []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && d.Name() == "index.html" {
			rel, relErr := filepath.Rel(l.baseDir, p)
			if relErr != nil {
				return relErr
			}
			pagePaths = append(pagePaths, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk pages directory: %w", err)
	}

	return newestFirst(pagePaths, limit), nil
}
