package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"gchart/internal/logger"
)

// GCSClient handles Google Cloud Storage operations
type GCSClient struct {
	client    *storage.Client
	bucket    string
	projectID string
	log       *logger.Logger
}

// NewGCSClient creates a new GCS client. projectID is recorded on every
// stored object and log entry; it may be empty.
func NewGCSClient(ctx context.Context, projectID, bucketName string) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	g := &GCSClient{
		client:    client,
		bucket:    bucketName,
		projectID: projectID,
		log: logger.GetGlobalLogger().WithComponent("storage").With(logger.Fields{
			"bucket":  bucketName,
			"project": projectID,
		}),
	}
	g.log.Info("GCS page store ready")
	return g, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StorePage uploads html as index.html in a new page folder.
func (g *GCSClient) StorePage(ctx context.Context, slug string, html []byte, timestamp time.Time) (string, error) {
	pagePath := path.Join(GeneratePageFolderPath(slug, timestamp), "index.html")
	if err := g.StoreFile(ctx, pagePath, html); err != nil {
		return "", err
	}
	return pagePath, nil
}

// StoreFile uploads a file to the bucket
func (g *GCSClient) StoreFile(ctx context.Context, filePath string, fileData []byte) error {
	objectPath, err := CleanPath(filePath)
	if err != nil {
		return err
	}

	writer := g.client.Bucket(g.bucket).Object(objectPath).NewWriter(ctx)
	writer.ContentType = GetContentType(objectPath)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = g.objectMetadata(time.Now())

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	g.log.Info("File stored", map[string]interface{}{
		"object": objectPath,
		"bytes":  len(fileData),
	})
	return nil
}

func (g *GCSClient) objectMetadata(ts time.Time) map[string]string {
	md := map[string]string{
		"generated-at": ts.UTC().Format(time.RFC3339),
	}
	if g.projectID != "" {
		md["gcp-project"] = g.projectID
	}
	return md
}

// GetFile downloads a file from the bucket
func (g *GCSClient) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	objectPath, err := CleanPath(filePath)
	if err != nil {
		return nil, err
	}

	reader, err := g.client.Bucket(g.bucket).Object(objectPath).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, objectPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", objectPath, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", objectPath, err)
	}
	return fileData, nil
}

// ListPages lists published pages, newest first
func (g *GCSClient) ListPages(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: PagesPrefix + "/"})

	var pagePaths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		if strings.HasSuffix(attrs.Name, "/index.html") {
			pagePaths = append(pagePaths, attrs.Name)
		}
	}

	return newestFirst(pagePaths, limit), nil
}
