package pages

import (
	"context"
	"fmt"
	"path"
	"time"

	jsoniter "github.com/json-iterator/go"

	"gchart/internal/logger"
	"gchart/internal/storage"
)

// SourceFile is stored next to each published index.html.
const SourceFile = "page.json"

// Published describes a stored page.
type Published struct {
	Path       string
	SourcePath string
	Result     *Result
}

// Publisher builds pages and writes them to a page store together with the
// page description they were built from.
type Publisher struct {
	builder *HTMLBuilder
	store   storage.PageStore
}

// NewPublisher creates a publisher over store.
func NewPublisher(builder *HTMLBuilder, store storage.PageStore) *Publisher {
	return &Publisher{builder: builder, store: store}
}

// Publish builds page and stores it under a folder named for ts. Nothing is
// stored when the build fails.
func (p *Publisher) Publish(ctx context.Context, page *Page, ts time.Time) (*Published, error) {
	result, err := p.builder.Build(page)
	if err != nil {
		return nil, err
	}

	source, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(page, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode page source: %w", err)
	}

	pagePath, err := p.store.StorePage(ctx, result.Title, []byte(result.HTML), ts)
	if err != nil {
		return nil, fmt.Errorf("failed to store page: %w", err)
	}
	sourcePath := path.Join(path.Dir(pagePath), SourceFile)
	if err := p.store.StoreFile(ctx, sourcePath, source); err != nil {
		return nil, fmt.Errorf("failed to store page source: %w", err)
	}

	log := p.builder.log.With(logger.Fields{"page_title": result.Title})
	log.Info("Page published", map[string]interface{}{
		"path":    pagePath,
		"charts":  result.Charts,
		"skipped": len(result.Skipped),
	})
	return &Published{Path: pagePath, SourcePath: sourcePath, Result: result}, nil
}
