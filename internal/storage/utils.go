package storage

import (
	"fmt"
	"path"
	"sort"
	"strings"
	"time"
)

// PagesPrefix is the top-level folder holding published pages.
const PagesPrefix = "pages"

// GeneratePageFolderPath generates a consistent folder path for a page.
// Format: pages/YYYY/MM/DD/YYYYMMDD-HHMMSS-slug, so lexical order within a day
// is chronological.
func GeneratePageFolderPath(slug string, timestamp time.Time) string {
	ts := timestamp.UTC()
	return fmt.Sprintf("%s/%04d/%02d/%02d/%s-%s",
		PagesPrefix, ts.Year(), ts.Month(), ts.Day(), ts.Format("20060102-150405"), Slugify(slug))
}

// Slugify lowercases s and collapses everything but letters and digits into
// single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "page"
	}
	return out
}

// CleanPath normalises a client supplied path and rejects anything that
// could escape the storage root.
func CleanPath(p string) (string, error) {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return "", fmt.Errorf("invalid file path %q", p)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", fmt.Errorf("invalid file path %q", p)
		}
	}
	return path.Clean(p), nil
}

// newestFirst sorts paths in reverse lexical order and applies limit.
func newestFirst(paths []string, limit int) []string {
	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	if limit > 0 && limit < len(paths) {
		paths = paths[:limit]
	}
	return paths
}

// GetContentType determines the MIME content type based on file extension
func GetContentType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".json":
		return "application/json"
	case ".js":
		return "application/javascript"
	case ".css":
		return "text/css"
	case ".txt":
		return "text/plain; charset=utf-8"
	case ".md":
		return "text/markdown"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
