package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gchart/internal/config"
)

func TestNewPageStoreLocal(t *testing.T) {
	cfg := &config.Config{
		StorageBackend: config.BackendLocal,
		LocalPagesDir:  filepath.Join(t.TempDir(), "site"),
	}

	store, err := NewPageStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &LocalStorageClient{}, store)
}

func TestNewPageStoreLocalDefaultDir(t *testing.T) {
	chdir(t, t.TempDir())

	store, err := NewPageStore(context.Background(), &config.Config{})
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, "pages", store.(*LocalStorageClient).baseDir)
}

func TestNewPageStoreGCS(t *testing.T) {
	cfg := &config.Config{StorageBackend: config.BackendGCS, GCPProjectID: "test-project", GCSBucket: "test-bucket"}

	// Without credentials client creation may fail; both outcomes are valid.
	store, err := NewPageStore(context.Background(), cfg)
	if err != nil {
		t.Logf("GCS client creation failed in test environment: %v", err)
		return
	}
	defer store.Close()
	require.IsType(t, &GCSClient{}, store)
	assert.Equal(t, "test-project", store.(*GCSClient).projectID)
}

func TestNewPageStoreUnsupported(t *testing.T) {
	_, err := NewPageStore(context.Background(), &config.Config{StorageBackend: "s3"})
	assert.EqualError(t, err, "unsupported storage backend: s3")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
