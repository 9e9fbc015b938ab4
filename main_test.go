package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gchart/internal/config"
)

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{
		Port:                 "8080",
		StorageBackend:       config.BackendLocal,
		LocalPagesDir:        filepath.Join(t.TempDir(), "site"),
		VisualizationVersion: "1",
	}

	httpServer, srv, err := newHTTPServer(context.Background(), cfg)
	require.NoError(t, err)
	defer srv.Close()
	assert.Equal(t, ":8080", httpServer.Addr)

	rr := httptest.NewRecorder()
	httpServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"healthy"`)

	rr = httptest.NewRecorder()
	body := strings.NewReader(`{"elementId":"c","request":{"kind":"pie","columns":[{"dataType":"string","label":"A"},{"dataType":"number","label":"B"}],"rows":[["x",1]]}}`)
	httpServer.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/visualize", body))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "arrayToDataTable")
}

func TestNewHTTPServerUnsupportedBackend(t *testing.T) {
	_, _, err := newHTTPServer(context.Background(), &config.Config{StorageBackend: "ftp"})
	assert.Error(t, err)
}
