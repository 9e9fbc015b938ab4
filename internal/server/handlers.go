package server

import (
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"gchart/internal/charts"
	"gchart/internal/pages"
	"gchart/internal/storage"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ContainerRequest is the body of POST /api/container.
type ContainerRequest struct {
	ElementID  string            `json:"elementId"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// VisualizeRequest is the body of POST /api/visualize.
type VisualizeRequest struct {
	ElementID string              `json:"elementId"`
	Request   charts.ChartRequest `json:"request"`
}

// VisualizeResponse carries the generated script. Supported is false when the
// dispatcher has no renderer for the kind; Script is then empty.
type VisualizeResponse struct {
	Script    string `json:"script"`
	Supported bool   `json:"supported"`
}

// KindInfo describes one chart kind for GET /api/kinds.
type KindInfo struct {
	Kind        charts.Kind `json:"kind"`
	Constructor string      `json:"constructor"`
	Module      string      `json:"module"`
	Supported   bool        `json:"supported"`
}

// PublishResponse describes a stored page.
type PublishResponse struct {
	Path    string   `json:"path"`
	URL     string   `json:"url"`
	Source  string   `json:"source"`
	Charts  int      `json:"charts"`
	Skipped []string `json:"skipped"`
}

// HandleRoot redirects to the most recently published page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	latest, err := s.Storage.ListPages(r.Context(), 1)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(latest) == 0 {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "no pages published yet",
			"publish": "POST /api/pages",
		})
		return
	}
	http.Redirect(w, r, "/"+latest[0], http.StatusFound)
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"version":   s.Settings.Version,
		"storage":   s.Config.StorageBackend,
	})
}

// HandleKinds lists the chart kinds and whether the dispatcher renders them
func (s *Server) HandleKinds(w http.ResponseWriter, r *http.Request) {
	gen := charts.NewGenerator(charts.WithVisualizationVersion(s.Settings.VisualizationVersion))

	var kinds []KindInfo
	for _, kind := range charts.Kinds() {
		desc, err := charts.LookupKind(kind)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		kinds = append(kinds, KindInfo{
			Kind:        kind,
			Constructor: desc.Constructor,
			Module:      desc.Module,
			Supported:   gen.Supports(kind),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"kinds": kinds})
}

// HandleContainer renders a chart container element
func (s *Server) HandleContainer(w http.ResponseWriter, r *http.Request) {
	var req ContainerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	gen := charts.NewGenerator()
	html, err := gen.RenderContainer(req.ElementID, req.Attributes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"html": html})
}

// HandleVisualize renders the script for one chart
func (s *Server) HandleVisualize(w http.ResponseWriter, r *http.Request) {
	var req VisualizeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	gen := charts.NewGenerator(charts.WithVisualizationVersion(s.Settings.VisualizationVersion))
	script, err := gen.Visualize(req.ElementID, req.Request)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, VisualizeResponse{
		Script:    script,
		Supported: gen.Supports(req.Request.Kind),
	})
}

// HandlePreview renders a page without storing it
func (s *Server) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var page pages.Page
	if err := decodeJSON(r, &page); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := pages.NewHTMLBuilder(s.Settings).Build(&page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(result.HTML))
}

// HandlePublish renders a page and stores it with its source
func (s *Server) HandlePublish(w http.ResponseWriter, r *http.Request) {
	var page pages.Page
	if err := decodeJSON(r, &page); err != nil {
		s.writeError(w, r, err)
		return
	}

	publisher := pages.NewPublisher(pages.NewHTMLBuilder(s.Settings), s.Storage)
	pub, err := publisher.Publish(r.Context(), &page, s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	skipped := pub.Result.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	writeJSON(w, http.StatusCreated, PublishResponse{
		Path:    pub.Path,
		URL:     "/" + pub.Path,
		Source:  "/" + pub.SourcePath,
		Charts:  pub.Result.Charts,
		Skipped: skipped,
	})
}

// HandleListPages lists recently published pages
func (s *Server) HandleListPages(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	paths, err := s.Storage.ListPages(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"pages": paths,
		"count": len(paths),
		"limit": limit,
	})
}

// HandleFile serves stored page files
func (s *Server) HandleFile(w http.ResponseWriter, r *http.Request) {
	rest := chi.URLParam(r, "*")
	if path.Ext(rest) == "" {
		rest = strings.TrimSuffix(rest, "/") + "/index.html"
	}
	filePath, err := storage.CleanPath(storage.PagesPrefix + "/" + strings.TrimPrefix(rest, "/"))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	data, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", storage.GetContentType(filePath))
	w.Write(data)
}
