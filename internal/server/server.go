package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gchart/internal/config"
	"gchart/internal/logger"
	"gchart/internal/pages"
	"gchart/internal/storage"
)

// Server represents the chart rendering HTTP service
type Server struct {
	Config   *config.Config
	Storage  storage.PageStore
	Settings pages.Settings

	log *logger.Logger
	now func() time.Time
}

// NewServer creates a new server instance around an opened page store.
func NewServer(cfg *config.Config, store storage.PageStore) *Server {
	return &Server{
		Config:   cfg,
		Storage:  store,
		Settings: pages.SettingsFromConfig(cfg),
		log:      logger.GetGlobalLogger().WithComponent("server"),
		now:      time.Now,
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/kinds", s.HandleKinds)
		r.Post("/container", s.HandleContainer)
		r.Post("/visualize", s.HandleVisualize)
		r.Post("/preview", s.HandlePreview)
		r.Post("/pages", s.HandlePublish)
		r.Get("/pages", s.HandleListPages)
	})

	r.Get("/pages/*", s.HandleFile)
	r.Get("/", s.HandleRoot)

	return r
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("Request served", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"bytes":       ww.BytesWritten(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
		})
	})
}
