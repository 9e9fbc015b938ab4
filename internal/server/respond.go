package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"gchart/internal/charts"
	"gchart/internal/pages"
	"gchart/internal/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("bad request")

func decodeJSON(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps an error to the HTTP status it is reported with.
func statusFor(err error) int {
	var fe *charts.FormatError
	var ue *charts.UnknownKindError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, charts.ErrEmptyElementID),
		errors.Is(err, pages.ErrDuplicateChartID),
		errors.As(err, &fe),
		errors.As(err, &ue):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("Request failed", err, map[string]interface{}{"path": r.URL.Path})
	}
	writeJSON(w, status, map[string]interface{}{
		"error":  err.Error(),
		"status": status,
	})
}
