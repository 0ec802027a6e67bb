// Package api exposes the catalog's filter/search/sort/paginate pipeline as
// a JSON API plus a WebSocket endpoint announcing catalog reloads. Requests
// are stateless: each one builds a fresh engine session over the shared
// catalog, applies the query parameters and returns the windowed result.
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/gzhttp"

	"github.com/commdeck/commdeck/pkg/engine"
	"github.com/commdeck/commdeck/pkg/log"
	"github.com/commdeck/commdeck/pkg/realtime"
)

var logger = log.ForService("api")

type Server struct {
	mu       sync.RWMutex
	catalog  *engine.Catalog
	pageSize int
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewServer creates an API server over a catalog. pageSize is the default
// window size when requests do not pass a limit; hub may be nil when no
// reload notifications are wanted.
func NewServer(catalog *engine.Catalog, pageSize int, hub *realtime.Hub) *Server {
	return &Server{
		catalog:  catalog,
		pageSize: pageSize,
		hub:      hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Catalog returns the catalog currently serving requests.
func (s *Server) Catalog() *engine.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// SetCatalog swaps in a rebuilt catalog. In-flight requests keep the
// snapshot they started with.
func (s *Server) SetCatalog(catalog *engine.Catalog) {
	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()
}

// PageSize returns the default window size.
func (s *Server) PageSize() int { return s.pageSize }

// session builds a fresh engine for one request and applies its parameters
// in the order the UI would: facet toggles, search, timeframe, sort.
func (s *Server) session(params ListParams) *engine.Engine {
	sess := s.Catalog().NewSession()
	for _, f := range params.Filters {
		sess.UpdateFilter(f.Facet, f.Value, true)
	}
	if params.Query != "" {
		sess.UpdateSearch(params.Query)
	}
	if params.Timeframe != "" {
		sess.SetTimeframe(engine.Timeframe(params.Timeframe))
	}
	if params.Sort != "" {
		sess.SetSortOrder(engine.SortOrder(params.Sort))
	}
	return sess
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, error, message string) {
	response := ErrorResponse{
		Error:   error,
		Message: message,
	}
	s.writeJSON(w, status, response)
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GzipMiddleware compresses responses for clients that accept it.
func GzipMiddleware(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
