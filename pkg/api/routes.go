package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/comms", s.HandleComms)
	mux.HandleFunc("GET /api/facets", s.HandleFacets)
	mux.HandleFunc("GET /api/suggest", s.HandleSuggest)
	mux.HandleFunc("GET /api/stats", s.HandleStats)
	mux.HandleFunc("GET /health", s.HandleHealth)
	mux.HandleFunc("GET /ws/reload", s.HandleReloadWS)
}
