package api

import (
	"time"

	"github.com/commdeck/commdeck/pkg/engine"
)

type CommResponse struct {
	ID      string              `json:"id"`
	Title   string              `json:"title"`
	Summary string              `json:"summary,omitempty"`
	Date    string              `json:"date"`
	// NormalizedDate is the canonical YYYY-MM-DD form, or the raw string
	// when the date is unparsable.
	NormalizedDate string              `json:"normalized_date"`
	Facets         map[string][]string `json:"facets,omitempty"`
}

type ListCommsResponse struct {
	Comms         []CommResponse        `json:"comms"`
	Count         int                   `json:"count"`
	TotalCount    int                   `json:"total_count"`
	Page          int                   `json:"page"`
	Limit         int                   `json:"limit"`
	TotalPages    int                   `json:"total_pages"`
	HasMore       bool                  `json:"has_more"`
	Query         string                `json:"query,omitempty"`
	Timeframe     string                `json:"timeframe"`
	Sort          string                `json:"sort"`
	ActiveFilters []engine.ActiveFilter `json:"active_filters"`
}

type FacetInfo struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ListFacetsResponse struct {
	Facets []FacetInfo `json:"facets"`
	Count  int         `json:"count"`
}

type SuggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
	Count       int      `json:"count"`
}

type StatsResponse struct {
	TotalComms int            `json:"total_comms"`
	OldestDate string         `json:"oldest_date,omitempty"`
	NewestDate string         `json:"newest_date,omitempty"`
	Facets     map[string]int `json:"facets"`
	Timeframes []string       `json:"timeframes"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
