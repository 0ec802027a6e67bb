package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/commdeck/commdeck/pkg/core"
	"github.com/commdeck/commdeck/pkg/dates"
	"github.com/commdeck/commdeck/pkg/engine"
	"github.com/commdeck/commdeck/pkg/version"
)

func (s *Server) HandleComms(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r.URL.Query())

	// Numbers and filters are parsed leniently, but a present sort or
	// timeframe must be one of the fixed labels.
	if params.Sort != "" && params.Sort != string(engine.SortNewest) && params.Sort != string(engine.SortOldest) {
		s.writeError(w, http.StatusBadRequest, "invalid_sort", "sort must be \"newest\" or \"oldest\"")
		return
	}
	if params.Timeframe != "" && !validTimeframeLabel(params.Timeframe) {
		s.writeError(w, http.StatusBadRequest, "invalid_timeframe", "unknown timeframe label: "+params.Timeframe)
		return
	}

	limit := params.Limit
	if limit <= 0 {
		limit = s.pageSize
	}

	sess := s.session(params)
	result := sess.FilteredData()
	window := engine.Window(result, limit, params.Page, params.All)

	comms := make([]CommResponse, 0, len(window))
	for _, c := range window {
		comms = append(comms, toCommResponse(c))
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (len(result) + limit - 1) / limit
	}

	response := ListCommsResponse{
		Comms:         comms,
		Count:         len(comms),
		TotalCount:    len(result),
		Page:          params.Page,
		Limit:         limit,
		TotalPages:    totalPages,
		HasMore:       len(window) < len(result),
		Query:         params.Query,
		Timeframe:     string(sess.Timeframe()),
		Sort:          string(sess.SortOrder()),
		ActiveFilters: sess.ActiveFilters(),
	}
	if response.ActiveFilters == nil {
		response.ActiveFilters = []engine.ActiveFilter{}
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleFacets(w http.ResponseWriter, r *http.Request) {
	catalog := s.Catalog()

	var facets []FacetInfo
	for _, name := range catalog.FacetNames() {
		facets = append(facets, FacetInfo{
			Name:   name,
			Values: catalog.UniqueValues(name),
		})
	}

	response := ListFacetsResponse{
		Facets: facets,
		Count:  len(facets),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		// Lenient: bad limits just mean the default.
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	suggestions := s.Catalog().Index().Suggest(query, limit)
	if suggestions == nil {
		suggestions = []string{}
	}

	response := SuggestResponse{
		Query:       query,
		Suggestions: suggestions,
		Count:       len(suggestions),
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	catalog := s.Catalog()

	var oldest, newest time.Time
	for _, c := range catalog.Comms() {
		d, ok := dates.ParseCanonical(c.Date())
		if !ok {
			continue
		}
		if oldest.IsZero() || d.Before(oldest) {
			oldest = d
		}
		if newest.IsZero() || d.After(newest) {
			newest = d
		}
	}

	facets := make(map[string]int)
	for _, name := range catalog.FacetNames() {
		facets[name] = len(catalog.UniqueValues(name))
	}

	timeframes := make([]string, 0)
	for _, tf := range engine.Timeframes() {
		timeframes = append(timeframes, string(tf))
	}

	response := StatsResponse{
		TotalComms: catalog.Size(),
		Facets:     facets,
		Timeframes: timeframes,
	}
	if !oldest.IsZero() {
		response.OldestDate = oldest.Format("2006-01-02")
		response.NewestDate = newest.Format("2006-01-02")
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, response)
}

// HandleReloadWS upgrades the connection and pushes catalog reload events
// until the client goes away. Without a hub the endpoint is a 404.
func (s *Server) HandleReloadWS(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.NotFound(w, r)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("upgrading reload socket: %v", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Debugf("closing reload socket: %v", err)
		}
	}()

	id, events := s.hub.Register()
	defer s.hub.Unregister(id)

	// Read pump: we never expect client messages, but reading is how we
	// notice the peer closed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func validTimeframeLabel(label string) bool {
	for _, tf := range engine.Timeframes() {
		if string(tf) == label {
			return true
		}
	}
	return false
}

func toCommResponse(c *core.Comm) CommResponse {
	facets := make(map[string][]string)
	for _, name := range c.FacetNames() {
		if fv, ok := c.Facet(name); ok {
			facets[name] = fv.Values()
		}
	}
	return CommResponse{
		ID:             c.ID(),
		Title:          c.Title(),
		Summary:        c.Summary(),
		Date:           c.Date(),
		NormalizedDate: dates.Normalize(c.Date()),
		Facets:         facets,
	}
}
