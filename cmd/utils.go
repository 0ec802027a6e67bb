package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/commdeck/commdeck/pkg/api"
	"github.com/commdeck/commdeck/pkg/config"
	"github.com/commdeck/commdeck/pkg/engine"
	"github.com/commdeck/commdeck/pkg/source"
)

// loadCatalog loads the configured items document and builds a catalog over
// it. Shared by every command that needs the collection.
func loadCatalog(ctx context.Context, configPath string) (*engine.Catalog, *config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	comms, err := source.Load(ctx, cfg.Items)
	if err != nil {
		return nil, nil, fmt.Errorf("loading items: %w", err)
	}

	return engine.NewCatalog(comms, cfg.IndexSummaries), cfg, nil
}

// parseFilterFlags converts repeated --filter "facet:value" flags into
// selections, skipping malformed entries.
func parseFilterFlags(raw []string) []api.FilterSelection {
	var filters []api.FilterSelection
	for _, entry := range raw {
		facet, value, ok := strings.Cut(entry, ":")
		if !ok || facet == "" || value == "" {
			continue
		}
		filters = append(filters, api.FilterSelection{Facet: facet, Value: value})
	}
	return filters
}

// newSession builds a session over the catalog with the given state
// applied; the shared path behind list and search.
func newSession(catalog *engine.Catalog, filters []api.FilterSelection, query, timeframe, sortOrder string) *engine.Engine {
	sess := catalog.NewSession()
	for _, f := range filters {
		sess.UpdateFilter(f.Facet, f.Value, true)
	}
	if query != "" {
		sess.UpdateSearch(query)
	}
	if timeframe != "" {
		sess.SetTimeframe(engine.Timeframe(timeframe))
	}
	if sortOrder != "" {
		sess.SetSortOrder(engine.SortOrder(sortOrder))
	}
	return sess
}
