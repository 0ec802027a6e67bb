package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/commdeck/commdeck/pkg/dates"
	"github.com/commdeck/commdeck/pkg/render"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show collection statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			return showStats(ctx, c.String("config"))
		},
	}
}

func showStats(ctx context.Context, configPath string) error {
	catalog, cfg, err := loadCatalog(ctx, configPath)
	if err != nil {
		return err
	}

	fmt.Printf("📊 Collection Statistics\n")
	fmt.Printf("═══════════════════════\n\n")
	fmt.Printf("Generated: %s\n", render.FormatTime(time.Now()))
	fmt.Printf("Items document: %s\n", cfg.Items)
	fmt.Printf("Total communications: %d\n", catalog.Size())
	fmt.Printf("Summary indexing: %v\n\n", cfg.IndexSummaries)

	valid := 0
	oldest, newest := "", ""
	for _, c := range catalog.Comms() {
		d, ok := dates.ParseCanonical(c.Date())
		if !ok {
			continue
		}
		valid++
		iso := d.Format("2006-01-02")
		if oldest == "" || iso < oldest {
			oldest = iso
		}
		if newest == "" || iso > newest {
			newest = iso
		}
	}
	fmt.Printf("Dated communications: %d (%d unparsable)\n", valid, catalog.Size()-valid)
	if oldest != "" {
		fmt.Printf("Date range: %s to %s\n", oldest, newest)
	}

	names := catalog.FacetNames()
	if len(names) == 0 {
		fmt.Printf("\nNo facets in the collection.\n")
		return nil
	}

	fmt.Printf("\nFacets:\n")
	fmt.Printf("───────\n")
	for _, name := range names {
		fmt.Printf("📁 %s: %d values\n", name, len(catalog.UniqueValues(name)))
	}

	return nil
}
