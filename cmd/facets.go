package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

// FacetsCommand creates the facets command
func FacetsCommand() *cli.Command {
	return &cli.Command{
		Name:  "facets",
		Usage: "Show facet names and their values across the collection",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "facet",
				Usage: "Show only this facet",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return showFacets(ctx, c.String("config"), c.String("facet"))
		},
	}
}

func showFacets(ctx context.Context, configPath, only string) error {
	catalog, _, err := loadCatalog(ctx, configPath)
	if err != nil {
		return err
	}

	names := catalog.FacetNames()
	if only != "" {
		if !catalog.HasFacet(only) {
			fmt.Println(formatNoData(fmt.Sprintf("No facet named %q", only)))
			return nil
		}
		names = []string{only}
	}

	if len(names) == 0 {
		fmt.Println(formatNoData("No facets in the collection"))
		return nil
	}

	for _, name := range names {
		values := catalog.UniqueValues(name)
		fmt.Println(formatHeader(fmt.Sprintf("%s (%d values)", titleCaser.String(name), len(values))))
		fmt.Printf("  %s\n", strings.Join(values, ", "))
	}
	return nil
}
