package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/commdeck/commdeck/pkg/engine"
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search communications by keyword",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "filter",
				Usage: "Facet selection as facet:value (repeatable)",
			},
			&cli.StringFlag{
				Name:  "timeframe",
				Usage: "Relative window label (e.g. \"Last 3 Months\")",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort order: newest or oldest",
				Value: "newest",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of results",
				Value: 10,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			query := c.Args().First()
			return searchComms(ctx, c.String("config"), query, c.StringSlice("filter"),
				c.String("timeframe"), c.String("sort"), c.Int("limit"))
		},
	}
}

func searchComms(ctx context.Context, configPath, query string, filterFlags []string, timeframe, sortOrder string, limit int) error {
	catalog, _, err := loadCatalog(ctx, configPath)
	if err != nil {
		return err
	}

	sess := newSession(catalog, parseFilterFlags(filterFlags), query, timeframe, sortOrder)
	result := sess.FilteredData()
	visible := engine.Window(result, limit, 1, false)

	if len(visible) == 0 {
		fmt.Println(formatNoData(fmt.Sprintf("No results for %q", query)))
		return nil
	}

	fmt.Println(formatHeader(fmt.Sprintf("Results for %q (%d of %d)", query, len(visible), len(result))))
	for _, comm := range visible {
		fmt.Println(formatCard(comm))
	}

	return nil
}
