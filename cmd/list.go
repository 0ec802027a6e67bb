package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/commdeck/commdeck/pkg/engine"
)

// ListCommand creates the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List communications, filterable by facet and timeframe",
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
				Usage: "Maximum number of communications to show",
				Value: 20,
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Show the entire result set",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return listComms(ctx, c.String("config"), c.StringSlice("filter"),
				c.String("timeframe"), c.String("sort"), c.Int("limit"), c.Bool("all"))
		},
	}
}

func listComms(ctx context.Context, configPath string, filterFlags []string, timeframe, sortOrder string, limit int, all bool) error {
	catalog, _, err := loadCatalog(ctx, configPath)
	if err != nil {
		return err
	}

	sess := newSession(catalog, parseFilterFlags(filterFlags), "", timeframe, sortOrder)
	result := sess.FilteredData()
	visible := engine.Window(result, limit, 1, all)

	if len(visible) == 0 {
		fmt.Println(formatNoData("No communications match the current filters"))
		return nil
	}

	fmt.Println(formatHeader(fmt.Sprintf("Communications (%d of %d)", len(visible), len(result))))
	for _, comm := range visible {
		fmt.Println(formatCard(comm))
	}

	if filters := sess.ActiveFilters(); len(filters) > 0 {
		var parts []string
		for _, f := range filters {
			parts = append(parts, fmt.Sprintf("%s=%s", f.Facet, f.Value))
		}
		fmt.Printf("Active filters: %v\n", parts)
	}

	return nil
}
