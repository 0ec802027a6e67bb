package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// SuggestCommand creates the suggest command
func SuggestCommand() *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "Show search suggestions for a prefix",
		ArgsUsage: "<prefix>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of suggestions",
				Value: 5,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return suggestTokens(ctx, c.String("config"), c.Args().First(), c.Int("limit"))
		},
	}
}

func suggestTokens(ctx context.Context, configPath, prefix string, limit int) error {
	catalog, _, err := loadCatalog(ctx, configPath)
	if err != nil {
		return err
	}

	suggestions := catalog.Index().Suggest(prefix, limit)
	if len(suggestions) == 0 {
		fmt.Println(formatNoData(fmt.Sprintf("No suggestions for %q", prefix)))
		return nil
	}

	for _, s := range suggestions {
		fmt.Println(s)
	}
	return nil
}
