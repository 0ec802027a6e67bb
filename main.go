package main

import (
	"context"
	stdlog "log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/commdeck/commdeck/cmd"
	"github.com/commdeck/commdeck/pkg/config"
	"github.com/commdeck/commdeck/pkg/log"
)

func main() {
	app := &cli.Command{
		Name:  "commdeck",
		Usage: "Browse, filter and search product communications",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: getDefaultConfigPathOrExit(),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("debug") {
				log.SetGlobalDebug(true)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.ListCommand(),
			cmd.SearchCommand(),
			cmd.SuggestCommand(),
			cmd.FacetsCommand(),
			cmd.StatsCommand(),
			cmd.ServeCommand(),
			cmd.VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		stdlog.Fatal(err)
	}
}

func getDefaultConfigPathOrExit() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		stdlog.Fatalf("Failed to get default config path: %v", err)
	}
	return path
}
