package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"odsearch/internal/config"
	"odsearch/internal/eventbus"
	"odsearch/internal/logger"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the config file",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the default config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the config (defaults to --config or the user config dir)",
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing file",
					},
				},
				Action: configInitAction,
			},
			{
				Name:   "path",
				Usage:  "Print the config file location",
				Action: configPathAction,
			},
		},
	}
}

func configPath(c *cli.Context) string {
	if p := c.String("path"); p != "" {
		return p
	}
	return config.NewConfigService(c.String("config")).Path()
}

func configInitAction(c *cli.Context) error {
	path := configPath(c)
	if _, err := os.Stat(path); err == nil && !c.Bool("force") {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	log, err := logger.NewLogger(c.String("log-file"), c.String("log-level"))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	bus := eventbus.New(log)
	defer bus.Close()

	if err := config.NewConfigServiceWithBus(path, bus).Save(config.DefaultConfig()); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "Wrote %s\n", path)
	return err
}

func configPathAction(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, configPath(c))
	return err
}
