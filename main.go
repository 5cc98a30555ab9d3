package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"odsearch/internal/eventbus"
	"odsearch/internal/ui"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "odsearch",
		Usage:     "Search concepts and annotations of the Data Science Ontology",
		ArgsUsage: "[query | /search/{query}]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file",
				EnvVars: []string{"ODSEARCH_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Base URL of the search API",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Set logging level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Write logs to this file",
			},
		},
		Action: runTUI,
		Commands: []*cli.Command{
			printCommand(),
			configCommand(),
		},
	}
}

// runTUI starts the interactive search page
func runTUI(c *cli.Context) error {
	if c.NArg() > 1 {
		return fmt.Errorf("expected at most one query, got %d arguments", c.NArg())
	}
	path, err := ui.ResolveStartPath(c.Args().First())
	if err != nil {
		return err
	}

	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	ctx, cancel := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	model, err := ui.NewModel(ui.Dependencies{
		Config:   env.cfg,
		Searcher: env.client,
		Bus:      env.bus,
		Logger:   env.logger,
		Context:  ctx,
	}, path)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	model.SetProgram(p)

	// results summaries and config saves show up in the status line
	forward := func(e eventbus.DomainEvent) { p.Send(ui.EventMsg{Event: e}) }
	defer env.bus.Subscribe(eventbus.EventSearchCompleted, forward)()
	defer env.bus.Subscribe(eventbus.EventConfigSaved, forward)()

	env.logger.Info("starting ui", zap.String("path", path))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			env.logger.Info("ui interrupted")
			return nil
		}
		return fmt.Errorf("run program: %w", err)
	}
	env.logger.Info("ui exited normally")
	return nil
}
