package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"odsearch/internal/api"
	"odsearch/internal/domain"
	"odsearch/internal/ui/views"
)

func printCommand() *cli.Command {
	return &cli.Command{
		Name:      "print",
		Usage:     "Run one search and print both result lists",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-descriptions",
				Usage: "Omit result descriptions",
			},
		},
		Action: printAction,
	}
}

func printAction(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return errors.New("a query is required")
	}

	env, err := setup(c)
	if err != nil {
		return err
	}
	defer env.Close()

	showDescriptions := env.cfg.UI.ShowDescriptions && !c.Bool("no-descriptions")

	concepts, annotations, err := search(c.Context, env.client, query)
	if err != nil {
		env.logger.Error("print search failed", zap.String("query", query), zap.Error(err))
		return err
	}
	env.bus.Publish(domain.SearchCompletedEvent{
		Query:            query,
		TotalConcepts:    len(concepts),
		TotalAnnotations: len(annotations),
	})

	_, err = fmt.Fprint(c.App.Writer, renderReport(concepts, annotations, showDescriptions))
	return err
}

// search runs both fetches concurrently and fails if either does
func search(ctx context.Context, s api.Searcher, query string) ([]domain.Concept, []domain.Annotation, error) {
	var (
		concepts    []domain.Concept
		annotations []domain.Annotation
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		concepts, err = s.SearchConcepts(ctx, query)
		if err != nil {
			return fmt.Errorf("concept search: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		annotations, err = s.SearchAnnotations(ctx, query)
		if err != nil {
			return fmt.Errorf("annotation search: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return concepts, annotations, nil
}

func renderReport(concepts []domain.Concept, annotations []domain.Annotation, showDescriptions bool) string {
	tabs := []views.TabState{
		{Tab: domain.TabConcepts, Count: len(concepts), Active: true, Disabled: len(concepts) == 0},
		{Tab: domain.TabAnnotations, Count: len(annotations), Disabled: len(annotations) == 0},
	}

	lists := map[domain.Tab][]views.Row{}
	for _, c := range concepts {
		lists[domain.TabConcepts] = append(lists[domain.TabConcepts], views.ConceptRow(c))
	}
	for _, a := range annotations {
		lists[domain.TabAnnotations] = append(lists[domain.TabAnnotations], views.AnnotationRow(a))
	}

	return views.NewResultsRenderer(views.NewStyles()).RenderReport(tabs, lists, showDescriptions)
}
