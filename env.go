package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"odsearch/internal/api"
	"odsearch/internal/config"
	"odsearch/internal/eventbus"
	"odsearch/internal/logger"
)

// environment holds the services shared by every command
type environment struct {
	cfg       *config.Config
	configSvc config.ConfigService
	logger    *zap.Logger
	bus       eventbus.EventBus
	registry  *prometheus.Registry
	client    *api.Client
}

// setup loads configuration, applies flag overrides and wires the services
func setup(c *cli.Context) (*environment, error) {
	svc := config.NewConfigService(c.String("config"))
	cfg, err := svc.Load()
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", svc.Path(), err)
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	log, err := logger.NewLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	bus := eventbus.New(log)
	subscribeLogging(bus, log)
	bus.Publish(eventbus.ConfigLoadedEvent{Path: svc.Path(), BaseURL: cfg.API.BaseURL})

	timeout, err := cfg.RequestTimeout()
	if err != nil {
		bus.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	client, err := api.New(cfg.API.BaseURL,
		api.WithTimeout(timeout),
		api.WithLogger(log),
		api.WithMetrics(registry),
	)
	if err != nil {
		bus.Close()
		return nil, err
	}

	return &environment{
		cfg:       cfg,
		configSvc: config.NewConfigServiceWithBus(svc.Path(), bus),
		logger:    log,
		bus:       bus,
		registry:  registry,
		client:    client,
	}, nil
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("api-url") {
		cfg.API.BaseURL = c.String("api-url")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-file") {
		cfg.Log.File = c.String("log-file")
	}
}

// Close logs a request summary and releases the services
func (e *environment) Close() {
	e.logRequestSummary()
	e.bus.Close()
	_ = e.logger.Sync()
}

func (e *environment) logRequestSummary() {
	families, err := e.registry.Gather()
	if err != nil {
		e.logger.Warn("gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		if mf.GetName() != "odsearch_api_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			fields := []zap.Field{zap.Float64("count", m.GetCounter().GetValue())}
			for _, lp := range m.GetLabel() {
				fields = append(fields, zap.String(lp.GetName(), lp.GetValue()))
			}
			e.logger.Info("api requests", fields...)
		}
	}
}

func subscribeLogging(bus eventbus.EventBus, log *zap.Logger) {
	l := log.Named("events")

	bus.Subscribe(eventbus.EventRouteChanged, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.RouteChangedEvent); ok {
			l.Info("route changed", zap.String("path", ev.Path), zap.String("query", ev.Query))
		}
	})
	bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.SearchCompletedEvent); ok {
			l.Info("search completed",
				zap.String("query", ev.Query),
				zap.Uint64("generation", ev.Generation),
				zap.Int("concepts", ev.TotalConcepts),
				zap.Int("annotations", ev.TotalAnnotations),
			)
		}
	})
	bus.Subscribe(eventbus.EventFetchFailed, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.FetchFailedEvent); ok {
			l.Warn("fetch failed",
				zap.String("query", ev.Query),
				zap.String("schema", string(ev.Schema)),
				zap.Error(ev.Err),
			)
		}
	})
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
			l.Info("config loaded", zap.String("path", ev.Path), zap.String("base_url", ev.BaseURL))
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if ev, ok := e.(eventbus.ConfigSavedEvent); ok {
			l.Info("config saved", zap.String("path", ev.Path))
		}
	})
}
