package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-servicemanager/framework/config"
	"github.com/km-arc/go-servicemanager/framework/container"
	gohttp "github.com/km-arc/go-servicemanager/framework/http"
	"github.com/km-arc/go-servicemanager/framework/metrics"
	"github.com/km-arc/go-servicemanager/framework/routing"
)

// Service names bound by the framework registrars.
const (
	ConfigService      = "config"
	ConfigAlias        = "configuration"
	FreshConfigService = "config.fresh"
	LoggerService      = "logger"
	LoggerAlias        = "log"
	MetricsService     = "metrics"
	RouterService      = "router"
)

// ── ConfigRegistrar ───────────────────────────────────────────────────────────

// ConfigRegistrar binds the loaded configuration.
//
// Bound names:
//   - "config"        → *config.Config (the instance given)
//   - "configuration" → alias for "config"
//   - "config.fresh"  → *config.Config, a private deep copy on every Get
type ConfigRegistrar struct {
	container.BaseRegistrar
	Config *config.Config
}

func (p *ConfigRegistrar) Register(c *container.Container) error {
	c.Register(ConfigService, container.ExistingInstance(p.Config))
	c.Register(ConfigAlias, container.AliasFor(c, ConfigService))
	c.Register(FreshConfigService, container.UniqueInstance(c, FreshConfigService,
		func(_ *container.Container, _ string, cfg *config.Config) (*config.Config, error) {
			return cfg, nil
		},
		p.Config,
		nil,
	))
	return nil
}

// ── LoggerRegistrar ───────────────────────────────────────────────────────────

// LoggerRegistrar binds the application logger.
//
// Bound names:
//   - "logger" → *zap.Logger
//   - "log"    → alias for "logger"
type LoggerRegistrar struct {
	container.BaseRegistrar
	Logger *zap.Logger
}

func (p *LoggerRegistrar) Register(c *container.Container) error {
	c.Register(LoggerService, container.ExistingInstance(p.Logger))
	c.Register(LoggerAlias, container.AliasFor(c, LoggerService))
	return nil
}

// Boot logs the names bound once every registrar has run.
func (p *LoggerRegistrar) Boot(c *container.Container) error {
	p.Logger.Debug("container booted", zap.Strings("services", c.Names()))
	return nil
}

// ── MetricsRegistrar ──────────────────────────────────────────────────────────

// MetricsRegistrar binds the Prometheus collector. It is deferred: the
// collector is only created, and attached to the container, when "metrics"
// is first resolved.
//
// Bound names:
//   - "metrics" → *metrics.Collector
type MetricsRegistrar struct {
	container.BaseRegistrar
	Namespace string
}

func (p *MetricsRegistrar) Register(c *container.Container) error {
	c.Register(MetricsService, container.SharedInstance(c, MetricsService,
		func(_ *container.Container, _ string, namespace string) (*metrics.Collector, error) {
			return metrics.NewCollector(namespace), nil
		},
		p.Namespace,
		func(m *metrics.Collector) (*metrics.Collector, error) {
			m.Attach(c, p.Namespace)
			return m, nil
		},
	))
	return nil
}

func (p *MetricsRegistrar) IsDeferred() bool   { return true }
func (p *MetricsRegistrar) Provides() []string { return []string{MetricsService} }

// ── RoutingRegistrar ──────────────────────────────────────────────────────────

// RoutingRegistrar binds the HTTP router, with the inspection and metrics
// endpoints mounted according to configuration.
//
// Bound names:
//   - "router" → *routing.Router
//
// Needs "config" and "logger" (and "metrics" when enabled) at first resolve.
type RoutingRegistrar struct {
	container.BaseRegistrar
}

func (p *RoutingRegistrar) Register(c *container.Container) error {
	c.Register(RouterService, container.SharedInstance(c, RouterService, newRouter, struct{}{},
		mountInspector(c),
		mountMetrics(c),
	))
	return nil
}

func newRouter(c *container.Container, _ string, _ struct{}) (*routing.Router, error) {
	logger, err := container.Resolve[*zap.Logger](c, LoggerService)
	if err != nil {
		return nil, err
	}
	return routing.New(logger), nil
}

func mountInspector(c *container.Container) container.Action[*routing.Router] {
	return func(r *routing.Router) (*routing.Router, error) {
		cfg, err := container.Resolve[*config.Config](c, ConfigService)
		if err != nil {
			return nil, err
		}
		if !cfg.Inspect.Enabled {
			return r, nil
		}
		logger, err := container.Resolve[*zap.Logger](c, LoggerService)
		if err != nil {
			return nil, err
		}

		inspector := gohttp.NewServiceInspector(c, logger)
		r.Prefix(cfg.Inspect.Path, func(sr *routing.Router) {
			sr.Get("/", inspector.Index)
			sr.Get("/{name}", inspector.Show)
		})
		return r, nil
	}
}

func mountMetrics(c *container.Container) container.Action[*routing.Router] {
	return func(r *routing.Router) (*routing.Router, error) {
		cfg, err := container.Resolve[*config.Config](c, ConfigService)
		if err != nil {
			return nil, err
		}
		if !cfg.Metrics.Enabled {
			return r, nil
		}
		// bound by MetricsRegistrar
		if err := c.MustProvide(MetricsService); err != nil {
			return nil, err
		}
		m, err := container.Resolve[*metrics.Collector](c, MetricsService)
		if err != nil {
			return nil, err
		}
		r.Handle(cfg.Metrics.Path, m.Handler())
		return r, nil
	}
}
