package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-servicemanager/framework/config"
	"github.com/km-arc/go-servicemanager/framework/container"
	"github.com/km-arc/go-servicemanager/framework/logging"
	"github.com/km-arc/go-servicemanager/framework/providers"
	"github.com/km-arc/go-servicemanager/framework/routing"
)

const shutdownTimeout = 10 * time.Second

// Application is the top-level application container.
// It embeds the Container and Registrars so user code can call
// app.Register(name, provider), app.Get(name) and app.AddRegistrar() directly.
type Application struct {
	*container.Container
	Registrars *container.Registrars
}

// New loads configuration, builds the logger and registers the framework
// registrars (config, logger, metrics, router).
func New(envFiles ...string) (*Application, error) {
	cfg := config.Load(envFiles...)

	logger, err := logging.New(cfg)
	if err != nil {
		return nil, err
	}

	c := container.New(nil, container.WithLogger(logger))
	app := &Application{
		Container:  c,
		Registrars: container.NewRegistrars(c),
	}

	for _, reg := range []container.Registrar{
		&providers.ConfigRegistrar{Config: cfg},
		&providers.LoggerRegistrar{Logger: logger},
		&providers.MetricsRegistrar{Namespace: cfg.Metrics.Namespace},
		&providers.RoutingRegistrar{},
	} {
		if err := app.AddRegistrar(reg); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// AddRegistrar adds a Registrar to the application.
func (a *Application) AddRegistrar(reg container.Registrar) error {
	return a.Registrars.Register(reg)
}

// Boot runs the Boot phase on all registrars.
func (a *Application) Boot() error {
	return a.Registrars.Boot()
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, providers.ConfigService)
}

// Logger resolves *zap.Logger from the container.
func (a *Application) Logger() *zap.Logger {
	return container.MustResolve[*zap.Logger](a.Container, providers.LoggerService)
}

// Router resolves the shared *routing.Router from the container.
func (a *Application) Router() (*routing.Router, error) {
	return container.Resolve[*routing.Router](a.Container, providers.RouterService)
}

// Run boots the application (if needed) and serves HTTP on APP_PORT until
// ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	if err := a.Boot(); err != nil {
		return err
	}

	router, err := a.Router()
	if err != nil {
		return err
	}

	cfg := a.Config()
	logger := a.Logger()
	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
