package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"

	"github.com/km-arc/go-servicemanager/framework/app"
	"github.com/km-arc/go-servicemanager/framework/config"
	"github.com/km-arc/go-servicemanager/framework/container"
	gohttp "github.com/km-arc/go-servicemanager/framework/http"
	"github.com/km-arc/go-servicemanager/framework/routing"
)

// GreeterOptions configure each Greeter.
type GreeterOptions struct {
	Greeting string
	Tags     []string
}

// Greeter is built fresh for every request.
type Greeter struct {
	opts GreeterOptions
}

// Counter is shared for the lifetime of the application.
type Counter struct {
	hits atomic.Int64
}

// DemoRegistrar binds the example services.
type DemoRegistrar struct {
	container.BaseRegistrar
}

func (DemoRegistrar) Register(c *container.Container) error {
	c.Register("greeter", container.UniqueInstance(c, "greeter",
		func(_ *container.Container, _ string, opts GreeterOptions) (*Greeter, error) {
			return &Greeter{opts: opts}, nil
		},
		GreeterOptions{Greeting: config.Get("GREETING", "Hello"), Tags: []string{"demo"}},
		nil,
	))
	c.Register("counter", container.SharedInstance(c, "counter",
		func(_ *container.Container, _ string, _ struct{}) (*Counter, error) {
			return &Counter{}, nil
		},
		struct{}{},
	))
	c.Register("hits", container.AliasFor(c, "counter"))
	return nil
}

func (DemoRegistrar) Boot(c *container.Container) error {
	router, err := container.Resolve[*routing.Router](c, "router")
	if err != nil {
		return err
	}

	router.Get("/hello/{name}", func(w http.ResponseWriter, r *http.Request) {
		res := gohttp.NewResponse(w)

		greeter, err := container.Resolve[*Greeter](c, "greeter")
		if err != nil {
			res.ServerError()
			return
		}
		counter, err := container.Resolve[*Counter](c, "hits")
		if err != nil {
			res.ServerError()
			return
		}

		res.Success(map[string]any{
			"message": greeter.opts.Greeting + ", " + routing.Param(r, "name"),
			"hits":    counter.hits.Add(1),
		})
	})
	return nil
}

func main() {
	application, err := app.New() // loads .env automatically
	if err != nil {
		panic(err)
	}
	logger := application.Logger()
	defer func() { _ = logger.Sync() }()

	if err := application.AddRegistrar(DemoRegistrar{}); err != nil {
		logger.Fatal("registering demo services", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
