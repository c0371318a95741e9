package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the DI container. It maps service names to Providers and
// invokes them on demand.
//
// It supports:
//   - Register / Get / GetProvider / Has / MustProvide
//   - AfterResolving, OnMissing and OnRegister hooks
//   - Names (for debugging and inspection)
//
// Lifecycles are not a property of the container: they are built into the
// Provider by ExistingInstance, AliasFor, UniqueInstance and SharedInstance.
type Container struct {
	mu sync.RWMutex

	// name → provider
	services map[string]Provider

	// resolved callbacks: []func(name, instance)
	afterResolving []func(string, any)

	// lookup miss callbacks: []func(name)
	onMissing []func(string)

	// registration callbacks: []func(name)
	onRegister []func(string)

	logger *zap.Logger
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger used for registry events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Container) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a container holding a copy of services (which may be nil).
//
//	c := container.New(map[string]container.Provider{
//	    "config": container.ExistingInstance(cfg),
//	})
func New(services map[string]Provider, opts ...Option) *Container {
	c := &Container{
		services: make(map[string]Provider, len(services)),
		logger:   zap.NewNop(),
	}
	for name, p := range services {
		c.services[name] = p
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Register binds provider to name, replacing any existing binding.
//
//	c.Register("mailer", container.SharedInstance(c, "mailer", newMailer, cfg.Mail))
func (c *Container) Register(name string, provider Provider) {
	c.mu.Lock()
	_, replaced := c.services[name]
	c.services[name] = provider
	cbs := c.onRegister
	c.mu.Unlock()

	c.logger.Debug("service registered",
		zap.String("service", name),
		zap.Bool("replaced", replaced),
	)
	for _, cb := range cbs {
		cb(name)
	}
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves name and invokes its provider.
//
// Errors returned by the provider are passed through untouched.
func (c *Container) Get(name string) (any, error) {
	provider, err := c.GetProvider(name)
	if err != nil {
		return nil, err
	}

	// the provider may call back into the container (SharedInstance
	// re-registers itself), so no lock is held here
	instance, err := provider()
	if err != nil {
		return nil, err
	}

	c.fireAfterResolving(name, instance)
	return instance, nil
}

// GetProvider returns the provider bound to name without invoking it.
func (c *Container) GetProvider(name string) (Provider, error) {
	c.mu.RLock()
	provider, ok := c.services[name]
	c.mu.RUnlock()

	if !ok {
		return nil, c.notFound(name)
	}
	return provider, nil
}

// ── Guards ────────────────────────────────────────────────────────────────────

// Has reports whether a provider is bound to name.
func (c *Container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.services[name]
	return ok
}

// MustProvide returns a *DependencyNotFoundError if name is not bound.
// Use it to fail fast before a multi-step operation.
func (c *Container) MustProvide(name string) error {
	if !c.Has(name) {
		return c.notFound(name)
	}
	return nil
}

// Names returns the bound service names, sorted.
func (c *Container) Names() []string {
	c.mu.RLock()
	out := make([]string, 0, len(c.services))
	for name := range c.services {
		out = append(out, name)
	}
	c.mu.RUnlock()

	sort.Strings(out)
	return out
}

// Logger returns the container's logger.
func (c *Container) Logger() *zap.Logger { return c.logger }

func (c *Container) notFound(name string) error {
	err := NewDependencyNotFound(name)
	c.logger.Debug("service lookup failed", zap.Object("error", err))
	c.fireMissing(name)
	return err
}

// ── Callbacks ─────────────────────────────────────────────────────────────────

// AfterResolving registers a callback fired after Get returns an instance.
func (c *Container) AfterResolving(cb func(name string, instance any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.afterResolving = append(c.afterResolving, cb)
}

// OnMissing registers a callback fired whenever a lookup finds no binding.
func (c *Container) OnMissing(cb func(name string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onMissing = append(c.onMissing, cb)
}

// OnRegister registers a callback fired after every Register, including the
// self-replacement done by SharedInstance.
func (c *Container) OnRegister(cb func(name string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRegister = append(c.onRegister, cb)
}

func (c *Container) fireAfterResolving(name string, instance any) {
	c.mu.RLock()
	cbs := c.afterResolving
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(name, instance)
	}
}

func (c *Container) fireMissing(name string) {
	c.mu.RLock()
	cbs := c.onMissing
	c.mu.RUnlock()
	for _, cb := range cbs {
		cb(name)
	}
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	// Instead of: v, err := c.Get("db"); db := v.(*sql.DB)
//	// Write:      db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, name string) (T, error) {
	var zero T
	instance, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("%w: [%s] resolved to %T, want %s", ErrUnexpectedType, name, instance, reflect.TypeOf((*T)(nil)).Elem())
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error. Intended for bootstrap
// code where a missing service is a programming error.
func MustResolve[T any](c *Container, name string) T {
	typed, err := Resolve[T](c, name)
	if err != nil {
		panic(fmt.Sprintf("container: %v", err))
	}
	return typed
}
