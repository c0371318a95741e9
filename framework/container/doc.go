// Package container provides a small service locator: a registry of named
// Providers that build service instances on demand.
//
// # Overview
//
// A Provider is a zero-argument function returning an instance. The
// container maps names to Providers and invokes them when a service is
// requested. It never tracks instances itself; the lifecycle of a service is
// decided by the builder that created its Provider.
//
// # Container Lifecycle
//
//  1. Create: c := container.New(nil)
//  2. Register providers: c.Register("name", provider)
//  3. Resolve: v, err := c.Get("name")
//
// # Lifecycles
//
//	// Pre-built value, same reference every time
//	c.Register("config", container.ExistingInstance(cfg))
//
//	// Another name for an existing service, never cached
//	c.Register("configuration", container.AliasFor(c, "config"))
//
//	// New instance on every Get; opts are deep-cloned first
//	c.Register("client", container.UniqueInstance(c, "client", newClient, clientOpts, nil))
//
//	// Built on first Get, then cached by replacing itself in the container
//	c.Register("db", container.SharedInstance(c, "db", openDB, dbOpts))
//
// # Options
//
// UniqueInstance runs its options through an OptionsPreparer before each
// build. PrepareDeepClone (the default) uses the option type's Clone method
// when it implements Cloner, and a reflection-based deep copy otherwise.
// PrepareNoClone shares one options value between all instances.
//
// # Post-construction actions
//
//	c.Register("cache", container.SharedInstance(c, "cache", newCache, opts,
//	    func(cc *Cache) (*Cache, error) { return cc, cc.Warm() },
//	    func(cc *Cache) (*Cache, error) { cc.Name = "primary"; return cc, nil },
//	))
//
// # Resolving
//
//	// Untyped
//	raw, err := c.Get("cache")
//
//	// Generic
//	cache, err := container.Resolve[*Cache](c, "cache")
//
// # Errors
//
// A lookup of an unbound name returns *DependencyNotFoundError, which
// matches ErrDependencyNotFound. Errors returned by factories and actions
// are passed through untouched.
//
// # Registrars
//
//	type AppRegistrar struct{ container.BaseRegistrar }
//
//	func (r *AppRegistrar) Register(c *container.Container) error {
//	    c.Register("mailer", container.SharedInstance(c, "mailer", newMailer, mailOpts))
//	    return nil
//	}
//
//	registrars := container.NewRegistrars(c)
//	_ = registrars.Register(&AppRegistrar{})
//	_ = registrars.Boot()
//
// A registrar whose IsDeferred returns true is only registered when one of
// the names in Provides is first resolved.
package container
