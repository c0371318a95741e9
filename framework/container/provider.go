package container

// Provider builds (or returns) a service instance when invoked.
//
// The container never inspects a provider; its lifecycle is whatever the
// closure implements. Use the builders below rather than writing one by hand.
type Provider func() (any, error)

// Factory constructs a raw service instance.
//
// It receives the container (to resolve its own dependencies), the name the
// service is registered under, and the prepared options.
type Factory[T, O any] func(c *Container, name string, opts O) (T, error)

// Action runs against a freshly built instance before it is handed out and
// returns the instance the next action (or the caller) receives. Pointer
// services are usually mutated in place and returned as is; value services
// must return the modified copy.
type Action[T any] func(instance T) (T, error)

// ExistingInstance returns a Provider that always hands out instance.
//
//	c.Register("config", container.ExistingInstance(cfg))
func ExistingInstance(instance any) Provider {
	return func() (any, error) {
		return instance, nil
	}
}

// AliasFor returns a Provider that resolves target through c every time it
// is invoked, so it always reflects the current binding for target.
//
//	c.Register("log", container.AliasFor(c, "logger"))
func AliasFor(c *Container, target string) Provider {
	return func() (any, error) {
		return c.Get(target)
	}
}

// build runs factory and then threads the instance through each action, in
// order.
func build[T, O any](c *Container, name string, factory Factory[T, O], opts O, actions []Action[T]) (T, error) {
	instance, err := factory(c, name, opts)
	if err != nil {
		return instance, err
	}
	for _, action := range actions {
		instance, err = action(instance)
		if err != nil {
			var zero T
			return zero, err
		}
	}
	return instance, nil
}
