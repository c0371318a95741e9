package container

import (
	"sync"

	"go.uber.org/zap"
)

// sharedState is the cache behind a SharedInstance provider.
type sharedState[T any] struct {
	mu       sync.Mutex
	built    bool
	instance T
}

// SharedInstance returns a Provider that calls factory once, on first use,
// and hands out that same instance afterwards.
//
// After the first successful build the provider registers
// ExistingInstance(instance) under name, replacing itself in c. Later
// lookups through c never reach this closure again; callers holding the
// original Provider still get the cached instance. The build runs under a
// lock, so concurrent first calls do not run factory twice; factory must not
// resolve name itself. A failed build is not cached.
//
// opts are passed to factory as-is: there is only ever one instance to own
// them.
//
//	c.Register("db", container.SharedInstance(c, "db", openDB, cfg.DB))
func SharedInstance[T, O any](
	c *Container,
	name string,
	factory Factory[T, O],
	opts O,
	actions ...Action[T],
) Provider {
	state := &sharedState[T]{}

	return func() (any, error) {
		state.mu.Lock()
		defer state.mu.Unlock()

		if state.built {
			return state.instance, nil
		}

		instance, err := build(c, name, factory, opts, actions)
		if err != nil {
			return nil, err
		}

		state.instance = instance
		state.built = true

		c.Register(name, ExistingInstance(instance))
		c.logger.Debug("shared service cached", zap.String("service", name))

		return instance, nil
	}
}
