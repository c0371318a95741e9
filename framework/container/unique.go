package container

// UniqueInstance returns a Provider that builds a new instance every time it
// is invoked.
//
// Each invocation passes opts through prepare (nil means PrepareDeepClone),
// so a factory that embeds its options in the instance does not leak them
// into other instances. Errors from the factory or an action are returned
// unchanged.
//
//	c.Register("request", container.UniqueInstance(c, "request", newRequest, defaults, nil))
func UniqueInstance[T, O any](
	c *Container,
	name string,
	factory Factory[T, O],
	opts O,
	prepare OptionsPreparer[O],
	actions ...Action[T],
) Provider {
	if prepare == nil {
		prepare = PrepareDeepClone[O]
	}

	return func() (any, error) {
		instance, err := build(c, name, factory, prepare(opts), actions)
		if err != nil {
			return nil, err
		}
		return instance, nil
	}
}
