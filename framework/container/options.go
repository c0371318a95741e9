package container

import (
	clone "github.com/huandu/go-clone"
)

// OptionsPreparer returns a (possibly modified) copy of the options it is
// called with, before they reach a Factory.
type OptionsPreparer[O any] func(opts O) O

// Cloner is implemented by option types that know how to copy themselves.
// PrepareDeepClone prefers it over reflection.
type Cloner[O any] interface {
	Clone() O
}

// PrepareDeepClone is the default preparer: the result shares no mutable
// state with opts.
func PrepareDeepClone[O any](opts O) O {
	if c, ok := any(opts).(Cloner[O]); ok {
		return c.Clone()
	}

	copied, ok := clone.Clone(opts).(O)
	if !ok {
		// nil interface values have nothing to copy
		return opts
	}
	return copied
}

// PrepareNoClone hands opts through unchanged. Use it when every instance
// is meant to share the same options value.
func PrepareNoClone[O any](opts O) O {
	return opts
}
