package container

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// ── Registrar interface ───────────────────────────────────────────────────────

// Registrar groups the registration of related services.
//
// Register binds services into the container. Boot is called after ALL
// registrars have been registered, so it is safe to resolve other services
// there.
//
//	type MailRegistrar struct{ container.BaseRegistrar }
//
//	func (r *MailRegistrar) Register(c *container.Container) error {
//	    c.Register("mailer", container.SharedInstance(c, "mailer", newMailer, mailOpts))
//	    return nil
//	}
type Registrar interface {
	// Register binds services into the container.
	// Do NOT resolve other services here; use Boot for that.
	Register(c *Container) error

	// Boot is called after all registrars are registered.
	Boot(c *Container) error

	// Provides returns the names this registrar binds.
	// Only consulted for deferred registrars.
	Provides() []string

	// IsDeferred returns true if Register should only run when one of
	// Provides() is first resolved.
	IsDeferred() bool
}

// ErrRegistrarNotComparable is returned by Registrars.Register for a
// registrar whose type cannot be used as a map key, such as a struct value
// with a slice or map field. Pass a pointer instead.
var ErrRegistrarNotComparable = errors.New("container: registrar is not comparable")

// ── BaseRegistrar ─────────────────────────────────────────────────────────────

// BaseRegistrar provides no-op Boot, Provides and IsDeferred.
// Embed it and only override what you need.
type BaseRegistrar struct{}

func (BaseRegistrar) Boot(_ *Container) error { return nil }
func (BaseRegistrar) Provides() []string      { return nil }
func (BaseRegistrar) IsDeferred() bool        { return false }

// ── Registrars ────────────────────────────────────────────────────────────────

// Registrars registers and boots Registrars against one container,
// including deferred ones.
type Registrars struct {
	app *Container

	mu         sync.Mutex
	eager      []Registrar
	registered map[Registrar]bool
	loaders    map[Registrar]*sync.Once
	loadErrs   map[Registrar]error
	booted     bool

	// deferred names still bound to a placeholder
	pending map[string]bool
}

// NewRegistrars creates a Registrars bound to app.
func NewRegistrars(app *Container) *Registrars {
	r := &Registrars{
		app:        app,
		registered: make(map[Registrar]bool),
		loaders:    make(map[Registrar]*sync.Once),
		loadErrs:   make(map[Registrar]error),
		pending:    make(map[string]bool),
	}
	app.OnRegister(func(name string) {
		r.mu.Lock()
		delete(r.pending, name)
		r.mu.Unlock()
	})
	return r
}

// Register adds a registrar and runs its Register method, unless it is
// deferred. Adding the same registrar twice is a no-op. Registrars are
// tracked by identity, so reg must be comparable (usually a pointer).
func (r *Registrars) Register(reg Registrar) error {
	if t := reflect.TypeOf(reg); t != nil && !t.Comparable() {
		return fmt.Errorf("%w: %s", ErrRegistrarNotComparable, t)
	}

	r.mu.Lock()
	if r.registered[reg] {
		r.mu.Unlock()
		return nil
	}
	r.registered[reg] = true

	if reg.IsDeferred() {
		r.loaders[reg] = &sync.Once{}
		r.mu.Unlock()
		for _, name := range reg.Provides() {
			r.app.Register(name, r.placeholder(reg, name))
			r.mu.Lock()
			r.pending[name] = true
			r.mu.Unlock()
		}
		return nil
	}

	r.eager = append(r.eager, reg)
	booted := r.booted
	r.mu.Unlock()

	if err := reg.Register(r.app); err != nil {
		return err
	}

	// late registrars are booted immediately
	if booted {
		return reg.Boot(r.app)
	}
	return nil
}

// placeholder stands in for a deferred service until the registrar has
// bound the real provider.
func (r *Registrars) placeholder(reg Registrar, name string) Provider {
	return func() (any, error) {
		if err := r.load(reg); err != nil {
			return nil, err
		}

		r.mu.Lock()
		unbound := r.pending[name]
		r.mu.Unlock()
		if unbound {
			// the registrar did not bind a name it claims to provide
			return nil, NewDependencyNotFound(name)
		}

		provider, err := r.app.GetProvider(name)
		if err != nil {
			return nil, err
		}
		return provider()
	}
}

// load runs a deferred registrar's Register (and Boot, when already booted)
// exactly once.
func (r *Registrars) load(reg Registrar) error {
	r.mu.Lock()
	once := r.loaders[reg]
	r.mu.Unlock()

	once.Do(func() {
		r.app.Logger().Debug("loading deferred registrar",
			zap.Strings("provides", reg.Provides()),
		)

		err := reg.Register(r.app)
		if err == nil {
			r.mu.Lock()
			booted := r.booted
			r.mu.Unlock()
			if booted {
				err = reg.Boot(r.app)
			}
		}

		r.mu.Lock()
		r.loadErrs[reg] = err
		r.mu.Unlock()
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadErrs[reg]
}

// Boot calls Boot on all eager registrars, in registration order. Calling it
// again is a no-op.
func (r *Registrars) Boot() error {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return nil
	}
	r.booted = true
	eager := append([]Registrar(nil), r.eager...)
	r.mu.Unlock()

	for _, reg := range eager {
		if err := reg.Boot(r.app); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot has been called.
func (r *Registrars) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Eager returns the registered eager registrars.
func (r *Registrars) Eager() []Registrar {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Registrar(nil), r.eager...)
}
