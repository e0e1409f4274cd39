package knit

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

type creationalEntry struct {
	bean     *Bean
	instance any
}

// CreationalContext tracks the instances created while satisfying one
// top-level resolution or one observer invocation. It is exclusively owned
// by the call that created it and must not be retained past that call.
type CreationalContext struct {
	container *Container

	mu       sync.Mutex
	entries  []creationalEntry
	released bool
}

// NewCreationalContext creates a creational context bound to the container.
func (c *Container) NewCreationalContext() *CreationalContext {
	return &CreationalContext{container: c}
}

// register appends a (bean, instance) pair in creation order.
func (cc *CreationalContext) register(b *Bean, instance any) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.entries = append(cc.entries, creationalEntry{bean: b, instance: instance})
}

// Release destroys every Dependent-scoped entry in reverse creation order.
// A failing destructor is logged and collected but never prevents the
// destruction of remaining entries; the joined failures are returned so the
// caller may inspect them without letting them mask the invocation outcome.
// Destroy callbacks may resolve further dependencies through cc; entries
// registered during teardown are drained before Release returns. Releasing
// twice is a no-op.
func (cc *CreationalContext) Release() error {
	cc.mu.Lock()
	if cc.released {
		cc.mu.Unlock()
		return nil
	}
	cc.released = true
	cc.mu.Unlock()

	var errs []error
	for {
		cc.mu.Lock()
		entries := cc.entries
		cc.entries = nil
		cc.mu.Unlock()
		if len(entries) == 0 {
			break
		}

		for i := len(entries) - 1; i >= 0; i-- {
			entry := entries[i]
			if entry.bean.scope.Shared() {
				continue
			}
			if err := entry.bean.destroyInstance(entry.instance, cc); err != nil {
				derr := &DestructionError{Bean: entry.bean.name, Cause: err}
				cc.container.logger.Error("dependent instance destruction failed",
					zap.String("bean", entry.bean.name),
					zap.Error(err),
				)
				errs = append(errs, derr)
			}
		}
	}
	return errors.Join(errs...)
}

// Inject resolves and materializes a dependency of type T within this
// creational context. Dependent-scoped instances created along the way are
// destroyed when the context is released.
func Inject[T any](cc *CreationalContext, qualifiers ...Qualifier) (T, error) {
	return Instance[T](cc.container, cc, qualifiers...)
}
