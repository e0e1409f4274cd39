package knit

import (
	"sync"
)

// Registry is the catalog of bean and observer metadata. It is populated by
// the discovery collaborator during bootstrap, then frozen; after freezing it
// is read-only and safe for unlimited concurrent readers.
type Registry struct {
	mu        sync.RWMutex
	beans     []*Bean
	byName    map[string]*Bean
	observers []*ObserverMethod
	frozen    bool
}

// NewRegistry creates an empty, unfrozen registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Bean),
	}
}

// Register adds a bean to the registry. It fails with ErrRegistryFrozen
// after Freeze and with DuplicateBeanError when the identity is taken.
func (r *Registry) Register(b *Bean) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, ok := r.byName[b.name]; ok {
		return &DuplicateBeanError{Name: b.name}
	}

	r.byName[b.name] = b
	r.beans = append(r.beans, b)
	return nil
}

// RegisterObserver adds an observer method to the registry. Observer order
// is registration order; IN_PROGRESS observers are notified in this order.
func (r *Registry) RegisterObserver(o *ObserverMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}

	r.observers = append(r.observers, o)
	return nil
}

// Freeze validates all registered metadata and makes the registry
// read-only. Validation failures are fatal bootstrap errors.
func (r *Registry) Freeze() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return nil
	}

	for _, b := range r.beans {
		if err := validateBean(b); err != nil {
			return &BootstrapError{Bean: b.name, Cause: err}
		}
	}
	for _, o := range r.observers {
		if err := o.validate(); err != nil {
			return &BootstrapError{Bean: o.String(), Cause: err}
		}
	}

	r.frozen = true
	return nil
}

// Frozen reports whether the registry has been frozen.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Beans returns a snapshot of the registered beans in registration order.
func (r *Registry) Beans() []*Bean {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Bean, len(r.beans))
	copy(out, r.beans)
	return out
}

// Observers returns a snapshot of the registered observer methods in
// registration order.
func (r *Registry) Observers() []*ObserverMethod {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*ObserverMethod, len(r.observers))
	copy(out, r.observers)
	return out
}

// Lookup returns the bean registered under the given identity.
func (r *Registry) Lookup(name string) (*Bean, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.byName[name]
	return b, ok
}
