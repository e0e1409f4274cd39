package knit

import (
	"errors"
	"sync"

	"go.uber.org/zap"
)

// Scope is a lifecycle policy tag governing instance sharing and lifetime.
type Scope string

const (
	// Dependent creates a fresh instance per request; instances are never
	// stored in shared context storage and are destroyed when the owning
	// creational context is released.
	Dependent Scope = "dependent"

	// RequestScoped shares one instance per request extent.
	RequestScoped Scope = "request"

	// SessionScoped shares one instance per session extent.
	SessionScoped Scope = "session"

	// ApplicationScoped shares one instance for the application's lifetime.
	ApplicationScoped Scope = "application"
)

// String returns the scope tag.
func (s Scope) String() string {
	return string(s)
}

// Shared reports whether instances of the scope live in shared context
// storage.
func (s Scope) Shared() bool {
	return s != Dependent
}

// Context holds the live instances of one scope within one extent. Exactly
// one Context is live per (scope, extent); the collaborator that drives
// extent lifecycle creates and tears it down via the ContextManager.
type Context struct {
	scope  Scope
	extent string

	mu        sync.Mutex
	instances map[string]any
	order     []*Bean
	active    bool
}

// Scope returns the scope this context stores instances for.
func (c *Context) Scope() Scope {
	return c.scope
}

// Extent returns the identifier of the extent this context belongs to.
func (c *Context) Extent() string {
	return c.extent
}

// get returns the stored instance for the bean, if any.
func (c *Context) get(b *Bean) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	inst, ok := c.instances[b.name]
	return inst, ok
}

// put stores instance unless another goroutine stored one first, in which
// case the stored instance wins and put reports false. A context deactivated
// while the instance was being created accepts nothing; the caller owns the
// orphan.
func (c *Context) put(b *Bean, instance any) (any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return nil, false, &ContextNotActiveError{Scope: c.scope}
	}
	if existing, ok := c.instances[b.name]; ok {
		return existing, false, nil
	}
	c.instances[b.name] = instance
	c.order = append(c.order, b)
	return instance, true, nil
}

// ContextManager owns per-scope contexts and their active/inactive
// lifecycle. Shared-scope access is serialized per context, not globally.
type ContextManager struct {
	mu        sync.RWMutex
	contexts  map[Scope]*Context
	container *Container
}

func newContextManager(c *Container) *ContextManager {
	return &ContextManager{
		contexts:  make(map[Scope]*Context),
		container: c,
	}
}

// Activate opens a new extent for the scope. Activating a scope that
// already has an active extent fails with ExtentActiveError.
func (m *ContextManager) Activate(scope Scope, extent string) error {
	if !scope.Shared() {
		return &ContextNotActiveError{Scope: scope}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.contexts[scope]; ok && existing.active {
		return &ExtentActiveError{Scope: scope, Extent: existing.extent}
	}

	m.contexts[scope] = &Context{
		scope:     scope,
		extent:    extent,
		instances: make(map[string]any),
		active:    true,
	}
	return nil
}

// Deactivate closes the scope's extent, destroying every stored instance in
// reverse creation order. Individual destruction failures are logged and
// joined into the returned error but never stop the teardown.
func (m *ContextManager) Deactivate(scope Scope) error {
	m.mu.Lock()
	ctx, ok := m.contexts[scope]
	if ok {
		delete(m.contexts, scope)
	}
	m.mu.Unlock()

	if !ok || !ctx.active {
		return &ContextNotActiveError{Scope: scope}
	}

	ctx.mu.Lock()
	ctx.active = false
	order := ctx.order
	instances := ctx.instances
	ctx.order = nil
	ctx.instances = nil
	ctx.mu.Unlock()

	cc := m.container.NewCreationalContext()
	var errs []error
	for i := len(order) - 1; i >= 0; i-- {
		b := order[i]
		if err := b.destroyInstance(instances[b.name], cc); err != nil {
			derr := &DestructionError{Bean: b.name, Cause: err}
			m.container.logger.Error("instance destruction failed during extent teardown",
				zap.String("scope", scope.String()),
				zap.String("bean", b.name),
				zap.Error(err),
			)
			errs = append(errs, derr)
		}
	}
	if err := cc.Release(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Active reports whether the scope currently has an active extent.
func (m *ContextManager) Active(scope Scope) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ctx, ok := m.contexts[scope]
	return ok && ctx.active
}

// ActiveContext returns the scope's live context, if any.
func (m *ContextManager) ActiveContext(scope Scope) (*Context, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ctx, ok := m.contexts[scope]
	if !ok || !ctx.active {
		return nil, false
	}
	return ctx, true
}

// Peek probes for a live instance of the bean without creating one. It
// reports false when the bean's scope has no active extent, when no instance
// has been stored yet, or when the bean is Dependent (Dependent instances
// never live in shared storage).
func (m *ContextManager) Peek(b *Bean) (any, bool) {
	if !b.scope.Shared() {
		return nil, false
	}
	ctx, ok := m.ActiveContext(b.scope)
	if !ok {
		return nil, false
	}
	return ctx.get(b)
}

// GetOrCreate returns the bean's contextual instance, creating it through
// the bean's factory if absent. Dependent beans always get a fresh instance,
// registered with cc for later destruction. Shared-scope beans are stored in
// the scope's active context; an inactive scope fails with
// ContextNotActiveError.
//
// Creation runs outside the context lock so that a factory may resolve
// further beans of the same scope; if two goroutines race, the first stored
// instance wins and the loser is destroyed. An extent that deactivates while
// the factory is in flight refuses the late instance: it is destroyed and
// the call fails with ContextNotActiveError.
func (m *ContextManager) GetOrCreate(b *Bean, cc *CreationalContext) (any, error) {
	if !b.scope.Shared() {
		instance, err := b.create(cc)
		if err != nil {
			return nil, err
		}
		cc.register(b, instance)
		return instance, nil
	}

	ctx, ok := m.ActiveContext(b.scope)
	if !ok {
		return nil, &ContextNotActiveError{Scope: b.scope}
	}

	if instance, ok := ctx.get(b); ok {
		return instance, nil
	}

	instance, err := b.create(cc)
	if err != nil {
		return nil, err
	}

	stored, won, perr := ctx.put(b, instance)
	if perr != nil {
		if derr := b.destroyInstance(instance, cc); derr != nil {
			m.container.logger.Warn("discarding instance created during extent teardown failed",
				zap.String("bean", b.name),
				zap.Error(derr),
			)
		}
		return nil, perr
	}
	if !won {
		if derr := b.destroyInstance(instance, cc); derr != nil {
			m.container.logger.Warn("discarding raced duplicate instance failed",
				zap.String("bean", b.name),
				zap.Error(derr),
			)
		}
		return stored, nil
	}

	cc.register(b, instance)
	return instance, nil
}

// Destroy delegates to the bean's destroy capability. For shared scopes this
// is normally driven by Deactivate rather than by request-scoped call sites.
func (m *ContextManager) Destroy(b *Bean, instance any, cc *CreationalContext) error {
	if err := b.destroyInstance(instance, cc); err != nil {
		return &DestructionError{Bean: b.name, Cause: err}
	}
	return nil
}
