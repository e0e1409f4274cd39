package knit

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Container combines the frozen registry, the context manager and the event
// dispatcher into the runtime surface exposed to application code.
type Container struct {
	registry *Registry
	contexts *ContextManager
	logger   *zap.Logger
	boundary TransactionBoundary
	chains   sync.Map
}

// Option is a modifier for containers.
type Option func(*Container)

// WithLogger sets the container's logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithTransactionBoundary sets the collaborator that receives deferred-phase
// observer notifications. Without one, deferred observers are skipped with a
// debug log entry.
func WithTransactionBoundary(tb TransactionBoundary) Option {
	return func(c *Container) {
		c.boundary = tb
	}
}

// New freezes the registry and builds a container over it. Bootstrap
// misconfiguration surfaces here and halts startup.
func New(registry *Registry, opts ...Option) (*Container, error) {
	c := &Container{
		registry: registry,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := registry.Freeze(); err != nil {
		return nil, err
	}

	c.contexts = newContextManager(c)
	return c, nil
}

// Registry returns the frozen registry.
func (c *Container) Registry() *Registry {
	return c.registry
}

// Contexts returns the context manager for extent lifecycle collaborators.
func (c *Container) Contexts() *ContextManager {
	return c.contexts
}

// Activate opens an extent for the scope. Shorthand for Contexts().Activate.
func (c *Container) Activate(scope Scope, extent string) error {
	return c.contexts.Activate(scope, extent)
}

// Deactivate closes the scope's extent, destroying stored instances.
func (c *Container) Deactivate(scope Scope) error {
	return c.contexts.Deactivate(scope)
}

// Resolve returns the single bean matching the requested type and
// qualifiers. It is a pure lookup: materializing an instance is a separate
// step through Get or Instance.
//
// With multiple candidates the set narrows to alternatives with the highest
// declared priority; a set that does not narrow to exactly one bean fails
// with AmbiguousResolutionError listing every remaining candidate.
func (c *Container) Resolve(requested reflect.Type, qualifiers ...Qualifier) (*Bean, error) {
	var candidates []*Bean
	for _, b := range c.registry.Beans() {
		if Matches(requested, qualifiers, b) {
			candidates = append(candidates, b)
		}
	}

	switch len(candidates) {
	case 0:
		return nil, &UnsatisfiedResolutionError{Type: requested, Qualifiers: qualifiers}
	case 1:
		return candidates[0], nil
	}

	remaining := narrowAlternatives(candidates)
	if len(remaining) == 1 {
		return remaining[0], nil
	}

	names := make([]string, 0, len(remaining))
	for _, b := range remaining {
		names = append(names, b.name)
	}
	return nil, &AmbiguousResolutionError{Type: requested, Qualifiers: qualifiers, Candidates: names}
}

// narrowAlternatives keeps the alternatives with the highest priority when
// any alternative is present, otherwise the candidate set is unchanged.
func narrowAlternatives(candidates []*Bean) []*Bean {
	best := 0
	hasAlternative := false
	for _, b := range candidates {
		if !b.alternative {
			continue
		}
		if !hasAlternative || b.priority > best {
			best = b.priority
		}
		hasAlternative = true
	}
	if !hasAlternative {
		return candidates
	}

	var narrowed []*Bean
	for _, b := range candidates {
		if b.alternative && b.priority == best {
			narrowed = append(narrowed, b)
		}
	}
	return narrowed
}

// Get materializes the bean's contextual instance within cc.
func (c *Container) Get(b *Bean, cc *CreationalContext) (any, error) {
	return c.contexts.GetOrCreate(b, cc)
}

// Instance resolves and materializes a bean of type T in one step.
func Instance[T any](c *Container, cc *CreationalContext, qualifiers ...Qualifier) (T, error) {
	var zero T

	b, err := c.Resolve(reflect.TypeFor[T](), qualifiers...)
	if err != nil {
		return zero, err
	}

	instance, err := c.Get(b, cc)
	if err != nil {
		return zero, err
	}

	return SafeTypeAssertion[T](instance)
}

// TypeOf returns the reflect.Type for T, for use with Resolve, FireAs and
// observer declarations.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}
