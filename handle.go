package knit

// Handle is a typed accessor for a (type, qualifiers) lookup bound to a
// container. It keeps call sites free of reflect.Type plumbing.
type Handle[T any] struct {
	container  *Container
	qualifiers []Qualifier
}

// Accessor creates a handle for beans of type T.
func Accessor[T any](c *Container, qualifiers ...Qualifier) *Handle[T] {
	return &Handle[T]{
		container:  c,
		qualifiers: qualifiers,
	}
}

// Bean resolves the handle's bean metadata without materializing an
// instance.
func (h *Handle[T]) Bean() (*Bean, error) {
	return h.container.Resolve(TypeOf[T](), h.qualifiers...)
}

// Get resolves and materializes the instance within cc.
func (h *Handle[T]) Get(cc *CreationalContext) (T, error) {
	return Instance[T](h.container, cc, h.qualifiers...)
}

// Peek probes for a live instance without creating one.
func (h *Handle[T]) Peek() (T, bool) {
	var zero T

	b, err := h.Bean()
	if err != nil {
		return zero, false
	}

	instance, ok := h.container.contexts.Peek(b)
	if !ok {
		return zero, false
	}

	typed, err := SafeTypeAssertion[T](instance)
	if err != nil {
		return zero, false
	}
	return typed, true
}
