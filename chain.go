package knit

// Invocation describes one business-method call as it travels through the
// interceptor/decorator chain.
type Invocation struct {
	Bean   *Bean
	Method string
	Target any
	Args   []any
}

// Interceptor wraps a business-method call. It may run logic before and
// after proceed, and may short-circuit by not calling proceed at all. The
// first declared interceptor is entered first and returns last.
type Interceptor func(inv *Invocation, proceed func() (any, error)) (any, error)

// Decorator wraps a business-method call inside the interceptors. delegate
// invokes the next decorator in declared order, or the bean's own method
// body when the decorator is innermost. The delegate reference is captured
// once when the chain is built, never re-resolved per call.
type Decorator func(inv *Invocation, delegate func() (any, error)) (any, error)

type handler func(inv *Invocation) (any, error)

type chainKey struct {
	bean   *Bean
	method string
}

// chainFor builds the invocation chain for a bean method, caching it so
// repeated calls share the same wiring: interceptors outermost in declared
// order, then decorators in declared order, innermost the method body.
func (c *Container) chainFor(b *Bean, method string) (handler, error) {
	key := chainKey{bean: b, method: method}
	if cached, ok := c.chains.Load(key); ok {
		return cached.(handler), nil
	}

	fn, ok := b.methods[method]
	if !ok {
		return nil, &UnknownMethodError{Bean: b.name, Method: method}
	}

	var next handler = func(inv *Invocation) (any, error) {
		return fn(inv.Target, inv.Args)
	}

	for i := len(b.decorators) - 1; i >= 0; i-- {
		decorator := b.decorators[i]
		delegate := next
		next = func(inv *Invocation) (any, error) {
			return decorator(inv, func() (any, error) {
				return delegate(inv)
			})
		}
	}

	for i := len(b.interceptors) - 1; i >= 0; i-- {
		interceptor := b.interceptors[i]
		proceed := next
		next = func(inv *Invocation) (any, error) {
			return interceptor(inv, func() (any, error) {
				return proceed(inv)
			})
		}
	}

	actual, _ := c.chains.LoadOrStore(key, next)
	return actual.(handler), nil
}

// Invoke calls the named business method on target through the bean's
// interceptor/decorator chain.
func (c *Container) Invoke(b *Bean, target any, method string, args ...any) (any, error) {
	chain, err := c.chainFor(b, method)
	if err != nil {
		return nil, err
	}

	inv := &Invocation{
		Bean:   b,
		Method: method,
		Target: target,
		Args:   args,
	}
	return chain(inv)
}
