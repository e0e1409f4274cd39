package knit

import (
	"reflect"
)

// CreateFunc builds a new instance of a bean. Dependencies are resolved
// through the supplied creational context (see Inject).
type CreateFunc func(cc *CreationalContext) (any, error)

// DestroyFunc releases an instance previously built by the bean's factory.
type DestroyFunc func(instance any, cc *CreationalContext) error

// MethodFunc is a pre-extracted business method: it receives the bean
// instance and the call arguments and returns the method result.
type MethodFunc func(target any, args []any) (any, error)

// Bean is the registered, type-qualified unit of behavior. It is immutable
// once handed to a Registry; all mutation happens through BeanOptions at
// definition time.
type Bean struct {
	name         string
	types        []reflect.Type
	qualifiers   []Qualifier
	scope        Scope
	alternative  bool
	priority     int
	create       CreateFunc
	destroy      DestroyFunc
	methods      map[string]MethodFunc
	interceptors []Interceptor
	decorators   []Decorator
}

// BeanOption is a modifier applied while defining a bean.
type BeanOption func(*Bean)

// In sets the bean's scope. Beans default to Dependent.
func In(scope Scope) BeanOption {
	return func(b *Bean) {
		b.scope = scope
	}
}

// Qualified adds qualifiers to the bean declaration.
func Qualified(qs ...Qualifier) BeanOption {
	return func(b *Bean) {
		b.qualifiers = append(b.qualifiers, qs...)
	}
}

// AsType adds an additional implemented type to the bean, typically an
// interface the instance satisfies.
func AsType[T any]() BeanOption {
	return func(b *Bean) {
		b.types = append(b.types, reflect.TypeFor[T]())
	}
}

// Alternative marks the bean as an alternative with the given priority.
// Among ambiguous candidates, the alternative with the highest priority wins.
func Alternative(priority int) BeanOption {
	return func(b *Bean) {
		b.alternative = true
		b.priority = priority
	}
}

// OnDestroy registers the bean's destroy capability.
func OnDestroy[T any](fn func(instance T, cc *CreationalContext) error) BeanOption {
	return func(b *Bean) {
		b.destroy = func(instance any, cc *CreationalContext) error {
			typed, err := SafeTypeAssertion[T](instance)
			if err != nil {
				return err
			}
			return fn(typed, cc)
		}
	}
}

// WithMethod registers a business method under the given name. Calls made
// through Container.Invoke pass through the bean's interceptor/decorator
// chain before reaching fn.
func WithMethod(name string, fn MethodFunc) BeanOption {
	return func(b *Bean) {
		b.methods[name] = fn
	}
}

// Intercept appends interceptors in declared order. The first declared
// interceptor is the outermost wrapper.
func Intercept(is ...Interceptor) BeanOption {
	return func(b *Bean) {
		b.interceptors = append(b.interceptors, is...)
	}
}

// Decorate appends decorators in declared order. Decorators sit inside the
// interceptors and outside the business method.
func Decorate(ds ...Decorator) BeanOption {
	return func(b *Bean) {
		b.decorators = append(b.decorators, ds...)
	}
}

// Define declares a bean named name whose instances are built by create.
// The bean's primary implemented type is T; additional types can be added
// with AsType. The default scope is Dependent.
func Define[T any](name string, create func(cc *CreationalContext) (T, error), opts ...BeanOption) *Bean {
	b := &Bean{
		name:  name,
		types: []reflect.Type{reflect.TypeFor[T]()},
		scope: Dependent,
		create: func(cc *CreationalContext) (any, error) {
			return create(cc)
		},
		methods: make(map[string]MethodFunc),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Name returns the bean's unique identity.
func (b *Bean) Name() string {
	return b.name
}

// Scope returns the bean's scope tag.
func (b *Bean) Scope() Scope {
	return b.scope
}

// Types returns a copy of the bean's implemented types.
func (b *Bean) Types() []reflect.Type {
	out := make([]reflect.Type, len(b.types))
	copy(out, b.types)
	return out
}

// Qualifiers returns a copy of the bean's declared qualifiers.
func (b *Bean) Qualifiers() []Qualifier {
	out := make([]Qualifier, len(b.qualifiers))
	copy(out, b.qualifiers)
	return out
}

// IsAlternative reports whether the bean was marked as an alternative.
func (b *Bean) IsAlternative() bool {
	return b.alternative
}

// Priority returns the alternative priority. It is meaningful only when
// IsAlternative is true.
func (b *Bean) Priority() int {
	return b.priority
}

func (b *Bean) destroyInstance(instance any, cc *CreationalContext) error {
	if b.destroy == nil {
		return nil
	}
	return b.destroy(instance, cc)
}
