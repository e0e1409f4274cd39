package knit

import (
	"errors"
	"fmt"
	"reflect"
)

// Reception controls whether delivering an event may create the observer's
// owner bean.
type Reception int

const (
	// ReceptionAlways materializes the owner bean if no instance exists.
	ReceptionAlways Reception = iota

	// ReceptionIfExists delivers only when a live owner instance already
	// exists in its scope; it never triggers creation.
	ReceptionIfExists
)

func (r Reception) String() string {
	switch r {
	case ReceptionAlways:
		return "ALWAYS"
	case ReceptionIfExists:
		return "IF_EXISTS"
	}
	return fmt.Sprintf("Reception(%d)", int(r))
}

// TransactionPhase tags when an observer is notified relative to a
// transaction. Only InProgress observers run at the point of firing; the
// rest are handed to the TransactionBoundary collaborator.
type TransactionPhase int

const (
	InProgress TransactionPhase = iota
	BeforeCompletion
	AfterCompletion
	AfterSuccess
	AfterFailure
)

func (p TransactionPhase) String() string {
	switch p {
	case InProgress:
		return "IN_PROGRESS"
	case BeforeCompletion:
		return "BEFORE_COMPLETION"
	case AfterCompletion:
		return "AFTER_COMPLETION"
	case AfterSuccess:
		return "AFTER_SUCCESS"
	case AfterFailure:
		return "AFTER_FAILURE"
	}
	return fmt.Sprintf("TransactionPhase(%d)", int(p))
}

// InjectionPoint is a pure lookup key for one injected observer parameter.
type InjectionPoint struct {
	Type       reflect.Type
	Qualifiers []Qualifier
}

// ParamOf builds an injection point for a parameter of type T.
func ParamOf[T any](qualifiers ...Qualifier) InjectionPoint {
	return InjectionPoint{Type: reflect.TypeFor[T](), Qualifiers: qualifiers}
}

// ObserverMethod is the pre-extracted metadata of one observer: its owner
// bean, the owner method receiving the event, the observed event type and
// qualifiers, and the reception/phase tags. The owner method is invoked with
// the event as its first argument followed by the injected parameters in
// declared order.
type ObserverMethod struct {
	owner      *Bean
	method     string
	eventType  reflect.Type
	qualifiers []Qualifier
	reception  Reception
	phase      TransactionPhase
	params     []InjectionPoint
}

// ObserverOption is a modifier applied while declaring an observer method.
type ObserverOption func(*ObserverMethod)

// WithReception sets the observer's reception mode (default ReceptionAlways).
func WithReception(r Reception) ObserverOption {
	return func(o *ObserverMethod) {
		o.reception = r
	}
}

// WithPhase sets the observer's transaction phase (default InProgress).
func WithPhase(p TransactionPhase) ObserverOption {
	return func(o *ObserverMethod) {
		o.phase = p
	}
}

// WithEventQualifiers restricts the observer to events fired with matching
// qualifiers.
func WithEventQualifiers(qs ...Qualifier) ObserverOption {
	return func(o *ObserverMethod) {
		o.qualifiers = append(o.qualifiers, qs...)
	}
}

// WithParams declares the observer method's injected parameters, in the
// order they follow the event argument.
func WithParams(ips ...InjectionPoint) ObserverOption {
	return func(o *ObserverMethod) {
		o.params = append(o.params, ips...)
	}
}

// Observe declares that the named method of owner observes events of type E.
func Observe[E any](owner *Bean, method string, opts ...ObserverOption) *ObserverMethod {
	o := &ObserverMethod{
		owner:     owner,
		method:    method,
		eventType: reflect.TypeFor[E](),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Owner returns the observer's owner bean.
func (o *ObserverMethod) Owner() *Bean {
	return o.owner
}

// EventType returns the observed event type.
func (o *ObserverMethod) EventType() reflect.Type {
	return o.eventType
}

// Reception returns the observer's reception mode.
func (o *ObserverMethod) Reception() Reception {
	return o.reception
}

// Phase returns the observer's transaction phase.
func (o *ObserverMethod) Phase() TransactionPhase {
	return o.phase
}

func (o *ObserverMethod) String() string {
	owner := "<none>"
	if o.owner != nil {
		owner = o.owner.name
	}
	return fmt.Sprintf("%s.%s(%v)", owner, o.method, o.eventType)
}

func (o *ObserverMethod) validate() error {
	if o.owner == nil {
		return errors.New("observer has no owner bean")
	}
	if o.eventType == nil {
		return errors.New("observer has no event type")
	}
	if _, ok := o.owner.methods[o.method]; !ok {
		return fmt.Errorf("owner bean declares no method %q", o.method)
	}
	for _, q := range o.qualifiers {
		if err := q.validate(); err != nil {
			return err
		}
	}
	return nil
}
