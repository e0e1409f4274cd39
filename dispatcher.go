package knit

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// DeferredNotification is one observer notification handed off to the
// transaction boundary instead of running at the point of firing.
type DeferredNotification struct {
	Phase    TransactionPhase
	Observer string
	Notify   func() error
}

// TransactionBoundary receives observer notifications whose phase is not
// InProgress. The transaction-manager collaborator decides when to run them.
type TransactionBoundary interface {
	Defer(n DeferredNotification)
}

// DeferredQueue is a simple TransactionBoundary that collects notifications
// until a phase is drained with Run. It lets deferred delivery be exercised
// without a transaction manager.
type DeferredQueue struct {
	mu      sync.Mutex
	pending []DeferredNotification
}

// Defer implements TransactionBoundary.
func (q *DeferredQueue) Defer(n DeferredNotification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, n)
}

// Pending returns a snapshot of the queued notifications.
func (q *DeferredQueue) Pending() []DeferredNotification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]DeferredNotification, len(q.pending))
	copy(out, q.pending)
	return out
}

// Run drains and notifies every queued observer of the given phase, in the
// order they were deferred. All of them run; failures are joined.
func (q *DeferredQueue) Run(phase TransactionPhase) error {
	q.mu.Lock()
	var matched, rest []DeferredNotification
	for _, n := range q.pending {
		if n.Phase == phase {
			matched = append(matched, n)
		} else {
			rest = append(rest, n)
		}
	}
	q.pending = rest
	q.mu.Unlock()

	var errs []error
	for _, n := range matched {
		if err := n.Notify(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Fire delivers event to every matching observer, using the event's runtime
// type. It returns after all InProgress observers complete, or fails fast on
// the first observer error.
func (c *Container) Fire(event any, qualifiers ...Qualifier) error {
	if event == nil {
		return fmt.Errorf("knit: cannot fire nil event")
	}
	return c.FireAs(event, reflect.TypeOf(event), qualifiers...)
}

// FireAs delivers event under an explicit declared event type. Matching
// considers both the declared type and the event's runtime type, so firing a
// subtype instance reaches observers of the subtype.
//
// InProgress observers run synchronously in registration order; observers of
// other phases are handed to the transaction boundary and are not invoked by
// this call. An observer failure stops delivery to the remaining matched
// set and surfaces to the caller after the failing observer's creational
// context has been released.
func (c *Container) FireAs(event any, eventType reflect.Type, qualifiers ...Qualifier) error {
	runtime := reflect.TypeOf(event)

	for _, o := range c.registry.Observers() {
		if !eventTypeMatches(o.eventType, eventType, runtime) {
			continue
		}
		if !eventQualifiersMatch(o.qualifiers, qualifiers) {
			continue
		}

		if o.phase != InProgress {
			if c.boundary == nil {
				c.logger.Debug("no transaction boundary configured, skipping deferred observer",
					zap.String("observer", o.String()),
					zap.String("phase", o.phase.String()),
				)
				continue
			}
			observer := o
			c.boundary.Defer(DeferredNotification{
				Phase:    o.phase,
				Observer: o.String(),
				Notify: func() error {
					return c.deliver(observer, event, eventType)
				},
			})
			continue
		}

		if err := c.deliver(o, event, eventType); err != nil {
			return err
		}
	}

	return nil
}

// deliver notifies a single observer: it probes or materializes the owner
// according to the reception mode, resolves injected parameters in a fresh
// creational context, invokes the owner method through its chain, and
// releases the creational context whether or not the invocation succeeded.
func (c *Container) deliver(o *ObserverMethod, event any, eventType reflect.Type) error {
	var target any

	if o.reception == ReceptionIfExists {
		instance, ok := c.contexts.Peek(o.owner)
		if !ok {
			c.logger.Debug("skipping IF_EXISTS observer, owner has no live instance",
				zap.String("observer", o.String()),
			)
			return nil
		}
		target = instance
	}

	cc := c.NewCreationalContext()
	defer func() {
		if err := cc.Release(); err != nil {
			c.logger.Error("releasing observer creational context",
				zap.String("observer", o.String()),
				zap.Error(err),
			)
		}
	}()

	if o.reception == ReceptionAlways {
		instance, err := c.contexts.GetOrCreate(o.owner, cc)
		if err != nil {
			return err
		}
		target = instance
	}

	args := make([]any, 0, len(o.params)+1)
	args = append(args, event)
	for _, ip := range o.params {
		b, err := c.Resolve(ip.Type, ip.Qualifiers...)
		if err != nil {
			return err
		}
		instance, err := c.Get(b, cc)
		if err != nil {
			return err
		}
		args = append(args, instance)
	}

	if _, err := c.Invoke(o.owner, target, o.method, args...); err != nil {
		return newObserverInvocationError(o.String(), eventType, err)
	}
	return nil
}
