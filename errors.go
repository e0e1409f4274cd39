package knit

import (
	"errors"
	"fmt"
	"reflect"
	"runtime/debug"
	"strings"
)

// ErrRegistryFrozen is returned when registration is attempted after the
// registry has been frozen.
var ErrRegistryFrozen = errors.New("knit: registry is frozen")

// DuplicateBeanError is a fatal bootstrap error: two beans share an identity.
type DuplicateBeanError struct {
	Name string
}

func (e *DuplicateBeanError) Error() string {
	return fmt.Sprintf("knit: duplicate bean identity %q", e.Name)
}

// BootstrapError wraps a misconfiguration detected while freezing the
// registry. It halts startup and never occurs at steady state.
type BootstrapError struct {
	Bean  string
	Cause error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("knit: invalid declaration of bean %q: %v", e.Bean, e.Cause)
}

func (e *BootstrapError) Unwrap() error {
	return e.Cause
}

// UnsatisfiedResolutionError is returned when no registered bean matches a
// requested type and qualifier set.
type UnsatisfiedResolutionError struct {
	Type       reflect.Type
	Qualifiers []Qualifier
}

func (e *UnsatisfiedResolutionError) Error() string {
	return fmt.Sprintf("knit: no bean matches type %v with qualifiers %s",
		e.Type, formatQualifiers(e.Qualifiers))
}

// AmbiguousResolutionError is returned when more than one bean remains after
// alternative narrowing. Candidates holds every remaining bean identity.
type AmbiguousResolutionError struct {
	Type       reflect.Type
	Qualifiers []Qualifier
	Candidates []string
}

func (e *AmbiguousResolutionError) Error() string {
	return fmt.Sprintf("knit: ambiguous resolution for type %v with qualifiers %s: candidates [%s]",
		e.Type, formatQualifiers(e.Qualifiers), strings.Join(e.Candidates, ", "))
}

// ContextNotActiveError signals that the target scope has no active extent.
// Callers that can legitimately skip (an IF_EXISTS observer probe) treat it
// as recoverable; an ALWAYS materialization treats it as fatal.
type ContextNotActiveError struct {
	Scope Scope
}

func (e *ContextNotActiveError) Error() string {
	return fmt.Sprintf("knit: no active context for scope %s", e.Scope)
}

// ExtentActiveError is returned when activating a scope whose extent is
// already active.
type ExtentActiveError struct {
	Scope  Scope
	Extent string
}

func (e *ExtentActiveError) Error() string {
	return fmt.Sprintf("knit: scope %s already has active extent %q", e.Scope, e.Extent)
}

// UnknownMethodError is returned when invoking a method the bean never
// declared.
type UnknownMethodError struct {
	Bean   string
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("knit: bean %q has no method %q", e.Bean, e.Method)
}

// ObserverInvocationError wraps any error raised inside an observer body or
// its interceptor/decorator chain. It is surfaced to the firing caller after
// the observer's creational context has been released.
type ObserverInvocationError struct {
	Observer   string
	EventType  reflect.Type
	Cause      error
	StackTrace []byte
}

func (e *ObserverInvocationError) Error() string {
	return fmt.Sprintf("knit: observer %s failed for event %v: %v", e.Observer, e.EventType, e.Cause)
}

func (e *ObserverInvocationError) Unwrap() error {
	return e.Cause
}

func newObserverInvocationError(observer string, eventType reflect.Type, cause error) *ObserverInvocationError {
	return &ObserverInvocationError{
		Observer:   observer,
		EventType:  eventType,
		Cause:      cause,
		StackTrace: debug.Stack(),
	}
}

// DestructionError wraps a failure of a bean's destroy capability. Sibling
// destructions proceed regardless; collected errors are joined and logged
// but never mask the original invocation outcome.
type DestructionError struct {
	Bean  string
	Cause error
}

func (e *DestructionError) Error() string {
	return fmt.Sprintf("knit: destroying instance of bean %q: %v", e.Bean, e.Cause)
}

func (e *DestructionError) Unwrap() error {
	return e.Cause
}

// SafeTypeAssertion performs a type assertion with a descriptive error
// instead of a panic.
func SafeTypeAssertion[T any](value any) (T, error) {
	if value == nil {
		var zero T
		return zero, nil
	}

	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("knit: type assertion error: expected %T, got %T", zero, value)
	}

	return typed, nil
}
