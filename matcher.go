package knit

import (
	"errors"
	"fmt"
	"reflect"
)

// Matches reports whether the bean satisfies the requested type and
// qualifier set. It is pure and reentrant.
//
// Type match requires one of the bean's implemented types to be assignable
// to the requested type. Generic instantiations are distinct reflect.Types,
// so covariant type parameters match exactly or not at all.
//
// Qualifier match requires every requested qualifier to have an equal
// counterpart on the bean. A requested Any matches unconditionally. An empty
// request implies Default, which a bean carries implicitly when it declares
// no qualifiers, or when it declares nothing but Any.
func Matches(requested reflect.Type, qualifiers []Qualifier, b *Bean) bool {
	return typeMatches(requested, b) && qualifiersMatch(qualifiers, b)
}

func typeMatches(requested reflect.Type, b *Bean) bool {
	if requested == nil {
		return false
	}
	for _, t := range b.types {
		if t == requested || t.AssignableTo(requested) {
			return true
		}
	}
	return false
}

func qualifiersMatch(requested []Qualifier, b *Bean) bool {
	if len(requested) == 0 {
		requested = []Qualifier{Default()}
	}
	for _, q := range requested {
		if q.IsAny() {
			continue
		}
		if !beanHasQualifier(b, q) {
			return false
		}
	}
	return true
}

func beanHasQualifier(b *Bean, q Qualifier) bool {
	if q.IsDefault() && beanHasImplicitDefault(b) {
		return true
	}
	for _, declared := range b.qualifiers {
		if declared.Equal(q) {
			return true
		}
	}
	return false
}

// beanHasImplicitDefault reports whether the bean carries Default without
// declaring it: either no qualifiers at all, or Any alone.
func beanHasImplicitDefault(b *Bean) bool {
	for _, declared := range b.qualifiers {
		if !declared.IsAny() {
			return false
		}
	}
	return true
}

// eventTypeMatches reports whether an observed event type is assignable from
// the fired event's runtime type or its declared static type. Firing code may
// pass a subtype instance, so the runtime hierarchy participates too.
func eventTypeMatches(observed, declared, runtime reflect.Type) bool {
	if observed == nil {
		return false
	}
	if declared != nil && (declared == observed || declared.AssignableTo(observed)) {
		return true
	}
	return runtime != nil && (runtime == observed || runtime.AssignableTo(observed))
}

// eventQualifiersMatch applies the observer-side matching rule: every
// qualifier the observer declares must be present among the fired
// qualifiers, with Any on the observer matching any fired set.
func eventQualifiersMatch(observed, fired []Qualifier) bool {
	for _, q := range observed {
		if q.IsAny() {
			continue
		}
		found := false
		for _, f := range fired {
			if f.Equal(q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func validateBean(b *Bean) error {
	if b.name == "" {
		return errors.New("bean has empty identity")
	}
	if len(b.types) == 0 {
		return errors.New("bean declares no implemented types")
	}
	if b.create == nil {
		return errors.New("bean has no factory")
	}
	for i, q := range b.qualifiers {
		if err := q.validate(); err != nil {
			return err
		}
		for _, other := range b.qualifiers[i+1:] {
			if q.Equal(other) {
				return fmt.Errorf("qualifier %s declared twice", q)
			}
		}
	}
	return nil
}
