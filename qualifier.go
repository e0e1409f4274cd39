package knit

import (
	"fmt"
	"reflect"
	"strings"
)

// Reserved qualifier names. AnyQualifier matches everything on the request
// side; DefaultQualifier is implied when a bean or a request declares no
// other qualifier.
const (
	anyQualifierName     = "Any"
	defaultQualifierName = "Default"
	namedQualifierName   = "Named"
)

// Member is a single named value of a qualifier. Members marked NonBinding
// carry metadata only and do not participate in qualifier equality.
type Member struct {
	Name       string
	Value      any
	NonBinding bool
}

// Qualifier is a structured tag distinguishing beans of the same type.
// Two qualifiers are equal iff their name and every binding member value
// match exactly. Member order follows declaration order.
type Qualifier struct {
	Name    string
	Members []Member
}

// NewQualifier creates a qualifier with the given name and members.
func NewQualifier(name string, members ...Member) Qualifier {
	return Qualifier{Name: name, Members: members}
}

// Any returns the built-in qualifier that matches every bean.
func Any() Qualifier {
	return Qualifier{Name: anyQualifierName}
}

// Default returns the built-in qualifier implied when no other qualifier
// is declared.
func Default() Qualifier {
	return Qualifier{Name: defaultQualifierName}
}

// Named returns the built-in value-carrying qualifier.
func Named(value string) Qualifier {
	return Qualifier{
		Name:    namedQualifierName,
		Members: []Member{{Name: "value", Value: value}},
	}
}

// IsAny reports whether q is the built-in Any qualifier.
func (q Qualifier) IsAny() bool {
	return q.Name == anyQualifierName
}

// IsDefault reports whether q is the built-in Default qualifier.
func (q Qualifier) IsDefault() bool {
	return q.Name == defaultQualifierName
}

// Equal reports whether q and other are the same qualifier. Only binding
// members participate; a member present on one side must have an equal
// binding counterpart on the other.
func (q Qualifier) Equal(other Qualifier) bool {
	if q.Name != other.Name {
		return false
	}
	if len(bindingMembers(q)) != len(bindingMembers(other)) {
		return false
	}
	for _, m := range q.Members {
		if m.NonBinding {
			continue
		}
		found := false
		for _, o := range other.Members {
			if o.NonBinding || o.Name != m.Name {
				continue
			}
			if !equalValues(m.Value, o.Value) {
				return false
			}
			found = true
			break
		}
		if !found {
			return false
		}
	}
	return true
}

func bindingMembers(q Qualifier) []Member {
	out := make([]Member, 0, len(q.Members))
	for _, m := range q.Members {
		if !m.NonBinding {
			out = append(out, m)
		}
	}
	return out
}

// equalValues compares member values, falling back to deep equality for
// values that are not comparable with ==.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}

// validate reports bootstrap-time problems with the qualifier declaration.
func (q Qualifier) validate() error {
	if q.Name == "" {
		return fmt.Errorf("qualifier has empty name")
	}
	seen := make(map[string]bool, len(q.Members))
	for _, m := range q.Members {
		if m.Name == "" {
			return fmt.Errorf("qualifier %s has a member with empty name", q.Name)
		}
		if seen[m.Name] {
			return fmt.Errorf("qualifier %s declares member %q twice", q.Name, m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

// String renders the qualifier for diagnostics, e.g. @Named("greeting").
func (q Qualifier) String() string {
	if len(q.Members) == 0 {
		return "@" + q.Name
	}
	parts := make([]string, 0, len(q.Members))
	for _, m := range q.Members {
		parts = append(parts, fmt.Sprintf("%s=%v", m.Name, m.Value))
	}
	return fmt.Sprintf("@%s(%s)", q.Name, strings.Join(parts, ", "))
}

func formatQualifiers(qs []Qualifier) string {
	if len(qs) == 0 {
		return "@Default"
	}
	parts := make([]string, 0, len(qs))
	for _, q := range qs {
		parts = append(parts, q.String())
	}
	return strings.Join(parts, " ")
}
