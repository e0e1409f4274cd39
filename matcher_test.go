package knit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func greeterBean(name string, opts ...BeanOption) *Bean {
	all := append([]BeanOption{AsType[Greeter]()}, opts...)
	return Define(name, func(cc *CreationalContext) (EnglishGreeter, error) {
		return EnglishGreeter{}, nil
	}, all...)
}

// TestMatches_ConcreteType verifies a bean matches its own implemented type.
func TestMatches_ConcreteType(t *testing.T) {
	t.Parallel()

	b := greeterBean("greeter")
	assert.True(t, Matches(TypeOf[EnglishGreeter](), nil, b))
	assert.False(t, Matches(TypeOf[FrenchGreeter](), nil, b))
}

// TestMatches_InterfaceAssignability verifies assignable-compatible types
// match: a bean registered with an interface type satisfies requests for it.
func TestMatches_InterfaceAssignability(t *testing.T) {
	t.Parallel()

	b := greeterBean("greeter")
	assert.True(t, Matches(TypeOf[Greeter](), nil, b))
}

// TestMatches_EmptyRequestImpliesDefault verifies a request without
// qualifiers requires the implicit Default qualifier.
func TestMatches_EmptyRequestImpliesDefault(t *testing.T) {
	t.Parallel()

	unqualified := greeterBean("plain")
	named := greeterBean("named", Qualified(Named("loud")))

	assert.True(t, Matches(TypeOf[Greeter](), nil, unqualified))
	assert.False(t, Matches(TypeOf[Greeter](), nil, named))
}

// TestMatches_AnyOnlyBeanMatchesEmptyRequest verifies a bean declaring
// nothing but Any still satisfies an unqualified request.
func TestMatches_AnyOnlyBeanMatchesEmptyRequest(t *testing.T) {
	t.Parallel()

	b := greeterBean("anyonly", Qualified(Any()))
	assert.True(t, Matches(TypeOf[Greeter](), nil, b))
}

// TestMatches_RequestedAnyMatchesUnconditionally verifies Any on the request
// side matches every bean of the type.
func TestMatches_RequestedAnyMatchesUnconditionally(t *testing.T) {
	t.Parallel()

	named := greeterBean("named", Qualified(Named("loud")))
	assert.True(t, Matches(TypeOf[Greeter](), []Qualifier{Any()}, named))
}

// TestMatches_AllRequestedQualifiersRequired verifies every requested
// qualifier needs an equal counterpart on the bean.
func TestMatches_AllRequestedQualifiersRequired(t *testing.T) {
	t.Parallel()

	b := greeterBean("named", Qualified(Named("loud")))

	assert.True(t, Matches(TypeOf[Greeter](), []Qualifier{Named("loud")}, b))
	assert.False(t, Matches(TypeOf[Greeter](), []Qualifier{Named("quiet")}, b))
	assert.False(t, Matches(TypeOf[Greeter](), []Qualifier{Named("loud"), Named("quiet")}, b))
}

// TestMatches_ExplicitDefaultDeclaration verifies an explicitly declared
// Default behaves like the implicit one.
func TestMatches_ExplicitDefaultDeclaration(t *testing.T) {
	t.Parallel()

	b := greeterBean("both", Qualified(Default(), Named("loud")))

	assert.True(t, Matches(TypeOf[Greeter](), nil, b))
	assert.True(t, Matches(TypeOf[Greeter](), []Qualifier{Named("loud")}, b))
}

// TestEventTypeMatches verifies runtime-type participation: firing a subtype
// reaches observers of the supertype even when the declared type differs.
func TestEventTypeMatches(t *testing.T) {
	t.Parallel()

	observed := TypeOf[Greeter]()

	assert.True(t, eventTypeMatches(observed, TypeOf[Greeter](), TypeOf[EnglishGreeter]()))
	assert.True(t, eventTypeMatches(observed, nil, TypeOf[EnglishGreeter]()))
	assert.True(t, eventTypeMatches(TypeOf[EnglishGreeter](), TypeOf[EnglishGreeter](), nil))
	assert.False(t, eventTypeMatches(TypeOf[FrenchGreeter](), TypeOf[EnglishGreeter](), TypeOf[EnglishGreeter]()))
}

// TestEventQualifiersMatch verifies the observer-side rule: observed
// qualifiers must all appear among the fired set, Any matching anything.
func TestEventQualifiersMatch(t *testing.T) {
	t.Parallel()

	assert.True(t, eventQualifiersMatch(nil, nil))
	assert.True(t, eventQualifiersMatch(nil, []Qualifier{Named("x")}))
	assert.True(t, eventQualifiersMatch([]Qualifier{Any()}, []Qualifier{Named("x")}))
	assert.True(t, eventQualifiersMatch([]Qualifier{Named("x")}, []Qualifier{Named("x"), Named("y")}))
	assert.False(t, eventQualifiersMatch([]Qualifier{Named("z")}, []Qualifier{Named("x")}))
	assert.False(t, eventQualifiersMatch([]Qualifier{Named("x")}, nil))
}
