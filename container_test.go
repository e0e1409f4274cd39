package knit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolve_SingleCandidate verifies the plain happy path.
func TestResolve_SingleCandidate(t *testing.T) {
	t.Parallel()

	b := greeterBean("greeter")
	c := newContainer(t, []*Bean{b}, nil)

	got, err := c.Resolve(TypeOf[Greeter]())
	require.NoError(t, err)
	assert.Same(t, b, got)
}

// TestResolve_Deterministic verifies repeated resolution over a fixed
// registry returns the same bean.
func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	b := greeterBean("greeter")
	c := newContainer(t, []*Bean{b, greeterBean("named", Qualified(Named("other")))}, nil)

	for i := 0; i < 10; i++ {
		got, err := c.Resolve(TypeOf[Greeter]())
		require.NoError(t, err)
		assert.Same(t, b, got)
	}
}

// TestResolve_Unsatisfied verifies the error names the requested type and
// qualifiers.
func TestResolve_Unsatisfied(t *testing.T) {
	t.Parallel()

	c := newContainer(t, []*Bean{greeterBean("greeter")}, nil)

	_, err := c.Resolve(TypeOf[Greeter](), Named("missing"))
	var unsatisfied *UnsatisfiedResolutionError
	require.ErrorAs(t, err, &unsatisfied)
	assert.Equal(t, TypeOf[Greeter](), unsatisfied.Type)
	assert.Contains(t, err.Error(), "Named")
}

// TestResolve_AmbiguousListsCandidates verifies two unranked candidates fail
// with every remaining identity in the diagnostics.
func TestResolve_AmbiguousListsCandidates(t *testing.T) {
	t.Parallel()

	c := newContainer(t, []*Bean{greeterBean("first"), greeterBean("second")}, nil)

	_, err := c.Resolve(TypeOf[Greeter]())
	var ambiguous *AmbiguousResolutionError
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []string{"first", "second"}, ambiguous.Candidates)
}

// TestResolve_AlternativeWinsByPriority verifies the highest-priority
// alternative narrows an ambiguous set to a single winner.
func TestResolve_AlternativeWinsByPriority(t *testing.T) {
	t.Parallel()

	ten := greeterBean("prio10", Alternative(10))
	five := greeterBean("prio5", Alternative(5))
	plain := greeterBean("plain")
	c := newContainer(t, []*Bean{plain, five, ten}, nil)

	got, err := c.Resolve(TypeOf[Greeter]())
	require.NoError(t, err)
	assert.Same(t, ten, got)
}

// TestResolve_TiedAlternativesStayAmbiguous verifies two alternatives with
// equal priority still fail, listing only the narrowed set.
func TestResolve_TiedAlternativesStayAmbiguous(t *testing.T) {
	t.Parallel()

	a := greeterBean("alt-a", Alternative(7))
	b := greeterBean("alt-b", Alternative(7))
	plain := greeterBean("plain")
	c := newContainer(t, []*Bean{plain, a, b}, nil)

	_, err := c.Resolve(TypeOf[Greeter]())
	var ambiguous *AmbiguousResolutionError
	require.ErrorAs(t, err, &ambiguous)
	assert.ElementsMatch(t, []string{"alt-a", "alt-b"}, ambiguous.Candidates)
}

// TestInstance_ResolvesAndMaterializes verifies the one-step typed helper.
func TestInstance_ResolvesAndMaterializes(t *testing.T) {
	t.Parallel()

	c := newContainer(t, []*Bean{greeterBean("greeter")}, nil)
	cc := c.NewCreationalContext()
	defer cc.Release()

	g, err := Instance[Greeter](c, cc)
	require.NoError(t, err)
	assert.Equal(t, "hello", g.Greet())
}

// TestAccessor verifies the typed handle resolves the same bean and
// materializes instances.
func TestAccessor(t *testing.T) {
	t.Parallel()

	b := greeterBean("named", Qualified(Named("loud")))
	c := newContainer(t, []*Bean{greeterBean("plain"), b}, nil)

	h := Accessor[Greeter](c, Named("loud"))

	resolved, err := h.Bean()
	require.NoError(t, err)
	assert.Same(t, b, resolved)

	cc := c.NewCreationalContext()
	defer cc.Release()

	g, err := h.Get(cc)
	require.NoError(t, err)
	assert.Equal(t, "hello", g.Greet())
}

// TestAccessorPeek verifies Peek probes shared storage without creating.
func TestAccessorPeek(t *testing.T) {
	t.Parallel()

	tr := &tracker{}
	b := trackedBean("shared", ApplicationScoped, tr)
	c := newContainer(t, []*Bean{b}, nil)
	require.NoError(t, c.Activate(ApplicationScoped, "main"))
	defer c.Deactivate(ApplicationScoped)

	h := Accessor[*tracker](c)

	_, ok := h.Peek()
	assert.False(t, ok)
	assert.Zero(t, tr.created)

	cc := c.NewCreationalContext()
	defer cc.Release()
	_, err := h.Get(cc)
	require.NoError(t, err)

	got, ok := h.Peek()
	require.True(t, ok)
	assert.Same(t, tr, got)
}
