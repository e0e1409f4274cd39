package knit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Greeter is the shared interface fixture used across resolution tests.
type Greeter interface {
	Greet() string
}

type EnglishGreeter struct{}

func (EnglishGreeter) Greet() string { return "hello" }

type FrenchGreeter struct{}

func (FrenchGreeter) Greet() string { return "bonjour" }

// tracker counts factory and destroy calls for one bean definition.
type tracker struct {
	created   int
	destroyed int
}

func trackedBean(name string, scope Scope, tr *tracker, opts ...BeanOption) *Bean {
	all := append([]BeanOption{
		In(scope),
		OnDestroy(func(instance *tracker, cc *CreationalContext) error {
			tr.destroyed++
			return nil
		}),
	}, opts...)
	return Define(name, func(cc *CreationalContext) (*tracker, error) {
		tr.created++
		return tr, nil
	}, all...)
}

func newContainer(t *testing.T, beans []*Bean, observers []*ObserverMethod, opts ...Option) *Container {
	t.Helper()

	reg := NewRegistry()
	for _, b := range beans {
		require.NoError(t, reg.Register(b))
	}
	for _, o := range observers {
		require.NoError(t, reg.RegisterObserver(o))
	}

	c, err := New(reg, opts...)
	require.NoError(t, err)
	return c
}
