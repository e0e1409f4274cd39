package knit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQualifierEqual_SameNameAndMembers verifies exact equality over name and
// binding member values.
func TestQualifierEqual_SameNameAndMembers(t *testing.T) {
	t.Parallel()

	a := Named("x")
	b := Named("x")
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
}

// TestQualifierEqual_MemberValueMismatch verifies that differing binding
// member values do not match: @Named("x") never matches @Named("y").
func TestQualifierEqual_MemberValueMismatch(t *testing.T) {
	t.Parallel()

	assert.False(t, Named("x").Equal(Named("y")))
}

// TestQualifierEqual_NameMismatch verifies differing qualifier names never
// match even with identical members.
func TestQualifierEqual_NameMismatch(t *testing.T) {
	t.Parallel()

	a := NewQualifier("Color", Member{Name: "value", Value: "red"})
	b := NewQualifier("Paint", Member{Name: "value", Value: "red"})
	assert.False(t, a.Equal(b))
}

// TestQualifierEqual_NonBindingIgnored verifies members marked non-binding do
// not participate in equality.
func TestQualifierEqual_NonBindingIgnored(t *testing.T) {
	t.Parallel()

	a := NewQualifier("Timeout",
		Member{Name: "seconds", Value: 30},
		Member{Name: "comment", Value: "fast", NonBinding: true},
	)
	b := NewQualifier("Timeout",
		Member{Name: "seconds", Value: 30},
		Member{Name: "comment", Value: "slow", NonBinding: true},
	)
	assert.True(t, a.Equal(b))
}

// TestQualifierEqual_BindingMemberCountMismatch verifies a missing binding
// member is a non-match even when the shared members agree.
func TestQualifierEqual_BindingMemberCountMismatch(t *testing.T) {
	t.Parallel()

	a := NewQualifier("Timeout", Member{Name: "seconds", Value: 30})
	b := NewQualifier("Timeout",
		Member{Name: "seconds", Value: 30},
		Member{Name: "retries", Value: 3},
	)
	assert.False(t, a.Equal(b))
}

// TestQualifierBuiltins verifies the reserved Any and Default tags.
func TestQualifierBuiltins(t *testing.T) {
	t.Parallel()

	assert.True(t, Any().IsAny())
	assert.False(t, Any().IsDefault())
	assert.True(t, Default().IsDefault())
	assert.False(t, Default().IsAny())
}

// TestQualifierValidate rejects empty and duplicate member names.
func TestQualifierValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Named("x").validate())

	bad := NewQualifier("Broken", Member{Name: "", Value: 1})
	assert.Error(t, bad.validate())

	dup := NewQualifier("Broken",
		Member{Name: "value", Value: 1},
		Member{Name: "value", Value: 2},
	)
	assert.Error(t, dup.validate())

	unnamed := Qualifier{}
	assert.Error(t, unnamed.validate())
}

// TestQualifierString renders diagnostics like @Named(value=x).
func TestQualifierString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "@Default", Default().String())
	assert.Equal(t, "@Named(value=x)", Named("x").String())
}
