package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmh231/symrewrite/internal/algebra"
)

func TestRegisterAndLookupProperty(t *testing.T) {
	r := New()
	op := algebra.NewProperty("Operator", nil)

	require.NoError(t, r.RegisterProperty("Operator", op))

	got, err := r.Property("Operator")
	require.NoError(t, err)
	assert.Same(t, op, got)
}

func TestRegisterPropertyRejectsDuplicateName(t *testing.T) {
	r := New()
	op := algebra.NewProperty("Operator", nil)
	require.NoError(t, r.RegisterProperty("Operator", op))

	err := r.RegisterProperty("Operator", algebra.NewProperty("Operator", nil))
	assert.Error(t, err)
}

func TestPropertyMissingReturnsErrNotFound(t *testing.T) {
	r := New()
	_, err := r.Property("Nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterPropertiesBulkAtomicOnConflict(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterProperty("A", algebra.NewProperty("A", nil)))

	err := r.RegisterProperties(map[string]*algebra.Property{
		"B": algebra.NewProperty("B", nil),
		"A": algebra.NewProperty("A", nil),
	})
	assert.Error(t, err, "a conflict on any key must fail the whole bulk registration")

	_, err = r.Property("B")
	assert.ErrorIs(t, err, ErrNotFound, "B must not have been registered when the bulk call failed")
}

func TestRegisterAndLookupRule(t *testing.T) {
	r := New()
	op := algebra.NewProperty("Operator", nil)
	idx := 0
	hole, err := algebra.NewPattern(nil, op, &idx, nil, nil, false)
	require.NoError(t, err)
	rule, err := algebra.NewRule("identity", hole, hole)
	require.NoError(t, err)

	require.NoError(t, r.RegisterRule(rule))

	got, err := r.Rule("identity")
	require.NoError(t, err)
	assert.Same(t, rule, got)
}

func TestListPropertiesAndRules(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterProperty("A", algebra.NewProperty("A", nil)))
	require.NoError(t, r.RegisterProperty("B", algebra.NewProperty("B", nil)))

	names := r.ListProperties()
	assert.ElementsMatch(t, []string{"A", "B"}, names)
}

func TestClearRemovesEverything(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterProperty("A", algebra.NewProperty("A", nil)))
	r.Clear()

	assert.Empty(t, r.ListProperties())
	_, err := r.Property("A")
	assert.ErrorIs(t, err, ErrNotFound)
}
