package algebra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpressionEqualsStructural(t *testing.T) {
	op := NewProperty("Operator", nil)
	a := NewExpression("Add", op, []*Expression{
		NewExpression("X", op, nil),
		NewExpression("Y", op, nil),
	})
	b := NewExpression("Add", op, []*Expression{
		NewExpression("X", op, nil),
		NewExpression("Y", op, nil),
	})

	assert.True(t, a.Equals(b), "structurally identical expressions built separately must be equal")
	assert.NotSame(t, a, b)
}

func TestExpressionEqualsDiffersOnProperty(t *testing.T) {
	op := NewProperty("Operator", nil)
	herm := NewProperty("Hermitian", []*Property{op})
	a := NewExpression("X", op, nil)
	b := NewExpression("X", herm, nil)

	assert.False(t, a.Equals(b))
}

func TestExpressionHashStableAndContentSensitive(t *testing.T) {
	op := NewProperty("Operator", nil)
	a := NewExpression("Add", op, []*Expression{NewExpression("X", op, nil)})
	b := NewExpression("Add", op, []*Expression{NewExpression("X", op, nil)})
	c := NewExpression("Add", op, []*Expression{NewExpression("Y", op, nil)})

	assert.Equal(t, a.Hash(), a.Hash(), "hash must be stable across repeated calls")
	assert.Equal(t, a.Hash(), b.Hash(), "structurally equal expressions must hash the same")
	assert.NotEqual(t, a.Hash(), c.Hash())
}

func TestExpressionString(t *testing.T) {
	op := NewProperty("Operator", nil)
	expr := NewExpression("Add", op, []*Expression{
		NewExpression("X", op, nil),
		NewExpression("Y", op, nil),
	})

	assert.Equal(t, "Add(X(), Y())", expr.String())
}
