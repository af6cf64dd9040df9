package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmh231/symrewrite/internal/algebra"
)

func TestBuildSingleInheritanceChain(t *testing.T) {
	root := Node{
		Name: "Object",
		Children: []Node{
			{Name: "Building", Children: []Node{
				{Name: "StableBuilding"},
			}},
			{Name: "DynamicObject", Children: []Node{
				{Name: "StableDynamicObject"},
			}},
		},
	}

	tree, byName, err := Build(root)
	require.NoError(t, err)
	require.Len(t, byName, 5)

	object := byName["Object"]
	building := byName["Building"]
	stableBuilding := byName["StableBuilding"]

	assert.Empty(t, object.Parents())
	require.Len(t, building.Parents(), 1)
	assert.True(t, building.Parents()[0].Equals(object))
	assert.True(t, stableBuilding.Inherits([]*algebra.Property{building, object}, true))

	assert.Same(t, object, tree.Property)
	require.Len(t, tree.Children, 2)
	assert.Same(t, building, tree.Children[0].Property)
}

func TestBuildRejectsDuplicateNames(t *testing.T) {
	root := Node{
		Name: "Object",
		Children: []Node{
			{Name: "Dup"},
			{Name: "Dup"},
		},
	}

	_, _, err := Build(root)
	require.Error(t, err)

	var algebraErr *algebra.Error
	require.ErrorAs(t, err, &algebraErr)
	assert.Equal(t, algebra.KindNameCollision, algebraErr.Kind)
}

func TestBuildSingleNode(t *testing.T) {
	tree, byName, err := Build(Node{Name: "Root"})
	require.NoError(t, err)
	assert.Len(t, byName, 1)
	assert.Empty(t, tree.Children)
}
