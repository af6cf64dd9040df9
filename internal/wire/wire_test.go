package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmh231/symrewrite/internal/algebra"
	"github.com/cmh231/symrewrite/internal/registry"
)

func TestLoadTemplateRegistersProperties(t *testing.T) {
	reg := registry.New()
	raw := []byte(`{
		"name": "Operator",
		"children": [
			{"name": "Hermitian", "children": []}
		]
	}`)

	tree, err := LoadTemplate(raw, reg)
	require.NoError(t, err)
	assert.Equal(t, "Operator", tree.Property.Name())

	herm, err := reg.Property("Hermitian")
	require.NoError(t, err)
	op, err := reg.Property("Operator")
	require.NoError(t, err)
	assert.True(t, herm.Inherits([]*algebra.Property{op}, false))
}

func TestBuildExprResolvesRegisteredProperty(t *testing.T) {
	reg := registry.New()
	_, err := LoadTemplate([]byte(`{"name":"Operator","children":[]}`), reg)
	require.NoError(t, err)

	expr, err := BuildExpr(ExprDef{Name: "X", Property: "Operator"}, reg)
	require.NoError(t, err)
	assert.Equal(t, "X", expr.Name())
	assert.Equal(t, "Operator", expr.Property().Name())
}

func TestBuildExprUnknownPropertyFails(t *testing.T) {
	reg := registry.New()
	_, err := BuildExpr(ExprDef{Name: "X", Property: "Missing"}, reg)
	assert.Error(t, err)
}

func TestBuildRuleIdentity(t *testing.T) {
	reg := registry.New()
	_, err := LoadTemplate([]byte(`{"name":"Operator","children":[]}`), reg)
	require.NoError(t, err)

	zero := 0
	def := RuleDef{
		Name:  "identity",
		Input: PatternDef{Property: "Operator", Index: &zero},
		Output: PatternDef{
			Property: "Operator",
			Index:    &zero,
		},
	}
	rule, err := BuildRule(def, reg)
	require.NoError(t, err)
	assert.Equal(t, "identity", rule.Name())
}

func TestLoadRulesRegistersEachRule(t *testing.T) {
	reg := registry.New()
	_, err := LoadTemplate([]byte(`{"name":"Operator","children":[]}`), reg)
	require.NoError(t, err)

	raw := []byte(`[
		{"name":"identity","input":{"property":"Operator","index":0},"output":{"property":"Operator","index":0}}
	]`)

	rules, err := LoadRules(raw, reg)
	require.NoError(t, err)
	require.Len(t, rules, 1)

	got, err := reg.Rule("identity")
	require.NoError(t, err)
	assert.Same(t, rules[0], got)
}

func TestLoadExprNestedChildren(t *testing.T) {
	reg := registry.New()
	_, err := LoadTemplate([]byte(`{"name":"Operator","children":[]}`), reg)
	require.NoError(t, err)

	raw := []byte(`{
		"name": "Add",
		"property": "Operator",
		"children": [
			{"name": "X", "property": "Operator"},
			{"name": "Y", "property": "Operator"}
		]
	}`)
	expr, err := LoadExpr(raw, reg)
	require.NoError(t, err)
	assert.Equal(t, "Add(X(), Y())", expr.String())
}
