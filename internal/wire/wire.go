// Package wire defines the JSON shapes cmd/rewrite reads from disk (or
// round-trips through internal/store) and the functions that resolve
// them, via internal/registry, into live internal/algebra values.
//
// Expressions, patterns, and rules are always constructed this way —
// from JSON or programmatically — never parsed from arbitrary source
// text; front-end parsing is out of this system's scope.
package wire

import (
	"encoding/json"
	"fmt"

	"github.com/cmh231/symrewrite/internal/algebra"
	"github.com/cmh231/symrewrite/internal/registry"
	"github.com/cmh231/symrewrite/internal/template"
)

// TemplateNode mirrors internal/template.Node for JSON round-tripping.
type TemplateNode struct {
	Name     string         `json:"name"`
	Children []TemplateNode `json:"children,omitempty"`
}

func (n TemplateNode) toTemplateNode() template.Node {
	children := make([]template.Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.toTemplateNode()
	}
	return template.Node{Name: n.Name, Children: children}
}

// LoadTemplate parses raw as a TemplateNode tree, builds the property
// lattice it describes, and registers every named property into reg.
func LoadTemplate(raw []byte, reg *registry.Registry) (*template.Tree, error) {
	var node TemplateNode
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, fmt.Errorf("wire: decoding template: %w", err)
	}

	tree, byName, err := template.Build(node.toTemplateNode())
	if err != nil {
		return nil, err
	}
	if err := reg.RegisterProperties(byName); err != nil {
		return nil, err
	}
	return tree, nil
}

// ExprDef is the JSON shape of an Expression: a named node typed with a
// property already present in the registry, applied to child
// expressions.
type ExprDef struct {
	Name     string    `json:"name"`
	Property string    `json:"property"`
	Children []ExprDef `json:"children,omitempty"`
}

// BuildExpr resolves def against reg, recursively constructing the
// Expression it describes.
func BuildExpr(def ExprDef, reg *registry.Registry) (*algebra.Expression, error) {
	prop, err := reg.Property(def.Property)
	if err != nil {
		return nil, fmt.Errorf("wire: expression %q: %w", def.Name, err)
	}
	children := make([]*algebra.Expression, len(def.Children))
	for i, c := range def.Children {
		child, err := BuildExpr(c, reg)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return algebra.NewExpression(def.Name, prop, children), nil
}

// PatternDef is the JSON shape of a Pattern node: at most one of Index or
// Literal may be set, matching algebra.NewPattern's own validation.
type PatternDef struct {
	Name        *string      `json:"name,omitempty"`
	Property    string       `json:"property"`
	Index       *int         `json:"index,omitempty"`
	Literal     *ExprDef     `json:"literal,omitempty"`
	Children    []PatternDef `json:"children,omitempty"`
	CheckLabels bool         `json:"checkLabels,omitempty"`
}

// BuildPattern resolves def against reg, recursively constructing the
// Pattern it describes.
func BuildPattern(def PatternDef, reg *registry.Registry) (*algebra.Pattern, error) {
	prop, err := reg.Property(def.Property)
	if err != nil {
		return nil, fmt.Errorf("wire: pattern: %w", err)
	}

	var literal *algebra.Expression
	if def.Literal != nil {
		literal, err = BuildExpr(*def.Literal, reg)
		if err != nil {
			return nil, err
		}
	}

	children := make([]*algebra.Pattern, len(def.Children))
	for i, c := range def.Children {
		child, err := BuildPattern(c, reg)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}

	return algebra.NewPattern(def.Name, prop, def.Index, literal, children, def.CheckLabels)
}

// RuleDef is the JSON shape of a Rule: a name plus an input and output
// pattern definition.
type RuleDef struct {
	Name   string     `json:"name"`
	Input  PatternDef `json:"input"`
	Output PatternDef `json:"output"`
}

// BuildRule resolves def against reg, constructing (and validating) the
// Rule it describes.
func BuildRule(def RuleDef, reg *registry.Registry) (*algebra.Rule, error) {
	input, err := BuildPattern(def.Input, reg)
	if err != nil {
		return nil, fmt.Errorf("wire: rule %q input: %w", def.Name, err)
	}
	output, err := BuildPattern(def.Output, reg)
	if err != nil {
		return nil, fmt.Errorf("wire: rule %q output: %w", def.Name, err)
	}
	return algebra.NewRule(def.Name, input, output)
}

// LoadRules parses raw as a list of RuleDef, builds and registers each
// rule into reg, and returns them in file order.
func LoadRules(raw []byte, reg *registry.Registry) ([]*algebra.Rule, error) {
	var defs []RuleDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("wire: decoding rules: %w", err)
	}

	rules := make([]*algebra.Rule, len(defs))
	for i, def := range defs {
		rule, err := BuildRule(def, reg)
		if err != nil {
			return nil, err
		}
		if err := reg.RegisterRule(rule); err != nil {
			return nil, err
		}
		rules[i] = rule
	}
	return rules, nil
}

// LoadExpr parses raw as a single ExprDef and builds it.
func LoadExpr(raw []byte, reg *registry.Registry) (*algebra.Expression, error) {
	var def ExprDef
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("wire: decoding expression: %w", err)
	}
	return BuildExpr(def, reg)
}
