// Package rewrite re-exports the public surface of internal/algebra so
// callers have a single stable import path instead of reaching into an
// internal package directly.
package rewrite

import "github.com/cmh231/symrewrite/internal/algebra"

// Type aliases for the algebra package's contracts, kept stable even if
// the internal layout underneath changes.
type (
	Property      = algebra.Property
	Expression    = algebra.Expression
	Pattern       = algebra.Pattern
	Rule          = algebra.Rule
	Error         = algebra.Error
	ErrorKind     = algebra.Kind
	CaptureRecord = algebra.CaptureRecord
)

// Error kinds are re-exported for backward-compatible error inspection
// via errors.As.
const (
	KindNameCollision = algebra.KindNameCollision
	KindPatternShape  = algebra.KindPatternShape
	KindRuleValidity  = algebra.KindRuleValidity
	KindSubstitution  = algebra.KindSubstitution
)

// NewProperty constructs a named property in the inheritance lattice.
func NewProperty(name string, parents []*Property) *Property {
	return algebra.NewProperty(name, parents)
}

// NewExpression constructs a term node typed with property, applied to
// children.
func NewExpression(name string, property *Property, children []*Expression) *Expression {
	return algebra.NewExpression(name, property, children)
}

// NewPattern constructs a pattern node. At most one of index or literal
// may be set.
func NewPattern(name *string, property *Property, index *int, literal *Expression, children []*Pattern, checkLabels bool) (*Pattern, error) {
	return algebra.NewPattern(name, property, index, literal, children, checkLabels)
}

// NewRule constructs and validates a rewrite rule from an input and
// output pattern.
func NewRule(name string, input, output *Pattern) (*Rule, error) {
	return algebra.NewRule(name, input, output)
}

// ApplyRule applies rule to expr, returning expr unchanged if it does
// not match.
func ApplyRule(rule *Rule, expr *Expression) *Expression {
	return algebra.ApplyRule(rule, expr)
}

// Instantiate builds a fresh Expression from pattern using a capture
// environment produced by a successful match.
func Instantiate(pattern *Pattern, env []*Expression) (*Expression, error) {
	return algebra.Instantiate(pattern, env)
}

// Captures walks pattern and expr together, returning the capture records
// made along the way and whether they are consistent. It does not check
// shape, names, or properties: expr is assumed to have passed
// pattern.CheckShape already.
func Captures(pattern *Pattern, expr *Expression) ([]CaptureRecord, bool) {
	return algebra.Captures(pattern, expr)
}
