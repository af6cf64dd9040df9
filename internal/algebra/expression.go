package algebra

import (
	"strings"
	"sync"

	"github.com/cmh231/symrewrite/internal/util"
)

// Expression is an immutable node in the term tree: a named operator
// applied, in order, to child Expressions, carrying a Property type tag.
// Equality is structural; expressions are never mutated after
// construction and are safe to share by reference.
type Expression struct {
	name     string
	property *Property
	children []*Expression

	hashOnce sync.Once
	hash     string
}

// NewExpression constructs an Expression. No arity is enforced here —
// what an operator requires is a matter for the Pattern that rewrites it,
// not the Expression itself.
func NewExpression(name string, property *Property, children []*Expression) *Expression {
	return &Expression{
		name:     name,
		property: property,
		children: append([]*Expression(nil), children...),
	}
}

func (e *Expression) Name() string { return e.name }

func (e *Expression) Property() *Property { return e.property }

func (e *Expression) Children() []*Expression { return e.children }

// Equals reports structural equality: same name, equal property, and
// recursively equal children in the same order.
func (e *Expression) Equals(other *Expression) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.name != other.name {
		return false
	}
	if !e.property.Equals(other.property) {
		return false
	}
	if len(e.children) != len(other.children) {
		return false
	}
	for i, c := range e.children {
		if !c.Equals(other.children[i]) {
			return false
		}
	}
	return true
}

// Hash returns a stable content hash derived from name, property full
// name, and the hashes of every child, computed lazily and cached once.
// Safe under concurrent calls published after construction (sync.Once
// guards the one computation).
func (e *Expression) Hash() string {
	e.hashOnce.Do(func() {
		var b strings.Builder
		b.WriteString(e.name)
		b.WriteByte('|')
		b.WriteString(e.property.FullName())
		for _, c := range e.children {
			b.WriteByte('|')
			b.WriteString(c.Hash())
		}
		e.hash = util.SHA1Hex([]byte(b.String()))
	})
	return e.hash
}

// String renders the expression as name(child1, child2, ...),
// recursively, depth-first.
func (e *Expression) String() string {
	var b strings.Builder
	b.WriteString(e.name)
	b.WriteByte('(')
	for i, c := range e.children {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String())
	}
	b.WriteByte(')')
	return b.String()
}
