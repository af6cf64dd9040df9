package algebra

import (
	"strings"

	"github.com/cmh231/symrewrite/internal/util"
)

// Property is a node in the inheritance lattice: a named type tag with an
// ordered list of direct parents. Two properties are equal iff their
// FullName matches; object identity carries no meaning.
//
// Properties are built once, bottom-up (parents must already exist), and
// are immutable and safe to share by reference across any number of
// Expressions and Patterns.
type Property struct {
	name     string
	parents  []*Property
	fullName string
	hash     string
}

// NewProperty constructs a Property with the given name and direct
// parents. fullName and its content hash are computed eagerly, since
// parents are required to already be fully constructed (construction is
// strictly bottom-up, so there is no benefit to deferring the work and
// every later read is then lock-free).
func NewProperty(name string, parents []*Property) *Property {
	p := &Property{name: name, parents: append([]*Property(nil), parents...)}
	p.fullName = p.computeFullName()
	p.hash = util.SHA1Hex([]byte(p.fullName))
	return p
}

// Anonymous returns a synthetic property named "λ" inheriting from every
// parent given, letting a single attached property satisfy several
// unrelated pattern property constraints at once.
func Anonymous(parents []*Property) *Property {
	return NewProperty("λ", parents)
}

func (p *Property) computeFullName() string {
	var b strings.Builder
	b.WriteString(p.name)
	b.WriteByte('(')
	for i, parent := range p.parents {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(parent.FullName())
	}
	b.WriteByte(')')
	return b.String()
}

// Name returns the property's own (non-qualified) name.
func (p *Property) Name() string { return p.name }

// Parents returns the direct parents this property inherits from, in
// declaration order.
func (p *Property) Parents() []*Property { return p.parents }

// FullName returns the cached, stable string built from this property's
// complete inheritance tree.
func (p *Property) FullName() string { return p.fullName }

// Hash returns the cached content hash of FullName, used by callers (and
// by the StringOpts.PrintHash stringifier) that need a short stable
// fingerprint rather than the full recursive name.
func (p *Property) Hash() string { return p.hash }

// Equals reports whether two properties have the same FullName.
func (p *Property) Equals(other *Property) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.fullName == other.fullName
}

// CollectAncestorsIn walks this property's upward cone (self, then
// parents, iteratively, with an explicit work stack rather than
// recursion) and returns every ancestor found in targets, preserving
// encounter order and multiplicity.
//
// If self is found in targets: self is included. When deep is false the
// walk stops descending through this node (its parents are not visited
// via this branch); when deep is true the walk continues into parents
// regardless.
//
// If self is not found in targets: self is never included, but the walk
// always continues into parents regardless of deep.
func (p *Property) CollectAncestorsIn(targets []*Property, deep bool) []*Property {
	var results []*Property

	type frame struct {
		node *Property
	}
	stack := []frame{{p}}

	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n].node
		stack = stack[:n]

		found := false
		for _, t := range targets {
			if cur.Equals(t) {
				found = true
				break
			}
		}

		if found {
			results = append(results, cur)
			if !deep {
				continue
			}
		}

		// Push parents so they are processed in declaration order; since
		// this is a stack, push in reverse.
		for i := len(cur.parents) - 1; i >= 0; i-- {
			stack = append(stack, frame{cur.parents[i]})
		}
	}

	return results
}

// Inherits reports whether the multiset of ancestors this property finds
// in targets (via CollectAncestorsIn) equals the multiset targets itself
// — i.e. every target appears at least once (and exactly as many times as
// listed) in this property's upward cone.
func (p *Property) Inherits(targets []*Property, deep bool) bool {
	found := p.CollectAncestorsIn(targets, deep)
	return multisetEqual(found, targets)
}

// multisetEqual compares two Property slices as multisets, using
// FullName equality rather than object identity.
func multisetEqual(a, b []*Property) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, p := range a {
		counts[p.fullName]++
	}
	for _, p := range b {
		counts[p.fullName]--
	}
	for _, c := range counts {
		if c != 0 {
			return false
		}
	}
	return true
}

// StringOpts controls Property/Pattern stringification. Unlike the
// original implementation's process-wide printHash toggle, this is passed
// explicitly by the caller at each call site (see SPEC_FULL.md §9).
type StringOpts struct {
	// PrintHash appends the property's content hash to its name.
	PrintHash bool
}

// String renders the property per spec: its name alone, or name<hash>
// when opts.PrintHash is set.
func (p *Property) String(opts StringOpts) string {
	if !opts.PrintHash {
		return p.name
	}
	return p.name + "<" + p.hash + ">"
}
