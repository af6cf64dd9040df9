package algebra

import (
	"strconv"
	"strings"
)

// Pattern is a node in the pattern tree, mirroring the shape of the
// expression it is meant to match. Each node is either a literal anchor
// (literal set), a capture hole (index set), or — tolerated during
// matching, though never valid as part of a Rule's output pattern — an
// anonymous shape constraint carrying neither.
type Pattern struct {
	name        *string
	property    *Property
	index       *int
	literal     *Expression
	children    []*Pattern
	checkLabels bool
}

// NewPattern validates and constructs a Pattern.
//
//   - index and literal cannot both be set (a node is either a capture
//     hole or an anchor, not both).
//   - if literal is set, its property must be a subtype of property.
//   - if index is set, it must be >= 0.
func NewPattern(name *string, property *Property, index *int, literal *Expression, children []*Pattern, checkLabels bool) (*Pattern, error) {
	if index != nil && literal != nil {
		return nil, newError(KindPatternShape, "pattern cannot carry both an index and a literal")
	}
	if literal != nil {
		if !literal.Property().Inherits([]*Property{property}, false) {
			return nil, newError(KindPatternShape, "literal expression "+literal.String()+" does not inherit the pattern's property")
		}
	}
	if index != nil && *index < 0 {
		return nil, newError(KindPatternShape, "index cannot be negative")
	}

	return &Pattern{
		name:        name,
		property:    property,
		index:       index,
		literal:     literal,
		children:    append([]*Pattern(nil), children...),
		checkLabels: checkLabels,
	}, nil
}

func (p *Pattern) Name() *string { return p.name }

func (p *Pattern) Property() *Property { return p.property }

func (p *Pattern) Index() *int { return p.index }

func (p *Pattern) Literal() *Expression { return p.literal }

func (p *Pattern) Children() []*Pattern { return p.children }

func (p *Pattern) CheckLabels() bool { return p.checkLabels }

// IndexList returns, in document order (this node first if it carries an
// index, then each child in order), every capture index occurring in the
// pattern. Duplicates are preserved.
func (p *Pattern) IndexList() []int {
	var out []int
	if p.index != nil {
		out = append(out, *p.index)
	}
	for _, c := range p.children {
		out = append(out, c.IndexList()...)
	}
	return out
}

// IndexUniqueness reports whether IndexList has no duplicates (a linear
// pattern).
func (p *Pattern) IndexUniqueness() bool {
	list := p.IndexList()
	seen := make(map[int]struct{}, len(list))
	for _, i := range list {
		if _, ok := seen[i]; ok {
			return false
		}
		seen[i] = struct{}{}
	}
	return true
}

type indexedPattern struct {
	index   int
	pattern *Pattern
}

// rawIndexPatterns walks the pattern (this node first, then children in
// order) collecting every (index, pattern-node) pair.
func (p *Pattern) rawIndexPatterns() []indexedPattern {
	var out []indexedPattern
	if p.index != nil {
		out = append(out, indexedPattern{*p.index, p})
	}
	for _, c := range p.children {
		out = append(out, c.rawIndexPatterns()...)
	}
	return out
}

// IndicesHaveConsistentPatterns reports whether, for every index value
// appearing more than once in the pattern, all the pattern nodes carrying
// it are structurally equal (same name, property, literal/index-shape,
// checkLabels, and children shape, recursively).
func (p *Pattern) IndicesHaveConsistentPatterns() bool {
	raw := p.rawIndexPatterns()
	canonical := make(map[int]*Pattern, len(raw))
	for _, ip := range raw {
		if existing, ok := canonical[ip.index]; ok {
			if !patternShapeEqual(existing, ip.pattern) {
				return false
			}
			continue
		}
		canonical[ip.index] = ip.pattern
	}
	return true
}

// PatternSlots is a sparse, zero-based array of pattern nodes indexed by
// capture index, sized to maxIndex+1 so that index 0 (and every index up
// to the largest one used) is directly addressable.
type PatternSlots []*Pattern

// At safely reads slot i, reporting false if i is out of range or the
// slot was never populated.
func (s PatternSlots) At(i int) (*Pattern, bool) {
	if i < 0 || i >= len(s) {
		return nil, false
	}
	p := s[i]
	return p, p != nil
}

// PatternsOfIndices builds the canonical pattern sub-tree for every
// capture index in the pattern, returning ok=false if the indices are
// internally inconsistent (see IndicesHaveConsistentPatterns).
func (p *Pattern) PatternsOfIndices() (PatternSlots, bool) {
	if !p.IndicesHaveConsistentPatterns() {
		return nil, false
	}
	raw := p.rawIndexPatterns()
	maxIndex := -1
	for _, ip := range raw {
		if ip.index > maxIndex {
			maxIndex = ip.index
		}
	}
	if maxIndex < 0 {
		return PatternSlots{}, true
	}
	slots := make(PatternSlots, maxIndex+1)
	for _, ip := range raw {
		if slots[ip.index] == nil {
			slots[ip.index] = ip.pattern
		}
	}
	return slots, true
}

// patternShapeEqual compares two pattern nodes structurally: same
// name/literal/index presence (and value), same property, same
// checkLabels, and recursively equal children. Used only to decide
// whether two occurrences of the same capture index agree on shape.
func patternShapeEqual(a, b *Pattern) bool {
	if (a.name == nil) != (b.name == nil) {
		return false
	}
	if a.name != nil && *a.name != *b.name {
		return false
	}
	if !a.property.Equals(b.property) {
		return false
	}
	if (a.literal == nil) != (b.literal == nil) {
		return false
	}
	if a.literal != nil && !a.literal.Equals(b.literal) {
		return false
	}
	if (a.index == nil) != (b.index == nil) {
		return false
	}
	if a.index != nil && *a.index != *b.index {
		return false
	}
	if a.checkLabels != b.checkLabels {
		return false
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for i := range a.children {
		if !patternShapeEqual(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}

// CheckShape is the fast boolean structural/property/arity check (spec
// §4.3): literal nodes match iff the expression equals the literal
// exactly, without descending into children; otherwise name, property
// subtyping, and arity are checked before recursing into children.
func (p *Pattern) CheckShape(expr *Expression) bool {
	if p.literal != nil {
		return expr.Equals(p.literal)
	}

	if p.name != nil && *p.name != expr.Name() {
		return false
	}

	if !expr.Property().Inherits([]*Property{p.property}, false) {
		return false
	}

	exprChildren := expr.Children()
	if len(exprChildren) < len(p.children) {
		return false
	}
	if len(exprChildren) > len(p.children) && p.checkLabels {
		return false
	}

	for i, childPattern := range p.children {
		if !childPattern.CheckShape(exprChildren[i]) {
			return false
		}
	}
	return true
}

// ShapeCheck is the diagnostic counterpart of CheckShape: a tree mirroring
// the pattern's shape, with each node annotated with the expression it
// was compared against and whether that comparison passed.
type ShapeCheck struct {
	Pattern  *Pattern
	Expr     *Expression
	Valid    bool
	Children []*ShapeCheck
}

// CheckShapeLocal performs the same comparisons as CheckShape but returns
// a full diagnostic tree rather than a single boolean, so callers can
// locate the offending position.
func (p *Pattern) CheckShapeLocal(expr *Expression) *ShapeCheck {
	if p.literal != nil {
		return &ShapeCheck{Pattern: p, Expr: expr, Valid: expr.Equals(p.literal)}
	}

	valid := true
	if p.name != nil && *p.name != expr.Name() {
		valid = false
	}
	if !expr.Property().Inherits([]*Property{p.property}, false) {
		valid = false
	}

	exprChildren := expr.Children()
	arityOK := len(exprChildren) >= len(p.children) &&
		!(len(exprChildren) > len(p.children) && p.checkLabels)
	if !arityOK {
		return &ShapeCheck{Pattern: p, Expr: expr, Valid: false}
	}

	children := make([]*ShapeCheck, len(p.children))
	for i, childPattern := range p.children {
		cs := childPattern.CheckShapeLocal(exprChildren[i])
		children[i] = cs
		if !cs.Valid {
			valid = false
		}
	}
	return &ShapeCheck{Pattern: p, Expr: expr, Valid: valid, Children: children}
}

// String renders the pattern as [name<index>](child1, ...): an absent
// name renders as "None"; the index position shows the literal's name
// when a literal is set, the capture index when set, or "None" when
// neither is present.
func (p *Pattern) String(opts StringOpts) string {
	nameStr := "None"
	if p.name != nil {
		nameStr = *p.name
	}

	idxStr := "None"
	switch {
	case p.literal != nil:
		idxStr = p.literal.Name()
	case p.index != nil:
		idxStr = strconv.Itoa(*p.index)
	}

	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(nameStr)
	b.WriteString(idxStr)
	b.WriteString("](")
	for i, c := range p.children {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.String(opts))
	}
	b.WriteByte(')')
	return b.String()
}
