package algebra

// Rule is a named pair of patterns: an input pattern matched against a
// candidate expression, and an output pattern instantiated with whatever
// the input pattern captured.
type Rule struct {
	name   string
	input  *Pattern
	output *Pattern
}

// NewRule validates (CheckValid) and constructs a Rule, failing with a
// RuleValidityError if the output pattern cannot be legally produced from
// what the input pattern is able to capture.
func NewRule(name string, input, output *Pattern) (*Rule, error) {
	r := &Rule{name: name, input: input, output: output}
	if err := r.CheckValid(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Rule) Name() string { return r.name }

func (r *Rule) Input() *Pattern { return r.input }

func (r *Rule) Output() *Pattern { return r.output }

// CheckValid applies the necessary (not sufficient) conditions from
// spec.md §4.5:
//
//  1. output.property must be a subtype of input.property (covariant
//     result).
//  2. Both input and output must have internally consistent capture
//     indices.
//  3. Every index used by output must be defined by input, with the
//     input's captured subterm a subtype of what output expects there
//     (contravariant substitution).
//
// Plus one addition this implementation enforces at construction rather
// than leaving as a defensive SubstitutionError later: every node of the
// output pattern must carry a literal or an index, since Instantiate has
// no other way to produce a value for a node (see SPEC_FULL.md §9).
func (r *Rule) CheckValid() error {
	if !r.output.property.Inherits([]*Property{r.input.property}, false) {
		return newError(KindRuleValidity, "output property must be a subtype of the input property")
	}

	inputSlots, ok := r.input.PatternsOfIndices()
	if !ok {
		return newError(KindRuleValidity, "input pattern has inconsistent capture indices")
	}
	outputSlots, ok := r.output.PatternsOfIndices()
	if !ok {
		return newError(KindRuleValidity, "output pattern has inconsistent capture indices")
	}

	if len(outputSlots) > len(inputSlots) {
		return newError(KindRuleValidity, "output pattern references indices beyond those defined by the input pattern")
	}

	for i := range outputSlots {
		outputPattern, used := outputSlots.At(i)
		if !used {
			continue
		}
		inputPattern, ok := inputSlots.At(i)
		if !ok {
			return newError(KindRuleValidity, "output pattern uses an index the input pattern does not define")
		}
		if !inputPattern.property.Inherits([]*Property{outputPattern.property}, false) {
			return newError(KindRuleValidity, "input's captured subterm is not a subtype of what the output pattern expects at that index")
		}
	}

	if !everyNodeAddressable(r.output) {
		return newError(KindRuleValidity, "every node of the output pattern must carry a literal or a capture index")
	}

	return nil
}

func everyNodeAddressable(p *Pattern) bool {
	if p.literal == nil && p.index == nil {
		return false
	}
	for _, c := range p.children {
		if !everyNodeAddressable(c) {
			return false
		}
	}
	return true
}

// Apply matches rule.input against expr and, on success, returns the
// expression produced by instantiating rule.output with what was
// captured. Never fails: on shape mismatch, capture inconsistency, or
// (defensively) a substitution error, expr is returned unchanged.
func (r *Rule) Apply(expr *Expression) *Expression {
	if !r.input.CheckShape(expr) {
		return expr
	}

	records, ok := Captures(r.input, expr)
	if !ok {
		return expr
	}

	env := buildEnvironment(records)

	result, err := Instantiate(r.output, env)
	if err != nil {
		return expr
	}
	return result
}

// buildEnvironment turns a flat list of capture records into a dense,
// zero-based environment sized to maxIndex+1 (not maxIndex — see
// SPEC_FULL.md §9), so index 0 is always directly addressable.
func buildEnvironment(records []CaptureRecord) []*Expression {
	maxIndex := -1
	for _, r := range records {
		if r.Index > maxIndex {
			maxIndex = r.Index
		}
	}
	if maxIndex < 0 {
		return nil
	}
	env := make([]*Expression, maxIndex+1)
	for _, r := range records {
		env[r.Index] = r.Expr
	}
	return env
}

// ApplyRule applies rule to expr. It is the external-interface entry
// point named in spec.md §6; Rule.Apply is its method form.
func ApplyRule(rule *Rule, expr *Expression) *Expression {
	return rule.Apply(expr)
}

// String renders the rule as name:(inputName->outputName).
func (r *Rule) String() string {
	inputName := "None"
	if r.input.name != nil {
		inputName = *r.input.name
	}
	outputName := "None"
	if r.output.name != nil {
		outputName = *r.output.name
	}
	return r.name + ":(" + inputName + "->" + outputName + ")"
}
