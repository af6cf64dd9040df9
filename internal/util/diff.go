package util

import (
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiffText renders a difflib-backed unified diff between two
// strings; cmd/rewrite uses it to diff an expression's stringification
// before and after a rewrite.
func UnifiedDiffText(from, to, fromLabel, toLabel string, context int) (string, error) {
	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(from),
		B:        difflib.SplitLines(to),
		FromFile: fromLabel,
		ToFile:   toLabel,
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(d)
}
