// Package template builds single-inheritance Property lattices from a tree
// description, the way a fixture or a config file would hand one in: a
// root name with nested children, each inheriting from exactly its parent.
//
// Grounded on original_source/SinglyInheritedPropertyInheritanceGeneration.py
// (PropertyInheritanceGenerator), reworked to build iteratively (an explicit
// work stack rather than recursion, matching the redesign direction applied
// throughout internal/algebra) and to report duplicate names as a typed
// algebra.Error instead of a bare IndexError.
package template

import (
	"github.com/cmh231/symrewrite/internal/algebra"
)

// Node is one level of a template tree: a property name and its direct
// descendants, each of which will inherit solely from this one.
type Node struct {
	Name     string
	Children []Node
}

// Tree mirrors a Node after construction, pairing each level with the
// concrete Property built for it.
type Tree struct {
	Property *algebra.Property
	Children []*Tree
}

// Build walks root depth-first with an explicit stack, constructing one
// algebra.Property per node (inheriting from its single parent, or from no
// parent at the root) and collecting every name into a flat lookup table.
//
// It fails with an algebra.Error of Kind algebra.KindNameCollision if any
// two nodes in the tree share a name — the generator's only documented
// failure mode, since property identity elsewhere in this module is keyed
// by name.
func Build(root Node) (*Tree, map[string]*algebra.Property, error) {
	byName := make(map[string]*algebra.Property)

	type frame struct {
		node   Node
		parent *algebra.Property
		out    *Tree
	}

	rootTree := &Tree{}
	stack := []frame{{node: root, parent: nil, out: rootTree}}

	// Each frame is expanded exactly once: build this node's Property,
	// record it, then push its children (each pointing at a freshly
	// allocated Tree slot already wired into out.Children) so the walk
	// continues downward without recursion.
	for len(stack) > 0 {
		n := len(stack) - 1
		f := stack[n]
		stack = stack[:n]

		if _, exists := byName[f.node.Name]; exists {
			return nil, nil, &algebra.Error{
				Kind:    algebra.KindNameCollision,
				Message: "two or more properties in the template share the name " + f.node.Name,
			}
		}

		var parents []*algebra.Property
		if f.parent != nil {
			parents = []*algebra.Property{f.parent}
		}
		prop := algebra.NewProperty(f.node.Name, parents)

		byName[f.node.Name] = prop
		f.out.Property = prop
		f.out.Children = make([]*Tree, len(f.node.Children))

		for i := len(f.node.Children) - 1; i >= 0; i-- {
			child := f.node.Children[i]
			childTree := &Tree{}
			f.out.Children[i] = childTree
			stack = append(stack, frame{node: child, parent: prop, out: childTree})
		}
	}

	return rootTree, byName, nil
}
