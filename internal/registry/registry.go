// Package registry provides a goroutine-safe, in-process catalog mapping
// names to live *algebra.Property and *algebra.Rule values: a
// mutex-guarded map pair with explicit registration and no implicit
// globals. Used by cmd/rewrite and internal/store's callers to resolve
// names appearing in template/rule/expression JSON into constructed
// values.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cmh231/symrewrite/internal/algebra"
)

// ErrNotFound is returned by Property/Rule when no value is registered
// under the given name.
var ErrNotFound = errors.New("registry: not found")

// Registry holds named properties and rules. The zero value is not
// usable; construct with New.
type Registry struct {
	mu         sync.RWMutex
	properties map[string]*algebra.Property
	rules      map[string]*algebra.Rule
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		properties: make(map[string]*algebra.Property),
		rules:      make(map[string]*algebra.Rule),
	}
}

// RegisterProperty adds a property to the registry under name, failing if
// the name is already registered.
func (r *Registry) RegisterProperty(name string, p *algebra.Property) error {
	if p == nil {
		return fmt.Errorf("registry: property cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.properties[name]; exists {
		return fmt.Errorf("registry: property %q already registered", name)
	}
	r.properties[name] = p
	return nil
}

// RegisterProperties adds every entry of the given map, failing (and
// leaving the registry unchanged) if any single entry conflicts.
// Intended for bulk-loading a lattice template's name -> Property map in
// one call.
func (r *Registry) RegisterProperties(byName map[string]*algebra.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name := range byName {
		if _, exists := r.properties[name]; exists {
			return fmt.Errorf("registry: property %q already registered", name)
		}
	}
	for name, p := range byName {
		r.properties[name] = p
	}
	return nil
}

// Property retrieves a previously registered property by name.
func (r *Registry) Property(name string) (*algebra.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.properties[name]
	if !exists {
		return nil, fmt.Errorf("registry: property %q: %w", name, ErrNotFound)
	}
	return p, nil
}

// RegisterRule adds a rule to the registry under its own Name(), failing
// if that name is already registered.
func (r *Registry) RegisterRule(rule *algebra.Rule) error {
	if rule == nil {
		return fmt.Errorf("registry: rule cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rules[rule.Name()]; exists {
		return fmt.Errorf("registry: rule %q already registered", rule.Name())
	}
	r.rules[rule.Name()] = rule
	return nil
}

// Rule retrieves a previously registered rule by name.
func (r *Registry) Rule(name string) (*algebra.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, exists := r.rules[name]
	if !exists {
		return nil, fmt.Errorf("registry: rule %q: %w", name, ErrNotFound)
	}
	return rule, nil
}

// ListProperties returns every registered property name.
func (r *Registry) ListProperties() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.properties))
	for name := range r.properties {
		names = append(names, name)
	}
	return names
}

// ListRules returns every registered rule name.
func (r *Registry) ListRules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rules))
	for name := range r.rules {
		names = append(names, name)
	}
	return names
}

// Clear removes every registered property and rule. Primarily used by
// tests.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.properties = make(map[string]*algebra.Property)
	r.rules = make(map[string]*algebra.Rule)
}
