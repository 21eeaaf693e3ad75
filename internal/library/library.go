// Package library maps textual node keys such as "int.add" or
// "string.capitalise" to node definitions.
//
// A Library is populated once at startup (builtins plus any constants from
// configuration) and is read-only afterwards: the editor consults it when
// spawning nodes and the DAG engine consults it when evaluating them.
package library

import (
	"errors"
	"fmt"
	"strings"
)

// OutputLabel is the label of definitions whose nodes become the graph sink
const OutputLabel = "output"

// ErrDefinitionNotFound is returned by Lookup for unknown keys
var ErrDefinitionNotFound = errors.New("definition not found")

// Library is a flat key -> definition lookup that remembers registration order
type Library struct {
	defs map[string]Definition
	keys []string
}

// New creates an empty library
func New() *Library {
	return &Library{
		defs: make(map[string]Definition),
	}
}

// Register adds a definition. The key must be namespaced by the definition's
// domain ("int.*" or "string.*") and must not already be registered.
func (l *Library) Register(def Definition) error {
	key := def.Key()
	ns, _, ok := strings.Cut(key, ".")
	if !ok {
		return fmt.Errorf("definition key %q is not namespaced", key)
	}
	if d, known := ParseDomain(ns); !known || d != def.Domain() {
		return fmt.Errorf("definition key %q does not match domain %s", key, def.Domain())
	}
	if _, exists := l.defs[key]; exists {
		return fmt.Errorf("definition %q already registered", key)
	}

	l.defs[key] = def
	l.keys = append(l.keys, key)
	return nil
}

// MustRegister is Register for static tables; it panics on error.
func (l *Library) MustRegister(defs ...Definition) *Library {
	for _, def := range defs {
		if err := l.Register(def); err != nil {
			panic(fmt.Sprintf("library: %v", err))
		}
	}
	return l
}

// Lookup returns the definition for key
func (l *Library) Lookup(key string) (Definition, error) {
	def, ok := l.defs[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDefinitionNotFound, key)
	}
	return def, nil
}

// Keys returns every registered key in registration order
func (l *Library) Keys() []string {
	return append([]string(nil), l.keys...)
}

// Definitions returns every definition in registration order
func (l *Library) Definitions() []Definition {
	out := make([]Definition, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, l.defs[k])
	}
	return out
}

// Len returns the number of registered definitions
func (l *Library) Len() int {
	return len(l.keys)
}

// IsOutput reports whether def spawns the graph sink
func IsOutput(def Definition) bool {
	return def.Label() == OutputLabel
}

// Constant declares a zero-input node that always produces Value
type Constant struct {
	Key   string
	Label string
	Value Value
}

// RegisterConstant adds a zero-input definition emitting c.Value
func (l *Library) RegisterConstant(c Constant) error {
	switch c.Value.Domain {
	case DomainInt:
		v := c.Value.Int
		return l.Register(NewInt(c.Key, c.Label, nil, func(map[string]int) int { return v }))
	case DomainString:
		v := c.Value.Str
		return l.Register(NewString(c.Key, c.Label, nil, func(map[string]string) string { return v }))
	default:
		return fmt.Errorf("constant %q has no value", c.Key)
	}
}
