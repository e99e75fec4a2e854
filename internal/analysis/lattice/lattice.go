// Package lattice binds variable names to relational handles for the
// duration of one exploration path.
package lattice

import (
	"sort"

	"github.com/gnoswap-labs/lamp/internal/relational"
)

// State maps variable names to the nodes holding their values.
// Missing entries are unbound.
type State map[string]relational.Handle

// Get returns the bound handle, or relational.None when name is unbound.
// A nil state binds nothing.
func (s State) Get(name string) (relational.Handle, bool) {
	if s == nil {
		return relational.None, false
	}
	h, ok := s[name]
	if !ok {
		return relational.None, false
	}
	return h, true
}

// Set binds name, or removes the binding when h is relational.None.
func (s State) Set(name string, h relational.Handle) {
	if s == nil {
		return
	}
	if h == relational.None {
		delete(s, name)
		return
	}
	s[name] = h
}

// Clone returns a shallow copy of the state.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Equal reports whether two states bind the same names to the same handles.
func Equal(a, b State) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if h, ok := b[k]; !ok || h != v {
			return false
		}
	}
	return true
}

// Names returns the bound names in sorted order.
func (s State) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Join keeps the bindings a and b agree on. A nil state is unreachable
// and joins as the identity.
func Join(a, b State) State {
	if a == nil {
		return b.Clone()
	}
	if b == nil {
		return a.Clone()
	}
	out := make(State)
	for name, h := range a {
		if other, ok := b[name]; ok && other == h {
			out[name] = h
		}
	}
	return out
}
