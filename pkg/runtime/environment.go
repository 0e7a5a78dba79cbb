package runtime

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUndefined  = errors.New("name not defined")
	ErrRedeclared = errors.New("redeclaration of name")
)

// NameError ties a name to ErrUndefined or ErrRedeclared.
type NameError struct {
	Name string
	Err  error
}

func (e *NameError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.Name)
}

func (e *NameError) Unwrap() error { return e.Err }

// Environment is a name table where each name is declared exactly once per
// scope. Lookups and assignments fall through to the parent scope.
type Environment struct {
	values map[string]Value
	parent *Environment
}

// NewEnvironment creates a new environment, optionally nested under a parent.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[string]Value),
		parent: parent,
	}
}

// Parent exposes the enclosing scope (nil when global).
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Extend creates a child scope.
func (e *Environment) Extend() *Environment {
	return NewEnvironment(e)
}

// Declare introduces name in this scope.
func (e *Environment) Declare(name string, value Value) error {
	if _, ok := e.values[name]; ok {
		return &NameError{Name: name, Err: ErrRedeclared}
	}
	e.values[name] = value
	return nil
}

// Has reports whether name is declared in this scope, ignoring parents.
func (e *Environment) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Get retrieves a binding, searching outward through the scope chain.
func (e *Environment) Get(name string) (Value, error) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.values[name]; ok {
			return v, nil
		}
	}
	return nil, &NameError{Name: name, Err: ErrUndefined}
}

// Assign stores value into an existing numeric slot, converting it to the
// slot's declared kind: reals truncate into integer slots and integers widen
// into real slots.
func (e *Environment) Assign(name string, value Value) error {
	for env := e; env != nil; env = env.parent {
		current, ok := env.values[name]
		if !ok {
			continue
		}
		if !current.Kind().IsNumeric() {
			return fmt.Errorf("%w: %s holds a %s", ErrNotAssignable, name, current.Kind())
		}
		conv, err := Convert(value, current.Kind())
		if err != nil {
			return err
		}
		env.values[name] = conv
		return nil
	}
	return &NameError{Name: name, Err: ErrUndefined}
}

// Keys returns this scope's names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// VisibleNames returns every name reachable from this scope, sorted and
// without duplicates.
func (e *Environment) VisibleNames() []string {
	seen := make(map[string]struct{})
	for env := e; env != nil; env = env.parent {
		for k := range env.values {
			seen[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a copy of this scope's bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}
