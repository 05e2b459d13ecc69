package value

import "github.com/rimu-lang/rimu/internal/invariant"

// Environment is a lexically scoped binding frame: an insertion-ordered
// set of name/value pairs plus an optional parent frame. Frames are
// immutable once a closure has captured them; Insert mutates the frame in
// place only while it is still being built by the evaluator, before any
// Function value publishes a pointer to it.
type Environment struct {
	parent *Environment
	keys   []string
	values map[string]Value
}

// NewEnvironment returns a fresh root environment with no parent.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]Value)}
}

// NewChild returns a new environment frame whose parent is e. Lookups
// that miss in the child fall through to the parent chain.
func (e *Environment) NewChild() *Environment {
	return &Environment{parent: e, values: make(map[string]Value)}
}

// FromObject builds an environment frame whose bindings are the entries
// of obj, in obj's own insertion order, linked to parent if given. A nil
// parent produces a root frame, matching NewEnvironment.
func FromObject(obj *Object, parent *Environment) *Environment {
	invariant.NotNil(obj, "obj")
	env := &Environment{parent: parent, values: make(map[string]Value)}
	obj.Range(func(key string, val Value) bool {
		env.Insert(key, val)
		return true
	})
	return env
}

// Insert binds name to val in this frame. Re-inserting an existing name
// updates its value but keeps its original position in iteration order,
// matching Object.Set.
func (e *Environment) Insert(name string, val Value) {
	if _, exists := e.values[name]; !exists {
		e.keys = append(e.keys, name)
	}
	e.values[name] = val
}

// Get resolves name by searching this frame, then its parent chain. It
// reports false if name is unbound anywhere in the chain.
func (e *Environment) Get(name string) (Value, bool) {
	for frame := e; frame != nil; frame = frame.parent {
		if v, ok := frame.values[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}

// Names returns every name bound anywhere in the chain, nearest frame
// first, used by "did you mean" suggestions on MissingVariable errors.
func (e *Environment) Names() []string {
	var names []string
	seen := make(map[string]bool)
	for frame := e; frame != nil; frame = frame.parent {
		for _, k := range frame.keys {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	return names
}

// Parent returns the frame's parent, or nil for a root frame.
func (e *Environment) Parent() *Environment {
	return e.parent
}
